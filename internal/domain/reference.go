package domain

import "time"

type Customer struct {
	ID        int32     `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	CreatedOn time.Time `json:"created_on"`
}

type Warehouse struct {
	ID        int32     `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	CreatedOn time.Time `json:"created_on"`
}

type Supplier struct {
	ID        int32     `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	CreatedOn time.Time `json:"created_on"`
}

type Category struct {
	ID   int32  `json:"id"`
	Name string `json:"name"`
}
