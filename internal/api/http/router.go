package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires all handlers onto the API surface. Everything under
// /api except login requires a valid token; destructive and
// administrative endpoints additionally require the ADMIN role.
func NewRouter(
	equipmentHandler *EquipmentHandler,
	rentalHandler *RentalHandler,
	movementHandler *MovementHandler,
	inventoryHandler *InventoryHandler,
	orderHandler *OrderHandler,
	referenceHandler *ReferenceHandler,
	authHandler *AuthHandler,
	authMiddleware *AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()
	r.Use(PanicRecovery, MetricsMiddleware, RequestLogging)

	r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")

	// Public routes
	r.HandleFunc("/api/auth/login", authHandler.Login).Methods("POST")

	api := r.PathPrefix("/api").Subrouter()
	api.Use(authMiddleware.Authenticate)
	admin := func(h http.HandlerFunc) http.Handler {
		return authMiddleware.RequireAdmin(h)
	}

	// Users (admin only)
	api.Handle("/users", admin(authHandler.CreateUser)).Methods("POST")
	api.Handle("/users", admin(authHandler.ListUsers)).Methods("GET")
	api.Handle("/users/{id}", admin(authHandler.GetUser)).Methods("GET")
	api.Handle("/users/{id}", admin(authHandler.DeleteUser)).Methods("DELETE")

	// Equipment
	api.HandleFunc("/equipment", equipmentHandler.List).Methods("GET")
	api.HandleFunc("/equipment", equipmentHandler.Create).Methods("POST")
	api.HandleFunc("/equipment/{id}", equipmentHandler.Get).Methods("GET")
	api.HandleFunc("/equipment/{id}", equipmentHandler.Update).Methods("PUT")
	api.Handle("/equipment/{id}", admin(equipmentHandler.Delete)).Methods("DELETE")
	api.HandleFunc("/equipment/{id}/photo", equipmentHandler.UploadPhoto).Methods("POST")
	api.HandleFunc("/equipment/{id}/photo", equipmentHandler.GetPhoto).Methods("GET")

	// Rentals and returns
	api.HandleFunc("/rentals", rentalHandler.Issue).Methods("POST")
	api.HandleFunc("/rentals/batch", rentalHandler.IssueBatch).Methods("POST")
	api.HandleFunc("/rentals", rentalHandler.ListByBatch).Methods("GET").Queries("batch_id", "{batch_id}")
	api.HandleFunc("/rentals/{id}", rentalHandler.Get).Methods("GET")
	api.HandleFunc("/rentals/{id}", rentalHandler.Update).Methods("PUT")
	api.HandleFunc("/rentals/{id}/return", rentalHandler.Return).Methods("POST")
	api.HandleFunc("/rentals/{id}/returns", rentalHandler.ListReturns).Methods("GET")

	// Orders and billing
	api.HandleFunc("/orders", orderHandler.Create).Methods("POST")
	api.HandleFunc("/orders", orderHandler.List).Methods("GET")
	api.HandleFunc("/orders/{id}", orderHandler.Get).Methods("GET")
	api.HandleFunc("/orders/{id}", orderHandler.Update).Methods("PUT")
	api.Handle("/orders/{id}", admin(orderHandler.Delete)).Methods("DELETE")
	api.HandleFunc("/orders/{order_id}/rentals", rentalHandler.ListByOrder).Methods("GET")
	api.HandleFunc("/orders/{id}/billing", orderHandler.GenerateBilling).Methods("POST")
	api.HandleFunc("/orders/{id}/billing", orderHandler.ListBilling).Methods("GET")
	api.HandleFunc("/billing/{billing_id}", orderHandler.GetBilling).Methods("GET")

	// Stock movements
	api.HandleFunc("/transfers", movementHandler.Transfer).Methods("POST")
	api.HandleFunc("/transfers", movementHandler.ListTransfers).Methods("GET")
	api.HandleFunc("/transfers/{id}", movementHandler.GetTransfer).Methods("GET")
	api.HandleFunc("/sales", movementHandler.CreateSale).Methods("POST")
	api.HandleFunc("/sales", movementHandler.ListSales).Methods("GET")
	api.HandleFunc("/sales/{id}", movementHandler.GetSale).Methods("GET")
	api.Handle("/sales/{id}", admin(movementHandler.DeleteSale)).Methods("DELETE")
	api.HandleFunc("/write-offs", movementHandler.CreateWriteOff).Methods("POST")
	api.HandleFunc("/write-offs", movementHandler.ListWriteOffs).Methods("GET")
	api.HandleFunc("/write-offs/{id}", movementHandler.GetWriteOff).Methods("GET")
	api.Handle("/write-offs/{id}", admin(movementHandler.DeleteWriteOff)).Methods("DELETE")

	// Inventory checks
	api.HandleFunc("/inventory-checks", inventoryHandler.CreateCheck).Methods("POST")
	api.HandleFunc("/inventory-checks", inventoryHandler.ListChecks).Methods("GET")
	api.HandleFunc("/inventory-checks/{id}", inventoryHandler.GetCheck).Methods("GET")
	api.HandleFunc("/inventory-checks/{id}/items/{item_id}", inventoryHandler.UpdateItem).Methods("PUT")
	// Completing a check may adjust equipment stock.
	api.Handle("/inventory-checks/{id}/complete", admin(inventoryHandler.CompleteCheck)).Methods("POST")
	api.HandleFunc("/inventory-checks/{id}/cancel", inventoryHandler.CancelCheck).Methods("POST")

	// Reference entities
	api.HandleFunc("/customers", referenceHandler.CreateCustomer).Methods("POST")
	api.HandleFunc("/customers", referenceHandler.ListCustomers).Methods("GET")
	api.HandleFunc("/customers/{id}", referenceHandler.GetCustomer).Methods("GET")
	api.HandleFunc("/customers/{id}", referenceHandler.UpdateCustomer).Methods("PUT")
	api.Handle("/customers/{id}", admin(referenceHandler.DeleteCustomer)).Methods("DELETE")
	api.HandleFunc("/warehouses", referenceHandler.CreateWarehouse).Methods("POST")
	api.HandleFunc("/warehouses", referenceHandler.ListWarehouses).Methods("GET")
	api.HandleFunc("/warehouses/{id}", referenceHandler.GetWarehouse).Methods("GET")
	api.HandleFunc("/warehouses/{id}", referenceHandler.UpdateWarehouse).Methods("PUT")
	api.Handle("/warehouses/{id}", admin(referenceHandler.DeleteWarehouse)).Methods("DELETE")
	api.HandleFunc("/suppliers", referenceHandler.CreateSupplier).Methods("POST")
	api.HandleFunc("/suppliers", referenceHandler.ListSuppliers).Methods("GET")
	api.HandleFunc("/suppliers/{id}", referenceHandler.GetSupplier).Methods("GET")
	api.HandleFunc("/suppliers/{id}", referenceHandler.UpdateSupplier).Methods("PUT")
	api.Handle("/suppliers/{id}", admin(referenceHandler.DeleteSupplier)).Methods("DELETE")
	api.HandleFunc("/categories", referenceHandler.CreateCategory).Methods("POST")
	api.HandleFunc("/categories", referenceHandler.ListCategories).Methods("GET")
	api.HandleFunc("/categories/{id}", referenceHandler.UpdateCategory).Methods("PUT")
	api.Handle("/categories/{id}", admin(referenceHandler.DeleteCategory)).Methods("DELETE")

	return r
}
