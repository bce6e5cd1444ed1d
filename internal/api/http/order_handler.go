package http

import (
	"net/http"
	"time"

	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/service"
)

type OrderHandler struct {
	orders  service.OrderService
	billing service.BillingService
}

func NewOrderHandler(orders service.OrderService, billing service.BillingService) *OrderHandler {
	return &OrderHandler{orders: orders, billing: billing}
}

type createOrderRequest struct {
	CustomerID       int32      `json:"customer_id"`
	OrderNumber      string     `json:"order_number"`
	EstimatedEndDate *time.Time `json:"estimated_end_date"`
	Notes            string     `json:"notes"`
}

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	order, err := h.orders.Create(r.Context(), service.CreateOrderInput{
		CustomerID:       req.CustomerID,
		OrderNumber:      req.OrderNumber,
		EstimatedEndDate: req.EstimatedEndDate,
		Notes:            req.Notes,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	order, err := h.orders.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

type updateOrderRequest struct {
	CustomerID       *int32              `json:"customer_id"`
	OrderNumber      *string             `json:"order_number"`
	Status           *domain.OrderStatus `json:"status"`
	EstimatedEndDate *time.Time          `json:"estimated_end_date"`
	Notes            *string             `json:"notes"`
}

func (h *OrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req updateOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	order, err := h.orders.Update(r.Context(), id, service.UpdateOrderInput{
		CustomerID:       req.CustomerID,
		OrderNumber:      req.OrderNumber,
		Status:           req.Status,
		EstimatedEndDate: req.EstimatedEndDate,
		Notes:            req.Notes,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.orders.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

type generateBillingRequest struct {
	BatchID     *string    `json:"batch_id"`
	BillingDate *time.Time `json:"billing_date"`
	IsFinal     bool       `json:"is_final"`
}

func (h *OrderHandler) GenerateBilling(w http.ResponseWriter, r *http.Request) {
	orderID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req generateBillingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	billing, err := h.billing.Generate(r.Context(), service.GenerateBillingInput{
		OrderID:     orderID,
		BatchID:     req.BatchID,
		BillingDate: req.BillingDate,
		IsFinal:     req.IsFinal,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, billing)
}

func (h *OrderHandler) ListBilling(w http.ResponseWriter, r *http.Request) {
	orderID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	billings, err := h.billing.ListByOrder(r.Context(), orderID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, billings)
}

func (h *OrderHandler) GetBilling(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "billing_id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	billing, err := h.billing.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, billing)
}
