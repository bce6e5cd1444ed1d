package http

import (
	"net/http"
	"time"

	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/metrics"
	"equiprent-backend/internal/service"

	"github.com/shopspring/decimal"
)

type RentalHandler struct {
	rentals service.RentalService
	returns service.ReturnService
}

func NewRentalHandler(rentals service.RentalService, returns service.ReturnService) *RentalHandler {
	return &RentalHandler{rentals: rentals, returns: returns}
}

type issueRentalRequest struct {
	OrderID           int32                `json:"order_id"`
	EquipmentID       int32                `json:"equipment_id"`
	Quantity          int32                `json:"quantity"`
	DailyRate         *decimal.Decimal     `json:"daily_rate"`
	IssueDate         *time.Time           `json:"issue_date"`
	PlannedReturnDate *time.Time           `json:"planned_return_date"`
	Status            *domain.RentalStatus `json:"status"`
	BatchID           *string              `json:"batch_id"`
}

func (h *RentalHandler) Issue(w http.ResponseWriter, r *http.Request) {
	var req issueRentalRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	rental, err := h.rentals.Issue(r.Context(), service.IssueRentalInput{
		OrderID:           req.OrderID,
		EquipmentID:       req.EquipmentID,
		Quantity:          req.Quantity,
		DailyRate:         req.DailyRate,
		IssueDate:         req.IssueDate,
		PlannedReturnDate: req.PlannedReturnDate,
		Status:            req.Status,
		BatchID:           req.BatchID,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	if rental.Status == domain.RentalStatusIssued {
		metrics.StockMovementsTotal.WithLabelValues("issue").Inc()
	}
	writeJSON(w, http.StatusCreated, rental)
}

type issueBatchRequest struct {
	Rentals []issueRentalRequest `json:"rentals"`
}

type issueBatchResponse struct {
	BatchID string          `json:"batch_id"`
	Rentals []domain.Rental `json:"rentals"`
}

// IssueBatch issues several rentals under one shared batch id. Each item
// commits in its own transaction; a failing item stops the batch and is
// returned as the error, but the items issued before it stand.
func (h *RentalHandler) IssueBatch(w http.ResponseWriter, r *http.Request) {
	var req issueBatchRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if len(req.Rentals) == 0 {
		writeError(w, r, domain.NewValidationError("rentals list is empty"))
		return
	}

	batchID := ""
	issued := make([]domain.Rental, 0, len(req.Rentals))
	for _, item := range req.Rentals {
		in := service.IssueRentalInput{
			OrderID:           item.OrderID,
			EquipmentID:       item.EquipmentID,
			Quantity:          item.Quantity,
			DailyRate:         item.DailyRate,
			IssueDate:         item.IssueDate,
			PlannedReturnDate: item.PlannedReturnDate,
			Status:            item.Status,
		}
		if batchID != "" {
			in.BatchID = &batchID
		}
		rental, err := h.rentals.Issue(r.Context(), in)
		if err != nil {
			writeError(w, r, err)
			return
		}
		if rental.Status == domain.RentalStatusIssued {
			metrics.StockMovementsTotal.WithLabelValues("issue").Inc()
		}
		batchID = rental.BatchID
		issued = append(issued, *rental)
	}
	writeJSON(w, http.StatusCreated, issueBatchResponse{BatchID: batchID, Rentals: issued})
}

func (h *RentalHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	rental, err := h.rentals.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

type updateRentalRequest struct {
	Quantity          *int32               `json:"quantity"`
	Status            *domain.RentalStatus `json:"status"`
	DailyRate         *decimal.Decimal     `json:"daily_rate"`
	PlannedReturnDate *time.Time           `json:"planned_return_date"`
}

func (h *RentalHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req updateRentalRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	rental, err := h.rentals.Update(r.Context(), id, service.UpdateRentalInput{
		Quantity:          req.Quantity,
		Status:            req.Status,
		DailyRate:         req.DailyRate,
		PlannedReturnDate: req.PlannedReturnDate,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

func (h *RentalHandler) ListByOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := pathID(r, "order_id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	rentals, err := h.rentals.ListByOrder(r.Context(), orderID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rentals)
}

func (h *RentalHandler) ListByBatch(w http.ResponseWriter, r *http.Request) {
	batchID := r.URL.Query().Get("batch_id")
	if batchID == "" {
		writeError(w, r, domain.NewValidationError("batch_id is required"))
		return
	}
	rentals, err := h.rentals.ListByBatch(r.Context(), batchID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rentals)
}

type returnRentalRequest struct {
	ActualReturnDate *time.Time              `json:"actual_return_date"`
	Condition        *domain.ReturnCondition `json:"condition"`
	Quantity         *int32                  `json:"quantity"`
	DamageNotes      string                  `json:"damage_notes"`
	ExtraCharge      decimal.Decimal         `json:"extra_charge"`
	BatchID          *string                 `json:"batch_id"`
}

func (h *RentalHandler) Return(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req returnRentalRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	ret, err := h.returns.ReturnRental(r.Context(), service.ReturnRentalInput{
		RentalID:         id,
		ActualReturnDate: req.ActualReturnDate,
		Condition:        req.Condition,
		Quantity:         req.Quantity,
		DamageNotes:      req.DamageNotes,
		ExtraCharge:      req.ExtraCharge,
		BatchID:          req.BatchID,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	metrics.StockMovementsTotal.WithLabelValues("return").Inc()
	writeJSON(w, http.StatusCreated, ret)
}

func (h *RentalHandler) ListReturns(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	returns, err := h.returns.ListByRental(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, returns)
}
