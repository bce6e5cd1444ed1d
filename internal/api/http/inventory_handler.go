package http

import (
	"net/http"

	"equiprent-backend/internal/metrics"
	"equiprent-backend/internal/service"
)

type InventoryHandler struct {
	svc service.InventoryService
}

func NewInventoryHandler(svc service.InventoryService) *InventoryHandler {
	return &InventoryHandler{svc: svc}
}

type createCheckRequest struct {
	WarehouseID int32 `json:"warehouse_id"`
}

func (h *InventoryHandler) CreateCheck(w http.ResponseWriter, r *http.Request) {
	var req createCheckRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	var userID *int32
	if id, ok := UserIDFromContext(r.Context()); ok {
		userID = &id
	}

	check, err := h.svc.CreateCheck(r.Context(), req.WarehouseID, userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, check)
}

func (h *InventoryHandler) GetCheck(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	check, err := h.svc.GetCheck(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, check)
}

func (h *InventoryHandler) ListChecks(w http.ResponseWriter, r *http.Request) {
	warehouseID, err := queryInt32(r, "warehouse_id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	checks, err := h.svc.ListChecks(r.Context(), warehouseID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, checks)
}

type updateCheckItemRequest struct {
	ActualQuantity int32 `json:"actual_quantity"`
}

func (h *InventoryHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	checkID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	itemID, err := pathID(r, "item_id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req updateCheckItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	item, err := h.svc.UpdateItem(r.Context(), checkID, itemID, req.ActualQuantity)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

type completeCheckRequest struct {
	AdjustStock bool `json:"adjust_stock"`
}

func (h *InventoryHandler) CompleteCheck(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req completeCheckRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	check, err := h.svc.CompleteCheck(r.Context(), id, req.AdjustStock)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if req.AdjustStock {
		metrics.StockMovementsTotal.WithLabelValues("adjustment").Inc()
	}
	writeJSON(w, http.StatusOK, check)
}

func (h *InventoryHandler) CancelCheck(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.svc.CancelCheck(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
