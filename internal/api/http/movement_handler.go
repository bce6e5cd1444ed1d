package http

import (
	"net/http"
	"time"

	"equiprent-backend/internal/metrics"
	"equiprent-backend/internal/service"

	"github.com/shopspring/decimal"
)

// MovementHandler covers the stock movement endpoints: warehouse
// transfers, sales and write-offs.
type MovementHandler struct {
	transfers service.TransferService
	sales     service.SaleService
	writeOffs service.WriteOffService
}

func NewMovementHandler(
	transfers service.TransferService,
	sales service.SaleService,
	writeOffs service.WriteOffService,
) *MovementHandler {
	return &MovementHandler{transfers: transfers, sales: sales, writeOffs: writeOffs}
}

type transferRequest struct {
	EquipmentID     int32  `json:"equipment_id"`
	FromWarehouseID int32  `json:"from_warehouse_id"`
	ToWarehouseID   int32  `json:"to_warehouse_id"`
	Quantity        int32  `json:"quantity"`
	Notes           string `json:"notes"`
}

func (h *MovementHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	var req transferRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	in := service.TransferInput{
		EquipmentID:     req.EquipmentID,
		FromWarehouseID: req.FromWarehouseID,
		ToWarehouseID:   req.ToWarehouseID,
		Quantity:        req.Quantity,
		Notes:           req.Notes,
	}
	if userID, ok := UserIDFromContext(r.Context()); ok {
		in.UserID = &userID
	}

	t, err := h.transfers.Transfer(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	metrics.StockMovementsTotal.WithLabelValues("transfer").Inc()
	writeJSON(w, http.StatusCreated, t)
}

func (h *MovementHandler) GetTransfer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	t, err := h.transfers.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (h *MovementHandler) ListTransfers(w http.ResponseWriter, r *http.Request) {
	transfers, err := h.transfers.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, transfers)
}

type saleItemRequest struct {
	EquipmentID int32           `json:"equipment_id"`
	Quantity    int32           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

type createSaleRequest struct {
	CustomerID *int32            `json:"customer_id"`
	Items      []saleItemRequest `json:"items"`
	Notes      string            `json:"notes"`
	SoldOn     *time.Time        `json:"sold_on"`
}

func (h *MovementHandler) CreateSale(w http.ResponseWriter, r *http.Request) {
	var req createSaleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	in := service.CreateSaleInput{
		CustomerID: req.CustomerID,
		Notes:      req.Notes,
		SoldOn:     req.SoldOn,
	}
	for _, item := range req.Items {
		in.Items = append(in.Items, service.SaleItemInput{
			EquipmentID: item.EquipmentID,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}
	if userID, ok := UserIDFromContext(r.Context()); ok {
		in.UserID = &userID
	}

	sale, err := h.sales.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	metrics.StockMovementsTotal.WithLabelValues("sale").Inc()
	writeJSON(w, http.StatusCreated, sale)
}

func (h *MovementHandler) GetSale(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	sale, err := h.sales.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sale)
}

func (h *MovementHandler) ListSales(w http.ResponseWriter, r *http.Request) {
	sales, err := h.sales.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sales)
}

// DeleteSale reverses the sale: every sold quantity is credited back to
// its equipment row before the record is removed.
func (h *MovementHandler) DeleteSale(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.sales.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

type writeOffItemRequest struct {
	EquipmentID int32 `json:"equipment_id"`
	Quantity    int32 `json:"quantity"`
}

type createWriteOffRequest struct {
	Reason string                `json:"reason"`
	Items  []writeOffItemRequest `json:"items"`
}

func (h *MovementHandler) CreateWriteOff(w http.ResponseWriter, r *http.Request) {
	var req createWriteOffRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	in := service.CreateWriteOffInput{Reason: req.Reason}
	for _, item := range req.Items {
		in.Items = append(in.Items, service.WriteOffItemInput{
			EquipmentID: item.EquipmentID,
			Quantity:    item.Quantity,
		})
	}
	if userID, ok := UserIDFromContext(r.Context()); ok {
		in.UserID = &userID
	}

	writeOff, err := h.writeOffs.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	metrics.StockMovementsTotal.WithLabelValues("write_off").Inc()
	writeJSON(w, http.StatusCreated, writeOff)
}

func (h *MovementHandler) GetWriteOff(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOff, err := h.writeOffs.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, writeOff)
}

func (h *MovementHandler) ListWriteOffs(w http.ResponseWriter, r *http.Request) {
	writeOffs, err := h.writeOffs.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, writeOffs)
}

func (h *MovementHandler) DeleteWriteOff(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.writeOffs.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
