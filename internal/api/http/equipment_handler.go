package http

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/repository"
	"equiprent-backend/internal/service"
	"equiprent-backend/internal/storage"

	"github.com/shopspring/decimal"
)

type EquipmentHandler struct {
	svc        service.EquipmentService
	photos     storage.PhotoStorage
	maxPhotoMB int64
}

func NewEquipmentHandler(svc service.EquipmentService, photos storage.PhotoStorage, maxPhotoMB int64) *EquipmentHandler {
	return &EquipmentHandler{svc: svc, photos: photos, maxPhotoMB: maxPhotoMB}
}

type createEquipmentRequest struct {
	InventoryNumber string          `json:"inventory_number"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	CategoryID      *int32          `json:"category_id"`
	SupplierID      *int32          `json:"supplier_id"`
	WarehouseID     int32           `json:"warehouse_id"`
	DailyRate       decimal.Decimal `json:"daily_rate"`
	MonthlyRate     decimal.Decimal `json:"monthly_rate"`
	PurchasePrice   decimal.Decimal `json:"purchase_price"`
	TotalStock      *int32          `json:"total_stock"`
}

func (h *EquipmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createEquipmentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	e, err := h.svc.Create(r.Context(), service.CreateEquipmentInput{
		InventoryNumber: req.InventoryNumber,
		Name:            req.Name,
		Description:     req.Description,
		CategoryID:      req.CategoryID,
		SupplierID:      req.SupplierID,
		WarehouseID:     req.WarehouseID,
		DailyRate:       req.DailyRate,
		MonthlyRate:     req.MonthlyRate,
		PurchasePrice:   req.PurchasePrice,
		TotalStock:      req.TotalStock,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

func (h *EquipmentHandler) List(w http.ResponseWriter, r *http.Request) {
	warehouseID, err := queryInt32(r, "warehouse_id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	categoryID, err := queryInt32(r, "category_id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	items, err := h.svc.List(r.Context(), repository.EquipmentFilter{
		WarehouseID: warehouseID,
		CategoryID:  categoryID,
		Status:      r.URL.Query().Get("status"),
		Search:      r.URL.Query().Get("search"),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *EquipmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	e, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

type updateEquipmentRequest struct {
	InventoryNumber *string                 `json:"inventory_number"`
	Name            *string                 `json:"name"`
	Description     *string                 `json:"description"`
	CategoryID      *int32                  `json:"category_id"`
	SupplierID      *int32                  `json:"supplier_id"`
	WarehouseID     *int32                  `json:"warehouse_id"`
	DailyRate       *decimal.Decimal        `json:"daily_rate"`
	MonthlyRate     *decimal.Decimal        `json:"monthly_rate"`
	PurchasePrice   *decimal.Decimal        `json:"purchase_price"`
	Status          *domain.EquipmentStatus `json:"status"`
}

func (h *EquipmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req updateEquipmentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	e, err := h.svc.Update(r.Context(), id, service.UpdateEquipmentInput{
		InventoryNumber: req.InventoryNumber,
		Name:            req.Name,
		Description:     req.Description,
		CategoryID:      req.CategoryID,
		SupplierID:      req.SupplierID,
		WarehouseID:     req.WarehouseID,
		DailyRate:       req.DailyRate,
		MonthlyRate:     req.MonthlyRate,
		PurchasePrice:   req.PurchasePrice,
		Status:          req.Status,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (h *EquipmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

// UploadPhoto accepts a multipart form with a "photo" part, stores the
// file and attaches its key to the equipment record.
func (h *EquipmentHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxPhotoMB<<20)
	file, header, err := r.FormFile("photo")
	if err != nil {
		writeError(w, r, domain.NewValidationError("photo file is required: %v", err))
		return
	}
	defer file.Close()

	key, err := h.photos.Save(r.Context(), filepath.Ext(header.Filename), file)
	if err != nil {
		writeError(w, r, err)
		return
	}

	e, err := h.svc.Update(r.Context(), id, service.UpdateEquipmentInput{PhotoPath: &key})
	if err != nil {
		// The record update failed, do not leave an orphaned file behind.
		_ = h.photos.Delete(r.Context(), key)
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (h *EquipmentHandler) GetPhoto(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	e, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if e.PhotoPath == nil || *e.PhotoPath == "" {
		writeError(w, r, domain.NewNotFoundError("photo for equipment", id))
		return
	}

	photo, err := h.photos.Open(r.Context(), *e.PhotoPath)
	if err != nil {
		writeError(w, r, domain.NewNotFoundError("photo for equipment", id))
		return
	}
	defer photo.Close()

	w.Header().Set("Content-Type", photoContentType(*e.PhotoPath))
	io.Copy(w, photo)
}

func photoContentType(key string) string {
	switch strings.ToLower(filepath.Ext(key)) {
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}
