package jobs

import (
	"context"

	"equiprent-backend/internal/logger"
	"equiprent-backend/internal/metrics"
)

// StockAudit recomputes availability for every equipment row from the
// rental ledger and logs each row whose stored value disagrees. The job
// never mutates stock; fixing a divergence is a deliberate operator
// action through an inventory check.
func (jr *JobRunner) StockAudit() {
	jr.runWithRecovery("StockAudit", func() {
		ctx := context.Background()

		divergences, err := jr.equipmentRepo.ListStockDivergence(ctx)
		if err != nil {
			logger.Error("Failed to audit stock", "error", err)
			return
		}

		metrics.StockDivergenceGauge.Set(float64(len(divergences)))
		if len(divergences) == 0 {
			logger.Info("Stock audit clean, no divergences found")
			return
		}

		for _, d := range divergences {
			logger.Warn("Stock divergence detected",
				"equipment_id", d.EquipmentID,
				"inventory_number", d.InventoryNumber,
				"total_stock", d.TotalStock,
				"stored_available", d.StoredAvailable,
				"derived_available", d.DerivedAvailable,
			)
		}
		logger.Warn("Stock audit finished with divergences", "count", len(divergences))
	})
}
