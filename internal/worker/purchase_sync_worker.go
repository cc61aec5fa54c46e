package worker

import (
	"context"
	"time"

	posvc "live_commerce/internal/api/purchase/service"
	"live_commerce/internal/logger"
)

// PurchaseSyncWorker quét định kỳ các phiếu nhập còn line item pending
// và chạy reconciliation loop cho từng phiếu.
// Claim có điều kiện trong sync service đảm bảo worker và trigger tay
// không double-process cùng một nhóm item.
type PurchaseSyncWorker struct {
	syncService *posvc.PurchaseSyncService
	itemService *posvc.PurchaseOrderItemService
	interval    time.Duration
	batchSize   int // Số phiếu tối đa xử lý mỗi lần quét
}

// NewPurchaseSyncWorker tạo mới PurchaseSyncWorker
func NewPurchaseSyncWorker(syncService *posvc.PurchaseSyncService, itemService *posvc.PurchaseOrderItemService, interval time.Duration, batchSize int) *PurchaseSyncWorker {
	if interval < 10*time.Second {
		interval = 1 * time.Minute
	}
	if batchSize <= 0 {
		batchSize = 50
	}
	return &PurchaseSyncWorker{
		syncService: syncService,
		itemService: itemService,
		interval:    interval,
		batchSize:   batchSize,
	}
}

// Start chạy worker cho đến khi context bị hủy
func (w *PurchaseSyncWorker) Start(ctx context.Context) {
	log := logger.GetSyncLogger()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	log.WithField("interval", w.interval.String()).Info("🔄 [PURCHASE_SYNC] Starting Purchase Sync Worker...")

	for {
		select {
		case <-ctx.Done():
			log.Info("🔄 [PURCHASE_SYNC] Purchase Sync Worker stopped")
			return
		case <-ticker.C:
			w.runOnce(ctx)
		}
	}
}

// runOnce quét một lượt, recover để một phiếu lỗi không làm chết worker
func (w *PurchaseSyncWorker) runOnce(ctx context.Context) {
	log := logger.GetSyncLogger()

	defer func() {
		if r := recover(); r != nil {
			log.WithField("panic", r).Error("🔄 [PURCHASE_SYNC] Panic khi quét phiếu nhập, sẽ tiếp tục ở lần chạy tiếp theo")
		}
	}()

	orderIds, err := w.itemService.FindPendingOrderIds(ctx)
	if err != nil {
		log.WithError(err).Error("🔄 [PURCHASE_SYNC] Không liệt kê được phiếu còn item pending")
		return
	}
	if len(orderIds) == 0 {
		return
	}
	if len(orderIds) > w.batchSize {
		orderIds = orderIds[:w.batchSize]
	}

	for _, id := range orderIds {
		summary, err := w.syncService.SyncPurchaseOrder(ctx, id, "")
		if err != nil {
			// Phiếu hết item đủ điều kiện giữa lúc liệt kê và lúc chạy là bình thường
			log.WithField("purchaseOrderId", id.Hex()).WithError(err).Warn("🔄 [PURCHASE_SYNC] Đồng bộ phiếu thất bại")
			continue
		}
		log.WithFields(map[string]interface{}{
			"purchaseOrderId": id.Hex(),
			"batchId":         summary.BatchID,
			"success":         summary.SuccessItems,
			"failed":          summary.FailedItems,
		}).Info("🔄 [PURCHASE_SYNC] Đồng bộ phiếu hoàn tất")
	}
}
