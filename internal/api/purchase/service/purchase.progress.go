package posvc

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	pomodels "live_commerce/internal/api/purchase/models"
)

// syncStatusReader đọc số đếm authoritative cho progress tracker,
// gắn sẵn với một phiếu nhập
type syncStatusReader struct {
	items           *PurchaseOrderItemService
	purchaseOrderID primitive.ObjectID
}

// NewSyncStatusReader tạo reader đếm success/failed của một phiếu nhập
func NewSyncStatusReader(items *PurchaseOrderItemService, purchaseOrderID primitive.ObjectID) *syncStatusReader {
	return &syncStatusReader{items: items, purchaseOrderID: purchaseOrderID}
}

// ReadCounts đọc mới từ DB, không dựa vào payload notification
func (r *syncStatusReader) ReadCounts(ctx context.Context) (int64, int64, error) {
	success, err := r.items.CountByStatus(ctx, r.purchaseOrderID, pomodels.SyncStatusSuccess)
	if err != nil {
		return 0, 0, err
	}
	failed, err := r.items.CountByStatus(ctx, r.purchaseOrderID, pomodels.SyncStatusFailed)
	if err != nil {
		return 0, 0, err
	}
	return success, failed, nil
}
