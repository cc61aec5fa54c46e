package posvc

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	basesvc "live_commerce/internal/api/base/service"
	pomodels "live_commerce/internal/api/purchase/models"
	"live_commerce/internal/common"
	"live_commerce/internal/global"
)

// PurchaseOrderItemService quản lý line item của phiếu nhập và các thao tác
// chuyển trạng thái của reconciliation loop
type PurchaseOrderItemService struct {
	*basesvc.BaseServiceMongoImpl[pomodels.PurchaseOrderItem]
}

// NewPurchaseOrderItemService tạo mới PurchaseOrderItemService
func NewPurchaseOrderItemService() (*PurchaseOrderItemService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.PurchaseOrderItems)
	if !exist {
		return nil, fmt.Errorf("failed to get purchase_order_items collection: %v", common.ErrNotFound)
	}
	return &PurchaseOrderItemService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[pomodels.PurchaseOrderItem](coll),
	}, nil
}

// FindEligible lấy các item của phiếu còn cần đồng bộ: pending, failed,
// hoặc processing nhưng lease đã quá hạn (claim của một run đã chết)
func (s *PurchaseOrderItemService) FindEligible(ctx context.Context, purchaseOrderID primitive.ObjectID, leaseExpiry time.Duration) ([]pomodels.PurchaseOrderItem, error) {
	leaseCutoff := time.Now().Add(-leaseExpiry).UnixMilli()
	filter := map[string]interface{}{
		"purchaseOrderId": purchaseOrderID,
		"$or": []interface{}{
			map[string]interface{}{"syncStatus": map[string]interface{}{"$in": []string{pomodels.SyncStatusPending, pomodels.SyncStatusFailed}}},
			map[string]interface{}{
				"syncStatus":    pomodels.SyncStatusProcessing,
				"syncStartedAt": map[string]interface{}{"$lt": leaseCutoff},
			},
		},
	}
	return s.Find(ctx, filter, nil)
}

// ClaimGroup chuyển một nhóm item sang processing bằng update có điều kiện:
// chỉ claim được item chưa ở processing hoặc có lease quá hạn. Đây là soft
// lock - stamp trả về dùng để scope các thao tác terminal về đúng claim này.
func (s *PurchaseOrderItemService) ClaimGroup(ctx context.Context, ids []primitive.ObjectID, leaseExpiry time.Duration) (stamp int64, claimed int64, err error) {
	now := time.Now()
	stamp = now.UnixMilli()
	leaseCutoff := now.Add(-leaseExpiry).UnixMilli()

	filter := map[string]interface{}{
		"_id": map[string]interface{}{"$in": ids},
		"$or": []interface{}{
			map[string]interface{}{"syncStatus": map[string]interface{}{"$nin": []string{pomodels.SyncStatusProcessing}}},
			map[string]interface{}{"syncStartedAt": map[string]interface{}{"$lt": leaseCutoff}},
		},
	}
	update := basesvc.UpdateData{
		Set: map[string]interface{}{
			"syncStatus":    pomodels.SyncStatusProcessing,
			"syncStartedAt": stamp,
		},
	}

	claimed, err = s.UpdateMany(ctx, filter, update, nil)
	return stamp, claimed, err
}

// claimScope lọc đúng các item đang giữ bởi claim có stamp tương ứng
func claimScope(ids []primitive.ObjectID, stamp int64) map[string]interface{} {
	return map[string]interface{}{
		"_id":           map[string]interface{}{"$in": ids},
		"syncStatus":    pomodels.SyncStatusProcessing,
		"syncStartedAt": stamp,
	}
}

// MarkGroupSuccess chốt cả nhóm sang success kèm id sản phẩm TPOS vừa tạo
func (s *PurchaseOrderItemService) MarkGroupSuccess(ctx context.Context, ids []primitive.ObjectID, stamp int64, remoteProductID int64) (int64, error) {
	update := basesvc.UpdateData{
		Set: map[string]interface{}{
			"syncStatus":      pomodels.SyncStatusSuccess,
			"syncedAt":        time.Now().UnixMilli(),
			"remoteProductId": remoteProductID,
			"lastError":       "",
		},
	}
	return s.UpdateMany(ctx, claimScope(ids, stamp), update, nil)
}

// MarkGroupFailed chốt cả nhóm sang failed, gắn thông điệp lỗi vào từng item.
// Item failed đủ điều kiện được chọn lại ở lần chạy sau.
func (s *PurchaseOrderItemService) MarkGroupFailed(ctx context.Context, ids []primitive.ObjectID, stamp int64, errMsg string) (int64, error) {
	update := basesvc.UpdateData{
		Set: map[string]interface{}{
			"syncStatus": pomodels.SyncStatusFailed,
			"syncedAt":   time.Now().UnixMilli(),
			"lastError":  errMsg,
		},
	}
	return s.UpdateMany(ctx, claimScope(ids, stamp), update, nil)
}

// CountByStatus đếm số item của phiếu theo một trạng thái
func (s *PurchaseOrderItemService) CountByStatus(ctx context.Context, purchaseOrderID primitive.ObjectID, status string) (int64, error) {
	return s.CountDocuments(ctx, map[string]interface{}{
		"purchaseOrderId": purchaseOrderID,
		"syncStatus":      status,
	})
}

// ReleaseStaleClaims trả các item kẹt ở processing quá hạn lease về pending.
// Được sweeper gọi định kỳ để thu hồi claim của worker đã chết.
func (s *PurchaseOrderItemService) ReleaseStaleClaims(ctx context.Context, leaseExpiry time.Duration) (int64, error) {
	leaseCutoff := time.Now().Add(-leaseExpiry).UnixMilli()
	filter := map[string]interface{}{
		"syncStatus":    pomodels.SyncStatusProcessing,
		"syncStartedAt": map[string]interface{}{"$lt": leaseCutoff},
	}
	update := basesvc.UpdateData{
		Set: map[string]interface{}{
			"syncStatus": pomodels.SyncStatusPending,
		},
		Unset: map[string]interface{}{
			"syncStartedAt": "",
		},
	}
	return s.UpdateMany(ctx, filter, update, nil)
}

// FindPendingOrderIds liệt kê các phiếu còn item pending, cho worker quét định kỳ
func (s *PurchaseOrderItemService) FindPendingOrderIds(ctx context.Context) ([]primitive.ObjectID, error) {
	values, err := s.Distinct(ctx, "purchaseOrderId", map[string]interface{}{
		"syncStatus": pomodels.SyncStatusPending,
	})
	if err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(values))
	for _, v := range values {
		if id, ok := v.(primitive.ObjectID); ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}
