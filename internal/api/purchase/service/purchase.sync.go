package posvc

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	invmodels "live_commerce/internal/api/inventory/models"
	invsvc "live_commerce/internal/api/inventory/service"
	pomodels "live_commerce/internal/api/purchase/models"
	"live_commerce/internal/common"
	"live_commerce/internal/logger"
	"live_commerce/internal/tpos"
)

// purchaseOrderReader là phần của PurchaseOrderService mà sync service cần
type purchaseOrderReader interface {
	FindOneById(ctx context.Context, id primitive.ObjectID) (pomodels.PurchaseOrder, error)
}

// PurchaseSyncService là reconciliation loop phía server: đưa các line item
// của một phiếu nhập qua máy trạng thái pending → processing → success|failed,
// mỗi nhóm variant chỉ gọi TPOS đúng một lần.
type PurchaseSyncService struct {
	orders     purchaseOrderReader
	items      *PurchaseOrderItemService
	inventory  *invsvc.InventoryProductService
	tposClient *tpos.Client
	retry      common.RetryPolicy
	lease      time.Duration
}

// NewPurchaseSyncService tạo mới PurchaseSyncService.
// RetryPolicy được inject để bước match tồn kho test được độc lập với cơ chế.
func NewPurchaseSyncService(orders *PurchaseOrderService, items *PurchaseOrderItemService, inventory *invsvc.InventoryProductService, tposClient *tpos.Client, retry common.RetryPolicy, lease time.Duration) *PurchaseSyncService {
	return &PurchaseSyncService{
		orders:     orders,
		items:      items,
		inventory:  inventory,
		tposClient: tposClient,
		retry:      retry,
		lease:      lease,
	}
}

// SyncSummary là kết quả một lần chạy đồng bộ cho một phiếu
type SyncSummary struct {
	BatchID       string `json:"batchId"`
	TotalItems    int64  `json:"totalItems"`
	SuccessItems  int64  `json:"successItems"`
	FailedItems   int64  `json:"failedItems"`
	SkippedGroups int64  `json:"skippedGroups"` // Nhóm đang bị run khác giữ claim
}

// EnsureOrderExists kiểm tra phiếu nhập còn tồn tại, trả về lỗi not-found
// có cấu trúc khi phiếu đã bị xóa. Gọi trước khi khởi động batch để trigger
// hủy ngay thay vì để tracker sống đến khi chạm trần.
func (s *PurchaseSyncService) EnsureOrderExists(ctx context.Context, purchaseOrderID primitive.ObjectID) error {
	if _, err := s.orders.FindOneById(ctx, purchaseOrderID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.NewError(common.ErrCodeBusinessOperation, "Phiếu nhập không tồn tại", common.StatusNotFound, nil)
		}
		return err
	}
	return nil
}

// EligibleCount đếm số item còn cần đồng bộ của phiếu
func (s *PurchaseSyncService) EligibleCount(ctx context.Context, purchaseOrderID primitive.ObjectID) (int64, error) {
	items, err := s.items.FindEligible(ctx, purchaseOrderID, s.lease)
	if err != nil {
		return 0, err
	}
	return int64(len(items)), nil
}

// SyncPurchaseOrder đồng bộ toàn bộ item đủ điều kiện của một phiếu nhập:
//  1. Gom item theo (mã sản phẩm + tập attribute value đã sort).
//  2. Claim từng nhóm bằng update có điều kiện (soft lock theo lease).
//  3. Gọi CreateProductVariants đúng một lần mỗi nhóm, chốt cả nhóm
//     success hoặc failed kèm thông điệp lỗi.
//  4. Bước match tồn kho phụ thuộc chạy sau với retry có giới hạn; hết lượt
//     retry không đảo ngược item đã success - ưu tiên giữ kết quả remote đã có.
//
// Phiếu không tồn tại hoặc không còn item đủ điều kiện trả về lỗi not-found
// có cấu trúc, hủy cả lần chạy. batchID rỗng sẽ được sinh mới, truyền vào
// để đối chiếu log với caller đã phát batch id.
func (s *PurchaseSyncService) SyncPurchaseOrder(ctx context.Context, purchaseOrderID primitive.ObjectID, batchID string) (*SyncSummary, error) {
	if err := s.EnsureOrderExists(ctx, purchaseOrderID); err != nil {
		return nil, err
	}

	eligible, err := s.items.FindEligible(ctx, purchaseOrderID, s.lease)
	if err != nil {
		return nil, err
	}
	if len(eligible) == 0 {
		return nil, common.NewError(common.ErrCodeBusinessOperation, "Phiếu nhập không còn item cần đồng bộ", common.StatusNotFound, nil)
	}

	if batchID == "" {
		batchID = uuid.NewString()
	}
	summary := &SyncSummary{
		BatchID:    batchID,
		TotalItems: int64(len(eligible)),
	}
	log := logger.GetSyncLogger().WithFields(map[string]interface{}{
		"purchaseOrderId": purchaseOrderID.Hex(),
		"batchId":         summary.BatchID,
	})
	log.WithField("totalItems", summary.TotalItems).Info("Bắt đầu đồng bộ phiếu nhập")

	for _, group := range GroupItems(eligible) {
		ids := make([]primitive.ObjectID, 0, len(group.Items))
		for _, item := range group.Items {
			ids = append(ids, item.ID)
		}

		stamp, claimed, err := s.items.ClaimGroup(ctx, ids, s.lease)
		if err != nil {
			log.WithField("group", group.Key).WithError(err).Error("Claim nhóm thất bại")
			continue
		}
		if claimed == 0 {
			// Run khác đang giữ nhóm này
			summary.SkippedGroups++
			continue
		}

		s.processGroup(ctx, log, group, ids, stamp, summary)
	}

	log.WithFields(map[string]interface{}{
		"success": summary.SuccessItems,
		"failed":  summary.FailedItems,
		"skipped": summary.SkippedGroups,
	}).Info("Kết thúc đồng bộ phiếu nhập")
	return summary, nil
}

// processGroup gọi TPOS một lần cho nhóm rồi chốt trạng thái cả nhóm
func (s *PurchaseSyncService) processGroup(ctx context.Context, log *logrus.Entry, group VariantGroup, ids []primitive.ObjectID, stamp int64, summary *SyncSummary) {
	first := group.Items[0]
	req := tpos.VariantRequest{
		ProductCode:       first.ProductCode,
		ProductName:       first.ProductName,
		PurchasePrice:     first.PurchasePrice,
		ListPrice:         first.ListPrice,
		AttributeValueIDs: first.AttributeValueIDs,
	}

	result, err := s.tposClient.CreateProductVariants(ctx, req)
	if err != nil {
		marked, markErr := s.items.MarkGroupFailed(ctx, ids, stamp, err.Error())
		if markErr != nil {
			log.WithField("group", group.Key).WithError(markErr).Error("Không chốt được trạng thái failed cho nhóm")
			return
		}
		summary.FailedItems += marked
		log.WithField("group", group.Key).WithError(err).Warn("Tạo variant trên TPOS thất bại")
		return
	}

	marked, err := s.items.MarkGroupSuccess(ctx, ids, stamp, result.ProductID)
	if err != nil {
		log.WithField("group", group.Key).WithError(err).Error("Không chốt được trạng thái success cho nhóm")
		return
	}
	summary.SuccessItems += marked

	// Bước phụ thuộc: gắn sản phẩm TPOS vừa tạo vào cache tồn kho local.
	// Thất bại sau khi hết retry chỉ ghi log - item đã success giữ nguyên.
	matchErr := s.retry.Do(ctx, func(ctx context.Context) error {
		return s.matchInventory(ctx, first, result.ProductID)
	})
	if matchErr != nil {
		log.WithField("group", group.Key).WithError(matchErr).Warn("Match tồn kho thất bại sau khi hết lượt retry")
	}
}

// matchInventory upsert cache tồn kho theo mã với id sản phẩm TPOS mới
func (s *PurchaseSyncService) matchInventory(ctx context.Context, item pomodels.PurchaseOrderItem, remoteProductID int64) error {
	code := strings.ToUpper(strings.TrimSpace(item.ProductCode))
	_, err := s.inventory.Upsert(ctx, map[string]interface{}{"code": code}, invmodels.InventoryProduct{
		Code:     code,
		RemoteID: remoteProductID,
		Name:     item.ProductName,
		Price:    item.ListPrice,
	})
	if err != nil {
		return fmt.Errorf("upsert tồn kho cho mã %s thất bại: %w", code, err)
	}
	return nil
}
