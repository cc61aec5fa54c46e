package pohdl

import (
	"context"
	"sync"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basehdl "live_commerce/internal/api/base/handler"
	podto "live_commerce/internal/api/purchase/dto"
	pomodels "live_commerce/internal/api/purchase/models"
	posvc "live_commerce/internal/api/purchase/service"
	"live_commerce/internal/common"
	"live_commerce/internal/global"
	"live_commerce/internal/logger"
	"live_commerce/internal/progress"
)

// SyncHandler kích hoạt đồng bộ phiếu nhập và phục vụ tiến độ của batch.
// Mỗi batch có một tracker riêng, handler giữ tracker theo id phiếu để
// route tiến độ đọc được snapshot.
type SyncHandler struct {
	*basehdl.BaseHandler[pomodels.PurchaseOrderItem, podto.SyncTriggerInput, podto.SyncTriggerInput]
	SyncService *posvc.PurchaseSyncService
	ItemService *posvc.PurchaseOrderItemService

	trackers sync.Map // po id hex -> *progress.Tracker
}

// NewSyncHandler khởi tạo SyncHandler mới
func NewSyncHandler(syncService *posvc.PurchaseSyncService, itemService *posvc.PurchaseOrderItemService) *SyncHandler {
	hdl := &SyncHandler{
		SyncService: syncService,
		ItemService: itemService,
	}
	hdl.BaseHandler = basehdl.NewBaseHandler[pomodels.PurchaseOrderItem, podto.SyncTriggerInput, podto.SyncTriggerInput](itemService)
	return hdl
}

// HandleTriggerSync xử lý POST /purchase-order/:id/sync: dựng tracker cho
// batch rồi chạy đồng bộ ở background. Phiếu không còn item đủ điều kiện
// trả về not-found có cấu trúc, không khởi động gì cả.
func (h *SyncHandler) HandleTriggerSync(c fiber.Ctx) error {
	purchaseOrderID, err := primitive.ObjectIDFromHex(h.GetIDFromContext(c))
	if err != nil {
		h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, "Id phiếu nhập không hợp lệ", common.StatusBadRequest, nil))
		return nil
	}

	input := new(podto.SyncTriggerInput)
	if len(c.Body()) > 0 {
		if err := h.ParseRequestBody(c, input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
	}

	// Phiếu không tồn tại thì hủy ngay ở mức trigger, kể cả khi client
	// đã gửi sẵn totalItems - không khởi động tracker cho batch chết
	if err := h.SyncService.EnsureOrderExists(context.Background(), purchaseOrderID); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}

	totalItems := input.TotalItems
	if totalItems <= 0 {
		totalItems, err = h.SyncService.EligibleCount(context.Background(), purchaseOrderID)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
	}
	if totalItems == 0 {
		h.HandleResponse(c, nil, common.NewError(common.ErrCodeBusinessOperation, "Phiếu nhập không còn item cần đồng bộ", common.StatusNotFound, nil))
		return nil
	}

	batchID := uuid.NewString()
	cfg := global.ServerConfig
	tracker := progress.NewTracker(progress.Config{
		ParentID:         purchaseOrderID.Hex(),
		TotalItems:       totalItems,
		SkipInitialQuery: input.SkipInitialQuery,
		Collection:       global.MongoDB_ColNames.PurchaseOrderItems,
		Matches: func(doc interface{}) bool {
			item, ok := doc.(pomodels.PurchaseOrderItem)
			if !ok {
				return true
			}
			return item.PurchaseOrderID == purchaseOrderID
		},
		Debounce:         time.Duration(cfg.ProgressDebounceMs) * time.Millisecond,
		HeartbeatSilence: time.Duration(cfg.ProgressHeartbeatSeconds) * time.Second,
		PollInterval:     time.Duration(cfg.ProgressPollSeconds) * time.Second,
		MaxPolls:         cfg.ProgressMaxPolls,
		Ceiling:          time.Duration(cfg.ProgressCeilingSeconds) * time.Second,
	}, posvc.NewSyncStatusReader(h.ItemService, purchaseOrderID), func(snapshot progress.Snapshot, disposition string) {
		logger.GetSyncLogger().WithFields(map[string]interface{}{
			"purchaseOrderId": purchaseOrderID.Hex(),
			"batchId":         batchID,
			"disposition":     disposition,
			"success":         snapshot.SuccessCount,
			"failed":          snapshot.FailedCount,
		}).Info("Batch đồng bộ kết thúc")
	})

	// Batch mới thay thế tracker cũ của cùng phiếu (nếu còn)
	if old, ok := h.trackers.Load(purchaseOrderID.Hex()); ok {
		old.(*progress.Tracker).Stop()
	}
	tracker.Start(context.Background())
	h.trackers.Store(purchaseOrderID.Hex(), tracker)

	go func() {
		if _, err := h.SyncService.SyncPurchaseOrder(context.Background(), purchaseOrderID, batchID); err != nil {
			logger.GetSyncLogger().WithField("purchaseOrderId", purchaseOrderID.Hex()).WithError(err).Error("Chạy đồng bộ phiếu nhập thất bại")
		}
	}()

	h.HandleResponse(c, podto.SyncTriggerResult{
		PurchaseOrderID: purchaseOrderID.Hex(),
		BatchID:         batchID,
		TotalItems:      totalItems,
	}, nil)
	return nil
}

// HandleSyncProgress xử lý GET /purchase-order/:id/sync-progress
func (h *SyncHandler) HandleSyncProgress(c fiber.Ctx) error {
	id := h.GetIDFromContext(c)
	value, ok := h.trackers.Load(id)
	if !ok {
		h.HandleResponse(c, nil, common.NewError(common.ErrCodeBusinessOperation, "Không có batch đồng bộ nào cho phiếu này", common.StatusNotFound, nil))
		return nil
	}
	h.HandleResponse(c, value.(*progress.Tracker).Snapshot(), nil)
	return nil
}
