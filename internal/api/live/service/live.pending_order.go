package livesvc

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo/options"

	basesvc "live_commerce/internal/api/base/service"
	livemodels "live_commerce/internal/api/live/models"
	"live_commerce/internal/common"
	"live_commerce/internal/global"
	"live_commerce/internal/tpos"
)

// PendingOrderService quản lý bản ghi tổng hợp theo comment
type PendingOrderService struct {
	*basesvc.BaseServiceMongoImpl[livemodels.PendingOrder]
}

// NewPendingOrderService tạo mới PendingOrderService
func NewPendingOrderService() (*PendingOrderService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.LivePendingOrders)
	if !exist {
		return nil, fmt.Errorf("failed to get live_pending_orders collection: %v", common.ErrNotFound)
	}
	return &PendingOrderService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[livemodels.PendingOrder](coll),
	}, nil
}

// UpsertForComment ghi nhận một lần tạo order cho comment: lần đầu insert với
// repeatCount = 1, các lần sau tăng repeatCount bằng $inc và làm mới
// code/sequence/text. Key duy nhất là commentId nên tạo lại không sinh bản ghi mới.
func (s *PendingOrderService) UpsertForComment(ctx context.Context, comment tpos.Comment, order *tpos.OrderResult, productCodes []string, tag string) (livemodels.PendingOrder, error) {
	update := basesvc.UpdateData{
		Inc: map[string]interface{}{
			"repeatCount": int64(1),
		},
		Set: map[string]interface{}{
			"customerName": comment.AuthorName,
			"sessionIndex": order.SessionIndex,
			"orderCode":    order.Code,
			"orderId":      order.OrderID,
			"commentText":  comment.Message,
			"productCodes": productCodes,
			"tag":          tag,
		},
		SetOnInsert: map[string]interface{}{
			"commentId": comment.ID,
			"createdAt": time.Now().UnixMilli(),
		},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	return s.FindOneAndUpdate(ctx, map[string]interface{}{"commentId": comment.ID}, update, opts)
}
