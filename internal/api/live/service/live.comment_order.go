package livesvc

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	invmodels "live_commerce/internal/api/inventory/models"
	invsvc "live_commerce/internal/api/inventory/service"
	livedto "live_commerce/internal/api/live/dto"
	livemodels "live_commerce/internal/api/live/models"
	"live_commerce/internal/common"
	"live_commerce/internal/logger"
	"live_commerce/internal/tpos"
)

// Giới hạn số mã resolve song song trong một comment
const resolveParallelLimit = 4

// Các cộng tác viên của fan-out writer, thu hẹp về đúng thao tác cần dùng
// để logic fan-out test được độc lập với tầng lưu trữ.
type orderCreator interface {
	CreateOrder(ctx context.Context, comment tpos.Comment, postID string) (*tpos.OrderResult, error)
}

type productResolver interface {
	Resolve(ctx context.Context, code string) (*invmodels.InventoryProduct, error)
}

type pendingOrderUpserter interface {
	UpsertForComment(ctx context.Context, comment tpos.Comment, order *tpos.OrderResult, productCodes []string, tag string) (livemodels.PendingOrder, error)
}

type liveProductStore interface {
	GetOrCreate(ctx context.Context, bucket SessionBucket, product *invmodels.InventoryProduct) (livemodels.LiveProduct, error)
	ClaimSold(ctx context.Context, productID interface{}) (livemodels.LiveProduct, error)
}

type liveOrderInserter interface {
	InsertOne(ctx context.Context, order livemodels.LiveOrder) (livemodels.LiveOrder, error)
}

// CommentOrderService là fan-out writer: nhận một comment livestream,
// tạo order trên TPOS rồi ghi PendingOrder, LiveProduct, LiveOrder local.
type CommentOrderService struct {
	tposClient    orderCreator
	inventory     productResolver
	pendingOrders pendingOrderUpserter
	liveProducts  liveProductStore
	liveOrders    liveOrderInserter
	cutoffMinute  int
}

// NewCommentOrderService tạo mới CommentOrderService
func NewCommentOrderService(tposClient *tpos.Client, inventory *invsvc.InventoryProductService, pendingOrders *PendingOrderService, liveProducts *LiveProductService, liveOrders *LiveOrderService, cutoffMinute int) *CommentOrderService {
	return &CommentOrderService{
		tposClient:    tposClient,
		inventory:     inventory,
		pendingOrders: pendingOrders,
		liveProducts:  liveProducts,
		liveOrders:    liveOrders,
		cutoffMinute:  cutoffMinute,
	}
}

// CreateForComment xử lý trọn một comment:
//  1. Tạo order trên TPOS - thất bại ở bước này hủy toàn bộ, không ghi gì local.
//  2. Trích mã sản phẩm từ nội dung comment, resolve song song qua inventory.
//  3. Upsert PendingOrder theo commentId ($inc repeatCount khi comment đã có).
//  4. Với từng sản phẩm resolve được: xác định phiên từ timestamp comment,
//     get-or-create LiveProduct, claim counter soldQuantity atomic để tính cờ
//     oversell, rồi insert LiveOrder.
//
// Lỗi ở mức từng sản phẩm (miss, lỗi ghi) chỉ ghi log và bỏ qua sản phẩm đó,
// không bao giờ hủy các sản phẩm còn lại của cùng comment.
func (s *CommentOrderService) CreateForComment(ctx context.Context, in livedto.CommentOrderInput) (*livedto.CommentOrderResult, error) {
	createdTime := in.CreatedTime
	if createdTime == 0 {
		createdTime = time.Now().UnixMilli()
	}
	comment := tpos.Comment{
		ID:          in.CommentID,
		AuthorName:  in.AuthorName,
		Message:     in.Message,
		ChannelID:   in.ChannelID,
		ChannelName: in.ChannelName,
		CreatedTime: createdTime,
	}

	order, err := s.tposClient.CreateOrder(ctx, comment, in.PostID)
	if err != nil {
		// Surface nguyên văn lỗi TPOS (body + payload đã gửi) cho operator
		var apiErr *tpos.RemoteApiError
		if errors.As(err, &apiErr) {
			return nil, common.NewError(common.ErrCodeRemoteOrder, "Tạo order trên TPOS thất bại", common.StatusBadGateway, apiErr)
		}
		return nil, err
	}

	codes := ExtractProductCodes(in.Message)
	resolved := s.resolveCodes(ctx, codes)

	if _, err := s.pendingOrders.UpsertForComment(ctx, comment, order, codes, in.Tag); err != nil {
		return nil, err
	}

	bucket := BucketForTime(time.UnixMilli(createdTime), s.cutoffMinute)
	log := logger.GetAppLogger().WithField("commentId", in.CommentID)

	result := &livedto.CommentOrderResult{
		OrderID:      order.OrderID,
		OrderCode:    order.Code,
		SessionIndex: order.SessionIndex,
		ProductCodes: codes,
		SkippedCodes: []string{},
	}

	for i, code := range codes {
		product := resolved[i]
		if product == nil {
			result.SkippedCodes = append(result.SkippedCodes, code)
			continue
		}

		liveProduct, err := s.liveProducts.GetOrCreate(ctx, bucket, product)
		if err != nil {
			log.WithField("code", code).WithError(err).Warn("Không tạo được sản phẩm phiên live, bỏ qua mã này")
			result.SkippedCodes = append(result.SkippedCodes, code)
			continue
		}

		// Counter trả về là trạng thái TRƯỚC khi tăng
		before, err := s.liveProducts.ClaimSold(ctx, liveProduct.ID)
		if err != nil {
			log.WithField("code", code).WithError(err).Warn("Không tăng được counter soldQuantity, bỏ qua mã này")
			result.SkippedCodes = append(result.SkippedCodes, code)
			continue
		}
		isOversell := before.SoldQuantity >= before.PreparedQuantity

		_, err = s.liveOrders.InsertOne(ctx, livemodels.LiveOrder{
			CommentID:     in.CommentID,
			LiveProductID: liveProduct.ID,
			ProductCode:   code,
			OrderCode:     order.Code,
			OrderID:       order.OrderID,
			IsOversell:    isOversell,
		})
		if err != nil {
			// Counter đã tăng mà dòng đơn không ghi được: chấp nhận lệch,
			// ghi log để đối soát tay
			log.WithField("code", code).WithError(err).Error("Tạo LiveOrder thất bại sau khi đã tăng counter")
			result.SkippedCodes = append(result.SkippedCodes, code)
			continue
		}

		if isOversell {
			log.WithField("code", code).Warn("Lượt chốt vượt số lượng chuẩn bị, đã gắn cờ oversell")
		}
		result.CreatedOrders++
	}

	return result, nil
}

// resolveCodes resolve các mã song song, giới hạn số goroutine.
// Mã lỗi hoặc không khớp trả về nil ở đúng vị trí của nó, không làm hỏng các mã khác.
func (s *CommentOrderService) resolveCodes(ctx context.Context, codes []string) []*invmodels.InventoryProduct {
	resolved := make([]*invmodels.InventoryProduct, len(codes))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(resolveParallelLimit)
	for i, code := range codes {
		i, code := i, code
		g.Go(func() error {
			product, err := s.inventory.Resolve(gctx, code)
			if err != nil {
				logger.GetAppLogger().WithField("code", code).WithError(err).Warn("Resolve mã sản phẩm thất bại, bỏ qua")
				return nil
			}
			resolved[i] = product
			return nil
		})
	}
	_ = g.Wait()

	return resolved
}
