package livesvc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo/options"

	basesvc "live_commerce/internal/api/base/service"
	invmodels "live_commerce/internal/api/inventory/models"
	livemodels "live_commerce/internal/api/live/models"
	"live_commerce/internal/common"
	"live_commerce/internal/global"
)

// LiveProductService quản lý sản phẩm trong phiên live
type LiveProductService struct {
	*basesvc.BaseServiceMongoImpl[livemodels.LiveProduct]
}

// NewLiveProductService tạo mới LiveProductService
func NewLiveProductService() (*LiveProductService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.LiveProducts)
	if !exist {
		return nil, fmt.Errorf("failed to get live_products collection: %v", common.ErrNotFound)
	}
	return &LiveProductService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[livemodels.LiveProduct](coll),
	}, nil
}

// GetOrCreate tìm sản phẩm của phiên theo (ngày, phase, mã, variant),
// chưa có thì tạo lười từ dữ liệu inventory. Bản ghi tạo lười có
// preparedQuantity = 0 nên mọi lượt chốt trên nó đều bị gắn cờ oversell.
func (s *LiveProductService) GetOrCreate(ctx context.Context, bucket SessionBucket, product *invmodels.InventoryProduct) (livemodels.LiveProduct, error) {
	filter := map[string]interface{}{
		"sessionDate": bucket.Date,
		"phase":       bucket.Phase,
		"productCode": product.Code,
		"variant":     product.Variant,
	}

	existing, err := s.FindOne(ctx, filter, nil)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return existing, err
	}

	// Upsert thay vì insert: hai comment cùng sản phẩm chạy song song
	// không được sinh hai bản ghi trên cùng khóa phiên
	update := basesvc.UpdateData{
		Set: map[string]interface{}{
			"name":     product.Name,
			"imageUrl": product.ImageURL,
		},
		SetOnInsert: map[string]interface{}{
			"sessionDate":      bucket.Date,
			"phase":            bucket.Phase,
			"productCode":      product.Code,
			"variant":          product.Variant,
			"preparedQuantity": int64(0),
			"soldQuantity":     int64(0),
			"createdAt":        time.Now().UnixMilli(),
		},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	return s.FindOneAndUpdate(ctx, filter, update, opts)
}

// ClaimSold tăng soldQuantity đúng 1 bằng $inc atomic và trả về trạng thái
// counter TRƯỚC khi tăng, để caller tính cờ oversell
// (sold trước tăng >= prepared nghĩa là lượt chốt này đã vượt cung).
func (s *LiveProductService) ClaimSold(ctx context.Context, productID interface{}) (livemodels.LiveProduct, error) {
	update := basesvc.UpdateData{
		Inc: map[string]interface{}{
			"soldQuantity": int64(1),
		},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.Before)
	return s.FindOneAndUpdate(ctx, map[string]interface{}{"_id": productID}, update, opts)
}
