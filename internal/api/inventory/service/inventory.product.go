package invsvc

import (
	"context"
	"errors"
	"fmt"
	"strings"

	basesvc "live_commerce/internal/api/base/service"
	invmodels "live_commerce/internal/api/inventory/models"
	"live_commerce/internal/common"
	"live_commerce/internal/global"
	"live_commerce/internal/logger"
	"live_commerce/internal/tpos"
)

// InventoryProductService quản lý cache sản phẩm tồn kho local,
// fallback sang TPOS khi mã chưa có trong cache
type InventoryProductService struct {
	*basesvc.BaseServiceMongoImpl[invmodels.InventoryProduct]
	tposClient *tpos.Client
}

// NewInventoryProductService tạo mới InventoryProductService
func NewInventoryProductService(tposClient *tpos.Client) (*InventoryProductService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.InventoryProducts)
	if !exist {
		return nil, fmt.Errorf("failed to get inventory_products collection: %v", common.ErrNotFound)
	}
	return &InventoryProductService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[invmodels.InventoryProduct](coll),
		tposClient:           tposClient,
	}, nil
}

// FindByCode tra cứu sản phẩm trong cache local theo mã (đã chuẩn hóa viết hoa)
func (s *InventoryProductService) FindByCode(ctx context.Context, code string) (*invmodels.InventoryProduct, error) {
	product, err := s.FindOne(ctx, map[string]interface{}{"code": strings.ToUpper(code)}, nil)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// Resolve tìm sản phẩm theo mã: cache local trước, miss thì tra TPOS rồi ghi vào cache.
// Mã không tồn tại ở cả hai nơi trả về (nil, nil) - caller tự quyết định bỏ qua hay báo lỗi.
func (s *InventoryProductService) Resolve(ctx context.Context, code string) (*invmodels.InventoryProduct, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, nil
	}

	local, err := s.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if local != nil {
		return local, nil
	}

	remote, err := s.tposClient.SearchProductByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if remote == nil {
		logger.GetAppLogger().WithField("code", code).Info("Mã sản phẩm không có trên TPOS, bỏ qua")
		return nil, nil
	}

	cached, err := s.Upsert(ctx, map[string]interface{}{"code": code}, invmodels.InventoryProduct{
		Code:     code,
		RemoteID: remote.ID,
		Name:     remote.Name,
		Variant:  remote.Variant,
		ImageURL: remote.ImageURL,
		Price:    remote.Price,
	})
	if err != nil {
		// Cache fail không làm hỏng kết quả resolve, trả về dữ liệu remote
		logger.GetAppLogger().WithField("code", code).WithError(err).Warn("Không cache được sản phẩm tồn kho")
		return &invmodels.InventoryProduct{
			Code:     code,
			RemoteID: remote.ID,
			Name:     remote.Name,
			Variant:  remote.Variant,
			ImageURL: remote.ImageURL,
			Price:    remote.Price,
		}, nil
	}
	return &cached, nil
}
