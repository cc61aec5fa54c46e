package livesvc

import (
	"fmt"

	basesvc "live_commerce/internal/api/base/service"
	livemodels "live_commerce/internal/api/live/models"
	"live_commerce/internal/common"
	"live_commerce/internal/global"
)

// LiveOrderService quản lý dòng đơn (comment, sản phẩm).
// Bản ghi immutable: service này chỉ insert và đọc.
type LiveOrderService struct {
	*basesvc.BaseServiceMongoImpl[livemodels.LiveOrder]
}

// NewLiveOrderService tạo mới LiveOrderService
func NewLiveOrderService() (*LiveOrderService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.LiveOrders)
	if !exist {
		return nil, fmt.Errorf("failed to get live_orders collection: %v", common.ErrNotFound)
	}
	return &LiveOrderService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[livemodels.LiveOrder](coll),
	}, nil
}
