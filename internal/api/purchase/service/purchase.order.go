package posvc

import (
	"fmt"

	basesvc "live_commerce/internal/api/base/service"
	pomodels "live_commerce/internal/api/purchase/models"
	"live_commerce/internal/common"
	"live_commerce/internal/global"
)

// PurchaseOrderService quản lý phiếu nhập hàng
type PurchaseOrderService struct {
	*basesvc.BaseServiceMongoImpl[pomodels.PurchaseOrder]
}

// NewPurchaseOrderService tạo mới PurchaseOrderService
func NewPurchaseOrderService() (*PurchaseOrderService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.PurchaseOrders)
	if !exist {
		return nil, fmt.Errorf("failed to get purchase_orders collection: %v", common.ErrNotFound)
	}
	return &PurchaseOrderService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[pomodels.PurchaseOrder](coll),
	}, nil
}
