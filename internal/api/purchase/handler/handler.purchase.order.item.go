package pohdl

import (
	"fmt"

	basehdl "live_commerce/internal/api/base/handler"
	podto "live_commerce/internal/api/purchase/dto"
	pomodels "live_commerce/internal/api/purchase/models"
	posvc "live_commerce/internal/api/purchase/service"
)

// PurchaseOrderItemHandler xử lý CRUD line item của phiếu nhập
type PurchaseOrderItemHandler struct {
	*basehdl.BaseHandler[pomodels.PurchaseOrderItem, podto.CreatePurchaseOrderItemInput, podto.UpdatePurchaseOrderItemInput]
	PurchaseOrderItemService *posvc.PurchaseOrderItemService
}

// NewPurchaseOrderItemHandler khởi tạo PurchaseOrderItemHandler mới
func NewPurchaseOrderItemHandler() (*PurchaseOrderItemHandler, error) {
	service, err := posvc.NewPurchaseOrderItemService()
	if err != nil {
		return nil, fmt.Errorf("failed to create purchase order item service: %v", err)
	}
	hdl := &PurchaseOrderItemHandler{PurchaseOrderItemService: service}
	hdl.BaseHandler = basehdl.NewBaseHandler[pomodels.PurchaseOrderItem, podto.CreatePurchaseOrderItemInput, podto.UpdatePurchaseOrderItemInput](service)
	return hdl, nil
}
