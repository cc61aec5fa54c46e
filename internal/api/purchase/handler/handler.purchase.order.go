package pohdl

import (
	"fmt"

	basehdl "live_commerce/internal/api/base/handler"
	podto "live_commerce/internal/api/purchase/dto"
	pomodels "live_commerce/internal/api/purchase/models"
	posvc "live_commerce/internal/api/purchase/service"
)

// PurchaseOrderHandler xử lý CRUD phiếu nhập hàng
type PurchaseOrderHandler struct {
	*basehdl.BaseHandler[pomodels.PurchaseOrder, podto.CreatePurchaseOrderInput, podto.UpdatePurchaseOrderInput]
	PurchaseOrderService *posvc.PurchaseOrderService
}

// NewPurchaseOrderHandler khởi tạo PurchaseOrderHandler mới
func NewPurchaseOrderHandler() (*PurchaseOrderHandler, error) {
	service, err := posvc.NewPurchaseOrderService()
	if err != nil {
		return nil, fmt.Errorf("failed to create purchase order service: %v", err)
	}
	hdl := &PurchaseOrderHandler{PurchaseOrderService: service}
	hdl.BaseHandler = basehdl.NewBaseHandler[pomodels.PurchaseOrder, podto.CreatePurchaseOrderInput, podto.UpdatePurchaseOrderInput](service)
	return hdl, nil
}
