package invhdl

import (
	basehdl "live_commerce/internal/api/base/handler"
	invdto "live_commerce/internal/api/inventory/dto"
	invmodels "live_commerce/internal/api/inventory/models"
	invsvc "live_commerce/internal/api/inventory/service"
)

// InventoryProductHandler xử lý CRUD cache sản phẩm tồn kho
type InventoryProductHandler struct {
	*basehdl.BaseHandler[invmodels.InventoryProduct, invdto.CreateInventoryProductInput, invdto.UpdateInventoryProductInput]
	InventoryProductService *invsvc.InventoryProductService
}

// NewInventoryProductHandler khởi tạo InventoryProductHandler mới
func NewInventoryProductHandler(service *invsvc.InventoryProductService) *InventoryProductHandler {
	hdl := &InventoryProductHandler{InventoryProductService: service}
	hdl.BaseHandler = basehdl.NewBaseHandler[invmodels.InventoryProduct, invdto.CreateInventoryProductInput, invdto.UpdateInventoryProductInput](service)
	return hdl
}
