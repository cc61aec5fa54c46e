package livehdl

import (
	"fmt"

	basehdl "live_commerce/internal/api/base/handler"
	livemodels "live_commerce/internal/api/live/models"
	livesvc "live_commerce/internal/api/live/service"
)

// PendingOrderHandler phục vụ đọc dữ liệu PendingOrder.
// Collection này do pipeline sở hữu, API chỉ mở các route đọc.
type PendingOrderHandler struct {
	*basehdl.BaseHandler[livemodels.PendingOrder, livemodels.PendingOrder, livemodels.PendingOrder]
	PendingOrderService *livesvc.PendingOrderService
}

// NewPendingOrderHandler khởi tạo PendingOrderHandler mới
func NewPendingOrderHandler() (*PendingOrderHandler, error) {
	service, err := livesvc.NewPendingOrderService()
	if err != nil {
		return nil, fmt.Errorf("failed to create pending order service: %v", err)
	}
	hdl := &PendingOrderHandler{PendingOrderService: service}
	hdl.BaseHandler = basehdl.NewBaseHandler[livemodels.PendingOrder, livemodels.PendingOrder, livemodels.PendingOrder](service)
	return hdl, nil
}
