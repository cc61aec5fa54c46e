package livehdl

import (
	"fmt"

	basehdl "live_commerce/internal/api/base/handler"
	livemodels "live_commerce/internal/api/live/models"
	livesvc "live_commerce/internal/api/live/service"
)

// LiveOrderHandler phục vụ đọc dòng đơn LiveOrder (immutable, chỉ đọc qua API)
type LiveOrderHandler struct {
	*basehdl.BaseHandler[livemodels.LiveOrder, livemodels.LiveOrder, livemodels.LiveOrder]
	LiveOrderService *livesvc.LiveOrderService
}

// NewLiveOrderHandler khởi tạo LiveOrderHandler mới
func NewLiveOrderHandler() (*LiveOrderHandler, error) {
	service, err := livesvc.NewLiveOrderService()
	if err != nil {
		return nil, fmt.Errorf("failed to create live order service: %v", err)
	}
	hdl := &LiveOrderHandler{LiveOrderService: service}
	hdl.BaseHandler = basehdl.NewBaseHandler[livemodels.LiveOrder, livemodels.LiveOrder, livemodels.LiveOrder](service)
	return hdl, nil
}
