package livehdl

import (
	"fmt"

	basehdl "live_commerce/internal/api/base/handler"
	livedto "live_commerce/internal/api/live/dto"
	livemodels "live_commerce/internal/api/live/models"
	livesvc "live_commerce/internal/api/live/service"
)

// LiveProductHandler xử lý CRUD sản phẩm phiên live.
// DTO update không khai báo soldQuantity nên API không thể đụng vào counter đó.
type LiveProductHandler struct {
	*basehdl.BaseHandler[livemodels.LiveProduct, livedto.CreateLiveProductInput, livedto.UpdateLiveProductInput]
	LiveProductService *livesvc.LiveProductService
}

// NewLiveProductHandler khởi tạo LiveProductHandler mới
func NewLiveProductHandler() (*LiveProductHandler, error) {
	service, err := livesvc.NewLiveProductService()
	if err != nil {
		return nil, fmt.Errorf("failed to create live product service: %v", err)
	}
	hdl := &LiveProductHandler{LiveProductService: service}
	hdl.BaseHandler = basehdl.NewBaseHandler[livemodels.LiveProduct, livedto.CreateLiveProductInput, livedto.UpdateLiveProductInput](service)
	return hdl, nil
}
