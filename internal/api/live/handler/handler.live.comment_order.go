package livehdl

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v3"

	basehdl "live_commerce/internal/api/base/handler"
	livedto "live_commerce/internal/api/live/dto"
	livemodels "live_commerce/internal/api/live/models"
	livesvc "live_commerce/internal/api/live/service"
)

// CommentOrderHandler nhận comment livestream và kích hoạt fan-out tạo đơn
type CommentOrderHandler struct {
	*basehdl.BaseHandler[livemodels.PendingOrder, livedto.CommentOrderInput, livedto.CommentOrderInput]
	CommentOrderService *livesvc.CommentOrderService
}

// NewCommentOrderHandler khởi tạo CommentOrderHandler mới
func NewCommentOrderHandler(commentOrderService *livesvc.CommentOrderService) (*CommentOrderHandler, error) {
	pendingOrderService, err := livesvc.NewPendingOrderService()
	if err != nil {
		return nil, fmt.Errorf("failed to create pending order service: %v", err)
	}
	hdl := &CommentOrderHandler{CommentOrderService: commentOrderService}
	hdl.BaseHandler = basehdl.NewBaseHandler[livemodels.PendingOrder, livedto.CommentOrderInput, livedto.CommentOrderInput](pendingOrderService)
	return hdl, nil
}

// HandleCreateCommentOrder xử lý POST /live/comment-order
func (h *CommentOrderHandler) HandleCreateCommentOrder(c fiber.Ctx) error {
	input := new(livedto.CommentOrderInput)
	if err := h.ParseRequestBody(c, input); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	if err := h.ValidateInput(input); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}

	data, err := h.CommentOrderService.CreateForComment(context.Background(), *input)
	h.HandleResponse(c, data, err)
	return nil
}
