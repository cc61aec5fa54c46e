// Package router đăng ký các route thuộc domain live: PendingOrder, LiveProduct, LiveOrder
// và route nhận comment tạo đơn.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	livehdl "live_commerce/internal/api/live/handler"
	livesvc "live_commerce/internal/api/live/service"
	apirouter "live_commerce/internal/api/router"
)

// Register đăng ký tất cả route live lên v1.
// CommentOrderService được khởi tạo sẵn ở cmd (cần TPOS client) nên nhận qua tham số.
func Register(commentOrderService *livesvc.CommentOrderService) apirouter.RegisterFunc {
	return func(v1 fiber.Router, r *apirouter.Router) error {
		pendingOrderHandler, err := livehdl.NewPendingOrderHandler()
		if err != nil {
			return fmt.Errorf("create pending order handler: %w", err)
		}
		r.RegisterCRUDRoutes(v1, "/live/pending-order", pendingOrderHandler, apirouter.ReadOnlyConfig, "LivePendingOrder")

		liveProductHandler, err := livehdl.NewLiveProductHandler()
		if err != nil {
			return fmt.Errorf("create live product handler: %w", err)
		}
		r.RegisterCRUDRoutes(v1, "/live/product", liveProductHandler, apirouter.ReadWriteConfig, "LiveProduct")

		liveOrderHandler, err := livehdl.NewLiveOrderHandler()
		if err != nil {
			return fmt.Errorf("create live order handler: %w", err)
		}
		r.RegisterCRUDRoutes(v1, "/live/order", liveOrderHandler, apirouter.ReadOnlyConfig, "LiveOrder")

		commentOrderHandler, err := livehdl.NewCommentOrderHandler(commentOrderService)
		if err != nil {
			return fmt.Errorf("create comment order handler: %w", err)
		}
		apirouter.RegisterRouteWithMiddleware(v1, "/live", "POST", "/comment-order", nil, commentOrderHandler.HandleCreateCommentOrder)

		return nil
	}
}
