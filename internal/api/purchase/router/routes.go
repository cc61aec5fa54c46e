// Package router đăng ký các route thuộc domain purchase: phiếu nhập,
// line item và trigger/tiến độ đồng bộ.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	pohdl "live_commerce/internal/api/purchase/handler"
	posvc "live_commerce/internal/api/purchase/service"
	apirouter "live_commerce/internal/api/router"
)

// Register đăng ký tất cả route purchase lên v1.
// SyncService được dựng ở cmd (cần TPOS client và retry policy) nên nhận qua tham số.
func Register(syncService *posvc.PurchaseSyncService) apirouter.RegisterFunc {
	return func(v1 fiber.Router, r *apirouter.Router) error {
		orderHandler, err := pohdl.NewPurchaseOrderHandler()
		if err != nil {
			return fmt.Errorf("create purchase order handler: %w", err)
		}
		r.RegisterCRUDRoutes(v1, "/purchase-order", orderHandler, apirouter.ReadWriteConfig, "PurchaseOrder")

		itemHandler, err := pohdl.NewPurchaseOrderItemHandler()
		if err != nil {
			return fmt.Errorf("create purchase order item handler: %w", err)
		}
		r.RegisterCRUDRoutes(v1, "/purchase-order/item", itemHandler, apirouter.ReadWriteConfig, "PurchaseOrderItem")

		syncHandler := pohdl.NewSyncHandler(syncService, itemHandler.PurchaseOrderItemService)
		apirouter.RegisterRouteWithMiddleware(v1, "/purchase-order", "POST", "/:id/sync", nil, syncHandler.HandleTriggerSync)
		apirouter.RegisterRouteWithMiddleware(v1, "/purchase-order", "GET", "/:id/sync-progress", nil, syncHandler.HandleSyncProgress)

		return nil
	}
}
