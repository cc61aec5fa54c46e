// Package router đăng ký route CRUD cho cache sản phẩm tồn kho
package router

import (
	"github.com/gofiber/fiber/v3"

	invhdl "live_commerce/internal/api/inventory/handler"
	invsvc "live_commerce/internal/api/inventory/service"
	apirouter "live_commerce/internal/api/router"
)

// Register đăng ký route inventory lên v1
func Register(service *invsvc.InventoryProductService) apirouter.RegisterFunc {
	return func(v1 fiber.Router, r *apirouter.Router) error {
		handler := invhdl.NewInventoryProductHandler(service)
		r.RegisterCRUDRoutes(v1, "/inventory/product", handler, apirouter.ReadWriteConfig, "InventoryProduct")
		return nil
	}
}
