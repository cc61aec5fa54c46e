package global

import (
	"live_commerce/config"
	"live_commerce/internal/registry"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoDB_CollectionName chứa tên các collection trong MongoDB
type MongoDB_CollectionName struct {
	LivePendingOrders  string // Tên collection cho comment chờ tạo đơn (event sourcing theo commentId)
	LiveProducts       string // Tên collection cho sản phẩm trong phiên live
	LiveOrders         string // Tên collection cho đơn hàng đã tạo trên TPOS
	InventoryProducts  string // Tên collection cho cache sản phẩm tồn kho local
	PurchaseOrders     string // Tên collection cho phiếu nhập hàng
	PurchaseOrderItems string // Tên collection cho line item của phiếu nhập hàng
	TposTeams          string // Tên collection cho cache team (kênh bán) từ TPOS
	TposCampaigns      string // Tên collection cho cache chiến dịch live từ TPOS
}

// Các biến toàn cục
var Validate *validator.Validate               // Biến để xác thực dữ liệu
var MongoDB_Session *mongo.Client              // Phiên kết nối tới MongoDB
var ServerConfig *config.Configuration         // Cấu hình của server
var MongoDB_ColNames MongoDB_CollectionName    // Tên các collection

// Các Registry
var RegistryCollections = registry.NewRegistry[*mongo.Collection]() // Registry chứa các collections
var RegistryDatabase = registry.NewRegistry[*mongo.Database]()      // Registry chứa các databases
