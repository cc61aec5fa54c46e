package main

import (
	"context"

	"github.com/sirupsen/logrus"

	"live_commerce/config"
	invmodels "live_commerce/internal/api/inventory/models"
	livemodels "live_commerce/internal/api/live/models"
	pomodels "live_commerce/internal/api/purchase/models"
	"live_commerce/internal/database"
	"live_commerce/internal/global"
	"live_commerce/internal/tpos"
)

// InitGlobal khởi tạo các biến toàn cục
func InitGlobal() {
	initColNames()         // Khởi tạo tên các collection trong database
	initValidator()        // Khởi tạo validator
	initConfig()           // Khởi tạo cấu hình server
	initDatabase_MongoDB() // Khởi tạo kết nối database
}

// Hàm khởi tạo tên các collection trong database
func initColNames() {
	global.MongoDB_ColNames.LivePendingOrders = "live_pending_orders"
	global.MongoDB_ColNames.LiveProducts = "live_products"
	global.MongoDB_ColNames.LiveOrders = "live_orders"
	global.MongoDB_ColNames.InventoryProducts = "inventory_products"
	global.MongoDB_ColNames.PurchaseOrders = "purchase_orders"
	global.MongoDB_ColNames.PurchaseOrderItems = "purchase_order_items"
	global.MongoDB_ColNames.TposTeams = "tpos_teams"
	global.MongoDB_ColNames.TposCampaigns = "tpos_campaigns"

	logrus.Info("Initialized collection names")
}

// Hàm khởi tạo validator với các custom validator của dự án
func initValidator() {
	global.InitValidator()
	logrus.Info("Initialized validator")
}

// Hàm khởi tạo cấu hình server
func initConfig() {
	global.ServerConfig = config.NewConfig()
	if global.ServerConfig == nil {
		logrus.Fatalf("Failed to initialize config: config is nil")
	}
	logrus.Info("Initialized server config")
}

// Hàm khởi tạo kết nối database
func initDatabase_MongoDB() {
	var err error
	global.MongoDB_Session, err = database.GetInstance(global.ServerConfig)
	if err != nil {
		logrus.Fatalf("Failed to get database instance: %v", err)
	}
	logrus.Info("Connected to MongoDB")

	// Khởi tạo các db và collections nếu chưa có
	if err := database.EnsureDatabaseAndCollections(global.MongoDB_Session); err != nil {
		logrus.Fatalf("Failed to ensure database and collections: %v", err)
	}
	logrus.Info("Ensured database and collections")

	// Khởi tạo các index cho các collection
	dbName := global.ServerConfig.MongoDB_DBName_Data
	db := global.MongoDB_Session.Database(dbName)
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.LivePendingOrders), livemodels.PendingOrder{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.LiveProducts), livemodels.LiveProduct{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.LiveOrders), livemodels.LiveOrder{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.InventoryProducts), invmodels.InventoryProduct{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.PurchaseOrders), pomodels.PurchaseOrder{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.PurchaseOrderItems), pomodels.PurchaseOrderItem{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.TposTeams), tpos.Team{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.TposCampaigns), tpos.Campaign{})
}
