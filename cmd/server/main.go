package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"

	basesvc "live_commerce/internal/api/base/service"
	invrouter "live_commerce/internal/api/inventory/router"
	invsvc "live_commerce/internal/api/inventory/service"
	liverouter "live_commerce/internal/api/live/router"
	livesvc "live_commerce/internal/api/live/service"
	porouter "live_commerce/internal/api/purchase/router"
	posvc "live_commerce/internal/api/purchase/service"
	"live_commerce/internal/common"
	"live_commerce/internal/global"
	"live_commerce/internal/logger"
	"live_commerce/internal/tpos"
	"live_commerce/internal/worker"
)

// initLogger khởi tạo hệ thống logger cho toàn bộ ứng dụng
func initLogger() {
	if err := logger.Init(nil); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	logger.GetAppLogger().Info("Logger system initialized successfully")
}

// buildTposClient dựng TPOS client với cache team/campaign trong Mongo
func buildTposClient() *tpos.Client {
	log := logger.GetAppLogger()

	teamColl, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.TposTeams)
	if !exist {
		log.Fatalf("Failed to get tpos_teams collection")
	}
	campaignColl, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.TposCampaigns)
	if !exist {
		log.Fatalf("Failed to get tpos_campaigns collection")
	}

	teams := basesvc.NewBaseServiceMongo[tpos.Team](teamColl)
	campaigns := basesvc.NewBaseServiceMongo[tpos.Campaign](campaignColl)
	return tpos.NewClient(global.ServerConfig, teams, campaigns)
}

// main_thread khởi tạo và chạy Fiber server
func main_thread(app *fiber.App) {
	cfg := global.ServerConfig
	log := logger.GetAppLogger()

	log.WithFields(map[string]interface{}{
		"address":  cfg.Address,
		"protocol": "HTTP",
	}).Info("Starting Fiber server")

	if err := app.Listen(cfg.Address, fiber.ListenConfig{}); err != nil {
		log.Fatalf("Error in Fiber Listen: %v", err)
	}
}

func main() {
	// Khởi tạo logger và các biến toàn cục
	initLogger()
	InitGlobal()
	InitRegistry()

	log := logger.GetAppLogger()
	cfg := global.ServerConfig

	// Dựng các service của pipeline
	tposClient := buildTposClient()

	inventoryService, err := invsvc.NewInventoryProductService(tposClient)
	if err != nil {
		log.Fatalf("Failed to create inventory product service: %v", err)
	}

	pendingOrderService, err := livesvc.NewPendingOrderService()
	if err != nil {
		log.Fatalf("Failed to create pending order service: %v", err)
	}
	liveProductService, err := livesvc.NewLiveProductService()
	if err != nil {
		log.Fatalf("Failed to create live product service: %v", err)
	}
	liveOrderService, err := livesvc.NewLiveOrderService()
	if err != nil {
		log.Fatalf("Failed to create live order service: %v", err)
	}
	commentOrderService := livesvc.NewCommentOrderService(
		tposClient, inventoryService,
		pendingOrderService, liveProductService, liveOrderService,
		cfg.LivePhaseCutoffMinute,
	)

	purchaseOrderService, err := posvc.NewPurchaseOrderService()
	if err != nil {
		log.Fatalf("Failed to create purchase order service: %v", err)
	}
	purchaseItemService, err := posvc.NewPurchaseOrderItemService()
	if err != nil {
		log.Fatalf("Failed to create purchase order item service: %v", err)
	}

	retryPolicy := common.DefaultRetryPolicy()
	retryPolicy.MaxRetries = cfg.SyncMaxRetries
	lease := time.Duration(cfg.SyncClaimLeaseMinutes) * time.Minute
	syncService := posvc.NewPurchaseSyncService(
		purchaseOrderService, purchaseItemService, inventoryService,
		tposClient, retryPolicy, lease,
	)

	// Background workers: quét phiếu pending + thu hồi claim quá hạn
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	syncWorker := worker.NewPurchaseSyncWorker(
		syncService, purchaseItemService,
		time.Duration(cfg.SyncWorkerIntervalSeconds)*time.Second,
		cfg.SyncWorkerBatchSize,
	)
	go syncWorker.Start(ctx)

	sweeper := worker.NewClaimSweeperWorker(purchaseItemService, time.Duration(cfg.SyncWorkerIntervalSeconds)*time.Second, lease)
	go sweeper.Start(ctx)

	// Dựng app với route của các domain rồi chạy trên main thread
	app := InitFiberApp(
		liverouter.Register(commentOrderService),
		invrouter.Register(inventoryService),
		porouter.Register(syncService),
	)
	main_thread(app)
}
