package worker

import (
	"context"
	"time"

	posvc "live_commerce/internal/api/purchase/service"
	"live_commerce/internal/logger"
)

// ClaimSweeperWorker thu hồi các claim processing quá hạn lease.
// Worker chết giữa chừng để lại item kẹt ở processing; sweeper trả chúng
// về pending để lần quét sau xử lý tiếp, không cần thao tác tay.
type ClaimSweeperWorker struct {
	itemService *posvc.PurchaseOrderItemService
	interval    time.Duration
	lease       time.Duration
}

// NewClaimSweeperWorker tạo mới ClaimSweeperWorker
func NewClaimSweeperWorker(itemService *posvc.PurchaseOrderItemService, interval time.Duration, lease time.Duration) *ClaimSweeperWorker {
	if interval < 30*time.Second {
		interval = 1 * time.Minute
	}
	if lease < time.Minute {
		lease = 10 * time.Minute
	}
	return &ClaimSweeperWorker{
		itemService: itemService,
		interval:    interval,
		lease:       lease,
	}
}

// Start chạy sweeper cho đến khi context bị hủy
func (w *ClaimSweeperWorker) Start(ctx context.Context) {
	log := logger.GetSyncLogger()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	log.WithFields(map[string]interface{}{
		"interval": w.interval.String(),
		"lease":    w.lease.String(),
	}).Info("🧹 [CLAIM_SWEEPER] Starting Claim Sweeper Worker...")

	for {
		select {
		case <-ctx.Done():
			log.Info("🧹 [CLAIM_SWEEPER] Claim Sweeper Worker stopped")
			return
		case <-ticker.C:
			func() {
				defer func() {
					if r := recover(); r != nil {
						log.WithField("panic", r).Error("🧹 [CLAIM_SWEEPER] Panic khi thu hồi claim, sẽ tiếp tục ở lần chạy tiếp theo")
					}
				}()

				released, err := w.itemService.ReleaseStaleClaims(ctx, w.lease)
				if err != nil {
					log.WithError(err).Error("🧹 [CLAIM_SWEEPER] Thu hồi claim quá hạn thất bại")
					return
				}
				if released > 0 {
					log.WithField("released", released).Info("🧹 [CLAIM_SWEEPER] Đã trả item kẹt ở processing về pending")
				}
			}()
		}
	}
}
