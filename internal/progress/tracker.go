// Package progress theo dõi tiến độ của một batch đồng bộ: nghe sự kiện
// thay đổi dữ liệu, đọc lại trạng thái authoritative từ DB và quyết định
// thời điểm hoàn tất. Mỗi batch có một Tracker riêng do caller sở hữu,
// không có trạng thái cấp process.
package progress

import (
	"context"
	"sync"
	"time"

	"live_commerce/internal/api/events"
	"live_commerce/internal/logger"
)

// Trạng thái của tracker
const (
	StateWatching = "watching"
	StateComplete = "complete"
	StateTimedOut = "timed-out"
)

// Kết luận cuối cùng khi batch hoàn tất
const (
	DispositionAllSuccess = "all-success"
	DispositionAllFailed  = "all-failed"
	DispositionMixed      = "mixed"
	DispositionTimedOut   = "timed-out"
)

// MsgTimedOut là thông báo riêng cho trường hợp chạm trần thời gian,
// phân biệt với thành công lẫn thất bại tường minh
const MsgTimedOut = "Quá thời gian chờ đồng bộ, vui lòng kiểm tra lại trạng thái sau"

// StatusReader đọc số lượng thành công/thất bại authoritative của batch.
// Tracker không bao giờ tin payload của notification - mọi quyết định
// dựa trên một lần đọc mới từ nguồn dữ liệu thật.
type StatusReader interface {
	ReadCounts(ctx context.Context) (success int64, failed int64, err error)
}

// Snapshot là ảnh chụp tiến độ, đọc được bất kỳ lúc nào
type Snapshot struct {
	SuccessCount   int64  `json:"successCount"`
	FailedCount    int64  `json:"failedCount"`
	CompletedCount int64  `json:"completedCount"`
	TotalItems     int64  `json:"totalItems"`
	IsComplete     bool   `json:"isComplete"`
	State          string `json:"state"`
	Message        string `json:"message,omitempty"`
}

// CompletionFunc được gọi đúng một lần khi tracker kết thúc
type CompletionFunc func(snapshot Snapshot, disposition string)

// Config cấu hình một tracker cho một batch
type Config struct {
	ParentID   string // Id của batch (để log)
	TotalItems int64  // Tổng số item kỳ vọng

	// Batch vừa tạo xong chắc chắn chưa có item hoàn tất,
	// caller set true để bỏ qua lần đọc đầu tiên
	SkipInitialQuery bool

	// Collection phát sinh sự kiện và predicate lọc document thuộc batch.
	// Matches nil nghĩa là nhận mọi document của collection.
	Collection string
	Matches    func(doc interface{}) bool

	Debounce         time.Duration // Gom các notification dồn dập thành một lần đọc
	HeartbeatSilence time.Duration // Im lặng quá ngưỡng này thì chuyển sang polling
	PollInterval     time.Duration // Chu kỳ polling fallback
	MaxPolls         int           // Số lần poll tối đa
	Ceiling          time.Duration // Trần thời gian sống, chạm là timed-out
}

// Tracker theo dõi một batch từ lúc Start đến khi complete hoặc timed-out
type Tracker struct {
	cfg      Config
	reader   StatusReader
	complete CompletionFunc

	mu       sync.Mutex
	snapshot Snapshot
	finished bool

	notifyCh    chan struct{}
	stopCh      chan struct{}
	stopOnce    sync.Once
	unsubscribe func()
}

// NewTracker tạo tracker mới ở trạng thái watching, chưa chạy
func NewTracker(cfg Config, reader StatusReader, onComplete CompletionFunc) *Tracker {
	return &Tracker{
		cfg:      cfg,
		reader:   reader,
		complete: onComplete,
		snapshot: Snapshot{
			TotalItems: cfg.TotalItems,
			State:      StateWatching,
		},
		notifyCh: make(chan struct{}, 1),
		stopCh:   make(chan struct{}),
	}
}

// Start đăng ký nghe sự kiện và chạy vòng theo dõi.
// Lần đọc đầu tiên chạy ngay trừ khi SkipInitialQuery - đóng race batch
// hoàn tất giữa lúc tạo và lúc subscribe xong.
func (t *Tracker) Start(ctx context.Context) {
	t.unsubscribe = events.SubscribeDataChanged(func(_ context.Context, e events.DataChangeEvent) {
		if e.CollectionName != t.cfg.Collection {
			return
		}
		if t.cfg.Matches != nil && e.Document != nil && !t.cfg.Matches(e.Document) {
			return
		}
		select {
		case t.notifyCh <- struct{}{}:
		default:
			// Đã có notification chờ xử lý, dồn vào cùng một lần đọc
		}
	})

	// Batch đã xong ngay từ lần đọc đầu: không giữ subscription
	// và không chạy vòng theo dõi nữa
	if !t.cfg.SkipInitialQuery && t.refresh(ctx) {
		t.Stop()
		return
	}

	go t.run(ctx)
}

// Stop hủy đăng ký và dừng vòng theo dõi. An toàn khi gọi nhiều lần.
func (t *Tracker) Stop() {
	t.stopOnce.Do(func() {
		if t.unsubscribe != nil {
			t.unsubscribe()
		}
		close(t.stopCh)
	})
}

// Snapshot trả về ảnh chụp tiến độ hiện tại
func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshot
}

// run là vòng theo dõi chính: debounce notification, heartbeat chuyển sang
// polling đúng một lần, và trần thời gian cứng.
func (t *Tracker) run(ctx context.Context) {
	log := logger.GetAppLogger().WithField("parentId", t.cfg.ParentID)

	ceiling := time.NewTimer(t.cfg.Ceiling)
	defer ceiling.Stop()

	heartbeat := time.NewTimer(t.cfg.HeartbeatSilence)
	defer heartbeat.Stop()

	debounce := time.NewTimer(t.cfg.Debounce)
	if !debounce.Stop() {
		<-debounce.C
	}
	defer debounce.Stop()

	var pollTick *time.Ticker
	var pollC <-chan time.Time
	polling := false
	polls := 0
	defer func() {
		if pollTick != nil {
			pollTick.Stop()
		}
	}()

	for {
		select {
		case <-t.stopCh:
			return

		case <-ctx.Done():
			t.Stop()
			return

		case <-t.notifyCh:
			// Nhận notification: reset heartbeat, gom các thay đổi dồn dập
			// bằng debounce trước khi đọc lại DB
			if !polling {
				if !heartbeat.Stop() {
					select {
					case <-heartbeat.C:
					default:
					}
				}
				heartbeat.Reset(t.cfg.HeartbeatSilence)
			}
			if !debounce.Stop() {
				select {
				case <-debounce.C:
				default:
				}
			}
			debounce.Reset(t.cfg.Debounce)

		case <-debounce.C:
			if t.refresh(ctx) {
				t.Stop()
				return
			}

		case <-heartbeat.C:
			// Kênh notification có thể chết im lặng: chuyển sang polling,
			// chỉ chuyển đúng một lần
			if !polling {
				polling = true
				pollTick = time.NewTicker(t.cfg.PollInterval)
				pollC = pollTick.C
				log.Warn("Không nhận được notification, chuyển sang polling")
			}

		case <-pollC:
			polls++
			if t.refresh(ctx) {
				t.Stop()
				return
			}
			if polls >= t.cfg.MaxPolls {
				// Hết quota poll: ngừng poll nhưng vẫn nghe notification
				// cho đến khi chạm trần
				pollTick.Stop()
				pollC = nil
			}

		case <-ceiling.C:
			t.finish(StateTimedOut, DispositionTimedOut, MsgTimedOut)
			t.Stop()
			return
		}
	}
}

// refresh đọc lại trạng thái authoritative, trả về true khi batch đã hoàn tất
func (t *Tracker) refresh(ctx context.Context) bool {
	success, failed, err := t.reader.ReadCounts(ctx)
	if err != nil {
		logger.GetAppLogger().WithField("parentId", t.cfg.ParentID).WithError(err).Warn("Đọc trạng thái batch thất bại")
		return false
	}

	t.mu.Lock()
	if t.finished {
		t.mu.Unlock()
		return true
	}
	t.snapshot.SuccessCount = success
	t.snapshot.FailedCount = failed
	t.snapshot.CompletedCount = success + failed
	done := t.snapshot.CompletedCount >= t.cfg.TotalItems
	t.mu.Unlock()

	if !done {
		return false
	}

	disposition := DispositionMixed
	switch {
	case failed == 0:
		disposition = DispositionAllSuccess
	case success == 0:
		disposition = DispositionAllFailed
	}
	t.finish(StateComplete, disposition, "")
	return true
}

// finish chốt trạng thái terminal và gọi callback đúng một lần
func (t *Tracker) finish(state string, disposition string, message string) {
	t.mu.Lock()
	if t.finished {
		t.mu.Unlock()
		return
	}
	t.finished = true
	t.snapshot.State = state
	t.snapshot.IsComplete = state == StateComplete
	t.snapshot.Message = message
	snapshot := t.snapshot
	t.mu.Unlock()

	if t.complete != nil {
		t.complete(snapshot, disposition)
	}
}
