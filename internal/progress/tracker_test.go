package progress

import (
	"context"
	"sync"
	"testing"
	"time"

	"live_commerce/internal/api/events"
)

// fakeReader giả lập nguồn đếm authoritative, cho phép test điều khiển
// số liệu trả về giữa các lần đọc
type fakeReader struct {
	mu      sync.Mutex
	success int64
	failed  int64
	calls   int
}

func (f *fakeReader) ReadCounts(ctx context.Context) (int64, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.success, f.failed, nil
}

func (f *fakeReader) set(success, failed int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.success = success
	f.failed = failed
}

func (f *fakeReader) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type completion struct {
	snapshot    Snapshot
	disposition string
}

func waitCompletion(t *testing.T, ch <-chan completion, timeout time.Duration) completion {
	t.Helper()
	select {
	case c := <-ch:
		return c
	case <-time.After(timeout):
		t.Fatal("tracker không hoàn tất trong thời gian chờ")
		return completion{}
	}
}

func TestTrackerCompletesFromInitialQuery(t *testing.T) {
	reader := &fakeReader{success: 3, failed: 2}
	done := make(chan completion, 1)

	tracker := NewTracker(Config{
		ParentID:         "batch-1",
		TotalItems:       5,
		Collection:       "purchase_order_items",
		Debounce:         10 * time.Millisecond,
		HeartbeatSilence: time.Second,
		PollInterval:     50 * time.Millisecond,
		MaxPolls:         3,
		Ceiling:          5 * time.Second,
	}, reader, func(s Snapshot, d string) {
		done <- completion{s, d}
	})
	defer tracker.Stop()

	// Batch đã xong trước cả khi tracker chạy, lần đọc đầu phải bắt được
	tracker.Start(context.Background())

	c := waitCompletion(t, done, time.Second)
	if c.disposition != DispositionMixed {
		t.Errorf("disposition = %q, muốn %q", c.disposition, DispositionMixed)
	}
	if !c.snapshot.IsComplete || c.snapshot.State != StateComplete {
		t.Errorf("snapshot chưa complete: %+v", c.snapshot)
	}
	if c.snapshot.CompletedCount != 5 {
		t.Errorf("completedCount = %d, muốn 5", c.snapshot.CompletedCount)
	}
}

func TestTrackerUnsubscribesWhenInitialReadCompletes(t *testing.T) {
	reader := &fakeReader{success: 5}
	done := make(chan completion, 1)

	tracker := NewTracker(Config{
		ParentID:         "batch-1b",
		TotalItems:       5,
		Collection:       "purchase_order_items",
		Debounce:         10 * time.Millisecond,
		HeartbeatSilence: time.Second,
		PollInterval:     50 * time.Millisecond,
		MaxPolls:         3,
		Ceiling:          5 * time.Second,
	}, reader, func(s Snapshot, d string) {
		done <- completion{s, d}
	})
	tracker.Start(context.Background())
	waitCompletion(t, done, time.Second)

	// Sau khi complete tracker phải hủy subscription: sự kiện mới
	// không được kích hoạt thêm lần đọc nào
	reads := reader.callCount()
	events.EmitDataChanged(context.Background(), events.DataChangeEvent{
		CollectionName: "purchase_order_items",
		Operation:      events.OpUpdate,
	})
	time.Sleep(100 * time.Millisecond)
	if got := reader.callCount(); got != reads {
		t.Errorf("tracker đã complete vẫn còn đọc trạng thái: %d lần đọc thêm", got-reads)
	}
}

func TestTrackerCompletesFromNotifications(t *testing.T) {
	reader := &fakeReader{}
	done := make(chan completion, 1)

	tracker := NewTracker(Config{
		ParentID:         "batch-2",
		TotalItems:       3,
		SkipInitialQuery: true,
		Collection:       "purchase_order_items",
		Debounce:         10 * time.Millisecond,
		HeartbeatSilence: 2 * time.Second,
		PollInterval:     50 * time.Millisecond,
		MaxPolls:         3,
		Ceiling:          5 * time.Second,
	}, reader, func(s Snapshot, d string) {
		done <- completion{s, d}
	})
	defer tracker.Stop()
	tracker.Start(context.Background())

	// Đợt đầu chưa đủ
	reader.set(2, 0)
	events.EmitDataChanged(context.Background(), events.DataChangeEvent{
		CollectionName: "purchase_order_items",
		Operation:      events.OpUpdate,
	})

	time.Sleep(100 * time.Millisecond)
	if tracker.Snapshot().IsComplete {
		t.Fatal("batch chưa đủ item mà tracker đã complete")
	}

	// Đợt hai đủ, toàn bộ thành công
	reader.set(3, 0)
	events.EmitDataChanged(context.Background(), events.DataChangeEvent{
		CollectionName: "purchase_order_items",
		Operation:      events.OpUpdate,
	})

	c := waitCompletion(t, done, time.Second)
	if c.disposition != DispositionAllSuccess {
		t.Errorf("disposition = %q, muốn %q", c.disposition, DispositionAllSuccess)
	}
	if c.snapshot.SuccessCount != 3 || c.snapshot.FailedCount != 0 {
		t.Errorf("snapshot counters sai: %+v", c.snapshot)
	}
}

func TestTrackerAllFailedDisposition(t *testing.T) {
	reader := &fakeReader{success: 0, failed: 4}
	done := make(chan completion, 1)

	tracker := NewTracker(Config{
		ParentID:         "batch-3",
		TotalItems:       4,
		Collection:       "purchase_order_items",
		Debounce:         10 * time.Millisecond,
		HeartbeatSilence: time.Second,
		PollInterval:     50 * time.Millisecond,
		MaxPolls:         3,
		Ceiling:          5 * time.Second,
	}, reader, func(s Snapshot, d string) {
		done <- completion{s, d}
	})
	defer tracker.Stop()
	tracker.Start(context.Background())

	c := waitCompletion(t, done, time.Second)
	if c.disposition != DispositionAllFailed {
		t.Errorf("disposition = %q, muốn %q", c.disposition, DispositionAllFailed)
	}
}

func TestTrackerIgnoresOtherCollections(t *testing.T) {
	reader := &fakeReader{}

	tracker := NewTracker(Config{
		ParentID:         "batch-4",
		TotalItems:       1,
		SkipInitialQuery: true,
		Collection:       "purchase_order_items",
		Debounce:         5 * time.Millisecond,
		HeartbeatSilence: 5 * time.Second,
		PollInterval:     time.Second,
		MaxPolls:         1,
		Ceiling:          10 * time.Second,
	}, reader, nil)
	defer tracker.Stop()
	tracker.Start(context.Background())

	events.EmitDataChanged(context.Background(), events.DataChangeEvent{
		CollectionName: "live_orders",
		Operation:      events.OpInsert,
		Document:       struct{}{},
	})

	time.Sleep(100 * time.Millisecond)
	if n := reader.callCount(); n != 0 {
		t.Errorf("sự kiện của collection khác không được kích hoạt đọc DB, đã đọc %d lần", n)
	}
}

func TestTrackerMatchesFilter(t *testing.T) {
	reader := &fakeReader{}

	tracker := NewTracker(Config{
		ParentID:         "batch-5",
		TotalItems:       10,
		SkipInitialQuery: true,
		Collection:       "purchase_order_items",
		Matches: func(doc interface{}) bool {
			s, ok := doc.(string)
			return ok && s == "của tôi"
		},
		Debounce:         5 * time.Millisecond,
		HeartbeatSilence: 5 * time.Second,
		PollInterval:     time.Second,
		MaxPolls:         1,
		Ceiling:          10 * time.Second,
	}, reader, nil)
	defer tracker.Stop()
	tracker.Start(context.Background())

	// Document của batch khác bị lọc bỏ
	events.EmitDataChanged(context.Background(), events.DataChangeEvent{
		CollectionName: "purchase_order_items",
		Operation:      events.OpUpdate,
		Document:       "của batch khác",
	})
	time.Sleep(80 * time.Millisecond)
	if n := reader.callCount(); n != 0 {
		t.Fatalf("document không khớp predicate không được kích hoạt đọc, đã đọc %d lần", n)
	}

	// UpdateMany không mang document, phải được coi là khớp
	events.EmitDataChanged(context.Background(), events.DataChangeEvent{
		CollectionName: "purchase_order_items",
		Operation:      events.OpUpdate,
		Document:       nil,
	})
	deadline := time.Now().Add(time.Second)
	for reader.callCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("sự kiện update nhiều bản ghi (document nil) phải kích hoạt một lần đọc")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestTrackerFallsBackToPolling(t *testing.T) {
	reader := &fakeReader{}
	done := make(chan completion, 1)

	tracker := NewTracker(Config{
		ParentID:         "batch-6",
		TotalItems:       2,
		SkipInitialQuery: true,
		Collection:       "purchase_order_items",
		Debounce:         10 * time.Millisecond,
		HeartbeatSilence: 30 * time.Millisecond,
		PollInterval:     20 * time.Millisecond,
		MaxPolls:         50,
		Ceiling:          5 * time.Second,
	}, reader, func(s Snapshot, d string) {
		done <- completion{s, d}
	})
	defer tracker.Stop()
	tracker.Start(context.Background())

	// Không phát sự kiện nào, để heartbeat kích hoạt polling
	time.Sleep(60 * time.Millisecond)
	reader.set(2, 0)

	c := waitCompletion(t, done, 2*time.Second)
	if c.disposition != DispositionAllSuccess {
		t.Errorf("polling fallback phải hoàn tất batch, disposition = %q", c.disposition)
	}
}

func TestTrackerCeilingTimeout(t *testing.T) {
	reader := &fakeReader{success: 1} // không bao giờ đủ
	done := make(chan completion, 1)

	tracker := NewTracker(Config{
		ParentID:         "batch-7",
		TotalItems:       10,
		SkipInitialQuery: true,
		Collection:       "purchase_order_items",
		Debounce:         10 * time.Millisecond,
		HeartbeatSilence: time.Second,
		PollInterval:     time.Second,
		MaxPolls:         1,
		Ceiling:          50 * time.Millisecond,
	}, reader, func(s Snapshot, d string) {
		done <- completion{s, d}
	})
	defer tracker.Stop()
	tracker.Start(context.Background())

	c := waitCompletion(t, done, 2*time.Second)
	if c.disposition != DispositionTimedOut {
		t.Errorf("disposition = %q, muốn %q", c.disposition, DispositionTimedOut)
	}
	if c.snapshot.State != StateTimedOut {
		t.Errorf("state = %q, muốn %q", c.snapshot.State, StateTimedOut)
	}
	if c.snapshot.IsComplete {
		t.Error("timed-out không được đánh dấu là complete")
	}
	if c.snapshot.Message != MsgTimedOut {
		t.Errorf("message = %q, muốn thông báo timeout riêng", c.snapshot.Message)
	}
}

func TestTrackerCallbackOnce(t *testing.T) {
	reader := &fakeReader{success: 2}
	var mu sync.Mutex
	callbacks := 0

	tracker := NewTracker(Config{
		ParentID:         "batch-8",
		TotalItems:       2,
		Collection:       "purchase_order_items",
		Debounce:         5 * time.Millisecond,
		HeartbeatSilence: time.Second,
		PollInterval:     50 * time.Millisecond,
		MaxPolls:         3,
		Ceiling:          100 * time.Millisecond, // trần ngắn để thử kích hoạt lần hai
	}, reader, func(s Snapshot, d string) {
		mu.Lock()
		callbacks++
		mu.Unlock()
	})
	defer tracker.Stop()
	tracker.Start(context.Background())

	// Chờ qua cả trần thời gian, callback vẫn chỉ được gọi một lần
	time.Sleep(300 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	if callbacks != 1 {
		t.Errorf("callback được gọi %d lần, muốn đúng 1", callbacks)
	}
}

func TestTrackerStopIdempotent(t *testing.T) {
	reader := &fakeReader{}
	tracker := NewTracker(Config{
		ParentID:         "batch-9",
		TotalItems:       1,
		SkipInitialQuery: true,
		Collection:       "purchase_order_items",
		Debounce:         5 * time.Millisecond,
		HeartbeatSilence: time.Second,
		PollInterval:     time.Second,
		MaxPolls:         1,
		Ceiling:          time.Second,
	}, reader, nil)
	tracker.Start(context.Background())

	tracker.Stop()
	tracker.Stop() // gọi lần hai không được panic

	snap := tracker.Snapshot()
	if snap.State != StateWatching {
		t.Errorf("tracker bị dừng giữa chừng vẫn giữ state watching, nhận %q", snap.State)
	}
}
