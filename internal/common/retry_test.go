package common

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRetryPolicyDelay(t *testing.T) {
	p := RetryPolicy{BaseDelay: 100 * time.Millisecond, MaxDelay: 500 * time.Millisecond}

	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{1, 100 * time.Millisecond},
		{2, 200 * time.Millisecond},
		{3, 400 * time.Millisecond},
		{4, 500 * time.Millisecond}, // chạm trần MaxDelay
		{10, 500 * time.Millisecond},
		{0, 100 * time.Millisecond}, // attempt nhỏ hơn 1 coi như 1
	}

	for _, tt := range tests {
		if got := p.Delay(tt.attempt); got != tt.want {
			t.Errorf("Delay(%d) = %v, muốn %v", tt.attempt, got, tt.want)
		}
	}
}

func TestRetryPolicyDelayNoCap(t *testing.T) {
	p := RetryPolicy{BaseDelay: 10 * time.Millisecond}
	if got := p.Delay(5); got != 160*time.Millisecond {
		t.Errorf("không đặt MaxDelay thì backoff không bị chặn, Delay(5) = %v", got)
	}
}

func TestRetryPolicyDoSucceedsFirstTry(t *testing.T) {
	p := RetryPolicy{MaxRetries: 3, BaseDelay: time.Millisecond}
	calls := 0
	err := p.Do(context.Background(), func(ctx context.Context) error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("Do trả về lỗi: %v", err)
	}
	if calls != 1 {
		t.Errorf("fn được gọi %d lần, muốn 1", calls)
	}
}

func TestRetryPolicyDoRetriesThenSucceeds(t *testing.T) {
	p := RetryPolicy{MaxRetries: 3, BaseDelay: time.Millisecond}
	calls := 0
	err := p.Do(context.Background(), func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("tạm thời")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Do trả về lỗi: %v", err)
	}
	if calls != 3 {
		t.Errorf("fn được gọi %d lần, muốn 3", calls)
	}
}

func TestRetryPolicyDoExhausted(t *testing.T) {
	p := RetryPolicy{MaxRetries: 2, BaseDelay: time.Millisecond}
	wantErr := errors.New("hỏng hẳn")
	calls := 0
	err := p.Do(context.Background(), func(ctx context.Context) error {
		calls++
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Errorf("Do phải trả về lỗi cuối cùng, nhận %v", err)
	}
	// Lần đầu + 2 lần thử lại
	if calls != 3 {
		t.Errorf("fn được gọi %d lần, muốn 3", calls)
	}
}

func TestRetryPolicyDoContextCanceled(t *testing.T) {
	p := RetryPolicy{MaxRetries: 5, BaseDelay: 50 * time.Millisecond}
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	errCh := make(chan error, 1)
	go func() {
		errCh <- p.Do(ctx, func(ctx context.Context) error {
			calls++
			return errors.New("luôn lỗi")
		})
	}()

	// Hủy giữa lúc đang chờ backoff
	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Do phải trả về context.Canceled, nhận %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Do không dừng sau khi hủy context")
	}
	if calls > 2 {
		t.Errorf("fn không được gọi thêm sau khi hủy, đã gọi %d lần", calls)
	}
}
