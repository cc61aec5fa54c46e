package common

import (
	"context"
	"time"
)

// RetryPolicy định nghĩa chính sách retry cho các thao tác có thể thất bại tạm thời.
// Backoff theo cấp số nhân: BaseDelay * 2^(attempt-1), giới hạn bởi MaxDelay.
type RetryPolicy struct {
	MaxRetries int           // Số lần thử lại tối đa (không tính lần đầu)
	BaseDelay  time.Duration // Thời gian chờ cơ bản giữa các lần thử
	MaxDelay   time.Duration // Thời gian chờ tối đa
}

// DefaultRetryPolicy trả về chính sách retry mặc định
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries: 3,
		BaseDelay:  500 * time.Millisecond,
		MaxDelay:   10 * time.Second,
	}
}

// Delay tính thời gian chờ trước lần thử thứ attempt (attempt bắt đầu từ 1)
func (p RetryPolicy) Delay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}

	delay := p.BaseDelay * time.Duration(1<<uint(attempt-1))
	if p.MaxDelay > 0 && delay > p.MaxDelay {
		delay = p.MaxDelay
	}
	return delay
}

// Do thực thi fn, thử lại theo chính sách khi fn trả về lỗi.
// Dừng sớm khi context bị hủy hoặc fn thành công.
func (p RetryPolicy) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	var lastErr error

	for attempt := 0; attempt <= p.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(p.Delay(attempt)):
			}
		}

		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}
	}

	return lastErr
}
