package livesvc

import (
	"time"

	livemodels "live_commerce/internal/api/live/models"
)

// SessionBucket xác định phiên live mà một comment thuộc về
type SessionBucket struct {
	Date  string // Ngày theo giờ local, dạng 2006-01-02
	Phase string // morning | evening
}

// BucketForTime tính phiên live từ thời điểm comment.
// Phút trong ngày nhỏ hơn hoặc bằng cutoffMinute thuộc phase sáng,
// sau đó thuộc phase tối. Cutoff lấy từ config, mặc định 720 (12:00).
func BucketForTime(t time.Time, cutoffMinute int) SessionBucket {
	local := t.Local()
	minuteOfDay := local.Hour()*60 + local.Minute()

	phase := livemodels.PhaseEvening
	if minuteOfDay <= cutoffMinute {
		phase = livemodels.PhaseMorning
	}
	return SessionBucket{
		Date:  local.Format("2006-01-02"),
		Phase: phase,
	}
}
