package livesvc

import (
	"testing"
	"time"

	livemodels "live_commerce/internal/api/live/models"
)

func TestBucketForTime(t *testing.T) {
	const cutoff = 720 // 12:00

	tests := []struct {
		name      string
		hour, min int
		wantPhase string
	}{
		{"đầu ngày thuộc phase sáng", 0, 0, livemodels.PhaseMorning},
		{"giữa buổi sáng", 9, 30, livemodels.PhaseMorning},
		{"đúng 12:00 vẫn thuộc phase sáng", 12, 0, livemodels.PhaseMorning},
		{"12:01 chuyển sang phase tối", 12, 1, livemodels.PhaseEvening},
		{"buổi tối", 20, 15, livemodels.PhaseEvening},
		{"cuối ngày", 23, 59, livemodels.PhaseEvening},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			moment := time.Date(2026, 3, 14, tt.hour, tt.min, 0, 0, time.Local)
			got := BucketForTime(moment, cutoff)
			if got.Phase != tt.wantPhase {
				t.Errorf("BucketForTime(%02d:%02d) phase = %q, muốn %q", tt.hour, tt.min, got.Phase, tt.wantPhase)
			}
			if got.Date != "2026-03-14" {
				t.Errorf("BucketForTime(%02d:%02d) date = %q, muốn %q", tt.hour, tt.min, got.Date, "2026-03-14")
			}
		})
	}
}

func TestBucketForTimeCustomCutoff(t *testing.T) {
	// Cutoff 600 = 10:00
	morning := BucketForTime(time.Date(2026, 3, 14, 10, 0, 0, 0, time.Local), 600)
	if morning.Phase != livemodels.PhaseMorning {
		t.Errorf("10:00 với cutoff 600 phải là phase sáng, nhận %q", morning.Phase)
	}
	evening := BucketForTime(time.Date(2026, 3, 14, 10, 1, 0, 0, time.Local), 600)
	if evening.Phase != livemodels.PhaseEvening {
		t.Errorf("10:01 với cutoff 600 phải là phase tối, nhận %q", evening.Phase)
	}
}

func TestBucketForTimeDateCrossing(t *testing.T) {
	// Hai comment cách nhau một phút nhưng khác ngày phải rơi vào bucket khác nhau
	before := BucketForTime(time.Date(2026, 3, 14, 23, 59, 0, 0, time.Local), 720)
	after := BucketForTime(time.Date(2026, 3, 15, 0, 0, 0, 0, time.Local), 720)
	if before.Date == after.Date {
		t.Errorf("hai ngày khác nhau nhưng bucket cùng date %q", before.Date)
	}
	if after.Phase != livemodels.PhaseMorning {
		t.Errorf("00:00 ngày mới phải thuộc phase sáng, nhận %q", after.Phase)
	}
}
