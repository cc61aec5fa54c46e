package events

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal(msg)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestSubscribeAndEmit(t *testing.T) {
	var received atomic.Int32
	unsubscribe := SubscribeDataChanged(func(_ context.Context, e DataChangeEvent) {
		if e.CollectionName == "live_orders" && e.Operation == OpInsert {
			received.Add(1)
		}
	})
	defer unsubscribe()

	EmitDataChanged(context.Background(), DataChangeEvent{
		CollectionName: "live_orders",
		Operation:      OpInsert,
	})

	waitFor(t, func() bool { return received.Load() == 1 }, "handler không nhận được sự kiện")
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	var received atomic.Int32
	unsubscribe := SubscribeDataChanged(func(_ context.Context, e DataChangeEvent) {
		received.Add(1)
	})

	EmitDataChanged(context.Background(), DataChangeEvent{CollectionName: "x", Operation: OpUpdate})
	waitFor(t, func() bool { return received.Load() == 1 }, "handler không nhận được sự kiện đầu tiên")

	unsubscribe()
	EmitDataChanged(context.Background(), DataChangeEvent{CollectionName: "x", Operation: OpUpdate})

	time.Sleep(50 * time.Millisecond)
	if got := received.Load(); got != 1 {
		t.Errorf("handler đã hủy đăng ký vẫn nhận sự kiện, tổng %d lần", got)
	}
}

func TestEmitRecoversHandlerPanic(t *testing.T) {
	var survived atomic.Bool

	unsubPanic := SubscribeDataChanged(func(_ context.Context, e DataChangeEvent) {
		panic("handler hỏng")
	})
	defer unsubPanic()
	unsubOK := SubscribeDataChanged(func(_ context.Context, e DataChangeEvent) {
		survived.Store(true)
	})
	defer unsubOK()

	EmitDataChanged(context.Background(), DataChangeEvent{CollectionName: "x", Operation: OpDelete})

	waitFor(t, func() bool { return survived.Load() }, "handler panic không được ảnh hưởng handler khác")
}
