// Package events cung cấp cơ chế event trung tâm khi dữ liệu thay đổi qua CRUD.
// Các service CRUD không cần override từng method — BaseServiceMongoImpl tự động phát event.
// Logic phản ứng (progress tracker, cache invalidation, ...) đăng ký qua OnDataChanged
// hoặc SubscribeDataChanged khi cần hủy đăng ký.
package events

import (
	"context"
	"sync"
)

// OpInsert, OpUpdate, OpUpsert, OpDelete là các loại thao tác CRUD.
const (
	OpInsert = "insert"
	OpUpdate = "update"
	OpUpsert = "upsert"
	OpDelete = "delete"
)

// DataChangeEvent mô tả sự kiện thay đổi dữ liệu.
// Document là bản ghi sau khi thay đổi (nil nếu delete hoặc update nhiều bản ghi).
type DataChangeEvent struct {
	CollectionName string
	Operation      string
	Document       interface{}
}

// DataChangeHandler xử lý sự kiện thay đổi dữ liệu.
type DataChangeHandler func(ctx context.Context, e DataChangeEvent)

var (
	handlers   = make(map[int]DataChangeHandler)
	nextID     int
	handlersMu sync.RWMutex
)

// OnDataChanged đăng ký handler vĩnh viễn. Gọi khi init.
func OnDataChanged(h DataChangeHandler) {
	SubscribeDataChanged(h)
}

// SubscribeDataChanged đăng ký handler và trả về hàm hủy đăng ký.
// Dùng cho các subscriber có vòng đời ngắn (ví dụ progress tracker theo từng batch).
func SubscribeDataChanged(h DataChangeHandler) (unsubscribe func()) {
	handlersMu.Lock()
	defer handlersMu.Unlock()

	id := nextID
	nextID++
	handlers[id] = h

	return func() {
		handlersMu.Lock()
		defer handlersMu.Unlock()
		delete(handlers, id)
	}
}

// EmitDataChanged phát sự kiện. Gọi từ BaseServiceMongoImpl sau mỗi CRUD thành công.
// Mỗi handler chạy trong goroutine riêng, panic được recover để không ảnh hưởng handler khác.
func EmitDataChanged(ctx context.Context, e DataChangeEvent) {
	handlersMu.RLock()
	list := make([]DataChangeHandler, 0, len(handlers))
	for _, h := range handlers {
		list = append(list, h)
	}
	handlersMu.RUnlock()

	for _, h := range list {
		go func(fn DataChangeHandler) {
			defer func() {
				if r := recover(); r != nil {
					// Không làm sập app vì một handler lỗi
					// Logger có thể chưa init khi event chạy sớm
					_ = r
				}
			}()
			fn(ctx, e)
		}(h)
	}
}
