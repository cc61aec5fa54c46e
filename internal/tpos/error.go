package tpos

import "fmt"

// RemoteApiError mô tả lỗi trả về từ TPOS API.
// Giữ nguyên raw body và payload đã gửi để vận hành viên chẩn đoán
// (lỗi TPOS thường chỉ đọc được từ body, status code không đủ thông tin).
type RemoteApiError struct {
	StatusCode int         // HTTP status code từ TPOS
	Body       string      // Raw response body
	Payload    interface{} // Request payload đã gửi (nil với request GET)
	Endpoint   string      // Endpoint đã gọi
}

// Error trả về thông báo lỗi
func (e *RemoteApiError) Error() string {
	return fmt.Sprintf("TPOS API %s trả về status %d: %s", e.Endpoint, e.StatusCode, e.Body)
}

// IsNotFound kiểm tra lỗi là 404 từ TPOS
func (e *RemoteApiError) IsNotFound() bool {
	return e.StatusCode == 404
}
