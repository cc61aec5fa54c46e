package livedto

// CommentOrderInput là payload cho POST /live/comment-order:
// một comment livestream cần tạo order trên TPOS rồi fan-out vào dữ liệu local
type CommentOrderInput struct {
	CommentID   string `json:"commentId" validate:"required"`
	AuthorName  string `json:"authorName" validate:"required"`
	Message     string `json:"message" validate:"required"`
	ChannelID   string `json:"channelId" validate:"required"` // Page/channel chứa livestream
	ChannelName string `json:"channelName"`
	PostID      string `json:"postId" validate:"required"` // Bài post/video livestream
	CreatedTime int64  `json:"createdTime"`                // UnixMilli; 0 thì server lấy thời điểm nhận
	Tag         string `json:"tag"`                        // Nhãn phân loại order, tùy chọn
}

// CommentOrderResult là kết quả fan-out cho một comment
type CommentOrderResult struct {
	OrderID       string   `json:"orderId"`
	OrderCode     string   `json:"orderCode"`
	SessionIndex  int64    `json:"sessionIndex"`
	ProductCodes  []string `json:"productCodes"`  // Các mã trích được từ comment
	CreatedOrders int      `json:"createdOrders"` // Số LiveOrder tạo thành công
	SkippedCodes  []string `json:"skippedCodes"`  // Các mã không resolve được hoặc lỗi khi ghi
}

// CreateLiveProductInput là DTO tạo sản phẩm phiên live qua CRUD API
// (nhập số lượng chuẩn bị trước giờ live)
type CreateLiveProductInput struct {
	SessionDate      string `json:"sessionDate" bson:"sessionDate" validate:"required,datetime=2006-01-02"`
	Phase            string `json:"phase" bson:"phase" validate:"required,oneof=morning evening"`
	ProductCode      string `json:"productCode" bson:"productCode" validate:"required"`
	Variant          string `json:"variant" bson:"variant"`
	Name             string `json:"name" bson:"name" validate:"required"`
	PreparedQuantity int64  `json:"preparedQuantity" bson:"preparedQuantity" validate:"min=0"`
	Tag              string `json:"tag" bson:"tag"`
	ImageURL         string `json:"imageUrl" bson:"imageUrl"`
}

// UpdateLiveProductInput là DTO cập nhật sản phẩm phiên live.
// Không có soldQuantity: counter đó chỉ fan-out writer được phép tăng.
type UpdateLiveProductInput struct {
	Name             string `json:"name" bson:"name"`
	Variant          string `json:"variant" bson:"variant"`
	PreparedQuantity int64  `json:"preparedQuantity" bson:"preparedQuantity" validate:"omitempty,min=0"`
	Tag              string `json:"tag" bson:"tag"`
	ImageURL         string `json:"imageUrl" bson:"imageUrl"`
}
