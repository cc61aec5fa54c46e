package livemodels

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PendingOrder là bản ghi tổng hợp theo comment: mỗi comment livestream
// đã tạo order thành công trên TPOS có đúng một bản ghi.
// Tạo lại order cho cùng comment chỉ tăng repeatCount và làm mới các trường,
// không sinh bản ghi mới. Subsystem này không bao giờ xóa PendingOrder.
type PendingOrder struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	CommentID    string             `json:"commentId" bson:"commentId" index:"unique"` // Comment id phía Facebook
	CustomerName string             `json:"customerName" bson:"customerName"`
	SessionIndex int64              `json:"sessionIndex" bson:"sessionIndex"` // Số thứ tự tạm trong phiên live
	OrderCode    string             `json:"orderCode" bson:"orderCode"`       // Mã order phía TPOS
	OrderID      string             `json:"orderId" bson:"orderId" index:"single"`
	CommentText  string             `json:"commentText" bson:"commentText"`
	RepeatCount  int64              `json:"repeatCount" bson:"repeatCount"` // Số lần tạo order cho comment này, tăng bằng $inc
	ProductCodes []string           `json:"productCodes" bson:"productCodes"`
	Tag          string             `json:"tag" bson:"tag,omitempty"` // Nhãn phân loại order
	CreatedAt    int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt    int64              `json:"updatedAt" bson:"updatedAt"`
}
