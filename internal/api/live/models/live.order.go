package livemodels

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LiveOrder là một dòng đơn cho cặp (comment, sản phẩm khớp được).
// Một comment nhiều mã sản phẩm sinh nhiều LiveOrder cùng commentId.
// Bản ghi là immutable sau khi tạo: subsystem này không update, không delete.
type LiveOrder struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	CommentID     string             `json:"commentId" bson:"commentId" index:"single"`
	LiveProductID primitive.ObjectID `json:"liveProductId" bson:"liveProductId" index:"single"`
	ProductCode   string             `json:"productCode" bson:"productCode"`
	OrderCode     string             `json:"orderCode" bson:"orderCode"` // Mã order phía TPOS
	OrderID       string             `json:"orderId" bson:"orderId"`
	IsOversell    bool               `json:"isOversell" bson:"isOversell"` // Tính tại thời điểm tạo, từ counter trước khi tăng
	CreatedAt     int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt     int64              `json:"updatedAt" bson:"updatedAt"`
}
