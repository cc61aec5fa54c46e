package livemodels

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Phase của phiên live trong ngày
const (
	PhaseMorning = "morning"
	PhaseEvening = "evening"
)

// LiveProduct là sản phẩm trong một phiên live, mỗi bản ghi ứng với một
// tuple (ngày, phase, mã sản phẩm, variant).
// SoldQuantity chỉ được tăng bởi fan-out writer qua $inc, mỗi LiveOrder
// tạo thành công tăng đúng 1. Oversell là cờ derive tại thời điểm tạo
// LiveOrder, không phải ràng buộc cứng - bán vượt vẫn cho phép, chỉ gắn cờ.
type LiveProduct struct {
	ID               primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	SessionDate      string             `json:"sessionDate" bson:"sessionDate" index:"compound:session_product_unique"` // Ngày phiên live, dạng 2006-01-02
	Phase            string             `json:"phase" bson:"phase" index:"compound:session_product_unique"`             // morning | evening
	ProductCode      string             `json:"productCode" bson:"productCode" index:"compound:session_product_unique"`
	Variant          string             `json:"variant" bson:"variant" index:"compound:session_product_unique"`
	Name             string             `json:"name" bson:"name"`
	PreparedQuantity int64              `json:"preparedQuantity" bson:"preparedQuantity"` // Số lượng chuẩn bị (cung)
	SoldQuantity     int64              `json:"soldQuantity" bson:"soldQuantity"`         // Số lượng đã chốt (cầu)
	Tag              string             `json:"tag" bson:"tag,omitempty"`
	ImageURL         string             `json:"imageUrl" bson:"imageUrl,omitempty"`
	CreatedAt        int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt        int64              `json:"updatedAt" bson:"updatedAt"`
}
