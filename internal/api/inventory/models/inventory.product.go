package invmodels

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InventoryProduct là cache local của sản phẩm tồn kho trên TPOS.
// Mỗi mã sản phẩm chỉ có một bản ghi; bản ghi được làm mới khi resolve lại từ remote.
type InventoryProduct struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Code      string             `json:"code" bson:"code" index:"unique"` // Mã sản phẩm chuẩn hóa (viết hoa)
	RemoteID  int64              `json:"remoteId" bson:"remoteId"`        // Id sản phẩm phía TPOS
	Name      string             `json:"name" bson:"name" index:"text"`
	Variant   string             `json:"variant" bson:"variant,omitempty"`
	ImageURL  string             `json:"imageUrl" bson:"imageUrl,omitempty"`
	Price     float64            `json:"price" bson:"price"`
	CreatedAt int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64              `json:"updatedAt" bson:"updatedAt"`
}
