package pomodels

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PurchaseOrder là phiếu nhập hàng, cha của các line item cần đồng bộ lên TPOS
type PurchaseOrder struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Code         string             `json:"code" bson:"code" index:"unique"` // Mã phiếu nhập
	SupplierName string             `json:"supplierName" bson:"supplierName"`
	OrderDate    int64              `json:"orderDate" bson:"orderDate" index:"single,order:-1"` // UnixMilli
	Note         string             `json:"note" bson:"note,omitempty"`
	CreatedAt    int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt    int64              `json:"updatedAt" bson:"updatedAt"`
}
