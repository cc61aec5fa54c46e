package pomodels

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Trạng thái đồng bộ của line item.
// pending → processing → success | failed; failed được chọn lại ở lần chạy sau.
// processing là soft lock theo lease: claim quá hạn bị sweeper trả về pending.
const (
	SyncStatusPending    = "pending"
	SyncStatusProcessing = "processing"
	SyncStatusSuccess    = "success"
	SyncStatusFailed     = "failed"
)

// PurchaseOrderItem là một dòng của phiếu nhập, cần tạo variant tương ứng trên TPOS
type PurchaseOrderItem struct {
	ID                primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	PurchaseOrderID   primitive.ObjectID `json:"purchaseOrderId" bson:"purchaseOrderId" index:"compound:po_status"`
	ProductCode       string             `json:"productCode" bson:"productCode"`
	ProductName       string             `json:"productName" bson:"productName"`
	PurchasePrice     float64            `json:"purchasePrice" bson:"purchasePrice"`
	ListPrice         float64            `json:"listPrice" bson:"listPrice"`
	Quantity          int64              `json:"quantity" bson:"quantity"`
	AttributeValueIDs []int64            `json:"attributeValueIds" bson:"attributeValueIds"` // Các attribute value đã chọn cho variant

	SyncStatus      string `json:"syncStatus" bson:"syncStatus" index:"compound:po_status" default:"pending"`
	SyncStartedAt   int64  `json:"syncStartedAt" bson:"syncStartedAt,omitempty"` // Thời điểm claim processing (lease)
	SyncedAt        int64  `json:"syncedAt" bson:"syncedAt,omitempty"`           // Thời điểm chốt trạng thái terminal
	LastError       string `json:"lastError" bson:"lastError,omitempty"`
	RemoteProductID int64  `json:"remoteProductId" bson:"remoteProductId,omitempty"` // Id sản phẩm TPOS sau khi tạo variant

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}
