package podto

// CreatePurchaseOrderInput là DTO tạo phiếu nhập hàng
type CreatePurchaseOrderInput struct {
	Code         string `json:"code" bson:"code" validate:"required"`
	SupplierName string `json:"supplierName" bson:"supplierName"`
	OrderDate    string `json:"orderDate" bson:"orderDate" transform:"str_time,format=2006-01-02,optional"`
	Note         string `json:"note" bson:"note"`
}

// UpdatePurchaseOrderInput là DTO cập nhật phiếu nhập hàng
type UpdatePurchaseOrderInput struct {
	SupplierName string `json:"supplierName" bson:"supplierName"`
	OrderDate    string `json:"orderDate" bson:"orderDate" transform:"str_time,format=2006-01-02,optional"`
	Note         string `json:"note" bson:"note"`
}

// CreatePurchaseOrderItemInput là DTO tạo line item cho phiếu nhập.
// SyncStatus không nhận từ client - luôn khởi tạo pending qua default tag của model.
type CreatePurchaseOrderItemInput struct {
	PurchaseOrderID   string  `json:"purchaseOrderId" bson:"purchaseOrderId" validate:"required" transform:"str_objectid"`
	ProductCode       string  `json:"productCode" bson:"productCode" validate:"required"`
	ProductName       string  `json:"productName" bson:"productName" validate:"required"`
	PurchasePrice     float64 `json:"purchasePrice" bson:"purchasePrice" validate:"min=0"`
	ListPrice         float64 `json:"listPrice" bson:"listPrice" validate:"min=0"`
	Quantity          int64   `json:"quantity" bson:"quantity" validate:"min=1"`
	AttributeValueIDs []int64 `json:"attributeValueIds" bson:"attributeValueIds"`
}

// UpdatePurchaseOrderItemInput là DTO cập nhật line item (chỉ dữ liệu nghiệp vụ,
// trạng thái đồng bộ do reconciliation loop sở hữu)
type UpdatePurchaseOrderItemInput struct {
	ProductCode       string  `json:"productCode" bson:"productCode"`
	ProductName       string  `json:"productName" bson:"productName"`
	PurchasePrice     float64 `json:"purchasePrice" bson:"purchasePrice" validate:"omitempty,min=0"`
	ListPrice         float64 `json:"listPrice" bson:"listPrice" validate:"omitempty,min=0"`
	Quantity          int64   `json:"quantity" bson:"quantity" validate:"omitempty,min=1"`
	AttributeValueIDs []int64 `json:"attributeValueIds" bson:"attributeValueIds"`
}

// SyncTriggerInput là payload cho POST /purchase-order/:id/sync
type SyncTriggerInput struct {
	TotalItems       int64 `json:"totalItems"`       // Tổng item kỳ vọng cho progress tracker, 0 = đếm từ DB
	SkipInitialQuery bool  `json:"skipInitialQuery"` // Batch vừa tạo, bỏ qua lần đọc tiến độ đầu tiên
}

// SyncTriggerResult trả về cho caller khi batch sync được khởi động
type SyncTriggerResult struct {
	PurchaseOrderID string `json:"purchaseOrderId"`
	BatchID         string `json:"batchId"`    // Id của lần chạy, để đối chiếu log
	TotalItems      int64  `json:"totalItems"` // Số item tracker sẽ theo dõi
}
