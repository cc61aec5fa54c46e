package invdto

// CreateInventoryProductInput là DTO tạo sản phẩm vào cache tồn kho local
type CreateInventoryProductInput struct {
	Code     string  `json:"code" bson:"code" validate:"required"`
	RemoteID int64   `json:"remoteId" bson:"remoteId"`
	Name     string  `json:"name" bson:"name" validate:"required"`
	Variant  string  `json:"variant" bson:"variant"`
	ImageURL string  `json:"imageUrl" bson:"imageUrl"`
	Price    float64 `json:"price" bson:"price" validate:"min=0"`
}

// UpdateInventoryProductInput là DTO cập nhật sản phẩm tồn kho.
// Không cho đổi code: code là khóa duy nhất của cache.
type UpdateInventoryProductInput struct {
	RemoteID int64   `json:"remoteId" bson:"remoteId"`
	Name     string  `json:"name" bson:"name"`
	Variant  string  `json:"variant" bson:"variant"`
	ImageURL string  `json:"imageUrl" bson:"imageUrl"`
	Price    float64 `json:"price" bson:"price" validate:"omitempty,min=0"`
}
