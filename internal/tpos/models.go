package tpos

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Team là bản ghi cache mapping channel (Facebook page) → team TPOS.
// Được ghi lại sau mỗi lần resolve thành công để các lần sau không phải gọi remote.
type Team struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ChannelID string             `json:"channelId" bson:"channelId" index:"unique"` // Facebook page/channel id
	TeamID    int64              `json:"teamId" bson:"teamId"`                      // Team id phía TPOS
	TeamName  string             `json:"teamName" bson:"teamName"`
	CreatedAt int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64              `json:"updatedAt" bson:"updatedAt"`
}

// Campaign là bản ghi cache mapping (postId, teamId) → campaign TPOS
type Campaign struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	PostID     string             `json:"postId" bson:"postId" index:"compound:post_team_unique"`
	TeamID     int64              `json:"teamId" bson:"teamId" index:"compound:post_team_unique"`
	CampaignID int64              `json:"campaignId" bson:"campaignId"`
	Name       string             `json:"name" bson:"name"`
	CreatedAt  int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt  int64              `json:"updatedAt" bson:"updatedAt"`
}

// Comment là dữ liệu comment livestream đầu vào cho việc tạo order trên TPOS
type Comment struct {
	ID          string `json:"id"`          // Comment id phía Facebook
	AuthorName  string `json:"authorName"`  // Tên người comment
	Message     string `json:"message"`     // Nội dung comment
	ChannelID   string `json:"channelId"`   // Page/channel chứa livestream
	ChannelName string `json:"channelName"` // Tên page, dùng cho fuzzy match team
	CreatedTime int64  `json:"createdTime"` // Thời điểm comment (UnixMilli)
}

// OrderResult là kết quả tạo order trên TPOS
type OrderResult struct {
	OrderID      string `json:"orderId"`      // Id order phía TPOS
	Code         string `json:"code"`         // Mã order người đọc được
	SessionIndex int64  `json:"sessionIndex"` // Số thứ tự tạm trong phiên live
}

// RemoteProduct là bản ghi sản phẩm trả về từ TPOS inventory search
type RemoteProduct struct {
	ID       int64   `json:"id"`
	Code     string  `json:"code"`
	Name     string  `json:"name"`
	Variant  string  `json:"variant"`
	ImageURL string  `json:"imageUrl"`
	Price    float64 `json:"price"`
}

// VariantRequest là payload tạo product variants trên TPOS.
// Một request đại diện cho một nhóm line item cùng (productCode + attributeValueIds).
type VariantRequest struct {
	ProductCode       string  `json:"productCode"`
	ProductName       string  `json:"productName"`
	PurchasePrice     float64 `json:"purchasePrice"`
	ListPrice         float64 `json:"listPrice"`
	AttributeValueIDs []int64 `json:"attributeValueIds"`
}

// VariantResult là kết quả tạo variants
type VariantResult struct {
	ProductID int64 `json:"productId"`
}

// remoteTeam là một team trong danh sách trả về từ TPOS
type remoteTeam struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	FacebookPageID string `json:"facebookPageId"`
}
