package tpos

import (
	"context"
	"net/http"
)

// CreateOrder tạo order trên TPOS từ một comment livestream.
// Team và campaign được resolve trước khi gửi; lỗi từ TPOS trả về nguyên dạng
// *RemoteApiError kèm payload để upstream lưu vào log đối soát.
func (cl *Client) CreateOrder(ctx context.Context, comment Comment, postID string) (*OrderResult, error) {
	teamID, err := cl.ResolveTeam(ctx, comment.ChannelID, comment.ChannelName)
	if err != nil {
		return nil, err
	}
	campaignID, err := cl.GetOrCreateCampaign(ctx, postID, teamID)
	if err != nil {
		return nil, err
	}

	payload := map[string]interface{}{
		"teamId":     teamID,
		"campaignId": campaignID,
		"postId":     postID,
		"comment": map[string]interface{}{
			"id":          comment.ID,
			"authorName":  comment.AuthorName,
			"message":     comment.Message,
			"createdTime": comment.CreatedTime,
		},
	}

	var result OrderResult
	if err := cl.do(ctx, http.MethodPost, "/api/orders", payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
