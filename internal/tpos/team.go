package tpos

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"live_commerce/internal/common"
	"live_commerce/internal/logger"
)

// ResolveTeam tìm team TPOS tương ứng với channel Facebook của livestream.
// Thứ tự: cache Mongo → danh sách team trên TPOS (khớp page id rồi đến tên) → team mặc định trong config.
// Kết quả resolve từ remote được upsert vào cache cho các lần sau.
func (cl *Client) ResolveTeam(ctx context.Context, channelID string, channelName string) (int64, error) {
	cached, err := cl.teams.FindOne(ctx, map[string]interface{}{"channelId": channelID}, nil)
	if err == nil {
		return cached.TeamID, nil
	}

	var remote []remoteTeam
	if err := cl.do(ctx, http.MethodGet, "/api/teams", nil, &remote); err != nil {
		return 0, err
	}

	matched := matchTeam(remote, channelID, channelName)
	if matched == nil {
		if cl.defaultTeamID == 0 {
			return 0, common.NewError(common.ErrCodeRemoteOrder, fmt.Sprintf("Không resolve được team cho channel %s và không có team mặc định", channelID), common.StatusBadGateway, nil)
		}
		logger.GetAppLogger().WithField("channelId", channelID).Warn("Không khớp được team TPOS, dùng team mặc định")
		return cl.defaultTeamID, nil
	}

	_, err = cl.teams.Upsert(ctx, map[string]interface{}{"channelId": channelID}, Team{
		ChannelID: channelID,
		TeamID:    matched.ID,
		TeamName:  matched.Name,
	})
	if err != nil {
		// Cache fail không chặn luồng tạo order, chỉ ghi log
		logger.GetAppLogger().WithField("channelId", channelID).WithError(err).Warn("Không cache được team TPOS")
	}
	return matched.ID, nil
}

// matchTeam ưu tiên khớp chính xác page id, sau đó khớp mờ theo tên (contains, bỏ hoa thường)
func matchTeam(teams []remoteTeam, channelID string, channelName string) *remoteTeam {
	for i := range teams {
		if teams[i].FacebookPageID == channelID {
			return &teams[i]
		}
	}
	if channelName == "" {
		return nil
	}
	needle := strings.ToLower(strings.TrimSpace(channelName))
	for i := range teams {
		haystack := strings.ToLower(teams[i].Name)
		if strings.Contains(haystack, needle) || strings.Contains(needle, haystack) {
			return &teams[i]
		}
	}
	return nil
}

// GetOrCreateCampaign trả về campaign TPOS gắn với bài post livestream.
// Cache theo cặp (postId, teamId); miss thì gọi TPOS get-or-create rồi lưu lại.
func (cl *Client) GetOrCreateCampaign(ctx context.Context, postID string, teamID int64) (int64, error) {
	filter := map[string]interface{}{"postId": postID, "teamId": teamID}

	cached, err := cl.campaigns.FindOne(ctx, filter, nil)
	if err == nil {
		return cached.CampaignID, nil
	}

	var result struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}
	payload := map[string]interface{}{
		"postId": postID,
		"teamId": teamID,
	}
	if err := cl.do(ctx, http.MethodPost, "/api/campaigns/get-or-create", payload, &result); err != nil {
		return 0, err
	}

	_, err = cl.campaigns.Upsert(ctx, filter, Campaign{
		PostID:     postID,
		TeamID:     teamID,
		CampaignID: result.ID,
		Name:       result.Name,
	})
	if err != nil {
		logger.GetAppLogger().WithField("postId", postID).WithError(err).Warn("Không cache được campaign TPOS")
	}
	return result.ID, nil
}
