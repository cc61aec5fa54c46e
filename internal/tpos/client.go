package tpos

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"live_commerce/config"
	basesvc "live_commerce/internal/api/base/service"
	"live_commerce/internal/logger"
)

// Client gọi sang TPOS API, kèm cache team/campaign trong MongoDB
// để không phải resolve lại trên mỗi comment.
type Client struct {
	baseURL       string
	token         string
	http          *http.Client
	defaultTeamID int64

	teams     basesvc.BaseServiceMongo[Team]
	campaigns basesvc.BaseServiceMongo[Campaign]
}

// NewClient khởi tạo client từ config, nhận sẵn 2 service cache
func NewClient(cfg *config.Configuration, teams basesvc.BaseServiceMongo[Team], campaigns basesvc.BaseServiceMongo[Campaign]) *Client {
	return &Client{
		baseURL:       cfg.TPOS_BaseURL,
		token:         cfg.TPOS_BearerToken,
		defaultTeamID: cfg.TPOS_DefaultTeamID,
		http: &http.Client{
			Timeout: time.Duration(cfg.TPOS_TimeoutSeconds) * time.Second,
		},
		teams:     teams,
		campaigns: campaigns,
	}
}

// do thực hiện một request tới TPOS và decode kết quả vào out (nếu out != nil).
// Status ngoài 2xx trả về *RemoteApiError kèm nguyên văn body để upstream ghi log.
func (cl *Client) do(ctx context.Context, method string, path string, payload interface{}, out interface{}) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal payload cho %s thất bại: %w", path, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, cl.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("tạo request %s thất bại: %w", path, err)
	}
	req.Header.Set("Authorization", "Bearer "+cl.token)
	req.Header.Set("X-Request-Id", uuid.NewString())
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := cl.http.Do(req)
	if err != nil {
		return fmt.Errorf("gọi TPOS %s thất bại: %w", path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("đọc response TPOS %s thất bại: %w", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &RemoteApiError{
			StatusCode: resp.StatusCode,
			Body:       string(respBody),
			Payload:    payload,
			Endpoint:   path,
		}
		logger.GetAppLogger().WithFields(map[string]interface{}{
			"endpoint": path,
			"status":   resp.StatusCode,
			"body":     string(respBody),
		}).Warn("TPOS API trả về lỗi")
		return apiErr
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("decode response TPOS %s thất bại: %w", path, err)
		}
	}
	return nil
}
