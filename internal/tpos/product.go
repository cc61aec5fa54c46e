package tpos

import (
	"context"
	"errors"
	"net/http"
	"net/url"
)

// SearchProductByCode tra cứu sản phẩm trên inventory TPOS theo mã.
// Không tìm thấy (404 hoặc danh sách rỗng) trả về (nil, nil) - nghiệp vụ
// coi đây là kết quả hợp lệ, không phải lỗi.
func (cl *Client) SearchProductByCode(ctx context.Context, code string) (*RemoteProduct, error) {
	var results []RemoteProduct
	path := "/api/products?code=" + url.QueryEscape(code)
	if err := cl.do(ctx, http.MethodGet, path, nil, &results); err != nil {
		var apiErr *RemoteApiError
		if errors.As(err, &apiErr) && apiErr.IsNotFound() {
			return nil, nil
		}
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return &results[0], nil
}

// CreateProductVariants tạo variants cho một nhóm line item cùng mã sản phẩm
// và tập attribute value trên TPOS
func (cl *Client) CreateProductVariants(ctx context.Context, req VariantRequest) (*VariantResult, error) {
	var result VariantResult
	if err := cl.do(ctx, http.MethodPost, "/api/products/variants", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
