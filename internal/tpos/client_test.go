package tpos

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient dựng client trỏ vào server giả, không cần cache Mongo
// vì các test chỉ đi qua tầng HTTP
func newTestClient(srv *httptest.Server) *Client {
	return &Client{
		baseURL: srv.URL,
		token:   "test-token",
		http:    srv.Client(),
	}
}

func TestClientRequestHeaders(t *testing.T) {
	var gotAuth, gotRequestID, gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-Id")
		gotContentType = r.Header.Get("Content-Type")
		w.Write([]byte(`{"productId": 1}`))
	}))
	defer srv.Close()

	cl := newTestClient(srv)
	_, err := cl.CreateProductVariants(context.Background(), VariantRequest{ProductCode: "A10"})
	require.NoError(t, err)

	assert.Equal(t, "Bearer test-token", gotAuth, "thiếu bearer token")
	assert.NotEmpty(t, gotRequestID, "mỗi request phải mang X-Request-Id")
	assert.Equal(t, "application/json", gotContentType, "request có payload phải set Content-Type")
}

func TestSearchProductByCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "N55", r.URL.Query().Get("code"))
		json.NewEncoder(w).Encode([]RemoteProduct{
			{ID: 42, Code: "N55", Name: "Áo thun", Price: 150000},
			{ID: 43, Code: "N55B", Name: "Áo thun bản khác"},
		})
	}))
	defer srv.Close()

	cl := newTestClient(srv)
	product, err := cl.SearchProductByCode(context.Background(), "N55")
	require.NoError(t, err)
	require.NotNil(t, product)

	// Lấy kết quả đầu tiên
	assert.Equal(t, int64(42), product.ID)
	assert.Equal(t, "N55", product.Code)
	assert.Equal(t, float64(150000), product.Price)
}

func TestSearchProductByCodeEscapesQuery(t *testing.T) {
	var gotRawQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRawQuery = r.URL.RawQuery
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	cl := newTestClient(srv)
	_, err := cl.SearchProductByCode(context.Background(), "N55 L")
	require.NoError(t, err)
	assert.Equal(t, "code=N55+L", gotRawQuery, "mã có ký tự đặc biệt phải được escape")
}

func TestSearchProductByCodeNotFoundIsNotError(t *testing.T) {
	t.Run("404 từ TPOS", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		product, err := newTestClient(srv).SearchProductByCode(context.Background(), "X99")
		assert.NoError(t, err, "404 là kết quả nghiệp vụ, không phải lỗi")
		assert.Nil(t, product)
	})

	t.Run("danh sách rỗng", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[]`))
		}))
		defer srv.Close()

		product, err := newTestClient(srv).SearchProductByCode(context.Background(), "X99")
		assert.NoError(t, err)
		assert.Nil(t, product)
	})
}

func TestRemoteApiErrorCarriesDiagnostics(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": "Mã sản phẩm không hợp lệ"}`))
	}))
	defer srv.Close()

	cl := newTestClient(srv)
	req := VariantRequest{ProductCode: "A10", AttributeValueIDs: []int64{1, 2}}
	_, err := cl.CreateProductVariants(context.Background(), req)
	require.Error(t, err)

	var apiErr *RemoteApiError
	require.True(t, errors.As(err, &apiErr), "lỗi từ TPOS phải là *RemoteApiError")

	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Contains(t, apiErr.Body, "Mã sản phẩm không hợp lệ", "phải giữ nguyên raw body để chẩn đoán")
	assert.Equal(t, "/api/products/variants", apiErr.Endpoint)

	// Payload đã gửi phải nằm trong lỗi để vận hành viên đối soát
	sent, ok := apiErr.Payload.(VariantRequest)
	require.True(t, ok)
	assert.Equal(t, "A10", sent.ProductCode)

	assert.False(t, apiErr.IsNotFound())
}

func TestRemoteApiErrorIsNotFound(t *testing.T) {
	err := &RemoteApiError{StatusCode: 404}
	assert.True(t, err.IsNotFound())
	assert.False(t, (&RemoteApiError{StatusCode: 500}).IsNotFound())
}

func TestCreateProductVariants(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/products/variants", r.URL.Path)

		var req VariantRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "N236L", req.ProductCode)
		assert.Equal(t, []int64{3, 7}, req.AttributeValueIDs)

		json.NewEncoder(w).Encode(VariantResult{ProductID: 777})
	}))
	defer srv.Close()

	cl := newTestClient(srv)
	result, err := cl.CreateProductVariants(context.Background(), VariantRequest{
		ProductCode:       "N236L",
		ProductName:       "Quần jean",
		PurchasePrice:     90000,
		ListPrice:         190000,
		AttributeValueIDs: []int64{3, 7},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(777), result.ProductID)
}

func TestClientContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestClient(srv).SearchProductByCode(ctx, "N55")
	require.Error(t, err, "context đã hủy thì request phải lỗi")
}
