package livesvc

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	invmodels "live_commerce/internal/api/inventory/models"
	livedto "live_commerce/internal/api/live/dto"
	livemodels "live_commerce/internal/api/live/models"
	"live_commerce/internal/common"
	"live_commerce/internal/tpos"
)

// fakeOrderCreator giả lập tầng TPOS, không đụng HTTP
type fakeOrderCreator struct {
	result *tpos.OrderResult
	err    error
	calls  int
}

func (f *fakeOrderCreator) CreateOrder(ctx context.Context, comment tpos.Comment, postID string) (*tpos.OrderResult, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

// fakeResolver trả sản phẩm theo map mã, mã vắng mặt là miss (nil, nil)
type fakeResolver struct {
	mu       sync.Mutex
	products map[string]*invmodels.InventoryProduct
	failOn   map[string]error
}

func (f *fakeResolver) Resolve(ctx context.Context, code string) (*invmodels.InventoryProduct, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.failOn[code]; ok {
		return nil, err
	}
	return f.products[code], nil
}

// fakePendingStore giữ PendingOrder theo commentId, tăng repeatCount như upsert thật
type fakePendingStore struct {
	records map[string]*livemodels.PendingOrder
	err     error
}

func (f *fakePendingStore) UpsertForComment(ctx context.Context, comment tpos.Comment, order *tpos.OrderResult, productCodes []string, tag string) (livemodels.PendingOrder, error) {
	if f.err != nil {
		return livemodels.PendingOrder{}, f.err
	}
	if f.records == nil {
		f.records = make(map[string]*livemodels.PendingOrder)
	}
	rec, ok := f.records[comment.ID]
	if !ok {
		rec = &livemodels.PendingOrder{CommentID: comment.ID}
		f.records[comment.ID] = rec
	}
	rec.RepeatCount++
	rec.CustomerName = comment.AuthorName
	rec.OrderCode = order.Code
	rec.OrderID = order.OrderID
	rec.SessionIndex = order.SessionIndex
	rec.CommentText = comment.Message
	rec.ProductCodes = productCodes
	rec.Tag = tag
	return *rec, nil
}

// fakeProductStore giữ counter prepared/sold theo (bucket, mã, variant)
type fakeProductStore struct {
	prepared map[string]int64
	counters map[primitive.ObjectID]*livemodels.LiveProduct
	byKey    map[string]primitive.ObjectID
	failOn   map[string]error
}

func newFakeProductStore(prepared map[string]int64) *fakeProductStore {
	return &fakeProductStore{
		prepared: prepared,
		counters: make(map[primitive.ObjectID]*livemodels.LiveProduct),
		byKey:    make(map[string]primitive.ObjectID),
	}
}

func (f *fakeProductStore) GetOrCreate(ctx context.Context, bucket SessionBucket, product *invmodels.InventoryProduct) (livemodels.LiveProduct, error) {
	if err, ok := f.failOn[product.Code]; ok {
		return livemodels.LiveProduct{}, err
	}
	key := bucket.Date + "|" + bucket.Phase + "|" + product.Code + "|" + product.Variant
	if id, ok := f.byKey[key]; ok {
		return *f.counters[id], nil
	}
	id := primitive.NewObjectID()
	rec := &livemodels.LiveProduct{
		ID:               id,
		SessionDate:      bucket.Date,
		Phase:            bucket.Phase,
		ProductCode:      product.Code,
		Variant:          product.Variant,
		Name:             product.Name,
		PreparedQuantity: f.prepared[product.Code],
	}
	f.byKey[key] = id
	f.counters[id] = rec
	return *rec, nil
}

func (f *fakeProductStore) ClaimSold(ctx context.Context, productID interface{}) (livemodels.LiveProduct, error) {
	id, ok := productID.(primitive.ObjectID)
	if !ok {
		return livemodels.LiveProduct{}, errors.New("id không hợp lệ")
	}
	rec, ok := f.counters[id]
	if !ok {
		return livemodels.LiveProduct{}, common.ErrNotFound
	}
	before := *rec
	rec.SoldQuantity++
	return before, nil
}

// fakeOrderStore ghi lại các LiveOrder đã insert
type fakeOrderStore struct {
	inserted []livemodels.LiveOrder
	failOn   map[string]error
}

func (f *fakeOrderStore) InsertOne(ctx context.Context, order livemodels.LiveOrder) (livemodels.LiveOrder, error) {
	if err, ok := f.failOn[order.ProductCode]; ok {
		return livemodels.LiveOrder{}, err
	}
	f.inserted = append(f.inserted, order)
	return order, nil
}

func newTestService(creator *fakeOrderCreator, resolver *fakeResolver, pending *fakePendingStore, products *fakeProductStore, orders *fakeOrderStore) *CommentOrderService {
	return &CommentOrderService{
		tposClient:    creator,
		inventory:     resolver,
		pendingOrders: pending,
		liveProducts:  products,
		liveOrders:    orders,
		cutoffMinute:  720,
	}
}

func commentInput(commentID, message string) livedto.CommentOrderInput {
	return livedto.CommentOrderInput{
		CommentID:   commentID,
		AuthorName:  "Chị Hằng",
		Message:     message,
		ChannelID:   "page-1",
		PostID:      "post-1",
		CreatedTime: time.Date(2026, 3, 14, 9, 0, 0, 0, time.Local).UnixMilli(),
	}
}

func TestCreateForCommentFanOut(t *testing.T) {
	creator := &fakeOrderCreator{result: &tpos.OrderResult{OrderID: "ord-1", Code: "DH001", SessionIndex: 7}}
	resolver := &fakeResolver{products: map[string]*invmodels.InventoryProduct{
		"N55":   {Code: "N55", Name: "Áo thun"},
		"N236L": {Code: "N236L", Name: "Quần jean"},
	}}
	pending := &fakePendingStore{}
	products := newFakeProductStore(map[string]int64{"N55": 5, "N236L": 5})
	orders := &fakeOrderStore{}
	svc := newTestService(creator, resolver, pending, products, orders)

	result, err := svc.CreateForComment(context.Background(), commentInput("cmt-1", "Lấy N55 và N236L, cảm ơn"))
	if err != nil {
		t.Fatalf("CreateForComment trả về lỗi: %v", err)
	}

	if result.OrderCode != "DH001" || result.SessionIndex != 7 {
		t.Errorf("kết quả order sai: %+v", result)
	}
	if result.CreatedOrders != 2 || len(result.SkippedCodes) != 0 {
		t.Errorf("created = %d, skipped = %v, muốn 2 và rỗng", result.CreatedOrders, result.SkippedCodes)
	}
	if len(orders.inserted) != 2 {
		t.Fatalf("số LiveOrder = %d, muốn 2", len(orders.inserted))
	}
	for _, order := range orders.inserted {
		if order.IsOversell {
			t.Errorf("mã %s chưa vượt chuẩn bị mà bị gắn cờ oversell", order.ProductCode)
		}
		if order.OrderCode != "DH001" || order.CommentID != "cmt-1" {
			t.Errorf("LiveOrder thiếu liên kết: %+v", order)
		}
	}
}

func TestCreateForCommentRepeatIncrementsRepeatCount(t *testing.T) {
	creator := &fakeOrderCreator{result: &tpos.OrderResult{OrderID: "ord-1", Code: "DH001"}}
	resolver := &fakeResolver{products: map[string]*invmodels.InventoryProduct{
		"N10": {Code: "N10", Name: "Váy hoa"},
	}}
	pending := &fakePendingStore{}
	products := newFakeProductStore(map[string]int64{"N10": 9})
	orders := &fakeOrderStore{}
	svc := newTestService(creator, resolver, pending, products, orders)

	// Cùng một comment đến hai lần (webhook retry): một bản ghi, repeatCount tăng
	for i := 0; i < 2; i++ {
		if _, err := svc.CreateForComment(context.Background(), commentInput("cmt-lặp", "Chốt N10")); err != nil {
			t.Fatalf("lần %d trả về lỗi: %v", i+1, err)
		}
	}

	if len(pending.records) != 1 {
		t.Fatalf("số PendingOrder = %d, muốn 1", len(pending.records))
	}
	rec := pending.records["cmt-lặp"]
	if rec.RepeatCount != 2 {
		t.Errorf("repeatCount = %d, muốn 2", rec.RepeatCount)
	}
}

func TestCreateForCommentProductIsolation(t *testing.T) {
	creator := &fakeOrderCreator{result: &tpos.OrderResult{OrderID: "ord-1", Code: "DH001"}}
	resolver := &fakeResolver{
		products: map[string]*invmodels.InventoryProduct{
			"A1": {Code: "A1", Name: "Còn hàng"},
			"C3": {Code: "C3", Name: "Ghi lỗi"},
		},
		// B2 không resolve được
	}
	pending := &fakePendingStore{}
	products := newFakeProductStore(map[string]int64{"A1": 3, "C3": 3})
	orders := &fakeOrderStore{failOn: map[string]error{"C3": errors.New("insert hỏng")}}
	svc := newTestService(creator, resolver, pending, products, orders)

	result, err := svc.CreateForComment(context.Background(), commentInput("cmt-2", "Lấy A1 B2 C3"))
	if err != nil {
		t.Fatalf("lỗi từng sản phẩm không được hủy cả comment: %v", err)
	}

	// A1 thành công; B2 miss và C3 lỗi ghi chỉ bị bỏ qua
	if result.CreatedOrders != 1 {
		t.Errorf("created = %d, muốn 1", result.CreatedOrders)
	}
	if len(result.SkippedCodes) != 2 {
		t.Errorf("skipped = %v, muốn B2 và C3", result.SkippedCodes)
	}
	if len(orders.inserted) != 1 || orders.inserted[0].ProductCode != "A1" {
		t.Errorf("LiveOrder đã ghi: %+v, muốn duy nhất A1", orders.inserted)
	}
	// PendingOrder vẫn được ghi với đầy đủ mã đã trích
	if rec := pending.records["cmt-2"]; rec == nil || len(rec.ProductCodes) != 3 {
		t.Errorf("PendingOrder phải giữ đầy đủ mã đã trích, nhận %+v", rec)
	}
}

func TestCreateForCommentOversellFlag(t *testing.T) {
	creator := &fakeOrderCreator{result: &tpos.OrderResult{OrderID: "ord-1", Code: "DH001"}}
	resolver := &fakeResolver{products: map[string]*invmodels.InventoryProduct{
		"N55": {Code: "N55", Name: "Áo thun"},
	}}
	pending := &fakePendingStore{}
	products := newFakeProductStore(map[string]int64{"N55": 1})
	orders := &fakeOrderStore{}
	svc := newTestService(creator, resolver, pending, products, orders)

	// Chuẩn bị 1 chiếc: lượt chốt đầu hợp lệ, lượt hai phải bị gắn cờ
	if _, err := svc.CreateForComment(context.Background(), commentInput("cmt-a", "Chốt N55")); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.CreateForComment(context.Background(), commentInput("cmt-b", "Em lấy N55 nhé")); err != nil {
		t.Fatal(err)
	}

	if len(orders.inserted) != 2 {
		t.Fatalf("số LiveOrder = %d, muốn 2", len(orders.inserted))
	}
	if orders.inserted[0].IsOversell {
		t.Error("lượt chốt đầu còn trong số chuẩn bị nhưng bị gắn cờ oversell")
	}
	if !orders.inserted[1].IsOversell {
		t.Error("lượt chốt vượt số chuẩn bị phải bị gắn cờ oversell")
	}
}

func TestCreateForCommentRemoteFailureWritesNothing(t *testing.T) {
	apiErr := &tpos.RemoteApiError{StatusCode: 500, Body: "lỗi TPOS", Endpoint: "/api/orders"}
	creator := &fakeOrderCreator{err: apiErr}
	pending := &fakePendingStore{}
	orders := &fakeOrderStore{}
	svc := newTestService(creator, &fakeResolver{}, pending, newFakeProductStore(nil), orders)

	_, err := svc.CreateForComment(context.Background(), commentInput("cmt-3", "Lấy N55"))
	if err == nil {
		t.Fatal("tạo order trên TPOS thất bại phải trả về lỗi")
	}

	// Lỗi được bọc thành *common.Error mang nguyên lỗi TPOS trong details
	var customErr *common.Error
	if !errors.As(err, &customErr) {
		t.Fatalf("lỗi phải là *common.Error, nhận %T", err)
	}
	if customErr.StatusCode != common.StatusBadGateway {
		t.Errorf("status = %d, muốn %d", customErr.StatusCode, common.StatusBadGateway)
	}
	if customErr.Details != apiErr {
		t.Errorf("details phải giữ nguyên lỗi TPOS, nhận %+v", customErr.Details)
	}

	// Không ghi gì local khi bước tạo order remote thất bại
	if len(pending.records) != 0 || len(orders.inserted) != 0 {
		t.Errorf("đã ghi local dù order remote thất bại: pending=%d, orders=%d", len(pending.records), len(orders.inserted))
	}
}
