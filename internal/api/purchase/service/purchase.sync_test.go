package posvc

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	pomodels "live_commerce/internal/api/purchase/models"
	"live_commerce/internal/common"
)

// fakeOrderReader giả lập PurchaseOrderService ở phía đọc
type fakeOrderReader struct {
	orders map[primitive.ObjectID]pomodels.PurchaseOrder
	err    error
}

func (f *fakeOrderReader) FindOneById(ctx context.Context, id primitive.ObjectID) (pomodels.PurchaseOrder, error) {
	if f.err != nil {
		return pomodels.PurchaseOrder{}, f.err
	}
	order, ok := f.orders[id]
	if !ok {
		return pomodels.PurchaseOrder{}, common.ErrNotFound
	}
	return order, nil
}

func TestEnsureOrderExists(t *testing.T) {
	existingID := primitive.NewObjectID()
	missingID := primitive.NewObjectID()
	reader := &fakeOrderReader{
		orders: map[primitive.ObjectID]pomodels.PurchaseOrder{
			existingID: {Code: "PN-001"},
		},
	}
	svc := &PurchaseSyncService{orders: reader}

	if err := svc.EnsureOrderExists(context.Background(), existingID); err != nil {
		t.Errorf("phiếu tồn tại không được trả về lỗi, nhận %v", err)
	}

	err := svc.EnsureOrderExists(context.Background(), missingID)
	if err == nil {
		t.Fatal("phiếu đã xóa phải trả về lỗi not-found có cấu trúc")
	}
	var customErr *common.Error
	if !errors.As(err, &customErr) {
		t.Fatalf("lỗi phải là *common.Error, nhận %T", err)
	}
	if customErr.StatusCode != common.StatusNotFound {
		t.Errorf("status code = %d, muốn %d", customErr.StatusCode, common.StatusNotFound)
	}
}

func TestEnsureOrderExistsPassesThroughOtherErrors(t *testing.T) {
	dbErr := errors.New("kết nối DB hỏng")
	svc := &PurchaseSyncService{orders: &fakeOrderReader{err: dbErr}}

	err := svc.EnsureOrderExists(context.Background(), primitive.NewObjectID())
	if !errors.Is(err, dbErr) {
		t.Errorf("lỗi hạ tầng phải được trả nguyên dạng, nhận %v", err)
	}
}
