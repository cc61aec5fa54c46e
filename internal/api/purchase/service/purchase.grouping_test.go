package posvc

import (
	"testing"

	pomodels "live_commerce/internal/api/purchase/models"
)

func TestGroupKey(t *testing.T) {
	tests := []struct {
		name  string
		code  string
		attrs []int64
		want  string
	}{
		{"không có attribute", "A10", nil, "A10"},
		{"một attribute", "A10", []int64{5}, "A10:5"},
		{"attribute đã sort", "A10", []int64{3, 7, 12}, "A10:3:7:12"},
		{"attribute sort lại theo thứ tự tăng", "A10", []int64{12, 3, 7}, "A10:3:7:12"},
		{"mã thường được viết hoa", "a10", []int64{5}, "A10:5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GroupKey(tt.code, tt.attrs); got != tt.want {
				t.Errorf("GroupKey(%q, %v) = %q, muốn %q", tt.code, tt.attrs, got, tt.want)
			}
		})
	}
}

func TestGroupKeyOrderInsensitive(t *testing.T) {
	a := GroupKey("N55", []int64{9, 1, 4})
	b := GroupKey("n55", []int64{4, 9, 1})
	if a != b {
		t.Errorf("hai tập attribute giống nhau nhưng khóa khác nhau: %q vs %q", a, b)
	}
}

func TestGroupKeyDoesNotMutateInput(t *testing.T) {
	attrs := []int64{9, 1, 4}
	GroupKey("N55", attrs)
	if attrs[0] != 9 || attrs[1] != 1 || attrs[2] != 4 {
		t.Errorf("GroupKey không được thay đổi slice đầu vào, nhận %v", attrs)
	}
}

func TestGroupItems(t *testing.T) {
	items := []pomodels.PurchaseOrderItem{
		{ProductCode: "A10", AttributeValueIDs: []int64{1, 2}, Quantity: 3},
		{ProductCode: "B20", AttributeValueIDs: []int64{5}, Quantity: 1},
		{ProductCode: "a10", AttributeValueIDs: []int64{2, 1}, Quantity: 7},
		{ProductCode: "B20", AttributeValueIDs: []int64{6}, Quantity: 2},
	}

	groups := GroupItems(items)
	if len(groups) != 3 {
		t.Fatalf("số nhóm = %d, muốn 3", len(groups))
	}

	// Thứ tự nhóm theo lần xuất hiện đầu tiên
	wantKeys := []string{"A10:1:2", "B20:5", "B20:6"}
	for i, key := range wantKeys {
		if groups[i].Key != key {
			t.Errorf("nhóm thứ %d có khóa %q, muốn %q", i, groups[i].Key, key)
		}
	}

	// Hai item A10 cùng tập attribute gom về một nhóm
	if len(groups[0].Items) != 2 {
		t.Errorf("nhóm A10:1:2 có %d item, muốn 2", len(groups[0].Items))
	}
	if groups[0].Items[0].Quantity != 3 || groups[0].Items[1].Quantity != 7 {
		t.Errorf("nhóm A10:1:2 mất thứ tự item: %+v", groups[0].Items)
	}
}

func TestGroupItemsEmpty(t *testing.T) {
	groups := GroupItems(nil)
	if len(groups) != 0 {
		t.Errorf("danh sách rỗng phải cho 0 nhóm, nhận %d", len(groups))
	}
}
