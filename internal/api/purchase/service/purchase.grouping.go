package posvc

import (
	"fmt"
	"sort"
	"strings"

	pomodels "live_commerce/internal/api/purchase/models"
)

// VariantGroup gom các line item cùng đại diện một variant:
// cùng mã sản phẩm và cùng tập attribute value (không phân biệt thứ tự).
// Cả nhóm chỉ cần một lần gọi tạo variant trên TPOS.
type VariantGroup struct {
	Key   string
	Items []pomodels.PurchaseOrderItem
}

// GroupKey dựng khóa nhóm từ mã sản phẩm và tập attribute value đã sort.
// Hai item khác nhau chỉ ở số lượng/vị trí cho ra cùng một khóa.
func GroupKey(productCode string, attributeValueIDs []int64) string {
	sorted := make([]int64, len(attributeValueIDs))
	copy(sorted, attributeValueIDs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	parts := make([]string, 0, len(sorted)+1)
	parts = append(parts, strings.ToUpper(productCode))
	for _, id := range sorted {
		parts = append(parts, fmt.Sprintf("%d", id))
	}
	return strings.Join(parts, ":")
}

// GroupItems gom danh sách item thành các nhóm variant, giữ thứ tự
// xuất hiện đầu tiên của từng nhóm
func GroupItems(items []pomodels.PurchaseOrderItem) []VariantGroup {
	byKey := make(map[string]int, len(items))
	groups := make([]VariantGroup, 0, len(items))

	for _, item := range items {
		key := GroupKey(item.ProductCode, item.AttributeValueIDs)
		if idx, ok := byKey[key]; ok {
			groups[idx].Items = append(groups[idx].Items, item)
			continue
		}
		byKey[key] = len(groups)
		groups = append(groups, VariantGroup{Key: key, Items: []pomodels.PurchaseOrderItem{item}})
	}
	return groups
}
