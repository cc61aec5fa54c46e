package livesvc

import (
	"reflect"
	"testing"
)

func TestExtractProductCodes(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "comment tiếng Việt có hai mã",
			text: "Lấy N55 và N236L, cảm ơn",
			want: []string{"N55", "N236L"},
		},
		{
			name: "mã lặp lại chỉ giữ một, không phân biệt hoa thường",
			text: "N10 N10 n10",
			want: []string{"N10"},
		},
		{
			name: "giữ thứ tự xuất hiện đầu tiên",
			text: "b2 a1 B2 c3",
			want: []string{"B2", "A1", "C3"},
		},
		{
			name: "mã có chữ cái phía sau số",
			text: "chốt a10b nhé shop",
			want: []string{"A10B"},
		},
		{
			name: "không có mã nào trả về slice rỗng",
			text: "đẹp quá, bao nhiêu vậy shop?",
			want: []string{},
		},
		{
			name: "chuỗi rỗng",
			text: "",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractProductCodes(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractProductCodes(%q) = %v, muốn %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestExtractProductCodesDeterministic(t *testing.T) {
	text := "Lấy N55 và N236L, thêm n55 nữa"
	first := ExtractProductCodes(text)
	for i := 0; i < 10; i++ {
		got := ExtractProductCodes(text)
		if !reflect.DeepEqual(got, first) {
			t.Fatalf("lần gọi thứ %d trả về %v, khác lần đầu %v", i, got, first)
		}
	}
}

func TestExtractProductCodesNeverNil(t *testing.T) {
	if got := ExtractProductCodes("không có gì"); got == nil {
		t.Error("kết quả phải là slice rỗng, không phải nil")
	}
}
