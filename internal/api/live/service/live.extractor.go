package livesvc

import (
	"regexp"
	"strings"

	"live_commerce/internal/utility"
)

// Mã sản phẩm trong comment: một chữ cái, một hoặc nhiều chữ số,
// theo sau có thể thêm chữ cái (ví dụ N55, N236L, a10b)
var productCodePattern = regexp.MustCompile(`(?i)[A-Za-z][0-9]+[A-Za-z]*`)

// ExtractProductCodes trích các mã sản phẩm từ nội dung comment.
// Hàm thuần: viết hoa toàn bộ, loại trùng giữ thứ tự xuất hiện đầu tiên,
// không match trả về slice rỗng (không phải nil).
func ExtractProductCodes(text string) []string {
	matches := productCodePattern.FindAllString(text, -1)
	codes := make([]string, 0, len(matches))
	for _, m := range matches {
		codes = append(codes, strings.ToUpper(m))
	}
	return utility.Unique(codes)
}
