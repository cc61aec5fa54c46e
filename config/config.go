package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
)

// Configuration chứa thông tin tĩnh cần thiết để chạy ứng dụng
type Configuration struct {
	InitMode              bool   `env:"INITMODE" envDefault:"false"`               // Chế độ khởi tạo (tạo index, seed dữ liệu)
	Address               string `env:"ADDRESS" envDefault:":8080"`                // Địa chỉ server
	MongoDB_ConnectionURI string `env:"MONGODB_CONNECTION_URI,required"`           // URL kết nối cơ sở dữ liệu
	MongoDB_DBName_Data   string `env:"MONGODB_DBNAME_DATA,required"`              // Tên cơ sở dữ liệu data
	CORS_Origins          string `env:"CORS_ORIGINS" envDefault:"*"`               // Các origins được phép (phân cách bởi dấu phẩy, * = tất cả)
	CORS_AllowCredentials bool   `env:"CORS_ALLOW_CREDENTIALS" envDefault:"false"` // Cho phép gửi credentials
	RateLimit_Max         int    `env:"RATE_LIMIT_MAX" envDefault:"100"`           // Số request tối đa trong window (0 = disable rate limit)
	RateLimit_Window      int    `env:"RATE_LIMIT_WINDOW" envDefault:"60"`         // Thời gian window (giây)
	RateLimit_Enabled     bool   `env:"RATE_LIMIT_ENABLED" envDefault:"true"`      // Bật/tắt rate limiting

	// TPOS Configuration - kết nối đến hệ thống POS từ xa
	TPOS_BaseURL        string `env:"TPOS_BASE_URL,required"`               // URL gốc của TPOS API
	TPOS_BearerToken    string `env:"TPOS_BEARER_TOKEN,required"`           // Bearer token xác thực với TPOS
	TPOS_TimeoutSeconds int    `env:"TPOS_TIMEOUT_SECONDS" envDefault:"30"` // Timeout cho mỗi request TPOS (giây)
	TPOS_DefaultTeamID  int64  `env:"TPOS_DEFAULT_TEAM_ID" envDefault:"0"`  // Team ID fallback khi không resolve được (0 = không có)

	// Live Session Configuration
	LivePhaseCutoffMinute int `env:"LIVE_PHASE_CUTOFF_MINUTE" envDefault:"720"` // Phút trong ngày phân chia phiên sáng/chiều (720 = 12:00)

	// Sync Worker Configuration - đồng bộ purchase order lên TPOS
	SyncWorkerIntervalSeconds int `env:"SYNC_WORKER_INTERVAL_SECONDS" envDefault:"60"` // Chu kỳ quét line item chờ đồng bộ (giây)
	SyncWorkerBatchSize       int `env:"SYNC_WORKER_BATCH_SIZE" envDefault:"50"`       // Số phiếu nhập tối đa xử lý mỗi lần quét
	SyncClaimLeaseMinutes     int `env:"SYNC_CLAIM_LEASE_MINUTES" envDefault:"10"`     // Thời gian giữ claim processing trước khi bị thu hồi (phút)
	SyncMaxRetries            int `env:"SYNC_MAX_RETRIES" envDefault:"3"`              // Số lần retry tối đa khi match tồn kho thất bại

	// Progress Tracker Configuration
	ProgressDebounceMs       int `env:"PROGRESS_DEBOUNCE_MS" envDefault:"300"`        // Debounce giữa các lần đọc trạng thái (ms)
	ProgressHeartbeatSeconds int `env:"PROGRESS_HEARTBEAT_SECONDS" envDefault:"5"`    // Thời gian im lặng trước khi chuyển sang polling (giây)
	ProgressPollSeconds      int `env:"PROGRESS_POLL_SECONDS" envDefault:"2"`         // Chu kỳ polling fallback (giây)
	ProgressMaxPolls         int `env:"PROGRESS_MAX_POLLS" envDefault:"30"`           // Số lần poll tối đa
	ProgressCeilingSeconds   int `env:"PROGRESS_CEILING_SECONDS" envDefault:"120"`    // Thời gian sống tối đa của một tracker (giây)
}

// getEnvPath trả về đường dẫn đến file env dựa trên môi trường
func getEnvPath() string {
	// Mặc định sử dụng môi trường development
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	currentDir, err := os.Getwd()
	if err != nil {
		// Sử dụng fmt.Printf vì logger có thể chưa được init ở đây
		fmt.Printf("Không thể lấy được thư mục hiện tại: %v\n", err)
		return ""
	}

	// Tìm thư mục config/env từ thư mục hiện tại đi ngược lên
	for {
		envDir := filepath.Join(currentDir, "config", "env")
		if _, err := os.Stat(envDir); err == nil {
			envPath := filepath.Join(envDir, fmt.Sprintf("%s.env", env))
			return envPath
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return ""
		}
		currentDir = parentDir
	}
}

// NewConfig sẽ đọc dữ liệu cấu hình từ file env được cung cấp
func NewConfig(files ...string) *Configuration {
	envPath := getEnvPath()
	if envPath == "" {
		// Sử dụng fmt.Printf vì logger có thể chưa được init ở đây
		fmt.Printf("Không tìm thấy thư mục config/env\n")
		return nil
	}

	err := godotenv.Load(envPath)
	if err != nil {
		fmt.Printf("Không thể load file env tại %s: %v\n", envPath, err)
		return nil
	}

	cfg := Configuration{}
	err = env.Parse(&cfg)
	if err != nil {
		fmt.Printf("Lỗi khi parse config: %+v\n", err)
		return nil
	}

	return &cfg
}
