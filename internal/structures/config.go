package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type WebhookConfig struct {
	Path string `yaml:"path" validate:"required"`
}

type StorageConfig struct {
	Driver string `yaml:"driver" validate:"required|in:auto,sheets,file,sqlite"`
}

// SheetsConfig points the spreadsheet backend at a Google Sheet.
// CredentialsJSON holds the raw service-account key, not a path.
type SheetsConfig struct {
	CredentialsJSON string        `yaml:"credentialsJson"`
	SpreadsheetID   string        `yaml:"spreadsheetId"`
	Range           string        `yaml:"range" validate:"required"`
	Timeout         time.Duration `yaml:"timeout" validate:"required|min:1"`
}

type Persistence struct {
	FilePath   string `yaml:"filePath" validate:"required"`
	Compress   bool   `yaml:"compress"`
	SQLitePath string `yaml:"sqlitePath" validate:"required"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required"`
}

type TrackerConfig struct {
	Timezone    string  `yaml:"timezone"`
	MaxHours    float64 `yaml:"maxHours"`
	HistorySize int     `yaml:"historySize" validate:"required|min:1"`
	DailyDays   int     `yaml:"dailyDays" validate:"required|min:1"`
}

type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Size    int           `yaml:"size"`
	TTL     time.Duration `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName     string
	Debug       bool
	Path        string
	WebServer   Server        `yaml:"webServer"`
	Webhook     WebhookConfig `yaml:"webhook"`
	Storage     StorageConfig `yaml:"storage"`
	Sheets      SheetsConfig  `yaml:"sheets"`
	Persistence Persistence   `yaml:"persistence"`
	Logger      LoggerConfig  `yaml:"logger"`
	Tracker     TrackerConfig `yaml:"tracker"`
	Cache       CacheConfig   `yaml:"cache"`
	Metrics     MetricsConfig `yaml:"metrics"`
}
