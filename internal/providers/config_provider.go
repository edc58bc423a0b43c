package providers

import (
	"errors"
	"fmt"
	"github.com/spf13/viper"
	"hourbot/internal/structures"
	"path/filepath"
	"strings"
	"time"
)

const appName = "LearningHoursBot"

func setDefaults(v *viper.Viper) {
	v.SetDefault("webServer.host", "0.0.0.0")
	v.SetDefault("webServer.port", 5000)
	v.SetDefault("webhook.path", "/whatsapp")
	v.SetDefault("storage.driver", "auto")
	v.SetDefault("sheets.range", "Sheet1!A:C")
	v.SetDefault("sheets.timeout", 10*time.Second)
	v.SetDefault("persistence.filePath", "data/hours.json")
	v.SetDefault("persistence.compress", false)
	v.SetDefault("persistence.sqlitePath", "data/hours.db")
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.mode", 0644)
	v.SetDefault("logger.dir", ".")
	v.SetDefault("tracker.timezone", "Local")
	v.SetDefault("tracker.maxHours", 24)
	v.SetDefault("tracker.historySize", 5)
	v.SetDefault("tracker.dailyDays", 7)
	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.size", 8)
	v.SetDefault("cache.ttl", 30*time.Second)
	v.SetDefault("metrics.enabled", false)
}

func bindEnv(v *viper.Viper) {
	v.BindEnv("webServer.port", "PORT")
	v.BindEnv("sheets.credentialsJson", "GOOGLE_CREDENTIALS_JSON")
	v.BindEnv("sheets.spreadsheetId", "GOOGLE_SHEET_ID")
	v.BindEnv("logger.level", "HOURBOT_LOG_LEVEL")
	v.BindEnv("logger.dir", "HOURBOT_LOG_DIR")
	v.BindEnv("storage.driver", "HOURBOT_STORAGE_DRIVER")
	v.BindEnv("persistence.filePath", "HOURBOT_DATA_FILE")
	v.BindEnv("persistence.sqlitePath", "HOURBOT_SQLITE_FILE")
	v.BindEnv("tracker.timezone", "HOURBOT_TIMEZONE")
	v.BindEnv("cache.enabled", "HOURBOT_CACHE_ENABLED")
	v.BindEnv("metrics.enabled", "HOURBOT_METRICS_ENABLED")
}

// NewConfigProvider builds the process configuration from defaults, an optional
// YAML file and environment variables, in increasing order of precedence.
func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	v := viper.New()
	setDefaults(v)
	bindEnv(v)

	if flags.ConfigPath != "" {
		filename := filepath.Base(flags.ConfigPath)
		v.AddConfigPath(filepath.Dir(flags.ConfigPath))
		v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
		v.SetConfigType("yaml")

		err := v.ReadInConfig()
		var notFound viper.ConfigFileNotFoundError
		if err != nil && !errors.As(err, &notFound) {
			return nil, err
		}
	}

	err := v.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = appName
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
