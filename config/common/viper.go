package common

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/spf13/viper"
)

type Config struct {
	Viper *viper.Viper
}

// NewViper reads .env from the working directory when present; environment variables
// override it and every key has a default.
func NewViper() *Config {
	config := viper.New()
	config.SetConfigFile(".env")
	config.SetConfigType("env")
	config.AutomaticEnv()
	setDefaults(config)

	log.Trace("Checking file .env ....")
	if err := config.ReadInConfig(); err != nil {
		log.Warnf("no .env loaded, using environment and defaults: %v", err)
	}
	return &Config{Viper: config}
}

// NewConfig wraps an already populated viper instance.
func NewConfig(v *viper.Viper) *Config {
	setDefaults(v)
	return &Config{Viper: v}
}

func setDefaults(config *viper.Viper) {
	config.SetDefault("APP_NAME", "real-time-messenger")
	config.SetDefault("APP_PORT", "7720")
	config.SetDefault("DB_DRIVER", "postgres")
	config.SetDefault("DB_HOSTNAME", "localhost")
	config.SetDefault("DB_USER", "postgres")
	config.SetDefault("DB_PASSWORD", "postgres")
	config.SetDefault("DB_NAME", "messenger")
	config.SetDefault("DB_PORT", "5432")
	config.SetDefault("DB_DSN", "")
	config.SetDefault("JWT_SECRET", "change-me")
	config.SetDefault("JWT_TTL", "168h")
	config.SetDefault("CORS_ORIGINS", "http://localhost:8080")
	config.SetDefault("LOG_DIR", "logs")
	config.SetDefault("LOG_LEVEL", "info")
	config.SetDefault("UPLOAD_DIR", "uploads")
	config.SetDefault("UPLOAD_MAX_MB", 50)
	config.SetDefault("WS_SEND_BUFFER", 256)
	config.SetDefault("WS_RATE", 20)
	config.SetDefault("WS_BURST", 40)
}

func (c *Config) GetAppConfig() (appName string) {
	return c.Viper.GetString("APP_NAME")
}

func (c *Config) GetAppPort() string {
	return c.Viper.GetString("APP_PORT")
}

func (c *Config) GetDatabaseDriver() string {
	return strings.ToLower(c.Viper.GetString("DB_DRIVER"))
}

// GetDatabaseDSN returns an explicit DSN; empty means build one from the host settings.
func (c *Config) GetDatabaseDSN() string {
	return c.Viper.GetString("DB_DSN")
}

func (c *Config) GetDatabaseConfig() (dbHost, dbUser, dbPassword, dbName, dbPort string) {
	dbHost = c.Viper.GetString("DB_HOSTNAME")
	dbUser = c.Viper.GetString("DB_USER")
	dbPassword = c.Viper.GetString("DB_PASSWORD")
	dbName = c.Viper.GetString("DB_NAME")
	dbPort = c.Viper.GetString("DB_PORT")

	return dbHost, dbUser, dbPassword, dbName, dbPort
}

func (c *Config) GetJwtConfig() []byte {
	jwtSecret := c.Viper.GetString("JWT_SECRET")
	return []byte(jwtSecret)
}

func (c *Config) GetJwtTTL() time.Duration {
	ttl := c.Viper.GetDuration("JWT_TTL")
	if ttl <= 0 {
		return time.Hour
	}
	return ttl
}

func (c *Config) GetCorsOrigins() string {
	return c.Viper.GetString("CORS_ORIGINS")
}

func (c *Config) GetLogConfig() (dir, level string) {
	return c.Viper.GetString("LOG_DIR"), c.Viper.GetString("LOG_LEVEL")
}

func (c *Config) GetUploadConfig() (dir string, maxBytes int64) {
	return c.Viper.GetString("UPLOAD_DIR"), c.Viper.GetInt64("UPLOAD_MAX_MB") << 20
}

func (c *Config) GetWebSocketConfig() (sendBuffer int, rate float64, burst int) {
	return c.Viper.GetInt("WS_SEND_BUFFER"), c.Viper.GetFloat64("WS_RATE"), c.Viper.GetInt("WS_BURST")
}
