package config

import (
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	DB        DBConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Storage   StorageConfig
	Scheduler SchedulerConfig
	Booking   BookingConfig
}

type AppConfig struct {
	Port      string
	Env       string
	Timezone  string
	StaticDir string
	LogLevel  string
}

type DBConfig struct {
	Host        string
	Port        string
	User        string
	Password    string
	Name        string
	SSLMode     string
	AutoMigrate bool
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret       string
	AccessExpiry time.Duration
}

// StorageConfig selects where uploaded images end up. Driver is "local" or "s3".
type StorageConfig struct {
	Driver        string
	UploadDir     string
	PublicBaseURL string
	S3Bucket      string
	S3Region      string
	S3Endpoint    string
	S3Prefix      string
}

type SchedulerConfig struct {
	ExpirySpec string
}

type BookingConfig struct {
	SlotLockTTL  time.Duration
	DefaultLimit int
}

// Location resolves the configured timezone, falling back to UTC.
func (c AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c AppConfig) IsProduction() bool {
	return c.Env == "production"
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "5000")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_TIMEZONE", "UTC")
	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_AUTO_MIGRATE", false)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_ACCESS_EXPIRY", "2h")

	v.SetDefault("STORAGE_DRIVER", "local")
	v.SetDefault("STORAGE_UPLOAD_DIR", "uploads")
	v.SetDefault("STORAGE_PUBLIC_BASE_URL", "/uploads")
	v.SetDefault("STORAGE_S3_PREFIX", "hospitals")

	v.SetDefault("SCHEDULER_EXPIRY_SPEC", "@every 1m")

	v.SetDefault("BOOKING_SLOT_LOCK_TTL", "10s")
	v.SetDefault("BOOKING_DEFAULT_LIMIT", 50)
}

// LoadConfig reads .env (if present) and the process environment.
func LoadConfig() (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if _, err := os.Stat(".env"); err == nil {
		v.SetConfigFile(".env")
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	accessExpiry, err := time.ParseDuration(v.GetString("JWT_ACCESS_EXPIRY"))
	if err != nil {
		accessExpiry = 2 * time.Hour
	}

	slotLockTTL, err := time.ParseDuration(v.GetString("BOOKING_SLOT_LOCK_TTL"))
	if err != nil {
		slotLockTTL = 10 * time.Second
	}

	config := &Config{
		App: AppConfig{
			Port:      v.GetString("APP_PORT"),
			Env:       v.GetString("APP_ENV"),
			Timezone:  v.GetString("APP_TIMEZONE"),
			StaticDir: v.GetString("STATIC_DIR"),
			LogLevel:  v.GetString("LOG_LEVEL"),
		},
		DB: DBConfig{
			Host:        v.GetString("DB_HOST"),
			Port:        v.GetString("DB_PORT"),
			User:        v.GetString("DB_USER"),
			Password:    v.GetString("DB_PASSWORD"),
			Name:        v.GetString("DB_NAME"),
			SSLMode:     v.GetString("DB_SSLMODE"),
			AutoMigrate: v.GetBool("DB_AUTO_MIGRATE"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:       v.GetString("JWT_SECRET"),
			AccessExpiry: accessExpiry,
		},
		Storage: StorageConfig{
			Driver:        v.GetString("STORAGE_DRIVER"),
			UploadDir:     v.GetString("STORAGE_UPLOAD_DIR"),
			PublicBaseURL: v.GetString("STORAGE_PUBLIC_BASE_URL"),
			S3Bucket:      v.GetString("STORAGE_S3_BUCKET"),
			S3Region:      v.GetString("STORAGE_S3_REGION"),
			S3Endpoint:    v.GetString("STORAGE_S3_ENDPOINT"),
			S3Prefix:      v.GetString("STORAGE_S3_PREFIX"),
		},
		Scheduler: SchedulerConfig{
			ExpirySpec: v.GetString("SCHEDULER_EXPIRY_SPEC"),
		},
		Booking: BookingConfig{
			SlotLockTTL:  slotLockTTL,
			DefaultLimit: v.GetInt("BOOKING_DEFAULT_LIMIT"),
		},
	}

	return config, nil
}
