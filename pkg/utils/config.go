package utils

import (
	"fmt"
	"net/netip"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Media     MediaConfig
	Email     EmailConfig
	OTP       OTPConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Name           string
	Port           string
	Debug          bool
	LogPath        string
	AllowedOrigins []string
	DebugRoutes    bool
}

type DatabaseConfig struct {
	URL      string
	MaxConns int32
}

type MediaConfig struct {
	Backend       string // "local" or "cloudinary"
	Dir           string
	URLPrefix     string
	MaxUploadMB   int64
	CloudinaryURL string
	Folder        string
}

type EmailConfig struct {
	Host     string
	Port     int
	User     string
	Password string
}

type OTPConfig struct {
	ExpiryMinutes     int
	FixedCode         string
	RequiredForSignup bool
}

// RateLimitConfig sizes the per-route budgets. TrustedProxies lists the
// peers allowed to set X-Forwarded-For and X-Real-IP.
type RateLimitConfig struct {
	RedisURL       string
	Requests       int
	WindowSeconds  int
	TrustedProxies []netip.Prefix
}

const (
	MediaBackendLocal      = "local"
	MediaBackendCloudinary = "cloudinary"
)

func LoadConfig() (*Config, error) {
	// .env is optional; real environment variables always win
	_ = godotenv.Load()

	v := viper.New()

	v.SetDefault("APP_NAME", "crime-report")
	v.SetDefault("PORT", "8000")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("ALLOWED_ORIGINS", "*")
	v.SetDefault("DEBUG_ROUTES", true)
	v.SetDefault("DATABASE_URL", "sqlite:///./crime_report.db")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("MEDIA_DIR", "uploads")
	v.SetDefault("MEDIA_URL_PREFIX", "/uploads")
	v.SetDefault("MAX_UPLOAD_MB", 50)
	v.SetDefault("CLOUDINARY_FOLDER", "crime_reports")
	v.SetDefault("SMTP_HOST", "smtp.gmail.com")
	v.SetDefault("SMTP_PORT", 465)
	v.SetDefault("OTP_EXPIRY_MINUTES", 5)
	v.SetDefault("OTP_FIXED_CODE", "00000")
	v.SetDefault("OTP_REQUIRED_FOR_SIGNUP", true)
	v.SetDefault("RATE_LIMIT_REQUESTS", 20)
	v.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 60)

	// OTP_FIXED_CODE="" must switch to random codes instead of the default
	v.AllowEmptyEnv(true)
	v.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:           v.GetString("APP_NAME"),
			Port:           v.GetString("PORT"),
			Debug:          v.GetBool("DEBUG"),
			LogPath:        v.GetString("LOG_PATH"),
			AllowedOrigins: splitList(v.GetString("ALLOWED_ORIGINS")),
			DebugRoutes:    v.GetBool("DEBUG_ROUTES"),
		},
		Database: DatabaseConfig{
			URL:      v.GetString("DATABASE_URL"),
			MaxConns: v.GetInt32("DB_MAX_CONNS"),
		},
		Media: MediaConfig{
			Backend:       strings.ToLower(v.GetString("MEDIA_BACKEND")),
			Dir:           v.GetString("MEDIA_DIR"),
			URLPrefix:     v.GetString("MEDIA_URL_PREFIX"),
			MaxUploadMB:   v.GetInt64("MAX_UPLOAD_MB"),
			CloudinaryURL: v.GetString("CLOUDINARY_URL"),
			Folder:        v.GetString("CLOUDINARY_FOLDER"),
		},
		Email: EmailConfig{
			Host:     v.GetString("SMTP_HOST"),
			Port:     v.GetInt("SMTP_PORT"),
			User:     v.GetString("SENDER_EMAIL"),
			Password: v.GetString("SENDER_PASSWORD"),
		},
		OTP: OTPConfig{
			ExpiryMinutes:     v.GetInt("OTP_EXPIRY_MINUTES"),
			FixedCode:         v.GetString("OTP_FIXED_CODE"),
			RequiredForSignup: v.GetBool("OTP_REQUIRED_FOR_SIGNUP"),
		},
		RateLimit: RateLimitConfig{
			RedisURL:      v.GetString("REDIS_URL"),
			Requests:      v.GetInt("RATE_LIMIT_REQUESTS"),
			WindowSeconds: v.GetInt("RATE_LIMIT_WINDOW_SECONDS"),
		},
	}

	proxies, err := parseTrustedProxies(splitList(v.GetString("TRUSTED_PROXIES")))
	if err != nil {
		return nil, fmt.Errorf("TRUSTED_PROXIES: %w", err)
	}
	config.RateLimit.TrustedProxies = proxies

	if config.Media.Backend == "" {
		config.Media.Backend = MediaBackendLocal
		if config.Media.CloudinaryURL != "" {
			config.Media.Backend = MediaBackendCloudinary
		}
	}

	return config, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parseTrustedProxies accepts CIDR ranges and bare addresses.
func parseTrustedProxies(entries []string) ([]netip.Prefix, error) {
	prefixes := make([]netip.Prefix, 0, len(entries))
	for _, entry := range entries {
		if strings.Contains(entry, "/") {
			prefix, err := netip.ParsePrefix(entry)
			if err != nil {
				return nil, err
			}
			prefixes = append(prefixes, prefix.Masked())
			continue
		}

		addr, err := netip.ParseAddr(entry)
		if err != nil {
			return nil, err
		}
		addr = addr.Unmap()
		prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return prefixes, nil
}
