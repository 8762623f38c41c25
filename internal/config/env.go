package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultSessionLifetime keeps sessions alive for 7000 days: sessions are
// meant to rarely expire and a fresh login replaces the token.
const DefaultSessionLifetime = 7000 * 24 * time.Hour

type Env struct {
	AppAddr string
	GinMode string

	DBDriver    string
	DBDSN       string
	AutoMigrate bool

	SessionStore    string
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	SessionLifetime time.Duration
	CookieSecure    bool

	CORSAllowedOrigins []string

	LogLevel  string
	LogFormat string

	LoginRate  float64
	LoginBurst int
}

// SetDefaults registers defaults on v for every key LoadEnv reads.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("app_addr", ":8080")
	v.SetDefault("gin_mode", "")
	v.SetDefault("db_driver", "mysql")
	v.SetDefault("db_dsn", "root:@tcp(127.0.0.1:3306)/mock_center?parseTime=true&clientFoundRows=true&loc=Local&charset=utf8mb4&timeout=5s&readTimeout=30s&writeTimeout=30s")
	v.SetDefault("auto_migrate", true)
	v.SetDefault("session_store", "memory")
	v.SetDefault("redis_addr", "127.0.0.1:6379")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)
	v.SetDefault("session_lifetime", DefaultSessionLifetime.String())
	v.SetDefault("cookie_secure", false)
	v.SetDefault("cors_allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173,http://127.0.0.1:5173")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("login_rate", 1.0)
	v.SetDefault("login_burst", 10)
}

// NewViper returns a viper instance reading env vars (APP_ADDR, DB_DSN, ...)
// on top of the defaults.
func NewViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// LoadEnv reads configuration from the process environment.
func LoadEnv() Env {
	return FromViper(NewViper())
}

// FromViper materializes Env from an already configured viper instance
// (env, config file and flags merged).
func FromViper(v *viper.Viper) Env {
	lifetime := v.GetDuration("session_lifetime")
	if lifetime <= 0 {
		lifetime = DefaultSessionLifetime
	}

	return Env{
		AppAddr:            strings.TrimSpace(v.GetString("app_addr")),
		GinMode:            strings.TrimSpace(v.GetString("gin_mode")),
		DBDriver:           strings.TrimSpace(v.GetString("db_driver")),
		DBDSN:              strings.TrimSpace(v.GetString("db_dsn")),
		AutoMigrate:        v.GetBool("auto_migrate"),
		SessionStore:       strings.ToLower(strings.TrimSpace(v.GetString("session_store"))),
		RedisAddr:          strings.TrimSpace(v.GetString("redis_addr")),
		RedisPassword:      v.GetString("redis_password"),
		RedisDB:            v.GetInt("redis_db"),
		SessionLifetime:    lifetime,
		CookieSecure:       v.GetBool("cookie_secure"),
		CORSAllowedOrigins: splitList(v.GetString("cors_allowed_origins")),
		LogLevel:           strings.TrimSpace(v.GetString("log_level")),
		LogFormat:          strings.TrimSpace(v.GetString("log_format")),
		LoginRate:          v.GetFloat64("login_rate"),
		LoginBurst:         v.GetInt("login_burst"),
	}
}

func splitList(raw string) []string {
	out := []string{}
	for _, o := range strings.Split(raw, ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			out = append(out, o)
		}
	}
	return out
}
