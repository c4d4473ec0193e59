package config

import (
	"time"

	"github.com/spf13/viper"

	pkgconfig "github.com/studyhive/collab-service/pkg/config"
	"github.com/studyhive/collab-service/pkg/database"
	"github.com/studyhive/collab-service/pkg/log"
)

type Config struct {
	Server    ServerConfig
	WebSocket WebSocketConfig
	Gate      GateConfig
	JWT       JWTConfig
	Database  database.Config
	Log       log.Config
}

type ServerConfig struct {
	Host string
	Port int
}

type WebSocketConfig struct {
	PingInterval   time.Duration `mapstructure:"ping_interval"`
	PongWait       time.Duration `mapstructure:"pong_wait"`
	WriteWait      time.Duration `mapstructure:"write_wait"`
	MaxMessageSize int64         `mapstructure:"max_message_size"`
	SendBuffer     int           `mapstructure:"send_buffer"`
}

type GateConfig struct {
	// SessionTTL bounds how long an authenticated session record keeps
	// authorizing new connections. Zero disables expiry.
	SessionTTL time.Duration `mapstructure:"session_ttl"`
}

type JWTConfig struct {
	Secret    string        `mapstructure:"secret"`
	Issuer    string        `mapstructure:"issuer"`
	AccessTTL time.Duration `mapstructure:"access_ttl"`
}

func Load() (*Config, error) {
	v, err := pkgconfig.Load("./config", "config")
	if err != nil {
		return nil, err
	}

	// Set defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8090)
	v.SetDefault("websocket.ping_interval", "30s")
	v.SetDefault("websocket.pong_wait", "60s")
	v.SetDefault("websocket.write_wait", "10s")
	v.SetDefault("websocket.max_message_size", 4096)
	v.SetDefault("websocket.send_buffer", 256)
	v.SetDefault("gate.session_ttl", "30m")
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.issuer", "studyhive")
	v.SetDefault("jwt.access_ttl", "1h")
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.file_path", "collab.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.service_name", "collab-service")

	// Override from environment
	v.BindEnv("server.port", "PORT")
	v.BindEnv("gate.session_ttl", "GATE_SESSION_TTL")
	v.BindEnv("jwt.secret", "JWT_SECRET")
	v.BindEnv("database.driver", "DATABASE_DRIVER")
	v.BindEnv("database.file_path", "DATABASE_FILE_PATH")
	v.BindEnv("log.level", "LOG_LEVEL")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Parse durations
	cfg.WebSocket.PingInterval = parseDuration(v, "websocket.ping_interval", 30*time.Second)
	cfg.WebSocket.PongWait = parseDuration(v, "websocket.pong_wait", 60*time.Second)
	cfg.WebSocket.WriteWait = parseDuration(v, "websocket.write_wait", 10*time.Second)
	cfg.Gate.SessionTTL = parseDuration(v, "gate.session_ttl", 30*time.Minute)
	cfg.JWT.AccessTTL = parseDuration(v, "jwt.access_ttl", time.Hour)

	return &cfg, nil
}

func parseDuration(v *viper.Viper, key string, defaultVal time.Duration) time.Duration {
	str := v.GetString(key)
	d, err := time.ParseDuration(str)
	if err != nil {
		return defaultVal
	}
	return d
}
