package config

import (
	"time"

	"github.com/spf13/viper"

	pkgconfig "github.com/watchalong/server/pkg/config"
	"github.com/watchalong/server/pkg/log"
)

type Config struct {
	Server    ServerConfig
	WebSocket WebSocketConfig
	Room      RoomConfig
	Providers ProvidersConfig
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

// RoomConfig controls per-room behavior and lifecycle. IdleTTL and
// HistoryLimit default to 0 (never evict, unbounded history), which keeps
// the legacy append-only registry behavior; deployments override them.
type RoomConfig struct {
	SeekMinInterval time.Duration `mapstructure:"seek_min_interval"`
	CatchupDelay    time.Duration `mapstructure:"catchup_delay"`
	IdleTTL         time.Duration `mapstructure:"idle_ttl"`
	HistoryLimit    int           `mapstructure:"history_limit"`
	MaxMessageLen   int           `mapstructure:"max_message_len"`
}

type ProvidersConfig struct {
	ResolveTimeout time.Duration `mapstructure:"resolve_timeout"`
	YouTube        YouTubeConfig
	Twitch         TwitchConfig
}

type YouTubeConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
}

type TwitchConfig struct {
	ClientID string `mapstructure:"client_id"`
	BaseURL  string `mapstructure:"base_url"`
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
	v.SetDefault("room.seek_min_interval", "1s")
	v.SetDefault("room.catchup_delay", "1s")
	v.SetDefault("room.idle_ttl", "0s")
	v.SetDefault("room.history_limit", 0)
	v.SetDefault("room.max_message_len", 200)
	v.SetDefault("providers.resolve_timeout", "10s")
	v.SetDefault("providers.youtube.base_url", "https://www.googleapis.com/youtube/v3")
	v.SetDefault("providers.twitch.base_url", "https://api.twitch.tv/helix")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.service_name", "watchalong")

	// Override from environment
	v.BindEnv("server.port", "PORT")
	v.BindEnv("providers.youtube.api_key", "YOUTUBE_API_KEY")
	v.BindEnv("providers.twitch.client_id", "TWITCH_CLIENT_ID")
	v.BindEnv("log.level", "LOG_LEVEL")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Parse durations
	cfg.WebSocket.PingInterval = parseDuration(v, "websocket.ping_interval", 30*time.Second)
	cfg.WebSocket.PongWait = parseDuration(v, "websocket.pong_wait", 60*time.Second)
	cfg.WebSocket.WriteWait = parseDuration(v, "websocket.write_wait", 10*time.Second)
	cfg.Room.SeekMinInterval = parseDuration(v, "room.seek_min_interval", time.Second)
	cfg.Room.CatchupDelay = parseDuration(v, "room.catchup_delay", time.Second)
	cfg.Room.IdleTTL = parseDuration(v, "room.idle_ttl", 0)
	cfg.Providers.ResolveTimeout = parseDuration(v, "providers.resolve_timeout", 10*time.Second)

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
