package config

import "github.com/spf13/viper"

type Config struct {
	ServerPort      string  `mapstructure:"SERVER_PORT"`
	RedisAddr       string  `mapstructure:"REDIS_ADDR"`
	RedisPassword   string  `mapstructure:"REDIS_PASSWORD"`
	JWTSecret       string  `mapstructure:"JWT_SECRET"`
	AdminPassword   string  `mapstructure:"ADMIN_PASSWORD"`
	KioskLat        float64 `mapstructure:"KIOSK_LAT"`
	KioskLng        float64 `mapstructure:"KIOSK_LNG"`
	IdleTimeoutMs   int     `mapstructure:"IDLE_TIMEOUT_MS"`
	RouterBaseURL   string  `mapstructure:"ROUTER_BASE_URL"`
	MapsBaseURL     string  `mapstructure:"MAPS_BASE_URL"`
	RouteTimeoutSec int     `mapstructure:"ROUTE_TIMEOUT_SEC"`
}

func Load() Config {
	viper.AutomaticEnv()
	viper.SetDefault("SERVER_PORT", ":8080")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("JWT_SECRET", "dev-secret-change-me")
	viper.SetDefault("ADMIN_PASSWORD", "admin-change-me")
	// Installation point of the kiosk, doubles as the map center.
	viper.SetDefault("KIOSK_LAT", 55.7558)
	viper.SetDefault("KIOSK_LNG", 37.6173)
	viper.SetDefault("IDLE_TIMEOUT_MS", 180000)
	viper.SetDefault("ROUTER_BASE_URL", "http://localhost:7070")
	viper.SetDefault("MAPS_BASE_URL", "https://yandex.ru/maps")
	viper.SetDefault("ROUTE_TIMEOUT_SEC", 10)

	var cfg Config
	_ = viper.Unmarshal(&cfg)
	return cfg
}
