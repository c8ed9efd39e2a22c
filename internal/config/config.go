// Package config предоставляет структуры и функцию для парсинга и загрузки конфига витрины.
package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек витрины.
type Config struct {
	Env             string `yaml:"env"`
	BackendURL      string `yaml:"backend_url"`
	RedisConnection `yaml:"redis_connection"`
	HTTPServer      `yaml:"http_server"`
	Stripe          `yaml:"stripe"`
	AuthToken       `yaml:"auth_token"`
	Downloads       `yaml:"downloads"`
	CatalogCacheTTL time.Duration `yaml:"catalog_cache_ttl" env-default:"1h"`
}

// HTTPServer структура для настройки сервера.
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// RedisConnection структура для настройки подключения к redis.
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis"`
	Password     string        `yaml:"password"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	TimeoutRedis time.Duration `yaml:"timeoutredis"`
}

// Stripe структура с ключами платёжного процессора.
// Publishable-ключ выбирается по режиму: "test" или "live".
type Stripe struct {
	PublishableKeyTest string `yaml:"publishable_key_test"`
	PublishableKeyLive string `yaml:"publishable_key_live"`
	Mode               string `yaml:"mode" env-default:"test"`
}

// PublishableKey возвращает ключ, соответствующий текущему режиму.
func (s Stripe) PublishableKey() string {
	if s.Mode == "live" {
		return s.PublishableKeyLive
	}
	return s.PublishableKeyTest
}

// AuthToken структура для подписи authState-куки.
type AuthToken struct {
	SecretKey string        `yaml:"secret_key"`
	TokenTTL  time.Duration `yaml:"token_ttl" env-default:"48h"`
}

// Downloads структура с настройками загрузки купленных товаров.
type Downloads struct {
	Dir   string        `yaml:"dir" env-default:"downloads"`
	Delay time.Duration `yaml:"delay" env-default:"500ms"` // Пауза между последовательными загрузками
}

// MustLoad функция для загрузки конфига по пути из CONFIG_PATH.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}
	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return &cfg
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"BackendURL: %s\n"+
			"RedisConnection:\n"+
			"  Addr: %s\n"+
			"  DB: %d\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"Stripe:\n"+
			"  Mode: %s\n"+
			"Downloads:\n"+
			"  Dir: %s\n"+
			"  Delay: %s\n"+
			"CatalogCacheTTL: %s\n",
		c.Env,
		c.BackendURL,
		c.AddressRedis,
		c.DB,
		c.AddressHTTP,
		c.TimeoutHTTP,
		c.IdleTimeout,
		c.Mode,
		c.Dir,
		c.Delay,
		c.CatalogCacheTTL,
	)
}
