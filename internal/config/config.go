package config

import (
	"flag"
	"net"
	"strconv"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

const (
	defaultHost       = "0.0.0.0"
	defaultPort       = 5000
	defaultDataDir    = "."
	defaultAuthSecret = "dev-secret-key"
	defaultUsername   = "BAKIM"
	defaultPassword   = "MAXIME"
	defaultSessionTTL = 12 * time.Hour
)

type Config struct {
	// HTTP
	Host string `env:"HOST"`
	Port int    `env:"PORT"`

	// Хранилища
	DataDir        string `env:"DATA_DIR"`
	StoreWriteLock bool   `env:"STORE_WRITE_LOCK"`

	// Доступ
	AuthSecret string        `env:"AUTH_SECRET"`
	Username   string        `env:"APP_USERNAME"`
	Password   string        `env:"APP_PASSWORD"`
	SessionTTL time.Duration `env:"SESSION_TTL"`

	Addr string `env:"-"` // host:port, вычисляется
}

func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	_ = env.Parse(cfg)

	// флаги перекрывают значения из env
	flag.StringVar(&cfg.Host, "host", cfg.Host, "адрес для прослушивания")
	flag.IntVar(&cfg.Port, "port", cfg.Port, "порт HTTP сервера")
	flag.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "каталог с файлами spindle_data.csv и yedek_data.csv")
	flag.BoolVar(&cfg.StoreWriteLock, "write-lock", cfg.StoreWriteLock, "сериализовать запись в файлы хранилищ")
	flag.StringVar(&cfg.AuthSecret, "auth-secret", cfg.AuthSecret, "секрет для подписи cookie сессии")
	flag.StringVar(&cfg.Username, "username", cfg.Username, "имя пользователя для входа")
	flag.StringVar(&cfg.Password, "password", cfg.Password, "пароль для входа")
	flag.DurationVar(&cfg.SessionTTL, "session-ttl", cfg.SessionTTL, "время жизни сессии")

	flag.Parse()

	// Defaults
	if cfg.Host == "" {
		cfg.Host = defaultHost
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		cfg.Port = defaultPort
	}
	if cfg.DataDir == "" {
		cfg.DataDir = defaultDataDir
	}
	if cfg.AuthSecret == "" {
		cfg.AuthSecret = defaultAuthSecret
	}
	if cfg.Username == "" {
		cfg.Username = defaultUsername
	}
	if cfg.Password == "" {
		cfg.Password = defaultPassword
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = defaultSessionTTL
	}

	cfg.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))

	return cfg
}
