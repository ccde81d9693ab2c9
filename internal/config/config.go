package config

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/viper"
)

// Config хранит все настройки приложения
type Config struct {
	Server  ServerConfig
	Redis   RedisConfig
	Session SessionConfig
	Trivia  TriviaConfig
	Game    GameConfig
}

// ServerConfig содержит настройки HTTP сервера
type ServerConfig struct {
	Port         string
	ReadTimeout  int
	WriteTimeout int
}

// RedisConfig содержит унифицированные настройки подключения к Redis
// Поддерживает режимы: single, sentinel, cluster
type RedisConfig struct {
	// Mode: Режим работы Redis ("single", "sentinel", "cluster"). По умолчанию "single".
	Mode string `mapstructure:"mode"`

	// Addrs: Список адресов Redis (хост:порт). Используется для всех режимов.
	Addrs []string `mapstructure:"addrs"`

	// Addr: Альтернативный адрес для режима 'single', если Addrs пустой.
	Addr string `mapstructure:"addr"`

	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`

	// MasterName: Имя мастер-сервера Redis (только для режима "sentinel")
	MasterName string `mapstructure:"master_name"`
}

// SessionConfig содержит настройки игровых сессий
type SessionConfig struct {
	// CookieName: имя подписанной куки с идентификатором сессии
	CookieName string `mapstructure:"cookie_name"`

	// SigningKey: секрет для подписи (HS256) сессионной куки. Обязателен.
	SigningKey string `mapstructure:"signing_key"`

	// TTLHours: время жизни сессии (кука и ключ в Redis)
	TTLHours int `mapstructure:"ttl_hours"`
}

// TriviaConfig содержит настройки провайдера вопросов
type TriviaConfig struct {
	// APIURL: адрес Open Trivia DB
	APIURL string `mapstructure:"api_url"`

	// TimeoutSec: таймаут HTTP-клиента на один запрос к провайдеру
	TimeoutSec int `mapstructure:"timeout_sec"`
}

// GameConfig содержит игровые параметры
type GameConfig struct {
	// DefaultQuestions: количество вопросов, если игрок не указал своё
	DefaultQuestions int `mapstructure:"default_questions"`

	// TimeLimitSec: лимит времени на один вопрос (информационный,
	// сервер не форсирует проигрыш по таймауту)
	TimeLimitSec int `mapstructure:"time_limit_sec"`
}

// Load загружает конфигурацию из файла и переменных окружения
func Load(configPath string) (*Config, error) {
	vip := viper.New() // Новый экземпляр Viper, чтобы избежать глобального состояния

	// Значения по умолчанию
	vip.SetDefault("server.port", "8080")
	vip.SetDefault("server.readtimeout", 10)
	vip.SetDefault("server.writetimeout", 10)
	vip.SetDefault("session.cookie_name", "trivia_session")
	vip.SetDefault("session.ttl_hours", 24)
	vip.SetDefault("trivia.api_url", "https://opentdb.com/api.php")
	vip.SetDefault("trivia.timeout_sec", 10)
	vip.SetDefault("game.default_questions", 10)
	vip.SetDefault("game.time_limit_sec", 30)

	// Привязываем переменные окружения ЯВНО
	vip.BindEnv("server.port", "SERVER_PORT")

	vip.BindEnv("redis.mode", "REDIS_MODE")
	vip.BindEnv("redis.addrs", "REDIS_ADDRS")
	vip.BindEnv("redis.addr", "REDIS_ADDR")
	vip.BindEnv("redis.password", "REDIS_PASSWORD")
	vip.BindEnv("redis.db", "REDIS_DB")
	vip.BindEnv("redis.master_name", "REDIS_MASTER_NAME")

	vip.BindEnv("session.cookie_name", "SESSION_COOKIE_NAME")
	vip.BindEnv("session.signing_key", "SESSION_SIGNING_KEY")
	vip.BindEnv("session.ttl_hours", "SESSION_TTL_HOURS")

	vip.BindEnv("trivia.api_url", "TRIVIA_API_URL")
	vip.BindEnv("trivia.timeout_sec", "TRIVIA_TIMEOUT_SEC")

	vip.BindEnv("game.default_questions", "GAME_DEFAULT_QUESTIONS")
	vip.BindEnv("game.time_limit_sec", "GAME_TIME_LIMIT_SEC")

	// Файл конфигурации опционален: BindEnv и умолчания покрывают остальное
	if configPath != "" {
		vip.SetConfigFile(configPath)
		if err := vip.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); ok {
				log.Printf("Файл конфигурации '%s' не найден, используются переменные окружения/умолчания.", configPath)
			} else {
				log.Printf("Предупреждение: не удалось прочитать файл конфигурации '%s': %v", configPath, err)
			}
		}
	}

	var cfg Config
	if err := vip.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Логирование конфигурации (только вне release режима)
	if os.Getenv("GIN_MODE") != "release" {
		log.Printf("--- Загруженные значения конфигурации ---")
		log.Printf("Server Port: %s", cfg.Server.Port)
		log.Printf("Redis Addr: %s", cfg.Redis.Addr)
		log.Printf("Redis Mode: %s", cfg.Redis.Mode)
		log.Printf("Session Cookie: %s", cfg.Session.CookieName)
		log.Printf("Session Signing Key Set: %t", cfg.Session.SigningKey != "")
		log.Printf("Trivia API URL: %s", cfg.Trivia.APIURL)
		log.Printf("Default Questions: %d", cfg.Game.DefaultQuestions)
		log.Printf("Time Limit Sec: %d", cfg.Game.TimeLimitSec)
		log.Printf("-----------------------------------------")
	}

	// Проверка обязательных параметров
	if cfg.Session.SigningKey == "" {
		return nil, fmt.Errorf("session signing key is required in config (check SESSION_SIGNING_KEY env var)")
	}
	if len(cfg.Redis.Addrs) == 0 && cfg.Redis.Addr == "" {
		return nil, fmt.Errorf("redis configuration is incomplete in config (check REDIS_ADDR or REDIS_ADDRS env vars)")
	}
	if cfg.Game.DefaultQuestions <= 0 {
		return nil, fmt.Errorf("game.default_questions must be positive")
	}
	if cfg.Game.TimeLimitSec <= 0 {
		return nil, fmt.Errorf("game.time_limit_sec must be positive")
	}

	return &cfg, nil
}
