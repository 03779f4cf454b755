package app

import "github.com/kelseyhightower/envconfig"

// Config — настройки приложения из окружения с префиксом TIENDA.
// Пустой PostgresDSN переключает реляционные репозитории на память,
// пустой MongoURI делает то же с заказами; KafkaBrokers опционален.
type Config struct {
	HTTPAddr    string `envconfig:"HTTP_ADDR" default:":8080"`
	MetricsAddr string `envconfig:"METRICS_ADDR" default:":9090"`

	PostgresDSN string `envconfig:"POSTGRES_DSN"`
	MongoURI    string `envconfig:"MONGO_URI"`
	MongoDB     string `envconfig:"MONGO_DB" default:"tienda"`

	KafkaBrokers []string `envconfig:"KAFKA_BROKERS"`

	CacheSize  int    `envconfig:"CACHE_SIZE" default:"1024"`
	UploadsDir string `envconfig:"UPLOADS_DIR" default:"uploads"`
}

// LoadConfig читает конфигурацию из переменных окружения.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("tienda", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
