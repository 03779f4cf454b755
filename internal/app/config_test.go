package app

import "testing"

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("expected default http addr :8080, got %q", cfg.HTTPAddr)
	}
	if cfg.MetricsAddr != ":9090" {
		t.Fatalf("expected default metrics addr :9090, got %q", cfg.MetricsAddr)
	}
	if cfg.MongoDB != "tienda" {
		t.Fatalf("expected default mongo database tienda, got %q", cfg.MongoDB)
	}
	if cfg.CacheSize != 1024 {
		t.Fatalf("expected default cache size 1024, got %d", cfg.CacheSize)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("TIENDA_HTTP_ADDR", ":18080")
	t.Setenv("TIENDA_POSTGRES_DSN", "postgres://localhost/tienda")
	t.Setenv("TIENDA_KAFKA_BROKERS", "k1:9092,k2:9092")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.HTTPAddr != ":18080" {
		t.Fatalf("expected http addr :18080, got %q", cfg.HTTPAddr)
	}
	if cfg.PostgresDSN != "postgres://localhost/tienda" {
		t.Fatalf("unexpected dsn %q", cfg.PostgresDSN)
	}
	if len(cfg.KafkaBrokers) != 2 || cfg.KafkaBrokers[1] != "k2:9092" {
		t.Fatalf("unexpected brokers %v", cfg.KafkaBrokers)
	}
}
