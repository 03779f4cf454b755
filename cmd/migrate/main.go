// Команда migrate управляет схемой реляционного хранилища магазина:
// категории, товары, клиенты, сотрудники, поставщики и пользователи
// живут в PostgreSQL, заказы миграций не требуют (MongoDB).
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/clownsinformatics/tienda/internal/storage/postgres"
)

const defaultTimeout = 30 * time.Second

func main() {
	var (
		direction string
		steps     int
		dsn       string
	)

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(),
			"usage: migrate [flags]\n\n"+
				"Применяет миграции схемы back-office магазина (категории, товары,\n"+
				"клиенты, сотрудники, поставщики, пользователи) к PostgreSQL.\n"+
				"Коллекция заказов в MongoDB создаётся лениво и здесь не участвует.\n\n")
		flag.PrintDefaults()
	}
	flag.StringVar(&direction, "direction", "up", "migration direction: up|down|status")
	flag.IntVar(&steps, "steps", 0, "number of migrations to apply/rollback (0=all for up, 1 for down)")
	flag.StringVar(&dsn, "dsn", "", "PostgreSQL DSN (fallback: TIENDA_POSTGRES_DSN)")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	if err := run(ctx, os.Stdout, direction, steps, dsn); err != nil {
		fail("%v", err)
	}
}

// run выполняет одну операцию миграции и пишет результат в out.
func run(ctx context.Context, out io.Writer, direction string, steps int, dsn string) error {
	if strings.TrimSpace(dsn) == "" {
		dsn = strings.TrimSpace(os.Getenv("TIENDA_POSTGRES_DSN"))
	}
	if dsn == "" {
		return fmt.Errorf("TIENDA_POSTGRES_DSN (or -dsn) is required")
	}

	store, err := postgres.Open(ctx, dsn)
	if err != nil {
		return fmt.Errorf("open postgres store: %w", err)
	}
	defer store.Close()

	switch strings.ToLower(strings.TrimSpace(direction)) {
	case "up":
		if err := store.MigrateUp(ctx, steps); err != nil {
			return fmt.Errorf("migrate up failed: %w", err)
		}
		return report(ctx, out, store, "migrate up ok")
	case "down":
		if steps <= 0 {
			steps = 1
		}
		if err := store.MigrateDown(ctx, steps); err != nil {
			return fmt.Errorf("migrate down failed: %w", err)
		}
		return report(ctx, out, store, "migrate down ok")
	case "status":
		return report(ctx, out, store, "migration status")
	default:
		return fmt.Errorf("unsupported direction: %s (use up|down|status)", direction)
	}
}

func report(ctx context.Context, out io.Writer, store *postgres.Store, prefix string) error {
	version, count, err := store.MigrationStatus(ctx)
	if err != nil {
		return fmt.Errorf("migration status failed: %w", err)
	}
	fmt.Fprintf(out, "%s: version=%d applied=%d\n", prefix, version, count)
	return nil
}

func fail(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
