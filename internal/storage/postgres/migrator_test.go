package postgres

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/clownsinformatics/tienda/internal/pagination"
)

func TestLoadMigrationsFromFS_Success(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"sql/migrations/0001_init.up.sql": {
			Data: []byte("CREATE TABLE shelf_a (id INT);"),
		},
		"sql/migrations/0001_init.down.sql": {
			Data: []byte("DROP TABLE IF EXISTS shelf_a;"),
		},
		"sql/migrations/0002_extra.up.sql": {
			Data: []byte("CREATE TABLE shelf_b (id INT);"),
		},
		"sql/migrations/0002_extra.down.sql": {
			Data: []byte("DROP TABLE IF EXISTS shelf_b;"),
		},
	}

	migrations, err := loadMigrationsFromFS(fsys)
	if err != nil {
		t.Fatalf("loadMigrationsFromFS failed: %v", err)
	}
	if len(migrations) != 2 {
		t.Fatalf("expected 2 migrations, got %d", len(migrations))
	}
	if migrations[0].Version != 1 || migrations[0].Name != "init" {
		t.Fatalf("unexpected first migration: %+v", migrations[0])
	}
	if migrations[1].Version != 2 || migrations[1].Name != "extra" {
		t.Fatalf("unexpected second migration: %+v", migrations[1])
	}
}

func TestLoadMigrationsFromFS_MissingDown(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"sql/migrations/0001_init.up.sql": {
			Data: []byte("CREATE TABLE shelf_a (id INT);"),
		},
	}

	_, err := loadMigrationsFromFS(fsys)
	if err == nil {
		t.Fatal("expected error for missing down migration")
	}
	if !strings.Contains(err.Error(), "both up and down") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadMigrationsFromFS_InvalidFilename(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"sql/migrations/not_a_migration.sql": {
			Data: []byte("SELECT 1;"),
		},
	}

	_, err := loadMigrationsFromFS(fsys)
	if err == nil {
		t.Fatal("expected error for invalid migration file name")
	}
}

func TestEmbeddedMigrationsAreComplete(t *testing.T) {
	t.Parallel()

	migrations, err := loadMigrationsFromFS(migrationsFS)
	if err != nil {
		t.Fatalf("embedded migrations are broken: %v", err)
	}
	if len(migrations) == 0 {
		t.Fatal("expected at least one embedded migration")
	}
	for _, m := range migrations {
		if m.UpSQL == "" || m.DownSQL == "" {
			t.Fatalf("migration %d_%s is incomplete", m.Version, m.Name)
		}
	}
}

func TestConditionsWhere(t *testing.T) {
	t.Parallel()

	var c conditions
	if c.where() != "" {
		t.Fatalf("empty conditions must produce no WHERE, got %q", c.where())
	}

	c.add("name ILIKE $%d", "%ssd%")
	c.add("stock >= $%d", 5)

	want := " WHERE name ILIKE $1 AND stock >= $2"
	if c.where() != want {
		t.Fatalf("where = %q, want %q", c.where(), want)
	}
	if len(c.args) != 2 {
		t.Fatalf("expected 2 args, got %d", len(c.args))
	}
}

func TestConditionsPaged(t *testing.T) {
	t.Parallel()

	var c conditions
	c.add("price <= $%d", 100)

	req := pagination.Request{Page: 2, Size: 10, SortBy: "price", Direction: "desc"}
	clause, args := c.paged(map[string]string{"price": "price"}, "id", req)

	want := " ORDER BY price DESC LIMIT $2 OFFSET $3"
	if clause != want {
		t.Fatalf("clause = %q, want %q", clause, want)
	}
	if len(args) != 3 {
		t.Fatalf("expected 3 args, got %d", len(args))
	}
	if args[1] != 10 || args[2] != 20 {
		t.Fatalf("unexpected limit/offset args: %v", args[1:])
	}
}

func TestConditionsPagedUnknownSortFallsBack(t *testing.T) {
	t.Parallel()

	var c conditions
	req := pagination.Request{Page: 0, Size: 5, SortBy: "evil; DROP TABLE users", Direction: "asc"}
	clause, _ := c.paged(map[string]string{"name": "name"}, "id", req)

	if !strings.Contains(clause, "ORDER BY id ASC") {
		t.Fatalf("unknown sort field must fall back to default column, got %q", clause)
	}
}
