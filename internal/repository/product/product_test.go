package product

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"product-details/internal/domain"
	"product-details/internal/migrate"
)

func TestPostgres_UpsertAndGetByIDs(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	resetTables(ctx, t, pool)

	repo := NewPostgres(pool, nil)
	for _, p := range []domain.Product{
		{ID: "p1", Title: "Backpack", Price: decimal.RequireFromString("109.95"), Category: "bags", Rating: domain.Rating{Rate: 3.9, Count: 120}},
		{ID: "p2", Title: "Shirt", Price: decimal.RequireFromString("22.3"), Category: "men's clothing"},
		{ID: "p3", Title: "Jacket", Price: decimal.RequireFromString("55.99")},
	} {
		if _, err := repo.Upsert(ctx, p); err != nil {
			t.Fatalf("upsert %s: %v", p.ID, err)
		}
	}

	got, err := repo.GetByIDs(ctx, []string{"p3", "missing", "p1", "p3"})
	if err != nil {
		t.Fatalf("GetByIDs: %v", err)
	}
	if len(got) != 2 || got[0].ID != "p3" || got[1].ID != "p1" {
		t.Fatalf("unexpected products %+v", got)
	}
	if got[1].Price.StringFixed(2) != "109.95" || got[1].Rating.Count != 120 {
		t.Fatalf("unexpected product %+v", got[1])
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 3 || list[0].Title != "Backpack" {
		t.Fatalf("unexpected list %+v", list)
	}
}

func TestPostgres_UpsertUpdates(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	resetTables(ctx, t, pool)

	repo := NewPostgres(pool, nil)
	if _, err := repo.Upsert(ctx, domain.Product{ID: "p1", Title: "Old", Price: decimal.RequireFromString("1")}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if _, err := repo.Upsert(ctx, domain.Product{ID: "p1", Title: "New", Description: "desc", Price: decimal.RequireFromString("2.5")}); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := repo.GetByIDs(ctx, []string{"p1"})
	if err != nil {
		t.Fatalf("GetByIDs: %v", err)
	}
	if len(got) != 1 || got[0].Title != "New" || got[0].Description != "desc" || got[0].Price.StringFixed(2) != "2.50" {
		t.Fatalf("unexpected updated product %+v", got)
	}
}

func testPool(ctx context.Context, t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	return pool
}

func resetTables(ctx context.Context, t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	if _, err := pool.Exec(ctx, `TRUNCATE products`); err != nil {
		t.Fatalf("truncate tables: %v", err)
	}
}
