// Command seeder imports a legacy catalog export into PostgreSQL. The
// export is a JSON array of use case records in the catalog's wire format;
// "for_use_by" may be a single string on old records and legacy non-UUID
// ids get fresh ids on insert.
//
// Usage:
//
//	seeder --file=use_cases.json
//
// Requires DATABASE_DSN environment variable to be set.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aiusecase/catalog-backend/internal/adapter/postgres"
	usecaserepo "github.com/aiusecase/catalog-backend/internal/adapter/postgres/usecase"
	"github.com/aiusecase/catalog-backend/internal/domain"
)

func main() {
	file := flag.String("file", "", "path to the catalog export JSON")
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "Usage: seeder --file=use_cases.json")
		os.Exit(1)
	}

	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		log.Fatal("DATABASE_DSN environment variable is required")
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("read %s: %v", *file, err)
	}

	var raw []domain.RecordJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		log.Fatalf("parse %s: %v", *file, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalf("connect to database: %v", err)
	}
	defer pool.Close()

	repo := usecaserepo.New(pool)
	txManager := postgres.NewTxManager(pool)

	// The whole import runs in one transaction: a bad export never leaves a
	// partial catalog behind.
	imported, skipped := 0, 0
	err = txManager.RunInTx(ctx, func(ctx context.Context) error {
		for i, rec := range raw {
			u := domain.DecodeRecord(rec)
			if err := u.Validate(); err != nil {
				fmt.Printf("Skipping record %d (%q): %v\n", i, rec.Title, err)
				skipped++
				continue
			}

			id, err := repo.Create(ctx)
			if err != nil {
				return fmt.Errorf("create record %d: %w", i, err)
			}
			if _, err := repo.Put(ctx, id, u); err != nil {
				return fmt.Errorf("save record %d (%q): %w", i, u.Title, err)
			}
			imported++
		}
		return nil
	})
	if err != nil {
		log.Fatalf("import: %v", err)
	}

	fmt.Printf("Imported %d records, skipped %d.\n", imported, skipped)
}
