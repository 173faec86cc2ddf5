// Command report renders a PDF report from a catalog export file, without
// a running server or database. Useful for checking layout changes and for
// producing one-off handouts.
//
// Usage:
//
//	report --in=use_cases.json --out=report.pdf [--ids=id1,id2]
//
// The input file holds an array of use case records in the catalog's wire
// format. With --ids, only the listed records render, in the given order;
// otherwise all records render in title order.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aiusecase/catalog-backend/internal/adapter/blob"
	"github.com/aiusecase/catalog-backend/internal/catalog"
	"github.com/aiusecase/catalog-backend/internal/domain"
	"github.com/aiusecase/catalog-backend/internal/report"
)

func main() {
	in := flag.String("in", "", "path to the catalog export JSON")
	out := flag.String("out", "", "output PDF path (defaults to the generated filename)")
	ids := flag.String("ids", "", "comma-separated record ids to include, in order")
	flag.Parse()

	if *in == "" {
		fmt.Fprintln(os.Stderr, "Usage: report --in=use_cases.json [--out=report.pdf] [--ids=id1,id2]")
		os.Exit(1)
	}

	records, err := loadRecords(*in)
	if err != nil {
		log.Fatalf("load records: %v", err)
	}

	if *ids != "" {
		records, err = selectRecords(records, strings.Split(*ids, ","))
		if err != nil {
			log.Fatalf("select records: %v", err)
		}
	} else {
		records = catalog.SortRecords(records, catalog.SortTitleAsc)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	// Screenshot URLs in an offline export are not reachable; the renderer
	// marks them unavailable instead of failing.
	generator := report.NewGenerator(logger, blob.NewMemory(), len(records)+1, time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	rep, err := generator.Generate(ctx, records)
	if err != nil {
		log.Fatalf("generate report: %v", err)
	}

	path := *out
	if path == "" {
		path = rep.Filename
	}
	if err := os.WriteFile(path, rep.Data, 0o644); err != nil {
		log.Fatalf("write %s: %v", path, err)
	}

	fmt.Printf("Wrote %s (%d records, %d pages).\n", path, len(records), rep.Pages)
}

func loadRecords(path string) ([]domain.UseCase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw []domain.RecordJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	records := make([]domain.UseCase, 0, len(raw))
	for _, rec := range raw {
		records = append(records, domain.DecodeRecord(rec))
	}
	return records, nil
}

func selectRecords(records []domain.UseCase, ids []string) ([]domain.UseCase, error) {
	byID := make(map[uuid.UUID]domain.UseCase, len(records))
	for _, u := range records {
		byID[u.ID] = u
	}

	out := make([]domain.UseCase, 0, len(ids))
	for _, raw := range ids {
		id, err := uuid.Parse(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("invalid id %q", raw)
		}
		u, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("no record with id %s", id)
		}
		out = append(out, u)
	}
	return out, nil
}
