// Package report renders catalog records into paginated PDF documents:
// single-record exports and multi-record reports with a cover page and a
// table of contents.
package report

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aiusecase/catalog-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type assetFetcher interface {
	FetchBytes(ctx context.Context, url string) ([]byte, error)
}

// ---------------------------------------------------------------------------
// Generator
// ---------------------------------------------------------------------------

// Generator renders PDF reports.
type Generator struct {
	log          *slog.Logger
	assets       assetFetcher
	maxRecords   int
	imageTimeout time.Duration
	now          func() time.Time
}

// NewGenerator creates a new report Generator.
func NewGenerator(logger *slog.Logger, assets assetFetcher, maxRecords int, imageTimeout time.Duration) *Generator {
	return &Generator{
		log:          logger.With("service", "report"),
		assets:       assets,
		maxRecords:   maxRecords,
		imageTimeout: imageTimeout,
		now:          time.Now,
	}
}

// Report is a finished document.
type Report struct {
	Filename string
	Data     []byte
	Pages    int
}

// Generate renders the given records, in the given order, into one PDF.
//
// A single record becomes a bare export. Two or more get front matter: a
// cover page and a table of contents whose page numbers come from a
// measurement pass over the exact rendering code, shifted by the front
// matter size. Every record starts on a fresh page.
func (g *Generator) Generate(ctx context.Context, records []domain.UseCase) (*Report, error) {
	if len(records) == 0 {
		return nil, domain.NewValidationError("records", "select at least one record")
	}
	if len(records) > g.maxRecords {
		return nil, domain.NewValidationError("records",
			fmt.Sprintf("at most %d records per report", g.maxRecords))
	}

	started := g.now()
	images := g.fetchImages(ctx, records)

	// Measurement pass: body pages only, to learn where each record lands.
	measure := newRenderer(images)
	starts := make([]int, len(records))
	for i := range records {
		measure.newPage()
		starts[i] = measure.cur.Page
		measure.record(records[i])
	}

	frontMatter := len(records) > 1
	offset := 0
	if frontMatter {
		offset = coverPages + tocPageCount(len(records))
	}

	final := newRenderer(images)
	var links []int
	if frontMatter {
		final.cover(len(records), g.now())
		pages := make([]int, len(records))
		for i, s := range starts {
			pages[i] = offset + s
		}
		links = final.toc(records, pages)
	}

	for i, u := range records {
		final.newPage()
		if links != nil {
			final.pdf.SetLink(links[i], 0, final.cur.Page)
		}
		if final.cur.Page != offset+starts[i] {
			// Both passes run the same code over the same inputs; a drift
			// here means the contents would lie.
			return nil, fmt.Errorf("render pdf: page drift on record %d: got %d, want %d",
				i, final.cur.Page, offset+starts[i])
		}
		final.record(u)
	}

	var buf bytes.Buffer
	if err := final.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}

	report := &Report{
		Filename: Filename(records),
		Data:     buf.Bytes(),
		Pages:    final.cur.Page,
	}

	g.log.InfoContext(ctx, "report generated",
		slog.Int("records", len(records)),
		slog.Int("pages", report.Pages),
		slog.String("filename", report.Filename),
		slog.Duration("took", time.Since(started)),
	)

	return report, nil
}

// Filename names the download. A single record is named after its title; a
// multi-record report carries the record count.
func Filename(records []domain.UseCase) string {
	if len(records) == 1 {
		if slug := domain.TitleSlug(records[0].Title); slug != "" {
			return slug + ".pdf"
		}
		return "use-case.pdf"
	}
	return fmt.Sprintf("ai-use-cases-%d.pdf", len(records))
}
