package report

import (
	"fmt"
	"time"

	"github.com/aiusecase/catalog-backend/internal/domain"
)

const (
	coverPages = 1
	tocHeaderH = 14.0
	tocLineH   = 7.0
)

// tocCapacityFirst and tocCapacityRest are how many entries fit on the
// first and on the following contents pages.
var (
	tocCapacityFirst = tocCapacity(bodyBottom - marginTop - tocHeaderH)
	tocCapacityRest  = tocCapacity(bodyBottom - marginTop)
)

func tocCapacity(h float64) int {
	return int(h / tocLineH)
}

// tocPageCount returns how many pages a table of contents with n entries
// occupies. The count feeds the page-number arithmetic, so it must match
// what toc actually draws.
func tocPageCount(n int) int {
	pages := 1
	n -= tocCapacityFirst
	for n > 0 {
		pages++
		n -= tocCapacityRest
	}
	return pages
}

// cover draws the report cover page.
func (r *renderer) cover(count int, now time.Time) {
	r.newPage()

	r.pdf.SetFillColor(colorBanner.r, colorBanner.g, colorBanner.b)
	r.pdf.Rect(0, 95, pageW, 40, "F")

	r.pdf.SetFont("Helvetica", "B", 26)
	r.pdf.SetTextColor(colorBannerText.r, colorBannerText.g, colorBannerText.b)
	r.pdf.SetXY(marginLeft, 105)
	r.pdf.CellFormat(contentW, 12, r.tr("AI Use Case Catalog"), "", 0, "C", false, 0, "")

	r.pdf.SetFont("Helvetica", "", 12)
	r.pdf.SetXY(marginLeft, 119)
	r.pdf.CellFormat(contentW, 8, r.tr(coverSubtitle(count, now)), "", 0, "C", false, 0, "")
}

func coverSubtitle(count int, now time.Time) string {
	noun := "use cases"
	if count == 1 {
		noun = "use case"
	}
	return fmt.Sprintf("%d %s, generated %s", count, noun, now.Format("2 January 2006"))
}

// toc draws the table of contents and returns one internal link id per
// record, in order. Callers bind each id to the record's first page with
// SetLink once that page exists.
func (r *renderer) toc(records []domain.UseCase, pages []int) []int {
	r.newPage()

	r.pdf.SetFont("Helvetica", "B", 16)
	r.pdf.SetTextColor(colorHeadingText.r, colorHeadingText.g, colorHeadingText.b)
	r.pdf.SetXY(marginLeft, r.cur.Y)
	r.pdf.CellFormat(contentW, 10, r.tr("Contents"), "", 0, "L", false, 0, "")
	r.cur = r.cur.Advanced(tocHeaderH)

	links := make([]int, len(records))
	for i, u := range records {
		if !r.cur.Fits(tocLineH) {
			r.newPage()
		}

		links[i] = r.pdf.AddLink()
		pageLabel := fmt.Sprintf("%d", pages[i])

		r.pdf.SetFont("Helvetica", "", 11)
		numW := r.pdf.GetStringWidth(pageLabel) + 2

		r.pdf.SetTextColor(colorBody.r, colorBody.g, colorBody.b)
		r.pdf.SetXY(marginLeft, r.cur.Y)
		title := r.fit(u.Title, "", 11, contentW-numW-6)
		r.pdf.CellFormat(contentW-numW, tocLineH, r.tr(title), "", 0, "L", false, links[i], "")

		r.pdf.SetTextColor(colorMuted.r, colorMuted.g, colorMuted.b)
		r.pdf.SetXY(marginLeft+contentW-numW, r.cur.Y)
		r.pdf.CellFormat(numW, tocLineH, pageLabel, "", 0, "R", false, links[i], "")

		r.cur = r.cur.Advanced(tocLineH)
	}

	return links
}
