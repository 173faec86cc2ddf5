package report

import (
	"github.com/aiusecase/catalog-backend/internal/domain"
)

// unavailableMarker replaces a screenshot whose asset could not be
// retrieved. The report still generates; the gap is made explicit.
const unavailableMarker = "[image unavailable]"

// record draws one use case. The caller starts it on a fresh page; long
// records flow across as many pages as they need.
func (r *renderer) record(u domain.UseCase) {
	r.titleBanner(u.Title)
	r.badgeRow(u)

	if u.SubmittedBy != "" {
		r.textLine("Submitted by "+u.SubmittedBy, "I", 9, colorMuted)
	}
	r.gap(sectionGap)

	for _, key := range domain.SectionOrder {
		body, placeholder := u.Sections.BodyOrPlaceholder(key)
		r.section(domain.SectionHeading(key), body, placeholder)
	}

	r.screenshot("Screenshot: setup", u.Screenshots.Setup)
	r.screenshot("Screenshot: in use", u.Screenshots.Use)
}

func (r *renderer) titleBanner(title string) {
	r.ensure(bannerH)
	r.pdf.SetFillColor(colorBanner.r, colorBanner.g, colorBanner.b)
	r.pdf.SetTextColor(colorBannerText.r, colorBannerText.g, colorBannerText.b)
	r.pdf.SetFont("Helvetica", "B", 14)
	r.pdf.SetXY(marginLeft, r.cur.Y)
	r.pdf.CellFormat(contentW, bannerH, r.tr(r.fit(title, "B", 14, contentW-4)), "", 0, "L", true, 0, "")
	r.cur = r.cur.Advanced(bannerH + 2)
}

// badgeRow draws the tool badge followed by one badge per audience.
func (r *renderer) badgeRow(u domain.UseCase) {
	r.ensure(badgeH)
	x := marginLeft
	if u.AITool != "" {
		x = r.badge(x, domain.ToolName(u.AITool))
	}
	for _, a := range domain.NormalizeAudiences(u.Audiences) {
		x = r.badge(x, a)
	}
	r.cur = r.cur.Advanced(badgeH + 2)
}

// section draws a heading band and its body. The band is kept together
// with at least one body line.
func (r *renderer) section(heading, body string, placeholder bool) {
	r.ensure(headingH + lineH)

	r.pdf.SetFillColor(colorHeadingFill.r, colorHeadingFill.g, colorHeadingFill.b)
	r.pdf.SetTextColor(colorHeadingText.r, colorHeadingText.g, colorHeadingText.b)
	r.pdf.SetFont("Helvetica", "B", 11)
	r.pdf.SetXY(marginLeft, r.cur.Y)
	r.pdf.CellFormat(contentW, headingH, r.tr(heading), "", 0, "L", true, 0, "")
	r.cur = r.cur.Advanced(headingH + 1)

	r.paragraph(body, placeholder)
	r.gap(sectionGap)
}

// screenshot draws a labelled image block. An empty slot is skipped; a
// slot whose asset failed to fetch gets the unavailability marker.
func (r *renderer) screenshot(label, url string) {
	if url == "" {
		return
	}

	img := r.images[url]
	need := headingH + lineH
	if img != nil {
		_, h := imageBox(img.Aspect, contentW, maxImageH)
		need = headingH + h
	}
	if need > r.cur.Bottom-r.cur.Top {
		need = headingH + lineH
	}
	r.ensure(need)

	r.textLine(label, "B", 10, colorHeadingText)
	if img == nil {
		r.textLine(unavailableMarker, "I", 10, colorMuted)
	} else {
		r.image(url, img)
	}
	r.gap(sectionGap)
}

// fit shrinks text to the given width by dropping runes and appending an
// ellipsis. Titles that fit pass through unchanged.
func (r *renderer) fit(text, style string, size, width float64) string {
	r.pdf.SetFont("Helvetica", style, size)
	if r.pdf.GetStringWidth(r.tr(text)) <= width {
		return text
	}
	runes := []rune(text)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		candidate := string(runes) + "…"
		if r.pdf.GetStringWidth(r.tr(candidate)) <= width {
			return candidate
		}
	}
	return ""
}
