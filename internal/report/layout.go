package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
)

// Page geometry in millimetres (A4 portrait).
const (
	pageW      = 210.0
	pageH      = 297.0
	marginLeft = 15.0
	marginTop  = 15.0
	contentW   = pageW - 2*marginLeft
	bodyBottom = pageH - 18.0 // footer zone below
)

// Block heights.
const (
	lineH      = 5.5
	bannerH    = 12.0
	badgeH     = 7.0
	headingH   = 8.0
	sectionGap = 3.0
	maxImageH  = 110.0
)

type rgb struct{ r, g, b int }

var (
	colorBanner      = rgb{31, 59, 92}    // dark blue banner fill
	colorBannerText  = rgb{255, 255, 255}
	colorHeadingFill = rgb{232, 238, 246}
	colorHeadingText = rgb{31, 59, 92}
	colorBody        = rgb{40, 40, 40}
	colorMuted       = rgb{130, 130, 130}
	colorLink        = rgb{20, 90, 200}
	colorBadgeFill   = rgb{222, 230, 240}
)

// renderer draws report content with explicit pagination. The same code
// path serves the measurement pass and the final output, so both agree on
// every break point.
type renderer struct {
	pdf    *fpdf.Fpdf
	tr     func(string) string
	cur    PageCursor
	images map[string]*embeddedImage
	named  map[string]string // asset URL -> registered image name
}

func newRenderer(images map[string]*embeddedImage) *renderer {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(colorMuted.r, colorMuted.g, colorMuted.b)
		pdf.SetXY(marginLeft, pageH-12)
		pdf.CellFormat(contentW, 5, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	return &renderer{
		pdf:    pdf,
		tr:     pdf.UnicodeTranslatorFromDescriptor(""),
		cur:    PageCursor{Top: marginTop, Bottom: bodyBottom},
		images: images,
		named:  make(map[string]string),
	}
}

func (r *renderer) newPage() {
	r.pdf.AddPage()
	r.cur = r.cur.NextPage()
}

// ensure breaks to a new page when the next block does not fit. Blocks
// taller than a whole page start on a fresh one and overflow line by line.
func (r *renderer) ensure(h float64) {
	if !r.cur.Fits(h) && r.cur.Y > r.cur.Top {
		r.newPage()
	}
}

func (r *renderer) gap(h float64) {
	if r.cur.Fits(h) {
		r.cur = r.cur.Advanced(h)
	}
}

// textLine writes a single pre-wrapped line at the cursor.
func (r *renderer) textLine(text string, style string, size float64, color rgb) {
	r.ensure(lineH)
	r.pdf.SetFont("Helvetica", style, size)
	r.pdf.SetTextColor(color.r, color.g, color.b)
	r.pdf.SetXY(marginLeft, r.cur.Y)
	r.pdf.CellFormat(contentW, lineH, r.tr(text), "", 0, "L", false, 0, "")
	r.cur = r.cur.Advanced(lineH)
}

// paragraph wraps and writes body text, linkifying bare URLs. Placeholder
// text renders muted italic with no link detection.
func (r *renderer) paragraph(text string, placeholder bool) {
	style, color := "", colorBody
	if placeholder {
		style, color = "I", colorMuted
	}
	r.pdf.SetFont("Helvetica", style, 10)

	for _, para := range splitParagraphs(text) {
		if para == "" {
			r.gap(lineH / 2)
			continue
		}
		for _, line := range r.wrap(para, contentW) {
			if placeholder {
				r.textLine(line, style, 10, color)
				continue
			}
			r.spanLine(linkify(line))
		}
	}
}

// wrap greedily fills lines up to width using the current font. The PDF
// library's SplitText indexes the core font width table by rune and panics
// past 0xFF, so wrapping happens here: widths are measured on the translated
// text while the returned lines stay raw, and the draw calls translate
// exactly once.
func (r *renderer) wrap(text string, width float64) []string {
	var lines []string
	line := ""
	for _, word := range strings.Fields(text) {
		for _, piece := range r.splitWide(word, width) {
			candidate := piece
			if line != "" {
				candidate = line + " " + piece
			}
			if line == "" || r.pdf.GetStringWidth(r.tr(candidate)) <= width {
				line = candidate
				continue
			}
			lines = append(lines, line)
			line = piece
		}
	}
	return append(lines, line)
}

// splitWide breaks a single token wider than the column (long URLs, mostly)
// into rune chunks that fit.
func (r *renderer) splitWide(word string, width float64) []string {
	if r.pdf.GetStringWidth(r.tr(word)) <= width {
		return []string{word}
	}
	var parts []string
	runes := []rune(word)
	start := 0
	for start < len(runes) {
		end := start + 1
		for end < len(runes) && r.pdf.GetStringWidth(r.tr(string(runes[start:end+1]))) <= width {
			end++
		}
		parts = append(parts, string(runes[start:end]))
		start = end
	}
	return parts
}

// spanLine writes one wrapped line as a sequence of plain and link spans.
func (r *renderer) spanLine(spans []span) {
	r.ensure(lineH)
	x := marginLeft
	for _, sp := range spans {
		style, color := "", colorBody
		if sp.Link != "" {
			style, color = "U", colorLink
		}
		r.pdf.SetFont("Helvetica", style, 10)
		r.pdf.SetTextColor(color.r, color.g, color.b)

		text := r.tr(sp.Text)
		w := r.pdf.GetStringWidth(text)
		r.pdf.SetXY(x, r.cur.Y)
		r.pdf.CellFormat(w, lineH, text, "", 0, "L", false, 0, sp.Link)
		x += w
	}
	r.cur = r.cur.Advanced(lineH)
}

// badge draws one filled label at x and returns the next x position.
// Overflowing the content column wraps to a new badge row.
func (r *renderer) badge(x float64, label string) float64 {
	r.pdf.SetFont("Helvetica", "", 9)
	text := r.tr(label)
	w := r.pdf.GetStringWidth(text) + 6

	if x+w > marginLeft+contentW && x > marginLeft {
		r.cur = r.cur.Advanced(badgeH + 1.5)
		r.ensure(badgeH)
		x = marginLeft
	}

	r.pdf.SetFillColor(colorBadgeFill.r, colorBadgeFill.g, colorBadgeFill.b)
	r.pdf.SetTextColor(colorHeadingText.r, colorHeadingText.g, colorHeadingText.b)
	r.pdf.SetXY(x, r.cur.Y)
	r.pdf.CellFormat(w, badgeH, text, "", 0, "C", true, 0, "")

	return x + w + 2
}

// image embeds a prepared screenshot at the cursor, scaled to fit.
func (r *renderer) image(url string, img *embeddedImage) {
	name, ok := r.named[url]
	if !ok {
		name = fmt.Sprintf("asset-%d", len(r.named)+1)
		r.named[url] = name
		r.pdf.RegisterImageOptionsReader(name,
			fpdf.ImageOptions{ImageType: img.Kind},
			bytes.NewReader(img.Data))
	}

	w, h := imageBox(img.Aspect, contentW, maxImageH)
	r.ensure(h)
	r.pdf.ImageOptions(name, marginLeft, r.cur.Y, w, h, false,
		fpdf.ImageOptions{ImageType: img.Kind}, 0, "")
	r.cur = r.cur.Advanced(h)
}

// splitParagraphs splits body text on newlines, normalizing CRLF.
func splitParagraphs(text string) []string {
	var out []string
	start := 0
	for i := 0; i < len(text); i++ {
		if text[i] != '\n' {
			continue
		}
		line := text[start:i]
		if len(line) > 0 && line[len(line)-1] == '\r' {
			line = line[:len(line)-1]
		}
		out = append(out, line)
		start = i + 1
	}
	return append(out, text[start:])
}
