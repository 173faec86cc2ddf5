package report

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"log/slog"

	_ "image/gif"
	_ "image/jpeg"

	"golang.org/x/image/webp"

	"github.com/aiusecase/catalog-backend/internal/domain"
)

// imageAspectFallback is assumed when an image's dimensions cannot be
// probed: wide landscape, the common screenshot shape.
const imageAspectFallback = 16.0 / 10.0

// embeddedImage is a screenshot prepared for embedding: raw bytes, the PDF
// image type, and the intrinsic aspect ratio.
type embeddedImage struct {
	Data   []byte
	Kind   string  // PNG, JPG or GIF
	Aspect float64 // width / height
}

// fetchImages retrieves every referenced screenshot up front, so layout
// measurement and final rendering see the same assets. A failed fetch or an
// undecodable payload yields a nil entry; the renderer substitutes an
// unavailability marker, it never fails the report.
func (g *Generator) fetchImages(ctx context.Context, records []domain.UseCase) map[string]*embeddedImage {
	images := make(map[string]*embeddedImage)

	for _, u := range records {
		for _, slot := range []domain.ScreenshotSlot{domain.SlotSetup, domain.SlotUse} {
			url := u.Screenshots.Get(slot)
			if url == "" {
				continue
			}
			if _, seen := images[url]; seen {
				continue
			}
			images[url] = g.fetchImage(ctx, url)
		}
	}

	return images
}

func (g *Generator) fetchImage(ctx context.Context, url string) *embeddedImage {
	fetchCtx, cancel := context.WithTimeout(ctx, g.imageTimeout)
	defer cancel()

	data, err := g.assets.FetchBytes(fetchCtx, url)
	if err != nil {
		g.log.WarnContext(ctx, "screenshot fetch failed",
			slog.String("url", url),
			slog.String("error", err.Error()),
		)
		return nil
	}

	img, err := prepareImage(data)
	if err != nil {
		g.log.WarnContext(ctx, "screenshot decode failed",
			slog.String("url", url),
			slog.String("error", err.Error()),
		)
		return nil
	}

	return img
}

// prepareImage probes the payload and converts it to a format the PDF
// library embeds natively. WebP has no native support and is re-encoded
// as PNG.
func prepareImage(data []byte) (*embeddedImage, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	aspect := imageAspectFallback
	if cfg.Width > 0 && cfg.Height > 0 {
		aspect = float64(cfg.Width) / float64(cfg.Height)
	}

	switch format {
	case "png":
		return &embeddedImage{Data: data, Kind: "PNG", Aspect: aspect}, nil
	case "jpeg":
		return &embeddedImage{Data: data, Kind: "JPG", Aspect: aspect}, nil
	case "gif":
		return &embeddedImage{Data: data, Kind: "GIF", Aspect: aspect}, nil
	case "webp":
		decoded, err := webp.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("decode webp: %w", err)
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, decoded); err != nil {
			return nil, fmt.Errorf("reencode webp: %w", err)
		}
		return &embeddedImage{Data: buf.Bytes(), Kind: "PNG", Aspect: aspect}, nil
	default:
		return nil, fmt.Errorf("unsupported image format %q", format)
	}
}

// imageBox fits an image of the given aspect into the content column,
// capped at maxH.
func imageBox(aspect, maxW, maxH float64) (w, h float64) {
	if aspect <= 0 {
		aspect = imageAspectFallback
	}
	w = maxW
	h = w / aspect
	if h > maxH {
		h = maxH
		w = h * aspect
	}
	return w, h
}
