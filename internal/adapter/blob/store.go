// Package blob implements the screenshot asset store. The S3 driver targets
// AWS S3 or any S3-compatible backend (MinIO); the memory driver backs tests.
// Both enforce the upload constraints locally, before any network call.
package blob

import (
	"context"
	"fmt"

	"github.com/aiusecase/catalog-backend/internal/domain"
)

// MaxUploadSize is the largest accepted screenshot, in bytes.
const MaxUploadSize = 5 * 1024 * 1024

// allowedTypes are the accepted screenshot MIME types.
var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// Store is the asset store consumed by the editor and the report generator.
type Store interface {
	// Upload stores the bytes under the record's slot key and returns a
	// stable retrieval URL. Size and MIME violations fail before any
	// network call.
	Upload(ctx context.Context, recordID string, slot domain.ScreenshotSlot, data []byte, contentType string) (string, error)
	// Delete removes the asset behind the URL. Callers treat failures as
	// best-effort; the store still reports them.
	Delete(ctx context.Context, url string) error
	// FetchBytes retrieves the asset contents. Used only by the report
	// generator; failures there are non-fatal to the overall report.
	FetchBytes(ctx context.Context, url string) ([]byte, error)
}

// objectKey builds the storage key for a record's screenshot slot.
func objectKey(recordID string, slot domain.ScreenshotSlot) string {
	return fmt.Sprintf("use-cases/%s/%s", recordID, slot)
}

// validateUpload enforces the local upload constraints.
func validateUpload(data []byte, contentType string) error {
	if len(data) > MaxUploadSize {
		return domain.NewAssetError(domain.AssetSizeExceeded,
			fmt.Sprintf("Image too large (%.2fMB). Maximum size is 5MB.", float64(len(data))/1024/1024), nil)
	}
	if !allowedTypes[contentType] {
		return domain.NewAssetError(domain.AssetInvalidType,
			fmt.Sprintf("Invalid file type: %s. Please upload an image (JPG, PNG, GIF, or WebP).", contentType), nil)
	}
	return nil
}
