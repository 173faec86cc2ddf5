package blob

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	aws "github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"

	appconfig "github.com/aiusecase/catalog-backend/internal/config"
	"github.com/aiusecase/catalog-backend/internal/domain"
)

// S3Store implements Store on an S3-compatible backend. Single bucket;
// object keys are use-cases/<record-id>/<slot>, and retrieval URLs are
// <public_base_url>/<key>.
type S3Store struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

// NewS3 creates an S3 asset store from BlobConfig.
func NewS3(ctx context.Context, cfg appconfig.BlobConfig) (*S3Store, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("blob: s3 bucket required")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("blob: load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.PathStyle {
			o.UsePathStyle = true
		}
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})

	baseURL := strings.TrimSuffix(cfg.PublicBaseURL, "/")
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, region)
	}

	return &S3Store{client: client, bucket: cfg.Bucket, baseURL: baseURL}, nil
}

// Upload validates locally, then puts the object and returns its URL.
func (s *S3Store) Upload(ctx context.Context, recordID string, slot domain.ScreenshotSlot, data []byte, contentType string) (string, error) {
	if err := validateUpload(data, contentType); err != nil {
		return "", err
	}

	key := objectKey(recordID, slot)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &s.bucket,
		Key:         &key,
		Body:        bytes.NewReader(data),
		ContentType: &contentType,
	})
	if err != nil {
		return "", mapS3Error(err, "upload")
	}

	return s.baseURL + "/" + key, nil
}

// Delete removes the object behind the URL. Unknown URLs (assets migrated
// from another store) are reported as transport failures; callers that
// treat deletion as best-effort log and move on.
func (s *S3Store) Delete(ctx context.Context, url string) error {
	key, err := s.keyFromURL(url)
	if err != nil {
		return err
	}
	if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{Bucket: &s.bucket, Key: &key}); err != nil {
		return mapS3Error(err, "delete")
	}
	return nil
}

// FetchBytes retrieves the full object contents.
func (s *S3Store) FetchBytes(ctx context.Context, url string) ([]byte, error) {
	key, err := s.keyFromURL(url)
	if err != nil {
		return nil, err
	}
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{Bucket: &s.bucket, Key: &key})
	if err != nil {
		return nil, mapS3Error(err, "fetch")
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, mapS3Error(err, "fetch")
	}
	return data, nil
}

func (s *S3Store) keyFromURL(url string) (string, error) {
	if rest, ok := strings.CutPrefix(url, s.baseURL+"/"); ok && rest != "" {
		return rest, nil
	}
	return "", domain.NewAssetError(domain.AssetTransport,
		fmt.Sprintf("asset URL %q does not belong to this store", url), nil)
}

// mapS3Error classifies SDK failures into the asset error taxonomy with
// operator-readable messages.
func mapS3Error(err error, op string) error {
	if errors.Is(err, context.Canceled) {
		return domain.NewAssetError(domain.AssetCanceled, capitalize(op)+" canceled.", err)
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "AccessDenied":
			return domain.NewAssetError(domain.AssetPermission,
				"Permission denied. Please check storage bucket permissions.", err)
		case "NoSuchKey":
			return domain.NewAssetError(domain.AssetTransport, "Asset not found.", err)
		}
	}

	return domain.NewAssetError(domain.AssetTransport,
		fmt.Sprintf("%s failed. Please check your connection and try again.", capitalize(op)), err)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
