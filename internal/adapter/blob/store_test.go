package blob

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aiusecase/catalog-backend/internal/domain"
)

func TestValidateUpload_SizeExceeded(t *testing.T) {
	// 6MB must be rejected locally — no store call ever happens.
	data := make([]byte, 6*1024*1024)
	err := validateUpload(data, "image/png")
	require.Error(t, err)

	ae, ok := domain.AsAssetError(err)
	require.True(t, ok)
	assert.Equal(t, domain.AssetSizeExceeded, ae.Kind)
	assert.Contains(t, ae.Message, "Maximum size is 5MB")
}

func TestValidateUpload_InvalidType(t *testing.T) {
	err := validateUpload([]byte("plain"), "application/pdf")
	require.Error(t, err)

	ae, ok := domain.AsAssetError(err)
	require.True(t, ok)
	assert.Equal(t, domain.AssetInvalidType, ae.Kind)
}

func TestValidateUpload_AcceptedTypes(t *testing.T) {
	for _, ct := range []string{"image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp"} {
		assert.NoError(t, validateUpload([]byte{1}, ct), ct)
	}
}

func TestMemoryStore_UploadFetchDelete(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	url, err := store.Upload(ctx, "rec-1", domain.SlotSetup, []byte("png-bytes"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "mem://use-cases/rec-1/setup", url)

	data, err := store.FetchBytes(ctx, url)
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)

	require.NoError(t, store.Delete(ctx, url))
	_, err = store.FetchBytes(ctx, url)
	assert.Error(t, err)
}

func TestMemoryStore_RejectsOversizeBeforeStoring(t *testing.T) {
	store := NewMemory()

	_, err := store.Upload(context.Background(), "rec-1", domain.SlotUse, make([]byte, MaxUploadSize+1), "image/png")
	require.Error(t, err)
	// Rejected locally: nothing recorded as uploaded.
	assert.Empty(t, store.Uploads)
}
