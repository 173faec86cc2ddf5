package blob

import (
	"context"
	"sync"

	"github.com/aiusecase/catalog-backend/internal/domain"
)

// MemoryStore is an in-memory Store for tests. URLs use the mem:// scheme.
type MemoryStore struct {
	mu      sync.Mutex
	objects map[string][]byte

	// Uploads, Deletes and Fetches record the URLs touched, in call order.
	Uploads []string
	Deletes []string
	Fetches []string

	// FailFetch makes FetchBytes fail for the given URLs.
	FailFetch map[string]bool
	// FailDelete makes Delete fail for the given URLs.
	FailDelete map[string]bool
}

// NewMemory creates an empty in-memory asset store.
func NewMemory() *MemoryStore {
	return &MemoryStore{objects: make(map[string][]byte)}
}

func (m *MemoryStore) Upload(_ context.Context, recordID string, slot domain.ScreenshotSlot, data []byte, contentType string) (string, error) {
	if err := validateUpload(data, contentType); err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	url := "mem://" + objectKey(recordID, slot)
	m.objects[url] = append([]byte(nil), data...)
	m.Uploads = append(m.Uploads, url)
	return url, nil
}

func (m *MemoryStore) Delete(_ context.Context, url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Deletes = append(m.Deletes, url)
	if m.FailDelete[url] {
		return domain.NewAssetError(domain.AssetTransport, "Delete failed.", nil)
	}
	delete(m.objects, url)
	return nil
}

func (m *MemoryStore) FetchBytes(_ context.Context, url string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Fetches = append(m.Fetches, url)
	if m.FailFetch[url] {
		return nil, domain.NewAssetError(domain.AssetTransport, "Fetch failed.", nil)
	}
	data, ok := m.objects[url]
	if !ok {
		return nil, domain.NewAssetError(domain.AssetTransport, "Asset not found.", nil)
	}
	return append([]byte(nil), data...), nil
}

// Put seeds an object directly, bypassing validation. Test helper.
func (m *MemoryStore) Put(url string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[url] = data
}
