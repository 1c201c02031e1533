// Package record reads and writes the per-directory files that make up a
// logged-model record: a metadata collection, a tags collection, and a
// params collection, each an independently replaceable YAML file. It also
// assembles full entities back out of a directory (hydration).
package record

import (
	"context"
	"errors"
	"fmt"
	"path"

	"gopkg.in/yaml.v3"

	"github.com/tarek7669/mlflow/blobstore"
)

// Collection kinds. Each kind is stored as one YAML file in the record's
// directory.
const (
	KindMeta   = "meta"
	KindTags   = "tags"
	KindParams = "params"
)

// MetricsFile is written by the metrics subsystem; this store only reads it.
const MetricsFile = "metrics.yaml"

// Codec persists scalar values and string collections under directories of
// a blobstore. Every write is atomic from the reader's perspective; the
// backing store guarantees whole-file replacement.
type Codec struct {
	store blobstore.Store
}

// NewCodec creates a Codec over the given backing store.
func NewCodec(store blobstore.Store) *Codec {
	return &Codec{store: store}
}

// Store returns the backing store.
func (c *Codec) Store() blobstore.Store { return c.store }

// WriteScalar persists a single named value as a raw file `dir/key`.
func (c *Codec) WriteScalar(ctx context.Context, dir, key, value string) error {
	return c.store.WriteFile(ctx, path.Join(dir, key), []byte(value))
}

// ReadScalar reads a single named value. The second result is false when
// the value is absent.
func (c *Codec) ReadScalar(ctx context.Context, dir, key string) (string, bool, error) {
	data, err := c.store.ReadFile(ctx, path.Join(dir, key))
	if err != nil {
		if errors.Is(err, blobstore.ErrNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return string(data), true, nil
}

// DeleteScalar removes a single named value. Absent values are ignored.
func (c *Codec) DeleteScalar(ctx context.Context, dir, key string) error {
	return c.store.Delete(ctx, path.Join(dir, key))
}

// CollectionFile returns the file name holding a collection kind.
func CollectionFile(kind string) string {
	return kind + ".yaml"
}

// WriteCollection persists one collection kind as a single YAML mapping.
func (c *Codec) WriteCollection(ctx context.Context, dir, kind string, entries map[string]string) error {
	data, err := yaml.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode %s collection: %w", kind, err)
	}
	return c.store.WriteFile(ctx, path.Join(dir, CollectionFile(kind)), data)
}

// ReadCollection reads one collection kind. A missing file yields an empty
// collection, not an error.
func (c *Codec) ReadCollection(ctx context.Context, dir, kind string) (map[string]string, error) {
	data, err := c.store.ReadFile(ctx, path.Join(dir, CollectionFile(kind)))
	if err != nil {
		if errors.Is(err, blobstore.ErrNotFound) {
			return map[string]string{}, nil
		}
		return nil, err
	}

	entries := map[string]string{}
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, &CorruptError{Dir: dir, Reason: fmt.Sprintf("malformed %s collection: %v", kind, err)}
	}
	return entries, nil
}
