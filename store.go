package mlflow

import (
	"context"
	"path"
	"strings"
	"sync"

	"github.com/tarek7669/mlflow/blobstore"
	"github.com/tarek7669/mlflow/internal/layout"
	"github.com/tarek7669/mlflow/internal/record"
)

// DefaultExperimentID is the id of the experiment every store starts with.
const DefaultExperimentID = "0"

// DefaultExperimentName is the name of the default experiment.
const DefaultExperimentName = "Default"

// FileStore is a tracking store for logged models backed by files in a
// blobstore. All methods are safe for concurrent use within one process;
// the store does not coordinate writers across processes.
type FileStore struct {
	store  blobstore.Store
	codec  *record.Codec
	layout *layout.Manager
	opts   options

	// artifactRoot prefixes the artifact locations minted for new
	// experiments and models.
	artifactRoot string

	// mu serializes read-modify-write cycles on records.
	mu sync.Mutex
}

// NewFileStore opens (or initializes) a store rooted at a local directory.
func NewFileStore(ctx context.Context, root string, optFns ...Option) (*FileStore, error) {
	return New(ctx, blobstore.NewLocalStore(root), "file://"+root, optFns...)
}

// New opens (or initializes) a store over an arbitrary blobstore.
// artifactRoot is the URI prefix under which artifact locations are minted;
// it is recorded in entities, never dereferenced by the store.
func New(ctx context.Context, bs blobstore.Store, artifactRoot string, optFns ...Option) (*FileStore, error) {
	codec := record.NewCodec(bs)
	fs := &FileStore{
		store:        bs,
		codec:        codec,
		opts:         applyOptions(optFns),
		artifactRoot: artifactRoot,
	}
	fs.layout = layout.NewManager(codec, experimentSource{fs})

	if err := fs.ensureDefaultExperiment(ctx); err != nil {
		return nil, translateError(err)
	}
	return fs, nil
}

// Logger returns the store's logger.
func (fs *FileStore) Logger() *Logger { return fs.opts.logger }

// nowMillis reads the configured clock as epoch milliseconds.
func (fs *FileStore) nowMillis() int64 {
	return fs.opts.now().UnixMilli()
}

// nextUpdateTimestamp produces a last_updated value strictly after prev,
// even when the clock has not advanced since the previous write.
func (fs *FileStore) nextUpdateTimestamp(prev int64) int64 {
	now := fs.nowMillis()
	if now <= prev {
		return prev + 1
	}
	return now
}

// artifactLocation joins path elements under the artifact root. The root
// may be a URI, so its scheme separator must survive joining.
func (fs *FileStore) artifactLocation(parts ...string) string {
	return strings.TrimSuffix(fs.artifactRoot, "/") + "/" + path.Join(parts...)
}
