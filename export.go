package mlflow

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/tarek7669/mlflow/entities"
)

// ExportCompression selects the stream codec for experiment exports.
type ExportCompression string

const (
	// ExportZstd compresses the export with zstandard. The default.
	ExportZstd ExportCompression = "zstd"
	// ExportLZ4 compresses the export with lz4, trading ratio for speed.
	ExportLZ4 ExportCompression = "lz4"
	// ExportNone writes the export uncompressed.
	ExportNone ExportCompression = "none"
)

// ExportExperimentModels writes every model of an experiment to w as a
// compressed stream of JSON lines, one model per line, ordered by model
// id. It returns the number of models written.
//
// The experiment must exist; its lifecycle stage does not matter.
func (fs *FileStore) ExportExperimentModels(ctx context.Context, experimentID string, w io.Writer, compression ExportCompression) (n int, err error) {
	defer func() {
		fs.opts.logger.LogExport(ctx, experimentID, n, err)
	}()

	if _, err := fs.readExperiment(ctx, experimentID); err != nil {
		return 0, translateError(err)
	}

	dirs, err := fs.layout.ModelDirs(ctx, experimentID)
	if err != nil {
		return 0, translateError(err)
	}

	cw, closeCodec, err := compressWriter(w, compression)
	if err != nil {
		return 0, err
	}

	enc := json.NewEncoder(cw)
	for _, dir := range dirs {
		model, err := fs.codec.HydrateModel(ctx, dir)
		if err != nil {
			return n, translateError(err)
		}
		if err := enc.Encode(model); err != nil {
			return n, internalf("encode model %s: %v", model.ModelID, err)
		}
		n++
	}
	if err := closeCodec(); err != nil {
		return n, internalf("finalize export stream: %v", err)
	}
	return n, nil
}

// DecodeExport reads a stream produced by ExportExperimentModels back into
// model entities. compression must match the one used for the export.
func DecodeExport(r io.Reader, compression ExportCompression) ([]*entities.LoggedModel, error) {
	cr, closeCodec, err := compressReader(r, compression)
	if err != nil {
		return nil, err
	}
	defer closeCodec()

	var models []*entities.LoggedModel
	dec := json.NewDecoder(bufio.NewReader(cr))
	for {
		var model entities.LoggedModel
		if err := dec.Decode(&model); err != nil {
			if err == io.EOF {
				break
			}
			return nil, invalidArgumentf("malformed export stream: %v", err)
		}
		models = append(models, &model)
	}
	return models, nil
}

func compressWriter(w io.Writer, compression ExportCompression) (io.Writer, func() error, error) {
	switch compression {
	case ExportZstd, "":
		zw, err := zstd.NewWriter(w)
		if err != nil {
			return nil, nil, internalf("open zstd writer: %v", err)
		}
		return zw, zw.Close, nil
	case ExportLZ4:
		lw := lz4.NewWriter(w)
		return lw, lw.Close, nil
	case ExportNone:
		return w, func() error { return nil }, nil
	default:
		return nil, nil, invalidArgumentf("Invalid export compression '%s'", compression)
	}
}

func compressReader(r io.Reader, compression ExportCompression) (io.Reader, func(), error) {
	switch compression {
	case ExportZstd, "":
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("open zstd reader: %w", err)
		}
		return zr, zr.Close, nil
	case ExportLZ4:
		return lz4.NewReader(r), func() {}, nil
	case ExportNone:
		return r, func() {}, nil
	default:
		return nil, nil, invalidArgumentf("Invalid export compression '%s'", compression)
	}
}
