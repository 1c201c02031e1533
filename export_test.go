package mlflow

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tarek7669/mlflow/entities"
)

func TestExportExperimentModels(t *testing.T) {
	ctx := context.Background()
	fs, clock := newTestStore(t)

	var want []*entities.LoggedModel
	for i := 0; i < 4; i++ {
		clock.Advance(time.Second)
		want = append(want, createTestModel(t, fs, CreateLoggedModelRequest{
			Name:   fmt.Sprintf("exported-%d", i),
			Tags:   []entities.LoggedModelTag{{Key: "i", Value: fmt.Sprintf("%d", i)}},
			Params: []entities.LoggedModelParameter{{Key: "p", Value: "v"}},
		}))
	}

	for _, compression := range []ExportCompression{ExportZstd, ExportLZ4, ExportNone} {
		t.Run(string(compression), func(t *testing.T) {
			var buf bytes.Buffer
			n, err := fs.ExportExperimentModels(ctx, DefaultExperimentID, &buf, compression)
			require.NoError(t, err)
			require.Equal(t, len(want), n)

			got, err := DecodeExport(&buf, compression)
			require.NoError(t, err)
			require.Len(t, got, len(want))

			byID := map[string]*entities.LoggedModel{}
			for _, m := range got {
				byID[m.ModelID] = m
			}
			for _, m := range want {
				decoded, ok := byID[m.ModelID]
				require.True(t, ok)
				require.Equal(t, m.Name, decoded.Name)
				require.Equal(t, m.Tags, decoded.Tags)
				require.Equal(t, m.Params, decoded.Params)
				require.Equal(t, m.CreationTimestamp, decoded.CreationTimestamp)
			}
		})
	}
}

func TestExportExperimentModels_Compresses(t *testing.T) {
	ctx := context.Background()
	fs, _ := newTestStore(t)
	createTestModel(t, fs, CreateLoggedModelRequest{
		Tags: []entities.LoggedModelTag{{Key: "pad", Value: string(bytes.Repeat([]byte("a"), 4000))}},
	})

	var plain, packed bytes.Buffer
	_, err := fs.ExportExperimentModels(ctx, DefaultExperimentID, &plain, ExportNone)
	require.NoError(t, err)
	_, err = fs.ExportExperimentModels(ctx, DefaultExperimentID, &packed, ExportZstd)
	require.NoError(t, err)
	require.Less(t, packed.Len(), plain.Len())
}

func TestExportExperimentModels_Errors(t *testing.T) {
	ctx := context.Background()
	fs, _ := newTestStore(t)

	var buf bytes.Buffer
	_, err := fs.ExportExperimentModels(ctx, "999", &buf, ExportZstd)
	require.Equal(t, ErrCodeNotFound, ErrorCodeOf(err))

	_, err = fs.ExportExperimentModels(ctx, DefaultExperimentID, &buf, ExportCompression("gzip"))
	require.Equal(t, ErrCodeInvalidArgument, ErrorCodeOf(err))
}

func TestExportExperimentModels_EmptyExperiment(t *testing.T) {
	ctx := context.Background()
	fs, _ := newTestStore(t)

	var buf bytes.Buffer
	n, err := fs.ExportExperimentModels(ctx, DefaultExperimentID, &buf, ExportZstd)
	require.NoError(t, err)
	require.Zero(t, n)

	got, err := DecodeExport(&buf, ExportZstd)
	require.NoError(t, err)
	require.Empty(t, got)
}
