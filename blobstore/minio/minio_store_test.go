package minio

import (
	"context"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/require"

	"github.com/tarek7669/mlflow/blobstore"
)

// TestMinioStore_Integration requires a running MinIO instance.
// Skip if not available.
func TestMinioStore_Integration(t *testing.T) {
	endpoint := "localhost:9000"
	bucket := "test-mlflow"

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4("minioadmin", "minioadmin", ""),
		Secure: false,
	})
	if err != nil {
		t.Skipf("MinIO client creation failed: %v", err)
	}

	ctx := context.Background()
	if _, err := client.ListBuckets(ctx); err != nil {
		t.Skipf("MinIO not available: %v", err)
	}

	exists, err := client.BucketExists(ctx, bucket)
	require.NoError(t, err)
	if !exists {
		require.NoError(t, client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}))
	}

	store := NewStore(client, bucket, "mlruns/")

	require.NoError(t, store.WriteFile(ctx, "0/meta.yaml", []byte("name: Default")))
	data, err := store.ReadFile(ctx, "0/meta.yaml")
	require.NoError(t, err)
	require.Equal(t, "name: Default", string(data))

	require.NoError(t, store.WriteFile(ctx, "0/models/m-1/meta.yaml", []byte("model_id: m-1")))
	keys, err := store.List(ctx, "0/")
	require.NoError(t, err)
	require.Equal(t, []string{"0/meta.yaml", "0/models/m-1/meta.yaml"}, keys)

	require.NoError(t, store.Delete(ctx, "0/models/m-1/meta.yaml"))
	_, err = store.ReadFile(ctx, "0/models/m-1/meta.yaml")
	require.ErrorIs(t, err, blobstore.ErrNotFound)

	_ = store.Delete(ctx, "0/meta.yaml")
}
