package s3

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/tarek7669/mlflow/blobstore"
)

// MockS3Client is a testify mock of the Client interface.
type MockS3Client struct {
	mock.Mock
}

func (m *MockS3Client) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	args := m.Called(ctx, params)
	if out := args.Get(0); out != nil {
		return out.(*s3.GetObjectOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockS3Client) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params)
	if out := args.Get(0); out != nil {
		return out.(*s3.PutObjectOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockS3Client) DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	args := m.Called(ctx, params)
	if out := args.Get(0); out != nil {
		return out.(*s3.DeleteObjectOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockS3Client) ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	args := m.Called(ctx, params)
	if out := args.Get(0); out != nil {
		return out.(*s3.ListObjectsV2Output), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestStore_ReadFile(t *testing.T) {
	mockClient := new(MockS3Client)
	store := NewStore(mockClient, "test-bucket", "mlruns")

	t.Run("NotFound", func(t *testing.T) {
		mockClient.On("GetObject", mock.Anything, mock.MatchedBy(func(input *s3.GetObjectInput) bool {
			return *input.Bucket == "test-bucket" && *input.Key == "mlruns/0/meta.yaml"
		})).Return(nil, &types.NoSuchKey{}).Once()

		_, err := store.ReadFile(context.Background(), "0/meta.yaml")
		assert.ErrorIs(t, err, blobstore.ErrNotFound)
	})

	t.Run("Success", func(t *testing.T) {
		mockClient.On("GetObject", mock.Anything, mock.MatchedBy(func(input *s3.GetObjectInput) bool {
			return *input.Key == "mlruns/0/meta.yaml"
		})).Return(&s3.GetObjectOutput{
			Body: io.NopCloser(strings.NewReader("name: Default")),
		}, nil).Once()

		data, err := store.ReadFile(context.Background(), "0/meta.yaml")
		assert.NoError(t, err)
		assert.Equal(t, "name: Default", string(data))
	})
}

func TestStore_WriteFile(t *testing.T) {
	mockClient := new(MockS3Client)
	store := NewStore(mockClient, "test-bucket", "mlruns")

	mockClient.On("PutObject", mock.Anything, mock.MatchedBy(func(input *s3.PutObjectInput) bool {
		if *input.Bucket != "test-bucket" || *input.Key != "mlruns/0/tags.yaml" {
			return false
		}
		body, _ := io.ReadAll(input.Body)
		return string(body) == "a: b"
	})).Return(&s3.PutObjectOutput{}, nil).Once()

	err := store.WriteFile(context.Background(), "0/tags.yaml", []byte("a: b"))
	assert.NoError(t, err)
	mockClient.AssertExpectations(t)
}

func TestStore_Delete(t *testing.T) {
	mockClient := new(MockS3Client)
	store := NewStore(mockClient, "test-bucket", "mlruns")

	mockClient.On("DeleteObject", mock.Anything, mock.MatchedBy(func(input *s3.DeleteObjectInput) bool {
		return *input.Key == "mlruns/0/tags.yaml"
	})).Return(&s3.DeleteObjectOutput{}, nil).Once()

	err := store.Delete(context.Background(), "0/tags.yaml")
	assert.NoError(t, err)
}

func TestStore_List_Pagination(t *testing.T) {
	mockClient := new(MockS3Client)
	store := NewStore(mockClient, "test-bucket", "mlruns/")

	// Page 1
	mockClient.On("ListObjectsV2", mock.Anything, mock.MatchedBy(func(input *s3.ListObjectsV2Input) bool {
		return input.ContinuationToken == nil
	})).Return(&s3.ListObjectsV2Output{
		IsTruncated:           aws.Bool(true),
		NextContinuationToken: aws.String("token"),
		Contents:              []types.Object{{Key: aws.String("mlruns/0/models/m-1/meta.yaml")}},
	}, nil).Once()

	// Page 2
	mockClient.On("ListObjectsV2", mock.Anything, mock.MatchedBy(func(input *s3.ListObjectsV2Input) bool {
		return input.ContinuationToken != nil && *input.ContinuationToken == "token"
	})).Return(&s3.ListObjectsV2Output{
		IsTruncated: aws.Bool(false),
		Contents:    []types.Object{{Key: aws.String("mlruns/0/models/m-2/meta.yaml")}},
	}, nil).Once()

	keys, err := store.List(context.Background(), "0/models/")
	assert.NoError(t, err)
	assert.Equal(t, []string{"0/models/m-1/meta.yaml", "0/models/m-2/meta.yaml"}, keys)
}

func TestStore_List_KeepsTrailingSlash(t *testing.T) {
	mockClient := new(MockS3Client)
	store := NewStore(mockClient, "test-bucket", "mlruns")

	// A directory-style prefix must reach S3 slash-terminated, otherwise
	// sibling keys like "1/models-archive/..." would match too.
	mockClient.On("ListObjectsV2", mock.Anything, mock.MatchedBy(func(input *s3.ListObjectsV2Input) bool {
		return *input.Prefix == "mlruns/1/models/"
	})).Return(&s3.ListObjectsV2Output{
		IsTruncated: aws.Bool(false),
		Contents:    []types.Object{{Key: aws.String("mlruns/1/models/m-1/meta.yaml")}},
	}, nil).Once()

	keys, err := store.List(context.Background(), "1/models/")
	assert.NoError(t, err)
	assert.Equal(t, []string{"1/models/m-1/meta.yaml"}, keys)
	mockClient.AssertExpectations(t)
}
