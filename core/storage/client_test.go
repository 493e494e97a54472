package storage_test

import (
	"context"
	"errors"
	"testing"

	"follower-tracker/core/storage"
	"follower-tracker/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestNewClient(t *testing.T) {
	t.Run("ValidConfig", func(t *testing.T) {
		cfg := storage.Config{
			Endpoint:  "localhost:9000",
			AccessKey: "testkey",
			SecretKey: "testsecret",
			Bucket:    "reports",
			Region:    "us-east-1",
		}

		client, err := storage.NewClient(cfg)
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("EndpointWithScheme", func(t *testing.T) {
		for _, endpoint := range []string{"http://localhost:9000", "https://s3.amazonaws.com"} {
			client, err := storage.NewClient(storage.Config{Endpoint: endpoint, UseSSL: true})
			assert.NoError(t, err, endpoint)
			assert.NotNil(t, client, endpoint)
		}
	})
}

func TestEnsureBucket(t *testing.T) {
	ctx := context.Background()

	t.Run("Exists", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "reports").Return(true, nil)

		created, err := storage.EnsureBucket(ctx, client, "reports", "")
		assert.NoError(t, err)
		assert.False(t, created)
		client.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Missing", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "reports").Return(false, nil)
		client.On("MakeBucket", mock.Anything, "reports", minio.MakeBucketOptions{Region: "eu-west-1"}).Return(nil)

		created, err := storage.EnsureBucket(ctx, client, "reports", "eu-west-1")
		assert.NoError(t, err)
		assert.True(t, created)
		client.AssertExpectations(t)
	})

	t.Run("CheckFails", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "reports").Return(false, errors.New("connection refused"))

		_, err := storage.EnsureBucket(ctx, client, "reports", "")
		assert.ErrorContains(t, err, "connection refused")
	})
}
