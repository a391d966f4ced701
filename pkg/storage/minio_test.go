package storage_test

import (
	"context"
	"net/url"
	"testing"
	"time"

	"vidshare/pkg/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinioSigner_PresignPut(t *testing.T) {
	signer, err := storage.NewMinioSigner(storage.Config{
		Endpoint:  "localhost:9000",
		AccessKey: "minioadmin",
		SecretKey: "minioadmin",
		Bucket:    "videos",
		Region:    "us-east-1",
	})
	require.NoError(t, err)

	raw, err := signer.PresignPut(context.Background(), "u1/abc.mp4", 15*time.Minute)
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "http", u.Scheme)
	assert.Contains(t, u.Path, "/videos/u1/abc.mp4")
	assert.Equal(t, "900", u.Query().Get("X-Amz-Expires"))
	assert.NotEmpty(t, u.Query().Get("X-Amz-Signature"))
}

func TestNewMinioSigner_InvalidEndpoint(t *testing.T) {
	_, err := storage.NewMinioSigner(storage.Config{Endpoint: "http://bad endpoint", Bucket: "videos"})
	assert.Error(t, err)
}
