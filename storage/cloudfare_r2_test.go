package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJoinPublicURL(t *testing.T) {
	assert.Equal(t, "https://cdn.example.com/exports/T1/a.csv", joinPublicURL("https://cdn.example.com", "exports/T1/a.csv"))
	assert.Equal(t, "https://cdn.example.com/padel/exports/a.csv", joinPublicURL("https://cdn.example.com/padel/", "/exports/a.csv"))
	assert.Empty(t, joinPublicURL("", "a.csv"))
	assert.Empty(t, joinPublicURL("https://cdn.example.com", ""))
}

func TestNewCloudflareR2Uploader_NotConfigured(t *testing.T) {
	cfg := CloudflareR2UploaderConfig{AccountID: "acc", AccessKeyID: "key", BucketName: "bucket"}
	assert.False(t, cfg.Configured())

	_, err := NewCloudflareR2Uploader(context.Background(), cfg)
	require.ErrorIs(t, err, ErrR2NotConfigured)
}
