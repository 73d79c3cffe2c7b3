package service

import (
	"ai_interview_backend/internal/config"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLocalStorage(t *testing.T) *StorageService {
	t.Helper()
	cfg := &config.Config{}
	cfg.Storage.Type = "local"
	cfg.Storage.LocalPath = t.TempDir()
	return NewStorageService(cfg)
}

func TestObjectKey(t *testing.T) {
	svc := newLocalStorage(t)

	key := svc.ObjectKey("interviews/3/questions", "question_1.mp3")
	assert.True(t, strings.HasPrefix(key, "interviews/3/questions/"))
	assert.True(t, strings.HasSuffix(key, ".mp3"))

	// Keys are unique per call even for the same filename.
	other := svc.ObjectKey("interviews/3/questions", "question_1.mp3")
	assert.NotEqual(t, key, other)

	noExt := svc.ObjectKey("interviews/3/answers", "recording")
	assert.False(t, strings.Contains(filepath.Base(noExt), "."))
}

func TestLocalStorageRoundtrip(t *testing.T) {
	cfg := &config.Config{}
	cfg.Storage.Type = "local"
	cfg.Storage.LocalPath = t.TempDir()
	svc := NewStorageService(cfg)

	key := svc.ObjectKey("interviews/1/questions", "q.mp3")
	url, err := svc.Upload(context.Background(), key, strings.NewReader("mp3-bytes"), 9, "audio/mpeg")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/"+key, url)

	data, err := os.ReadFile(filepath.Join(cfg.Storage.LocalPath, key))
	require.NoError(t, err)
	assert.Equal(t, "mp3-bytes", string(data))

	require.NoError(t, svc.Delete(context.Background(), key))
	_, err = os.Stat(filepath.Join(cfg.Storage.LocalPath, key))
	assert.True(t, os.IsNotExist(err))
}

func TestMinioInitFailureFallsBackToLocal(t *testing.T) {
	cfg := &config.Config{}
	cfg.Storage.Type = "minio"
	cfg.Storage.MinioEndpoint = "://not-an-endpoint"
	cfg.Storage.LocalPath = t.TempDir()

	svc := NewStorageService(cfg)
	_, ok := svc.Provider.(*LocalStorageProvider)
	assert.True(t, ok)
}
