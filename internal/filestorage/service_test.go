// File: internal/filestorage/service_test.go
package filestorage

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"testing"

	"github.com/aqkal/Rentixe/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupService(t *testing.T) *Service {
	t.Helper()
	storagePath := filepath.Join(t.TempDir(), "listing-images")
	svc, err := NewService(&config.Config{
		StoragePath:       storagePath,
		StoragePublicBase: "http://localhost:8080/storage/listing-images",
	}, zap.NewNop())
	require.NoError(t, err)
	return svc
}

func makeFileHeader(t *testing.T, filename, contentType, content string) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="images"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	reader := multipart.NewReader(&body, writer.Boundary())
	form, err := reader.ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })

	files := form.File["images"]
	require.Len(t, files, 1)
	return files[0]
}

func TestSaveUploadedFile(t *testing.T) {
	svc := setupService(t)
	fh := makeFileHeader(t, "villa.jpg", "image/jpeg", "fake-jpeg-bytes")

	url, err := svc.SaveUploadedFile(context.Background(), fh)
	require.NoError(t, err)
	assert.Contains(t, url, "http://localhost:8080/storage/listing-images/")
	assert.Equal(t, ".jpg", filepath.Ext(url))

	relPath := svc.PathFromURL(url)
	require.NotEmpty(t, relPath)
	stored, err := os.ReadFile(filepath.Join(svc.storagePath, relPath))
	require.NoError(t, err)
	assert.Equal(t, "fake-jpeg-bytes", string(stored))
}

func TestSaveUploadedFile_InfersExtensionFromContentType(t *testing.T) {
	svc := setupService(t)
	fh := makeFileHeader(t, "no-extension", "image/png", "fake-png-bytes")

	url, err := svc.SaveUploadedFile(context.Background(), fh)
	require.NoError(t, err)
	assert.Equal(t, ".png", filepath.Ext(url))
}

func TestSaveUploadedFile_RejectsUnknownType(t *testing.T) {
	svc := setupService(t)
	fh := makeFileHeader(t, "archive", "application/zip", "zip-bytes")

	_, err := svc.SaveUploadedFile(context.Background(), fh)
	assert.Error(t, err)
}

func TestPathFromURL(t *testing.T) {
	svc := setupService(t)

	assert.Equal(t, "abc-123.jpg",
		svc.PathFromURL("http://localhost:8080/storage/listing-images/abc-123.jpg"))
	assert.Empty(t, svc.PathFromURL("https://elsewhere.example.com/avatars/abc.jpg"))
}

func TestRemoveByURL(t *testing.T) {
	svc := setupService(t)
	fh := makeFileHeader(t, "to-delete.jpg", "image/jpeg", "bytes")

	url, err := svc.SaveUploadedFile(context.Background(), fh)
	require.NoError(t, err)

	require.NoError(t, svc.RemoveByURL(context.Background(), url))
	_, statErr := os.Stat(filepath.Join(svc.storagePath, svc.PathFromURL(url)))
	assert.True(t, os.IsNotExist(statErr))

	// A second removal reports the missing file.
	assert.Error(t, svc.RemoveByURL(context.Background(), url))
}

func TestRemoveByURL_ForeignURLRejected(t *testing.T) {
	svc := setupService(t)
	assert.Error(t, svc.RemoveByURL(context.Background(), "https://elsewhere.example.com/file.jpg"))
}
