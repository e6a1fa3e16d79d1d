package repository

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"testing"

	"github.com/DenisKhanov/GenAPI/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRecorder struct {
	uploads  []int64
	cleanups []string
}

func (r *fakeRecorder) RecordUpload(_ string, size int64) { r.uploads = append(r.uploads, size) }
func (r *fakeRecorder) RecordCleanup(result string)       { r.cleanups = append(r.cleanups, result) }

// fileHeader builds a *multipart.FileHeader the same way net/http does for a request.
func fileHeader(t *testing.T, field, name, contentType string, data []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+name+`"`)
	if contentType != "" {
		h.Set("Content-Type", contentType)
	}
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	form, err := multipart.NewReader(&body, mw.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	require.Len(t, form.File[field], 1)
	return form.File[field][0]
}

func TestNewUploadStore_CreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")

	_, err := NewUploadStore(dir, 0, nil)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestNewUploadStore_EmptyDir(t *testing.T) {
	_, err := NewUploadStore("", 0, nil)
	assert.Error(t, err)
}

func TestUploadStore_SaveReadDelete(t *testing.T) {
	rec := &fakeRecorder{}
	store, err := NewUploadStore(t.TempDir(), 0, rec)
	require.NoError(t, err)

	data := []byte("%PDF-1.4 sample")
	upload, err := store.Save("document", fileHeader(t, "document", "report.pdf", "application/pdf", data))
	require.NoError(t, err)

	assert.Equal(t, "document", upload.Field)
	assert.Equal(t, "report.pdf", upload.OriginalName)
	assert.Equal(t, "application/pdf", upload.MIMEType)
	assert.Equal(t, int64(len(data)), upload.Size)
	assert.Equal(t, ".pdf", filepath.Ext(upload.Path))
	assert.Equal(t, 1, store.Pending())

	got, err := store.Read(upload)
	require.NoError(t, err)
	assert.Equal(t, data, got)

	require.NoError(t, store.Delete(upload))
	assert.NoFileExists(t, upload.Path)
	assert.Equal(t, 0, store.Pending())
	assert.Equal(t, []string{"deleted"}, rec.cleanups)
	assert.Equal(t, []int64{int64(len(data))}, rec.uploads)
}

func TestUploadStore_DeleteTwiceIsNoop(t *testing.T) {
	rec := &fakeRecorder{}
	store, err := NewUploadStore(t.TempDir(), 0, rec)
	require.NoError(t, err)

	upload, err := store.Save("audio", fileHeader(t, "audio", "a.mp3", "audio/mpeg", []byte("ID3")))
	require.NoError(t, err)

	require.NoError(t, store.Delete(upload))
	require.NoError(t, store.Delete(upload))
	assert.Equal(t, []string{"deleted"}, rec.cleanups)
}

func TestUploadStore_DeleteAlreadyAbsent(t *testing.T) {
	rec := &fakeRecorder{}
	store, err := NewUploadStore(t.TempDir(), 0, rec)
	require.NoError(t, err)

	upload, err := store.Save("image", fileHeader(t, "image", "x.png", "image/png", []byte("png")))
	require.NoError(t, err)
	require.NoError(t, os.Remove(upload.Path))

	assert.NoError(t, store.Delete(upload))
	assert.Equal(t, []string{"missing"}, rec.cleanups)
}

func TestUploadStore_DeleteNil(t *testing.T) {
	store, err := NewUploadStore(t.TempDir(), 0, nil)
	require.NoError(t, err)
	assert.NoError(t, store.Delete(nil))
}

func TestUploadStore_DetectsMIMEWhenMissing(t *testing.T) {
	store, err := NewUploadStore(t.TempDir(), 0, nil)
	require.NoError(t, err)

	png := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}
	upload, err := store.Save("image", fileHeader(t, "image", "noext", "application/octet-stream", png))
	require.NoError(t, err)
	assert.Equal(t, "image/png", upload.MIMEType)
}

func TestUploadStore_StripsMIMEParams(t *testing.T) {
	store, err := NewUploadStore(t.TempDir(), 0, nil)
	require.NoError(t, err)

	upload, err := store.Save("document", fileHeader(t, "document", "n.txt", "Text/Plain; charset=utf-8", []byte("hi")))
	require.NoError(t, err)
	assert.Equal(t, "text/plain", upload.MIMEType)
}

func TestUploadStore_RejectsOversized(t *testing.T) {
	store, err := NewUploadStore(t.TempDir(), 4, nil)
	require.NoError(t, err)

	_, err = store.Save("audio", fileHeader(t, "audio", "big.wav", "audio/wav", []byte("0123456789")))
	require.ErrorIs(t, err, models.ErrUploadTooLarge)
	var clientErr *models.ClientInputError
	assert.False(t, errors.As(err, &clientErr))
	assert.Equal(t, 0, store.Pending())
}

func TestUploadStore_DeleteFailure(t *testing.T) {
	rec := &fakeRecorder{}
	store, err := NewUploadStore(t.TempDir(), 0, rec)
	require.NoError(t, err)

	upload, err := store.Save("image", fileHeader(t, "image", "x.png", "image/png", []byte("png")))
	require.NoError(t, err)

	// a non-empty directory can't be removed with os.Remove, even by root
	require.NoError(t, os.Remove(upload.Path))
	require.NoError(t, os.Mkdir(upload.Path, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(upload.Path, "keep"), []byte("x"), 0o600))

	err = store.Delete(upload)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "delete upload x.png")
	assert.Equal(t, []string{"failed"}, rec.cleanups)
	assert.Equal(t, 1, store.Pending())

	assert.NoError(t, store.Delete(upload))
	assert.Equal(t, []string{"failed"}, rec.cleanups)
	assert.Equal(t, 1, store.Pending())
	assert.DirExists(t, upload.Path)
}

func TestUploadStore_SanitizesName(t *testing.T) {
	store, err := NewUploadStore(t.TempDir(), 0, nil)
	require.NoError(t, err)

	upload, err := store.Save("document", fileHeader(t, "document", "a.txt", "text/plain", []byte("x")))
	require.NoError(t, err)
	assert.Equal(t, store.dir, filepath.Dir(upload.Path))
	assert.Equal(t, "a_b_c.txt", sanitizeName(`a/b\c.txt`))
}
