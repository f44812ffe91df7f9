package api

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func uploadHeader(t *testing.T, filename, contentType string, size int) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="idCard"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	assert.NoError(t, err)
	_, err = part.Write(bytes.Repeat([]byte("a"), size))
	assert.NoError(t, err)
	assert.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	assert.NoError(t, req.ParseMultipartForm(32<<20))

	return req.MultipartForm.File["idCard"][0]
}

func TestSaveUpload(t *testing.T) {
	dir := t.TempDir()
	file := uploadHeader(t, "passport.png", "image/png", 128)

	name, err := saveUpload(file, dir)
	assert.NoError(t, err)
	assert.Regexp(t, `^id-\d+-\d+\.png$`, name)

	stored, err := os.ReadFile(filepath.Join(dir, name))
	assert.NoError(t, err)
	assert.Len(t, stored, 128)
}

func TestSaveUpload_RejectsUnsupportedType(t *testing.T) {
	file := uploadHeader(t, "archive.zip", "application/zip", 128)

	_, err := saveUpload(file, t.TempDir())
	assert.ErrorIs(t, err, errUploadBadType)
}

func TestSaveUpload_RejectsOversizedFile(t *testing.T) {
	file := uploadHeader(t, "passport.png", "image/png", 64)
	file.Size = MaxUploadSize + 1

	_, err := saveUpload(file, t.TempDir())
	assert.ErrorIs(t, err, errUploadTooLarge)
}

func TestSaveUpload_ExtensionFromContentTypeWhenMissing(t *testing.T) {
	file := uploadHeader(t, "passport", "application/pdf", 16)

	name, err := saveUpload(file, t.TempDir())
	assert.NoError(t, err)
	assert.Equal(t, ".pdf", filepath.Ext(name))
}
