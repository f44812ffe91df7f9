package api

import (
	"fmt"
	"io"
	"math/rand"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
)

// MaxUploadSize bounds id-card uploads to 10 MiB.
const MaxUploadSize = 10 << 20

var allowedUploadTypes = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/webp":      ".webp",
	"application/pdf": ".pdf",
}

var (
	errUploadTooLarge   = errors.New("file exceeds the 10MB size limit")
	errUploadBadType    = errors.New("invalid file type, only JPEG, PNG, WebP and PDF are allowed")
	errUploadSaveFailed = errors.New("failed to store uploaded file")
)

// saveUpload validates and stores an uploaded id document under dir with a
// name of the form id-<timestamp>-<random>.<ext>, returning the stored file
// name. The checks run before any registration logic.
func saveUpload(file *multipart.FileHeader, dir string) (string, error) {
	if file.Size > MaxUploadSize {
		return "", errUploadTooLarge
	}

	contentType := file.Header.Get("Content-Type")
	ext, ok := allowedUploadTypes[contentType]
	if !ok {
		return "", errUploadBadType
	}
	if orig := filepath.Ext(file.Filename); orig != "" {
		ext = orig
	}

	name := fmt.Sprintf("id-%d-%d%s", time.Now().UnixMilli(), rand.Int63n(1_000_000_000), ext)

	src, err := file.Open()
	if err != nil {
		return "", errors.Wrap(errUploadSaveFailed, err.Error())
	}
	defer src.Close()

	if err = os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrap(errUploadSaveFailed, err.Error())
	}

	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", errors.Wrap(errUploadSaveFailed, err.Error())
	}
	defer dst.Close()

	if _, err = io.Copy(dst, io.LimitReader(src, MaxUploadSize)); err != nil {
		return "", errors.Wrap(errUploadSaveFailed, err.Error())
	}

	return name, nil
}
