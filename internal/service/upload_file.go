package service

import (
	"errors"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	pkgerrors "github.com/pkg/errors"
)

const baseDir = "statics"

var allowedUploadTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": {},
	"application/vnd.ms-excel":                                          {},
}

// Upload stores an uploaded file under statics/<folder> and returns its path.
// File names are prefixed with the upload time so repeated imports of the
// same workbook never collide.
func Upload(file *multipart.FileHeader, folder string) (string, error) {
	if file == nil {
		return "", nil
	}

	contentType := file.Header.Get("Content-Type")
	if _, ok := allowedUploadTypes[contentType]; !ok {
		return "", pkgerrors.Errorf("unsupported upload type %q", contentType)
	}

	targetDir := filepath.Join(baseDir, folder)
	if _, err := os.Stat(targetDir); errors.Is(err, os.ErrNotExist) {
		if err = os.MkdirAll(targetDir, os.ModePerm); err != nil {
			return "", err
		}
	}

	name := time.Now().Format(time.RFC3339) + "-" + filepath.Base(strings.TrimSpace(file.Filename))
	targetPath := filepath.Join(targetDir, name)

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer func() {
		if closeErr := src.Close(); closeErr != nil {
			log.Println("upload src close:", closeErr)
		}
	}()

	out, err := os.Create(targetPath)
	if err != nil {
		return "", err
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil {
			log.Println("upload dst close:", closeErr)
		}
	}()

	if _, err = io.Copy(out, src); err != nil {
		return "", err
	}

	return targetPath, nil
}
