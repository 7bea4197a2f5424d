package controllers

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// saveUploadTemp spools a multipart upload to a temp path so the pipeline can
// work on a real file. The pipeline owns deletion from here on.
func saveUploadTemp(c *gin.Context, file *multipart.FileHeader) (string, error) {
	dir := filepath.Join(os.TempDir(), "civiceye")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, fmt.Sprintf("upload-%s%s", uuid.NewString(), filepath.Ext(file.Filename)))
	if err := c.SaveUploadedFile(file, path); err != nil {
		return "", err
	}
	return path, nil
}
