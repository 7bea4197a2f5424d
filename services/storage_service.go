package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// ObjectStorage moves a local artifact into permanent storage and returns a
// stable URL.
type ObjectStorage interface {
	Upload(ctx context.Context, localPath, folder string) (string, error)
}

// ImageStore wraps an ObjectStorage backend and guarantees the local temp
// file is gone after the attempt, whether it succeeded or not.
type ImageStore struct {
	Backend ObjectStorage
}

func NewImageStore(backend ObjectStorage) *ImageStore {
	return &ImageStore{Backend: backend}
}

func (s *ImageStore) Store(ctx context.Context, localPath, folder string) (string, error) {
	defer func() {
		if _, err := os.Stat(localPath); err == nil {
			os.Remove(localPath)
		}
	}()

	url, err := s.Backend.Upload(ctx, localPath, folder)
	if err != nil {
		log.Printf("image upload failed: %v", err)
		return "", fmt.Errorf("%w: %v", ErrUpload, err)
	}
	return url, nil
}

// DiskStorage keeps uploads on the local filesystem under
// <root>/<folder>/<uuid><ext> and serves them from /uploads.
type DiskStorage struct {
	Root string
}

func NewDiskStorage(root string) *DiskStorage {
	return &DiskStorage{Root: root}
}

func (d *DiskStorage) Upload(ctx context.Context, localPath, folder string) (string, error) {
	src, err := os.Open(localPath)
	if err != nil {
		return "", err
	}
	defer src.Close()

	ext := filepath.Ext(localPath)
	if ext == "" {
		ext = ".jpg"
	}
	dir := filepath.Join(d.Root, folder)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	name := uuid.NewString() + ext
	dstPath := filepath.Join(dir, name)

	dst, err := os.Create(dstPath)
	if err != nil {
		return "", err
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dstPath)
		return "", err
	}

	return "/uploads/" + folder + "/" + name, nil
}

// HTTPObjectStorage posts the file to an external provider and expects a
// JSON body carrying the permanent URL (Cloudinary-style contract).
type HTTPObjectStorage struct {
	Endpoint string
	Client   *http.Client
}

func NewHTTPObjectStorage(endpoint string) *HTTPObjectStorage {
	return &HTTPObjectStorage{
		Endpoint: endpoint,
		Client:   &http.Client{Timeout: 60 * time.Second},
	}
}

func (h *HTTPObjectStorage) Upload(ctx context.Context, localPath, folder string) (string, error) {
	res, err := postMultipartFile(ctx, h.Client, h.Endpoint, "file", localPath, map[string]string{
		"folder":        folder,
		"resource_type": "auto",
	})
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("storage provider returned %d", res.StatusCode)
	}

	var out struct {
		SecureURL string `json:"secure_url"`
		URL       string `json:"url"`
	}
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return "", err
	}
	if out.SecureURL != "" {
		return out.SecureURL, nil
	}
	if out.URL != "" {
		return out.URL, nil
	}
	return "", fmt.Errorf("storage provider returned no url")
}
