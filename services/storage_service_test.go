package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type fakeBackend struct {
	uploads []string
	url     string
	err     error
}

func (f *fakeBackend) Upload(ctx context.Context, localPath, folder string) (string, error) {
	f.uploads = append(f.uploads, localPath)
	if f.err != nil {
		return "", f.err
	}
	return f.url, nil
}

func TestStoreRemovesTempOnSuccess(t *testing.T) {
	path := writeTempImage(t)
	backend := &fakeBackend{url: "https://cdn.example/a.jpg"}
	store := NewImageStore(backend)

	url, err := store.Store(context.Background(), path, "issues")
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	if url != "https://cdn.example/a.jpg" {
		t.Fatalf("url = %q", url)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("temp file still present after successful store")
	}
}

func TestStoreRemovesTempOnFailure(t *testing.T) {
	path := writeTempImage(t)
	backend := &fakeBackend{err: errors.New("provider down")}
	store := NewImageStore(backend)

	_, err := store.Store(context.Background(), path, "issues")
	if !errors.Is(err, ErrUpload) {
		t.Fatalf("err = %v, want ErrUpload", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("temp file still present after failed store")
	}
}

func TestDiskStorageUpload(t *testing.T) {
	root := t.TempDir()
	disk := NewDiskStorage(root)
	src := writeTempImage(t)

	url, err := disk.Upload(context.Background(), src, "issues")
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	if !strings.HasPrefix(url, "/uploads/issues/") || !strings.HasSuffix(url, ".jpg") {
		t.Fatalf("url = %q", url)
	}
	name := strings.TrimPrefix(url, "/uploads/issues/")
	data, err := os.ReadFile(filepath.Join(root, "issues", name))
	if err != nil {
		t.Fatalf("stored file missing: %v", err)
	}
	want, _ := os.ReadFile(src)
	if string(data) != string(want) {
		t.Fatalf("stored bytes differ from source")
	}
}

func TestHTTPObjectStorageUpload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		if got := r.FormValue("folder"); got != "proofs" {
			t.Errorf("folder = %q, want proofs", got)
		}
		if got := r.FormValue("resource_type"); got != "auto" {
			t.Errorf("resource_type = %q, want auto", got)
		}
		w.Write([]byte(`{"secure_url":"https://cdn.example/x.jpg","url":"http://cdn.example/x.jpg"}`))
	}))
	defer srv.Close()

	h := NewHTTPObjectStorage(srv.URL)
	url, err := h.Upload(context.Background(), writeTempImage(t), "proofs")
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if url != "https://cdn.example/x.jpg" {
		t.Fatalf("url = %q, secure_url should win", url)
	}
}

func TestHTTPObjectStorageRejectsBadResponses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	h := NewHTTPObjectStorage(srv.URL)
	if _, err := h.Upload(context.Background(), writeTempImage(t), "issues"); err == nil {
		t.Fatal("want error on non-200 response")
	}

	empty := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer empty.Close()

	h = NewHTTPObjectStorage(empty.URL)
	if _, err := h.Upload(context.Background(), writeTempImage(t), "issues"); err == nil {
		t.Fatal("want error when response carries no url")
	}
}
