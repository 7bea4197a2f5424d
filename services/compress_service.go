package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"civiceye/utils"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const (
	DefaultMaxWidth  = 1280
	DefaultMaxHeight = 720
	DefaultQuality   = 80
	DefaultTargetKB  = 500

	minQuality  = 20
	maxAttempts = 6
)

type CompressResult struct {
	Path   string `json:"path"`
	SizeKB int    `json:"sizeKB"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Mime   string `json:"mime"`
}

// ImageCompressor produces a size-bounded JPEG from a source image. Intake
// treats any error as "use the original file"; it never aborts issue creation.
type ImageCompressor interface {
	Compress(ctx context.Context, path string) (CompressResult, error)
}

// Compressor re-encodes in-process until the output fits the byte budget,
// degrading quality progressively and giving up after a bounded number of
// attempts.
type Compressor struct {
	MaxWidth  int
	MaxHeight int
	Quality   int
	TargetKB  int
	TempDir   string
}

func NewCompressor(tempDir string) *Compressor {
	return &Compressor{
		MaxWidth:  DefaultMaxWidth,
		MaxHeight: DefaultMaxHeight,
		Quality:   DefaultQuality,
		TargetKB:  DefaultTargetKB,
		TempDir:   tempDir,
	}
}

func (c *Compressor) Compress(ctx context.Context, srcPath string) (CompressResult, error) {
	sizeKB := -1
	if info, err := os.Stat(srcPath); err == nil {
		sizeKB = int(info.Size() / 1024)
	}
	// A source that cannot be stat'ed is treated as very large so it still
	// goes through the loop instead of being skipped.

	if sizeKB >= 0 && sizeKB <= c.TargetKB {
		// Already under budget: one re-encode to normalize format and
		// dimensions, returned regardless of the resulting size.
		return c.encodeFit(srcPath, c.Quality)
	}

	quality := c.Quality
	src := srcPath
	var last CompressResult
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return CompressResult{}, err
		}

		res, err := c.encodeFit(src, quality)
		if err != nil {
			return CompressResult{}, err
		}
		if src != srcPath {
			os.Remove(src) // superseded intermediate artifact
		}
		last = res

		if res.SizeKB <= c.TargetKB {
			return res, nil
		}
		if quality <= minQuality {
			break
		}
		quality = nextQuality(quality)
		// Next attempt re-compresses this attempt's output, not the original.
		src = res.Path
	}

	// Best effort: over budget but still the smallest artifact produced.
	return last, nil
}

// nextQuality drops quality by 30%, never proposing below the floor.
func nextQuality(q int) int {
	next := q * 70 / 100
	if next < minQuality {
		return minQuality
	}
	return next
}

func (c *Compressor) encodeFit(srcPath string, quality int) (CompressResult, error) {
	img, err := imaging.Open(srcPath, imaging.AutoOrientation(true))
	if err != nil {
		return CompressResult{}, err
	}
	fitted := imaging.Fit(img, c.MaxWidth, c.MaxHeight, imaging.Lanczos)

	if err := os.MkdirAll(c.TempDir, 0755); err != nil {
		return CompressResult{}, err
	}
	outPath := filepath.Join(c.TempDir, fmt.Sprintf("resize-%s.jpg", uuid.NewString()))
	if err := imaging.Save(fitted, outPath, imaging.JPEGQuality(quality)); err != nil {
		return CompressResult{}, err
	}

	info, err := os.Stat(outPath)
	if err != nil {
		return CompressResult{}, err
	}
	b := fitted.Bounds()
	return CompressResult{
		Path:   outPath,
		SizeKB: int(info.Size() / 1024),
		Width:  b.Dx(),
		Height: b.Dy(),
		Mime:   "image/jpeg",
	}, nil
}

// RemoteCompressor delegates to the external compression microservice, which
// answers with base64-encoded JPEG bytes. Missing payloads fall back to the
// input file.
type RemoteCompressor struct {
	Endpoint string
	Client   *http.Client
	TempDir  string
}

func NewRemoteCompressor(endpoint, tempDir string) *RemoteCompressor {
	return &RemoteCompressor{
		Endpoint: endpoint,
		Client:   &http.Client{Timeout: 60 * time.Second},
		TempDir:  tempDir,
	}
}

func (r *RemoteCompressor) Compress(ctx context.Context, path string) (CompressResult, error) {
	res, err := postMultipartFile(ctx, r.Client, r.Endpoint, "file", path, nil)
	if err != nil {
		return CompressResult{}, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return CompressResult{}, fmt.Errorf("compressor returned %d", res.StatusCode)
	}

	var out struct {
		Base64 string `json:"base64"`
	}
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return CompressResult{}, err
	}
	if out.Base64 == "" {
		return statResult(path)
	}

	saved, err := utils.SaveBase64Image(out.Base64, r.TempDir)
	if err != nil {
		return CompressResult{}, err
	}
	return statResult(saved)
}

func statResult(path string) (CompressResult, error) {
	info, err := os.Stat(path)
	if err != nil {
		return CompressResult{}, err
	}
	return CompressResult{
		Path:   path,
		SizeKB: int(info.Size() / 1024),
		Mime:   "image/jpeg",
	}, nil
}
