package services

import (
	"context"
	"fmt"
	"log"
	"os"

	"civiceye/entity"
)

// IntakeService runs the image pipeline and creates the issue: classify the
// original, compress to the byte budget, store durably, persist. Everything
// happens synchronously inside the request.
type IntakeService struct {
	Compressor ImageCompressor
	Classifier *Classifier
	Store      *ImageStore
	Lifecycle  *LifecycleService
}

func NewIntakeService(compressor ImageCompressor, classifier *Classifier, store *ImageStore, lifecycle *LifecycleService) *IntakeService {
	return &IntakeService{
		Compressor: compressor,
		Classifier: classifier,
		Store:      store,
		Lifecycle:  lifecycle,
	}
}

type CreateIssueInput struct {
	Title       string
	Description string
	Type        string
	Latitude    float64
	Longitude   float64
	Address     string
	Priority    entity.Priority
}

// CreateIssue requires at least one image to end up in durable storage; all
// other pipeline stages degrade rather than fail.
func (s *IntakeService) CreateIssue(ctx context.Context, reporterID uint, in CreateIssueInput, imagePaths []string) (*entity.Issue, error) {
	if len(imagePaths) == 0 {
		return nil, fmt.Errorf("%w: at least one image is required", ErrValidation)
	}

	// Classification must see the original image, before compression
	// discards detail. Best effort; never blocks creation.
	classification := s.Classifier.Classify(ctx, imagePaths[0], in.Type)

	var urls []string
	for _, path := range imagePaths {
		artifact := path
		if res, err := s.Compressor.Compress(ctx, path); err != nil {
			log.Printf("compression failed, using original: %v", err)
		} else {
			artifact = res.Path
		}

		url, err := s.Store.Store(ctx, artifact, "issues")
		if err != nil {
			log.Printf("image store failed: %v", err)
			continue
		}
		if artifact != path {
			os.Remove(path) // compressed copy was stored; drop the original temp
		}
		urls = append(urls, url)
	}
	if len(urls) == 0 {
		return nil, fmt.Errorf("%w: no image could be stored", ErrUpload)
	}

	var classifiedDept *string
	if classification.Department != "" {
		classifiedDept = &classification.Department
	}

	return s.Lifecycle.Create(reporterID, CreateInput{
		Title:          in.Title,
		Description:    in.Description,
		Type:           in.Type,
		Latitude:       in.Latitude,
		Longitude:      in.Longitude,
		Address:        in.Address,
		Priority:       in.Priority,
		ClassifiedDept: classifiedDept,
		ImageURLs:      urls,
	})
}
