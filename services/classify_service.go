package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"
)

// ConfidenceThreshold is the hard cutoff below which the rule-based fallback
// wins even when the ML service returned an answer.
const ConfidenceThreshold = 0.6

const (
	SourceML    = "ML"
	SourceRules = "RULES"
)

type Classification struct {
	Department string  `json:"department"`
	Confidence float64 `json:"confidence"`
	Source     string  `json:"source"`
}

// typeRules maps the reporter-chosen type tag to a department type key when
// the classifier is unavailable or unsure.
var typeRules = map[string]string{
	"pothole":     "ROADS",
	"garbage":     "SANITATION",
	"streetlight": "ELECTRICITY",
	"tree":        "FORESTRY",
	"water":       "WATER",
}

const fallbackDepartment = "GENERAL_WORKS"

// Classifier infers the responsible department from image content via the
// external prediction service. Classification is best effort: it runs on the
// original, uncompressed image and never fails issue creation.
type Classifier struct {
	Endpoint string
	Client   *http.Client
}

func NewClassifier(endpoint string) *Classifier {
	return &Classifier{
		Endpoint: endpoint,
		Client:   &http.Client{Timeout: 60 * time.Second},
	}
}

// Classify calls the ML service and falls back to the static rule table on
// any error or a confidence below the threshold.
func (cl *Classifier) Classify(ctx context.Context, imagePath, issueType string) Classification {
	ml, err := cl.predict(ctx, imagePath)
	if err != nil {
		log.Printf("ml classify failed: %v", err)
		return ruleClassification(issueType)
	}
	if ml.Department == "" || ml.Confidence < ConfidenceThreshold {
		return ruleClassification(issueType)
	}
	ml.Source = SourceML
	return ml
}

func (cl *Classifier) predict(ctx context.Context, imagePath string) (Classification, error) {
	res, err := postMultipartFile(ctx, cl.Client, cl.Endpoint, "file", imagePath, nil)
	if err != nil {
		return Classification{}, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return Classification{}, fmt.Errorf("ml service returned %d", res.StatusCode)
	}

	var out struct {
		PredictedDepartment string  `json:"predicted_department"`
		Confidence          float64 `json:"confidence"`
	}
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return Classification{}, err
	}
	return Classification{Department: out.PredictedDepartment, Confidence: out.Confidence}, nil
}

func ruleClassification(issueType string) Classification {
	dept, ok := typeRules[strings.ToLower(issueType)]
	if !ok {
		dept = fallbackDepartment
	}
	return Classification{Department: dept, Confidence: 0, Source: SourceRules}
}
