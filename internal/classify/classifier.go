// Package classify wraps the external document classification service
// behind a capability interface, with bounded retry and a locally
// synthesized fallback when the service stays unreachable.
package classify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/dhg-hub/drivemeta/internal/cmderr"
	"github.com/dhg-hub/drivemeta/models"
)

type Classifier interface {
	Classify(ctx context.Context, content string) (models.Classification, error)
}

// HTTPClassifier posts document content to the classification service
// and decodes its verdict. The service itself is a black box.
type HTTPClassifier struct {
	URL    string
	Client *http.Client
}

func NewHTTPClassifier(url string) *HTTPClassifier {
	return &HTTPClassifier{
		URL:    url,
		Client: &http.Client{Timeout: 60 * time.Second},
	}
}

type classifyRequest struct {
	Content string `json:"content"`
}

func (h *HTTPClassifier) Classify(ctx context.Context, content string) (models.Classification, error) {
	body, err := json.Marshal(classifyRequest{Content: content})
	if err != nil {
		return models.Classification{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.URL, bytes.NewBuffer(body))
	if err != nil {
		return models.Classification{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.Client.Do(req)
	if err != nil {
		return models.Classification{}, &cmderr.ConnectionError{Op: "classify", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return models.Classification{}, &RateLimitError{Status: resp.StatusCode}
	}
	if resp.StatusCode != http.StatusOK {
		return models.Classification{}, fmt.Errorf("classify: unexpected status %d", resp.StatusCode)
	}

	var result models.Classification
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return models.Classification{}, fmt.Errorf("classify: decode response: %w", err)
	}
	return result, nil
}

// RateLimitError marks a 429 from the classification service; it is the
// one HTTP-level error class worth retrying.
type RateLimitError struct {
	Status int
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("classification service rate limited (status %d)", e.Status)
}
