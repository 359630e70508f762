package modelsource

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/statsmaths/fasttextm/internal/domain"
)

// ArtifactName returns the canonical file name of the aligned-vector
// artifact for a language code.
func ArtifactName(code string) string {
	return fmt.Sprintf("wiki.%s.align.vec", code)
}

// HTTPSource fetches model artifacts from a remote distribution. The URL
// template must contain a single %s placeholder for the language code.
type HTTPSource struct {
	urlTemplate string
	client      *http.Client
}

func NewHTTPSource(urlTemplate string) *HTTPSource {
	return &HTTPSource{
		urlTemplate: urlTemplate,
		// No client-level timeout: artifacts run to hundreds of megabytes,
		// so cancellation is left to the request context.
		client: &http.Client{},
	}
}

func (s *HTTPSource) Fetch(ctx context.Context, code string) (io.ReadCloser, int64, error) {
	url := fmt.Sprintf(s.urlTemplate, code)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("fetch model for %q: %w", code, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("fetch model for %q: %w", code, err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return resp.Body, resp.ContentLength, nil
	case http.StatusNotFound:
		resp.Body.Close()
		return nil, 0, fmt.Errorf("%w: no artifact for %q at %s", domain.ErrModelNotFound, code, url)
	default:
		resp.Body.Close()
		return nil, 0, fmt.Errorf("fetch model for %q: unexpected status %s", code, resp.Status)
	}
}
