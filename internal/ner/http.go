package ner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"invext/internal/domain"
)

// responseSchema is the contract for sidecar answers. Anything that
// does not validate is treated as an extractor failure, entities with
// unknown labels pass validation and are ignored by the mapping.
const responseSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["entities"],
  "properties": {
    "entities": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["label", "text"],
        "properties": {
          "label": {"type": "string", "minLength": 1},
          "text": {"type": "string"},
          "start": {"type": "integer", "minimum": 0},
          "end": {"type": "integer", "minimum": 0}
        }
      }
    }
  }
}`

var entitySchema = jsonschema.MustCompileString("ner-response.json", responseSchema)

const maxResponseBytes = 1 << 20

// HTTPExtractor calls an entity-recognition sidecar over HTTP. The
// request is the normalized document text, the response an entity list
// validated against entitySchema before mapping.
type HTTPExtractor struct {
	url    string
	client *http.Client
}

func NewHTTPExtractor(url string, timeout time.Duration) *HTTPExtractor {
	return &HTTPExtractor{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

func (e *HTTPExtractor) Extract(ctx context.Context, doc *domain.Document) (domain.FieldMap, error) {
	body, err := json.Marshal(map[string]string{"text": doc.Text})
	if err != nil {
		return nil, fmt.Errorf("encode ner request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build ner request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExtractorUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", domain.ErrExtractorUnavailable, resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read ner response: %w", err)
	}

	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("decode ner response: %w", err)
	}
	if err := entitySchema.Validate(payload); err != nil {
		return nil, fmt.Errorf("invalid ner response: %w", err)
	}

	var decoded struct {
		Entities []Entity `json:"entities"`
	}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("decode ner entities: %w", err)
	}
	return MapEntities(decoded.Entities, doc), nil
}
