package workflow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 10 * time.Second

// N8NClient posts workflow triggers to the n8n webhook endpoints.
type N8NClient struct {
	baseURL string
	client  *http.Client
}

func NewN8NClient(baseURL string) *N8NClient {
	return &N8NClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: defaultTimeout},
	}
}

func (n *N8NClient) ChapterCreated(ctx context.Context, event ChapterCreatedEvent) error {
	return n.post(ctx, "/chapter", event)
}

func (n *N8NClient) QuizSubmitted(ctx context.Context, event QuizSubmittedEvent) error {
	return n.post(ctx, "/answer", event)
}

func (n *N8NClient) post(ctx context.Context, path string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("n8n webhook %s: status %d", path, resp.StatusCode)
	}
	return nil
}
