package out

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"tvshell/internal/modules/intent/dto"
	intentin "tvshell/internal/modules/intent/port/in"
)

// HTTPClient forwards open requests to a running shell.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

func NewHTTPClient(listen string) intentin.Usecase {
	base := listen
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "http://" + base
	}
	return &HTTPClient{baseURL: strings.TrimSuffix(base, "/"), client: &http.Client{Timeout: 5 * time.Second}}
}

type problem struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
	Status int    `json:"status"`
}

func (c *HTTPClient) Open(ctx context.Context, input dto.OpenInput) (dto.OpenOutput, error) {
	body, err := json.Marshal(input)
	if err != nil {
		return dto.OpenOutput{}, fmt.Errorf("encode open request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/open", bytes.NewReader(body))
	if err != nil {
		return dto.OpenOutput{}, fmt.Errorf("build open request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.client.Do(req)
	if err != nil {
		return dto.OpenOutput{}, fmt.Errorf("shell not reachable at %s: %w", c.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		var p problem
		if err := json.NewDecoder(resp.Body).Decode(&p); err != nil || p.Detail == "" {
			return dto.OpenOutput{}, fmt.Errorf("open failed: %s", resp.Status)
		}
		return dto.OpenOutput{}, fmt.Errorf("open failed: %s", p.Detail)
	}
	var out dto.OpenOutput
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return dto.OpenOutput{}, fmt.Errorf("decode open response: %w", err)
	}
	return out, nil
}
