package chainfm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"tokenwatch/config"
)

const hotListPath = "/trpc/token/hotList"

type RESTClient struct {
	baseURL    string
	userAgent  string
	referer    string
	httpClient *http.Client
}

func NewRESTClient(cfg config.RESTConfig) *RESTClient {
	return &RESTClient{
		baseURL:    cfg.BaseURL,
		userAgent:  cfg.UserAgent,
		referer:    cfg.Referer,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// GetHotList fetches the current hot token list. Entries of the result
// array that are not token objects are counted in Skipped and dropped;
// everything else keeps its position.
func (c *RESTClient) GetHotList(ctx context.Context) (*HotList, error) {
	endpoint := c.baseURL + hotListPath

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Referer", c.referer)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("chain.fm error: status %d: %s", resp.StatusCode, body)
	}

	var rawResp HotListResponse
	if err := json.NewDecoder(resp.Body).Decode(&rawResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return decodeHotList(rawResp.Result)
}

func decodeHotList(result json.RawMessage) (*HotList, error) {
	trimmed := bytes.TrimSpace(result)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, ErrMissingResult
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(trimmed, &entries); err != nil {
		return nil, fmt.Errorf("decode result: %w", err)
	}

	list := &HotList{Tokens: make([]TokenRecord, 0, len(entries))}
	for _, entry := range entries {
		entry = bytes.TrimSpace(entry)
		if len(entry) == 0 || entry[0] != '{' {
			list.Skipped++
			continue
		}

		var token TokenRecord
		if err := json.Unmarshal(entry, &token); err != nil {
			list.Skipped++
			continue
		}
		list.Tokens = append(list.Tokens, token)
	}

	return list, nil
}
