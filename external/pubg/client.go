package pubg

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"golang.org/x/sync/singleflight"

	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/platform/logging"
	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/platform/resilience"
	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/usecase"
)

const (
	defaultBaseURL = "https://api.pubg.com"
	defaultShard   = "steam"
	mediaType      = "application/vnd.api+json"
	maxBodyBytes   = 8 << 20
)

var errPUBGTransient = crerr.New("pubg api transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	APIKey         string
	DefaultShard   string
	Timeout        time.Duration
	MaxRetries     int
	RetryBackoff   time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client reads match and player resources from the PUBG developer API.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	apiKey       string
	defaultShard string
	maxRetries   int
	backoff      time.Duration
	logger       *logging.Logger
	breaker      *resilience.CircuitBreaker
	flight       singleflight.Group
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	shard := strings.TrimSpace(cfg.DefaultShard)
	if shard == "" {
		shard = defaultShard
	}
	backoff := cfg.RetryBackoff
	if backoff <= 0 {
		backoff = time.Second
	}

	return &Client{
		httpClient:   httpClient,
		baseURL:      baseURL,
		apiKey:       strings.TrimSpace(cfg.APIKey),
		defaultShard: shard,
		maxRetries:   max(cfg.MaxRetries, 0),
		backoff:      backoff,
		logger:       logger.Named("pubg"),
		breaker:      resilience.NewFromConfig(cfg.CircuitBreaker),
	}
}

// FetchMatch returns the raw JSON:API match document. Match endpoints do not need the API key
// but it is sent when configured.
func (c *Client) FetchMatch(ctx context.Context, shard, matchID string) ([]byte, error) {
	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return nil, fmt.Errorf("%w: match id is required", usecase.ErrInvalidInput)
	}
	path := "/shards/" + url.PathEscape(c.shard(shard)) + "/matches/" + url.PathEscape(matchID)
	raw, err := c.get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch match %s: %w", matchID, err)
	}
	return raw, nil
}

// FetchPlayerMatchIDs returns the recent match ids of one player, newest first.
func (c *Client) FetchPlayerMatchIDs(ctx context.Context, shard, playerName string) ([]string, error) {
	playerName = strings.TrimSpace(playerName)
	if playerName == "" {
		return nil, fmt.Errorf("%w: player name is required", usecase.ErrInvalidInput)
	}
	if c.apiKey == "" {
		return nil, fmt.Errorf("%w: pubg api key is not configured", usecase.ErrDependencyUnavailable)
	}

	path := "/shards/" + url.PathEscape(c.shard(shard)) + "/players"
	raw, err := c.get(ctx, path, url.Values{"filter[playerNames]": []string{playerName}})
	if err != nil {
		return nil, fmt.Errorf("fetch player %s: %w", playerName, err)
	}

	var envelope playersEnvelope
	if err := sonic.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("decode players payload: %w", err)
	}

	seen := make(map[string]struct{})
	out := make([]string, 0, 16)
	for _, p := range envelope.Data {
		for _, m := range p.Relationships.Matches.Data {
			id := strings.TrimSpace(m.ID)
			if id == "" {
				continue
			}
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out, nil
}

func (c *Client) shard(shard string) string {
	shard = strings.TrimSpace(shard)
	if shard == "" {
		return c.defaultShard
	}
	return shard
}

func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	fullURL := c.baseURL + path
	if encoded := query.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	out, err, _ := c.flight.Do(fullURL, func() (any, error) {
		var raw []byte
		execErr := c.breaker.Execute(func() error {
			var reqErr error
			raw, reqErr = c.executeRequest(ctx, fullURL)
			return reqErr
		}, isCircuitFailure)
		if crerr.Is(execErr, resilience.ErrCircuitOpen) {
			c.logger.WarnContext(ctx, "pubg circuit breaker rejected request", "state", c.breaker.State())
			return nil, fmt.Errorf("%w: pubg api is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
		return raw, execErr
	})
	if err != nil {
		return nil, err
	}

	raw, ok := out.([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected response payload type %T", out)
	}
	return raw, nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("Accept", mediaType)
		if c.apiKey != "" {
			req.Header.Set("Authorization", "Bearer "+c.apiKey)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = crerr.Mark(fmt.Errorf("send request: %s", c.redact(err.Error())), errPUBGTransient)
		} else {
			raw, readErr := readBody(resp.Body)
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = crerr.Mark(fmt.Errorf("read response body: %w", readErr), errPUBGTransient)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case resp.StatusCode == http.StatusNotFound:
				return nil, fmt.Errorf("%w: pubg api status=404", usecase.ErrNotFound)
			case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
				return nil, fmt.Errorf("%w: pubg api rejected credentials status=%d", usecase.ErrDependencyUnavailable, resp.StatusCode)
			case isRetryableStatus(resp.StatusCode):
				lastErr = crerr.Mark(
					fmt.Errorf("pubg api status=%d body=%s", resp.StatusCode, abbreviateBody(raw)),
					errPUBGTransient,
				)
			default:
				return nil, fmt.Errorf("pubg api status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		timer := time.NewTimer(time.Duration(attempt+1) * c.backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("pubg request failed")
	}
	c.logger.WarnContext(ctx, "pubg request failed", "url", fullURL, "attempts", c.maxRetries+1, "error", lastErr)
	return nil, fmt.Errorf("%w: %v", usecase.ErrDependencyUnavailable, lastErr)
}

// readBody copies at most maxBodyBytes through a pooled buffer.
func readBody(body io.Reader) ([]byte, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if _, err := buf.ReadFrom(io.LimitReader(body, maxBodyBytes+1)); err != nil {
		return nil, err
	}
	if buf.Len() > maxBodyBytes {
		return nil, fmt.Errorf("response body exceeds %d bytes", maxBodyBytes)
	}
	return append([]byte(nil), buf.B...), nil
}

func (c *Client) redact(value string) string {
	if c.apiKey == "" {
		return value
	}
	return strings.ReplaceAll(value, c.apiKey, "REDACTED")
}

func isCircuitFailure(err error) bool {
	return crerr.Is(err, errPUBGTransient) || crerr.Is(err, usecase.ErrDependencyUnavailable)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}

type playersEnvelope struct {
	Data []struct {
		ID            string `json:"id"`
		Relationships struct {
			Matches struct {
				Data []struct {
					ID string `json:"id"`
				} `json:"data"`
			} `json:"matches"`
		} `json:"relationships"`
	} `json:"data"`
}
