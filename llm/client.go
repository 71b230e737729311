// Package llm talks to the Anthropic Messages API.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"freelancer-analyzer/utils"
)

const (
	DefaultModel       = "claude-3-5-sonnet-20241022"
	DefaultTemperature = 0.1
	DefaultMaxTokens   = 4000
	DefaultTimeout     = 30 * time.Second
	DefaultBaseURL     = "https://api.anthropic.com/v1"

	apiVersion   = "2023-06-01"
	maxErrorBody = 512
)

// ErrMissingAPIKey is returned by NewClient when no credential is configured.
var ErrMissingAPIKey = errors.New("llm: api key is required")

// Config holds everything the client needs. It is built by the caller; the
// client never reads the environment itself.
type Config struct {
	APIKey      string
	Model       string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
	BaseURL     string
	// ProxyURL may use the http, https or socks5 scheme. Empty means direct.
	ProxyURL string
}

// Completer turns a prompt into a text completion.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Client is a Completer backed by the Anthropic Messages API. It makes one
// request per call and never retries.
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     *utils.Logger
}

// NewClient validates cfg, fills defaults and prepares the HTTP transport.
func NewClient(cfg Config, logger *utils.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}
	if logger == nil {
		logger = utils.NewNopLogger()
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.ProxyURL != "" {
		proxy, err := parseProxy(cfg.ProxyURL)
		if err != nil {
			return nil, err
		}
		transport.Proxy = http.ProxyURL(proxy)
		logger.Info("[llm] Using %s proxy %s", proxy.Scheme, proxy.Redacted())
	} else {
		transport.Proxy = nil
	}

	logger.Info("[llm] Client ready (model %s)", cfg.Model)
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout, Transport: transport},
		logger:     logger,
	}, nil
}

func parseProxy(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("llm: invalid proxy url: %w", err)
	}
	switch u.Scheme {
	case "http", "https", "socks5", "socks5h":
	default:
		return nil, fmt.Errorf("llm: unsupported proxy scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("llm: proxy url %q has no host", raw)
	}
	return u, nil
}

// Model is the model identifier requests are sent with.
func (c *Client) Model() string { return c.cfg.Model }

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesRequest struct {
	Model       string    `json:"model"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
	Messages    []message `json:"messages"`
}

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type messagesResponse struct {
	Content []contentBlock `json:"content"`
}

// Complete sends prompt as a single user message and returns the text of
// the reply.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	reqID := uuid.New().String()
	start := time.Now()

	body, err := json.Marshal(messagesRequest{
		Model:       c.cfg.Model,
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
		Messages:    []message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", fmt.Errorf("llm: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/messages", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("llm: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.cfg.APIKey)
	req.Header.Set("anthropic-version", apiVersion)

	log := c.logger.With("req_id", reqID)
	log.Debug("[llm] Sending %d bytes to %s", len(body), c.cfg.Model)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn("[llm] Request failed after %v: %v", time.Since(start), err)
		return "", fmt.Errorf("llm: send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("llm: read response: %w", err)
	}
	log.Debug("[llm] Status %d, %d bytes in %v", resp.StatusCode, len(raw), time.Since(start))

	if resp.StatusCode/100 != 2 {
		return "", fmt.Errorf("llm: status %d: %s", resp.StatusCode, strings.TrimSpace(excerpt(raw, maxErrorBody)))
	}

	var decoded messagesResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return "", fmt.Errorf("llm: decode response: %w", err)
	}

	var sb strings.Builder
	for _, block := range decoded.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if sb.Len() == 0 {
		return "", errors.New("llm: response contained no text")
	}
	return sb.String(), nil
}

// excerpt cuts body to at most limit bytes without splitting a UTF-8
// sequence.
func excerpt(body []byte, limit int) string {
	if len(body) <= limit {
		return string(body)
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(body[cut]) {
		cut--
	}
	return string(body[:cut])
}
