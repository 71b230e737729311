package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freelancer-analyzer/utils"
)

func TestNewClientRequiresAPIKey(t *testing.T) {
	_, err := NewClient(Config{}, nil)
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestNewClientDefaults(t *testing.T) {
	c, err := NewClient(Config{APIKey: "k"}, utils.NewNopLogger())
	require.NoError(t, err)
	assert.Equal(t, DefaultModel, c.Model())
	assert.Equal(t, DefaultMaxTokens, c.cfg.MaxTokens)
	assert.Equal(t, DefaultTimeout, c.httpClient.Timeout)
	assert.Equal(t, DefaultBaseURL, c.cfg.BaseURL)
}

func TestNewClientProxy(t *testing.T) {
	for _, proxy := range []string{"http://proxy:8080", "https://proxy:8443", "socks5://user:pw@proxy:1080"} {
		_, err := NewClient(Config{APIKey: "k", ProxyURL: proxy}, nil)
		assert.NoError(t, err, proxy)
	}

	_, err := NewClient(Config{APIKey: "k", ProxyURL: "ftp://proxy:21"}, nil)
	assert.ErrorContains(t, err, "unsupported proxy scheme")
	_, err = NewClient(Config{APIKey: "k", ProxyURL: "socks5://"}, nil)
	assert.ErrorContains(t, err, "no host")
}

func TestCompleteSendsMessagesRequest(t *testing.T) {
	var got messagesRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/messages", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("x-api-key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"Upwork "},{"type":"tool_use"},{"type":"text","text":"leads."}]}`))
	}))
	defer srv.Close()

	c, err := NewClient(Config{APIKey: "secret", BaseURL: srv.URL + "/", Model: "test-model", Temperature: 0.1, MaxTokens: 100}, nil)
	require.NoError(t, err)

	text, err := c.Complete(context.Background(), "Which platform pays most?")
	require.NoError(t, err)
	assert.Equal(t, "Upwork leads.", text)

	assert.Equal(t, "test-model", got.Model)
	assert.Equal(t, 100, got.MaxTokens)
	assert.Equal(t, 0.1, got.Temperature)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, message{Role: "user", Content: "Which platform pays most?"}, got.Messages[0])
}

func TestCompleteReportsAPIErrors(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"type":"error","error":{"type":"rate_limit_error"}}`))
	}))
	defer srv.Close()

	c, err := NewClient(Config{APIKey: "k", BaseURL: srv.URL}, nil)
	require.NoError(t, err)

	_, err = c.Complete(context.Background(), "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 429")
	assert.Contains(t, err.Error(), "rate_limit_error")
	assert.Equal(t, 1, calls, "requests are never retried")
}

func TestCompleteTimesOut(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	c, err := NewClient(Config{APIKey: "k", BaseURL: srv.URL, Timeout: 50 * time.Millisecond}, nil)
	require.NoError(t, err)

	_, err = c.Complete(context.Background(), "hi")
	assert.Error(t, err)
}

func TestCompleteRejectsEmptyText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"content":[]}`))
	}))
	defer srv.Close()

	c, err := NewClient(Config{APIKey: "k", BaseURL: srv.URL}, nil)
	require.NoError(t, err)

	_, err = c.Complete(context.Background(), "hi")
	assert.ErrorContains(t, err, "no text")
}

func TestErrorExcerptKeepsRunesWhole(t *testing.T) {
	body := []byte(strings.Repeat("я", maxErrorBody))

	got := excerpt(body, maxErrorBody+1)
	assert.True(t, utf8.ValidString(got))
	assert.Len(t, got, maxErrorBody)

	assert.Equal(t, "short", excerpt([]byte("short"), maxErrorBody))
}

func TestCompleteReportsCyrillicErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("x" + strings.Repeat("ошибка ", 200)))
	}))
	defer srv.Close()

	c, err := NewClient(Config{APIKey: "k", BaseURL: srv.URL}, nil)
	require.NoError(t, err)

	_, err = c.Complete(context.Background(), "hi")
	require.Error(t, err)
	assert.True(t, utf8.ValidString(err.Error()))
	assert.Contains(t, err.Error(), "status 400: xошибка")
}
