package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"freelancer-analyzer/cache"
	"freelancer-analyzer/llm"
	"freelancer-analyzer/utils"
)

// Response statuses.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Overall health states.
const (
	HealthHealthy        = "healthy"
	HealthLLMUnavailable = "llm_unavailable"
	HealthDegraded       = "degraded"
)

// Response is the outcome of answering one question. On success LLMResponse
// always holds displayable text, even when the model could not be reached.
type Response struct {
	Question         string       `json:"question"`
	AnalysisType     AnalysisKind `json:"analysis_type,omitempty"`
	AnalysisData     any          `json:"analysis_data,omitempty"`
	LLMResponse      string       `json:"llm_response,omitempty"`
	Status           string       `json:"status"`
	Error            string       `json:"error,omitempty"`
	FallbackResponse string       `json:"fallback_response,omitempty"`
}

// HealthStatus reports readiness of the analyzer and the LLM collaborator.
type HealthStatus struct {
	DataAnalyzer        bool   `json:"data_analyzer"`
	LLMLibraryAvailable bool   `json:"llm_library_available"`
	APIKeySet           bool   `json:"api_key_set"`
	LLMInitialized      bool   `json:"llm_initialized"`
	LLMTest             string `json:"llm_test"`
	OverallStatus       string `json:"overall_status"`
}

// RouterOptions wires optional collaborators into a Router.
type RouterOptions struct {
	// LLM is nil when no client could be built; answers then use the
	// fallback text.
	LLM       llm.Completer
	APIKeySet bool
	Model     string
	Cache     cache.Provider
	CacheTTL  time.Duration
}

// Router classifies questions, runs the matching view and asks the LLM to
// explain the result.
type Router struct {
	analyzer *Analyzer
	opts     RouterOptions
	logger   *utils.Logger
}

// NewRouter creates a Router over analyzer.
func NewRouter(analyzer *Analyzer, opts RouterOptions, logger *utils.Logger) *Router {
	if logger == nil {
		logger = utils.NewNopLogger()
	}
	return &Router{analyzer: analyzer, opts: opts, logger: logger}
}

// Classify maps a free-text question to a view by keyword. Earlier rules
// take priority; questions matching nothing get the summary.
func (r *Router) Classify(question string) AnalysisKind {
	q := strings.ToLower(question)
	for _, rule := range classificationRules {
		for _, kw := range rule.keywords {
			if strings.Contains(q, kw) {
				return rule.kind
			}
		}
	}
	return KindSummary
}

// SampleQuestions returns one example question per view.
func (r *Router) SampleQuestions() []string {
	out := make([]string, len(sampleQuestions))
	copy(out, sampleQuestions)
	return out
}

// Answer runs the full pipeline for one question. Failures while
// classifying or aggregating produce an error Response carrying the
// fallback text; LLM failures are absorbed into the fallback text.
func (r *Router) Answer(ctx context.Context, question string) (resp Response) {
	defer func() {
		if p := recover(); p != nil {
			resp = r.failure(question, fmt.Errorf("panic: %v", p))
		}
	}()

	if r.analyzer == nil {
		return r.failure(question, errors.New("analyzer is not initialised"))
	}

	kind := r.Classify(question)
	r.logger.Info("[router] Question classified as %s", kind)

	data, err := r.analyzer.Run(kind)
	if err != nil {
		return r.failure(question, err)
	}

	prompt, err := BuildPrompt(question, data)
	if err != nil {
		return r.failure(question, err)
	}

	return Response{
		Question:     question,
		AnalysisType: kind,
		AnalysisData: data,
		LLMResponse:  r.complete(ctx, prompt),
		Status:       StatusSuccess,
	}
}

func (r *Router) failure(question string, err error) Response {
	r.logger.Error("[router] Failed to process question: %v", err)
	return Response{
		Question:         question,
		Status:           StatusError,
		Error:            err.Error(),
		FallbackResponse: llm.FallbackResponse,
	}
}

// complete asks the LLM, consulting the cache first. It always returns
// text: the fallback stands in for any failure, including a panic in the
// completer.
func (r *Router) complete(ctx context.Context, prompt string) (text string) {
	defer func() {
		if p := recover(); p != nil {
			r.logger.Error("[router] LLM client panicked: %v", p)
			text = llm.FallbackResponse
		}
	}()

	if r.opts.LLM == nil {
		r.logger.Warn("[router] LLM client not configured, using fallback response")
		return llm.FallbackResponse
	}

	key := cache.Key(r.opts.Model, prompt)
	if r.opts.Cache != nil {
		cached, err := r.opts.Cache.Get(ctx, key)
		switch {
		case err == nil:
			r.logger.Debug("[router] Answer served from cache")
			return string(cached)
		case !errors.Is(err, cache.ErrCacheMiss):
			r.logger.Warn("[router] Cache lookup failed: %v", err)
		}
	}

	text, err := r.opts.LLM.Complete(ctx, prompt)
	if err != nil {
		r.logger.Error("[router] LLM query failed: %v", err)
		return llm.FallbackResponse
	}

	if r.opts.Cache != nil {
		if err := r.opts.Cache.Set(ctx, key, []byte(text), r.opts.CacheTTL); err != nil {
			r.logger.Warn("[router] Cache store failed: %v", err)
		}
	}
	return text
}

// Health reports component readiness. With live set, a short test prompt
// is sent to the LLM.
func (r *Router) Health(ctx context.Context, live bool) HealthStatus {
	status := HealthStatus{
		DataAnalyzer:        r.analyzer != nil,
		LLMLibraryAvailable: true,
		APIKeySet:           r.opts.APIKeySet,
		LLMInitialized:      r.opts.LLM != nil,
	}

	switch {
	case r.opts.LLM == nil:
		status.LLMTest = "not_available"
		status.OverallStatus = HealthLLMUnavailable
	case !live:
		status.LLMTest = "skipped"
		status.OverallStatus = HealthHealthy
	default:
		text, err := r.opts.LLM.Complete(ctx, "Hello")
		switch {
		case err != nil:
			status.LLMTest = "failed: " + err.Error()
			status.OverallStatus = HealthDegraded
		case strings.TrimSpace(text) == "":
			status.LLMTest = "failed"
			status.OverallStatus = HealthDegraded
		default:
			status.LLMTest = "passed"
			status.OverallStatus = HealthHealthy
		}
	}

	if !status.DataAnalyzer {
		status.OverallStatus = HealthDegraded
	}
	return status
}
