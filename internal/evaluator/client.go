package evaluator

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

	"golang.org/x/time/rate"

	"github.com/Busrapehlivan/project-advisor/internal/logging"
	"github.com/Busrapehlivan/project-advisor/internal/projects/domain"
)

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com"
	DefaultModel   = "gemini-pro"
	DefaultTimeout = 60 * time.Second
)

type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
	// RatePerMinute caps outbound calls; zero or less disables the limit.
	RatePerMinute int
}

// Client calls the generateContent endpoint of the generative-language API.
type Client struct {
	baseURL string
	apiKey  string
	model   string
	http    *http.Client
	limiter *rate.Limiter
}

func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	limit := rate.Inf
	if cfg.RatePerMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(cfg.RatePerMinute))
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		http:    &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(limit, 1),
	}
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Evaluate asks the model to assess the idea and parses the structured result.
func (c *Client) Evaluate(ctx context.Context, idea string, level domain.SkillLevel) (*domain.EvaluationResult, error) {
	logger := logging.New(ctx)
	start := time.Now()

	text, err := c.generate(ctx, BuildPrompt(idea, level))
	if err != nil {
		logger.LogError("evaluate", err)
		return nil, err
	}

	res, err := ExtractResult(text)
	if err != nil {
		logger.LogError("evaluate", err)
		return nil, err
	}

	logger.LogInfof("evaluate", "model=%s tasks=%d latency=%s", c.model, len(res.TaskList), time.Since(start))
	return res, nil
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("%w: rate limit: %w", domain.ErrEvaluation, err)
	}

	body, err := json.Marshal(generateRequest{Contents: []content{{Parts: []part{{Text: prompt}}}}})
	if err != nil {
		return "", fmt.Errorf("%w: encode request: %w", domain.ErrEvaluation, err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.model, url.QueryEscape(c.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: create request: %w", domain.ErrEvaluation, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		// the URL carries the API key; keep it out of the error text
		var uerr *url.Error
		if errors.As(err, &uerr) {
			err = uerr.Err
		}
		return "", fmt.Errorf("%w: upstream request failed: %w", domain.ErrEvaluation, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read response: %w", domain.ErrEvaluation, err)
	}

	var out generateResponse
	decodeErr := json.Unmarshal(raw, &out)

	if resp.StatusCode >= 400 {
		if decodeErr == nil && out.Error != nil && out.Error.Message != "" {
			return "", fmt.Errorf("%w: upstream returned status %d: %s", domain.ErrEvaluation, resp.StatusCode, out.Error.Message)
		}
		return "", fmt.Errorf("%w: upstream returned status %d", domain.ErrEvaluation, resp.StatusCode)
	}
	if decodeErr != nil {
		return "", fmt.Errorf("%w: decode response: %w", domain.ErrEvaluation, decodeErr)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: empty candidate list", domain.ErrEvaluation)
	}
	return out.Candidates[0].Content.Parts[0].Text, nil
}
