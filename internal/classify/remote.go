package classify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/wiamouali-star/voice-acc-app/internal/textutil"
)

const (
	defaultModel   = "gpt-4o-mini"
	defaultBaseURL = "https://api.openai.com"
)

// Result is a classification outcome. Method is "llm" when the remote
// classifier answered with a recognized label; any other value names the
// fallback path that produced the category (no_query, service_unavailable,
// no_category_found:<raw>, classifier_error:<err>). Raw carries the verbatim
// model reply when there was one.
type Result struct {
	Category Category
	Raw      string
	Method   string
}

// Degraded reports whether the category came from a fallback path rather
// than the remote classifier.
func (r Result) Degraded() bool {
	return r.Method != "llm"
}

// Classifier sends queries to a hosted chat-completion classifier. A nil
// Classifier is valid and always falls back to keywords.
type Classifier struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithModel overrides the chat model.
func WithModel(model string) Option {
	return func(c *Classifier) {
		if model != "" {
			c.model = model
		}
	}
}

// WithBaseURL overrides the API endpoint (used by tests).
func WithBaseURL(url string) Option {
	return func(c *Classifier) {
		c.baseURL = strings.TrimSuffix(url, "/")
	}
}

// New returns a remote classifier, or nil when no API key is configured.
func New(apiKey string, opts ...Option) *Classifier {
	if apiKey == "" {
		return nil
	}
	c := &Classifier{
		apiKey:  apiKey,
		model:   defaultModel,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

const systemPrompt = `Tu es un classificateur de requêtes d'actualités. Réponds avec exactement un seul mot parmi cette liste, sans ponctuation ni explication : %s. Si aucune catégorie ne convient, réponds "autre".`

// Classify resolves a query to a category. It never returns an error: every
// failure mode of the remote call resolves through ByKeywords, and the Result
// method records which path was taken.
func (c *Classifier) Classify(ctx context.Context, query string) Result {
	if strings.TrimSpace(query) == "" {
		return Result{Category: Autre, Method: "no_query"}
	}
	if c == nil {
		return Result{Category: ByKeywords(query), Method: "service_unavailable"}
	}

	raw, err := c.complete(ctx, query)
	if err != nil {
		return Result{Category: ByKeywords(query), Method: "classifier_error:" + err.Error()}
	}

	reply := textutil.NormalizeForMatch(raw)
	for _, cat := range AllCategories() {
		if strings.Contains(reply, string(cat)) {
			return Result{Category: cat, Raw: raw, Method: "llm"}
		}
	}
	return Result{Category: ByKeywords(query), Raw: raw, Method: "no_category_found:" + raw}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *Classifier) complete(ctx context.Context, query string) (string, error) {
	labels := make([]string, 0, len(AllCategories()))
	for _, cat := range AllCategories() {
		labels = append(labels, string(cat))
	}

	body, _ := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: fmt.Sprintf(systemPrompt, strings.Join(labels, ", "))},
			{Role: "user", Content: fmt.Sprintf("Classifie cette recherche : %q", query)},
		},
		Temperature: 0.1,
		MaxTokens:   10,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("openai API error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("openai API %d: %s", resp.StatusCode, string(b))
	}

	var cr chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", err
	}
	if len(cr.Choices) == 0 {
		return "", fmt.Errorf("empty openai response")
	}
	return cr.Choices[0].Message.Content, nil
}
