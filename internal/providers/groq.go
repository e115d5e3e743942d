package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

const defaultGroqURL = "https://api.groq.com/openai/v1/chat/completions"

// Groq implements the Analyzer interface against Groq's OpenAI-compatible
// chat-completions endpoint.
type Groq struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewGroq creates a new Groq backend. The API key comes from GROQ_API_KEY;
// SCOUR_GROQ_BASE_URL overrides the endpoint for local testing.
func NewGroq() (*Groq, error) {
	key := os.Getenv("GROQ_API_KEY")
	if key == "" {
		return nil, &authError{message: "GROQ_API_KEY environment variable is not set"}
	}
	baseURL := os.Getenv("SCOUR_GROQ_BASE_URL")
	if baseURL == "" {
		baseURL = defaultGroqURL
	}
	return &Groq{
		apiKey:  key,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 20 * time.Second},
	}, nil
}

func (g *Groq) Name() string { return "groq" }

// Analyze submits one chunk and returns the raw completion text. It makes
// exactly one attempt; transient failures come back as retryable error
// classes for the caller's retry policy.
func (g *Groq) Analyze(ctx context.Context, req Request) (Response, error) {
	body := groqRequest{
		Model: req.Model,
		Messages: []groqMessage{
			{Role: "system", Content: req.SystemPrompt},
			{Role: "user", Content: req.UserPrompt},
		},
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
		TopP:        req.TopP,
		Stream:      false,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return Response{}, fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", g.baseURL, bytes.NewReader(payload))
	if err != nil {
		return Response{}, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+g.apiKey)

	httpResp, err := g.client.Do(httpReq)
	if err != nil {
		return Response{}, &transportError{err: err}
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return Response{}, &transportError{err: err}
	}

	if httpResp.StatusCode == 429 {
		return Response{}, &rateLimitError{}
	}
	if httpResp.StatusCode == 401 || httpResp.StatusCode == 403 {
		return Response{}, &authError{message: string(respBody)}
	}
	if httpResp.StatusCode >= 500 {
		return Response{}, &serverError{statusCode: httpResp.StatusCode, body: string(respBody)}
	}
	if httpResp.StatusCode != 200 {
		return Response{}, fmt.Errorf("API error (status %d): %s", httpResp.StatusCode, string(respBody))
	}

	var result groqResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return Response{}, fmt.Errorf("parsing response: %w", err)
	}
	if len(result.Choices) == 0 {
		return Response{}, fmt.Errorf("no choices in response")
	}

	return Response{
		Content:    result.Choices[0].Message.Content,
		TokensUsed: result.Usage.TotalTokens,
	}, nil
}

type groqRequest struct {
	Model       string        `json:"model"`
	Messages    []groqMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
	TopP        float64       `json:"top_p"`
	Stream      bool          `json:"stream"`
}

type groqMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type groqResponse struct {
	Choices []groqChoice `json:"choices"`
	Usage   groqUsage    `json:"usage"`
}

type groqChoice struct {
	Message groqMessage `json:"message"`
}

type groqUsage struct {
	TotalTokens int `json:"total_tokens"`
}
