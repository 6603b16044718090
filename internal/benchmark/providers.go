package benchmark

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-resty/resty/v2"
)

// Provider names a chat API dialect.
type Provider string

const (
	OpenAI    Provider = "openai"
	Anthropic Provider = "anthropic"
	Gemini    Provider = "gemini"
)

// ModelSpec identifies one model under test.
type ModelSpec struct {
	Name     string   `json:"name"`
	Provider Provider `json:"provider"`
	ModelID  string   `json:"modelId"`
}

// DefaultModels is the benchmark's built-in model roster. API keys decide at
// runtime which of these can actually be called.
var DefaultModels = []ModelSpec{
	{Name: "gpt-5.1", Provider: OpenAI, ModelID: "gpt-5.1"},
	{Name: "claude-sonnet-4-5", Provider: Anthropic, ModelID: "claude-sonnet-4-5"},
	{Name: "gemini-2.5-pro", Provider: Gemini, ModelID: "models/gemini-2.5-pro"},
}

const (
	openAIEndpoint    = "https://api.openai.com/v1/chat/completions"
	anthropicEndpoint = "https://api.anthropic.com/v1/messages"
	geminiEndpoint    = "https://generativelanguage.googleapis.com/v1beta/%s:generateContent"
)

// Client calls the provider chat APIs.
type Client struct {
	http *resty.Client
}

func NewClient() *Client {
	return &Client{
		http: resty.New().
			SetTimeout(2 * time.Minute).
			SetRetryCount(2).
			SetRetryWaitTime(2 * time.Second),
	}
}

// Complete sends system+user prompts to the model and returns its text reply.
func (c *Client) Complete(model ModelSpec, system, user string) (string, error) {
	switch model.Provider {
	case OpenAI:
		return c.completeOpenAI(model.ModelID, system, user)
	case Anthropic:
		return c.completeAnthropic(model.ModelID, system, user)
	case Gemini:
		return c.completeGemini(model.ModelID, system, user)
	}
	return "", fmt.Errorf("unknown provider %q", model.Provider)
}

func apiKey(envVar string) (string, error) {
	key := os.Getenv(envVar)
	if key == "" {
		return "", fmt.Errorf("%s not set", envVar)
	}
	return key, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

func (c *Client) completeOpenAI(modelID, system, user string) (string, error) {
	key, err := apiKey("OPENAI_API_KEY")
	if err != nil {
		return "", err
	}

	var out struct {
		Choices []struct {
			Message chatMessage `json:"message"`
		} `json:"choices"`
	}
	resp, err := c.http.R().
		SetAuthToken(key).
		SetBody(map[string]interface{}{
			"model": modelID,
			"messages": []chatMessage{
				{Role: "system", Content: system},
				{Role: "user", Content: user},
			},
			"temperature": 0.1,
		}).
		SetResult(&out).
		Post(openAIEndpoint)
	if err != nil {
		return "", fmt.Errorf("openai request failed: %v", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("openai returned %s: %s", resp.Status(), resp.String())
	}
	if len(out.Choices) == 0 {
		return "", errors.New("openai response had no choices")
	}
	return out.Choices[0].Message.Content, nil
}

func (c *Client) completeAnthropic(modelID, system, user string) (string, error) {
	key, err := apiKey("ANTHROPIC_API_KEY")
	if err != nil {
		return "", err
	}

	var out struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}
	resp, err := c.http.R().
		SetHeader("x-api-key", key).
		SetHeader("anthropic-version", "2023-06-01").
		SetBody(map[string]interface{}{
			"model":      modelID,
			"max_tokens": 4096,
			"system":     system,
			"messages":   []chatMessage{{Role: "user", Content: user}},
		}).
		SetResult(&out).
		Post(anthropicEndpoint)
	if err != nil {
		return "", fmt.Errorf("anthropic request failed: %v", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("anthropic returned %s: %s", resp.Status(), resp.String())
	}
	for _, block := range out.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", errors.New("anthropic response had no text block")
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

func (c *Client) completeGemini(modelID, system, user string) (string, error) {
	key, err := apiKey("GEMINI_API_KEY")
	if err != nil {
		return "", err
	}

	var out struct {
		Candidates []struct {
			Content geminiContent `json:"content"`
		} `json:"candidates"`
	}
	resp, err := c.http.R().
		SetQueryParam("key", key).
		SetBody(map[string]interface{}{
			"system_instruction": geminiContent{Parts: []geminiPart{{Text: system}}},
			"contents":           []geminiContent{{Role: "user", Parts: []geminiPart{{Text: user}}}},
			"generationConfig":   map[string]interface{}{"temperature": 0.1},
		}).
		SetResult(&out).
		Post(fmt.Sprintf(geminiEndpoint, modelID))
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %v", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("gemini returned %s: %s", resp.Status(), resp.String())
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("gemini response had no candidates")
	}
	return out.Candidates[0].Content.Parts[0].Text, nil
}
