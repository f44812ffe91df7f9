// Package genai is a minimal client for the Gemini generateContent REST API,
// used by the chat relay. Callers are expected to fall back to scripted
// responses when a call fails.
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"github.com/teamreg/backend/internal/model"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	modelName      = "gemini-1.5-flash"

	maxOutputTokens = 500
	temperature     = 0.7

	// maxResponseSize bounds the response body read to prevent memory
	// exhaustion on a misbehaving upstream.
	maxResponseSize = 1 << 20
)

// SystemPrompt pins the assistant to this platform's registration rules.
const SystemPrompt = `You are TeamReg Assistant, a helpful and friendly AI chatbot for a team registration platform. Your role is to assist users with:

1. Team registration process
2. ID card verification questions
3. Technical support
4. General platform inquiries

Platform Information:
- Users can register teams with a unique Team ID (format: TEAM-XXXX-XXXX)
- Registration requires: team name, leader info, team members, and ID card upload
- Accepted ID formats: JPEG, PNG, WebP, PDF (max 10MB)
- Registration is FREE
- Confirmation email is sent automatically after registration
- reCAPTCHA verification is required to prevent bots
- Teams can have 1-10 members

Guidelines:
- Be friendly, helpful, and concise
- Format responses with bullet points or numbered lists when appropriate
- Keep responses under 200 words unless detailed explanation is needed

Remember: You are specifically for this team registration platform. Stay focused on registration-related topics.`

type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

// WithBaseURL overrides the API base URL, used in tests.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type generateRequest struct {
	SystemInstruction *content         `json:"systemInstruction,omitempty"`
	Contents          []content        `json:"contents"`
	GenerationConfig  generationConfig `json:"generationConfig"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	MaxOutputTokens int     `json:"maxOutputTokens"`
	Temperature     float64 `json:"temperature"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Generate forwards the message plus the full prior history and returns the
// model's text verbatim.
func (c *Client) Generate(ctx context.Context, message string, history []*model.ChatMessage) (string, error) {
	contents := make([]content, 0, len(history)+1)
	for _, msg := range history {
		contents = append(contents, content{
			Role:  string(msg.Role),
			Parts: []part{{Text: msg.Text}},
		})
	}
	contents = append(contents, content{
		Role:  string(model.ChatRoleUser),
		Parts: []part{{Text: message}},
	})

	body, err := json.Marshal(generateRequest{
		SystemInstruction: &content{Parts: []part{{Text: SystemPrompt}}},
		Contents:          contents,
		GenerationConfig: generationConfig{
			MaxOutputTokens: maxOutputTokens,
			Temperature:     temperature,
		},
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to encode generate request")
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, modelName, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "generate request failed")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", errors.Wrap(err, "failed to read generate response")
	}

	var result generateResponse
	if err = json.Unmarshal(raw, &result); err != nil {
		return "", errors.Wrap(err, "failed to decode generate response")
	}

	if result.Error != nil {
		return "", errors.Errorf("generate request failed: %d %s", result.Error.Code, result.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return "", errors.Errorf("generate request returned status %d", resp.StatusCode)
	}
	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("generate response contained no candidates")
	}

	return result.Candidates[0].Content.Parts[0].Text, nil
}
