package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/genai"
)

var geminiModels = map[string]string{
	"gemini-flash":      "gemini-2.5-flash",
	"gemini-flash-lite": "gemini-2.5-flash-lite",
	"gemini-pro":        "gemini-2.5-pro",
}

// GeminiProvider talks to the Gemini API.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

func NewGeminiProvider(ctx context.Context, cfg GeminiConfig) (*GeminiProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}

	return &GeminiProvider{client: client, model: resolveModel(cfg.Model, geminiModels)}, nil
}

func (p *GeminiProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	gc := &genai.GenerateContentConfig{MaxOutputTokens: int32(req.MaxTokens)}
	if req.Temperature > 0 {
		gc.Temperature = genai.Ptr(float32(req.Temperature))
	}
	if req.System != "" {
		gc.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}
	if req.Schema != nil {
		gc.ResponseMIMEType = "application/json"
		gc.ResponseSchema = geminiSchema(req.Schema.Definition)
	}

	result, err := p.client.Models.GenerateContent(ctx, p.model, geminiContents(req.Messages), gc)
	if err != nil {
		return nil, mapGeminiError(err)
	}

	stop := geminiStopReason(result)
	content := json.RawMessage(result.Text())
	if stop == "max_tokens" {
		return nil, &ErrMaxTokensExceeded{Content: content}
	}
	if err := validateResponse(req.Schema, content); err != nil {
		return nil, err
	}

	resp := &Response{Content: content, Model: p.model, StopReason: stop}
	if u := result.UsageMetadata; u != nil {
		resp.Usage = Usage{
			InputTokens:  int(u.PromptTokenCount),
			OutputTokens: int(u.CandidatesTokenCount),
			TotalTokens:  int(u.TotalTokenCount),
		}
	}
	return resp, nil
}

func (p *GeminiProvider) ModelID() string { return p.model }

func geminiContents(msgs []Message) []*genai.Content {
	out := make([]*genai.Content, 0, len(msgs))
	for _, m := range msgs {
		role := genai.Role(genai.RoleUser)
		if m.Role == RoleAssistant {
			role = genai.RoleModel
		}
		out = append(out, genai.NewContentFromText(m.Content, role))
	}
	return out
}

// geminiSchema converts the subset of JSON Schema used by the exercise
// prompts (object, array, enum, integer bounds) to genai.Schema.
func geminiSchema(def map[string]any) *genai.Schema {
	s := &genai.Schema{}

	if t, ok := def["type"].(string); ok {
		s.Type = geminiType(t)
	}
	if d, ok := def["description"].(string); ok {
		s.Description = d
	}
	if props, ok := def["properties"].(map[string]any); ok {
		s.Properties = make(map[string]*genai.Schema, len(props))
		for name, v := range props {
			if pd, ok := v.(map[string]any); ok {
				s.Properties[name] = geminiSchema(pd)
			}
		}
	}
	if req, ok := def["required"].([]any); ok {
		for _, r := range req {
			if name, ok := r.(string); ok {
				s.Required = append(s.Required, name)
			}
		}
	}
	if enum, ok := def["enum"].([]any); ok {
		for _, e := range enum {
			if v, ok := e.(string); ok {
				s.Enum = append(s.Enum, v)
			}
		}
	}
	if items, ok := def["items"].(map[string]any); ok {
		s.Items = geminiSchema(items)
	}
	if v, ok := number(def["minimum"]); ok {
		s.Minimum = genai.Ptr(v)
	}
	if v, ok := number(def["maximum"]); ok {
		s.Maximum = genai.Ptr(v)
	}

	return s
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func geminiType(t string) genai.Type {
	switch t {
	case "object":
		return genai.TypeObject
	case "array":
		return genai.TypeArray
	case "integer":
		return genai.TypeInteger
	case "number":
		return genai.TypeNumber
	case "boolean":
		return genai.TypeBoolean
	default:
		return genai.TypeString
	}
}

func geminiStopReason(result *genai.GenerateContentResponse) string {
	if len(result.Candidates) > 0 && result.Candidates[0].FinishReason == genai.FinishReasonMaxTokens {
		return "max_tokens"
	}
	return "end"
}

func mapGeminiError(err error) error {
	var apiErr *genai.APIError
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusTooManyRequests {
		return &ErrRateLimit{Err: err}
	}
	return &ErrProviderUnavailable{Err: err}
}
