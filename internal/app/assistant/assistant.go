// internal/app/assistant/assistant.go
package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dalemusser/studysphere/internal/domain/models"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

// SystemPrompt frames every chat completion.
const SystemPrompt = "You are a helpful, encouraging, and academic study assistant for college students. Keep answers concise but thorough."

// DefaultVisionPrompt is used when an image is analyzed without a question.
const DefaultVisionPrompt = "Analyze this image and explain its educational content."

// ErrUnavailable covers every way the completion backend can fail: missing
// key, network trouble, quota, safety refusals with no text. Callers degrade
// it into a placeholder reply; it is never fatal.
var ErrUnavailable = errors.New("assistant service unavailable")

// Completer is the completion/vision collaborator the assistant feature
// talks to. Tests substitute a canned implementation.
type Completer interface {
	Complete(ctx context.Context, history []models.ChatMessage, message string) (string, error)
	AnalyzeImage(ctx context.Context, data []byte, mimeType, prompt string) (string, error)
}

// Service is the Gemini-backed Completer.
type Service struct {
	client *genai.Client
	model  string
	log    *zap.Logger
}

// New builds a Gemini client. An empty API key is allowed at construction so
// the app can boot without the assistant configured; calls then return
// ErrUnavailable.
func New(ctx context.Context, apiKey, model string, logger *zap.Logger) (*Service, error) {
	if apiKey == "" {
		logger.Warn("no gemini api key configured; assistant disabled")
		return &Service{model: model, log: logger}, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	return &Service{client: client, model: model, log: logger}, nil
}

// roleFor maps a transcript role onto the backend's role type. Anything
// unrecognized is treated as the user speaking.
func roleFor(role string) genai.Role {
	if role == models.ChatRoleModel {
		return genai.RoleModel
	}
	return genai.RoleUser
}

// Complete sends one chat turn with the caller-supplied transcript history.
func (s *Service) Complete(ctx context.Context, history []models.ChatMessage, message string) (string, error) {
	if s.client == nil {
		return "", ErrUnavailable
	}
	if strings.TrimSpace(message) == "" {
		return "", fmt.Errorf("%w: empty message", ErrUnavailable)
	}

	contents := make([]*genai.Content, 0, len(history)+1)
	for _, m := range history {
		contents = append(contents, genai.NewContentFromText(m.Text, roleFor(m.Role)))
	}
	contents = append(contents, genai.NewContentFromText(message, genai.RoleUser))

	resp, err := s.client.Models.GenerateContent(ctx, s.model, contents, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(SystemPrompt, genai.RoleUser),
	})
	if err != nil {
		s.log.Warn("gemini chat call failed", zap.Error(err))
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("%w: empty completion", ErrUnavailable)
	}
	return text, nil
}

// AnalyzeImage asks the model about an inline image.
func (s *Service) AnalyzeImage(ctx context.Context, data []byte, mimeType, prompt string) (string, error) {
	if s.client == nil {
		return "", ErrUnavailable
	}
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty image", ErrUnavailable)
	}
	if strings.TrimSpace(prompt) == "" {
		prompt = DefaultVisionPrompt
	}

	parts := []*genai.Part{
		genai.NewPartFromBytes(data, mimeType),
		genai.NewPartFromText(prompt),
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	resp, err := s.client.Models.GenerateContent(ctx, s.model, contents, nil)
	if err != nil {
		s.log.Warn("gemini vision call failed", zap.Error(err))
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("%w: empty analysis", ErrUnavailable)
	}
	return text, nil
}
