// internal/app/features/assistant/handler.go
package assistant

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	assistantsvc "github.com/dalemusser/studysphere/internal/app/assistant"
	"github.com/dalemusser/studysphere/internal/app/system/respond"
	"github.com/dalemusser/studysphere/internal/domain/models"
	"go.uber.org/zap"
)

// Placeholder replies shown when the completion backend is unavailable. The
// endpoints still answer 200 so the conversation UI degrades instead of
// erroring.
const (
	ChatUnavailableReply   = "I'm having trouble connecting to the study network. Please try again later."
	VisionUnavailableReply = "Failed to analyze image. Please try again."
)

// maxVisionBody caps the vision request body; inline images go to the model
// as bytes, and Gemini rejects oversized payloads anyway.
const maxVisionBody = 8 << 20

// completionTimeout bounds a single model call.
const completionTimeout = 45 * time.Second

// Handler serves the AI study assistant endpoints.
type Handler struct {
	Completer assistantsvc.Completer
	Log       *zap.Logger
}

// NewHandler creates an assistant Handler.
func NewHandler(c assistantsvc.Completer, logger *zap.Logger) *Handler {
	return &Handler{Completer: c, Log: logger}
}

// ServeChat handles POST /api/assistant/chat. The client carries the
// transcript; the server holds no conversation state.
func (h *Handler) ServeChat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Message == "" {
		respond.Error(w, http.StatusUnprocessableEntity, "message is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), completionTimeout)
	defer cancel()

	history := make([]models.ChatMessage, 0, len(req.History))
	for _, m := range req.History {
		history = append(history, models.ChatMessage{Role: m.Role, Text: m.Text})
	}

	reply, err := h.Completer.Complete(ctx, history, req.Message)
	if err != nil {
		if !errors.Is(err, assistantsvc.ErrUnavailable) {
			h.Log.Error("assistant chat failed", zap.Error(err))
		}
		respond.JSON(w, http.StatusOK, ChatResponse{Reply: ChatUnavailableReply, Degraded: true})
		return
	}
	respond.JSON(w, http.StatusOK, ChatResponse{Reply: reply})
}

// ServeVision handles POST /api/assistant/vision with a base64-encoded
// inline image.
func (h *Handler) ServeVision(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxVisionBody)

	var req VisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	data, err := base64.StdEncoding.DecodeString(req.Image)
	if err != nil || len(data) == 0 {
		respond.Error(w, http.StatusUnprocessableEntity, "image must be non-empty base64")
		return
	}
	if req.MimeType == "" {
		respond.Error(w, http.StatusUnprocessableEntity, "mime_type is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), completionTimeout)
	defer cancel()

	analysis, err := h.Completer.AnalyzeImage(ctx, data, req.MimeType, req.Prompt)
	if err != nil {
		if !errors.Is(err, assistantsvc.ErrUnavailable) {
			h.Log.Error("assistant vision failed", zap.Error(err))
		}
		respond.JSON(w, http.StatusOK, VisionResponse{Analysis: VisionUnavailableReply, Degraded: true})
		return
	}
	respond.JSON(w, http.StatusOK, VisionResponse{Analysis: analysis})
}
