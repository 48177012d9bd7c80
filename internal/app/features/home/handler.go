// internal/app/features/home/handler.go
package home

import (
	"net/http"

	"github.com/dalemusser/studysphere/internal/app/system/respond"
	"go.uber.org/zap"
)

// Handler serves the service banner at the API root.
type Handler struct {
	AppName string
	Log     *zap.Logger
}

func NewHandler(appName string, logger *zap.Logger) *Handler {
	return &Handler{AppName: appName, Log: logger}
}

// banner points API explorers at the interesting endpoints.
type banner struct {
	Service   string   `json:"service"`
	Endpoints []string `json:"endpoints"`
}

// ServeRoot handles GET /.
func (h *Handler) ServeRoot(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, banner{
		Service: h.AppName,
		Endpoints: []string{
			"/api/resources",
			"/api/requests",
			"/api/live-count",
			"/api/stream",
			"/api/assistant/chat",
			"/health",
		},
	})
}
