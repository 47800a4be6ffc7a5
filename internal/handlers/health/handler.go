package health

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"inn/shared/constant"
	"inn/shared/timezone"
	"inn/transport/http/response"
)

type Handler struct{}

func New() Handler {
	return Handler{}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/health", handler.Health)
}

type healthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// Health reports service liveness.
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} healthResponse
// @Router /health [get]
func (handler *Handler) Health(writer http.ResponseWriter, request *http.Request) {
	response.WithPayload(writer, http.StatusOK, healthResponse{
		Status:    "ok",
		Timestamp: timezone.Format(timezone.Now(), constant.DateFormat),
	})
}
