package rooms

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"inn/infras/otel"
	"inn/internal/domains/booking/service"
	"inn/shared/constant"
	"inn/shared/failure"
	"inn/transport/http/middleware"
	"inn/transport/http/response"
)

type Handler struct {
	service    service.Booking
	middleware middleware.Admin
	otel       otel.Otel
}

func New(service service.Booking, middleware middleware.Admin, otel otel.Otel) Handler {
	return Handler{
		service:    service,
		middleware: middleware,
		otel:       otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/rooms", func(routerGroup chi.Router) {
		routerGroup.With(handler.middleware.Admin).Post("/bulk-update", handler.BulkUpdate)
	})
}

// BulkUpdate overwrites the available count of many room types at once.
// Entries are applied independently: a bad entry fails alone and the rest
// still land, reported as a 207.
// @Summary Bulk update room availability
// @Description Overwrite available counts per room type; valid entries apply even when others fail.
// @Tags Rooms
// @Accept json
// @Produce json
// @Param request body map[string]int true "Available count per room type"
// @Success 200 {object} dto.BulkUpdateResponse "All entries applied"
// @Success 207 {object} dto.BulkUpdateResponse "Partial success"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Router /api/rooms/bulk-update [post]
// @Security BearerAuth
func (handler *Handler) BulkUpdate(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".BulkUpdate")
	defer scope.End()

	counts := map[string]any{}

	decoder := json.NewDecoder(request.Body)
	if err := decoder.Decode(&counts); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to decode bulk update body")

		response.WithError(writer, failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)))

		return
	}

	if len(counts) == 0 {
		response.WithError(writer, failure.BadRequestFromString("at least one room type is required"))

		return
	}

	res := handler.service.ApplyBulkAvailability(ctx, counts)

	code := http.StatusOK
	if !res.Success {
		code = http.StatusMultiStatus
	}

	response.WithPayload(writer, code, res)
}
