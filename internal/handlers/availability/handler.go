package availability

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"inn/infras/otel"
	"inn/internal/domains/inventory/service"
	"inn/shared/constant"
	"inn/transport/http/response"
)

type Handler struct {
	ledger service.Ledger
	otel   otel.Otel
}

func New(ledger service.Ledger, otel otel.Otel) Handler {
	return Handler{
		ledger: ledger,
		otel:   otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/availability", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetAvailability)
	})
}

// GetAvailability returns the current availability of every room type.
// @Summary Get room availability
// @Description Retrieve the current available count per room type.
// @Tags Availability
// @Produce json
// @Success 200 {object} map[string]int "Available count per room type"
// @Failure 500 {object} response.Error
// @Router /api/availability [get]
func (handler *Handler) GetAvailability(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAvailability")
	defer scope.End()

	snapshot, err := handler.ledger.Snapshot(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to read availability")

		response.WithError(writer, err)

		return
	}

	if snapshot == nil {
		snapshot = map[string]int{}
	}

	response.WithPayload(writer, http.StatusOK, snapshot)
}
