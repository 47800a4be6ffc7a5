package booking

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"inn/infras/otel"
	"inn/internal/domains/booking/model"
	"inn/internal/domains/booking/model/dto"
	"inn/internal/domains/booking/service"
	"inn/shared/constant"
	gDto "inn/shared/dto"
	"inn/transport/http/response"
)

type Handler struct {
	service service.Booking
	otel    otel.Otel
}

func New(service service.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateBooking)
		routerGroup.Get("/", handler.GetBookings)
	})
}

type createBookingResponse struct {
	Success      bool                `json:"success"`
	Booking      dto.BookingResponse `json:"booking"`
	NewAvailable int                 `json:"new_available"`
}

// CreateBooking submits a new booking.
// @Summary Create a new booking
// @Description Submit a booking; room inventory is reserved atomically before the record is persisted.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Create Booking Request"
// @Success 201 {object} createBookingResponse "Booking confirmed"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/bookings [post]
func (handler *Handler) CreateBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	req, err := dto.ParseCreateBookingRequest(request.Body)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Submit(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to submit booking")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking confirmed for room type " + req.RoomType)

	response.WithPayload(writer, http.StatusCreated, createBookingResponse{
		Success:      true,
		Booking:      res.Booking,
		NewAvailable: res.NewAvailable,
	})
}

// GetBookings retrieves bookings, newest first. The body is the bare array
// of booking records; pagination totals travel in response headers.
// @Summary Get all bookings
// @Description Retrieve bookings with pagination, newest first, optionally filtered by room type.
// @Tags Booking
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param room_type query string false "Filter by room type"
// @Success 200 {array} dto.BookingResponse "List of bookings"
// @Failure 500 {object} response.Error
// @Router /api/bookings [get]
func (handler *Handler) GetBookings(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	roomType := request.URL.Query().Get(model.FieldRoomType)

	res, err := handler.service.GetAll(ctx, queryParams, roomType)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bookings")

		response.WithError(writer, err)

		return
	}

	if res.Bookings == nil {
		res.Bookings = []dto.BookingResponse{}
	}

	writer.Header().Set(constant.RequestHeaderTotalCount, strconv.Itoa(res.TotalData))
	writer.Header().Set(constant.RequestHeaderTotalPages, strconv.Itoa(res.TotalPage))

	response.WithPayload(writer, http.StatusOK, res.Bookings)
}
