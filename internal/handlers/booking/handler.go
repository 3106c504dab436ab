package booking

import (
	"net/http"

	"dpbooking/infras/otel"
	"dpbooking/internal/domains/booking/model"
	"dpbooking/internal/domains/booking/model/dto"
	"dpbooking/internal/domains/booking/service"
	"dpbooking/shared"
	"dpbooking/shared/constant"
	gDto "dpbooking/shared/dto"
	"dpbooking/shared/failure"
	"dpbooking/shared/timezone"
	"dpbooking/shared/validator"
	"dpbooking/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
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
		routerGroup.Post("/quote", handler.QuoteBooking)
		routerGroup.Get("/", handler.GetBookings)
		routerGroup.Get("/stats", handler.GetBookingStats)
		routerGroup.Get("/calendar", handler.GetBookingCalendar)
		routerGroup.Get("/{id}", handler.GetBookingByID)
		routerGroup.Patch("/{id}", handler.UpdateBooking)
		routerGroup.Patch("/{id}/status", handler.UpdateBookingStatus)
		routerGroup.Delete("/{id}", handler.DeleteBooking)
	})
}

// CreateBooking registers a new booking.
// @Summary Create a new booking
// @Description Create a booking with its meal lines. Prices and totals are resolved server side.
// @Tags Booking
// @Accept json
// @Produce json
// @Param booking body dto.CreateBookingRequest true "Booking details"
// @Success 201 {object} response.Data[int64] "Created booking id"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error "Receipt number already used"
// @Failure 500 {object} response.Error
// @Router /v1/bookings [post]
// @Security BearerAuth
func (handler *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	var req dto.CreateBookingRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	id, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create booking")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserName).(string)
	scope.AddEvent("Booking created successfully by user " + user)

	response.WithJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

// QuoteBooking prices a booking without saving it.
// @Summary Quote a booking
// @Description Compute subtotal, tax, surcharge and totals for an unsaved booking.
// @Tags Booking
// @Accept json
// @Produce json
// @Param booking body dto.CreateBookingRequest true "Booking details"
// @Success 200 {object} response.Data[dto.QuoteResponse] "Quoted totals"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/quote [post]
// @Security BearerAuth
func (handler *Handler) QuoteBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".QuoteBooking")
	defer scope.End()

	var req dto.CreateBookingRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	quote, err := handler.service.Quote(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to quote booking")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, quote)
}

// GetBookings lists bookings with filtering and pagination.
// @Summary Get all bookings
// @Description Retrieve bookings with free text search, exact filters, date filters and pagination.
// @Tags Booking
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param search query string false "Match client name, phone, mobile, booking id or venue name"
// @Param type query string false "Filter by booking type, code or name"
// @Param status query string false "Filter by booking status, code or name"
// @Param venue_id query integer false "Filter by venue"
// @Param date query string false "Exact event date (YYYY-MM-DD), overrides the range"
// @Param date_from query string false "Range start (YYYY-MM-DD), inclusive"
// @Param date_to query string false "Range end (YYYY-MM-DD), inclusive"
// @Success 200 {object} response.Data[dto.GetBookingsResponse] "List of bookings"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [get]
// @Security BearerAuth
func (handler *Handler) GetBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	criteria, err := parseListCriteria(r)
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	bookings, err := handler.service.GetAll(ctx, queryParams, criteria)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bookings")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Bookings retrieved successfully")

	response.WithJSON(w, http.StatusOK, bookings)
}

// GetBookingStats aggregates bookings matching the filters.
// @Summary Get booking statistics
// @Description Counts by status, guest totals, revenue and collected deposits for the matching bookings.
// @Tags Booking
// @Accept json
// @Produce json
// @Param search query string false "Match client name, phone, mobile, booking id or venue name"
// @Param type query string false "Filter by booking type, code or name"
// @Param status query string false "Filter by booking status, code or name"
// @Param venue_id query integer false "Filter by venue"
// @Param date query string false "Exact event date (YYYY-MM-DD)"
// @Param date_from query string false "Range start (YYYY-MM-DD), inclusive"
// @Param date_to query string false "Range end (YYYY-MM-DD), inclusive"
// @Success 200 {object} response.Data[dto.StatsResponse] "Booking statistics"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/stats [get]
// @Security BearerAuth
func (handler *Handler) GetBookingStats(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingStats")
	defer scope.End()

	criteria, err := parseListCriteria(r)
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	stats, err := handler.service.Stats(ctx, criteria)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking stats")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, stats)
}

// GetBookingCalendar returns the month's bookings grouped by day.
// @Summary Get the booking calendar
// @Description Bookings of a month grouped per day with per venue statistics.
// @Tags Booking
// @Accept json
// @Produce json
// @Param month query string true "Month to load (YYYY-MM)"
// @Success 200 {object} response.Data[dto.CalendarResponse] "Calendar"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/calendar [get]
// @Security BearerAuth
func (handler *Handler) GetBookingCalendar(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingCalendar")
	defer scope.End()

	month := r.URL.Query().Get(constant.RequestParamMonth)
	if month == "" {
		month = timezone.Now().Format(constant.MonthFormat)
	}

	calendar, err := handler.service.Calendar(ctx, month)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking calendar")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, calendar)
}

// GetBookingByID retrieves a booking by its ID.
// @Summary Get a booking by ID
// @Description Retrieve a booking with its meal lines and totals.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path integer true "Booking ID"
// @Success 200 {object} response.Data[dto.BookingResponse] "Booking details"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetBookingByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingByID")
	defer scope.End()

	id, err := parseID(r)
	if err != nil {
		response.WithError(w, err)

		return
	}

	booking, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking retrieved successfully")

	response.WithJSON(w, http.StatusOK, booking)
}

// UpdateBooking updates an existing booking by its ID.
// @Summary Update a booking by ID
// @Description Update booking details. A venue change resets the meal lines; totals are always recomputed.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path integer true "Booking ID"
// @Param booking body dto.UpdateBookingRequest true "Fields to update"
// @Success 200 {object} response.Message "Booking updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateBooking")
	defer scope.End()

	id, err := parseID(r)
	if err != nil {
		response.WithError(w, err)

		return
	}

	var req dto.UpdateBookingRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update booking")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserName).(string)
	scope.AddEvent("Booking updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Booking updated successfully")
}

// UpdateBookingStatus applies a lifecycle action to a booking.
// @Summary Update a booking's status
// @Description Apply confirm, cancel, postpone, refund or complete. Postponing requires a new date not in the past.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path integer true "Booking ID"
// @Param action body dto.UpdateStatusRequest true "Lifecycle action"
// @Success 200 {object} response.Data[dto.BookingResponse] "Updated booking"
// @Failure 400 {object} response.Error "Illegal transition"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/status [patch]
// @Security BearerAuth
func (handler *Handler) UpdateBookingStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateBookingStatus")
	defer scope.End()

	id, err := parseID(r)
	if err != nil {
		response.WithError(w, err)

		return
	}

	var req dto.UpdateStatusRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	booking, err := handler.service.UpdateStatus(ctx, req, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update booking status")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserName).(string)
	scope.AddEvent("Booking status updated successfully by user " + user)

	response.WithJSON(w, http.StatusOK, booking)
}

// DeleteBooking deletes a booking by its ID.
// @Summary Delete a booking by ID
// @Description Delete a booking and its meal lines.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path integer true "Booking ID"
// @Success 200 {object} response.Message "Booking deleted successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteBooking")
	defer scope.End()

	id, err := parseID(r)
	if err != nil {
		response.WithError(w, err)

		return
	}

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete booking")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserName).(string)
	scope.AddEvent("Booking deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Booking deleted successfully")
}

func parseID(r *http.Request) (int64, error) {
	id, err := shared.ConvertStringToInt64(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		return 0, failure.BadRequestFromString("invalid booking id") // nolint:wrapcheck
	}

	return id, nil
}

func parseListCriteria(r *http.Request) (dto.ListCriteria, error) {
	query := r.URL.Query()

	criteria := dto.ListCriteria{
		Search: query.Get(constant.RequestParamSearch),
	}

	// Type and status filters accept either the numeric code or the name.
	if typeStr := query.Get(constant.RequestParamType); typeStr != "" {
		typ, ok := model.LookupBookingType(typeStr)
		if !ok {
			return criteria, failure.BadRequestFromString("invalid type filter") // nolint:wrapcheck
		}

		parsed := int(typ)
		criteria.Type = &parsed
	}

	if statusStr := query.Get(constant.RequestParamStatus); statusStr != "" {
		status, ok := model.LookupBookingStatus(statusStr)
		if !ok {
			return criteria, failure.BadRequestFromString("invalid status filter") // nolint:wrapcheck
		}

		parsed := int(status)
		criteria.Status = &parsed
	}

	if venueStr := query.Get(constant.RequestParamVenueID); venueStr != "" {
		venueID, err := shared.ConvertStringToInt64(venueStr)
		if err != nil {
			return criteria, failure.BadRequestFromString("invalid venue filter") // nolint:wrapcheck
		}

		criteria.VenueID = venueID
	}

	if dateStr := query.Get(constant.RequestParamDate); dateStr != "" {
		date, err := timezone.Parse(constant.DateOnlyFormat, dateStr)
		if err != nil {
			return criteria, failure.BadRequestFromString("invalid date filter") // nolint:wrapcheck
		}

		criteria.Date = &date
	}

	if fromStr := query.Get(constant.RequestParamDateFrom); fromStr != "" {
		from, err := timezone.Parse(constant.DateOnlyFormat, fromStr)
		if err != nil {
			return criteria, failure.BadRequestFromString("invalid date_from filter") // nolint:wrapcheck
		}

		criteria.DateFrom = &from
	}

	if toStr := query.Get(constant.RequestParamDateTo); toStr != "" {
		to, err := timezone.Parse(constant.DateOnlyFormat, toStr)
		if err != nil {
			return criteria, failure.BadRequestFromString("invalid date_to filter") // nolint:wrapcheck
		}

		criteria.DateTo = &to
	}

	return criteria, nil
}
