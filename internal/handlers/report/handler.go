package report

import (
	"net/http"
	"time"

	"dpbooking/infras/otel"
	"dpbooking/internal/domains/report/service"
	"dpbooking/shared"
	"dpbooking/shared/constant"
	"dpbooking/shared/failure"
	"dpbooking/shared/timezone"
	"dpbooking/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Report
	otel    otel.Otel
}

func New(service service.Report, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/reports", func(routerGroup chi.Router) {
		routerGroup.Get("/receipt/{id}", handler.GetReceipt)
		routerGroup.Get("/kitchen-sheet", handler.GetKitchenSheet)
		routerGroup.Get("/station-sheet", handler.GetStationSheet)
		routerGroup.Get("/daily-summary", handler.GetDailySummary)
	})
}

// GetReceipt builds a printable receipt for a booking.
// @Summary Get a booking receipt
// @Description Build a printable receipt document for a booking.
// @Tags Report
// @Accept json
// @Produce json
// @Param id path int true "Booking ID"
// @Success 200 {object} response.Data[model.Receipt] "Receipt document"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reports/receipt/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetReceipt(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReceipt")
	defer scope.End()

	id, err := shared.ConvertStringToInt64(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse booking id")

		response.WithError(w, failure.BadRequestFromString("invalid booking id"))

		return
	}

	res, err := handler.service.Receipt(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to build receipt")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetKitchenSheet builds the kitchen orders for a day.
// @Summary Get the kitchen sheet
// @Description Build the per-booking kitchen orders for a given date.
// @Tags Report
// @Accept json
// @Produce json
// @Param date query string false "Date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} response.Data[model.KitchenSheet] "Kitchen sheet"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reports/kitchen-sheet [get]
// @Security BearerAuth
func (handler *Handler) GetKitchenSheet(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetKitchenSheet")
	defer scope.End()

	date, err := handler.parseDate(r)
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	res, err := handler.service.KitchenSheet(ctx, date)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to build kitchen sheet")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetStationSheet builds the per-station meal totals for a day.
// @Summary Get the station sheet
// @Description Build per-station meal quantity totals for a given date.
// @Tags Report
// @Accept json
// @Produce json
// @Param date query string false "Date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} response.Data[model.StationSheet] "Station sheet"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reports/station-sheet [get]
// @Security BearerAuth
func (handler *Handler) GetStationSheet(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetStationSheet")
	defer scope.End()

	date, err := handler.parseDate(r)
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	res, err := handler.service.StationSheet(ctx, date)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to build station sheet")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetDailySummary builds the booking summary for a day.
// @Summary Get the daily summary
// @Description Build the booking counts, guest and revenue summary for a given date.
// @Tags Report
// @Accept json
// @Produce json
// @Param date query string false "Date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} response.Data[model.DailySummary] "Daily summary"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reports/daily-summary [get]
// @Security BearerAuth
func (handler *Handler) GetDailySummary(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDailySummary")
	defer scope.End()

	date, err := handler.parseDate(r)
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	res, err := handler.service.DailySummary(ctx, date)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to build daily summary")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

func (handler *Handler) parseDate(r *http.Request) (time.Time, error) {
	dateParam := r.URL.Query().Get(constant.RequestParamDate)
	if dateParam == "" {
		return timezone.Now(), nil
	}

	date, err := timezone.Parse(constant.DateOnlyFormat, dateParam)
	if err != nil {
		return time.Time{}, failure.BadRequestFromString("invalid date, expected YYYY-MM-DD")
	}

	return date, nil
}
