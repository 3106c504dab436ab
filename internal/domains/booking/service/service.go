package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"dpbooking/config"
	"dpbooking/infras/otel"
	"dpbooking/internal/domains/booking/analytics"
	"dpbooking/internal/domains/booking/model"
	"dpbooking/internal/domains/booking/model/dto"
	"dpbooking/internal/domains/booking/pricing"
	"dpbooking/internal/domains/booking/repository"
	mealModel "dpbooking/internal/domains/meal/model"
	mealRepo "dpbooking/internal/domains/meal/repository"
	venueModel "dpbooking/internal/domains/venue/model"
	venueRepo "dpbooking/internal/domains/venue/repository"
	"dpbooking/shared"
	"dpbooking/shared/cache"
	"dpbooking/shared/constant"
	gDto "dpbooking/shared/dto"
	"dpbooking/shared/failure"
	"dpbooking/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"

	pageWindowSize = 5
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (int64, error)
	Quote(ctx context.Context, req dto.CreateBookingRequest) (dto.QuoteResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, criteria dto.ListCriteria) (dto.GetBookingsResponse, error)
	Get(ctx context.Context, id int64) (dto.BookingResponse, error)
	Update(ctx context.Context, req dto.UpdateBookingRequest, id int64) error
	UpdateStatus(ctx context.Context, req dto.UpdateStatusRequest, id int64) (dto.BookingResponse, error)
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context, criteria dto.ListCriteria) (dto.StatsResponse, error)
	Calendar(ctx context.Context, month string) (dto.CalendarResponse, error)
}

type serviceImpl struct {
	repo      repository.Booking
	venueRepo venueRepo.Venue
	mealRepo  mealRepo.Meal
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
}

func New(
	repo repository.Booking,
	venueRepo venueRepo.Venue,
	mealRepo mealRepo.Meal,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:      repo,
		venueRepo: venueRepo,
		mealRepo:  mealRepo,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (id int64, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserName).(string)

	receiptFilter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldReceiptNumber,
				Operator: gDto.FilterOperatorEq,
				Value:    req.ReceiptNumber,
				Table:    model.TableName,
			},
		},
	}

	exists, err := s.repo.Exist(ctx, receiptFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check receipt number")

		return 0, fmt.Errorf("failed to check receipt number: %w", err)
	}

	if exists {
		return 0, failure.Conflict("receipt number already used") // nolint:wrapcheck
	}

	venue, err := s.getVenue(ctx, req.VenueID)
	if err != nil {
		return 0, err
	}

	lines, totals, err := s.resolveLines(ctx, req.VenueID, effectiveSurcharge(venue.Surcharge, req.VenuePrice), req.Deposit, req.Meals)
	if err != nil {
		return 0, err
	}

	booking := req.ToModel(user)
	booking.Subtotal = totals.Subtotal
	booking.Tax = totals.Tax
	booking.VenueSurcharge = totals.Surcharge
	booking.TotalAmount = totals.GrandTotal

	id, err = s.repo.CreateWithLines(ctx, booking, lines)
	if err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		return 0, fmt.Errorf("failed to create booking: %w", err)
	}

	s.invalidateListings(ctx)

	return id, nil
}

// Quote prices a booking without persisting anything.
func (s *serviceImpl) Quote(ctx context.Context, req dto.CreateBookingRequest) (res dto.QuoteResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Quote")
	defer scope.End()
	defer scope.TraceIfError(err)

	venue, err := s.getVenue(ctx, req.VenueID)
	if err != nil {
		return res, err
	}

	lines, totals, err := s.resolveLines(ctx, req.VenueID, effectiveSurcharge(venue.Surcharge, req.VenuePrice), req.Deposit, req.Meals)
	if err != nil {
		return res, err
	}

	lineResponses, err := s.buildLineResponses(ctx, lines)
	if err != nil {
		return res, err
	}

	res.FromTotals(totals, lineResponses)

	return res, nil
}

// effectiveSurcharge prefers the per-booking override when one was sent.
// An explicit zero means no surcharge at all.
func effectiveSurcharge(venueSurcharge float64, override *float64) float64 {
	if override != nil {
		return *override
	}

	return venueSurcharge
}

func (s *serviceImpl) getVenue(ctx context.Context, venueID int64) (venueModel.Venue, error) {
	venue, err := s.venueRepo.Get(ctx, shared.FilterByID(venueID, venueModel.FieldID, venueModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get venue")

		return venue, fmt.Errorf("failed to get venue: %w", err)
	}

	if venue.ID == 0 {
		return venue, failure.BadRequestFromString("venue not found") // nolint:wrapcheck
	}

	if !venue.IsActive {
		return venue, failure.BadRequestFromString("venue is not available") // nolint:wrapcheck
	}

	return venue, nil
}

// resolveLines turns the requested meal lines into priced booking lines.
// Prices always come from the catalog, never from the client. An empty
// request falls back to the venue's default starter line.
func (s *serviceImpl) resolveLines(ctx context.Context, venueID int64, surcharge, deposit float64, reqLines []dto.BookingLineRequest) ([]model.BookingMeal, pricing.Totals, error) {
	specialVenueID := s.cfg.App.SpecialPriceVenueID

	activeFilter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    mealModel.FieldIsActive,
				Operator: gDto.FilterOperatorEq,
				Value:    true,
				Table:    mealModel.TableName,
			},
		},
	}

	meals, err := s.mealRepo.GetAll(ctx, gDto.QueryParams{SortBy: mealModel.FieldID, SortDir: "ASC"}, activeFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to load meal catalog")

		return nil, pricing.Totals{}, fmt.Errorf("failed to load meal catalog: %w", err)
	}

	mealsByID := make(map[int64]mealModel.Meal, len(meals))
	for _, meal := range meals {
		mealsByID[meal.ID] = meal
	}

	var priced []pricing.Line

	if len(reqLines) == 0 {
		priced = pricing.DefaultLines(meals, venueID, specialVenueID)
	} else {
		selectable := make(map[int64]bool)
		for _, meal := range pricing.SelectableMeals(meals, venueID, specialVenueID) {
			selectable[meal.ID] = true
		}

		for _, reqLine := range reqLines {
			meal, ok := mealsByID[reqLine.MealID]
			if !ok {
				return nil, pricing.Totals{}, failure.BadRequestFromString(
					fmt.Sprintf("meal %d not found", reqLine.MealID)) // nolint:wrapcheck
			}

			if !selectable[meal.ID] {
				return nil, pricing.Totals{}, failure.BadRequestFromString(
					fmt.Sprintf("meal %d is not available for this venue", reqLine.MealID)) // nolint:wrapcheck
			}

			qty := reqLine.Quantity
			if qty <= 0 {
				qty = 1
			}

			priced = append(priced, pricing.Line{
				MealID:    meal.ID,
				Quantity:  qty,
				UnitPrice: pricing.ResolveUnitPrice(meal, venueID, specialVenueID),
			})
		}
	}

	totals := pricing.ComputeTotals(pricing.QuoteInput{
		Lines:          priced,
		TaxRate:        s.cfg.App.TaxRate,
		VenueSurcharge: surcharge,
		Deposit:        deposit,
	})

	user, _ := ctx.Value(constant.ContextKeyUserName).(string)
	now := timezone.Now()

	lines := make([]model.BookingMeal, len(priced))
	for i, line := range priced {
		lines[i] = model.BookingMeal{
			LineNo:    i + 1,
			MealID:    line.MealID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		}
		lines[i].CreatedAt = now
		lines[i].ModifiedAt = now
		lines[i].CreatedBy = user
		lines[i].ModifiedBy = user
	}

	return lines, totals, nil
}

func (s *serviceImpl) buildLineResponses(ctx context.Context, lines []model.BookingMeal) ([]dto.BookingLineResponse, error) {
	if len(lines) == 0 {
		return []dto.BookingLineResponse{}, nil
	}

	mealIDs := make([]int64, 0, len(lines))
	for _, line := range lines {
		mealIDs = append(mealIDs, line.MealID)
	}

	mealFilter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    mealModel.FieldID,
				Operator: gDto.FilterOperatorIn,
				Value:    mealIDs,
				Table:    mealModel.TableName,
			},
		},
	}

	meals, err := s.mealRepo.GetAll(ctx, gDto.QueryParams{}, mealFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to load meals for booking lines")

		return nil, fmt.Errorf("failed to load meals for booking lines: %w", err)
	}

	namesByID := make(map[int64]string, len(meals))
	for _, meal := range meals {
		namesByID[meal.ID] = meal.Name
	}

	responses := make([]dto.BookingLineResponse, len(lines))
	for i, line := range lines {
		responses[i] = dto.BookingLineResponse{
			MealID:    line.MealID,
			MealName:  namesByID[line.MealID],
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			LineTotal: line.LineTotal(),
		}
	}

	return responses, nil
}

// buildFilter translates listing criteria into the SQL where clause. The
// free-text search ORs across client name, phone, mobile, booking id and
// venue name; everything else ANDs.
func buildFilter(criteria dto.ListCriteria) gDto.FilterGroup {
	filters := []any{}

	if criteria.Search != "" {
		searchFields := []gDto.Filter{
			{Field: model.FieldClientName, Table: model.TableName, ArgName: "search_client"},
			{Field: model.FieldPhone, Table: model.TableName, ArgName: "search_phone"},
			{Field: model.FieldMobile, Table: model.TableName, ArgName: "search_mobile"},
			{Field: model.FieldID, Table: model.TableName, ArgName: "search_id"},
			{Field: venueModel.FieldName, Table: venueModel.TableName, ArgName: "search_venue"},
		}

		searchGroup := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorOr}
		for _, f := range searchFields {
			f.Operator = gDto.FilterOperatorLike
			f.Value = criteria.Search
			searchGroup.Filters = append(searchGroup.Filters, f)
		}

		filters = append(filters, searchGroup)
	}

	if criteria.Type != nil {
		filters = append(filters, gDto.Filter{
			Field:    model.FieldBookingType,
			Operator: gDto.FilterOperatorEq,
			Value:    int(model.ParseBookingType(*criteria.Type)),
			Table:    model.TableName,
		})
	}

	if criteria.Status != nil {
		filters = append(filters, gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    int(model.ParseBookingStatus(*criteria.Status)),
			Table:    model.TableName,
		})
	}

	if criteria.VenueID != 0 {
		filters = append(filters, gDto.Filter{
			Field:    model.FieldVenueID,
			Operator: gDto.FilterOperatorEq,
			Value:    criteria.VenueID,
			Table:    model.TableName,
		})
	}

	// A single date beats a range.
	switch {
	case criteria.Date != nil:
		filters = append(filters, gDto.Filter{
			Field:    model.FieldEventDate,
			Operator: gDto.FilterOperatorEq,
			Value:    truncateToDay(*criteria.Date),
			Table:    model.TableName,
		})
	default:
		if criteria.DateFrom != nil {
			filters = append(filters, gDto.Filter{
				Field:    model.FieldEventDate,
				Operator: gDto.FilterOperatorGreaterEq,
				Value:    truncateToDay(*criteria.DateFrom),
				Table:    model.TableName,
				ArgName:  "event_date_from",
			})
		}

		if criteria.DateTo != nil {
			filters = append(filters, gDto.Filter{
				Field:    model.FieldEventDate,
				Operator: gDto.FilterOperatorLessEq,
				Value:    truncateToDay(*criteria.DateTo),
				Table:    model.TableName,
				ArgName:  "event_date_to",
			})
		}
	}

	return gDto.FilterGroup{Filters: filters}
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, criteria dto.ListCriteria) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := buildFilter(criteria)
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, params, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	bookings, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	responses, err := s.buildBookingResponses(ctx, bookings)
	if err != nil {
		return res, err
	}

	res.Bookings = responses
	res.Finalize(total, params, analytics.PageWindow(params.Page, shared.CalculateTotalPage(total, params.Limit), pageWindowSize))

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) buildBookingResponses(ctx context.Context, bookings []model.Booking) ([]dto.BookingResponse, error) {
	ids := make([]int64, len(bookings))
	for i, booking := range bookings {
		ids[i] = booking.ID
	}

	lines, err := s.repo.GetLinesForBookings(ctx, ids)
	if err != nil {
		log.Error().Err(err).Msg("failed to load booking lines")

		return nil, fmt.Errorf("failed to load booking lines: %w", err)
	}

	linesByBooking := make(map[int64][]model.BookingMeal)
	for _, line := range lines {
		linesByBooking[line.BookingID] = append(linesByBooking[line.BookingID], line)
	}

	allLineResponses := make(map[int64][]dto.BookingLineResponse, len(bookings))
	for id, bookingLines := range linesByBooking {
		lineResponses, err := s.buildLineResponses(ctx, bookingLines)
		if err != nil {
			return nil, err
		}

		allLineResponses[id] = lineResponses
	}

	responses := make([]dto.BookingResponse, len(bookings))
	for i, booking := range bookings {
		lineResponses := allLineResponses[booking.ID]
		if lineResponses == nil {
			lineResponses = []dto.BookingLineResponse{}
		}

		responses[i].FromModel(booking, booking.VenueName, lineResponses)
	}

	return responses, nil
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetBooking, strconv.FormatInt(id, 10))

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return res, err
	}

	lines, err := s.repo.GetLines(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking lines")

		return res, fmt.Errorf("failed to get booking lines: %w", err)
	}

	lineResponses, err := s.buildLineResponses(ctx, lines)
	if err != nil {
		return res, err
	}

	res.FromModel(booking, booking.VenueName, lineResponses)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) getBooking(ctx context.Context, id int64) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == 0 {
		return booking, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	return booking, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateBookingRequest, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserName).(string)

	current, err := s.getBooking(ctx, id)
	if err != nil {
		return err
	}

	venueID := current.VenueID
	venueChanged := false

	if req.VenueID != nil && *req.VenueID != current.VenueID {
		venueID = *req.VenueID
		venueChanged = true
	}

	venue, err := s.getVenue(ctx, venueID)
	if err != nil {
		return err
	}

	deposit := current.Deposit
	if req.Deposit != nil {
		deposit = *req.Deposit
	}

	// A venue change resets the lines to the new venue's default
	// starter line. Explicit lines in the request win otherwise.
	var reqLines []dto.BookingLineRequest

	switch {
	case venueChanged && len(req.Meals) == 0:
		reqLines = nil
	case len(req.Meals) > 0:
		reqLines = req.Meals
	default:
		existing, err := s.repo.GetLines(ctx, id)
		if err != nil {
			log.Error().Err(err).Msg("failed to get booking lines")

			return fmt.Errorf("failed to get booking lines: %w", err)
		}

		reqLines = make([]dto.BookingLineRequest, len(existing))
		for i, line := range existing {
			reqLines[i] = dto.BookingLineRequest{MealID: line.MealID, Quantity: line.Quantity}
		}
	}

	// The stored surcharge survives unrelated edits; a venue change picks
	// up the new venue's catalog figure, and an explicit override wins.
	surcharge := current.VenueSurcharge
	if venueChanged {
		surcharge = venue.Surcharge
	}

	lines, totals, err := s.resolveLines(ctx, venueID, effectiveSurcharge(surcharge, req.VenuePrice), deposit, reqLines)
	if err != nil {
		return err
	}

	updatedFields := shared.TransformFields(req, user)
	updatedFields[model.FieldVenueID] = venueID
	updatedFields[model.FieldSubtotal] = totals.Subtotal
	updatedFields[model.FieldTax] = totals.Tax
	updatedFields[model.FieldVenueSurcharge] = totals.Surcharge
	updatedFields[model.FieldTotalAmount] = totals.GrandTotal

	if req.BookingType != nil && req.BookingType.IsSet() {
		updatedFields[model.FieldBookingType] = int(req.BookingType.Type())
	}

	if req.EventDate != nil {
		eventDate, parseErr := timezone.Parse(constant.DateOnlyFormat, *req.EventDate)
		if parseErr != nil {
			return failure.BadRequestFromString("invalid event date") // nolint:wrapcheck
		}

		updatedFields[model.FieldEventDate] = eventDate
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update booking")

		return fmt.Errorf("failed to update booking: %w", err)
	}

	if err := s.repo.ReplaceLines(ctx, id, lines); err != nil {
		log.Error().Err(err).Msg("failed to replace booking lines")

		return fmt.Errorf("failed to replace booking lines: %w", err)
	}

	s.invalidateBooking(ctx, id)

	return nil
}

func (s *serviceImpl) UpdateStatus(ctx context.Context, req dto.UpdateStatusRequest, id int64) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserName).(string)

	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return res, err
	}

	next, ok := model.Transition(booking.Status, req.Action)
	if !ok {
		return res, failure.BadRequestFromString(
			fmt.Sprintf("cannot %s a booking in status %s", req.Action, booking.Status)) // nolint:wrapcheck
	}

	updatedFields := map[string]any{
		model.FieldStatus:        int(next),
		constant.FieldModifiedBy: user,
		constant.FieldModifiedAt: timezone.Now(),
	}

	if req.Action == model.ActionPostpone {
		if req.NewDate == "" {
			return res, failure.BadRequestFromString("a new date is required to postpone") // nolint:wrapcheck
		}

		newDate, parseErr := timezone.Parse(constant.DateOnlyFormat, req.NewDate)
		if parseErr != nil {
			return res, failure.BadRequestFromString("invalid new date") // nolint:wrapcheck
		}

		today := truncateToDay(timezone.Now())
		if truncateToDay(newDate).Before(today) {
			return res, failure.BadRequestFromString("new date cannot be in the past") // nolint:wrapcheck
		}

		updatedFields[model.FieldEventDate] = truncateToDay(newDate)
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update booking status")

		return res, fmt.Errorf("failed to update booking status: %w", err)
	}

	s.invalidateBooking(ctx, id)

	return s.buildStatusResponse(ctx, id)
}

func (s *serviceImpl) buildStatusResponse(ctx context.Context, id int64) (res dto.BookingResponse, err error) {
	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return res, err
	}

	lines, err := s.repo.GetLines(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking lines")

		return res, fmt.Errorf("failed to get booking lines: %w", err)
	}

	lineResponses, err := s.buildLineResponses(ctx, lines)
	if err != nil {
		return res, err
	}

	res.FromModel(booking, booking.VenueName, lineResponses)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if booking exists")

		return fmt.Errorf("failed to check if booking exists: %w", err)
	}

	if !exist {
		return failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if err := s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete booking")

		return fmt.Errorf("failed to delete booking: %w", err)
	}

	s.invalidateBooking(ctx, id)

	return nil
}

func (s *serviceImpl) Stats(ctx context.Context, criteria dto.ListCriteria) (res dto.StatsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Stats")
	defer scope.End()
	defer scope.TraceIfError(err)

	records, err := s.loadRecords(ctx, criteria)
	if err != nil {
		return res, err
	}

	summary := analytics.Summarize(records)

	res.Total = summary.Total
	res.TotalGuests = summary.TotalGuests
	res.Revenue = summary.Revenue
	res.Collected = summary.Collected
	res.Remaining = summary.Revenue - summary.Collected

	for status := model.StatusPending; status <= model.StatusCancelledWithRefund; status++ {
		res.ByStatus = append(res.ByStatus, dto.StatusCountResponse{
			Status:     int(status),
			StatusName: status.String(),
			Count:      summary.ByStatus[status],
		})
	}

	for _, stat := range analytics.VenueStats(records) {
		res.ByVenue = append(res.ByVenue, dto.VenueStatResponse{
			VenueID:   stat.VenueID,
			VenueName: stat.VenueName,
			Count:     stat.Count,
			Revenue:   stat.Revenue,
			Top:       stat.Top,
		})
	}

	return res, nil
}

func (s *serviceImpl) Calendar(ctx context.Context, month string) (res dto.CalendarResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Calendar")
	defer scope.End()
	defer scope.TraceIfError(err)

	firstDay, err := timezone.Parse(constant.MonthFormat, month)
	if err != nil {
		return res, failure.BadRequestFromString("invalid month, expected YYYY-MM") // nolint:wrapcheck
	}

	lastDay := firstDay.AddDate(0, 1, -1)

	criteria := dto.ListCriteria{DateFrom: &firstDay, DateTo: &lastDay}

	records, err := s.loadRecords(ctx, criteria)
	if err != nil {
		return res, err
	}

	res.Month = month

	byDay := make(map[string][]analytics.Record)
	for _, rec := range records {
		day := rec.Booking.EventDate.Format(constant.DateOnlyFormat)
		byDay[day] = append(byDay[day], rec)
	}

	for day := firstDay; !day.After(lastDay); day = day.AddDate(0, 0, 1) {
		key := day.Format(constant.DateOnlyFormat)

		dayRecords, ok := byDay[key]
		if !ok {
			continue
		}

		bookings := make([]model.Booking, len(dayRecords))
		for i, rec := range dayRecords {
			bookings[i] = rec.Booking
		}

		responses, err := s.buildBookingResponses(ctx, bookings)
		if err != nil {
			return res, err
		}

		res.Days = append(res.Days, dto.CalendarDayResponse{Date: key, Bookings: responses})
	}

	for _, stat := range analytics.VenueStats(records) {
		res.VenueStats = append(res.VenueStats, dto.VenueStatResponse{
			VenueID:   stat.VenueID,
			VenueName: stat.VenueName,
			Count:     stat.Count,
			Revenue:   stat.Revenue,
			Top:       stat.Top,
		})
	}

	return res, nil
}

func (s *serviceImpl) loadRecords(ctx context.Context, criteria dto.ListCriteria) ([]analytics.Record, error) {
	filter := buildFilter(criteria)

	bookings, err := s.repo.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to load bookings")

		return nil, fmt.Errorf("failed to load bookings: %w", err)
	}

	records := make([]analytics.Record, len(bookings))
	for i, booking := range bookings {
		records[i] = analytics.Record{Booking: booking, VenueName: booking.VenueName}
	}

	return records, nil
}

func (s *serviceImpl) invalidateBooking(ctx context.Context, id int64) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, strconv.FormatInt(id, 10))); err != nil {
			log.Error().Err(err).Msg("failed to delete booking from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()
}

func (s *serviceImpl) invalidateListings(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()
}
