package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"dpbooking/infras/otel"
	"dpbooking/internal/domains/booking/analytics"
	bookingModel "dpbooking/internal/domains/booking/model"
	bookingRepo "dpbooking/internal/domains/booking/repository"
	mealModel "dpbooking/internal/domains/meal/model"
	mealRepo "dpbooking/internal/domains/meal/repository"
	"dpbooking/internal/domains/report/model"
	"dpbooking/shared"
	"dpbooking/shared/constant"
	gDto "dpbooking/shared/dto"
	"dpbooking/shared/failure"
	"dpbooking/shared/timezone"

	"github.com/rs/zerolog/log"
)

type Report interface {
	Receipt(ctx context.Context, bookingID int64) (model.Receipt, error)
	KitchenSheet(ctx context.Context, date time.Time) (model.KitchenSheet, error)
	StationSheet(ctx context.Context, date time.Time) (model.StationSheet, error)
	DailySummary(ctx context.Context, date time.Time) (model.DailySummary, error)
}

type serviceImpl struct {
	bookingRepo bookingRepo.Booking
	mealRepo    mealRepo.Meal
	otel        otel.Otel
}

func New(bookingRepo bookingRepo.Booking, mealRepo mealRepo.Meal, otel otel.Otel) Report {
	return &serviceImpl{
		bookingRepo: bookingRepo,
		mealRepo:    mealRepo,
		otel:        otel,
	}
}

func (s *serviceImpl) Receipt(ctx context.Context, bookingID int64) (res model.Receipt, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Receipt")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.bookingRepo.Get(ctx, shared.FilterByID(bookingID, bookingModel.FieldID, bookingModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == 0 {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	lines, err := s.bookingRepo.GetLines(ctx, bookingID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking lines")

		return res, fmt.Errorf("failed to get booking lines: %w", err)
	}

	mealsByID, err := s.loadMeals(ctx, lines)
	if err != nil {
		return res, err
	}

	res = model.Receipt{
		BookingID:      booking.ID,
		ReceiptNumber:  booking.ReceiptNumber,
		ClientName:     booking.ClientName,
		Phone:          booking.Phone,
		Mobile:         booking.Mobile,
		VenueName:      booking.VenueName,
		EventDate:      booking.EventDate.Format(constant.DateOnlyFormat),
		EventTime:      booking.EventTime,
		GuestCount:     booking.GuestCount,
		StatusName:     booking.Status.String(),
		Lines:          buildReceiptLines(lines, mealsByID),
		Subtotal:       booking.Subtotal,
		Tax:            booking.Tax,
		VenueSurcharge: booking.VenueSurcharge,
		TotalAmount:    booking.TotalAmount,
		Deposit:        booking.Deposit,
		Remaining:      booking.Remaining(),
		IssuedAt:       timezone.Now().Format(constant.DateFormat),
	}

	return res, nil
}

func (s *serviceImpl) KitchenSheet(ctx context.Context, date time.Time) (res model.KitchenSheet, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".KitchenSheet")
	defer scope.End()
	defer scope.TraceIfError(err)

	bookings, err := s.loadServiceableBookings(ctx, date)
	if err != nil {
		return res, err
	}

	res.Date = date.Format(constant.DateOnlyFormat)

	for _, booking := range bookings {
		lines, err := s.bookingRepo.GetLines(ctx, booking.ID)
		if err != nil {
			log.Error().Err(err).Msg("failed to get booking lines")

			return res, fmt.Errorf("failed to get booking lines: %w", err)
		}

		mealsByID, err := s.loadMeals(ctx, lines)
		if err != nil {
			return res, err
		}

		res.Orders = append(res.Orders, model.KitchenOrder{
			BookingID:  booking.ID,
			ClientName: booking.ClientName,
			VenueName:  booking.VenueName,
			EventTime:  booking.EventTime,
			GuestCount: booking.GuestCount,
			Lines:      buildReceiptLines(lines, mealsByID),
		})
	}

	return res, nil
}

func (s *serviceImpl) StationSheet(ctx context.Context, date time.Time) (res model.StationSheet, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".StationSheet")
	defer scope.End()
	defer scope.TraceIfError(err)

	bookings, err := s.loadServiceableBookings(ctx, date)
	if err != nil {
		return res, err
	}

	res.Date = date.Format(constant.DateOnlyFormat)

	type key struct {
		station string
		meal    string
	}

	quantities := make(map[key]int)

	for _, booking := range bookings {
		lines, err := s.bookingRepo.GetLines(ctx, booking.ID)
		if err != nil {
			log.Error().Err(err).Msg("failed to get booking lines")

			return res, fmt.Errorf("failed to get booking lines: %w", err)
		}

		mealsByID, err := s.loadMeals(ctx, lines)
		if err != nil {
			return res, err
		}

		for _, line := range lines {
			meal := mealsByID[line.MealID]
			quantities[key{station: meal.Station, meal: meal.Name}] += line.Quantity
		}
	}

	for k, qty := range quantities {
		res.Loads = append(res.Loads, model.StationLoad{
			Station:  k.station,
			MealName: k.meal,
			Quantity: qty,
		})
	}

	sort.Slice(res.Loads, func(i, j int) bool {
		if res.Loads[i].Station != res.Loads[j].Station {
			return res.Loads[i].Station < res.Loads[j].Station
		}

		return res.Loads[i].MealName < res.Loads[j].MealName
	})

	return res, nil
}

func (s *serviceImpl) DailySummary(ctx context.Context, date time.Time) (res model.DailySummary, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DailySummary")
	defer scope.End()
	defer scope.TraceIfError(err)

	bookings, err := s.loadBookingsForDate(ctx, date)
	if err != nil {
		return res, err
	}

	records := make([]analytics.Record, len(bookings))
	for i, booking := range bookings {
		records[i] = analytics.Record{Booking: booking, VenueName: booking.VenueName}
	}

	summary := analytics.Summarize(records)

	res.Date = date.Format(constant.DateOnlyFormat)
	res.Total = summary.Total
	res.TotalGuests = summary.TotalGuests
	res.Revenue = summary.Revenue
	res.Collected = summary.Collected

	for status := bookingModel.StatusPending; status <= bookingModel.StatusCancelledWithRefund; status++ {
		res.ByStatus = append(res.ByStatus, model.StatusCount{
			StatusName: status.String(),
			Count:      summary.ByStatus[status],
		})
	}

	for _, stat := range analytics.VenueStats(records) {
		res.ByVenue = append(res.ByVenue, model.VenueLoad{
			VenueName: stat.VenueName,
			Count:     stat.Count,
			Revenue:   stat.Revenue,
			Top:       stat.Top,
		})
	}

	return res, nil
}

func (s *serviceImpl) loadBookingsForDate(ctx context.Context, date time.Time) ([]bookingModel.Booking, error) {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    bookingModel.FieldEventDate,
				Operator: gDto.FilterOperatorEq,
				Value:    day,
				Table:    bookingModel.TableName,
			},
		},
	}

	bookings, err := s.bookingRepo.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to load bookings for date")

		return nil, fmt.Errorf("failed to load bookings for date: %w", err)
	}

	return bookings, nil
}

// loadServiceableBookings drops cancelled bookings; the kitchen reports only
// cover events that will actually happen.
func (s *serviceImpl) loadServiceableBookings(ctx context.Context, date time.Time) ([]bookingModel.Booking, error) {
	bookings, err := s.loadBookingsForDate(ctx, date)
	if err != nil {
		return nil, err
	}

	serviceable := make([]bookingModel.Booking, 0, len(bookings))

	for _, booking := range bookings {
		if booking.Status == bookingModel.StatusCancelled || booking.Status == bookingModel.StatusCancelledWithRefund {
			continue
		}

		serviceable = append(serviceable, booking)
	}

	return serviceable, nil
}

func (s *serviceImpl) loadMeals(ctx context.Context, lines []bookingModel.BookingMeal) (map[int64]mealModel.Meal, error) {
	if len(lines) == 0 {
		return map[int64]mealModel.Meal{}, nil
	}

	mealIDs := make([]int64, 0, len(lines))
	for _, line := range lines {
		mealIDs = append(mealIDs, line.MealID)
	}

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    mealModel.FieldID,
				Operator: gDto.FilterOperatorIn,
				Value:    mealIDs,
				Table:    mealModel.TableName,
			},
		},
	}

	meals, err := s.mealRepo.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to load meals")

		return nil, fmt.Errorf("failed to load meals: %w", err)
	}

	mealsByID := make(map[int64]mealModel.Meal, len(meals))
	for _, meal := range meals {
		mealsByID[meal.ID] = meal
	}

	return mealsByID, nil
}

func buildReceiptLines(lines []bookingModel.BookingMeal, mealsByID map[int64]mealModel.Meal) []model.ReceiptLine {
	receiptLines := make([]model.ReceiptLine, len(lines))

	for i, line := range lines {
		receiptLines[i] = model.ReceiptLine{
			MealName:  mealsByID[line.MealID].Name,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			LineTotal: line.LineTotal(),
		}
	}

	return receiptLines
}
