package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"dpbooking/config"
	"dpbooking/infras/otel/mocks"
	bookingMocks "dpbooking/internal/domains/booking/mocks"
	"dpbooking/internal/domains/booking/model"
	"dpbooking/internal/domains/booking/model/dto"
	"dpbooking/internal/domains/booking/service"
	mealMocks "dpbooking/internal/domains/meal/mocks"
	mealModel "dpbooking/internal/domains/meal/model"
	venueMocks "dpbooking/internal/domains/venue/mocks"
	venueModel "dpbooking/internal/domains/venue/model"
	cacheMocks "dpbooking/shared/cache/mocks"
	"dpbooking/shared/constant"
	gDto "dpbooking/shared/dto"
	"dpbooking/shared/failure"
	"dpbooking/shared/timezone"
)

func newConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.TaxRate = 0.12
	cfg.App.SpecialPriceVenueID = 8
	cfg.Cache.TTL = 3600

	return cfg
}

func activeVenue() venueModel.Venue {
	return venueModel.Venue{
		ID:        3,
		Name:      "Grand Hall",
		Capacity:  300,
		Surcharge: 500,
		IsActive:  true,
	}
}

func mealCatalog() []mealModel.Meal {
	return []mealModel.Meal{
		{ID: 1, Name: "Grilled Chicken", Price: 150, SpecialPrice: 0, Station: "grill", IsActive: true},
		{ID: 2, Name: "Beef Kofta", Price: 180, SpecialPrice: 120, Station: "grill", IsActive: true},
	}
}

func TestBookingService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockVenueRepo := venueMocks.NewMockVenue(ctrl)
	mockMealRepo := mealMocks.NewMockMeal(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockRepo, mockVenueRepo, mockMealRepo, newConfig(), mockCache, mockOtel)

	validReq := dto.CreateBookingRequest{
		ClientName:    "Sara Ahmed",
		Phone:         "01012345678",
		VenueID:       3,
		EventDate:     "2026-10-20",
		ReceiptNumber: "R-1001",
		GuestCount:    120,
		Deposit:       1000,
	}

	tests := []struct {
		name      string
		req       dto.CreateBookingRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful creation",
			req:  validReq,
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				mockVenueRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activeVenue(), nil)

				mockMealRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(mealCatalog(), nil)

				mockRepo.EXPECT().
					CreateWithLines(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(int64(1), nil)

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "receipt number already used",
			req:  validReq,
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "venue not found",
			req:  validReq,
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				mockVenueRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(venueModel.Venue{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "inactive venue",
			req:  validReq,
			setupMock: func() {
				venue := activeVenue()
				venue.IsActive = false

				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				mockVenueRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(venue, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "unknown meal in request",
			req: dto.CreateBookingRequest{
				ClientName:    "Sara Ahmed",
				VenueID:       3,
				EventDate:     "2026-10-20",
				ReceiptNumber: "R-1002",
				Meals:         []dto.BookingLineRequest{{MealID: 99, Quantity: 2}},
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				mockVenueRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activeVenue(), nil)

				mockMealRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(mealCatalog(), nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "repository error",
			req:  validReq,
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				mockVenueRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activeVenue(), nil)

				mockMealRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(mealCatalog(), nil)

				mockRepo.EXPECT().
					CreateWithLines(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(int64(0), errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserName, "test-user")
			id, err := svc.Create(ctx, tt.req)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
				assert.Equal(t, int64(1), id)
			}
		})
	}
}

func TestBookingService_Quote(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockVenueRepo := venueMocks.NewMockVenue(ctrl)
	mockMealRepo := mealMocks.NewMockMeal(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockRepo, mockVenueRepo, mockMealRepo, newConfig(), mockCache, mockOtel)

	mockVenueRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(activeVenue(), nil)

	// once for the catalog, once for the line names
	mockMealRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(mealCatalog(), nil).
		Times(2)

	req := dto.CreateBookingRequest{
		ClientName:    "Omar Farouk",
		VenueID:       3,
		EventDate:     "2026-11-05",
		ReceiptNumber: "R-2001",
		Deposit:       200,
		Meals: []dto.BookingLineRequest{
			{MealID: 1, Quantity: 2},
			{MealID: 2, Quantity: 1},
		},
	}

	res, err := svc.Quote(context.Background(), req)

	assert.NoError(t, err)

	// 2 x 150 + 1 x 180, taxed at 12%, plus the venue surcharge
	assert.InDelta(t, 480.0, res.Subtotal, 1e-9)
	assert.InDelta(t, 57.6, res.Tax, 1e-9)
	assert.InDelta(t, 500.0, res.VenueSurcharge, 1e-9)
	assert.InDelta(t, 1037.6, res.TotalAmount, 1e-9)
	assert.InDelta(t, 837.6, res.Remaining, 1e-9)

	if assert.Len(t, res.Lines, 2) {
		assert.Equal(t, "Grilled Chicken", res.Lines[0].MealName)
		assert.InDelta(t, 300.0, res.Lines[0].LineTotal, 1e-9)
	}
}

func TestBookingService_QuoteVenuePriceOverride(t *testing.T) {
	quote := func(t *testing.T, venuePrice *float64) dto.QuoteResponse {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockRepo := bookingMocks.NewMockBooking(ctrl)
		mockVenueRepo := venueMocks.NewMockVenue(ctrl)
		mockMealRepo := mealMocks.NewMockMeal(ctrl)
		mockCache := cacheMocks.NewMockRedisCache(ctrl)
		mockOtel := mocks.NewOtel()

		svc := service.New(mockRepo, mockVenueRepo, mockMealRepo, newConfig(), mockCache, mockOtel)

		mockVenueRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(activeVenue(), nil)

		mockMealRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(mealCatalog(), nil).
			Times(2)

		res, err := svc.Quote(context.Background(), dto.CreateBookingRequest{
			ClientName:    "Omar Farouk",
			Phone:         "01012345678",
			VenueID:       3,
			EventDate:     "2026-11-05",
			GuestCount:    80,
			ReceiptNumber: "R-2002",
			VenuePrice:    venuePrice,
			Meals: []dto.BookingLineRequest{
				{MealID: 1, Quantity: 2},
			},
		})
		assert.NoError(t, err)

		return res
	}

	t.Run("override replaces the venue catalog surcharge", func(t *testing.T) {
		price := 120.0
		res := quote(t, &price)

		assert.InDelta(t, 120.0, res.VenueSurcharge, 1e-9)
		assert.InDelta(t, 456.0, res.TotalAmount, 1e-9) // 300 + 36 tax + 120
	})

	t.Run("explicit zero means no surcharge", func(t *testing.T) {
		price := 0.0
		res := quote(t, &price)

		assert.InDelta(t, 0.0, res.VenueSurcharge, 1e-9)
		assert.InDelta(t, 336.0, res.TotalAmount, 1e-9)
	})

	t.Run("absent override keeps the venue surcharge", func(t *testing.T) {
		res := quote(t, nil)

		assert.InDelta(t, 500.0, res.VenueSurcharge, 1e-9)
		assert.InDelta(t, 836.0, res.TotalAmount, 1e-9)
	})
}

func TestBookingService_Stats(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockVenueRepo := venueMocks.NewMockVenue(ctrl)
	mockMealRepo := mealMocks.NewMockMeal(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockRepo, mockVenueRepo, mockMealRepo, newConfig(), mockCache, mockOtel)

	mockRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.Booking{
			{ID: 1, Status: model.StatusConfirmed, VenueID: 3, VenueName: "Grand Hall", GuestCount: 120, TotalAmount: 1037.6, Deposit: 200},
			{ID: 2, Status: model.StatusConfirmed, VenueID: 3, VenueName: "Grand Hall", GuestCount: 80, TotalAmount: 500, Deposit: 500},
			{ID: 3, Status: model.StatusPending, VenueID: 8, VenueName: "Garden Terrace", GuestCount: 50, TotalAmount: 300, Deposit: 0},
		}, nil)

	res, err := svc.Stats(context.Background(), dto.ListCriteria{})

	assert.NoError(t, err)
	assert.Equal(t, 3, res.Total)
	assert.Equal(t, 250, res.TotalGuests)
	assert.InDelta(t, 1837.6, res.Revenue, 1e-9)
	assert.InDelta(t, 700.0, res.Collected, 1e-9)
	assert.InDelta(t, 1137.6, res.Remaining, 1e-9)

	assert.Len(t, res.ByStatus, 6)
	assert.Equal(t, 2, res.ByStatus[int(model.StatusConfirmed)].Count)

	if assert.Len(t, res.ByVenue, 2) {
		assert.Equal(t, "Grand Hall", res.ByVenue[0].VenueName)
		assert.Equal(t, 2, res.ByVenue[0].Count)
		assert.InDelta(t, 1537.6, res.ByVenue[0].Revenue, 1e-9)
		assert.True(t, res.ByVenue[0].Top)
		assert.False(t, res.ByVenue[1].Top)
	}
}

func TestBookingService_GetAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockVenueRepo := venueMocks.NewMockVenue(ctrl)
	mockMealRepo := mealMocks.NewMockMeal(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockRepo, mockVenueRepo, mockMealRepo, newConfig(), mockCache, mockOtel)

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		wantTotal int
	}{
		{
			name: "cache miss, successful get from db",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(1, nil)

				mockRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Booking{{ID: 7, ClientName: "Sara Ahmed", VenueID: 3, VenueName: "Grand Hall"}}, nil)

				mockRepo.EXPECT().
					GetLinesForBookings(gomock.Any(), []int64{7}).
					Return([]model.BookingMeal{}, nil)

				mockCache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr:   false,
			wantTotal: 1,
		},
		{
			name: "count error",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(0, errors.New("count error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			result, err := svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, dto.ListCriteria{})

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantTotal, result.TotalData)
				assert.Equal(t, []int{1}, result.PageWindow)
			}
		})
	}
}

func TestBookingService_UpdateStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockVenueRepo := venueMocks.NewMockVenue(ctrl)
	mockMealRepo := mealMocks.NewMockMeal(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockRepo, mockVenueRepo, mockMealRepo, newConfig(), mockCache, mockOtel)

	pendingBooking := model.Booking{
		ID:         7,
		ClientName: "Sara Ahmed",
		Status:     model.StatusPending,
		VenueID:    3,
		VenueName:  "Grand Hall",
		EventDate:  timezone.Now().AddDate(0, 1, 0),
	}

	futureDate := timezone.Now().AddDate(0, 0, 7).Format(constant.DateOnlyFormat)
	pastDate := timezone.Now().AddDate(0, 0, -7).Format(constant.DateOnlyFormat)

	expectSuccessfulUpdate := func() {
		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		// reload for the response
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(pendingBooking, nil)

		mockRepo.EXPECT().
			GetLines(gomock.Any(), int64(7)).
			Return([]model.BookingMeal{}, nil)

		mockCache.EXPECT().
			Delete(gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		mockCache.EXPECT().
			Clear(gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()
	}

	tests := []struct {
		name      string
		req       dto.UpdateStatusRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "confirm a pending booking",
			req:  dto.UpdateStatusRequest{Action: model.ActionConfirm},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pendingBooking, nil)

				expectSuccessfulUpdate()
			},
			wantErr: false,
		},
		{
			name: "postpone with a future date",
			req:  dto.UpdateStatusRequest{Action: model.ActionPostpone, NewDate: futureDate},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pendingBooking, nil)

				expectSuccessfulUpdate()
			},
			wantErr: false,
		},
		{
			name: "cannot complete a pending booking",
			req:  dto.UpdateStatusRequest{Action: model.ActionComplete},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pendingBooking, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "postpone without a new date",
			req:  dto.UpdateStatusRequest{Action: model.ActionPostpone},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pendingBooking, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "postpone to a past date",
			req:  dto.UpdateStatusRequest{Action: model.ActionPostpone, NewDate: pastDate},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pendingBooking, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "booking not found",
			req:  dto.UpdateStatusRequest{Action: model.ActionConfirm},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserName, "test-user")
			result, err := svc.UpdateStatus(ctx, tt.req, 7)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
				assert.Equal(t, int64(7), result.ID)
			}
		})
	}
}

func TestBookingService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockVenueRepo := venueMocks.NewMockVenue(ctrl)
	mockMealRepo := mealMocks.NewMockMeal(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockRepo, mockVenueRepo, mockMealRepo, newConfig(), mockCache, mockOtel)

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful deletion",
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockRepo.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil)

				mockCache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "booking not found",
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Delete(context.Background(), 7)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
