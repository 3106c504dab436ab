package service_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"dpbooking/infras/otel/mocks"
	bookingMocks "dpbooking/internal/domains/booking/mocks"
	bookingModel "dpbooking/internal/domains/booking/model"
	mealMocks "dpbooking/internal/domains/meal/mocks"
	mealModel "dpbooking/internal/domains/meal/model"
	"dpbooking/internal/domains/report/service"
	"dpbooking/shared/failure"
)

func eventDay() time.Time {
	return time.Date(2026, time.October, 20, 0, 0, 0, 0, time.UTC)
}

func confirmedBooking() bookingModel.Booking {
	return bookingModel.Booking{
		ID:             7,
		ClientName:     "Sara Ahmed",
		Phone:          "01012345678",
		Status:         bookingModel.StatusConfirmed,
		BookingType:    bookingModel.TypeWedding,
		VenueID:        3,
		VenueName:      "Grand Hall",
		EventDate:      eventDay(),
		EventTime:      "18:00",
		GuestCount:     120,
		ReceiptNumber:  "R-1001",
		Subtotal:       480,
		Tax:            57.6,
		VenueSurcharge: 500,
		TotalAmount:    1037.6,
		Deposit:        200,
	}
}

func bookingLines() []bookingModel.BookingMeal {
	return []bookingModel.BookingMeal{
		{BookingID: 7, LineNo: 1, MealID: 1, Quantity: 2, UnitPrice: 150},
		{BookingID: 7, LineNo: 2, MealID: 2, Quantity: 1, UnitPrice: 180},
	}
}

func lineMeals() []mealModel.Meal {
	return []mealModel.Meal{
		{ID: 1, Name: "Grilled Chicken", Price: 150, Station: "grill", IsActive: true},
		{ID: 2, Name: "Beef Kofta", Price: 180, Station: "grill", IsActive: true},
	}
}

func TestReportService_Receipt(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockBookingRepo := bookingMocks.NewMockBooking(ctrl)
	mockMealRepo := mealMocks.NewMockMeal(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockBookingRepo, mockMealRepo, mockOtel)

	t.Run("successful receipt", func(t *testing.T) {
		mockBookingRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(confirmedBooking(), nil)

		mockBookingRepo.EXPECT().
			GetLines(gomock.Any(), int64(7)).
			Return(bookingLines(), nil)

		mockMealRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(lineMeals(), nil)

		receipt, err := svc.Receipt(context.Background(), 7)

		assert.NoError(t, err)
		assert.Equal(t, "R-1001", receipt.ReceiptNumber)
		assert.Equal(t, "2026-10-20", receipt.EventDate)
		assert.Equal(t, "Confirmed", receipt.StatusName)
		assert.InDelta(t, 837.6, receipt.Remaining, 1e-9)

		if assert.Len(t, receipt.Lines, 2) {
			assert.Equal(t, "Grilled Chicken", receipt.Lines[0].MealName)
			assert.InDelta(t, 300.0, receipt.Lines[0].LineTotal, 1e-9)
		}
	})

	t.Run("booking not found", func(t *testing.T) {
		mockBookingRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(bookingModel.Booking{}, nil)

		_, err := svc.Receipt(context.Background(), 999)

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestReportService_KitchenSheet(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockBookingRepo := bookingMocks.NewMockBooking(ctrl)
	mockMealRepo := mealMocks.NewMockMeal(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockBookingRepo, mockMealRepo, mockOtel)

	cancelled := confirmedBooking()
	cancelled.ID = 8
	cancelled.Status = bookingModel.StatusCancelled

	mockBookingRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]bookingModel.Booking{confirmedBooking(), cancelled}, nil)

	// only the confirmed booking reaches the kitchen
	mockBookingRepo.EXPECT().
		GetLines(gomock.Any(), int64(7)).
		Return(bookingLines(), nil)

	mockMealRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(lineMeals(), nil)

	sheet, err := svc.KitchenSheet(context.Background(), eventDay())

	assert.NoError(t, err)
	assert.Equal(t, "2026-10-20", sheet.Date)

	if assert.Len(t, sheet.Orders, 1) {
		assert.Equal(t, int64(7), sheet.Orders[0].BookingID)
		assert.Equal(t, "18:00", sheet.Orders[0].EventTime)
		assert.Len(t, sheet.Orders[0].Lines, 2)
	}
}

func TestReportService_StationSheet(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockBookingRepo := bookingMocks.NewMockBooking(ctrl)
	mockMealRepo := mealMocks.NewMockMeal(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockBookingRepo, mockMealRepo, mockOtel)

	second := confirmedBooking()
	second.ID = 9

	mockBookingRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]bookingModel.Booking{confirmedBooking(), second}, nil)

	mockBookingRepo.EXPECT().
		GetLines(gomock.Any(), int64(7)).
		Return(bookingLines(), nil)

	mockBookingRepo.EXPECT().
		GetLines(gomock.Any(), int64(9)).
		Return([]bookingModel.BookingMeal{
			{BookingID: 9, LineNo: 1, MealID: 1, Quantity: 3, UnitPrice: 150},
		}, nil)

	mockMealRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(lineMeals(), nil).
		Times(2)

	sheet, err := svc.StationSheet(context.Background(), eventDay())

	assert.NoError(t, err)

	// quantities aggregate across bookings, sorted by station then meal
	if assert.Len(t, sheet.Loads, 2) {
		assert.Equal(t, "Beef Kofta", sheet.Loads[0].MealName)
		assert.Equal(t, 1, sheet.Loads[0].Quantity)
		assert.Equal(t, "Grilled Chicken", sheet.Loads[1].MealName)
		assert.Equal(t, 5, sheet.Loads[1].Quantity)
	}
}

func TestReportService_DailySummary(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockBookingRepo := bookingMocks.NewMockBooking(ctrl)
	mockMealRepo := mealMocks.NewMockMeal(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockBookingRepo, mockMealRepo, mockOtel)

	cancelled := confirmedBooking()
	cancelled.ID = 8
	cancelled.Status = bookingModel.StatusCancelled
	cancelled.VenueID = 8
	cancelled.VenueName = "Garden Terrace"
	cancelled.TotalAmount = 500
	cancelled.Deposit = 100
	cancelled.GuestCount = 30

	mockBookingRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]bookingModel.Booking{confirmedBooking(), cancelled}, nil)

	summary, err := svc.DailySummary(context.Background(), eventDay())

	assert.NoError(t, err)
	assert.Equal(t, "2026-10-20", summary.Date)
	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, 150, summary.TotalGuests)
	assert.InDelta(t, 1537.6, summary.Revenue, 1e-9)
	assert.InDelta(t, 300.0, summary.Collected, 1e-9)

	// one row per status, in code order
	if assert.Len(t, summary.ByStatus, 6) {
		assert.Equal(t, "Pending", summary.ByStatus[0].StatusName)
		assert.Equal(t, 1, summary.ByStatus[1].Count)
		assert.Equal(t, 1, summary.ByStatus[3].Count)
	}

	// equal counts tie-break alphabetically
	if assert.Len(t, summary.ByVenue, 2) {
		assert.Equal(t, "Garden Terrace", summary.ByVenue[0].VenueName)
		assert.True(t, summary.ByVenue[0].Top)
	}
}
