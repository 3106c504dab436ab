package dto_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"dpbooking/internal/domains/booking/model"
	"dpbooking/internal/domains/booking/model/dto"
	"dpbooking/internal/domains/booking/pricing"
	gDto "dpbooking/shared/dto"
	"dpbooking/shared/failure"
	"dpbooking/shared/timezone"
	"dpbooking/shared/validator"
)

func TestCreateBookingRequest_ToModel(t *testing.T) {
	var req dto.CreateBookingRequest

	err := json.Unmarshal([]byte(`{
		"clientName": "Sara Ahmed",
		"phone": "01012345678",
		"bookingType": "Wedding",
		"venueId": 3,
		"eventDate": "2026-10-20",
		"eventTime": "18:00",
		"guestCount": 120,
		"receiptNumber": "R-1001",
		"deposit": 1000
	}`), &req)
	assert.NoError(t, err)

	booking := req.ToModel("admin")

	assert.Equal(t, "Sara Ahmed", booking.ClientName)
	assert.Equal(t, model.TypeWedding, booking.BookingType)
	assert.Equal(t, model.StatusPending, booking.Status)
	assert.Equal(t, int64(3), booking.VenueID)
	assert.Equal(t, "2026-10-20", booking.EventDate.Format("2006-01-02"))
	assert.Equal(t, "admin", booking.CreatedBy)
	assert.Equal(t, "admin", booking.ModifiedBy)
}

func TestCreateBookingRequest_ToModelNumericType(t *testing.T) {
	var req dto.CreateBookingRequest

	err := json.Unmarshal([]byte(`{
		"clientName": "Omar Farouk",
		"venueId": 3,
		"eventDate": "2026-11-05",
		"receiptNumber": "R-2001",
		"bookingType": 3
	}`), &req)
	assert.NoError(t, err)

	booking := req.ToModel("staff")

	assert.Equal(t, model.TypeEngagement, booking.BookingType)
}

func TestCreateBookingRequest_Validation(t *testing.T) {
	base := `{
		"clientName": "Sara Ahmed",
		"phone": "01012345678",
		"venueId": 3,
		"eventDate": "2026-10-20",
		"guestCount": 120,
		"receiptNumber": "R-1001"
	}`

	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "valid request", body: base},
		{
			name:    "missing phone",
			body:    `{"clientName":"Sara Ahmed","venueId":3,"eventDate":"2026-10-20","guestCount":120,"receiptNumber":"R-1001"}`,
			wantErr: true,
		},
		{
			name:    "malformed phone",
			body:    `{"clientName":"Sara Ahmed","phone":"not-a-phone","venueId":3,"eventDate":"2026-10-20","guestCount":120,"receiptNumber":"R-1001"}`,
			wantErr: true,
		},
		{
			name:    "zero guests",
			body:    `{"clientName":"Sara Ahmed","phone":"01012345678","venueId":3,"eventDate":"2026-10-20","guestCount":0,"receiptNumber":"R-1001"}`,
			wantErr: true,
		},
		{
			name:    "optional mobile must still be a phone",
			body:    `{"clientName":"Sara Ahmed","phone":"01012345678","mobile":"12345","venueId":3,"eventDate":"2026-10-20","guestCount":120,"receiptNumber":"R-1001"}`,
			wantErr: true,
		},
		{
			name:    "negative venue price",
			body:    `{"clientName":"Sara Ahmed","phone":"01012345678","venueId":3,"eventDate":"2026-10-20","guestCount":120,"receiptNumber":"R-1001","venuePrice":-1}`,
			wantErr: true,
		},
		{
			name: "zero venue price means no surcharge",
			body: `{"clientName":"Sara Ahmed","phone":"01012345678","venueId":3,"eventDate":"2026-10-20","guestCount":120,"receiptNumber":"R-1001","venuePrice":0}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req dto.CreateBookingRequest
			err := validator.Validate(strings.NewReader(tt.body), &req)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, 400, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBookingResponse_FromModel(t *testing.T) {
	booking := model.Booking{
		ID:          7,
		ClientName:  "Sara Ahmed",
		BookingType: model.TypeWedding,
		Status:      model.StatusConfirmed,
		VenueID:     3,
		EventDate:   timezone.Now(),
		TotalAmount: 1037.6,
		Deposit:     200,
	}

	lines := []dto.BookingLineResponse{
		{MealID: 1, MealName: "Grilled Chicken", Quantity: 2, UnitPrice: 150, LineTotal: 300},
	}

	var res dto.BookingResponse
	res.FromModel(booking, "Grand Hall", lines)

	assert.Equal(t, int64(7), res.ID)
	assert.Equal(t, "Wedding", res.BookingTypeName)
	assert.Equal(t, "Confirmed", res.StatusName)
	assert.Equal(t, "Grand Hall", res.VenueName)
	assert.InDelta(t, 837.6, res.Remaining, 1e-9)
	assert.Len(t, res.Meals, 1)
}

func TestGetBookingsResponse_Finalize(t *testing.T) {
	var res dto.GetBookingsResponse
	res.Finalize(25, gDto.QueryParams{Page: 2, Limit: 10}, []int{1, 2, 3})

	assert.Equal(t, 25, res.TotalData)
	assert.Equal(t, 3, res.TotalPage)
	assert.Equal(t, 2, res.Page)
	assert.Equal(t, []int{1, 2, 3}, res.PageWindow)
}

func TestQuoteResponse_FromTotals(t *testing.T) {
	totals := pricing.Totals{
		Subtotal:   480,
		Tax:        57.6,
		Surcharge:  500,
		GrandTotal: 1037.6,
		Remaining:  837.6,
	}

	lines := []dto.BookingLineResponse{
		{MealID: 1, MealName: "Grilled Chicken", Quantity: 2, UnitPrice: 150, LineTotal: 300},
	}

	var res dto.QuoteResponse
	res.FromTotals(totals, lines)

	assert.InDelta(t, 480.0, res.Subtotal, 1e-9)
	assert.InDelta(t, 57.6, res.Tax, 1e-9)
	assert.InDelta(t, 500.0, res.VenueSurcharge, 1e-9)
	assert.InDelta(t, 1037.6, res.TotalAmount, 1e-9)
	assert.InDelta(t, 837.6, res.Remaining, 1e-9)
	assert.Len(t, res.Lines, 1)
}
