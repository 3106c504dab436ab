package dto

import (
	"time"

	"dpbooking/internal/domains/booking/model"
	"dpbooking/internal/domains/booking/pricing"
	"dpbooking/shared"
	"dpbooking/shared/constant"
	gDto "dpbooking/shared/dto"
	gModel "dpbooking/shared/model"
	"dpbooking/shared/timezone"
)

type BookingLineRequest struct {
	MealID   int64 `json:"mealId"   validate:"required,min=1"`
	Quantity int   `json:"quantity" validate:"omitempty,min=0"`
}

type CreateBookingRequest struct {
	ClientName    string             `json:"clientName"    validate:"required,max=128"`
	Phone         string             `json:"phone"         validate:"required,phone"`
	Mobile        string             `json:"mobile"        validate:"omitempty,phone"`
	BookingType   model.FlexibleEnum `json:"bookingType"   validate:"omitempty"`
	VenueID       int64              `json:"venueId"       validate:"required,min=1"`
	EventDate     string             `json:"eventDate"     validate:"required,datetime=2006-01-02"`
	EventTime     string             `json:"eventTime"     validate:"omitempty,datetime=15:04"`
	GuestCount    int                `json:"guestCount"    validate:"required,min=1"`
	ReceiptNumber string             `json:"receiptNumber" validate:"required,max=64"`
	Deposit       float64            `json:"deposit"       validate:"omitempty,min=0"`
	// VenuePrice overrides the venue catalog surcharge for this booking.
	// Zero means no surcharge; absent means use the venue's own.
	VenuePrice *float64             `json:"venuePrice"    validate:"omitempty,min=0"`
	Notes      string               `json:"notes"         validate:"omitempty,max=2000"`
	Meals      []BookingLineRequest `json:"meals"         validate:"omitempty,dive"`
}

// ToModel builds the booking row. Lines and money are resolved by the
// service; only the descriptive fields come from the request.
func (c *CreateBookingRequest) ToModel(user string) model.Booking {
	eventDate, _ := timezone.Parse(constant.DateOnlyFormat, c.EventDate)

	return model.Booking{
		ClientName:    c.ClientName,
		Phone:         c.Phone,
		Mobile:        c.Mobile,
		BookingType:   c.BookingType.Type(),
		Status:        model.StatusPending,
		VenueID:       c.VenueID,
		EventDate:     eventDate,
		EventTime:     c.EventTime,
		GuestCount:    c.GuestCount,
		ReceiptNumber: c.ReceiptNumber,
		Deposit:       c.Deposit,
		Notes:         c.Notes,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateBookingRequest struct {
	ClientName  string               `db:"client_name" json:"clientName" validate:"omitempty,max=128"`
	Phone       *string              `db:"phone"       json:"phone"      validate:"omitempty,phone"`
	Mobile      *string              `db:"mobile"      json:"mobile"     validate:"omitempty,phone"`
	BookingType *model.FlexibleEnum  `json:"bookingType" validate:"omitempty"`
	VenueID     *int64               `json:"venueId"     validate:"omitempty,min=1"`
	EventDate   *string              `json:"eventDate"   validate:"omitempty,datetime=2006-01-02"`
	EventTime   *string              `db:"event_time"  json:"eventTime"  validate:"omitempty,datetime=15:04"`
	GuestCount  *int                 `db:"guest_count" json:"guestCount" validate:"omitempty,min=1"`
	Deposit     *float64             `db:"deposit"     json:"deposit"    validate:"omitempty,min=0"`
	VenuePrice  *float64             `json:"venuePrice" validate:"omitempty,min=0"`
	Notes       *string              `db:"notes"       json:"notes"      validate:"omitempty,max=2000"`
	Meals       []BookingLineRequest `json:"meals"    validate:"omitempty,dive"`
}

type UpdateStatusRequest struct {
	Action  model.StatusAction `json:"action"  validate:"required,oneof=confirm cancel postpone refund complete"`
	NewDate string             `json:"newDate" validate:"omitempty,datetime=2006-01-02"`
}

type BookingLineResponse struct {
	MealID    int64   `json:"mealId"`
	MealName  string  `json:"mealName"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
	LineTotal float64 `json:"lineTotal"`
}

type BookingResponse struct {
	ID              int64                 `json:"id"`
	ClientName      string                `json:"clientName"`
	Phone           string                `json:"phone"`
	Mobile          string                `json:"mobile"`
	BookingType     int                   `json:"bookingType"`
	BookingTypeName string                `json:"bookingTypeName"`
	Status          int                   `json:"status"`
	StatusName      string                `json:"statusName"`
	VenueID         int64                 `json:"venueId"`
	VenueName       string                `json:"venueName"`
	EventDate       string                `json:"eventDate"`
	EventTime       string                `json:"eventTime"`
	GuestCount      int                   `json:"guestCount"`
	ReceiptNumber   string                `json:"receiptNumber"`
	Meals           []BookingLineResponse `json:"meals"`
	Subtotal        float64               `json:"subtotal"`
	Tax             float64               `json:"tax"`
	VenueSurcharge  float64               `json:"venueSurcharge"`
	TotalAmount     float64               `json:"totalAmount"`
	Deposit         float64               `json:"deposit"`
	Remaining       float64               `json:"remaining"`
	Notes           string                `json:"notes"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(booking model.Booking, venueName string, lines []BookingLineResponse) {
	r.ID = booking.ID
	r.ClientName = booking.ClientName
	r.Phone = booking.Phone
	r.Mobile = booking.Mobile
	r.BookingType = int(booking.BookingType)
	r.BookingTypeName = booking.BookingType.String()
	r.Status = int(booking.Status)
	r.StatusName = booking.Status.String()
	r.VenueID = booking.VenueID
	r.VenueName = venueName
	r.EventDate = booking.EventDate.Format(constant.DateOnlyFormat)
	r.EventTime = booking.EventTime
	r.GuestCount = booking.GuestCount
	r.ReceiptNumber = booking.ReceiptNumber
	r.Meals = lines
	r.Subtotal = booking.Subtotal
	r.Tax = booking.Tax
	r.VenueSurcharge = booking.VenueSurcharge
	r.TotalAmount = booking.TotalAmount
	r.Deposit = booking.Deposit
	r.Remaining = booking.Remaining()
	r.Notes = booking.Notes
	r.Metadata.FromModel(booking.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
	Page      int               `json:"page"`
	// PageWindow lists the page numbers a client should render around
	// the current page.
	PageWindow []int `json:"page_window"`
}

func (r *GetBookingsResponse) Finalize(totalData int, params gDto.QueryParams, window []int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, params.Limit)
	r.Page = params.Page
	r.PageWindow = window
}

// QuoteResponse previews totals for an unsaved booking.
type QuoteResponse struct {
	Lines          []BookingLineResponse `json:"lines"`
	Subtotal       float64               `json:"subtotal"`
	Tax            float64               `json:"tax"`
	VenueSurcharge float64               `json:"venueSurcharge"`
	TotalAmount    float64               `json:"totalAmount"`
	Remaining      float64               `json:"remaining"`
}

func (r *QuoteResponse) FromTotals(totals pricing.Totals, lines []BookingLineResponse) {
	r.Lines = lines
	r.Subtotal = totals.Subtotal
	r.Tax = totals.Tax
	r.VenueSurcharge = totals.Surcharge
	r.TotalAmount = totals.GrandTotal
	r.Remaining = totals.Remaining
}

type StatusCountResponse struct {
	Status     int    `json:"status"`
	StatusName string `json:"statusName"`
	Count      int    `json:"count"`
}

type StatsResponse struct {
	Total       int                   `json:"total"`
	ByStatus    []StatusCountResponse `json:"byStatus"`
	ByVenue     []VenueStatResponse   `json:"byVenue"`
	TotalGuests int                   `json:"totalGuests"`
	Revenue     float64               `json:"revenue"`
	Collected   float64               `json:"collected"`
	Remaining   float64               `json:"remaining"`
}

type VenueStatResponse struct {
	VenueID   int64   `json:"venueId"`
	VenueName string  `json:"venueName"`
	Count     int     `json:"count"`
	Revenue   float64 `json:"revenue"`
	Top       bool    `json:"top"`
}

type CalendarDayResponse struct {
	Date     string            `json:"date"`
	Bookings []BookingResponse `json:"bookings"`
}

type CalendarResponse struct {
	Month      string                `json:"month"`
	Days       []CalendarDayResponse `json:"days"`
	VenueStats []VenueStatResponse   `json:"venueStats"`
}

// ListCriteria is the decoded query string of the booking listing.
type ListCriteria struct {
	Search   string
	Type     *int
	Status   *int
	VenueID  int64
	Date     *time.Time
	DateFrom *time.Time
	DateTo   *time.Time
}
