package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"dpbooking/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID             = "id"
	FieldClientName     = "client_name"
	FieldPhone          = "phone"
	FieldMobile         = "mobile"
	FieldBookingType    = "booking_type"
	FieldStatus         = "status"
	FieldVenueID        = "venue_id"
	FieldEventDate      = "event_date"
	FieldEventTime      = "event_time"
	FieldGuestCount     = "guest_count"
	FieldReceiptNumber  = "receipt_number"
	FieldDeposit        = "deposit"
	FieldSubtotal       = "subtotal"
	FieldTax            = "tax"
	FieldVenueSurcharge = "venue_surcharge"
	FieldTotalAmount    = "total_amount"
	FieldNotes          = "notes"

	LinesTableName  = "booking_meals"
	LinesEntityName = "booking_meal"

	FieldBookingID = "booking_id"
	FieldLineNo    = "line_no"
	FieldMealID    = "meal_id"
	FieldQuantity  = "quantity"
	FieldUnitPrice = "unit_price"
)

// BookingStatus is the lifecycle state of a booking.
type BookingStatus int

const (
	StatusPending             BookingStatus = 0
	StatusConfirmed           BookingStatus = 1
	StatusComplete            BookingStatus = 2
	StatusCancelled           BookingStatus = 3
	StatusPostponed           BookingStatus = 4
	StatusCancelledWithRefund BookingStatus = 5
)

var statusNames = map[BookingStatus]string{
	StatusPending:             "Pending",
	StatusConfirmed:           "Confirmed",
	StatusComplete:            "Complete",
	StatusCancelled:           "Cancelled",
	StatusPostponed:           "Postponed",
	StatusCancelledWithRefund: "CancelledWithRefund",
}

func (s BookingStatus) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}

	return fmt.Sprintf("BookingStatus(%d)", int(s))
}

func (s BookingStatus) Valid() bool {
	_, ok := statusNames[s]

	return ok
}

// ParseBookingStatus accepts either the numeric code or the status name,
// case-insensitively. Unknown values map to Pending.
func ParseBookingStatus(value any) BookingStatus {
	switch v := value.(type) {
	case nil:
		return StatusPending
	case float64:
		return normalizeStatus(BookingStatus(int(v)))
	case int:
		return normalizeStatus(BookingStatus(v))
	case int64:
		return normalizeStatus(BookingStatus(int(v)))
	case BookingStatus:
		return normalizeStatus(v)
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return normalizeStatus(BookingStatus(n))
		}

		for status, name := range statusNames {
			if strings.EqualFold(name, strings.TrimSpace(v)) {
				return status
			}
		}

		return StatusPending
	default:
		return StatusPending
	}
}

func normalizeStatus(s BookingStatus) BookingStatus {
	if s.Valid() {
		return s
	}

	return StatusPending
}

// LookupBookingStatus resolves a numeric code or status name without a
// fallback. The second return reports whether the value is a known status.
func LookupBookingStatus(value string) (BookingStatus, bool) {
	trimmed := strings.TrimSpace(value)

	if n, err := strconv.Atoi(trimmed); err == nil {
		status := BookingStatus(n)

		return status, status.Valid()
	}

	for status, name := range statusNames {
		if strings.EqualFold(name, trimmed) {
			return status, true
		}
	}

	return StatusPending, false
}

// BookingType classifies the occasion.
type BookingType int

const (
	TypeWedding       BookingType = 1
	TypeShipTrip      BookingType = 2
	TypeEngagement    BookingType = 3
	TypeBirthday      BookingType = 4
	TypeRamadanIftar  BookingType = 5
	TypeRamadanSuhoor BookingType = 6
	TypeGardenParty   BookingType = 7
	TypeConference    BookingType = 8
	TypeOther         BookingType = 9
)

var typeNames = map[BookingType]string{
	TypeWedding:       "Wedding",
	TypeShipTrip:      "ShipTrip",
	TypeEngagement:    "Engagement",
	TypeBirthday:      "Birthday",
	TypeRamadanIftar:  "RamadanIftar",
	TypeRamadanSuhoor: "RamadanSuhoor",
	TypeGardenParty:   "GardenParty",
	TypeConference:    "Conference",
	TypeOther:         "Other",
}

func (t BookingType) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}

	return fmt.Sprintf("BookingType(%d)", int(t))
}

func (t BookingType) Valid() bool {
	_, ok := typeNames[t]

	return ok
}

// ParseBookingType accepts either the numeric code or the type name,
// case-insensitively. Unknown values map to Other.
func ParseBookingType(value any) BookingType {
	switch v := value.(type) {
	case nil:
		return TypeOther
	case float64:
		return normalizeType(BookingType(int(v)))
	case int:
		return normalizeType(BookingType(v))
	case int64:
		return normalizeType(BookingType(int(v)))
	case BookingType:
		return normalizeType(v)
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return normalizeType(BookingType(n))
		}

		for typ, name := range typeNames {
			if strings.EqualFold(name, strings.TrimSpace(v)) {
				return typ
			}
		}

		return TypeOther
	default:
		return TypeOther
	}
}

func normalizeType(t BookingType) BookingType {
	if t.Valid() {
		return t
	}

	return TypeOther
}

// LookupBookingType resolves a numeric code or type name without a fallback.
// The second return reports whether the value is a known type.
func LookupBookingType(value string) (BookingType, bool) {
	trimmed := strings.TrimSpace(value)

	if n, err := strconv.Atoi(trimmed); err == nil {
		typ := BookingType(n)

		return typ, typ.Valid()
	}

	for typ, name := range typeNames {
		if strings.EqualFold(name, trimmed) {
			return typ, true
		}
	}

	return TypeOther, false
}

// StatusAction is a requested lifecycle transition.
type StatusAction string

const (
	ActionConfirm  StatusAction = "confirm"
	ActionCancel   StatusAction = "cancel"
	ActionPostpone StatusAction = "postpone"
	ActionRefund   StatusAction = "refund"
	ActionComplete StatusAction = "complete"
)

type transition struct {
	from []BookingStatus
	to   BookingStatus
}

var transitions = map[StatusAction]transition{
	ActionConfirm:  {from: []BookingStatus{StatusPending, StatusConfirmed}, to: StatusConfirmed},
	ActionCancel:   {from: []BookingStatus{StatusPending, StatusConfirmed, StatusPostponed}, to: StatusCancelled},
	ActionPostpone: {from: []BookingStatus{StatusPending, StatusConfirmed}, to: StatusPostponed},
	ActionRefund:   {from: []BookingStatus{StatusCancelled}, to: StatusCancelledWithRefund},
	ActionComplete: {from: []BookingStatus{StatusConfirmed}, to: StatusComplete},
}

// Transition applies the action to the current status. It returns the
// resulting status and whether the transition is allowed.
func Transition(current BookingStatus, action StatusAction) (BookingStatus, bool) {
	tr, ok := transitions[action]
	if !ok {
		return current, false
	}

	for _, from := range tr.from {
		if from == current {
			return tr.to, true
		}
	}

	return current, false
}

type Booking struct {
	ID             int64         `db:"id"`
	ClientName     string        `db:"client_name"`
	Phone          string        `db:"phone"`
	Mobile         string        `db:"mobile"`
	BookingType    BookingType   `db:"booking_type"`
	Status         BookingStatus `db:"status"`
	VenueID        int64         `db:"venue_id"`
	EventDate      time.Time     `db:"event_date"`
	EventTime      string        `db:"event_time"`
	GuestCount     int           `db:"guest_count"`
	ReceiptNumber  string        `db:"receipt_number"`
	Deposit        float64       `db:"deposit"`
	Subtotal       float64       `db:"subtotal"`
	Tax            float64       `db:"tax"`
	VenueSurcharge float64       `db:"venue_surcharge"`
	TotalAmount    float64       `db:"total_amount"`
	Notes          string        `db:"notes"`
	VenueName      string        `db:"venue_name" table:"venues" column:"name"`
	model.Metadata
}

func (Booking) GetJoinQuery() string {
	return "LEFT JOIN venues ON venues.id = bookings.venue_id"
}

// Remaining is the outstanding balance, clamped so overpaid deposits never
// show a negative figure.
func (b Booking) Remaining() float64 {
	remaining := b.TotalAmount - b.Deposit
	if remaining < 0 {
		return 0
	}

	return remaining
}

type BookingMeal struct {
	BookingID int64   `db:"booking_id"`
	LineNo    int     `db:"line_no"`
	MealID    int64   `db:"meal_id"`
	Quantity  int     `db:"quantity"`
	UnitPrice float64 `db:"unit_price"`
	model.Metadata
}

func (m BookingMeal) LineTotal() float64 {
	return float64(m.Quantity) * m.UnitPrice
}

// FlexibleEnum decodes a JSON value that may arrive as either a number or a
// name string.
type FlexibleEnum struct {
	raw any
}

func (f *FlexibleEnum) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("failed to decode enum value: %w", err)
	}

	f.raw = v

	return nil
}

func (f FlexibleEnum) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.raw) // nolint:wrapcheck
}

func (f FlexibleEnum) IsSet() bool {
	return f.raw != nil
}

func (f FlexibleEnum) Status() BookingStatus {
	return ParseBookingStatus(f.raw)
}

func (f FlexibleEnum) Type() BookingType {
	return ParseBookingType(f.raw)
}
