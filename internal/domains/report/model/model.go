// Package model defines the printable report documents. They are plain JSON
// payloads; rendering is the client's job.
package model

type ReceiptLine struct {
	MealName  string  `json:"mealName"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
	LineTotal float64 `json:"lineTotal"`
}

type Receipt struct {
	BookingID      int64         `json:"bookingId"`
	ReceiptNumber  string        `json:"receiptNumber"`
	ClientName     string        `json:"clientName"`
	Phone          string        `json:"phone"`
	Mobile         string        `json:"mobile"`
	VenueName      string        `json:"venueName"`
	EventDate      string        `json:"eventDate"`
	EventTime      string        `json:"eventTime"`
	GuestCount     int           `json:"guestCount"`
	StatusName     string        `json:"statusName"`
	Lines          []ReceiptLine `json:"lines"`
	Subtotal       float64       `json:"subtotal"`
	Tax            float64       `json:"tax"`
	VenueSurcharge float64       `json:"venueSurcharge"`
	TotalAmount    float64       `json:"totalAmount"`
	Deposit        float64       `json:"deposit"`
	Remaining      float64       `json:"remaining"`
	IssuedAt       string        `json:"issuedAt"`
}

type KitchenOrder struct {
	BookingID  int64         `json:"bookingId"`
	ClientName string        `json:"clientName"`
	VenueName  string        `json:"venueName"`
	EventTime  string        `json:"eventTime"`
	GuestCount int           `json:"guestCount"`
	Lines      []ReceiptLine `json:"lines"`
}

// KitchenSheet lists what the kitchen must produce on a given date.
// Cancelled bookings are excluded.
type KitchenSheet struct {
	Date   string         `json:"date"`
	Orders []KitchenOrder `json:"orders"`
}

type StationLoad struct {
	Station  string `json:"station"`
	MealName string `json:"mealName"`
	Quantity int    `json:"quantity"`
}

// StationSheet aggregates the date's meal quantities per kitchen station.
type StationSheet struct {
	Date  string        `json:"date"`
	Loads []StationLoad `json:"loads"`
}

type StatusCount struct {
	StatusName string `json:"statusName"`
	Count      int    `json:"count"`
}

type VenueLoad struct {
	VenueName string  `json:"venueName"`
	Count     int     `json:"count"`
	Revenue   float64 `json:"revenue"`
	Top       bool    `json:"top"`
}

type DailySummary struct {
	Date        string        `json:"date"`
	Total       int           `json:"total"`
	ByStatus    []StatusCount `json:"byStatus"`
	TotalGuests int           `json:"totalGuests"`
	Revenue     float64       `json:"revenue"`
	Collected   float64       `json:"collected"`
	ByVenue     []VenueLoad   `json:"byVenue"`
}
