// Package analytics filters and aggregates booking rows in memory. It backs
// the dashboard, the calendar and the printable reports, and is the single
// place the listing semantics live.
package analytics

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"dpbooking/internal/domains/booking/model"
)

// Record is a booking joined with its venue name for display and search.
type Record struct {
	Booking   model.Booking
	VenueName string
}

// Criteria narrows a set of booking records. All set criteria must match.
type Criteria struct {
	// Search matches case-insensitively as a substring of the client
	// name, phone, mobile, booking id and venue name.
	Search   string
	Type     *model.BookingType
	Status   *model.BookingStatus
	VenueID  int64
	Date     *time.Time
	DateFrom *time.Time
	DateTo   *time.Time
}

// Filter returns the records matching the criteria. A single date beats a
// date range; the range end is inclusive through end of day.
func Filter(records []Record, c Criteria) []Record {
	matched := make([]Record, 0, len(records))

	search := strings.ToLower(strings.TrimSpace(c.Search))

	for _, rec := range records {
		if search != "" && !matchesSearch(rec, search) {
			continue
		}

		if c.Type != nil && rec.Booking.BookingType != *c.Type {
			continue
		}

		if c.Status != nil && rec.Booking.Status != *c.Status {
			continue
		}

		if c.VenueID != 0 && rec.Booking.VenueID != c.VenueID {
			continue
		}

		if !matchesDate(rec.Booking.EventDate, c) {
			continue
		}

		matched = append(matched, rec)
	}

	return matched
}

func matchesSearch(rec Record, search string) bool {
	haystacks := []string{
		rec.Booking.ClientName,
		rec.Booking.Phone,
		rec.Booking.Mobile,
		strconv.FormatInt(rec.Booking.ID, 10),
		rec.VenueName,
	}

	for _, h := range haystacks {
		if strings.Contains(strings.ToLower(h), search) {
			return true
		}
	}

	return false
}

func matchesDate(eventDate time.Time, c Criteria) bool {
	day := truncateToDay(eventDate)

	if c.Date != nil {
		return day.Equal(truncateToDay(*c.Date))
	}

	if c.DateFrom != nil && day.Before(truncateToDay(*c.DateFrom)) {
		return false
	}

	if c.DateTo != nil && day.After(truncateToDay(*c.DateTo)) {
		return false
	}

	return true
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Paginate slices one page out of the items. Pages are 1-based; out-of-range
// pages come back empty.
func Paginate[T any](items []T, page, size int) []T {
	if page < 1 || size < 1 {
		return nil
	}

	start := (page - 1) * size
	if start >= len(items) {
		return nil
	}

	end := start + size
	if end > len(items) {
		end = len(items)
	}

	return items[start:end]
}

// PageWindow returns the page numbers to render around the current page. A
// sliding window of at most maxVisible pages, clamped at both ends.
func PageWindow(current, totalPages, maxVisible int) []int {
	if totalPages < 1 || maxVisible < 1 {
		return nil
	}

	if current < 1 {
		current = 1
	}

	if current > totalPages {
		current = totalPages
	}

	start := current - maxVisible/2
	if start < 1 {
		start = 1
	}

	end := start + maxVisible - 1
	if end > totalPages {
		end = totalPages
		start = end - maxVisible + 1

		if start < 1 {
			start = 1
		}
	}

	pages := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		pages = append(pages, p)
	}

	return pages
}

// Summary aggregates a set of booking records.
type Summary struct {
	Total       int
	ByStatus    map[model.BookingStatus]int
	TotalGuests int
	// Revenue is the sum of grand totals; Collected the sum of deposits.
	Revenue   float64
	Collected float64
}

func Summarize(records []Record) Summary {
	summary := Summary{
		ByStatus: make(map[model.BookingStatus]int),
	}

	for _, rec := range records {
		summary.Total++
		summary.ByStatus[rec.Booking.Status]++
		summary.TotalGuests += rec.Booking.GuestCount
		summary.Revenue += rec.Booking.TotalAmount
		summary.Collected += rec.Booking.Deposit
	}

	return summary
}

// VenueStat is the per-venue load used by the calendar view.
type VenueStat struct {
	VenueID   int64
	VenueName string
	Count     int
	Revenue   float64
	Top       bool
}

// VenueStats groups records per venue, sorted by booking count descending.
// The busiest venue is flagged. Ties break by venue name for stable output.
func VenueStats(records []Record) []VenueStat {
	byVenue := make(map[int64]*VenueStat)

	for _, rec := range records {
		stat, ok := byVenue[rec.Booking.VenueID]
		if !ok {
			stat = &VenueStat{
				VenueID:   rec.Booking.VenueID,
				VenueName: rec.VenueName,
			}
			byVenue[rec.Booking.VenueID] = stat
		}

		stat.Count++
		stat.Revenue += rec.Booking.TotalAmount
	}

	stats := make([]VenueStat, 0, len(byVenue))
	for _, stat := range byVenue {
		stats = append(stats, *stat)
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count != stats[j].Count {
			return stats[i].Count > stats[j].Count
		}

		return stats[i].VenueName < stats[j].VenueName
	})

	if len(stats) > 0 && stats[0].Count > 0 {
		stats[0].Top = true
	}

	return stats
}
