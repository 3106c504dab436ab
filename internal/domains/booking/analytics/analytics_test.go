package analytics_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"dpbooking/internal/domains/booking/analytics"
	"dpbooking/internal/domains/booking/model"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func dayPtr(year int, month time.Month, d int) *time.Time {
	t := day(year, month, d)
	return &t
}

func statusPtr(s model.BookingStatus) *model.BookingStatus {
	return &s
}

func typePtr(t model.BookingType) *model.BookingType {
	return &t
}

func records() []analytics.Record {
	return []analytics.Record{
		{
			Booking: model.Booking{
				ID: 1, ClientName: "Sara Ahmed", Phone: "01012345678", Mobile: "01112345678",
				BookingType: model.TypeWedding, Status: model.StatusConfirmed, VenueID: 3,
				EventDate: day(2024, time.March, 10), GuestCount: 200, TotalAmount: 50000, Deposit: 20000,
			},
			VenueName: "Grand Hall",
		},
		{
			Booking: model.Booking{
				ID: 2, ClientName: "Omar Farouk", Phone: "01098765432",
				BookingType: model.TypeBirthday, Status: model.StatusPending, VenueID: 3,
				EventDate: day(2024, time.March, 15), GuestCount: 50, TotalAmount: 8000, Deposit: 1000,
			},
			VenueName: "Grand Hall",
		},
		{
			Booking: model.Booking{
				ID: 3, ClientName: "Mona Saleh", Phone: "01255554444",
				BookingType: model.TypeWedding, Status: model.StatusCancelled, VenueID: 8,
				EventDate: day(2024, time.April, 2), GuestCount: 120, TotalAmount: 30000, Deposit: 5000,
			},
			VenueName: "Garden Terrace",
		},
	}
}

func TestFilter_Search(t *testing.T) {
	tests := []struct {
		name     string
		search   string
		expected []int64
	}{
		{
			name:     "client name is case-insensitive",
			search:   "SARA",
			expected: []int64{1},
		},
		{
			name:     "phone substring",
			search:   "9876",
			expected: []int64{2},
		},
		{
			name:     "mobile substring",
			search:   "01112345678",
			expected: []int64{1},
		},
		{
			name:     "booking id",
			search:   "3",
			expected: []int64{3},
		},
		{
			name:     "venue name",
			search:   "garden",
			expected: []int64{3},
		},
		{
			name:     "whitespace is trimmed",
			search:   "  omar  ",
			expected: []int64{2},
		},
		{
			name:     "empty search matches everything",
			search:   "",
			expected: []int64{1, 2, 3},
		},
		{
			name:     "no match",
			search:   "nothing-here",
			expected: []int64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matched := analytics.Filter(records(), analytics.Criteria{Search: tt.search})

			ids := make([]int64, 0, len(matched))
			for _, rec := range matched {
				ids = append(ids, rec.Booking.ID)
			}

			assert.Equal(t, tt.expected, ids)
		})
	}
}

func TestFilter_ExactCriteria(t *testing.T) {
	matched := analytics.Filter(records(), analytics.Criteria{Type: typePtr(model.TypeWedding)})
	assert.Len(t, matched, 2)

	matched = analytics.Filter(records(), analytics.Criteria{Status: statusPtr(model.StatusPending)})
	if assert.Len(t, matched, 1) {
		assert.Equal(t, int64(2), matched[0].Booking.ID)
	}

	matched = analytics.Filter(records(), analytics.Criteria{VenueID: 8})
	if assert.Len(t, matched, 1) {
		assert.Equal(t, int64(3), matched[0].Booking.ID)
	}

	// all criteria must match at once
	matched = analytics.Filter(records(), analytics.Criteria{
		Type:    typePtr(model.TypeWedding),
		VenueID: 3,
	})
	if assert.Len(t, matched, 1) {
		assert.Equal(t, int64(1), matched[0].Booking.ID)
	}
}

func TestFilter_Dates(t *testing.T) {
	t.Run("single date matches that day only", func(t *testing.T) {
		matched := analytics.Filter(records(), analytics.Criteria{Date: dayPtr(2024, time.March, 15)})

		if assert.Len(t, matched, 1) {
			assert.Equal(t, int64(2), matched[0].Booking.ID)
		}
	})

	t.Run("single date wins over a range", func(t *testing.T) {
		matched := analytics.Filter(records(), analytics.Criteria{
			Date:     dayPtr(2024, time.April, 2),
			DateFrom: dayPtr(2024, time.March, 1),
			DateTo:   dayPtr(2024, time.March, 31),
		})

		if assert.Len(t, matched, 1) {
			assert.Equal(t, int64(3), matched[0].Booking.ID)
		}
	})

	t.Run("range end is inclusive", func(t *testing.T) {
		matched := analytics.Filter(records(), analytics.Criteria{
			DateFrom: dayPtr(2024, time.March, 10),
			DateTo:   dayPtr(2024, time.March, 15),
		})

		assert.Len(t, matched, 2)
	})

	t.Run("open-ended range", func(t *testing.T) {
		matched := analytics.Filter(records(), analytics.Criteria{
			DateFrom: dayPtr(2024, time.April, 1),
		})

		if assert.Len(t, matched, 1) {
			assert.Equal(t, int64(3), matched[0].Booking.ID)
		}
	})

	t.Run("time of day is ignored", func(t *testing.T) {
		evening := time.Date(2024, time.March, 10, 22, 30, 0, 0, time.UTC)
		matched := analytics.Filter(records(), analytics.Criteria{Date: &evening})

		if assert.Len(t, matched, 1) {
			assert.Equal(t, int64(1), matched[0].Booking.ID)
		}
	})
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	assert.Equal(t, []int{1, 2, 3}, analytics.Paginate(items, 1, 3))
	assert.Equal(t, []int{4, 5, 6}, analytics.Paginate(items, 2, 3))
	assert.Equal(t, []int{7}, analytics.Paginate(items, 3, 3))
	assert.Nil(t, analytics.Paginate(items, 4, 3))
	assert.Nil(t, analytics.Paginate(items, 0, 3))
	assert.Nil(t, analytics.Paginate(items, 1, 0))
}

func TestPageWindow(t *testing.T) {
	tests := []struct {
		name       string
		current    int
		totalPages int
		maxVisible int
		expected   []int
	}{
		{
			name:       "middle of a long run",
			current:    10,
			totalPages: 20,
			maxVisible: 5,
			expected:   []int{8, 9, 10, 11, 12},
		},
		{
			name:       "clamped at the start",
			current:    1,
			totalPages: 20,
			maxVisible: 5,
			expected:   []int{1, 2, 3, 4, 5},
		},
		{
			name:       "clamped at the end",
			current:    20,
			totalPages: 20,
			maxVisible: 5,
			expected:   []int{16, 17, 18, 19, 20},
		},
		{
			name:       "fewer pages than the window",
			current:    2,
			totalPages: 3,
			maxVisible: 5,
			expected:   []int{1, 2, 3},
		},
		{
			name:       "current beyond the last page",
			current:    99,
			totalPages: 4,
			maxVisible: 5,
			expected:   []int{1, 2, 3, 4},
		},
		{
			name:       "current below the first page",
			current:    -1,
			totalPages: 10,
			maxVisible: 5,
			expected:   []int{1, 2, 3, 4, 5},
		},
		{
			name:       "single page",
			current:    1,
			totalPages: 1,
			maxVisible: 5,
			expected:   []int{1},
		},
		{
			name:       "no pages",
			current:    1,
			totalPages: 0,
			maxVisible: 5,
			expected:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, analytics.PageWindow(tt.current, tt.totalPages, tt.maxVisible))
		})
	}
}

func TestSummarize(t *testing.T) {
	summary := analytics.Summarize(records())

	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 370, summary.TotalGuests)
	assert.InDelta(t, 88000.0, summary.Revenue, 1e-9)
	assert.InDelta(t, 26000.0, summary.Collected, 1e-9)

	assert.Equal(t, 1, summary.ByStatus[model.StatusConfirmed])
	assert.Equal(t, 1, summary.ByStatus[model.StatusPending])
	assert.Equal(t, 1, summary.ByStatus[model.StatusCancelled])
	assert.Equal(t, 0, summary.ByStatus[model.StatusComplete])
}

func TestVenueStats(t *testing.T) {
	stats := analytics.VenueStats(records())

	if assert.Len(t, stats, 2) {
		assert.Equal(t, int64(3), stats[0].VenueID)
		assert.Equal(t, 2, stats[0].Count)
		assert.InDelta(t, 58000.0, stats[0].Revenue, 1e-9)
		assert.True(t, stats[0].Top)

		assert.Equal(t, int64(8), stats[1].VenueID)
		assert.Equal(t, 1, stats[1].Count)
		assert.False(t, stats[1].Top)
	}
}

func TestVenueStats_TieBreaksByName(t *testing.T) {
	recs := []analytics.Record{
		{Booking: model.Booking{ID: 1, VenueID: 2}, VenueName: "Zelda Hall"},
		{Booking: model.Booking{ID: 2, VenueID: 1}, VenueName: "Atrium"},
	}

	stats := analytics.VenueStats(recs)

	if assert.Len(t, stats, 2) {
		assert.Equal(t, "Atrium", stats[0].VenueName)
		assert.True(t, stats[0].Top)
		assert.Equal(t, "Zelda Hall", stats[1].VenueName)
	}
}

func TestVenueStats_Empty(t *testing.T) {
	assert.Empty(t, analytics.VenueStats(nil))
}
