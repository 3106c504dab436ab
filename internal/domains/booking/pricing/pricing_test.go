package pricing_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"dpbooking/internal/domains/booking/pricing"
	mealModel "dpbooking/internal/domains/meal/model"
)

const specialVenueID = int64(8)

func catalog() []mealModel.Meal {
	return []mealModel.Meal{
		{ID: 1, Name: "Grilled Chicken", Price: 120, SpecialPrice: 0, Station: "grill", IsActive: true},
		{ID: 2, Name: "Beef Skewers", Price: 150, SpecialPrice: 100, Station: "grill", IsActive: true},
		{ID: 3, Name: "Seafood Platter", Price: 300, SpecialPrice: 220, Station: "seafood", IsActive: true},
		{ID: 4, Name: "Retired Dish", Price: 90, SpecialPrice: 50, Station: "grill", IsActive: false},
	}
}

func TestComputeTotals(t *testing.T) {
	tests := []struct {
		name     string
		input    pricing.QuoteInput
		expected pricing.Totals
	}{
		{
			name: "tax applies to meals subtotal only",
			input: pricing.QuoteInput{
				Lines: []pricing.Line{
					{MealID: 1, Quantity: 10, UnitPrice: 120},
					{MealID: 2, Quantity: 5, UnitPrice: 150},
				},
				TaxRate:        0.12,
				VenueSurcharge: 500,
			},
			expected: pricing.Totals{
				Subtotal:   1950,
				Tax:        234,
				Surcharge:  500,
				GrandTotal: 2684,
				Remaining:  2684,
			},
		},
		{
			name: "deposit reduces the remaining balance",
			input: pricing.QuoteInput{
				Lines: []pricing.Line{
					{MealID: 1, Quantity: 10, UnitPrice: 100},
				},
				TaxRate: 0.12,
				Deposit: 500,
			},
			expected: pricing.Totals{
				Subtotal:   1000,
				Tax:        120,
				GrandTotal: 1120,
				Remaining:  620,
			},
		},
		{
			name: "remaining never goes below zero",
			input: pricing.QuoteInput{
				Lines: []pricing.Line{
					{MealID: 1, Quantity: 1, UnitPrice: 100},
				},
				TaxRate: 0,
				Deposit: 10000,
			},
			expected: pricing.Totals{
				Subtotal:   100,
				GrandTotal: 100,
				Remaining:  0,
			},
		},
		{
			name: "negative quantities and prices count as zero",
			input: pricing.QuoteInput{
				Lines: []pricing.Line{
					{MealID: 1, Quantity: -3, UnitPrice: 100},
					{MealID: 2, Quantity: 2, UnitPrice: -50},
					{MealID: 3, Quantity: 4, UnitPrice: 25},
				},
				TaxRate: 0.12,
			},
			expected: pricing.Totals{
				Subtotal:   100,
				Tax:        12,
				GrandTotal: 112,
				Remaining:  112,
			},
		},
		{
			name: "no lines falls back to the stored flat amount",
			input: pricing.QuoteInput{
				TaxRate:    0.12,
				FlatAmount: 7500,
				Deposit:    2000,
			},
			expected: pricing.Totals{
				GrandTotal: 7500,
				Remaining:  5500,
			},
		},
		{
			name: "nan inputs count as zero",
			input: pricing.QuoteInput{
				Lines: []pricing.Line{
					{MealID: 1, Quantity: 2, UnitPrice: math.NaN()},
					{MealID: 2, Quantity: 4, UnitPrice: 25},
				},
				TaxRate:        math.NaN(),
				VenueSurcharge: math.NaN(),
			},
			expected: pricing.Totals{
				Subtotal:   100,
				GrandTotal: 100,
				Remaining:  100,
			},
		},
		{
			name: "surcharge is not taxed even at high rates",
			input: pricing.QuoteInput{
				Lines: []pricing.Line{
					{MealID: 1, Quantity: 1, UnitPrice: 1000},
				},
				TaxRate:        0.5,
				VenueSurcharge: 1000,
			},
			expected: pricing.Totals{
				Subtotal:   1000,
				Tax:        500,
				Surcharge:  1000,
				GrandTotal: 2500,
				Remaining:  2500,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pricing.ComputeTotals(tt.input)

			assert.InDelta(t, tt.expected.Subtotal, got.Subtotal, 1e-9, "subtotal")
			assert.InDelta(t, tt.expected.Tax, got.Tax, 1e-9, "tax")
			assert.InDelta(t, tt.expected.Surcharge, got.Surcharge, 1e-9, "surcharge")
			assert.InDelta(t, tt.expected.GrandTotal, got.GrandTotal, 1e-9, "grand total")
			assert.InDelta(t, tt.expected.Remaining, got.Remaining, 1e-9, "remaining")
		})
	}
}

func TestSelectableMeals(t *testing.T) {
	t.Run("regular venue gets the full active catalog", func(t *testing.T) {
		selectable := pricing.SelectableMeals(catalog(), 3, specialVenueID)

		ids := make([]int64, 0, len(selectable))
		for _, meal := range selectable {
			ids = append(ids, meal.ID)
		}

		assert.Equal(t, []int64{1, 2, 3}, ids)
	})

	t.Run("special venue only sees meals with a special price", func(t *testing.T) {
		selectable := pricing.SelectableMeals(catalog(), specialVenueID, specialVenueID)

		ids := make([]int64, 0, len(selectable))
		for _, meal := range selectable {
			ids = append(ids, meal.ID)
		}

		assert.Equal(t, []int64{2, 3}, ids)
	})

	t.Run("inactive meals never appear", func(t *testing.T) {
		for _, venueID := range []int64{1, specialVenueID} {
			for _, meal := range pricing.SelectableMeals(catalog(), venueID, specialVenueID) {
				assert.NotEqual(t, int64(4), meal.ID)
			}
		}
	})
}

func TestResolveUnitPrice(t *testing.T) {
	meal := catalog()[1] // price 150, special 100

	assert.Equal(t, 150.0, pricing.ResolveUnitPrice(meal, 3, specialVenueID))
	assert.Equal(t, 100.0, pricing.ResolveUnitPrice(meal, specialVenueID, specialVenueID))
}

func TestDefaultLines(t *testing.T) {
	t.Run("regular venue starts with the first active meal", func(t *testing.T) {
		lines := pricing.DefaultLines(catalog(), 3, specialVenueID)

		if assert.Len(t, lines, 1) {
			assert.Equal(t, int64(1), lines[0].MealID)
			assert.Equal(t, 1, lines[0].Quantity)
			assert.Equal(t, 120.0, lines[0].UnitPrice)
		}
	})

	t.Run("special venue starts with the first special-price meal", func(t *testing.T) {
		lines := pricing.DefaultLines(catalog(), specialVenueID, specialVenueID)

		if assert.Len(t, lines, 1) {
			assert.Equal(t, int64(2), lines[0].MealID)
			assert.Equal(t, 1, lines[0].Quantity)
			assert.Equal(t, 100.0, lines[0].UnitPrice)
		}
	})

	t.Run("no selectable meals means no lines", func(t *testing.T) {
		meals := []mealModel.Meal{
			{ID: 1, Price: 120, IsActive: false},
		}

		assert.Nil(t, pricing.DefaultLines(meals, 3, specialVenueID))
	})
}

func TestRepriceLine(t *testing.T) {
	meal := catalog()[2] // price 300, special 220

	line := pricing.RepriceLine(meal, 3, specialVenueID)
	assert.Equal(t, pricing.Line{MealID: 3, Quantity: 1, UnitPrice: 300}, line)

	line = pricing.RepriceLine(meal, specialVenueID, specialVenueID)
	assert.Equal(t, pricing.Line{MealID: 3, Quantity: 1, UnitPrice: 220}, line)
}

// Full quote for a special-price venue: special prices drive both the
// lines and the totals.
func TestSpecialVenueQuote(t *testing.T) {
	meals := pricing.SelectableMeals(catalog(), specialVenueID, specialVenueID)

	lines := make([]pricing.Line, 0, len(meals))
	for _, meal := range meals {
		lines = append(lines, pricing.Line{
			MealID:    meal.ID,
			Quantity:  2,
			UnitPrice: pricing.ResolveUnitPrice(meal, specialVenueID, specialVenueID),
		})
	}

	got := pricing.ComputeTotals(pricing.QuoteInput{
		Lines:          lines,
		TaxRate:        0.12,
		VenueSurcharge: 300,
		Deposit:        200,
	})

	// (100 + 220) * 2 = 640 subtotal
	assert.InDelta(t, 640.0, got.Subtotal, 1e-9)
	assert.InDelta(t, 76.8, got.Tax, 1e-9)
	assert.InDelta(t, 1016.8, got.GrandTotal, 1e-9)
	assert.InDelta(t, 816.8, got.Remaining, 1e-9)
}
