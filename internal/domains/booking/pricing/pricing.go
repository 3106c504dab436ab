// Package pricing holds the money arithmetic for bookings. Everything here is
// pure so the quoting rules can be exercised without a database.
package pricing

import (
	"math"

	mealModel "dpbooking/internal/domains/meal/model"
)

// Line is one meal position on a booking quote.
type Line struct {
	MealID    int64
	Quantity  int
	UnitPrice float64
}

// QuoteInput carries everything needed to price a booking.
type QuoteInput struct {
	Lines          []Line
	TaxRate        float64
	VenueSurcharge float64
	Deposit        float64
	// FlatAmount is the stored total of rows predating itemized
	// lines. Used only when Lines is empty.
	FlatAmount float64
}

// Totals is the result of a quote.
type Totals struct {
	Subtotal   float64
	Tax        float64
	Surcharge  float64
	GrandTotal float64
	Remaining  float64
}

// ComputeTotals prices the booking. Tax applies to the meals subtotal only,
// never to the venue surcharge. Missing quantities and prices count as zero.
// When no lines exist the stored flat amount stands in for the grand total.
func ComputeTotals(in QuoteInput) Totals {
	var t Totals

	if len(in.Lines) == 0 {
		t.GrandTotal = zeroIfNegative(in.FlatAmount)
		t.Remaining = zeroIfNegative(t.GrandTotal - zeroIfNegative(in.Deposit))

		return t
	}

	for _, line := range in.Lines {
		qty := line.Quantity
		if qty < 0 {
			qty = 0
		}

		price := zeroIfNegative(line.UnitPrice)
		t.Subtotal += float64(qty) * price
	}

	t.Tax = t.Subtotal * zeroIfNegative(in.TaxRate)
	t.Surcharge = zeroIfNegative(in.VenueSurcharge)
	t.GrandTotal = t.Subtotal + t.Tax + t.Surcharge
	t.Remaining = zeroIfNegative(t.GrandTotal - zeroIfNegative(in.Deposit))

	return t
}

// SelectableMeals returns the meals a venue may sell. Special-price venues
// are restricted to meals carrying a positive special price; everyone else
// gets the full active catalog.
func SelectableMeals(meals []mealModel.Meal, venueID, specialPriceVenueID int64) []mealModel.Meal {
	selectable := make([]mealModel.Meal, 0, len(meals))

	for _, meal := range meals {
		if !meal.IsActive {
			continue
		}

		if venueID == specialPriceVenueID && !meal.HasSpecialPrice() {
			continue
		}

		selectable = append(selectable, meal)
	}

	return selectable
}

// ResolveUnitPrice picks the effective price of a meal for a venue. Special-
// price venues always charge the special price.
func ResolveUnitPrice(meal mealModel.Meal, venueID, specialPriceVenueID int64) float64 {
	if venueID == specialPriceVenueID {
		return zeroIfNegative(meal.SpecialPrice)
	}

	return zeroIfNegative(meal.Price)
}

// DefaultLines builds the single starter line used whenever the venue
// changes: the first selectable meal with quantity one. No selectable meals
// means no lines.
func DefaultLines(meals []mealModel.Meal, venueID, specialPriceVenueID int64) []Line {
	selectable := SelectableMeals(meals, venueID, specialPriceVenueID)
	if len(selectable) == 0 {
		return nil
	}

	first := selectable[0]

	return []Line{{
		MealID:    first.ID,
		Quantity:  1,
		UnitPrice: ResolveUnitPrice(first, venueID, specialPriceVenueID),
	}}
}

// RepriceLine re-resolves the price after a meal swap and resets the
// quantity to one.
func RepriceLine(meal mealModel.Meal, venueID, specialPriceVenueID int64) Line {
	return Line{
		MealID:    meal.ID,
		Quantity:  1,
		UnitPrice: ResolveUnitPrice(meal, venueID, specialPriceVenueID),
	}
}

func zeroIfNegative(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}

	return v
}
