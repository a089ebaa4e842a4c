// Package pricing holds the static per-category daily rate table. Pricing is
// flat: daily rate times whole days, nothing else.
package pricing

import (
	"sort"
	"strings"
)

// Daily rates in rupees per car category. Categories are matched
// case-insensitively; unknown categories rate at 0.
var perDay = map[string]int{
	"sedan":          2500,
	"mini campervan": 6000,
	"suv":            4000,
}

type Category struct {
	Name        string `json:"name"`
	PricePerDay int    `json:"price_per_day"`
}

// DailyRate returns the per-day rate for a category, or 0 when the category
// is not in the table.
func DailyRate(carType string) int {
	return perDay[strings.ToLower(carType)]
}

// Total is the flat price for a stay: daily rate times number of days.
// Days may be zero or negative and the result follows along; the caller
// decides whether that is acceptable.
func Total(carType string, numDays int) int {
	return DailyRate(carType) * numDays
}

// Categories lists the known categories in stable name order.
func Categories() []Category {
	out := make([]Category, 0, len(perDay))
	for name, rate := range perDay {
		out = append(out, Category{Name: name, PricePerDay: rate})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
