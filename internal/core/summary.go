package core

// CategoryStats aggregates the expenses of one category.
type CategoryStats struct {
	Total   Money `json:"total"`
	Count   int   `json:"count"`
	Average Money `json:"average"` // total/count rounded to cents, zero when count is 0
}

// MonthSummary is one row of the monthly pivot: total amount per
// category for a single month, plus the month total.
type MonthSummary struct {
	Month      string           `json:"month"` // human-readable label, e.g. "January 2024"
	Year       int              `json:"year"`
	MonthNum   int              `json:"month_num"` // 1-12
	ByCategory map[string]Money `json:"by_category"`
	Total      Money            `json:"total"`
}

// DateRange is a pair of canonical dates bounding the dataset.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Statistics is the dataset-wide aggregate. A store with no records
// yields the zero value with a nil DateRange rather than an error.
type Statistics struct {
	Count                int        `json:"count"`
	Total                Money      `json:"total"`
	Average              Money      `json:"average"`
	Max                  Money      `json:"max"`
	Min                  Money      `json:"min"`
	CategoriesCount      int        `json:"categories_count"`
	DateRange            *DateRange `json:"date_range"`
	TopCategory          string     `json:"top_category"`           // largest total
	MostFrequentCategory string     `json:"most_frequent_category"` // first encountered wins ties
}
