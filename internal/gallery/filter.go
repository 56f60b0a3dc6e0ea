package gallery

import (
	"sort"
	"strconv"
)

// FilterAll is the identity value for every filter dimension.
const FilterAll = "all"

// Selection is one multi-dimensional filter choice. Each dimension is an
// exact value or FilterAll; empty strings are treated as FilterAll.
type Selection struct {
	Category string `json:"category"`
	Year     string `json:"year"`
	Month    string `json:"month"`
	Season   string `json:"season"`
}

// matches reports whether the dimension value passes the selection, with
// FilterAll (or empty) as identity.
func matches(selected, value string) bool {
	return selected == "" || selected == FilterAll || selected == value
}

// Matches reports whether a moment passes all four dimensions of the
// selection. Dimensions combine by logical AND; the year dimension compares
// the stringified numeric year.
func (s Selection) Matches(m Moment) bool {
	return matches(s.Category, string(m.Category)) &&
		matches(s.Year, strconv.Itoa(m.Year)) &&
		matches(s.Month, m.Month) &&
		matches(s.Season, string(m.Season))
}

// IsAll reports whether the selection filters nothing.
func (s Selection) IsAll() bool {
	return (s.Category == "" || s.Category == FilterAll) &&
		(s.Year == "" || s.Year == FilterAll) &&
		(s.Month == "" || s.Month == FilterAll) &&
		(s.Season == "" || s.Season == FilterAll)
}

// Apply returns the subsequence of moments passing the selection, preserving
// input order.
func Apply(moments []Moment, sel Selection) []Moment {
	out := make([]Moment, 0, len(moments))
	for _, m := range moments {
		if sel.Matches(m) {
			out = append(out, m)
		}
	}
	return out
}

// Years returns the distinct years present, sorted descending.
func Years(moments []Moment) []int {
	seen := make(map[int]bool)
	var out []int
	for _, m := range moments {
		if !seen[m.Year] {
			seen[m.Year] = true
			out = append(out, m.Year)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(out)))
	return out
}

// Months returns the distinct month names present, in first-seen order.
func Months(moments []Moment) []string {
	seen := make(map[string]bool)
	var out []string
	for _, m := range moments {
		if !seen[m.Month] {
			seen[m.Month] = true
			out = append(out, m.Month)
		}
	}
	return out
}

// Seasons returns the distinct seasons present, in first-seen order.
func Seasons(moments []Moment) []Season {
	seen := make(map[Season]bool)
	var out []Season
	for _, m := range moments {
		if !seen[m.Season] {
			seen[m.Season] = true
			out = append(out, m.Season)
		}
	}
	return out
}

// CountByCategory returns the number of moments in the given category.
// FilterAll is the virtual total category.
func CountByCategory(moments []Moment, category string) int {
	if category == FilterAll {
		return len(moments)
	}
	n := 0
	for _, m := range moments {
		if string(m.Category) == category {
			n++
		}
	}
	return n
}

// CategoryCounts returns the badge counters for the category rail: one entry
// per fixed category plus the virtual FilterAll total.
func CategoryCounts(moments []Moment) map[string]int {
	counts := map[string]int{FilterAll: len(moments)}
	for _, c := range Categories {
		counts[string(c)] = 0
	}
	for _, m := range moments {
		counts[string(m.Category)]++
	}
	return counts
}

// TotalLikes sums the base like counts across all moments (the hero-section
// counter; viewer-local like bits are not included).
func TotalLikes(moments []Moment) int {
	total := 0
	for _, m := range moments {
		total += m.Likes
	}
	return total
}
