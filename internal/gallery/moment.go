package gallery

import (
	"time"
)

// Season is the display season a moment belongs to, derived from its date.
type Season string

const (
	SeasonSpring Season = "spring"
	SeasonSummer Season = "summer"
	SeasonAutumn Season = "autumn"
	SeasonWinter Season = "winter"
)

// Category classifies a moment for the gallery's category rail.
type Category string

const (
	CategoryLegendary    Category = "legendary"
	CategoryAchievements Category = "achievements"
	CategoryMilestones   Category = "milestones"
)

// Categories lists the fixed category values in display order.
var Categories = []Category{CategoryLegendary, CategoryAchievements, CategoryMilestones}

// ValidCategory reports whether c is one of the fixed category values.
func ValidCategory(c Category) bool {
	switch c {
	case CategoryLegendary, CategoryAchievements, CategoryMilestones:
		return true
	}
	return false
}

// Badge is the label chip rendered on a moment card.
type Badge struct {
	Text  string `json:"text"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

// Moment is a single displayable memory record shown in the gallery.
// Seed moments carry small numeric ids ("1".."15"); uploaded moments carry
// ids with the "uploaded_" prefix so the two identity spaces never collide.
type Moment struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Subtitle    string   `json:"subtitle"`
	Image       string   `json:"image"`
	Date        string   `json:"date"`
	Year        int      `json:"year"`
	Month       string   `json:"month"`
	Season      Season   `json:"season"`
	Likes       int      `json:"likes"`
	Location    string   `json:"location"`
	Category    Category `json:"category"`
	Badge       Badge    `json:"badge"`
	Tags        []string `json:"tags"`
	Description string   `json:"description"`
	IsUploaded  bool     `json:"is_uploaded"`

	// UploadID is the id of the backing upload record when IsUploaded is set.
	UploadID string `json:"upload_id,omitempty"`
}

// DeriveSeason maps a date to its season. March–May is spring, June–August
// summer, September–November autumn, everything else winter. Year, month
// name, and season must all derive from the same date (see DeriveDate).
func DeriveSeason(t time.Time) Season {
	switch m := t.Month(); {
	case m >= time.March && m <= time.May:
		return SeasonSpring
	case m >= time.June && m <= time.August:
		return SeasonSummer
	case m >= time.September && m <= time.November:
		return SeasonAutumn
	default:
		return SeasonWinter
	}
}

// DeriveDate derives the display date string, year, month name, and season
// from a single source date, keeping the four fields consistent.
func DeriveDate(t time.Time) (date string, year int, month string, season Season) {
	return FormatDate(t), t.Year(), t.Month().String(), DeriveSeason(t)
}

// FormatDate renders a date the way the gallery displays it ("June 20, 2023").
func FormatDate(t time.Time) string {
	return t.Format("January 2, 2006")
}
