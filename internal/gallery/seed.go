package gallery

import "sync"

// SeedMoments returns the curated golden-moment records the gallery ships
// with. Callers receive a fresh slice each time; the canonical copy lives in
// whatever Collection the caller injects it into.
func SeedMoments() []Moment {
	return []Moment{
		{
			ID:          "1",
			Title:       "Graduation Day Glory",
			Subtitle:    "Four years of hard work finally paid off",
			Image:       "/assets/graduation-ceremony.jpg",
			Date:        "June 20, 2023",
			Year:        2023,
			Month:       "June",
			Season:      SeasonSummer,
			Likes:       1247,
			Location:    "Grand Auditorium",
			Category:    CategoryLegendary,
			Badge:       Badge{Text: "Most Liked", Icon: "heart", Color: "bg-gradient-sunset"},
			Tags:        []string{"graduation", "achievement", "milestone"},
			Description: "The culmination of four years of dedication, late nights, and perseverance. Walking across that stage felt like conquering the world.",
		},
		{
			ID:          "2",
			Title:       "Championship Victory",
			Subtitle:    "Brought home the trophy after 5 years",
			Image:       "/assets/championship-victory.jpg",
			Date:        "March 15, 2023",
			Year:        2023,
			Month:       "March",
			Season:      SeasonSpring,
			Likes:       892,
			Location:    "Sports Complex",
			Category:    CategoryAchievements,
			Badge:       Badge{Text: "Champion", Icon: "trophy", Color: "bg-gradient-vintage"},
			Tags:        []string{"sports", "victory", "team"},
			Description: "Years of training and teamwork finally paid off. The moment we lifted that trophy was pure magic.",
		},
		{
			ID:          "3",
			Title:       "Cultural Fest Standing Ovation",
			Subtitle:    "A performance that resonated with everyone",
			Image:       "/assets/cultural-performance.jpg",
			Date:        "November 12, 2022",
			Year:        2022,
			Month:       "November",
			Season:      SeasonAutumn,
			Likes:       654,
			Location:    "Main Auditorium",
			Category:    CategoryLegendary,
			Badge:       Badge{Text: "Legendary", Icon: "crown", Color: "bg-gradient-retro"},
			Tags:        []string{"cultural", "performance", "legendary"},
			Description: "A performance that brought the entire auditorium to their feet. The energy was electric and unforgettable.",
		},
		{
			ID:          "4",
			Title:       "First Day Friendships",
			Subtitle:    "The beginning of lifelong bonds",
			Image:       "/assets/first-day-friends.jpg",
			Date:        "August 15, 2022",
			Year:        2022,
			Month:       "August",
			Season:      SeasonSummer,
			Likes:       445,
			Location:    "College Entrance",
			Category:    CategoryMilestones,
			Badge:       Badge{Text: "Milestone", Icon: "medal", Color: "bg-gradient-sunset"},
			Tags:        []string{"friendship", "first day", "memories"},
			Description: "The nervous excitement of the first day turned into the foundation of friendships that would last a lifetime.",
		},
		{
			ID:          "5",
			Title:       "Tech Fest Innovation Award",
			Subtitle:    "When dedication meets innovation",
			Image:       "/assets/tech-innovation.jpg",
			Date:        "February 28, 2023",
			Year:        2023,
			Month:       "February",
			Season:      SeasonWinter,
			Likes:       723,
			Location:    "Innovation Lab",
			Category:    CategoryAchievements,
			Badge:       Badge{Text: "Innovation", Icon: "zap", Color: "bg-gradient-vintage"},
			Tags:        []string{"technology", "innovation", "award"},
			Description: "Months of coding, debugging, and refining resulted in recognition for breakthrough innovation.",
		},
		{
			ID:          "6",
			Title:       "Farewell Tears & Cheers",
			Subtitle:    "A goodbye that felt like see you later",
			Image:       "/assets/farewell-moment.jpg",
			Date:        "May 30, 2023",
			Year:        2023,
			Month:       "May",
			Season:      SeasonSpring,
			Likes:       1089,
			Location:    "College Grounds",
			Category:    CategoryLegendary,
			Badge:       Badge{Text: "Emotional", Icon: "heart", Color: "bg-gradient-sunset"},
			Tags:        []string{"farewell", "emotions", "memories"},
			Description: "The bittersweet moment of saying goodbye to a place that shaped us all. Tears mixed with laughter as we promised to stay in touch.",
		},
		{
			ID:          "7",
			Title:       "Winter Wonderland Celebration",
			Subtitle:    "Snow-filled festivities and warm hearts",
			Image:       "/assets/winter-festival.jpg",
			Date:        "December 15, 2022",
			Year:        2022,
			Month:       "December",
			Season:      SeasonWinter,
			Likes:       856,
			Location:    "Campus Quad",
			Category:    CategoryMilestones,
			Badge:       Badge{Text: "Festive", Icon: "snowflake", Color: "bg-gradient-retro"},
			Tags:        []string{"winter", "celebration", "festival"},
			Description: "When snow covered the campus, we turned it into a magical winter wonderland with festivals and celebrations.",
		},
		{
			ID:          "8",
			Title:       "Academic Excellence Award",
			Subtitle:    "Recognition for outstanding scholarly achievement",
			Image:       "/assets/academic-excellence.jpg",
			Date:        "April 10, 2023",
			Year:        2023,
			Month:       "April",
			Season:      SeasonSpring,
			Likes:       912,
			Location:    "Dean's Office",
			Category:    CategoryAchievements,
			Badge:       Badge{Text: "Excellence", Icon: "award", Color: "bg-gradient-vintage"},
			Tags:        []string{"academic", "excellence", "achievement"},
			Description: "Years of dedication to studies culminated in this prestigious academic recognition.",
		},
		{
			ID:          "9",
			Title:       "Autumn Poetry Night",
			Subtitle:    "Words that painted the season beautifully",
			Image:       "/assets/poetry-night.jpg",
			Date:        "October 22, 2022",
			Year:        2022,
			Month:       "October",
			Season:      SeasonAutumn,
			Likes:       567,
			Location:    "Literature Hall",
			Category:    CategoryLegendary,
			Badge:       Badge{Text: "Artistic", Icon: "leaf", Color: "bg-gradient-sunset"},
			Tags:        []string{"poetry", "autumn", "literature"},
			Description: "An evening where words flowed like autumn leaves, creating magic in the hearts of everyone present.",
		},
		{
			ID:          "10",
			Title:       "Summer Research Breakthrough",
			Subtitle:    "Discovery that changed everything",
			Image:       "/assets/research-breakthrough.jpg",
			Date:        "July 8, 2023",
			Year:        2023,
			Month:       "July",
			Season:      SeasonSummer,
			Likes:       1034,
			Location:    "Research Lab",
			Category:    CategoryAchievements,
			Badge:       Badge{Text: "Discovery", Icon: "star", Color: "bg-gradient-vintage"},
			Tags:        []string{"research", "discovery", "summer"},
			Description: "A summer spent in the lab led to a breakthrough that would influence research for years to come.",
		},
		{
			ID:          "11",
			Title:       "New Year Resolution Success",
			Subtitle:    "Achieving what seemed impossible",
			Image:       "/assets/fitness-achievement.jpg",
			Date:        "January 1, 2023",
			Year:        2023,
			Month:       "January",
			Season:      SeasonWinter,
			Likes:       698,
			Location:    "Fitness Center",
			Category:    CategoryMilestones,
			Badge:       Badge{Text: "Determination", Icon: "zap", Color: "bg-gradient-retro"},
			Tags:        []string{"resolution", "fitness", "achievement"},
			Description: "Starting the year with determination and actually following through on those ambitious resolutions.",
		},
		{
			ID:          "12",
			Title:       "Spring Festival Organizing",
			Subtitle:    "Leading the biggest campus event",
			Image:       "/assets/spring-festival.jpg",
			Date:        "March 20, 2023",
			Year:        2023,
			Month:       "March",
			Season:      SeasonSpring,
			Likes:       823,
			Location:    "Event Grounds",
			Category:    CategoryLegendary,
			Badge:       Badge{Text: "Leadership", Icon: "crown", Color: "bg-gradient-sunset"},
			Tags:        []string{"leadership", "festival", "organizing"},
			Description: "Taking charge of the spring festival and turning it into the most memorable event in campus history.",
		},
		{
			ID:          "13",
			Title:       "Internship Achievement",
			Subtitle:    "Real-world experience that shaped my future",
			Image:       "/assets/internship-success.jpg",
			Date:        "June 30, 2022",
			Year:        2022,
			Month:       "June",
			Season:      SeasonSummer,
			Likes:       756,
			Location:    "Corporate Office",
			Category:    CategoryAchievements,
			Badge:       Badge{Text: "Professional", Icon: "trophy", Color: "bg-gradient-vintage"},
			Tags:        []string{"internship", "professional", "experience"},
			Description: "A transformative internship experience that opened doors to future career opportunities.",
		},
		{
			ID:          "14",
			Title:       "Midnight Study Sessions",
			Subtitle:    "Late nights that built character",
			Image:       "/assets/study-session.jpg",
			Date:        "September 15, 2022",
			Year:        2022,
			Month:       "September",
			Season:      SeasonAutumn,
			Likes:       634,
			Location:    "Library",
			Category:    CategoryMilestones,
			Badge:       Badge{Text: "Dedication", Icon: "medal", Color: "bg-gradient-retro"},
			Tags:        []string{"study", "dedication", "perseverance"},
			Description: "Those countless midnight hours in the library that taught the true meaning of dedication and perseverance.",
		},
		{
			ID:          "15",
			Title:       "Community Service Impact",
			Subtitle:    "Making a difference in the local community",
			Image:       "/assets/community-service.jpg",
			Date:        "August 25, 2023",
			Year:        2023,
			Month:       "August",
			Season:      SeasonSummer,
			Likes:       945,
			Location:    "Community Center",
			Category:    CategoryLegendary,
			Badge:       Badge{Text: "Impact", Icon: "heart", Color: "bg-gradient-sunset"},
			Tags:        []string{"community", "service", "impact"},
			Description: "Organizing community service projects that created lasting positive change in the neighborhood.",
		},
	}
}

// Collection holds the injected seed moments plus the in-process display
// overlay: edits and deletions of seed moments change only this structure,
// never durable state, and are lost on restart. Uploaded moments are not
// held here; they are re-projected from the upload store on every read.
type Collection struct {
	mu    sync.RWMutex
	seeds []Moment
}

// NewCollection creates a Collection over the given seed moments. Tests can
// substitute fixtures instead of the shipped seed set.
func NewCollection(seeds []Moment) *Collection {
	cp := make([]Moment, len(seeds))
	copy(cp, seeds)
	return &Collection{seeds: cp}
}

// Seeds returns a copy of the current seed moments in display order.
func (c *Collection) Seeds() []Moment {
	c.mu.RLock()
	defer c.mu.RUnlock()
	cp := make([]Moment, len(c.seeds))
	copy(cp, c.seeds)
	return cp
}

// Get returns the seed moment with the given id, if present.
func (c *Collection) Get(id string) (Moment, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, m := range c.seeds {
		if m.ID == id {
			return m, true
		}
	}
	return Moment{}, false
}

// Update replaces the seed moment with m.ID in the display overlay.
// Returns false if no seed with that id exists.
func (c *Collection) Update(m Moment) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.seeds {
		if c.seeds[i].ID == m.ID {
			c.seeds[i] = m
			return true
		}
	}
	return false
}

// Remove deletes the seed moment with the given id from the display
// overlay. Returns false if no seed with that id exists.
func (c *Collection) Remove(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.seeds {
		if c.seeds[i].ID == id {
			c.seeds = append(c.seeds[:i], c.seeds[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of seed moments currently visible.
func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.seeds)
}
