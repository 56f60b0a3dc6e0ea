package ops

import (
	"github.com/campusfest/memories/internal/gallery"
)

// ListInput contains parameters for the List operation. ViewerID is empty
// for anonymous browsing.
type ListInput struct {
	Selection gallery.Selection
	ViewerID  string
}

// Facets holds the distinct-value lists that populate the filter controls.
type Facets struct {
	Years   []int            `json:"years"`
	Months  []string         `json:"months"`
	Seasons []gallery.Season `json:"seasons"`
}

// Stats holds the hero-section counters.
type Stats struct {
	TotalMoments  int `json:"total_moments"`
	TotalLikes    int `json:"total_likes"`
	YearsSpanned  int `json:"years_spanned"`
	FilteredCount int `json:"filtered_count"`
}

// ListOutput contains the result of the List operation. Counts carries one
// entry per fixed category plus the virtual "all" total; facets and counts
// are computed over the unfiltered catalog so the controls stay stable
// while a filter is active.
type ListOutput struct {
	Moments []MomentView   `json:"moments"`
	Counts  map[string]int `json:"counts"`
	Facets  Facets         `json:"facets"`
	Stats   Stats          `json:"stats"`
}

// List returns the filtered moment sequence plus facets and counters.
// The catalog is re-projected from the upload store on every call, so it
// tracks upload changes without any cache invalidation.
func List(g *Gallery, input ListInput) (*ListOutput, error) {
	moments, err := g.allMoments()
	if err != nil {
		return nil, err
	}

	interactions, err := g.viewerInteractions(input.ViewerID)
	if err != nil {
		return nil, err
	}

	filtered := gallery.Apply(moments, input.Selection)

	views := make([]MomentView, 0, len(filtered))
	for _, m := range filtered {
		views = append(views, viewOf(m, interactions))
	}

	return &ListOutput{
		Moments: views,
		Counts:  gallery.CategoryCounts(moments),
		Facets: Facets{
			Years:   gallery.Years(moments),
			Months:  gallery.Months(moments),
			Seasons: gallery.Seasons(moments),
		},
		Stats: Stats{
			TotalMoments:  len(moments),
			TotalLikes:    gallery.TotalLikes(moments),
			YearsSpanned:  len(gallery.Years(moments)),
			FilteredCount: len(filtered),
		},
	}, nil
}
