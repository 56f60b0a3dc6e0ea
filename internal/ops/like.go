package ops

import (
	"github.com/campusfest/memories/internal/db"
	"github.com/campusfest/memories/internal/errors"
)

// ToggleInput contains parameters for the like and bookmark toggles.
type ToggleInput struct {
	MomentID string
	ViewerID string
}

// ToggleOutput contains the result of a toggle: the new membership state
// and, for likes, the count the viewer should see.
type ToggleOutput struct {
	MomentID       string `json:"moment_id"`
	Active         bool   `json:"active"`
	EffectiveLikes int    `json:"effective_likes,omitempty"`
}

// ToggleLike flips the viewer's like on a moment and reports the new state.
// The base like count is never written; the viewer's bit lives in its own
// membership table and is added on display. Ids that resolve to no current
// moment are still admitted, so the set survives moment deletion.
func ToggleLike(g *Gallery, input ToggleInput) (*ToggleOutput, error) {
	if input.ViewerID == "" {
		return nil, errors.NewUnauthorized()
	}
	active, err := db.ToggleMomentLike(g.DB, input.ViewerID, input.MomentID, g.now().Unix())
	if err != nil {
		return nil, err
	}

	out := &ToggleOutput{MomentID: input.MomentID, Active: active}
	if moment, err := g.findMoment(input.MomentID); err == nil {
		out.EffectiveLikes = moment.Likes
		if active {
			out.EffectiveLikes++
		}
	}
	return out, nil
}

// ToggleBookmark flips the viewer's bookmark on a moment.
func ToggleBookmark(g *Gallery, input ToggleInput) (*ToggleOutput, error) {
	if input.ViewerID == "" {
		return nil, errors.NewUnauthorized()
	}
	active, err := db.ToggleMomentBookmark(g.DB, input.ViewerID, input.MomentID, g.now().Unix())
	if err != nil {
		return nil, err
	}
	return &ToggleOutput{MomentID: input.MomentID, Active: active}, nil
}

// SavedInput contains parameters for the Saved operation.
type SavedInput struct {
	ViewerID string
}

// SavedOutput lists the viewer's bookmarked moments that still resolve.
type SavedOutput struct {
	Moments []MomentView `json:"moments"`
}

// Saved returns the viewer's bookmarked moments in catalog order. Bookmarked
// ids that no longer resolve are skipped, not pruned.
func Saved(g *Gallery, input SavedInput) (*SavedOutput, error) {
	if input.ViewerID == "" {
		return nil, errors.NewUnauthorized()
	}
	moments, err := g.allMoments()
	if err != nil {
		return nil, err
	}
	interactions, err := g.viewerInteractions(input.ViewerID)
	if err != nil {
		return nil, err
	}

	views := make([]MomentView, 0)
	for _, m := range moments {
		if interactions.Bookmarked.Has(m.ID) {
			views = append(views, viewOf(m, interactions))
		}
	}
	return &SavedOutput{Moments: views}, nil
}
