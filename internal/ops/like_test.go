package ops

import (
	"testing"

	"github.com/campusfest/memories/internal/errors"
)

func TestToggleLike_RoundTrip(t *testing.T) {
	g := setupGallery(t)
	viewer := signUpViewer(t, g, "a@example.edu")

	out, err := ToggleLike(g, ToggleInput{MomentID: "1", ViewerID: viewer})
	if err != nil {
		t.Fatalf("ToggleLike failed: %v", err)
	}
	if !out.Active || out.EffectiveLikes != 101 {
		t.Errorf("first toggle = %+v, want active with 101 likes", out)
	}

	out, err = ToggleLike(g, ToggleInput{MomentID: "1", ViewerID: viewer})
	if err != nil {
		t.Fatalf("second ToggleLike failed: %v", err)
	}
	if out.Active || out.EffectiveLikes != 100 {
		t.Errorf("second toggle = %+v, want inactive with 100 likes", out)
	}
}

func TestToggleLike_RequiresViewer(t *testing.T) {
	g := setupGallery(t)

	if _, err := ToggleLike(g, ToggleInput{MomentID: "1"}); !errors.Is(err, errors.ErrUnauthorized) {
		t.Errorf("err = %v, want UNAUTHORIZED", err)
	}
}

func TestToggleLike_UnknownIDAdmitted(t *testing.T) {
	g := setupGallery(t)
	viewer := signUpViewer(t, g, "a@example.edu")

	out, err := ToggleLike(g, ToggleInput{MomentID: "no-such-moment", ViewerID: viewer})
	if err != nil {
		t.Fatalf("ToggleLike on unknown id failed: %v", err)
	}
	if !out.Active {
		t.Error("unknown id not admitted to like set")
	}
}

func TestToggleBookmark_IndependentOfLike(t *testing.T) {
	g := setupGallery(t)
	viewer := signUpViewer(t, g, "a@example.edu")

	if _, err := ToggleBookmark(g, ToggleInput{MomentID: "1", ViewerID: viewer}); err != nil {
		t.Fatalf("ToggleBookmark failed: %v", err)
	}

	out, _ := List(g, ListInput{ViewerID: viewer})
	for _, m := range out.Moments {
		if m.ID == "1" {
			if !m.Bookmarked {
				t.Error("moment 1 not bookmarked")
			}
			if m.Liked {
				t.Error("bookmark leaked into like set")
			}
		}
	}
}

func TestSaved_ListsBookmarkedInCatalogOrder(t *testing.T) {
	g := setupGallery(t)
	viewer := signUpViewer(t, g, "a@example.edu")

	_, _ = ToggleBookmark(g, ToggleInput{MomentID: "3", ViewerID: viewer})
	_, _ = ToggleBookmark(g, ToggleInput{MomentID: "1", ViewerID: viewer})
	// A bookmark on a vanished id is skipped, not an error
	_, _ = ToggleBookmark(g, ToggleInput{MomentID: "ghost", ViewerID: viewer})

	out, err := Saved(g, SavedInput{ViewerID: viewer})
	if err != nil {
		t.Fatalf("Saved failed: %v", err)
	}
	if len(out.Moments) != 2 || out.Moments[0].ID != "1" || out.Moments[1].ID != "3" {
		ids := make([]string, 0, len(out.Moments))
		for _, m := range out.Moments {
			ids = append(ids, m.ID)
		}
		t.Errorf("saved = %v, want [1 3]", ids)
	}
}

func TestSaved_RequiresViewer(t *testing.T) {
	g := setupGallery(t)

	if _, err := Saved(g, SavedInput{}); !errors.Is(err, errors.ErrUnauthorized) {
		t.Errorf("err = %v, want UNAUTHORIZED", err)
	}
}
