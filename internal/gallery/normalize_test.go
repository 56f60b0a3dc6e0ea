package gallery

import (
	"testing"
	"time"
)

var testNow = time.Date(2024, time.April, 10, 12, 0, 0, 0, time.UTC)

func TestNormalizeUpload_Defaults(t *testing.T) {
	m := NormalizeUpload(UploadRecord{ID: "abc", Title: "My Photo"}, testNow)

	if m.ID != "uploaded_abc" {
		t.Errorf("ID = %q, want 'uploaded_abc'", m.ID)
	}
	if m.Subtitle != DefaultSubtitle {
		t.Errorf("Subtitle = %q, want %q", m.Subtitle, DefaultSubtitle)
	}
	if m.Description != DefaultDescription {
		t.Errorf("Description = %q, want %q", m.Description, DefaultDescription)
	}
	if m.Location != DefaultLocation {
		t.Errorf("Location = %q, want %q", m.Location, DefaultLocation)
	}
	if m.Category != CategoryMilestones {
		t.Errorf("Category = %q, want milestones", m.Category)
	}
	if m.Badge != UploadedBadge {
		t.Errorf("Badge = %+v, want %+v", m.Badge, UploadedBadge)
	}
	if m.Tags == nil || len(m.Tags) != 0 {
		t.Errorf("Tags = %v, want empty non-nil slice", m.Tags)
	}
	if !m.IsUploaded {
		t.Error("IsUploaded = false, want true")
	}
	if m.UploadID != "abc" {
		t.Errorf("UploadID = %q, want 'abc'", m.UploadID)
	}
}

func TestNormalizeUpload_DateFallsBackToNow(t *testing.T) {
	m := NormalizeUpload(UploadRecord{ID: "x", Title: "t"}, testNow)

	if m.Year != 2024 || m.Month != "April" || m.Season != SeasonSpring {
		t.Errorf("derived fields = %d/%s/%s, want 2024/April/spring", m.Year, m.Month, m.Season)
	}
	if m.Date != "April 10, 2024" {
		t.Errorf("Date = %q, want 'April 10, 2024'", m.Date)
	}
}

func TestNormalizeUpload_ExplicitDate(t *testing.T) {
	taken := time.Date(2022, time.December, 25, 0, 0, 0, 0, time.UTC)
	m := NormalizeUpload(UploadRecord{ID: "x", Title: "t", Date: &taken}, testNow)

	if m.Year != 2022 || m.Month != "December" || m.Season != SeasonWinter {
		t.Errorf("derived fields = %d/%s/%s, want 2022/December/winter", m.Year, m.Month, m.Season)
	}
}

func TestNormalizeUpload_DescriptionFillsSubtitle(t *testing.T) {
	m := NormalizeUpload(UploadRecord{ID: "x", Title: "t", Description: "great day"}, testNow)

	if m.Subtitle != "great day" {
		t.Errorf("Subtitle = %q, want description text", m.Subtitle)
	}
	if m.Description != "great day" {
		t.Errorf("Description = %q, want 'great day'", m.Description)
	}
}

func TestCombine_UploadsFirst(t *testing.T) {
	seeds := []Moment{{ID: "1", Title: "Seed"}}
	uploads := []UploadRecord{
		{ID: "a", Title: "First Upload"},
		{ID: "b", Title: "Second Upload"},
	}

	out := Combine(uploads, seeds, testNow)

	if len(out) != 3 {
		t.Fatalf("len = %d, want 3", len(out))
	}
	if out[0].ID != "uploaded_a" || out[1].ID != "uploaded_b" || out[2].ID != "1" {
		t.Errorf("order = [%s %s %s], want uploads before seeds", out[0].ID, out[1].ID, out[2].ID)
	}
}

func TestSeedMoments_Shape(t *testing.T) {
	seeds := SeedMoments()

	if len(seeds) != 15 {
		t.Fatalf("len = %d, want 15", len(seeds))
	}
	seen := make(map[string]bool)
	for _, m := range seeds {
		if seen[m.ID] {
			t.Errorf("duplicate seed id %q", m.ID)
		}
		seen[m.ID] = true
		if !ValidCategory(m.Category) {
			t.Errorf("seed %s has invalid category %q", m.ID, m.Category)
		}
		if m.IsUploaded {
			t.Errorf("seed %s marked uploaded", m.ID)
		}
	}
	if seeds[0].Title != "Graduation Day Glory" || seeds[0].Likes != 1247 {
		t.Errorf("seed 1 = %q/%d, want 'Graduation Day Glory'/1247", seeds[0].Title, seeds[0].Likes)
	}
}
