package ops

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/campusfest/memories/internal/auth"
	"github.com/campusfest/memories/internal/config"
	"github.com/campusfest/memories/internal/db"
	"github.com/campusfest/memories/internal/gallery"
)

var fixedNow = time.Date(2024, time.April, 10, 12, 0, 0, 0, time.UTC)

func seedFixture() []gallery.Moment {
	return []gallery.Moment{
		{ID: "1", Title: "Graduation", Subtitle: "sub1", Year: 2023, Month: "June",
			Season: gallery.SeasonSummer, Category: gallery.CategoryLegendary, Likes: 100,
			Description: "big day", Tags: []string{"grad"}},
		{ID: "2", Title: "Championship", Year: 2023, Month: "March",
			Season: gallery.SeasonSpring, Category: gallery.CategoryAchievements, Likes: 50},
		{ID: "3", Title: "Cultural Fest", Year: 2022, Month: "November",
			Season: gallery.SeasonAutumn, Category: gallery.CategoryLegendary, Likes: 25},
	}
}

func setupGallery(t *testing.T) *Gallery {
	t.Helper()
	baseDir := t.TempDir()
	database, err := db.Init(baseDir)
	if err != nil {
		t.Fatalf("db.Init failed: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	cfg := config.DefaultConfig()
	cfg.PublicOrigin = "https://memories.example.edu"
	cfg.BcryptCost = 4

	g := New(database, gallery.NewCollection(seedFixture()), cfg, baseDir)
	g.Now = func() time.Time { return fixedNow }
	return g
}

// signUpViewer creates an account and returns its id.
func signUpViewer(t *testing.T, g *Gallery, email string) string {
	t.Helper()
	svc := auth.NewService(g.DB, g.Cfg)
	profile, _, err := svc.SignUp(auth.SignUpInput{
		Email:     email,
		Password:  "secret1",
		FirstName: "Sarah",
		LastName:  "Mitchell",
	})
	if err != nil {
		t.Fatalf("SignUp failed: %v", err)
	}
	return profile.ID
}

// testPNG returns an encoded image of the given size.
func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode failed: %v", err)
	}
	return buf.Bytes()
}

func TestRelativeLabel(t *testing.T) {
	now := fixedNow
	tests := []struct {
		at   time.Time
		want string
	}{
		{now.Add(-30 * time.Second), "now"},
		{now.Add(-time.Minute), "1 minute ago"},
		{now.Add(-5 * time.Minute), "5 minutes ago"},
		{now.Add(-time.Hour), "1 hour ago"},
		{now.Add(-3 * time.Hour), "3 hours ago"},
		{now.Add(-24 * time.Hour), "1 day ago"},
		{now.Add(-72 * time.Hour), "3 days ago"},
		{now.Add(-90 * 24 * time.Hour), "January 11, 2024"},
	}
	for _, tt := range tests {
		if got := relativeLabel(tt.at, now); got != tt.want {
			t.Errorf("relativeLabel(%v) = %q, want %q", now.Sub(tt.at), got, tt.want)
		}
	}
}

func TestGenerateULID(t *testing.T) {
	a, err := generateULID()
	if err != nil {
		t.Fatalf("generateULID failed: %v", err)
	}
	b, err := generateULID()
	if err != nil {
		t.Fatalf("generateULID failed: %v", err)
	}
	if a == b {
		t.Error("consecutive ULIDs collided")
	}
	if len(a) != 26 {
		t.Errorf("ULID length = %d, want 26", len(a))
	}
}

func TestFindMoment_NotFound(t *testing.T) {
	g := setupGallery(t)

	_, err := g.findMoment("999")
	if err == nil {
		t.Fatal("findMoment(999) succeeded, want error")
	}
}
