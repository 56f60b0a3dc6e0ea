// Package ops implements the gallery's operations: listing and fetching
// moments, uploads, interaction toggles, comment-thread manipulation,
// reports, and export. Each operation takes the shared Gallery handle plus
// an input struct and returns an output struct with a typed error.
package ops

import (
	"crypto/rand"
	"database/sql"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/campusfest/memories/internal/config"
	"github.com/campusfest/memories/internal/db"
	"github.com/campusfest/memories/internal/errors"
	"github.com/campusfest/memories/internal/gallery"
)

// Gallery bundles the state every operation works over: the database, the
// injected seed collection, configuration, and the data directory for
// stored images. Now is an injectable clock so tests can pin time.
type Gallery struct {
	DB      *sql.DB
	Seeds   *gallery.Collection
	Cfg     *config.Config
	BaseDir string
	Now     func() time.Time
}

// New creates a Gallery handle with the wall clock.
func New(database *sql.DB, seeds *gallery.Collection, cfg *config.Config, baseDir string) *Gallery {
	return &Gallery{
		DB:      database,
		Seeds:   seeds,
		Cfg:     cfg,
		BaseDir: baseDir,
		Now:     time.Now,
	}
}

func (g *Gallery) now() time.Time {
	if g.Now != nil {
		return g.Now()
	}
	return time.Now()
}

// MomentView is a moment decorated with the viewer's interaction state.
// EffectiveLikes is base likes plus the viewer's own like bit; the base
// count is never mutated by it.
type MomentView struct {
	gallery.Moment
	EffectiveLikes int  `json:"effective_likes"`
	Liked          bool `json:"liked"`
	Bookmarked     bool `json:"bookmarked"`
}

// uploadRecords re-projects the upload table into normalizer input. Called
// on every read so the combined catalog follows the upload collection.
func (g *Gallery) uploadRecords() ([]gallery.UploadRecord, error) {
	uploads, err := db.ListUploads(g.DB)
	if err != nil {
		return nil, err
	}
	out := make([]gallery.UploadRecord, 0, len(uploads))
	for _, u := range uploads {
		out = append(out, uploadToRecord(u))
	}
	return out, nil
}

func uploadToRecord(u db.Upload) gallery.UploadRecord {
	rec := gallery.UploadRecord{
		ID:    u.ID,
		Title: u.Title,
		Image: imageURL(u.ID),
		Likes: u.Likes,
		Tags:  u.Tags,
	}
	if u.Description != nil {
		rec.Description = *u.Description
	}
	if u.Location != nil {
		rec.Location = *u.Location
	}
	if u.TakenAt != nil {
		t := time.Unix(*u.TakenAt, 0).UTC()
		rec.Date = &t
	}
	return rec
}

// imageURL is the API path serving an upload's original bytes.
func imageURL(uploadID string) string {
	return fmt.Sprintf("/api/v1/moments/%s%s/image", gallery.UploadedIDPrefix, uploadID)
}

// allMoments builds the unified catalog: normalized uploads first, then the
// visible seed moments.
func (g *Gallery) allMoments() ([]gallery.Moment, error) {
	uploads, err := g.uploadRecords()
	if err != nil {
		return nil, err
	}
	return gallery.Combine(uploads, g.Seeds.Seeds(), g.now()), nil
}

// findMoment resolves a moment id against the combined catalog.
func (g *Gallery) findMoment(id string) (gallery.Moment, error) {
	moments, err := g.allMoments()
	if err != nil {
		return gallery.Moment{}, err
	}
	for _, m := range moments {
		if m.ID == id {
			return m, nil
		}
	}
	return gallery.Moment{}, errors.NewNotFound("moment", id)
}

// viewerInteractions loads the viewer's liked/bookmarked moment sets.
// An empty viewer id yields empty sets (anonymous browsing).
func (g *Gallery) viewerInteractions(viewerID string) (*gallery.Interactions, error) {
	in := gallery.NewInteractions()
	if viewerID == "" {
		return in, nil
	}
	liked, err := db.LikedMomentIDs(g.DB, viewerID)
	if err != nil {
		return nil, err
	}
	bookmarked, err := db.BookmarkedMomentIDs(g.DB, viewerID)
	if err != nil {
		return nil, err
	}
	in.Liked = gallery.NewIDSet(liked...)
	in.Bookmarked = gallery.NewIDSet(bookmarked...)
	return in, nil
}

func viewOf(m gallery.Moment, in *gallery.Interactions) MomentView {
	return MomentView{
		Moment:         m,
		EffectiveLikes: in.EffectiveLikes(m),
		Liked:          in.Liked.Has(m.ID),
		Bookmarked:     in.Bookmarked.Has(m.ID),
	}
}

// generateULID generates a new ULID.
func generateULID() (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// relativeLabel renders the "2 hours ago" style labels the thread displays.
func relativeLabel(at, now time.Time) string {
	d := now.Sub(at)
	switch {
	case d < time.Minute:
		return "now"
	case d < time.Hour:
		n := int(d.Minutes())
		return fmt.Sprintf("%d %s ago", n, plural(n, "minute"))
	case d < 24*time.Hour:
		n := int(d.Hours())
		return fmt.Sprintf("%d %s ago", n, plural(n, "hour"))
	case d < 30*24*time.Hour:
		n := int(d.Hours() / 24)
		return fmt.Sprintf("%d %s ago", n, plural(n, "day"))
	default:
		return gallery.FormatDate(at)
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return unit
	}
	return unit + "s"
}
