package ops

import (
	"strings"
	"time"

	dbpkg "github.com/campusfest/memories/internal/db"
	"github.com/campusfest/memories/internal/errors"
	"github.com/campusfest/memories/internal/gallery"
)

// UpdateInput contains parameters for the Update operation. Nil pointer
// fields leave the current value in place.
type UpdateInput struct {
	ID          string
	ViewerID    string
	Title       *string
	Subtitle    *string
	Description *string
	Location    *string
	TakenAt     *time.Time
	Category    *gallery.Category
	Tags        []string
}

// UpdateOutput contains the result of the Update operation.
type UpdateOutput struct {
	Moment MomentView `json:"moment"`
}

// Update edits a moment's metadata. Uploaded moments persist to the upload
// store; seed moments change only the in-process display overlay, so those
// edits are lost on restart.
func Update(g *Gallery, input UpdateInput) (*UpdateOutput, error) {
	if input.Category != nil && !gallery.ValidCategory(*input.Category) {
		return nil, errors.NewInvalidRequest("unknown category: " + string(*input.Category))
	}
	if input.Title != nil && strings.TrimSpace(*input.Title) == "" {
		return nil, errors.NewInvalidRequest("title cannot be empty")
	}

	if uploadID, ok := strings.CutPrefix(input.ID, gallery.UploadedIDPrefix); ok {
		if err := g.updateUpload(uploadID, input); err != nil {
			return nil, err
		}
	} else {
		if err := g.updateSeed(input); err != nil {
			return nil, err
		}
	}

	moment, err := g.findMoment(input.ID)
	if err != nil {
		return nil, err
	}
	interactions, err := g.viewerInteractions(input.ViewerID)
	if err != nil {
		return nil, err
	}
	return &UpdateOutput{Moment: viewOf(moment, interactions)}, nil
}

func (g *Gallery) updateUpload(uploadID string, input UpdateInput) error {
	// Uploads have no stored subtitle: the normalizer derives it from the
	// description. Refuse the edit rather than drop it silently.
	if input.Subtitle != nil {
		return errors.NewInvalidRequest("subtitle is derived from the description for uploaded moments")
	}
	upload, err := dbpkg.GetUpload(g.DB, uploadID)
	if err != nil {
		return err
	}
	if input.Title != nil {
		upload.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		upload.Description = input.Description
	}
	if input.Location != nil {
		upload.Location = input.Location
	}
	if input.TakenAt != nil {
		takenAt := input.TakenAt.Unix()
		upload.TakenAt = &takenAt
	}
	if input.Tags != nil {
		upload.Tags = input.Tags
	}
	upload.UpdatedAt = g.now().Unix()
	return dbpkg.UpdateUpload(g.DB, upload)
}

func (g *Gallery) updateSeed(input UpdateInput) error {
	seed, ok := g.Seeds.Get(input.ID)
	if !ok {
		return errors.NewNotFound("moment", input.ID)
	}
	if input.Title != nil {
		seed.Title = strings.TrimSpace(*input.Title)
	}
	if input.Subtitle != nil {
		seed.Subtitle = *input.Subtitle
	}
	if input.Description != nil {
		seed.Description = *input.Description
	}
	if input.Location != nil {
		seed.Location = *input.Location
	}
	if input.Category != nil {
		seed.Category = *input.Category
	}
	if input.Tags != nil {
		seed.Tags = input.Tags
	}
	if input.TakenAt != nil {
		seed.Date, seed.Year, seed.Month, seed.Season = gallery.DeriveDate(*input.TakenAt)
	}
	if !g.Seeds.Update(seed) {
		return errors.NewNotFound("moment", input.ID)
	}
	return nil
}
