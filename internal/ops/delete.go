package ops

import (
	"os"
	"strings"

	dbpkg "github.com/campusfest/memories/internal/db"
	"github.com/campusfest/memories/internal/errors"
	"github.com/campusfest/memories/internal/gallery"
)

// DeleteInput contains parameters for the Delete operation.
type DeleteInput struct {
	ID string
}

// DeleteOutput contains the result of the Delete operation.
type DeleteOutput struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

// Delete removes a moment. Uploaded moments are deleted from the upload
// store along with their image files; seed moments are hidden from the
// in-process display overlay and reappear on restart.
func Delete(g *Gallery, input DeleteInput) (*DeleteOutput, error) {
	if uploadID, ok := strings.CutPrefix(input.ID, gallery.UploadedIDPrefix); ok {
		upload, err := dbpkg.GetUpload(g.DB, uploadID)
		if err != nil {
			return nil, err
		}
		if err := dbpkg.DeleteUpload(g.DB, uploadID); err != nil {
			return nil, err
		}
		os.Remove(upload.ImagePath)
		if upload.ThumbPath != nil {
			os.Remove(*upload.ThumbPath)
		}
		return &DeleteOutput{ID: input.ID, Deleted: true}, nil
	}

	if !g.Seeds.Remove(input.ID) {
		return nil, errors.NewNotFound("moment", input.ID)
	}
	return &DeleteOutput{ID: input.ID, Deleted: true}, nil
}
