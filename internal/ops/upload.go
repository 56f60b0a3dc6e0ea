package ops

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nfnt/resize"

	dbpkg "github.com/campusfest/memories/internal/db"
	"github.com/campusfest/memories/internal/errors"
	"github.com/campusfest/memories/internal/gallery"
)

// UploadInput contains parameters for the Upload operation. ImageData holds
// the raw photo bytes; JPEG, PNG, and GIF are accepted.
type UploadInput struct {
	Title       string
	Description *string
	Location    *string
	TakenAt     *time.Time
	Tags        []string
	ImageData   []byte
	UserID      *string
}

// UploadOutput contains the result of the Upload operation. MomentID is the
// prefixed identity the new photo carries in the gallery.
type UploadOutput struct {
	ID       string `json:"id"`
	MomentID string `json:"moment_id"`
}

// Upload stores a new photo: the original bytes, a derived thumbnail, and
// the metadata row the normalizer projects into a moment.
func Upload(g *Gallery, input UploadInput) (*UploadOutput, error) {
	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" {
		return nil, errors.NewInvalidRequest("title is required")
	}
	if len(input.ImageData) == 0 {
		return nil, errors.NewInvalidRequest("image is required")
	}
	if max := g.Cfg.MaxImageBytes; max > 0 && int64(len(input.ImageData)) > max {
		return nil, errors.NewImageTooLarge(max, int64(len(input.ImageData)))
	}

	img, format, err := image.Decode(bytes.NewReader(input.ImageData))
	if err != nil {
		return nil, errors.NewUnsupportedImage(err)
	}

	id, err := generateULID()
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	imagePath := filepath.Join(dbpkg.ImagesDir(g.BaseDir), fmt.Sprintf("%s.%s", id, format))
	if err := os.WriteFile(imagePath, input.ImageData, 0600); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to store image: %w", err))
	}

	thumbPath, err := g.writeThumbnail(id, img)
	if err != nil {
		os.Remove(imagePath)
		return nil, err
	}

	now := g.now().Unix()
	upload := &dbpkg.Upload{
		ID:          id,
		UserID:      input.UserID,
		Title:       input.Title,
		Description: input.Description,
		ImagePath:   imagePath,
		ThumbPath:   &thumbPath,
		Likes:       0,
		Location:    input.Location,
		Tags:        input.Tags,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if input.TakenAt != nil {
		takenAt := input.TakenAt.Unix()
		upload.TakenAt = &takenAt
	}

	if err := dbpkg.InsertUpload(g.DB, upload); err != nil {
		os.Remove(imagePath)
		os.Remove(thumbPath)
		return nil, err
	}

	return &UploadOutput{
		ID:       id,
		MomentID: gallery.UploadedIDPrefix + id,
	}, nil
}

// writeThumbnail derives and stores a bounded-box JPEG thumbnail.
func (g *Gallery) writeThumbnail(id string, img image.Image) (string, error) {
	size := uint(g.Cfg.ThumbnailSize)
	if size == 0 {
		size = 300
	}
	thumb := resize.Thumbnail(size, size, img, resize.Lanczos3)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, thumb, &jpeg.Options{Quality: 85}); err != nil {
		return "", errors.NewInternal(fmt.Errorf("failed to encode thumbnail: %w", err))
	}

	thumbPath := filepath.Join(dbpkg.ThumbsDir(g.BaseDir), id+".jpg")
	if err := os.WriteFile(thumbPath, buf.Bytes(), 0600); err != nil {
		return "", errors.NewInternal(fmt.Errorf("failed to store thumbnail: %w", err))
	}
	return thumbPath, nil
}

// ImagePaths resolves the stored file paths for an uploaded moment id.
func ImagePaths(g *Gallery, momentID string) (imagePath, thumbPath string, err error) {
	uploadID, ok := strings.CutPrefix(momentID, gallery.UploadedIDPrefix)
	if !ok {
		return "", "", errors.NewNotFound("image", momentID)
	}
	upload, err := dbpkg.GetUpload(g.DB, uploadID)
	if err != nil {
		return "", "", err
	}
	if upload.ThumbPath != nil {
		thumbPath = *upload.ThumbPath
	}
	return upload.ImagePath, thumbPath, nil
}
