package ops

import (
	"strings"

	dbpkg "github.com/campusfest/memories/internal/db"
	"github.com/campusfest/memories/internal/errors"
	"github.com/campusfest/memories/internal/gallery"
)

// DefaultAvatar is the placeholder avatar for commenters without a photo.
const DefaultAvatar = "/assets/avatar-placeholder.jpg"

// maxTargetDepth bounds the reply-target search: a target is found at the
// top level or one level down, so parents deeper than that are not
// locatable and the reply is refused.
const maxTargetDepth = 1

// CommentInput contains parameters for the AddComment operation. ParentID
// targets a reply; nil creates a top-level comment.
type CommentInput struct {
	MomentID string
	ParentID *string
	Body     string
	Author   *dbpkg.User
}

// CommentOutput contains the result of the AddComment operation.
type CommentOutput struct {
	Comment CommentView `json:"comment"`
}

// AddComment appends a comment or reply to a moment's thread. A reply's
// target must exist at the top level or one level down; anything else is a
// not-found error rather than a silent drop.
func AddComment(g *Gallery, input CommentInput) (*CommentOutput, error) {
	body := strings.TrimSpace(input.Body)
	if body == "" {
		return nil, errors.NewInvalidRequest("comment body is required")
	}
	if input.Author == nil {
		return nil, errors.NewUnauthorized()
	}
	if _, err := g.findMoment(input.MomentID); err != nil {
		return nil, err
	}

	if input.ParentID != nil {
		parent, err := dbpkg.GetComment(g.DB, *input.ParentID)
		if err != nil {
			return nil, err
		}
		if parent.MomentID != input.MomentID {
			return nil, errors.NewNotFound("comment", *input.ParentID)
		}
		depth, err := dbpkg.CommentDepth(g.DB, *input.ParentID)
		if err != nil {
			return nil, err
		}
		if depth > maxTargetDepth {
			return nil, errors.NewNotFound("comment", *input.ParentID)
		}
	}

	id, err := generateULID()
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	now := g.now()
	userID := input.Author.ID
	row := &dbpkg.CommentRow{
		ID:        id,
		MomentID:  input.MomentID,
		ParentID:  input.ParentID,
		UserID:    &userID,
		Author:    authorLabel(input.Author),
		Avatar:    DefaultAvatar,
		Body:      body,
		BaseLikes: 0,
		CreatedAt: now.Unix(),
	}
	if err := dbpkg.InsertComment(g.DB, row); err != nil {
		return nil, err
	}

	return &CommentOutput{Comment: CommentView{
		Comment: gallery.Comment{
			ID:        row.ID,
			Author:    row.Author,
			Text:      row.Body,
			TimeLabel: "now",
			Avatar:    row.Avatar,
			Likes:     0,
			CreatedAt: now,
		},
	}}, nil
}

// authorLabel renders the display name the thread shows, first name plus
// last initial ("Sarah M.").
func authorLabel(u *dbpkg.User) string {
	name := strings.TrimSpace(u.FirstName)
	if last := strings.TrimSpace(u.LastName); last != "" {
		name += " " + last[:1] + "."
	}
	if name == "" {
		return "Anonymous"
	}
	return name
}

// DeleteCommentInput contains parameters for the DeleteComment operation.
type DeleteCommentInput struct {
	CommentID string
	ViewerID  string
}

// DeleteComment removes a top-level comment and its replies. Reply ids are
// rejected as not found: deletion never reaches into nested replies, and
// replies are never hoisted to the top level.
func DeleteComment(g *Gallery, input DeleteCommentInput) error {
	if input.ViewerID == "" {
		return errors.NewUnauthorized()
	}
	return dbpkg.DeleteTopLevelComment(g.DB, input.CommentID)
}

// CommentLikeInput contains parameters for the ToggleCommentLike operation.
type CommentLikeInput struct {
	CommentID string
	ViewerID  string
}

// ToggleCommentLike flips the viewer's like on a comment or reply. The like
// set spans the whole thread, so replies are likeable the same way as
// top-level comments.
func ToggleCommentLike(g *Gallery, input CommentLikeInput) (*ToggleOutput, error) {
	if input.ViewerID == "" {
		return nil, errors.NewUnauthorized()
	}
	comment, err := dbpkg.GetComment(g.DB, input.CommentID)
	if err != nil {
		return nil, err
	}
	active, err := dbpkg.ToggleCommentLike(g.DB, input.ViewerID, input.CommentID, g.now().Unix())
	if err != nil {
		return nil, err
	}
	out := &ToggleOutput{MomentID: comment.MomentID, Active: active, EffectiveLikes: comment.BaseLikes}
	if active {
		out.EffectiveLikes++
	}
	return out, nil
}
