package gallery

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/campusfest/memories/internal/errors"
)

// Comment is one entry in a moment's comment thread. Replies share the same
// shape; in practice the tree is two levels deep (comments and their
// replies), and like/reply addressing by id relies on ids being unique
// across the whole tree of a moment.
type Comment struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	TimeLabel string    `json:"time"`
	Avatar    string    `json:"avatar"`
	Likes     int       `json:"likes"`
	CreatedAt time.Time `json:"created_at"`
	Replies   []Comment `json:"replies"`
}

// NewCommentID generates a ULID for a new comment or reply. ULIDs replace
// the millisecond-timestamp ids of the first version, which collided under
// rapid creation.
func NewCommentID() (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// Thread is the comment tree for one moment.
type Thread struct {
	Comments []Comment
}

// Delete removes the top-level comment with the given id. Nested replies are
// not searched: deleting a top-level comment leaves its replies unreachable
// rather than hoisting them, and reply ids cannot be deleted through this
// path. Returns false when no top-level comment matches.
func (t *Thread) Delete(id string) bool {
	for i := range t.Comments {
		if t.Comments[i].ID == id {
			t.Comments = append(t.Comments[:i], t.Comments[i+1:]...)
			return true
		}
	}
	return false
}

// Reply appends reply to the comment with targetID, looking at the top level
// first and then exactly one level down (the replies of each top-level
// comment). An unknown target returns a not-found error instead of silently
// dropping the reply.
func (t *Thread) Reply(targetID string, reply Comment) error {
	for i := range t.Comments {
		if t.Comments[i].ID == targetID {
			t.Comments[i].Replies = append(t.Comments[i].Replies, reply)
			return nil
		}
	}
	for i := range t.Comments {
		for j := range t.Comments[i].Replies {
			if t.Comments[i].Replies[j].ID == targetID {
				t.Comments[i].Replies[j].Replies = append(t.Comments[i].Replies[j].Replies, reply)
				return nil
			}
		}
	}
	return errors.NewNotFound("comment", targetID)
}

// Find returns the comment with the given id from the top level or one
// level of nesting.
func (t *Thread) Find(id string) (*Comment, bool) {
	for i := range t.Comments {
		if t.Comments[i].ID == id {
			return &t.Comments[i], true
		}
		for j := range t.Comments[i].Replies {
			if t.Comments[i].Replies[j].ID == id {
				return &t.Comments[i].Replies[j], true
			}
		}
	}
	return nil, false
}

// Len counts top-level comments only (the "Comments (n)" header).
func (t *Thread) Len() int {
	return len(t.Comments)
}

// IDs returns every comment id in the thread, top level and replies, in
// document order. Used to verify tree-wide id uniqueness.
func (t *Thread) IDs() []string {
	var out []string
	for _, c := range t.Comments {
		out = append(out, c.ID)
		for _, r := range c.Replies {
			out = append(out, r.ID)
		}
	}
	return out
}

// EffectiveCommentLikes computes the display like count for a comment given
// the viewer's liked-comment set: base count plus one iff liked. Like state
// lives in a single set spanning the whole tree, which is why ids must be
// unique across top-level comments and replies.
func EffectiveCommentLikes(c Comment, liked IDSet) int {
	if liked.Has(c.ID) {
		return c.Likes + 1
	}
	return c.Likes
}
