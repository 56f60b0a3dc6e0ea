package ops

import (
	"bytes"
	"html/template"
	"time"

	"github.com/yuin/goldmark"

	"github.com/campusfest/memories/internal/db"
	"github.com/campusfest/memories/internal/gallery"
)

// FetchInput contains parameters for the Fetch operation.
type FetchInput struct {
	ID       string
	ViewerID string
}

// CommentView is a comment decorated with the viewer's like state.
type CommentView struct {
	gallery.Comment
	EffectiveLikes int           `json:"effective_likes"`
	Liked          bool          `json:"liked"`
	ReplyViews     []CommentView `json:"reply_views,omitempty"`
}

// FetchOutput contains the result of the Fetch operation: the moment with
// viewer decoration, its rendered description, its comment thread, and the
// canonical share link.
type FetchOutput struct {
	MomentView
	DescriptionHTML template.HTML `json:"description_html"`
	Comments        []CommentView `json:"comments"`
	CommentCount    int           `json:"comment_count"`
	ShareURL        string        `json:"share_url"`
	ShareText       string        `json:"share_text"`
}

// Fetch returns the detail view for one moment id (seed or uploaded).
func Fetch(g *Gallery, input FetchInput) (*FetchOutput, error) {
	moment, err := g.findMoment(input.ID)
	if err != nil {
		return nil, err
	}

	interactions, err := g.viewerInteractions(input.ViewerID)
	if err != nil {
		return nil, err
	}

	thread, err := g.loadThread(moment.ID)
	if err != nil {
		return nil, err
	}

	likedComments := gallery.NewIDSet()
	if input.ViewerID != "" {
		ids, err := db.LikedCommentIDs(g.DB, input.ViewerID, moment.ID)
		if err != nil {
			return nil, err
		}
		likedComments = gallery.NewIDSet(ids...)
	}

	origin := g.Cfg.PublicOrigin

	return &FetchOutput{
		MomentView:      viewOf(moment, interactions),
		DescriptionHTML: renderMarkdown(moment.Description),
		Comments:        decorateComments(thread.Comments, likedComments),
		CommentCount:    thread.Len(),
		ShareURL:        gallery.ShareURL(origin, moment.ID),
		ShareText:       gallery.ShareText(moment),
	}, nil
}

// loadThread builds the comment tree for a moment from its stored rows.
func (g *Gallery) loadThread(momentID string) (*gallery.Thread, error) {
	rows, err := db.ListComments(g.DB, momentID)
	if err != nil {
		return nil, err
	}
	return buildThread(rows, g.now()), nil
}

// commentNode is the mutable assembly form of a comment while the tree is
// being linked together.
type commentNode struct {
	comment  gallery.Comment
	children []*commentNode
}

// buildThread assembles rows into the nested tree. Linking runs in two
// passes, so a reply attaches to its parent even when the rows sort with
// the reply first (equal created_at, id order decided by ULID entropy).
// Rows whose parent is missing (orphans of a deleted top-level comment)
// stay unreachable, which is the display behavior for deleted threads.
func buildThread(rows []db.CommentRow, now time.Time) *gallery.Thread {
	nodes := make(map[string]*commentNode, len(rows))
	for _, row := range rows {
		nodes[row.ID] = &commentNode{comment: gallery.Comment{
			ID:        row.ID,
			Author:    row.Author,
			Text:      row.Body,
			TimeLabel: relativeLabel(time.Unix(row.CreatedAt, 0), now),
			Avatar:    row.Avatar,
			Likes:     row.BaseLikes,
			CreatedAt: time.Unix(row.CreatedAt, 0),
		}}
	}

	var roots []*commentNode
	for _, row := range rows {
		n := nodes[row.ID]
		if row.ParentID == nil {
			roots = append(roots, n)
			continue
		}
		if parent, ok := nodes[*row.ParentID]; ok {
			parent.children = append(parent.children, n)
		}
	}

	thread := &gallery.Thread{}
	for _, root := range roots {
		thread.Comments = append(thread.Comments, freezeNode(root))
	}
	return thread
}

func freezeNode(n *commentNode) gallery.Comment {
	c := n.comment
	for _, child := range n.children {
		c.Replies = append(c.Replies, freezeNode(child))
	}
	return c
}

func decorateComments(comments []gallery.Comment, liked gallery.IDSet) []CommentView {
	out := make([]CommentView, 0, len(comments))
	for _, c := range comments {
		view := CommentView{
			Comment:        c,
			EffectiveLikes: gallery.EffectiveCommentLikes(c, liked),
			Liked:          liked.Has(c.ID),
		}
		if len(c.Replies) > 0 {
			view.ReplyViews = decorateComments(c.Replies, liked)
		}
		out = append(out, view)
	}
	return out
}

// renderMarkdown converts a moment description to HTML using goldmark.
func renderMarkdown(md string) template.HTML {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(md))
	}
	return template.HTML(buf.String())
}
