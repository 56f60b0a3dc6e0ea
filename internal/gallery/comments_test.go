package gallery

import (
	"reflect"
	"testing"

	"github.com/campusfest/memories/internal/errors"
)

func threadFixture() *Thread {
	return &Thread{Comments: []Comment{
		{ID: "c1", Author: "Sarah M.", Text: "Amazing!", Replies: []Comment{
			{ID: "c1r1", Author: "Mike R.", Text: "Agreed"},
		}},
		{ID: "c2", Author: "Alex J.", Text: "Brings back memories"},
	}}
}

func TestThread_ReplyToTopLevel(t *testing.T) {
	th := threadFixture()

	if err := th.Reply("c2", Comment{ID: "r1", Text: "same"}); err != nil {
		t.Fatalf("Reply failed: %v", err)
	}
	if len(th.Comments[1].Replies) != 1 || th.Comments[1].Replies[0].ID != "r1" {
		t.Errorf("reply not attached to c2: %+v", th.Comments[1].Replies)
	}
}

func TestThread_ReplyToReply(t *testing.T) {
	th := threadFixture()

	if err := th.Reply("c1r1", Comment{ID: "r2"}); err != nil {
		t.Fatalf("Reply failed: %v", err)
	}
	if len(th.Comments[0].Replies[0].Replies) != 1 {
		t.Error("reply not attached one level down")
	}
}

func TestThread_ReplyUnknownTarget(t *testing.T) {
	th := threadFixture()

	err := th.Reply("missing", Comment{ID: "r"})
	if !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("err = %v, want NOT_FOUND", err)
	}
	if len(th.IDs()) != 3 {
		t.Error("failed reply must not change the tree")
	}
}

func TestThread_DeleteTopLevelOnly(t *testing.T) {
	th := threadFixture()

	if !th.Delete("c1") {
		t.Fatal("Delete(c1) = false, want true")
	}
	if th.Len() != 1 || th.Comments[0].ID != "c2" {
		t.Errorf("remaining = %v", th.IDs())
	}
	// c1's reply went with it, never hoisted
	if _, ok := th.Find("c1r1"); ok {
		t.Error("deleted comment's reply still reachable")
	}
}

func TestThread_DeleteReplyIDRejected(t *testing.T) {
	th := threadFixture()

	if th.Delete("c1r1") {
		t.Error("Delete(reply id) = true, want false")
	}
	if th.Len() != 2 {
		t.Error("tree changed by rejected delete")
	}
}

func TestThread_LenCountsTopLevelOnly(t *testing.T) {
	if got := threadFixture().Len(); got != 2 {
		t.Errorf("Len = %d, want 2", got)
	}
}

func TestThread_IDsDocumentOrder(t *testing.T) {
	got := threadFixture().IDs()
	want := []string{"c1", "c1r1", "c2"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("IDs = %v, want %v", got, want)
	}
}

func TestNewCommentID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id, err := NewCommentID()
		if err != nil {
			t.Fatalf("NewCommentID failed: %v", err)
		}
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}

func TestEffectiveCommentLikes(t *testing.T) {
	c := Comment{ID: "c1", Likes: 5}
	liked := NewIDSet("c1")

	if got := EffectiveCommentLikes(c, liked); got != 6 {
		t.Errorf("liked count = %d, want 6", got)
	}
	if got := EffectiveCommentLikes(c, NewIDSet()); got != 5 {
		t.Errorf("unliked count = %d, want 5", got)
	}
}
