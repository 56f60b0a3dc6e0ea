package db

import (
	"database/sql"
	"testing"

	"github.com/campusfest/memories/internal/errors"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := Init(t.TempDir())
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

func insertTestUser(t *testing.T, database *sql.DB, id, emailNorm string) {
	t.Helper()
	err := InsertUser(database, &User{
		ID:           id,
		Email:        emailNorm,
		EmailNorm:    emailNorm,
		PasswordHash: "hash",
		FirstName:    "Test",
		LastName:     "User",
		CreatedAt:    1000,
		UpdatedAt:    1000,
	})
	if err != nil {
		t.Fatalf("InsertUser failed: %v", err)
	}
}

func TestInsertUser_DuplicateEmail(t *testing.T) {
	database := setupTestDB(t)

	insertTestUser(t, database, "u1", "sarah@example.edu")
	err := InsertUser(database, &User{
		ID:           "u2",
		Email:        "Sarah@example.edu",
		EmailNorm:    "sarah@example.edu",
		PasswordHash: "hash",
		FirstName:    "Sarah",
		LastName:     "M",
	})
	if err != ErrUniqueConstraint {
		t.Errorf("err = %v, want ErrUniqueConstraint", err)
	}
}

func TestGetUserByEmail_NotFound(t *testing.T) {
	database := setupTestDB(t)

	_, err := GetUserByEmail(database, "nobody@example.edu")
	if !errors.Is(err, errors.ErrUserNotFound) {
		t.Errorf("err = %v, want USER_NOT_FOUND", err)
	}
}

func TestUpdateUserProfile(t *testing.T) {
	database := setupTestDB(t)
	insertTestUser(t, database, "u1", "a@example.edu")

	college := "State College"
	if err := UpdateUserProfile(database, "u1", "New", "Name", nil, &college, 2000); err != nil {
		t.Fatalf("UpdateUserProfile failed: %v", err)
	}
	u, err := GetUserByID(database, "u1")
	if err != nil {
		t.Fatalf("GetUserByID failed: %v", err)
	}
	if u.FirstName != "New" || u.College == nil || *u.College != "State College" {
		t.Errorf("profile = %+v", u)
	}

	if err := UpdateUserProfile(database, "missing", "a", "b", nil, nil, 0); !errors.Is(err, errors.ErrUserNotFound) {
		t.Errorf("unknown id err = %v, want USER_NOT_FOUND", err)
	}
}

func TestSessions(t *testing.T) {
	database := setupTestDB(t)
	insertTestUser(t, database, "u1", "a@example.edu")

	s := &Session{Token: "tok", UserID: "u1", CreatedAt: 1000, ExpiresAt: 2000}
	if err := InsertSession(database, s); err != nil {
		t.Fatalf("InsertSession failed: %v", err)
	}

	got, err := GetSession(database, "tok")
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if got.UserID != "u1" || got.ExpiresAt != 2000 {
		t.Errorf("session = %+v", got)
	}

	if _, err := GetSession(database, "nope"); !errors.Is(err, errors.ErrUnauthorized) {
		t.Errorf("unknown token err = %v, want UNAUTHORIZED", err)
	}

	if err := DeleteSession(database, "tok"); err != nil {
		t.Fatalf("DeleteSession failed: %v", err)
	}
	if err := DeleteSession(database, "tok"); err != nil {
		t.Errorf("double delete errored: %v", err)
	}
}

func TestPurgeExpiredSessions(t *testing.T) {
	database := setupTestDB(t)
	insertTestUser(t, database, "u1", "a@example.edu")

	_ = InsertSession(database, &Session{Token: "old", UserID: "u1", ExpiresAt: 100})
	_ = InsertSession(database, &Session{Token: "live", UserID: "u1", ExpiresAt: 9999})

	n, err := PurgeExpiredSessions(database, 500)
	if err != nil {
		t.Fatalf("PurgeExpiredSessions failed: %v", err)
	}
	if n != 1 {
		t.Errorf("purged = %d, want 1", n)
	}
	if _, err := GetSession(database, "live"); err != nil {
		t.Errorf("live session purged: %v", err)
	}
}

func TestUploads_CRUD(t *testing.T) {
	database := setupTestDB(t)

	desc := "a day to remember"
	up := &Upload{
		ID:          "01ABC",
		Title:       "Fest Finale",
		Description: &desc,
		ImagePath:   "/tmp/x.jpg",
		Tags:        []string{"fest", "music"},
		CreatedAt:   1000,
		UpdatedAt:   1000,
	}
	if err := InsertUpload(database, up); err != nil {
		t.Fatalf("InsertUpload failed: %v", err)
	}

	got, err := GetUpload(database, "01ABC")
	if err != nil {
		t.Fatalf("GetUpload failed: %v", err)
	}
	if got.Title != "Fest Finale" || len(got.Tags) != 2 || got.Tags[1] != "music" {
		t.Errorf("upload = %+v", got)
	}
	if got.TakenAt != nil {
		t.Error("TakenAt should be nil")
	}

	got.Title = "Renamed"
	got.UpdatedAt = 2000
	if err := UpdateUpload(database, got); err != nil {
		t.Fatalf("UpdateUpload failed: %v", err)
	}
	again, _ := GetUpload(database, "01ABC")
	if again.Title != "Renamed" {
		t.Errorf("Title = %q after update", again.Title)
	}

	if err := DeleteUpload(database, "01ABC"); err != nil {
		t.Fatalf("DeleteUpload failed: %v", err)
	}
	if _, err := GetUpload(database, "01ABC"); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("err after delete = %v, want NOT_FOUND", err)
	}
	if err := DeleteUpload(database, "01ABC"); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("double delete err = %v, want NOT_FOUND", err)
	}
}

func TestListUploads_NewestFirst(t *testing.T) {
	database := setupTestDB(t)

	for i, id := range []string{"a", "b", "c"} {
		_ = InsertUpload(database, &Upload{
			ID: id, Title: id, ImagePath: "/x", CreatedAt: int64(1000 + i), UpdatedAt: int64(1000 + i),
		})
	}

	uploads, err := ListUploads(database)
	if err != nil {
		t.Fatalf("ListUploads failed: %v", err)
	}
	if len(uploads) != 3 || uploads[0].ID != "c" || uploads[2].ID != "a" {
		t.Errorf("order = %v", []string{uploads[0].ID, uploads[1].ID, uploads[2].ID})
	}
}

func insertTestComment(t *testing.T, database *sql.DB, id, momentID string, parentID *string, createdAt int64) {
	t.Helper()
	err := InsertComment(database, &CommentRow{
		ID: id, MomentID: momentID, ParentID: parentID,
		Author: "Sarah M.", Avatar: "/assets/avatar-placeholder.jpg",
		Body: "text", CreatedAt: createdAt,
	})
	if err != nil {
		t.Fatalf("InsertComment failed: %v", err)
	}
}

func TestComments_DepthAndDelete(t *testing.T) {
	database := setupTestDB(t)

	insertTestComment(t, database, "c1", "1", nil, 100)
	parent := "c1"
	insertTestComment(t, database, "c1r1", "1", &parent, 200)

	if d, _ := CommentDepth(database, "c1"); d != 0 {
		t.Errorf("depth(c1) = %d, want 0", d)
	}
	if d, _ := CommentDepth(database, "c1r1"); d != 1 {
		t.Errorf("depth(c1r1) = %d, want 1", d)
	}

	// Reply ids cannot be deleted through the top-level path
	if err := DeleteTopLevelComment(database, "c1r1"); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("delete reply err = %v, want NOT_FOUND", err)
	}

	// Deleting the top-level comment cascades to its reply
	if err := DeleteTopLevelComment(database, "c1"); err != nil {
		t.Fatalf("DeleteTopLevelComment failed: %v", err)
	}
	rows, err := ListComments(database, "1")
	if err != nil {
		t.Fatalf("ListComments failed: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("rows after cascade = %d, want 0", len(rows))
	}
}

func TestListComments_CreationOrder(t *testing.T) {
	database := setupTestDB(t)

	insertTestComment(t, database, "c2", "1", nil, 200)
	insertTestComment(t, database, "c1", "1", nil, 100)
	insertTestComment(t, database, "other", "2", nil, 50)

	rows, err := ListComments(database, "1")
	if err != nil {
		t.Fatalf("ListComments failed: %v", err)
	}
	if len(rows) != 2 || rows[0].ID != "c1" || rows[1].ID != "c2" {
		t.Errorf("order wrong: %+v", rows)
	}
}

func TestToggleMembership_RoundTrip(t *testing.T) {
	database := setupTestDB(t)

	on, err := ToggleMomentLike(database, "u1", "3", 100)
	if err != nil || !on {
		t.Fatalf("first toggle = %v, %v; want true, nil", on, err)
	}
	ids, _ := LikedMomentIDs(database, "u1")
	if len(ids) != 1 || ids[0] != "3" {
		t.Errorf("liked = %v, want [3]", ids)
	}

	off, err := ToggleMomentLike(database, "u1", "3", 200)
	if err != nil || off {
		t.Fatalf("second toggle = %v, %v; want false, nil", off, err)
	}
	ids, _ = LikedMomentIDs(database, "u1")
	if len(ids) != 0 {
		t.Errorf("liked after untoggle = %v, want empty", ids)
	}
}

func TestToggles_Independent(t *testing.T) {
	database := setupTestDB(t)

	_, _ = ToggleMomentLike(database, "u1", "3", 100)
	_, _ = ToggleMomentBookmark(database, "u1", "7", 100)

	liked, _ := LikedMomentIDs(database, "u1")
	saved, _ := BookmarkedMomentIDs(database, "u1")
	if len(liked) != 1 || liked[0] != "3" {
		t.Errorf("liked = %v", liked)
	}
	if len(saved) != 1 || saved[0] != "7" {
		t.Errorf("bookmarked = %v", saved)
	}
}

func TestLikedCommentIDs_ScopedToMoment(t *testing.T) {
	database := setupTestDB(t)

	insertTestComment(t, database, "c1", "1", nil, 100)
	insertTestComment(t, database, "c2", "2", nil, 100)
	_, _ = ToggleCommentLike(database, "u1", "c1", 100)
	_, _ = ToggleCommentLike(database, "u1", "c2", 100)

	ids, err := LikedCommentIDs(database, "u1", "1")
	if err != nil {
		t.Fatalf("LikedCommentIDs failed: %v", err)
	}
	if len(ids) != 1 || ids[0] != "c1" {
		t.Errorf("ids = %v, want [c1]", ids)
	}
}

func TestInsertReport(t *testing.T) {
	database := setupTestDB(t)

	err := InsertReport(database, &Report{
		ID: "r1", Kind: "moment", TargetID: "3", Reason: "inappropriate", CreatedAt: 100,
	})
	if err != nil {
		t.Fatalf("InsertReport failed: %v", err)
	}

	// The kind CHECK constraint rejects other values
	err = InsertReport(database, &Report{
		ID: "r2", Kind: "user", TargetID: "u1", Reason: "spam", CreatedAt: 100,
	})
	if err == nil {
		t.Error("InsertReport accepted invalid kind")
	}
}
