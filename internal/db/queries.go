package db

import (
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/campusfest/memories/internal/errors"
)

// ErrUniqueConstraint is returned when an insert violates a UNIQUE constraint.
var ErrUniqueConstraint = &errors.GalleryError{
	Code:    "UNIQUE_CONSTRAINT",
	Status:  409,
	Message: "unique constraint violation",
}

// User is one account row.
type User struct {
	ID           string
	Email        string
	EmailNorm    string
	PasswordHash string
	FirstName    string
	LastName     string
	Phone        *string
	College      *string
	CreatedAt    int64
	UpdatedAt    int64
}

// Session is one sign-in session row.
type Session struct {
	Token     string
	UserID    string
	CreatedAt int64
	ExpiresAt int64
}

// Upload is one uploaded-photo row. TakenAt is the user-supplied photo date
// (nullable); CreatedAt is when the upload happened.
type Upload struct {
	ID          string
	UserID      *string
	Title       string
	Description *string
	ImagePath   string
	ThumbPath   *string
	TakenAt     *int64
	Likes       int
	Location    *string
	Tags        []string
	CreatedAt   int64
	UpdatedAt   int64
}

// CommentRow is one comment row. ParentID is nil for top-level comments.
type CommentRow struct {
	ID        string
	MomentID  string
	ParentID  *string
	UserID    *string
	Author    string
	Avatar    string
	Body      string
	BaseLikes int
	CreatedAt int64
}

// Report is one abuse report row. Kind is "moment" or "comment".
type Report struct {
	ID         string
	Kind       string
	TargetID   string
	Reason     string
	Details    *string
	ReporterID *string
	CreatedAt  int64
}

// isUniqueConstraintError checks if the error is a SQLite UNIQUE constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	// SQLite returns "UNIQUE constraint failed: ..." for unique violations
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// ---- users ----

// InsertUser stores a new account. A duplicate normalized email returns
// ErrUniqueConstraint.
func InsertUser(database *sql.DB, u *User) error {
	query := `
		INSERT INTO users (id, email, email_norm, password_hash,
			first_name, last_name, phone, college, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := database.Exec(query,
		u.ID, u.Email, u.EmailNorm, u.PasswordHash,
		u.FirstName, u.LastName, toNullString(u.Phone), toNullString(u.College),
		u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return ErrUniqueConstraint
		}
		return errors.NewInternal(err)
	}
	return nil
}

// GetUserByEmail retrieves an account by normalized email.
func GetUserByEmail(database *sql.DB, emailNorm string) (*User, error) {
	row := database.QueryRow(`
		SELECT id, email, email_norm, password_hash, first_name, last_name,
			phone, college, created_at, updated_at
		FROM users WHERE email_norm = ?
	`, emailNorm)
	return scanUser(row)
}

// GetUserByID retrieves an account by id.
func GetUserByID(database *sql.DB, id string) (*User, error) {
	row := database.QueryRow(`
		SELECT id, email, email_norm, password_hash, first_name, last_name,
			phone, college, created_at, updated_at
		FROM users WHERE id = ?
	`, id)
	return scanUser(row)
}

func scanUser(row *sql.Row) (*User, error) {
	var u User
	var phone, college sql.NullString
	err := row.Scan(&u.ID, &u.Email, &u.EmailNorm, &u.PasswordHash,
		&u.FirstName, &u.LastName, &phone, &college, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, errors.NewUserNotFound()
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	u.Phone = fromNullString(phone)
	u.College = fromNullString(college)
	return &u, nil
}

// UpdateUserProfile updates the mutable profile fields of an account.
func UpdateUserProfile(database *sql.DB, id, firstName, lastName string, phone, college *string, now int64) error {
	res, err := database.Exec(`
		UPDATE users SET first_name = ?, last_name = ?, phone = ?, college = ?, updated_at = ?
		WHERE id = ?
	`, firstName, lastName, toNullString(phone), toNullString(college), now, id)
	if err != nil {
		return errors.NewInternal(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.NewInternal(err)
	}
	if n == 0 {
		return errors.NewUserNotFound()
	}
	return nil
}

// ---- sessions ----

// InsertSession stores a new sign-in session.
func InsertSession(database *sql.DB, s *Session) error {
	_, err := database.Exec(`
		INSERT INTO sessions (token, user_id, created_at, expires_at)
		VALUES (?, ?, ?, ?)
	`, s.Token, s.UserID, s.CreatedAt, s.ExpiresAt)
	if err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// GetSession retrieves a session by token. Expiry is not checked here; the
// caller compares ExpiresAt against its clock.
func GetSession(database *sql.DB, token string) (*Session, error) {
	var s Session
	err := database.QueryRow(`
		SELECT token, user_id, created_at, expires_at FROM sessions WHERE token = ?
	`, token).Scan(&s.Token, &s.UserID, &s.CreatedAt, &s.ExpiresAt)
	if err == sql.ErrNoRows {
		return nil, errors.NewUnauthorized()
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	return &s, nil
}

// DeleteSession removes a session (sign-out). Deleting an unknown token is
// not an error.
func DeleteSession(database *sql.DB, token string) error {
	if _, err := database.Exec(`DELETE FROM sessions WHERE token = ?`, token); err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// PurgeExpiredSessions removes sessions whose expiry is at or before now.
func PurgeExpiredSessions(database *sql.DB, now int64) (int64, error) {
	res, err := database.Exec(`DELETE FROM sessions WHERE expires_at <= ?`, now)
	if err != nil {
		return 0, errors.NewInternal(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, errors.NewInternal(err)
	}
	return n, nil
}

// ---- uploads ----

// InsertUpload stores a new uploaded photo.
func InsertUpload(database *sql.DB, u *Upload) error {
	tagsJSON, err := marshalTags(u.Tags)
	if err != nil {
		return err
	}
	_, err = database.Exec(`
		INSERT INTO uploads (id, user_id, title, description, image_path,
			thumb_path, taken_at, likes, location, tags_json, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, u.ID, toNullString(u.UserID), u.Title, toNullString(u.Description), u.ImagePath,
		toNullString(u.ThumbPath), toNullInt(u.TakenAt), u.Likes,
		toNullString(u.Location), tagsJSON, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// GetUpload retrieves one upload by id.
func GetUpload(database *sql.DB, id string) (*Upload, error) {
	row := database.QueryRow(`
		SELECT id, user_id, title, description, image_path, thumb_path,
			taken_at, likes, location, tags_json, created_at, updated_at
		FROM uploads WHERE id = ?
	`, id)
	u, err := scanUpload(row)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFound("upload", id)
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	return u, nil
}

// ListUploads returns all uploads, newest first.
func ListUploads(database *sql.DB) ([]Upload, error) {
	rows, err := database.Query(`
		SELECT id, user_id, title, description, image_path, thumb_path,
			taken_at, likes, location, tags_json, created_at, updated_at
		FROM uploads ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	var out []Upload
	for rows.Next() {
		u, err := scanUpload(rows)
		if err != nil {
			return nil, errors.NewInternal(err)
		}
		out = append(out, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}
	return out, nil
}

// UpdateUpload updates the editable metadata of an upload.
func UpdateUpload(database *sql.DB, u *Upload) error {
	tagsJSON, err := marshalTags(u.Tags)
	if err != nil {
		return err
	}
	res, err := database.Exec(`
		UPDATE uploads SET title = ?, description = ?, taken_at = ?, location = ?,
			tags_json = ?, updated_at = ?
		WHERE id = ?
	`, u.Title, toNullString(u.Description), toNullInt(u.TakenAt),
		toNullString(u.Location), tagsJSON, u.UpdatedAt, u.ID)
	if err != nil {
		return errors.NewInternal(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.NewInternal(err)
	}
	if n == 0 {
		return errors.NewNotFound("upload", u.ID)
	}
	return nil
}

// DeleteUpload removes an upload row. Returns NotFound when no row matches.
func DeleteUpload(database *sql.DB, id string) error {
	res, err := database.Exec(`DELETE FROM uploads WHERE id = ?`, id)
	if err != nil {
		return errors.NewInternal(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.NewInternal(err)
	}
	if n == 0 {
		return errors.NewNotFound("upload", id)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUpload(row rowScanner) (*Upload, error) {
	var u Upload
	var userID, description, thumbPath, location, tagsJSON sql.NullString
	var takenAt sql.NullInt64
	err := row.Scan(&u.ID, &userID, &u.Title, &description, &u.ImagePath,
		&thumbPath, &takenAt, &u.Likes, &location, &tagsJSON, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	u.UserID = fromNullString(userID)
	u.Description = fromNullString(description)
	u.ThumbPath = fromNullString(thumbPath)
	u.Location = fromNullString(location)
	u.TakenAt = fromNullInt(takenAt)
	if tagsJSON.Valid && tagsJSON.String != "" {
		if err := json.Unmarshal([]byte(tagsJSON.String), &u.Tags); err != nil {
			return nil, err
		}
	}
	return &u, nil
}

// ---- comments ----

// InsertComment stores a new comment or reply.
func InsertComment(database *sql.DB, c *CommentRow) error {
	_, err := database.Exec(`
		INSERT INTO comments (id, moment_id, parent_id, user_id, author,
			avatar, body, base_likes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, c.ID, c.MomentID, toNullString(c.ParentID), toNullString(c.UserID),
		c.Author, c.Avatar, c.Body, c.BaseLikes, c.CreatedAt)
	if err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// GetComment retrieves one comment row by id.
func GetComment(database *sql.DB, id string) (*CommentRow, error) {
	row := database.QueryRow(`
		SELECT id, moment_id, parent_id, user_id, author, avatar, body,
			base_likes, created_at
		FROM comments WHERE id = ?
	`, id)
	c, err := scanComment(row)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFound("comment", id)
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	return c, nil
}

// ListComments returns all comment rows for a moment in creation order.
func ListComments(database *sql.DB, momentID string) ([]CommentRow, error) {
	rows, err := database.Query(`
		SELECT id, moment_id, parent_id, user_id, author, avatar, body,
			base_likes, created_at
		FROM comments WHERE moment_id = ? ORDER BY created_at, id
	`, momentID)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	var out []CommentRow
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, errors.NewInternal(err)
		}
		out = append(out, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}
	return out, nil
}

// DeleteTopLevelComment removes a top-level comment; its replies go with it
// via the parent_id cascade. Reply ids do not match here: deletion never
// reaches into nested replies, mirroring the display behavior.
func DeleteTopLevelComment(database *sql.DB, id string) error {
	res, err := database.Exec(`DELETE FROM comments WHERE id = ? AND parent_id IS NULL`, id)
	if err != nil {
		return errors.NewInternal(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.NewInternal(err)
	}
	if n == 0 {
		return errors.NewNotFound("comment", id)
	}
	return nil
}

// CommentDepth returns 0 for a top-level comment, 1 for a reply, and so on.
func CommentDepth(database *sql.DB, id string) (int, error) {
	depth := 0
	current := id
	for {
		var parent sql.NullString
		err := database.QueryRow(`SELECT parent_id FROM comments WHERE id = ?`, current).Scan(&parent)
		if err == sql.ErrNoRows {
			return 0, errors.NewNotFound("comment", id)
		}
		if err != nil {
			return 0, errors.NewInternal(err)
		}
		if !parent.Valid {
			return depth, nil
		}
		depth++
		current = parent.String
	}
}

func scanComment(row rowScanner) (*CommentRow, error) {
	var c CommentRow
	var parentID, userID sql.NullString
	err := row.Scan(&c.ID, &c.MomentID, &parentID, &userID, &c.Author,
		&c.Avatar, &c.Body, &c.BaseLikes, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	c.ParentID = fromNullString(parentID)
	c.UserID = fromNullString(userID)
	return &c, nil
}

// ---- interaction sets ----

// toggleMembership flips a (user_id, key) row in a two-column membership
// table and reports whether the row is now present.
func toggleMembership(database *sql.DB, table, keyCol, userID, key string, now int64) (bool, error) {
	res, err := database.Exec(
		`DELETE FROM `+table+` WHERE user_id = ? AND `+keyCol+` = ?`, userID, key)
	if err != nil {
		return false, errors.NewInternal(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, errors.NewInternal(err)
	}
	if n > 0 {
		return false, nil
	}
	_, err = database.Exec(
		`INSERT INTO `+table+` (user_id, `+keyCol+`, created_at) VALUES (?, ?, ?)`,
		userID, key, now)
	if err != nil {
		return false, errors.NewInternal(err)
	}
	return true, nil
}

// ToggleMomentLike flips the viewer's like for a moment and reports the new
// membership. Unknown moment ids are admitted; the set is viewer state, not
// a foreign key into the catalog.
func ToggleMomentLike(database *sql.DB, userID, momentID string, now int64) (bool, error) {
	return toggleMembership(database, "moment_likes", "moment_id", userID, momentID, now)
}

// ToggleMomentBookmark flips the viewer's bookmark for a moment.
func ToggleMomentBookmark(database *sql.DB, userID, momentID string, now int64) (bool, error) {
	return toggleMembership(database, "moment_bookmarks", "moment_id", userID, momentID, now)
}

// ToggleCommentLike flips the viewer's like for a comment or reply.
func ToggleCommentLike(database *sql.DB, userID, commentID string, now int64) (bool, error) {
	return toggleMembership(database, "comment_likes", "comment_id", userID, commentID, now)
}

// listMembership returns the keys of a membership table for one user.
func listMembership(database *sql.DB, table, keyCol, userID string) ([]string, error) {
	rows, err := database.Query(
		`SELECT `+keyCol+` FROM `+table+` WHERE user_id = ?`, userID)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, errors.NewInternal(err)
		}
		out = append(out, key)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}
	return out, nil
}

// LikedMomentIDs returns the moment ids the viewer has liked.
func LikedMomentIDs(database *sql.DB, userID string) ([]string, error) {
	return listMembership(database, "moment_likes", "moment_id", userID)
}

// BookmarkedMomentIDs returns the moment ids the viewer has bookmarked.
func BookmarkedMomentIDs(database *sql.DB, userID string) ([]string, error) {
	return listMembership(database, "moment_bookmarks", "moment_id", userID)
}

// LikedCommentIDs returns the comment ids the viewer has liked within one
// moment's thread.
func LikedCommentIDs(database *sql.DB, userID, momentID string) ([]string, error) {
	rows, err := database.Query(`
		SELECT cl.comment_id FROM comment_likes cl
		JOIN comments c ON c.id = cl.comment_id
		WHERE cl.user_id = ? AND c.moment_id = ?
	`, userID, momentID)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, errors.NewInternal(err)
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}
	return out, nil
}

// ---- reports ----

// InsertReport stores an abuse report.
func InsertReport(database *sql.DB, r *Report) error {
	_, err := database.Exec(`
		INSERT INTO reports (id, kind, target_id, reason, details, reporter_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, r.ID, r.Kind, r.TargetID, r.Reason, toNullString(r.Details),
		toNullString(r.ReporterID), r.CreatedAt)
	if err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// ---- helpers ----

func marshalTags(tags []string) (sql.NullString, error) {
	if len(tags) == 0 {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return sql.NullString{}, errors.NewInternal(err)
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

func toNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func fromNullString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

func toNullInt(i *int64) sql.NullInt64 {
	if i == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *i, Valid: true}
}

func fromNullInt(i sql.NullInt64) *int64 {
	if !i.Valid {
		return nil
	}
	v := i.Int64
	return &v
}
