package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/campusfest/memories/internal/errors"
	"github.com/campusfest/memories/internal/gallery"
	"github.com/campusfest/memories/internal/ops"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleList serves the filtered catalog. The four filter dimensions arrive
// as query parameters; absent or "all" values match everything.
func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	out, err := ops.List(s.gallery, ops.ListInput{
		Selection: gallery.Selection{
			Category: q.Get("category"),
			Year:     q.Get("year"),
			Month:    q.Get("month"),
			Season:   q.Get("season"),
		},
		ViewerID: viewerID(r),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleFetch(w http.ResponseWriter, r *http.Request) {
	out, err := ops.Fetch(s.gallery, ops.FetchInput{
		ID:       chi.URLParam(r, "id"),
		ViewerID: viewerID(r),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	if out.ShareURL == "" || s.cfg.PublicOrigin == "" {
		out.ShareURL = gallery.ShareURL(requestOrigin(r), out.ID)
	}
	writeJSON(w, http.StatusOK, out)
}

// handleShared is the public share surface. A resolvable id returns the
// detail payload; an unresolvable one bounces to the collection page.
func (s *Server) handleShared(w http.ResponseWriter, r *http.Request) {
	out, err := ops.Fetch(s.gallery, ops.FetchInput{
		ID:       chi.URLParam(r, "id"),
		ViewerID: viewerID(r),
	})
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			http.Redirect(w, r, "/golden-moments", http.StatusFound)
			return
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// handleUpload accepts a multipart form with the photo under "image" and
// its metadata as plain fields.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	maxBytes := s.cfg.MaxImageBytes
	if maxBytes <= 0 {
		maxBytes = 10 << 20
	}
	// Headroom for the non-file fields.
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes+(1<<20))
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		writeError(w, errors.NewImageTooLarge(maxBytes, r.ContentLength))
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		writeError(w, errors.NewInvalidRequest("image file is required"))
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, errors.NewInternal(err))
		return
	}

	userID := viewerID(r)
	input := ops.UploadInput{
		Title:       r.FormValue("title"),
		Description: optionalField(r, "description"),
		Location:    optionalField(r, "location"),
		Tags:        splitTags(r.FormValue("tags")),
		ImageData:   data,
		UserID:      &userID,
	}
	if taken := r.FormValue("taken_at"); taken != "" {
		t, err := parseDate(taken)
		if err != nil {
			writeError(w, errors.NewInvalidRequest("taken_at must be RFC 3339 or YYYY-MM-DD"))
			return
		}
		input.TakenAt = &t
	}

	out, err := ops.Upload(s.gallery, input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

type updateRequest struct {
	Title       *string   `json:"title"`
	Subtitle    *string   `json:"subtitle"`
	Description *string   `json:"description"`
	Location    *string   `json:"location"`
	TakenAt     *string   `json:"taken_at"`
	Category    *string   `json:"category"`
	Tags        *[]string `json:"tags"`
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.NewInvalidRequest("invalid request body"))
		return
	}

	input := ops.UpdateInput{
		ID:          chi.URLParam(r, "id"),
		ViewerID:    viewerID(r),
		Title:       req.Title,
		Subtitle:    req.Subtitle,
		Description: req.Description,
		Location:    req.Location,
	}
	if req.Category != nil {
		c := gallery.Category(*req.Category)
		input.Category = &c
	}
	if req.Tags != nil {
		input.Tags = *req.Tags
	}
	if req.TakenAt != nil {
		t, err := parseDate(*req.TakenAt)
		if err != nil {
			writeError(w, errors.NewInvalidRequest("taken_at must be RFC 3339 or YYYY-MM-DD"))
			return
		}
		input.TakenAt = &t
	}

	out, err := ops.Update(s.gallery, input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	out, err := ops.Delete(s.gallery, ops.DeleteInput{ID: chi.URLParam(r, "id")})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleToggleLike(w http.ResponseWriter, r *http.Request) {
	out, err := ops.ToggleLike(s.gallery, ops.ToggleInput{
		MomentID: chi.URLParam(r, "id"),
		ViewerID: viewerID(r),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleToggleBookmark(w http.ResponseWriter, r *http.Request) {
	out, err := ops.ToggleBookmark(s.gallery, ops.ToggleInput{
		MomentID: chi.URLParam(r, "id"),
		ViewerID: viewerID(r),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleSaved(w http.ResponseWriter, r *http.Request) {
	out, err := ops.Saved(s.gallery, ops.SavedInput{ViewerID: viewerID(r)})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

type commentRequest struct {
	Body     string  `json:"body"`
	ParentID *string `json:"parent_id"`
}

func (s *Server) handleAddComment(w http.ResponseWriter, r *http.Request) {
	var req commentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.NewInvalidRequest("invalid request body"))
		return
	}
	out, err := ops.AddComment(s.gallery, ops.CommentInput{
		MomentID: chi.URLParam(r, "id"),
		ParentID: req.ParentID,
		Body:     req.Body,
		Author:   userFrom(r.Context()),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

func (s *Server) handleDeleteComment(w http.ResponseWriter, r *http.Request) {
	err := ops.DeleteComment(s.gallery, ops.DeleteCommentInput{
		CommentID: chi.URLParam(r, "id"),
		ViewerID:  viewerID(r),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

func (s *Server) handleToggleCommentLike(w http.ResponseWriter, r *http.Request) {
	out, err := ops.ToggleCommentLike(s.gallery, ops.CommentLikeInput{
		CommentID: chi.URLParam(r, "id"),
		ViewerID:  viewerID(r),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

type reportRequest struct {
	Kind     string  `json:"kind"`
	TargetID string  `json:"target_id"`
	Reason   string  `json:"reason"`
	Details  *string `json:"details"`
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	var req reportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.NewInvalidRequest("invalid request body"))
		return
	}
	out, err := ops.Report(s.gallery, ops.ReportInput{
		Kind:       req.Kind,
		TargetID:   req.TargetID,
		Reason:     req.Reason,
		Details:    req.Details,
		ReporterID: viewerID(r),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	imagePath, _, err := ops.ImagePaths(s.gallery, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	http.ServeFile(w, r, imagePath)
}

func (s *Server) handleThumbnail(w http.ResponseWriter, r *http.Request) {
	imagePath, thumbPath, err := ops.ImagePaths(s.gallery, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	if thumbPath == "" {
		thumbPath = imagePath
	}
	http.ServeFile(w, r, thumbPath)
}

// requestOrigin reconstructs the origin of the request for share links when
// no public origin is configured.
func requestOrigin(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}

func optionalField(r *http.Request, name string) *string {
	v := strings.TrimSpace(r.FormValue(name))
	if v == "" {
		return nil
	}
	return &v
}

func splitTags(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}

func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}
