package gallery

import "time"

// UploadedIDPrefix is prepended to upload ids when projecting them into the
// moment identity space. Seed ids are small numerics, so prefixed ids can
// never collide with them.
const UploadedIDPrefix = "uploaded_"

// Default values substituted for missing upload metadata.
const (
	DefaultSubtitle    = "A precious moment"
	DefaultDescription = "A moment worth remembering"
	DefaultLocation    = "Unknown"
)

// UploadedBadge is the badge every uploaded moment carries.
var UploadedBadge = Badge{Text: "Your Memory", Icon: "camera", Color: "bg-gradient-sunset"}

// UploadRecord is one user-uploaded photo as held by the upload store.
// Date, description, location, and tags are optional; the normalizer fills
// the gaps.
type UploadRecord struct {
	ID          string
	Title       string
	Description string
	Image       string
	Date        *time.Time
	Likes       int
	Location    string
	Tags        []string
}

// NormalizeUpload projects one upload record into the uniform moment shape.
// When the upload has no date, now is used so year, month name, and season
// still derive from a single source.
func NormalizeUpload(u UploadRecord, now time.Time) Moment {
	src := now
	if u.Date != nil {
		src = *u.Date
	}
	date, year, month, season := DeriveDate(src)

	subtitle := u.Description
	if subtitle == "" {
		subtitle = DefaultSubtitle
	}
	description := u.Description
	if description == "" {
		description = DefaultDescription
	}
	location := u.Location
	if location == "" {
		location = DefaultLocation
	}
	tags := u.Tags
	if tags == nil {
		tags = []string{}
	}

	return Moment{
		ID:          UploadedIDPrefix + u.ID,
		Title:       u.Title,
		Subtitle:    subtitle,
		Image:       u.Image,
		Date:        date,
		Year:        year,
		Month:       month,
		Season:      season,
		Likes:       u.Likes,
		Location:    location,
		Category:    CategoryMilestones,
		Badge:       UploadedBadge,
		Tags:        tags,
		Description: description,
		IsUploaded:  true,
		UploadID:    u.ID,
	}
}

// Combine produces the unified moment sequence: normalized uploads first,
// then the seed moments. It is called on every read so the projection stays
// current whenever the upload collection changes.
func Combine(uploads []UploadRecord, seeds []Moment, now time.Time) []Moment {
	out := make([]Moment, 0, len(uploads)+len(seeds))
	for _, u := range uploads {
		out = append(out, NormalizeUpload(u, now))
	}
	out = append(out, seeds...)
	return out
}
