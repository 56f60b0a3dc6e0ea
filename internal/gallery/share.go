package gallery

import (
	"fmt"
	"strings"
)

// ShareURL builds the canonical share link for a moment:
// <origin>/golden-moment/<id>.
func ShareURL(origin, momentID string) string {
	return strings.TrimRight(origin, "/") + "/golden-moment/" + momentID
}

// ShareText builds the human-readable blurb that accompanies a share.
func ShareText(m Moment) string {
	return fmt.Sprintf("Check out this golden moment: %s - %s", m.Title, m.Subtitle)
}
