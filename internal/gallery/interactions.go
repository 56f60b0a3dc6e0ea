package gallery

// IDSet is an unordered membership set of identifiers. It backs the
// viewer-local liked/bookmarked moment sets and the liked-comment set.
type IDSet map[string]struct{}

// NewIDSet creates a set seeded with the given ids.
func NewIDSet(ids ...string) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has reports membership.
func (s IDSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Toggle flips membership for id and reports whether it is now present.
// Unknown ids are simply added; toggling twice restores the original state.
func (s IDSet) Toggle(id string) bool {
	if s.Has(id) {
		delete(s, id)
		return false
	}
	s[id] = struct{}{}
	return true
}

// IDs returns the members in unspecified order.
func (s IDSet) IDs() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	return out
}

// Interactions tracks one viewer's like and bookmark membership as two
// independent sets keyed by moment id.
type Interactions struct {
	Liked      IDSet
	Bookmarked IDSet
}

// NewInteractions creates an empty interaction state.
func NewInteractions() *Interactions {
	return &Interactions{
		Liked:      NewIDSet(),
		Bookmarked: NewIDSet(),
	}
}

// ToggleLike flips like membership for a moment id and reports whether the
// moment is now liked.
func (in *Interactions) ToggleLike(momentID string) bool {
	return in.Liked.Toggle(momentID)
}

// ToggleBookmark flips bookmark membership for a moment id and reports
// whether the moment is now bookmarked.
func (in *Interactions) ToggleBookmark(momentID string) bool {
	return in.Bookmarked.Toggle(momentID)
}

// EffectiveLikes computes the display like count for a moment: the stored
// base count plus one iff the viewer has liked it. The adjustment is
// display-only and never written back into the base count.
func (in *Interactions) EffectiveLikes(m Moment) int {
	if in.Liked.Has(m.ID) {
		return m.Likes + 1
	}
	return m.Likes
}
