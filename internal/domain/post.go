package domain

import "time"

// Post is a message-board entry. ID is assigned by the store on creation and
// is empty until then.
type Post struct {
	ID         string
	PostedBy   string    // author identifier
	PostedUser string    // author display name
	Title      string
	Content    string
	Comments   []Comment // populated only when fetched with comments
	Timestamp  time.Time
	Likes      []string // liker identifiers, no duplicates
}

// Persisted reports whether the post carries a store-assigned identifier.
func (p Post) Persisted() bool {
	return p.ID != ""
}

// HasLike reports whether userID is among the likers.
func (p Post) HasLike(userID string) bool {
	for _, l := range p.Likes {
		if l == userID {
			return true
		}
	}
	return false
}

// UniqueLikes returns likes with duplicates and empty identifiers removed,
// keeping the first occurrence of each.
func UniqueLikes(likes ...[]string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, group := range likes {
		for _, l := range group {
			if l == "" {
				continue
			}
			if _, ok := seen[l]; ok {
				continue
			}
			seen[l] = struct{}{}
			out = append(out, l)
		}
	}
	return out
}
