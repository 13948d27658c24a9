package domain

import "time"

// Like records that LikedBy liked PostID. At most one exists per pair.
type Like struct {
	ID        string
	PostID    string
	LikedBy   string
	Timestamp time.Time
}

func (l Like) Persisted() bool {
	return l.ID != ""
}

// Key identifies the (post, user) pair the store keeps unique.
func (l Like) Key() string {
	return l.PostID + ":" + l.LikedBy
}
