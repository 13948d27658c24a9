package domain

import "time"

// Comment belongs to exactly one post through PostID.
type Comment struct {
	ID            string
	PostID        string
	CommentedBy   string
	CommentedUser string
	Content       string
	Timestamp     time.Time
}

func (c Comment) Persisted() bool {
	return c.ID != ""
}
