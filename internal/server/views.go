package server

import (
	"time"

	"github.com/orgball2608/board-api/internal/domain"
)

type createPostRequest struct {
	PostedBy   string    `json:"postedBy"`
	PostedUser string    `json:"postedUser"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Timestamp  time.Time `json:"timestamp"`
	Likes      []string  `json:"likes"`
}

func (r createPostRequest) toDomain() domain.Post {
	return domain.Post{
		PostedBy:   r.PostedBy,
		PostedUser: r.PostedUser,
		Title:      r.Title,
		Content:    r.Content,
		Timestamp:  r.Timestamp,
		Likes:      r.Likes,
	}
}

type addCommentRequest struct {
	CommentedBy   string    `json:"commentedBy"`
	CommentedUser string    `json:"commentedUser"`
	Content       string    `json:"content"`
	Timestamp     time.Time `json:"timestamp"`
}

func (r addCommentRequest) toDomain() domain.Comment {
	return domain.Comment{
		CommentedBy:   r.CommentedBy,
		CommentedUser: r.CommentedUser,
		Content:       r.Content,
		Timestamp:     r.Timestamp,
	}
}

type likeRequest struct {
	LikedBy string `json:"likedBy"`
}

type idResponse struct {
	ID string `json:"id"`
}

type commentView struct {
	ID            string    `json:"id"`
	PostID        string    `json:"postId"`
	CommentedBy   string    `json:"commentedBy"`
	CommentedUser string    `json:"commentedUser"`
	Content       string    `json:"content"`
	Timestamp     time.Time `json:"timestamp"`
}

type postView struct {
	ID         string        `json:"id"`
	PostedBy   string        `json:"postedBy"`
	PostedUser string        `json:"postedUser"`
	Title      string        `json:"title"`
	Content    string        `json:"content"`
	Comments   []commentView `json:"comments,omitempty"`
	Timestamp  time.Time     `json:"timestamp"`
	Likes      []string      `json:"likes"`
}

func newPostView(p domain.Post) postView {
	v := postView{
		ID:         p.ID,
		PostedBy:   p.PostedBy,
		PostedUser: p.PostedUser,
		Title:      p.Title,
		Content:    p.Content,
		Timestamp:  p.Timestamp,
		Likes:      p.Likes,
	}
	if v.Likes == nil {
		v.Likes = []string{}
	}
	if p.Comments != nil {
		v.Comments = make([]commentView, 0, len(p.Comments))
		for _, c := range p.Comments {
			v.Comments = append(v.Comments, commentView{
				ID:            c.ID,
				PostID:        c.PostID,
				CommentedBy:   c.CommentedBy,
				CommentedUser: c.CommentedUser,
				Content:       c.Content,
				Timestamp:     c.Timestamp,
			})
		}
	}
	return v
}
