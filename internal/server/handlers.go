package server

import (
	"net/http"

	"github.com/orgball2608/board-api/internal/board"
)

const userHeader = "X-User-ID"

func (s *Server) createPost(w http.ResponseWriter, r *http.Request) error {
	req, err := decode[createPostRequest](r)
	if err != nil {
		return err
	}
	if req.PostedBy == "" {
		req.PostedBy = r.Header.Get(userHeader)
	}

	id, err := s.board.CreatePost(r.Context(), req.toDomain())
	if err != nil {
		return err
	}

	writeJSON(w, idResponse{ID: id}, http.StatusCreated)
	return nil
}

func (s *Server) listPosts(w http.ResponseWriter, r *http.Request) error {
	posts, err := s.board.GetAllPosts(r.Context())
	if err != nil {
		return err
	}

	views := make([]postView, 0, len(posts))
	for _, p := range posts {
		views = append(views, newPostView(p))
	}

	writeJSON(w, views, http.StatusOK)
	return nil
}

func (s *Server) getPost(w http.ResponseWriter, r *http.Request) error {
	p, err := s.board.GetPostWithComments(r.Context(), r.PathValue("post_id"))
	if err != nil {
		return err
	}

	writeJSON(w, newPostView(*p), http.StatusOK)
	return nil
}

func (s *Server) addComment(w http.ResponseWriter, r *http.Request) error {
	req, err := decode[addCommentRequest](r)
	if err != nil {
		return err
	}
	if req.CommentedBy == "" {
		req.CommentedBy = r.Header.Get(userHeader)
	}

	id, err := s.board.AddCommentToPost(r.Context(), r.PathValue("post_id"), req.toDomain())
	if err != nil {
		return err
	}

	writeJSON(w, idResponse{ID: id}, http.StatusCreated)
	return nil
}

func (s *Server) likePost(w http.ResponseWriter, r *http.Request) error {
	req, err := decodeOptional[likeRequest](r)
	if err != nil {
		return err
	}
	userID := req.LikedBy
	if userID == "" {
		userID = r.Header.Get(userHeader)
	}
	if userID == "" {
		return board.ErrMissingUser
	}

	id, err := s.board.LikePost(r.Context(), r.PathValue("post_id"), userID)
	if err != nil {
		return err
	}

	writeJSON(w, idResponse{ID: id}, http.StatusCreated)
	return nil
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	if _, err := w.Write([]byte("ok")); err != nil {
		s.logger.Error("Failed to write response", "error", err)
	}
}
