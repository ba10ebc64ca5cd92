package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"scribewell-backend/internal/blog"
)

type postBody struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	AuthorName  string    `json:"author_name"`
	Categories  []string  `json:"categories"`
	Images      []string  `json:"images"`
	ReadTime    string    `json:"read_time"`
	Featured    bool      `json:"featured"`
	PublishedAt time.Time `json:"publishedAt"`
}

func (s *Server) handleListPosts(w http.ResponseWriter, r *http.Request) {
	var (
		posts []blog.Post
		err   error
	)
	switch {
	case r.URL.Query().Get("featured") == "true":
		posts, err = s.posts.ListFeatured(r.Context())
	case r.URL.Query().Get("category") != "":
		posts, err = s.posts.ListByCategory(r.Context(), r.URL.Query().Get("category"))
	default:
		posts, err = s.posts.List(r.Context())
	}
	if err != nil {
		s.log.WithError(err).Error("failed to list posts")
		s.writeError(w, http.StatusBadGateway, "failed to fetch posts")
		return
	}
	if posts == nil {
		posts = []blog.Post{}
	}
	s.writeJSON(w, http.StatusOK, posts)
}

func (s *Server) handleGetPost(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	post, err := s.posts.GetByID(r.Context(), id)
	if errors.Is(err, blog.ErrPostNotFound) {
		s.writeError(w, http.StatusNotFound, "post not found")
		return
	}
	if err != nil {
		s.log.WithError(err).Error("failed to fetch post")
		s.writeError(w, http.StatusBadGateway, "failed to fetch post")
		return
	}
	s.writeJSON(w, http.StatusOK, post)
}

func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	var body postBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(body.Title) == "" {
		s.writeError(w, http.StatusBadRequest, "title is required")
		return
	}
	if body.PublishedAt.IsZero() {
		body.PublishedAt = time.Now().UTC()
	}
	post, err := s.posts.Create(r.Context(), blog.Post{
		ID:          uuid.NewString(),
		Title:       body.Title,
		Description: body.Description,
		Author:      blog.Author{Name: body.AuthorName},
		Categories:  body.Categories,
		Images:      body.Images,
		ReadTime:    body.ReadTime,
		Featured:    body.Featured,
		PublishedAt: body.PublishedAt,
	})
	if err != nil {
		s.log.WithError(err).Error("failed to create post")
		s.writeError(w, http.StatusBadGateway, "failed to create post")
		return
	}
	s.writeJSON(w, http.StatusCreated, post)
}

func (s *Server) handleUpdatePost(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	existing, err := s.posts.GetByID(r.Context(), id)
	if errors.Is(err, blog.ErrPostNotFound) {
		s.writeError(w, http.StatusNotFound, "post not found")
		return
	}
	if err != nil {
		s.log.WithError(err).Error("failed to fetch post")
		s.writeError(w, http.StatusBadGateway, "failed to fetch post")
		return
	}

	var body postBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(body.Title) == "" {
		s.writeError(w, http.StatusBadRequest, "title is required")
		return
	}
	existing.Title = body.Title
	existing.Description = body.Description
	existing.Author = blog.Author{Name: body.AuthorName}
	existing.Categories = body.Categories
	existing.Images = body.Images
	existing.ReadTime = body.ReadTime
	existing.Featured = body.Featured
	if !body.PublishedAt.IsZero() {
		existing.PublishedAt = body.PublishedAt
	}

	post, err := s.posts.Update(r.Context(), existing)
	if err != nil {
		s.log.WithError(err).Error("failed to update post")
		s.writeError(w, http.StatusBadGateway, "failed to update post")
		return
	}
	s.writeJSON(w, http.StatusOK, post)
}

func (s *Server) handleDeletePost(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	err := s.posts.Delete(r.Context(), id)
	if errors.Is(err, blog.ErrPostNotFound) {
		s.writeError(w, http.StatusNotFound, "post not found")
		return
	}
	if err != nil {
		s.log.WithError(err).Error("failed to delete post")
		s.writeError(w, http.StatusBadGateway, "failed to delete post")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
