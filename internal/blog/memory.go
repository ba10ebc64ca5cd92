package blog

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepository keeps posts in process memory. It backs tests and
// local development when no MongoDB URI is configured.
type MemoryRepository struct {
	mu    sync.RWMutex
	posts map[string]Post
}

var _ Repository = (*MemoryRepository)(nil)

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{posts: make(map[string]Post)}
}

func (r *MemoryRepository) Create(_ context.Context, p Post) (Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.posts[p.ID] = p
	return p, nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id string) (Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.posts[id]
	if !ok {
		return Post{}, ErrPostNotFound
	}
	return p, nil
}

func (r *MemoryRepository) Update(_ context.Context, p Post) (Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[p.ID]; !ok {
		return Post{}, ErrPostNotFound
	}
	r.posts[p.ID] = p
	return p, nil
}

func (r *MemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[id]; !ok {
		return ErrPostNotFound
	}
	delete(r.posts, id)
	return nil
}

func (r *MemoryRepository) List(_ context.Context) ([]Post, error) {
	return r.filter(func(Post) bool { return true }), nil
}

func (r *MemoryRepository) ListFeatured(_ context.Context) ([]Post, error) {
	return r.filter(func(p Post) bool { return p.Featured }), nil
}

func (r *MemoryRepository) ListByCategory(_ context.Context, category string) ([]Post, error) {
	return r.filter(func(p Post) bool {
		for _, c := range p.Categories {
			if c == category {
				return true
			}
		}
		return false
	}), nil
}

func (r *MemoryRepository) filter(keep func(Post) bool) []Post {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Post, 0, len(r.posts))
	for _, p := range r.posts {
		if keep(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].PublishedAt.After(out[j].PublishedAt)
	})
	return out
}
