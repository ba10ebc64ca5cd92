package blog

import (
	"context"
	"errors"
	"time"
)

var ErrPostNotFound = errors.New("post not found")

type Author struct {
	Name string `json:"name" bson:"name"`
}

// Post is a blog record as stored in the posts collection.
type Post struct {
	ID          string    `json:"id" bson:"_id"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description" bson:"description"`
	Author      Author    `json:"author" bson:"author"`
	Categories  []string  `json:"categories" bson:"categories"`
	Images      []string  `json:"images" bson:"images"`
	ReadTime    string    `json:"read_time" bson:"read_time"`
	Featured    bool      `json:"featured" bson:"featured"`
	PublishedAt time.Time `json:"publishedAt" bson:"publishedAt"`
}

// Repository is the document-store port for blog posts. Listings are
// ordered by publish timestamp, newest first.
type Repository interface {
	Create(ctx context.Context, p Post) (Post, error)
	GetByID(ctx context.Context, id string) (Post, error)
	Update(ctx context.Context, p Post) (Post, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]Post, error)
	ListFeatured(ctx context.Context) ([]Post, error)
	ListByCategory(ctx context.Context, category string) ([]Post, error)
}
