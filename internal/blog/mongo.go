package blog

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionName = "posts"

// MongoRepository stores posts in a MongoDB collection.
type MongoRepository struct {
	collection *mongo.Collection
}

var _ Repository = (*MongoRepository)(nil)

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{collection: db.Collection(collectionName)}
}

func (r *MongoRepository) Create(ctx context.Context, p Post) (Post, error) {
	_, err := r.collection.InsertOne(ctx, p)
	return p, err
}

func (r *MongoRepository) GetByID(ctx context.Context, id string) (Post, error) {
	var p Post
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Post{}, ErrPostNotFound
	}
	return p, err
}

func (r *MongoRepository) Update(ctx context.Context, p Post) (Post, error) {
	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		return Post{}, err
	}
	if res.MatchedCount == 0 {
		return Post{}, ErrPostNotFound
	}
	return p, nil
}

func (r *MongoRepository) Delete(ctx context.Context, id string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrPostNotFound
	}
	return nil
}

func (r *MongoRepository) List(ctx context.Context) ([]Post, error) {
	return r.find(ctx, bson.M{})
}

func (r *MongoRepository) ListFeatured(ctx context.Context) ([]Post, error) {
	return r.find(ctx, bson.M{"featured": true})
}

func (r *MongoRepository) ListByCategory(ctx context.Context, category string) ([]Post, error) {
	return r.find(ctx, bson.M{"categories": category})
}

func (r *MongoRepository) find(ctx context.Context, filter bson.M) ([]Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "publishedAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var posts []Post
	for cursor.Next(ctx) {
		var p Post
		if err := cursor.Decode(&p); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, cursor.Err()
}
