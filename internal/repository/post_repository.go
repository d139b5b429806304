package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/kartike996/chatterbox-post-service/model"
)

// ErrPostNotFound is returned when no post matches the given postId. A postId
// that is not a valid ObjectID hex cannot match anything and maps here too.
var ErrPostNotFound = errors.New("post not found")

// PostRepository is the gateway to the posts collection. It is the sole
// authority assigning postIds.
type PostRepository interface {
	Insert(ctx context.Context, post *model.Post) (string, error)
	Update(ctx context.Context, postID string, post *model.Post) error
	FindByID(ctx context.Context, postID string) (*model.Post, error)
	FindByUsername(ctx context.Context, username string) ([]model.Post, error)
	FindAll(ctx context.Context) ([]model.Post, error)
	DeleteByID(ctx context.Context, postID string) error
	DeleteByUsername(ctx context.Context, username string) (int64, error)
	DeleteAll(ctx context.Context) error
}

type mongoPostRepository struct {
	col *mongo.Collection
}

func NewMongoPostRepository(client *mongo.Client, dbName string) PostRepository {
	return &mongoPostRepository{
		col: client.Database(dbName).Collection("posts"),
	}
}

func (r *mongoPostRepository) Insert(ctx context.Context, post *model.Post) (string, error) {
	res, err := r.col.InsertOne(ctx, post)
	if err != nil {
		return "", fmt.Errorf("insert post: %w", err)
	}
	post.ID = res.InsertedID.(bson.ObjectID)
	return post.ID.Hex(), nil
}

func (r *mongoPostRepository) Update(ctx context.Context, postID string, post *model.Post) error {
	oid, err := bson.ObjectIDFromHex(postID)
	if err != nil {
		return ErrPostNotFound
	}
	post.ID = oid

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": oid}, post)
	if err != nil {
		return fmt.Errorf("update post %s: %w", postID, err)
	}
	if res.MatchedCount == 0 {
		return ErrPostNotFound
	}
	return nil
}

func (r *mongoPostRepository) FindByID(ctx context.Context, postID string) (*model.Post, error) {
	oid, err := bson.ObjectIDFromHex(postID)
	if err != nil {
		return nil, ErrPostNotFound
	}

	var post model.Post
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&post); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("find post %s: %w", postID, err)
	}
	return &post, nil
}

func (r *mongoPostRepository) FindByUsername(ctx context.Context, username string) ([]model.Post, error) {
	return r.find(ctx, bson.M{"username": username})
}

func (r *mongoPostRepository) FindAll(ctx context.Context) ([]model.Post, error) {
	return r.find(ctx, bson.M{})
}

func (r *mongoPostRepository) find(ctx context.Context, filter bson.M) ([]model.Post, error) {
	cursor, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find posts: %w", err)
	}
	defer cursor.Close(ctx)

	// Empty result is a valid answer, keep it a non-nil slice so the
	// HTTP layer serializes [] instead of null.
	posts := []model.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("decode posts: %w", err)
	}
	return posts, nil
}

func (r *mongoPostRepository) DeleteByID(ctx context.Context, postID string) error {
	oid, err := bson.ObjectIDFromHex(postID)
	if err != nil {
		return ErrPostNotFound
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete post %s: %w", postID, err)
	}
	if res.DeletedCount == 0 {
		return ErrPostNotFound
	}
	return nil
}

func (r *mongoPostRepository) DeleteByUsername(ctx context.Context, username string) (int64, error) {
	res, err := r.col.DeleteMany(ctx, bson.M{"username": username})
	if err != nil {
		return 0, fmt.Errorf("delete posts by username %s: %w", username, err)
	}
	return res.DeletedCount, nil
}

func (r *mongoPostRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.col.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("delete all posts: %w", err)
	}
	return nil
}
