package services

import (
	"context"
	"fmt"
	"time"

	"github.com/kartike996/chatterbox-post-service/internal/repository"
	"github.com/kartike996/chatterbox-post-service/model"
)

// PostService carries the business rules in front of the persistence gateway.
// Validation always runs before any write reaches the store.
type PostService struct {
	repo   repository.PostRepository
	minLen int
	maxLen int
}

func NewPostService(repo repository.PostRepository, minLen, maxLen int) *PostService {
	return &PostService{repo: repo, minLen: minLen, maxLen: maxLen}
}

// CreatePost validates and persists a new post. On success the post carries
// the assigned id, so the caller can hand it to the event publisher afterwards.
func (s *PostService) CreatePost(ctx context.Context, post *model.Post) (string, error) {
	if err := ValidatePost(post.Username, post.Content, s.minLen, s.maxLen); err != nil {
		return "", err
	}

	now := time.Now().UTC()
	post.CreatedAt = now
	post.UpdatedAt = now

	id, err := s.repo.Insert(ctx, post)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Post created successfully with id: %s", id), nil
}

// UpdatePost replaces the post with the given id. The id always comes from the
// route parameter, never from the body.
func (s *PostService) UpdatePost(ctx context.Context, postID string, post *model.Post) (string, error) {
	if err := ValidatePost(post.Username, post.Content, s.minLen, s.maxLen); err != nil {
		return "", err
	}

	post.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, postID, post); err != nil {
		return "", err
	}
	return fmt.Sprintf("Post updated successfully with id: %s", postID), nil
}

func (s *PostService) GetPostByPostID(ctx context.Context, postID string) (*model.Post, error) {
	return s.repo.FindByID(ctx, postID)
}

// GetPostsByUsername returns the user's posts. No posts is an empty list, not
// an error.
func (s *PostService) GetPostsByUsername(ctx context.Context, username string) ([]model.Post, error) {
	return s.repo.FindByUsername(ctx, username)
}

func (s *PostService) GetAllPosts(ctx context.Context) ([]model.Post, error) {
	return s.repo.FindAll(ctx)
}

func (s *PostService) DeletePostByPostID(ctx context.Context, postID string) (string, error) {
	if err := s.repo.DeleteByID(ctx, postID); err != nil {
		return "", err
	}
	return fmt.Sprintf("Post deleted successfully with id: %s", postID), nil
}

// DeletePostsByUsername deletes every post by the user. Zero matches is still
// a success.
func (s *PostService) DeletePostsByUsername(ctx context.Context, username string) (string, error) {
	count, err := s.repo.DeleteByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Deleted %d post(s) by user: %s", count, username), nil
}

func (s *PostService) DeleteAllPosts(ctx context.Context) (string, error) {
	if err := s.repo.DeleteAll(ctx); err != nil {
		return "", err
	}
	return "All posts deleted successfully", nil
}
