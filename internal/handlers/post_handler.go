package handlers

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/kartike996/chatterbox-post-service/dto"
	"github.com/kartike996/chatterbox-post-service/internal/events"
	"github.com/kartike996/chatterbox-post-service/internal/repository"
	"github.com/kartike996/chatterbox-post-service/model"
	"github.com/kartike996/chatterbox-post-service/services"
)

const mongoTimeout = 5 * time.Second

// errorResponse maps service errors onto HTTP statuses.
func errorResponse(c *fiber.Ctx, err error) error {
	var vErr *services.ValidationError
	switch {
	case errors.As(err, &vErr):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: vErr.Error()})
	case errors.Is(err, repository.ErrPostNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Message: "post not found"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: err.Error()})
	}
}

// CreatePostHandler godoc
// @Summary      Create a post
// @Description  Validate, persist and announce a new post
// @Tags         posts
// @Accept       json
// @Produce      plain
// @Param        data  body  dto.PostRequest  true  "Post payload"
// @Success      201  {string}  string
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/posts [post]
func CreatePostHandler(svc *services.PostService, pub events.Publisher) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body dto.PostRequest
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid body"})
		}

		ctx, cancel := context.WithTimeout(c.Context(), mongoTimeout)
		defer cancel()

		post := model.Post{Username: body.Username, Content: body.Content}
		log.Printf("Creating post for username: %s", post.Username)

		result, err := svc.CreatePost(ctx, &post)
		if err != nil {
			return errorResponse(c, err)
		}

		// The post is durable at this point. Publishing is advisory: a bus
		// failure must not change the response the client already earned.
		if err := pub.PublishPostCreated(&post); err != nil {
			log.Printf("Failed to publish post created event for %s: %v", post.ID.Hex(), err)
		}

		return c.Status(fiber.StatusCreated).SendString(result)
	}
}

// UpdatePostHandler godoc
// @Summary      Update a post
// @Tags         posts
// @Accept       json
// @Produce      plain
// @Param        postId  path  string           true  "Post ID (hex)"
// @Param        data    body  dto.PostRequest  true  "Post payload"
// @Success      200  {string}  string
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/posts/{postId} [put]
func UpdatePostHandler(svc *services.PostService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		postID := c.Params("postId")

		var body dto.PostRequest
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid body"})
		}

		ctx, cancel := context.WithTimeout(c.Context(), mongoTimeout)
		defer cancel()

		post := model.Post{Username: body.Username, Content: body.Content}
		log.Printf("Updating post with id: %s", postID)

		result, err := svc.UpdatePost(ctx, postID, &post)
		if err != nil {
			return errorResponse(c, err)
		}
		return c.Status(fiber.StatusOK).SendString(result)
	}
}

// GetPostsByUsernameHandler godoc
// @Summary      List posts by user
// @Tags         posts
// @Produce      json
// @Param        username  path  string  true  "Author username"
// @Success      200  {array}  model.Post
// @Router       /api/posts/user/{username} [get]
func GetPostsByUsernameHandler(svc *services.PostService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		username := c.Params("username")

		ctx, cancel := context.WithTimeout(c.Context(), mongoTimeout)
		defer cancel()

		posts, err := svc.GetPostsByUsername(ctx, username)
		if err != nil {
			return errorResponse(c, err)
		}
		return c.Status(fiber.StatusOK).JSON(posts)
	}
}

// GetPostByIDHandler godoc
// @Summary      Get a post
// @Tags         posts
// @Produce      json
// @Param        postId  path  string  true  "Post ID (hex)"
// @Success      200  {object}  model.Post
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/posts/{postId} [get]
func GetPostByIDHandler(svc *services.PostService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		postID := c.Params("postId")

		ctx, cancel := context.WithTimeout(c.Context(), mongoTimeout)
		defer cancel()

		post, err := svc.GetPostByPostID(ctx, postID)
		if err != nil {
			return errorResponse(c, err)
		}
		return c.Status(fiber.StatusOK).JSON(post)
	}
}

// GetAllPostsHandler godoc
// @Summary      List all posts
// @Tags         posts
// @Produce      json
// @Success      200  {array}  model.Post
// @Router       /api/posts [get]
func GetAllPostsHandler(svc *services.PostService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.Context(), mongoTimeout)
		defer cancel()

		posts, err := svc.GetAllPosts(ctx)
		if err != nil {
			return errorResponse(c, err)
		}
		return c.Status(fiber.StatusOK).JSON(posts)
	}
}

// DeletePostByIDHandler godoc
// @Summary      Delete a post
// @Tags         posts
// @Produce      plain
// @Param        postId  path  string  true  "Post ID (hex)"
// @Success      200  {string}  string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/posts/{postId} [delete]
func DeletePostByIDHandler(svc *services.PostService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		postID := c.Params("postId")

		ctx, cancel := context.WithTimeout(c.Context(), mongoTimeout)
		defer cancel()

		log.Printf("Deleting post with id: %s", postID)
		result, err := svc.DeletePostByPostID(ctx, postID)
		if err != nil {
			return errorResponse(c, err)
		}
		return c.Status(fiber.StatusOK).SendString(result)
	}
}

// DeletePostsByUsernameHandler godoc
// @Summary      Delete all posts by user
// @Tags         posts
// @Produce      plain
// @Param        username  path  string  true  "Author username"
// @Success      200  {string}  string
// @Router       /api/posts/user/{username} [delete]
func DeletePostsByUsernameHandler(svc *services.PostService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		username := c.Params("username")

		ctx, cancel := context.WithTimeout(c.Context(), mongoTimeout)
		defer cancel()

		log.Printf("Deleting all posts by username: %s", username)
		result, err := svc.DeletePostsByUsername(ctx, username)
		if err != nil {
			return errorResponse(c, err)
		}
		return c.Status(fiber.StatusOK).SendString(result)
	}
}

// DeleteAllPostsHandler godoc
// @Summary      Delete every post (admin/cleanup)
// @Tags         posts
// @Produce      plain
// @Success      200  {string}  string
// @Router       /api/posts [delete]
func DeleteAllPostsHandler(svc *services.PostService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.Context(), mongoTimeout)
		defer cancel()

		log.Println("Deleting all posts from the system")
		result, err := svc.DeleteAllPosts(ctx)
		if err != nil {
			return errorResponse(c, err)
		}
		return c.Status(fiber.StatusOK).SendString(result)
	}
}

// InvalidEndpointHandler catches everything under /api/posts that no route
// matched and answers with the structured 404 body.
func InvalidEndpointHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		log.Printf("Invalid endpoint hit under /api/posts: %s %s", c.Method(), c.Path())
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"status":    fiber.StatusNotFound,
			"error":     "Invalid Endpoint",
			"message":   "The requested endpoint is not valid. Please check the URL.",
		})
	}
}
