package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kartike996/chatterbox-post-service/internal/events"
	"github.com/kartike996/chatterbox-post-service/internal/handlers"
	"github.com/kartike996/chatterbox-post-service/services"
)

// Deps holds shared dependencies to inject into handlers.
type Deps struct {
	Service   *services.PostService
	Publisher events.Publisher
}

// Register mounts all HTTP routes in one place.
func Register(app *fiber.App, d Deps) {
	api := app.Group("/api")

	// ============================================================
	// Posts
	// ============================================================
	posts := api.Group("/posts")

	// POST /api/posts
	// Example:
	//   curl -X POST http://localhost:8080/api/posts \
	//   -H "Content-Type: application/json" \
	//   -d '{"username":"alice","content":"hello"}'
	posts.Post("/", handlers.CreatePostHandler(d.Service, d.Publisher))

	// GET /api/posts
	posts.Get("/", handlers.GetAllPostsHandler(d.Service))

	// DELETE /api/posts
	posts.Delete("/", handlers.DeleteAllPostsHandler(d.Service))

	// GET /api/posts/user/:username
	// Example:
	//   curl -X GET http://localhost:8080/api/posts/user/alice
	posts.Get("/user/:username", handlers.GetPostsByUsernameHandler(d.Service))

	// DELETE /api/posts/user/:username
	posts.Delete("/user/:username", handlers.DeletePostsByUsernameHandler(d.Service))

	// PUT /api/posts/:postId
	posts.Put("/:postId", handlers.UpdatePostHandler(d.Service))

	// GET /api/posts/:postId
	posts.Get("/:postId", handlers.GetPostByIDHandler(d.Service))

	// DELETE /api/posts/:postId
	posts.Delete("/:postId", handlers.DeletePostByIDHandler(d.Service))

	// Fallback for anything else under /api/posts. Registered last so the
	// real routes above win.
	posts.All("/*", handlers.InvalidEndpointHandler())

	// ============================================================
	// Misc
	// ============================================================

	// Health check
	// GET /api/healthz → "ok"
	api.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
}
