package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/kartike996/chatterbox-post-service/internal/events"
	"github.com/kartike996/chatterbox-post-service/internal/repository"
	"github.com/kartike996/chatterbox-post-service/internal/routes"
	"github.com/kartike996/chatterbox-post-service/model"
	"github.com/kartike996/chatterbox-post-service/services"
)

// ===== fakes =====

type memoryRepo struct {
	posts map[string]model.Post
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{posts: map[string]model.Post{}}
}

func (m *memoryRepo) Insert(_ context.Context, post *model.Post) (string, error) {
	post.ID = bson.NewObjectID()
	m.posts[post.ID.Hex()] = *post
	return post.ID.Hex(), nil
}

func (m *memoryRepo) Update(_ context.Context, postID string, post *model.Post) error {
	oid, err := bson.ObjectIDFromHex(postID)
	if err != nil {
		return repository.ErrPostNotFound
	}
	if _, ok := m.posts[postID]; !ok {
		return repository.ErrPostNotFound
	}
	post.ID = oid
	m.posts[postID] = *post
	return nil
}

func (m *memoryRepo) FindByID(_ context.Context, postID string) (*model.Post, error) {
	post, ok := m.posts[postID]
	if !ok {
		return nil, repository.ErrPostNotFound
	}
	return &post, nil
}

func (m *memoryRepo) FindByUsername(_ context.Context, username string) ([]model.Post, error) {
	posts := []model.Post{}
	for _, p := range m.posts {
		if p.Username == username {
			posts = append(posts, p)
		}
	}
	return posts, nil
}

func (m *memoryRepo) FindAll(_ context.Context) ([]model.Post, error) {
	posts := []model.Post{}
	for _, p := range m.posts {
		posts = append(posts, p)
	}
	return posts, nil
}

func (m *memoryRepo) DeleteByID(_ context.Context, postID string) error {
	if _, ok := m.posts[postID]; !ok {
		return repository.ErrPostNotFound
	}
	delete(m.posts, postID)
	return nil
}

func (m *memoryRepo) DeleteByUsername(_ context.Context, username string) (int64, error) {
	var count int64
	for id, p := range m.posts {
		if p.Username == username {
			delete(m.posts, id)
			count++
		}
	}
	return count, nil
}

func (m *memoryRepo) DeleteAll(_ context.Context) error {
	m.posts = map[string]model.Post{}
	return nil
}

// recordingPublisher captures published events instead of touching the bus.
type recordingPublisher struct {
	published []events.PostCreatedEvent
	fail      bool
}

func (r *recordingPublisher) PublishPostCreated(post *model.Post) error {
	if r.fail {
		return errors.New("bus unavailable")
	}
	r.published = append(r.published, events.PostCreatedEvent{
		PostID:    post.ID.Hex(),
		Username:  post.Username,
		Content:   post.Content,
		CreatedAt: post.CreatedAt,
	})
	return nil
}

func newTestApp(repo repository.PostRepository, pub events.Publisher) *fiber.App {
	app := fiber.New()
	routes.Register(app, routes.Deps{
		Service:   services.NewPostService(repo, 5, 100),
		Publisher: pub,
	})
	return app
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

// ===== tests =====

func TestCreatePostPublishesAfterPersist(t *testing.T) {
	repo := newMemoryRepo()
	pub := &recordingPublisher{}
	app := newTestApp(repo, pub)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/posts", `{"username":"alice","content":"hello"}`))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "Post created successfully")

	require.Len(t, repo.posts, 1)
	require.Len(t, pub.published, 1)
	assert.Equal(t, "alice", pub.published[0].Username)
	for id := range repo.posts {
		assert.Equal(t, id, pub.published[0].PostID, "event must carry the persisted id")
	}
}

func TestCreatePostRejectsShortContent(t *testing.T) {
	repo := newMemoryRepo()
	pub := &recordingPublisher{}
	app := newTestApp(repo, pub)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/posts", `{"username":"bob","content":"hi"}`))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	assert.Empty(t, repo.posts, "nothing may be persisted")
	assert.Empty(t, pub.published, "no event for a rejected post")
}

func TestCreatePostPublishFailureKeepsResponse(t *testing.T) {
	repo := newMemoryRepo()
	pub := &recordingPublisher{fail: true}
	app := newTestApp(repo, pub)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/posts", `{"username":"alice","content":"hello world"}`))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Len(t, repo.posts, 1, "post stays persisted when publish fails")
}

func TestUpdatePostNotFound(t *testing.T) {
	app := newTestApp(newMemoryRepo(), &recordingPublisher{})

	resp, err := app.Test(jsonRequest(http.MethodPut, "/api/posts/p1", `{"username":"alice","content":"updated text"}`))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestUpdatePostSuccess(t *testing.T) {
	repo := newMemoryRepo()
	app := newTestApp(repo, &recordingPublisher{})

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/posts", `{"username":"alice","content":"first version"}`))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var id string
	for k := range repo.posts {
		id = k
	}

	resp, err = app.Test(jsonRequest(http.MethodPut, "/api/posts/"+id, `{"username":"alice","content":"second version"}`))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "second version", repo.posts[id].Content)
}

func TestGetPostByIDNotFound(t *testing.T) {
	app := newTestApp(newMemoryRepo(), &recordingPublisher{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/posts/65f000000000000000000000", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestGetPostsByUsernameEmptyList(t *testing.T) {
	app := newTestApp(newMemoryRepo(), &recordingPublisher{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/posts/user/carol", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var posts []model.Post
	require.NoError(t, json.Unmarshal([]byte(readBody(t, resp)), &posts))
	assert.Empty(t, posts)
}

func TestDeletePostByIDThenGone(t *testing.T) {
	repo := newMemoryRepo()
	app := newTestApp(repo, &recordingPublisher{})

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/posts", `{"username":"alice","content":"hello world"}`))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var id string
	for k := range repo.posts {
		id = k
	}

	resp, err = app.Test(httptest.NewRequest(http.MethodDelete, "/api/posts/"+id, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/posts/"+id, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodDelete, "/api/posts/"+id, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestDeleteByUsernameZeroMatches(t *testing.T) {
	app := newTestApp(newMemoryRepo(), &recordingPublisher{})

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/api/posts/user/nobody", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "Deleted 0 post(s)")
}

func TestDeleteAllThenEmpty(t *testing.T) {
	repo := newMemoryRepo()
	app := newTestApp(repo, &recordingPublisher{})

	for _, body := range []string{
		`{"username":"alice","content":"first post"}`,
		`{"username":"bob","content":"second post"}`,
	} {
		resp, err := app.Test(jsonRequest(http.MethodPost, "/api/posts", body))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	}

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/api/posts", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/posts", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var posts []model.Post
	require.NoError(t, json.Unmarshal([]byte(readBody(t, resp)), &posts))
	assert.Empty(t, posts)
}

func TestInvalidEndpointFallback(t *testing.T) {
	app := newTestApp(newMemoryRepo(), &recordingPublisher{})

	for _, target := range []string{
		"/api/posts/user/alice/extra",
		"/api/posts/a/b/c",
	} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode, target)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(readBody(t, resp)), &body))
		assert.Equal(t, "Invalid Endpoint", body["error"])
		assert.EqualValues(t, 404, body["status"])
		assert.NotEmpty(t, body["timestamp"])
		assert.NotEmpty(t, body["message"])
	}
}

func TestHealthz(t *testing.T) {
	app := newTestApp(newMemoryRepo(), &recordingPublisher{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/healthz", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", readBody(t, resp))
}
