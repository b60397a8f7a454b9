package api

import (
	"Inkwell/internal/api/handler"
	"Inkwell/internal/model"
	"Inkwell/internal/pkg/mongo/mock"
	"Inkwell/internal/pkg/security"
	"Inkwell/internal/service"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryUsers struct {
	mu    sync.Mutex
	users []*model.User
}

func (m *memoryUsers) find(match func(*model.User) bool) *model.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if match(u) {
			cp := *u
			return &cp
		}
	}
	return nil
}

func (m *memoryUsers) GetUserById(_ context.Context, id uint64) (*model.User, error) {
	return m.find(func(u *model.User) bool { return u.ID == id }), nil
}

func (m *memoryUsers) GetUserByIds(_ context.Context, ids []uint64) ([]*model.User, error) {
	out := make([]*model.User, 0, len(ids))
	for _, id := range ids {
		if u := m.find(func(u *model.User) bool { return u.ID == id }); u != nil {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *memoryUsers) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	return m.find(func(u *model.User) bool { return u.Email == email }), nil
}

func (m *memoryUsers) GetUserByUsernameOrEmail(_ context.Context, username, email string) (*model.User, error) {
	return m.find(func(u *model.User) bool { return u.Username == username || u.Email == email }), nil
}

func (m *memoryUsers) CreateUser(_ context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user.ID = uint64(len(m.users) + 1)
	user.CreatedAt = time.Now()
	cp := *user
	m.users = append(m.users, &cp)
	return nil
}

type memoryRevocations struct {
	mu      sync.Mutex
	revoked map[string]bool
}

func (m *memoryRevocations) Revoke(_ context.Context, signature string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.revoked[signature] = true
	return nil
}

func (m *memoryRevocations) IsRevoked(_ context.Context, signature string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.revoked[signature], nil
}

type envelope struct {
	Code    int             `json:"code"`
	Kind    string          `json:"kind"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testServer struct {
	engine *gin.Engine
	users  *memoryUsers
}

func newTestServer() *testServer {
	gin.SetMode(gin.TestMode)

	users := &memoryUsers{}
	revocations := &memoryRevocations{revoked: make(map[string]bool)}
	posts := mock.NewPostRepo()
	categories := mock.NewCategoryRepo()

	group := &HandlersGroup{
		UserHandler:     handler.NewUserHandler(service.NewUserService(users, revocations)),
		PostHandler:     handler.NewPostHandler(service.NewPostService(posts, categories, users, nil, service.DefaultPostOptions())),
		CategoryHandler: handler.NewCategoryHandler(service.NewCategoryService(categories)),
		MediaHandler:    handler.NewMediaHandler(nil),
	}
	return &testServer{engine: SetupRouter(group, revocations, nil), users: users}
}

func (s *testServer) do(t *testing.T, method, path, token, body string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

func (s *testServer) register(t *testing.T, name string) string {
	t.Helper()
	code, env := s.do(t, http.MethodPost, "/api/auth/register", "",
		`{"username":"`+name+`","email":"`+name+`@example.com","password":"secret1"}`)
	require.Equal(t, http.StatusCreated, code, env.Message)

	var data struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	return data.Token
}

func (s *testServer) admin(t *testing.T) string {
	t.Helper()
	user := &model.User{Username: "root", Email: "root@example.com", Role: "admin"}
	require.NoError(t, s.users.CreateUser(context.Background(), user))
	token, err := security.GenerateToken(user.ID, user.Role)
	require.NoError(t, err)
	return token
}

func dataField(t *testing.T, env envelope, key string) string {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &m))
	v, _ := m[key].(string)
	return v
}

func TestPostFlow(t *testing.T) {
	s := newTestServer()
	admin := s.admin(t)
	author := s.register(t, "author")
	reader := s.register(t, "reader")

	code, env := s.do(t, http.MethodPost, "/api/categories", author, `{"name":"Tech"}`)
	require.Equal(t, http.StatusCreated, code, env.Message)
	categoryID := dataField(t, env, "id")

	code, env = s.do(t, http.MethodPost, "/api/posts", "", `{"title":"x"}`)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Unauthorized", env.Kind)

	code, env = s.do(t, http.MethodPost, "/api/posts", author, `{}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "ValidationFailed", env.Kind)

	code, env = s.do(t, http.MethodPost, "/api/posts", author,
		`{"title":"Hello, World!","content":"body","category":"`+categoryID+`","isPublished":true}`)
	require.Equal(t, http.StatusCreated, code, env.Message)
	postID := dataField(t, env, "id")
	assert.Equal(t, "hello-world", dataField(t, env, "slug"))

	code, env = s.do(t, http.MethodPost, "/api/posts", reader,
		`{"title":"Hello, World!","content":"again","category":"`+categoryID+`"}`)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "DuplicateKey", env.Kind)

	code, _ = s.do(t, http.MethodGet, "/api/posts/hello-world", "", "")
	assert.Equal(t, http.StatusOK, code)

	code, env = s.do(t, http.MethodGet, "/api/posts/"+postID, "", "")
	require.Equal(t, http.StatusOK, code)
	var viewed struct {
		ViewCount int64 `json:"viewCount"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &viewed))
	assert.Equal(t, int64(2), viewed.ViewCount)

	code, env = s.do(t, http.MethodGet, "/api/posts/nope", "", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Post not found", env.Message)

	code, env = s.do(t, http.MethodPut, "/api/posts/"+postID, reader, `{"title":"Hijack"}`)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "Forbidden", env.Kind)

	code, _ = s.do(t, http.MethodPut, "/api/posts/"+postID, admin, `{"content":"moderated"}`)
	assert.Equal(t, http.StatusOK, code)

	code, env = s.do(t, http.MethodPost, "/api/posts/"+postID+"/comments", reader, `{"content":"great"}`)
	require.Equal(t, http.StatusCreated, code, env.Message)

	code, env = s.do(t, http.MethodGet, "/api/posts?page=1&limit=5", "", "")
	require.Equal(t, http.StatusOK, code)
	var page struct {
		Count      int   `json:"count"`
		Total      int64 `json:"total"`
		TotalPages int   `json:"totalPages"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Equal(t, 1, page.Count)
	assert.Equal(t, int64(1), page.Total)
	assert.Equal(t, 1, page.TotalPages)

	code, env = s.do(t, http.MethodGet, "/api/posts/search", "", "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "InvalidArgument", env.Kind)

	code, _ = s.do(t, http.MethodGet, "/api/posts/search?q=hello", "", "")
	assert.Equal(t, http.StatusOK, code)

	code, _ = s.do(t, http.MethodDelete, "/api/categories/"+categoryID, author, "")
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = s.do(t, http.MethodDelete, "/api/posts/"+postID, author, "")
	assert.Equal(t, http.StatusOK, code)

	code, _ = s.do(t, http.MethodDelete, "/api/posts/"+postID, author, "")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestLogoutRevokesToken(t *testing.T) {
	s := newTestServer()
	token := s.register(t, "alice")

	code, _ := s.do(t, http.MethodGet, "/api/auth/me", token, "")
	require.Equal(t, http.StatusOK, code)

	code, _ = s.do(t, http.MethodPost, "/api/auth/logout", token, "")
	require.Equal(t, http.StatusOK, code)

	code, env := s.do(t, http.MethodGet, "/api/auth/me", token, "")
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Unauthorized", env.Kind)
}

func TestPostInputChecks(t *testing.T) {
	s := newTestServer()
	author := s.register(t, "author")
	reader := s.register(t, "reader")

	code, env := s.do(t, http.MethodPost, "/api/categories", author, `{"name":"  Tech  "}`)
	require.Equal(t, http.StatusCreated, code, env.Message)
	assert.Equal(t, "Tech", dataField(t, env, "name"))
	assert.Equal(t, "tech", dataField(t, env, "slug"))
	categoryID := dataField(t, env, "id")

	code, env = s.do(t, http.MethodPost, "/api/categories", author, `{"name":"   "}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "ValidationFailed", env.Kind)

	code, env = s.do(t, http.MethodPost, "/api/posts", author,
		`{"title":"   ","content":"body","category":"`+categoryID+`"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "ValidationFailed", env.Kind)

	code, env = s.do(t, http.MethodPost, "/api/posts", author,
		`{"title":"  Hello World  ","content":"body","category":"`+categoryID+`"}`)
	require.Equal(t, http.StatusCreated, code, env.Message)
	assert.Equal(t, "hello-world", dataField(t, env, "slug"))
	postID := dataField(t, env, "id")

	longTitle := `{"title":"` + strings.Repeat("t", 150) + `"}`

	code, env = s.do(t, http.MethodPut, "/api/posts/"+postID, reader, longTitle)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "Forbidden", env.Kind)

	code, env = s.do(t, http.MethodPut, "/api/posts/000000000000000000000000", reader, longTitle)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "NotFound", env.Kind)

	code, env = s.do(t, http.MethodPut, "/api/posts/"+postID, author, longTitle)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "ValidationFailed", env.Kind)
}
