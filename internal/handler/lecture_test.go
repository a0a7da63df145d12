package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myrestapi/backend/internal/config"
	"github.com/myrestapi/backend/internal/model"
	"github.com/myrestapi/backend/internal/service"
	"github.com/myrestapi/backend/internal/validation"
)

type fakeUserRepo struct {
	byEmail map[string]*model.UserInfo
	nextID  int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: map[string]*model.UserInfo{}}
}

func (f *fakeUserRepo) CreateUser(_ context.Context, u *model.UserInfo) (*model.UserInfo, error) {
	if _, ok := f.byEmail[u.Email]; ok {
		return nil, &pgconn.PgError{Code: "23505"}
	}
	f.nextID++
	u.ID = f.nextID
	f.byEmail[u.Email] = u
	return u, nil
}

func (f *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*model.UserInfo, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) GetUserByID(_ context.Context, id int64) (*model.UserInfo, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type fakeLectureRepo struct {
	byID   map[int64]*model.Lecture
	nextID int64
}

func newFakeLectureRepo() *fakeLectureRepo {
	return &fakeLectureRepo{byID: map[int64]*model.Lecture{}}
}

func (f *fakeLectureRepo) InsertLecture(_ context.Context, l *model.Lecture) (*model.Lecture, error) {
	f.nextID++
	l.ID = f.nextID
	stored := *l
	f.byID[l.ID] = &stored
	return l, nil
}

func (f *fakeLectureRepo) GetLecture(_ context.Context, id int64) (*model.Lecture, error) {
	if l, ok := f.byID[id]; ok {
		copied := *l
		return &copied, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeLectureRepo) UpdateLecture(_ context.Context, l *model.Lecture) (*model.Lecture, error) {
	if _, ok := f.byID[l.ID]; !ok {
		return nil, pgx.ErrNoRows
	}
	stored := *l
	f.byID[l.ID] = &stored
	return l, nil
}

func (f *fakeLectureRepo) ListLectures(_ context.Context, offset, limit int) ([]model.Lecture, error) {
	var out []model.Lecture
	for id := int64(1); id <= f.nextID; id++ {
		if l, ok := f.byID[id]; ok {
			out = append(out, *l)
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeLectureRepo) CountLectures(_ context.Context) (int64, error) {
	return int64(len(f.byID)), nil
}

type fakeTokenRepo struct {
	byUser map[int64]*model.RefreshToken
	nextID int64
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{byUser: map[int64]*model.RefreshToken{}}
}

func (f *fakeTokenRepo) InsertRefreshToken(_ context.Context, t *model.RefreshToken) (*model.RefreshToken, error) {
	if _, ok := f.byUser[t.UserID]; ok {
		return nil, &pgconn.PgError{Code: "23505"}
	}
	f.nextID++
	t.ID = f.nextID
	f.byUser[t.UserID] = t
	return t, nil
}

func (f *fakeTokenRepo) GetRefreshTokenByUserID(_ context.Context, userID int64) (*model.RefreshToken, error) {
	if t, ok := f.byUser[userID]; ok {
		return t, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeTokenRepo) GetRefreshTokenByToken(_ context.Context, token string) (*model.RefreshToken, error) {
	for _, t := range f.byUser {
		if t.Token == token {
			return t, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeTokenRepo) DeleteRefreshToken(_ context.Context, id int64) error {
	for userID, t := range f.byUser {
		if t.ID == id {
			delete(f.byUser, userID)
		}
	}
	return nil
}

type testEnv struct {
	engine   *gin.Engine
	users    *fakeUserRepo
	lectures *fakeLectureRepo
	tokens   *fakeTokenRepo
	auth     *service.AuthService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := newFakeUserRepo()
	lectures := newFakeLectureRepo()
	tokens := newFakeTokenRepo()

	authCfg := config.AuthConfig{JWTSecret: "test-secret", AccessTTL: "15m", RefreshTTL: "600s"}
	authSvc, err := service.NewAuthService(users, authCfg)
	require.NoError(t, err)
	tokenSvc, err := service.NewTokenService(users, tokens, authCfg)
	require.NoError(t, err)
	lectureSvc := service.NewLectureService(lectures, validation.New(), validation.NewLectureValidator())

	log := zerolog.Nop()
	lectureHandler := NewLectureHandler(lectureSvc, log)
	userHandler := NewUserHandler(authSvc, tokenSvc, validation.New(), log)

	r := gin.New()
	r.GET("/healthz", Ping)
	r.GET("/openapi.json", OpenAPIDoc)
	r.GET("/api", Index)

	group := r.Group("/api/lectures")
	group.GET("/:id", AuthMiddleware(authSvc), RequireRole(model.RoleUser), lectureHandler.Get)
	group.GET("", AuthMiddleware(authSvc), RequireRole(model.RoleAdmin), lectureHandler.List)
	group.POST("", OptionalAuthMiddleware(authSvc), lectureHandler.Create)
	group.PUT("/:id", AuthMiddleware(authSvc), lectureHandler.Update)

	userGroup := r.Group("/users")
	userGroup.GET("/welcome", userHandler.Welcome)
	userGroup.POST("/new", userHandler.Register)
	userGroup.POST("/login", userHandler.Login)
	userGroup.POST("/refreshToken", userHandler.RefreshToken)

	return &testEnv{engine: r, users: users, lectures: lectures, tokens: tokens, auth: authSvc}
}

// addUser registers an account directly in the fake store and returns a
// bearer token for it.
func (e *testEnv) addUser(t *testing.T, email, roles string) string {
	t.Helper()
	user := &model.UserInfo{Name: "tester", Email: email, Password: "x", Roles: roles}
	if _, ok := e.users.byEmail[email]; !ok {
		_, err := e.users.CreateUser(context.Background(), user)
		require.NoError(t, err)
	}
	token, err := e.auth.GenerateAccessToken(e.users.byEmail[email])
	require.NoError(t, err)
	return token
}

func (e *testEnv) do(t *testing.T, method, path, bearer string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

func lectureBody() map[string]any {
	base := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	return map[string]any{
		"name":                    "REST API with Go",
		"description":             "hands-on",
		"beginEnrollmentDateTime": base.Format(time.RFC3339),
		"closeEnrollmentDateTime": base.Add(24 * time.Hour).Format(time.RFC3339),
		"beginLectureDateTime":    base.Add(48 * time.Hour).Format(time.RFC3339),
		"endLectureDateTime":      base.Add(72 * time.Hour).Format(time.RFC3339),
		"location":                "Gangnam",
		"basePrice":               100,
		"maxPrice":                200,
		"limitOfEnrollment":       30,
	}
}

func TestCreateLectureAnonymous(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/lectures", "", lectureBody())
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "/api/lectures/1", w.Header().Get("Location"))

	var res struct {
		model.LectureResponse
		Links map[string]model.Link `json:"_links"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, "/api/lectures/1", res.Links["self"].Href)
	assert.Contains(t, res.Links, "update-lecture")
	assert.Contains(t, res.Links, "query-lectures")
	assert.True(t, res.Offline)
	assert.False(t, res.Free)
	assert.Empty(t, res.Email)
}

func TestCreateLectureAuthenticatedSetsOwnerEmail(t *testing.T) {
	env := newTestEnv(t)
	token := env.addUser(t, "owner@example.com", model.RoleUser)

	w := env.do(t, http.MethodPost, "/api/lectures", token, lectureBody())
	require.Equal(t, http.StatusCreated, w.Code)

	var res model.LectureResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, "owner@example.com", res.Email)
}

func TestCreateLectureWrongPricesReturnsAllErrors(t *testing.T) {
	env := newTestEnv(t)
	body := lectureBody()
	body["basePrice"] = 100
	body["maxPrice"] = 50

	w := env.do(t, http.MethodPost, "/api/lectures", "", body)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var res struct {
		Errors []map[string]any      `json:"errors"`
		Links  map[string]model.Link `json:"_links"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.Len(t, res.Errors, 3)

	// field entries first, each carrying a field attribute
	assert.Equal(t, "basePrice", res.Errors[0]["field"])
	assert.Equal(t, "wrongPrice", res.Errors[0]["code"])
	assert.Equal(t, "maxPrice", res.Errors[1]["field"])
	assert.Equal(t, "wrongPrice", res.Errors[1]["code"])

	// the form entry is recognizable by the missing field attribute
	_, hasField := res.Errors[2]["field"]
	assert.False(t, hasField)
	assert.Equal(t, "wrongPrices", res.Errors[2]["code"])

	assert.Equal(t, "/api", res.Links["index"].Href)
}

func TestCreateLectureMissingNameReturnsStructuralError(t *testing.T) {
	env := newTestEnv(t)
	body := lectureBody()
	delete(body, "name")

	w := env.do(t, http.MethodPost, "/api/lectures", "", body)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var res struct {
		Errors []map[string]any `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.NotEmpty(t, res.Errors)
	assert.Equal(t, "name", res.Errors[0]["field"])
	assert.Equal(t, "required", res.Errors[0]["code"])
}

func TestGetLectureRequiresUserRole(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/lectures/1", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetLectureNotFound(t *testing.T) {
	env := newTestEnv(t)
	token := env.addUser(t, "user@example.com", model.RoleUser)

	w := env.do(t, http.MethodGet, "/api/lectures/99", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetLectureUpdateLinkOnlyForOwner(t *testing.T) {
	env := newTestEnv(t)
	ownerToken := env.addUser(t, "owner@example.com", model.RoleUser)
	otherToken := env.addUser(t, "other@example.com", model.RoleUser)

	w := env.do(t, http.MethodPost, "/api/lectures", ownerToken, lectureBody())
	require.Equal(t, http.StatusCreated, w.Code)

	var links struct {
		Links map[string]model.Link `json:"_links"`
	}

	w = env.do(t, http.MethodGet, "/api/lectures/1", ownerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &links))
	assert.Contains(t, links.Links, "update-lecture")

	w = env.do(t, http.MethodGet, "/api/lectures/1", otherToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	links.Links = nil
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &links))
	assert.NotContains(t, links.Links, "update-lecture")
}

func TestListRequiresAdminRole(t *testing.T) {
	env := newTestEnv(t)
	userToken := env.addUser(t, "user@example.com", model.RoleUser)

	w := env.do(t, http.MethodGet, "/api/lectures", userToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestListReturnsPagedResourceWithCreateLink(t *testing.T) {
	env := newTestEnv(t)
	adminToken := env.addUser(t, "admin@example.com", "ROLE_USER,ROLE_ADMIN")

	for i := 0; i < 15; i++ {
		w := env.do(t, http.MethodPost, "/api/lectures", "", lectureBody())
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := env.do(t, http.MethodGet, "/api/lectures?page=0&size=10", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var res model.PagedLectures
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Len(t, res.Embedded.Lectures, 10)
	assert.Equal(t, int64(15), res.Page.TotalElements)
	assert.Equal(t, 2, res.Page.TotalPages)
	assert.Contains(t, res.Links, "create-lecture")
	assert.Contains(t, res.Links, "next")
	assert.NotContains(t, res.Links, "prev")
}

func TestUpdateLectureByNonOwnerForbidden(t *testing.T) {
	env := newTestEnv(t)
	ownerToken := env.addUser(t, "owner@example.com", model.RoleUser)
	otherToken := env.addUser(t, "other@example.com", model.RoleUser)

	w := env.do(t, http.MethodPost, "/api/lectures", ownerToken, lectureBody())
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.do(t, http.MethodPut, "/api/lectures/1", otherToken, lectureBody())
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestUpdateLectureByOwner(t *testing.T) {
	env := newTestEnv(t)
	ownerToken := env.addUser(t, "owner@example.com", model.RoleUser)

	w := env.do(t, http.MethodPost, "/api/lectures", ownerToken, lectureBody())
	require.Equal(t, http.StatusCreated, w.Code)

	body := lectureBody()
	body["basePrice"] = 0
	body["maxPrice"] = 0
	body["location"] = ""

	w = env.do(t, http.MethodPut, "/api/lectures/1", ownerToken, body)
	require.Equal(t, http.StatusOK, w.Code)

	var res model.LectureResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.True(t, res.Free)
	assert.False(t, res.Offline)
}

func TestUpdateLectureNotFound(t *testing.T) {
	env := newTestEnv(t)
	token := env.addUser(t, "user@example.com", model.RoleUser)

	w := env.do(t, http.MethodPut, "/api/lectures/42", token, lectureBody())
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Lecture Not Found")
}

func TestIndexLinksToLectures(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var res model.IndexResource
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, "/api/lectures", res.Links["lectures"].Href)
}

func TestInvalidLectureID(t *testing.T) {
	env := newTestEnv(t)
	token := env.addUser(t, "user@example.com", model.RoleUser)

	w := env.do(t, http.MethodGet, fmt.Sprintf("/api/lectures/%s", "abc"), token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
