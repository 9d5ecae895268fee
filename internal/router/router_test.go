package router

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/wordle-circles/config"
	"github.com/oksasatya/wordle-circles/internal/application"
	"github.com/oksasatya/wordle-circles/internal/container"
	"github.com/oksasatya/wordle-circles/internal/infrastructure/memory"
	"github.com/oksasatya/wordle-circles/internal/interface/middleware"
	"github.com/oksasatya/wordle-circles/pkg/helpers"
	"github.com/oksasatya/wordle-circles/pkg/validation"
)

type envelope struct {
	Status    int               `json:"status"`
	RequestID string            `json:"request_id"`
	Success   bool              `json:"success"`
	Message   string            `json:"message"`
	Data      json.RawMessage   `json:"data"`
	Error     map[string]string `json:"error"`
}

func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	container.SetConfig(&config.Config{AppName: "wordle-circles", DebugMetricsEnabled: true, SessionTTL: time.Hour})
	container.SetLogger(logger)
	container.SetRedis(nil)
	jwt := helpers.NewJWTManager("access", "refresh", time.Minute, time.Hour)
	container.SetJWT(jwt)

	st := memory.NewStore()
	svc := Services{
		Users:   application.NewUserService(st.Users(), jwt, nil, logger, nil, nil, time.Hour),
		Circles: application.NewCircleService(st.Circles(), st.Members(), st.Users(), logger, nil),
		Scores:  application.NewScoreService(st.Scores(), logger),
	}

	engine := gin.New()
	engine.Use(middleware.RequestIDMiddleware())
	reg := NewRegistry(engine)
	Mount(reg, svc)
	reg.RegisterAll()
	return engine
}

type client struct {
	t      *testing.T
	engine *gin.Engine
	token  string
}

func (c *client) do(method, path string, body any) (int, envelope) {
	c.t.Helper()
	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(c.t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	w := httptest.NewRecorder()
	c.engine.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 && strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(c.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	for _, ck := range w.Result().Cookies() {
		if ck.Name == helpers.AccessCookie && ck.Value != "" {
			c.token = ck.Value
		}
	}
	return w.Code, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

func signUp(t *testing.T, engine *gin.Engine, name, email string) *client {
	t.Helper()
	c := &client{t: t, engine: engine}
	code, _ := c.do(http.MethodPost, "/api/register", map[string]any{"name": name, "email": email, "password": "password1"})
	require.Equal(t, http.StatusCreated, code)
	code, _ = c.do(http.MethodPost, "/api/login", map[string]any{"email": email, "password": "password1"})
	require.Equal(t, http.StatusOK, code)
	require.NotEmpty(t, c.token)
	return c
}

func TestCircleScenario(t *testing.T) {
	engine := newTestServer(t)

	a := &client{t: t, engine: engine}
	code, env := a.do(http.MethodPost, "/api/register", map[string]any{"name": "Alice", "email": "a@x.com", "password": "password1"})
	require.Equal(t, http.StatusCreated, code)
	assert.True(t, env.Success)
	assert.NotEmpty(t, env.RequestID)
	reg := decode[struct {
		User struct{ ID, Name, Email string } `json:"user"`
	}](t, env.Data)
	assert.NotEmpty(t, reg.User.ID)
	assert.Equal(t, "Alice", reg.User.Name)

	code, _ = a.do(http.MethodPost, "/api/register", map[string]any{"name": "Alice2", "email": "a@x.com", "password": "password1"})
	assert.Equal(t, http.StatusConflict, code)

	code, _ = a.do(http.MethodPost, "/api/login", map[string]any{"email": "a@x.com", "password": "password1"})
	require.Equal(t, http.StatusOK, code)

	code, env = a.do(http.MethodPost, "/api/create-circle", map[string]any{"name": "Team"})
	require.Equal(t, http.StatusCreated, code)
	created := decode[struct {
		CircleID   string `json:"circleId"`
		InviteCode string `json:"inviteCode"`
	}](t, env.Data)
	assert.Len(t, created.InviteCode, 8)

	b := signUp(t, engine, "Bob", "b@x.com")
	code, env = b.do(http.MethodPost, "/api/join-circle", map[string]any{"code": created.InviteCode})
	require.Equal(t, http.StatusOK, code)
	joined := decode[struct {
		CircleID   string `json:"circleId"`
		CircleName string `json:"circleName"`
	}](t, env.Data)
	assert.Equal(t, created.CircleID, joined.CircleID)
	assert.Equal(t, "Team", joined.CircleName)

	code, _ = b.do(http.MethodPost, "/api/join-circle", map[string]any{"code": created.InviteCode})
	assert.Equal(t, http.StatusConflict, code)
	code, _ = b.do(http.MethodPost, "/api/join-circle", map[string]any{"code": "zzzzzzzz"})
	assert.Equal(t, http.StatusNotFound, code)

	code, env = b.do(http.MethodGet, "/api/my-circles", nil)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"circles":[{"id":"`+created.CircleID+`","name":"Team"}]}`, string(env.Data))

	code, env = a.do(http.MethodPost, "/api/submit-wordle", map[string]any{"guesses": 3, "rawResult": "⬛🟨🟩⬛⬛"})
	require.Equal(t, http.StatusCreated, code)
	assert.NotEmpty(t, decode[struct {
		ScoreID string `json:"scoreId"`
	}](t, env.Data).ScoreID)

	code, _ = a.do(http.MethodPost, "/api/submit-wordle", map[string]any{"guesses": 5, "rawResult": "🟩🟩🟩🟩🟩"})
	assert.Equal(t, http.StatusConflict, code)

	code, env = b.do(http.MethodGet, "/api/circles/"+created.CircleID, nil)
	require.Equal(t, http.StatusOK, code)
	board := decode[struct {
		CircleName string `json:"circleName"`
		Members    []struct {
			ID        string  `json:"id"`
			Name      string  `json:"name"`
			Guesses   *int    `json:"guesses"`
			RawResult *string `json:"raw_result"`
		} `json:"members"`
	}](t, env.Data)
	assert.Equal(t, "Team", board.CircleName)
	require.Len(t, board.Members, 2)
	assert.Equal(t, "Alice", board.Members[0].Name)
	require.NotNil(t, board.Members[0].Guesses)
	assert.Equal(t, 3, *board.Members[0].Guesses)
	assert.Equal(t, "⬛🟨🟩⬛⬛", *board.Members[0].RawResult)
	assert.Equal(t, "Bob", board.Members[1].Name)
	assert.Nil(t, board.Members[1].Guesses)
	assert.Nil(t, board.Members[1].RawResult)
	assert.Contains(t, string(env.Data), `"guesses":null`)

	code, env = a.do(http.MethodGet, "/api/scores/today", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"guesses":3`)
	code, env = b.do(http.MethodGet, "/api/scores/today", nil)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"score":null}`, string(env.Data))
}

func TestCircleAccessControl(t *testing.T) {
	engine := newTestServer(t)
	a := signUp(t, engine, "Alice", "a@x.com")
	c := signUp(t, engine, "Carol", "c@x.com")

	_, env := a.do(http.MethodPost, "/api/create-circle", map[string]any{"name": "Team"})
	id := decode[struct {
		CircleID string `json:"circleId"`
	}](t, env.Data).CircleID

	code, _ := c.do(http.MethodGet, "/api/circles/"+id, nil)
	assert.Equal(t, http.StatusForbidden, code)
	code, _ = c.do(http.MethodGet, "/api/circles/not-a-circle", nil)
	assert.Equal(t, http.StatusNotFound, code)

	anon := &client{t: t, engine: engine}
	for _, path := range []string{"/api/my-circles", "/api/circles/" + id, "/api/user/profile", "/api/scores/today"} {
		code, _ = anon.do(http.MethodGet, path, nil)
		assert.Equal(t, http.StatusUnauthorized, code, path)
	}
	code, _ = anon.do(http.MethodPost, "/api/create-circle", map[string]any{"name": "x"})
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestValidationErrors(t *testing.T) {
	engine := newTestServer(t)
	a := signUp(t, engine, "Alice", "a@x.com")

	cases := []struct {
		path  string
		body  any
		field string
	}{
		{"/api/submit-wordle", map[string]any{"guesses": 0, "rawResult": "x"}, "guesses"},
		{"/api/submit-wordle", map[string]any{"guesses": 8, "rawResult": "x"}, "guesses"},
		{"/api/submit-wordle", `{"guesses": 3.5, "rawResult": "x"}`, "guesses"},
		{"/api/submit-wordle", `{"guesses": "3", "rawResult": "x"}`, "guesses"},
		{"/api/submit-wordle", map[string]any{"rawResult": "x"}, "guesses"},
		{"/api/submit-wordle", map[string]any{"guesses": 3, "rawResult": "   "}, "rawResult"},
		{"/api/create-circle", map[string]any{"name": "   "}, "name"},
		{"/api/create-circle", map[string]any{"name": strings.Repeat("n", 101)}, "name"},
		{"/api/join-circle", map[string]any{}, "code"},
		{"/api/register", map[string]any{"name": "Zed", "email": "nope", "password": "password1"}, "email"},
		{"/api/register", map[string]any{"name": "Zed", "email": "z@x.com", "password": "short"}, "password"},
	}
	for _, tc := range cases {
		code, env := a.do(http.MethodPost, tc.path, tc.body)
		assert.Equal(t, http.StatusBadRequest, code, "%s %v", tc.path, tc.body)
		assert.False(t, env.Success)
		assert.Contains(t, env.Error, tc.field, "%s %v", tc.path, tc.body)
	}

	// nothing was stored by the rejected submissions
	code, env := a.do(http.MethodGet, "/api/scores/today", nil)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"score":null}`, string(env.Data))
}

func TestLoginFailures(t *testing.T) {
	engine := newTestServer(t)
	signUp(t, engine, "Alice", "a@x.com")
	anon := &client{t: t, engine: engine}

	code, env := anon.do(http.MethodPost, "/api/login", map[string]any{"email": "a@x.com", "password": "wrongpass"})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "invalid credentials", env.Message)
	code, _ = anon.do(http.MethodPost, "/api/login", map[string]any{"email": "ghost@x.com", "password": "password1"})
	assert.Equal(t, http.StatusUnauthorized, code)
	code, _ = anon.do(http.MethodPost, "/api/login", map[string]any{"email": "a@x.com"})
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestProfileAuthCheckAndLogout(t *testing.T) {
	engine := newTestServer(t)
	a := &client{t: t, engine: engine}
	code, _ := a.do(http.MethodPost, "/api/register", map[string]any{"name": "Alice", "email": "a@x.com", "password": "password1", "phone": "0123456789"})
	require.Equal(t, http.StatusCreated, code)

	code, env := a.do(http.MethodGet, "/api/auth-check", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"authenticated":false`)

	code, _ = a.do(http.MethodPost, "/api/login", map[string]any{"email": "a@x.com", "password": "password1"})
	require.Equal(t, http.StatusOK, code)

	code, env = a.do(http.MethodGet, "/api/user/profile", nil)
	require.Equal(t, http.StatusOK, code)
	profile := decode[struct {
		User struct {
			Email string `json:"email"`
			Phone string `json:"phone_number"`
		} `json:"user"`
	}](t, env.Data)
	assert.Equal(t, "a@x.com", profile.User.Email)
	assert.Equal(t, "0123456789", profile.User.Phone)

	code, env = a.do(http.MethodGet, "/api/auth-check", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"authenticated":true`)
	assert.Contains(t, string(env.Data), `"email":"a@x.com"`)

	code, env = a.do(http.MethodGet, "/api/users/search?q=al", nil)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"users":[]}`, string(env.Data))

	code, _ = a.do(http.MethodPost, "/api/logout", nil)
	assert.Equal(t, http.StatusOK, code)
}

func TestDebugVars(t *testing.T) {
	engine := newTestServer(t)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/debug/vars", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "scores_submitted")
}
