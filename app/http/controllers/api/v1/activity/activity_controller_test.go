package activity

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "namogange/app/models/activity"
	"namogange/app/repositories"
	"namogange/pkg/database/dbtest"
	"namogange/pkg/queue"
)

type stubQueue struct {
	tasks []*queue.ActivityTask
	err   error
}

func (s *stubQueue) PushTask(_ context.Context, task *queue.ActivityTask) error {
	if s.err != nil {
		return s.err
	}
	s.tasks = append(s.tasks, task)
	return nil
}

const event = `{"module":"AGS Payment","action":"create","description":"Created AGS-2026-D1-001","user_id":"U1","client_id":"C1"}`

func newRouter(t *testing.T, q Enqueuer) (*gin.Engine, *repositories.ActivityRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dbtest.Setup(t)

	repo := repositories.NewActivityRepository()
	ac := NewController(repo, q)
	r := gin.New()
	r.POST("/v1/activity-logs", ac.Store)
	r.GET("/v1/activity-logs", ac.Index)
	return r, repo
}

func post(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/v1/activity-logs", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestStore_Enqueues(t *testing.T) {
	q := &stubQueue{}
	r, repo := newRouter(t, q)

	w := post(r, event)
	require.Equal(t, http.StatusAccepted, w.Code)
	require.Len(t, q.tasks, 1)
	task := q.tasks[0]
	assert.Equal(t, "create", task.Event.Action)
	assert.Contains(t, w.Body.String(), task.ID)

	// 入队后尚未落库，交给 Worker 处理
	logs, err := repo.ListRecent(context.Background(), "C1", 10)
	require.NoError(t, err)
	assert.Empty(t, logs)

	handler := TaskHandler(repo)
	require.NoError(t, handler(context.Background(), task))
	require.NoError(t, handler(context.Background(), task), "redelivery is ignored")

	logs, err = repo.ListRecent(context.Background(), "C1", 10)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, task.ID, logs[0].TaskID)
	assert.Equal(t, "AGS Payment", logs[0].Module)
}

func TestStore_FallsBackToDatabase(t *testing.T) {
	r, _ := newRouter(t, &stubQueue{err: errors.New("redis down")})

	w := post(r, event)
	require.Equal(t, http.StatusCreated, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/v1/activity-logs?client_id=C1", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data []model.Log `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "U1", body.Data[0].UserID)
}

func TestStore_WithoutQueue(t *testing.T) {
	r, _ := newRouter(t, nil)
	assert.Equal(t, http.StatusCreated, post(r, event).Code)
}

func TestStore_Validation(t *testing.T) {
	r, _ := newRouter(t, &stubQueue{})

	w := post(r, `{"module":"AGS Payment","user_id":"U1"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Action is required")

	w = post(r, `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
