package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/domeballhq/match-engine/internal/handler"
	"github.com/domeballhq/match-engine/internal/model"
	"github.com/domeballhq/match-engine/internal/repository"
	"github.com/domeballhq/match-engine/internal/service"
)

// stubMatchService returns canned values so we can exercise the HTTP layer
// in isolation.
type stubMatchService struct {
	rec    model.MatchRecord
	res    *model.MatchResult
	result model.MatchResult
	err    error
}

func (s *stubMatchService) SimulateMatch(context.Context, service.SimulationRequest) (model.MatchRecord, *model.MatchResult, error) {
	return s.rec, s.res, s.err
}

func (s *stubMatchService) GetMatch(context.Context, int64) (model.MatchRecord, error) {
	return s.rec, s.err
}

func (s *stubMatchService) ListMatches(context.Context, repository.Page) (repository.PageResult[model.MatchRecord], error) {
	return repository.PageResult[model.MatchRecord]{Items: []model.MatchRecord{s.rec}, Total: 1}, s.err
}

func (s *stubMatchService) GetResult(context.Context, int64) (model.MatchResult, error) {
	return s.result, s.err
}

func (s *stubMatchService) Subscribe(int64) (<-chan model.MatchUpdate, func(), error) {
	if s.err != nil {
		return nil, nil, s.err
	}
	ch := make(chan model.MatchUpdate, 2)
	ch <- model.MatchUpdate{Tick: 1, Commentary: "kickoff"}
	ch <- model.MatchUpdate{Tick: 2, Final: true}
	close(ch)
	return ch, func() {}, nil
}

func (s *stubMatchService) Abort(context.Context, int64) error { return s.err }

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error { return nil }

func newRouter(svc service.MatchService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler.Register(r, stubPinger{}, svc)
	return r
}

func TestSimulate_InstantReturnsCreated(t *testing.T) {
	res := model.MatchResult{Status: model.StatusCompleted, HomeScore: 3, AwayScore: 2}
	r := newRouter(&stubMatchService{
		rec: model.MatchRecord{ID: 1, Status: model.StatusCompleted},
		res: &res,
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/matches", strings.NewReader(`{"config":{},"pacing":"instant"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var body struct {
		Match  model.MatchRecord  `json:"match"`
		Result *model.MatchResult `json:"result"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, int64(1), body.Match.ID)
	require.NotNil(t, body.Result)
	assert.Equal(t, 3, body.Result.HomeScore)
}

func TestSimulate_PacedReturnsAccepted(t *testing.T) {
	r := newRouter(&stubMatchService{
		rec: model.MatchRecord{ID: 2, Status: model.StatusRunning},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/matches", strings.NewReader(`{"config":{},"pacing":"paced"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusAccepted, w.Code, w.Body.String())
}

func TestSimulate_MalformedBody(t *testing.T) {
	r := newRouter(&stubMatchService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/matches", strings.NewReader(`{not json`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetMatch_NotFound(t *testing.T) {
	r := newRouter(&stubMatchService{err: repository.ErrNotFound})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/matches/99", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetResult_RunningMapsToConflict(t *testing.T) {
	r := newRouter(&stubMatchService{err: service.ErrMatchRunning})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/matches/1/result", nil))

	require.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "match_running")
}

func TestGetStats_ReturnsStatLinesOnly(t *testing.T) {
	r := newRouter(&stubMatchService{
		result: model.MatchResult{
			Status:      model.StatusCompleted,
			PlayerStats: []model.PlayerStatLine{{PlayerID: 7, Name: "Runner"}},
			HomeStats:   model.TeamStatLine{Team: model.SideHome, Score: 4},
			AwayStats:   model.TeamStatLine{Team: model.SideAway, Score: 1},
		},
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/matches/1/stats", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"player_stats"`)
	assert.NotContains(t, w.Body.String(), `"events"`)
}

// closeNotifyRecorder adds the http.CloseNotifier method gin's Stream helper
// requires; httptest.ResponseRecorder does not implement it.
type closeNotifyRecorder struct {
	*httptest.ResponseRecorder
	closed chan bool
}

func (c *closeNotifyRecorder) CloseNotify() <-chan bool { return c.closed }

func TestStream_EmitsServerSentEvents(t *testing.T) {
	r := newRouter(&stubMatchService{})

	w := &closeNotifyRecorder{httptest.NewRecorder(), make(chan bool, 1)}
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/matches/1/stream", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "event:update")
	assert.Contains(t, w.Body.String(), "kickoff")
}

func TestStream_NoLiveMatch(t *testing.T) {
	r := newRouter(&stubMatchService{err: repository.ErrNotFound})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/matches/1/stream", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAbort_ConflictWhenNotRunning(t *testing.T) {
	r := newRouter(&stubMatchService{err: repository.ErrConflict})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/matches/1/abort", nil))

	assert.Equal(t, http.StatusConflict, w.Code)
}
