package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sabocue/arena/internal/config"
	"github.com/sabocue/arena/internal/database"
	"github.com/sabocue/arena/internal/metrics"
	"github.com/sabocue/arena/internal/notifier"
	"github.com/sabocue/arena/internal/pubsub"
	"github.com/sabocue/arena/internal/registry"
	"github.com/sabocue/arena/internal/sabo"
	"github.com/sabocue/arena/internal/store"
	"github.com/sabocue/arena/internal/tournament"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestServer initializes a new server with a test database and mock clients.
func setupTestServer(t *testing.T) (*Server, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	tournamentStore := store.New(db)
	cfg := config.Config{DefaultRaceTo: 5}

	reg := prometheus.NewRegistry()
	metricsSvc := metrics.NewService(reg)
	metricsHandler := metrics.NewMetricsHandler(reg)
	pubsubClient := pubsub.NewMock("TEST")
	notif := notifier.NewMock()
	svc := tournament.New(registry.New(), tournamentStore, notif, metricsSvc, pubsubClient, cfg.DefaultRaceTo)

	server := NewServer(svc, metricsSvc, metricsHandler, cfg, notif, pubsubClient)

	teardown := func() {
		if dbTeardown != nil {
			dbTeardown()
		}
		db.Close()
	}
	return server, teardown
}

func groupRefs(prefix string) []string {
	refs := make([]string, sabo.GroupSize)
	for i := range refs {
		refs[i] = fmt.Sprintf("%s-%02d", prefix, i+1)
	}
	return refs
}

func createTestTournament(t *testing.T, server *Server) *sabo.Tournament {
	t.Helper()

	body, err := json.Marshal(createTournamentRequest{
		ClubID: "club-9",
		GroupA: groupRefs("a"),
		GroupB: groupRefs("b"),
		RaceTo: 5,
	})
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/tournaments", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusCreated, rr.Code, "body: %s", rr.Body.String())

	var created sabo.Tournament
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	return &created
}

func TestHealthCheckHandler(t *testing.T) {
	server, teardown := setupTestServer(t)
	defer teardown()

	req := httptest.NewRequest("GET", "/health", nil)
	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code, "handler returned wrong status code")
	assert.Equal(t, "OK!", rr.Body.String(), "handler returned unexpected body")
}

func TestCreateTournamentHandler(t *testing.T) {
	server, teardown := setupTestServer(t)
	defer teardown()

	created := createTestTournament(t, server)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, sabo.TournamentDraft, created.Status)

	// The new tournament shows up in the listing.
	req := httptest.NewRequest("GET", "/tournaments", nil)
	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var tournaments []*sabo.Tournament
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &tournaments))
	require.Len(t, tournaments, 1)
	assert.Equal(t, created.ID, tournaments[0].ID)
}

func TestCreateTournamentHandler_DuplicateParticipant(t *testing.T) {
	server, teardown := setupTestServer(t)
	defer teardown()

	groupB := groupRefs("b")
	groupB[0] = "a-01"
	body, err := json.Marshal(createTournamentRequest{
		ClubID: "club-9",
		GroupA: groupRefs("a"),
		GroupB: groupB,
	})
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/tournaments", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestReadyMatchesHandler(t *testing.T) {
	server, teardown := setupTestServer(t)
	defer teardown()

	created := createTestTournament(t, server)

	req := httptest.NewRequest("GET", "/tournaments/ready?tournamentID="+created.ID+"&group=A", nil)
	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var ready []*sabo.Match
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &ready))
	assert.Len(t, ready, 8)
}

func TestSubmitScoreHandler(t *testing.T) {
	server, teardown := setupTestServer(t)
	defer teardown()

	created := createTestTournament(t, server)

	req := httptest.NewRequest("GET", "/tournaments/ready?tournamentID="+created.ID+"&group=A", nil)
	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	var ready []*sabo.Match
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &ready))
	require.NotEmpty(t, ready)

	submit := func(matchID string, s1, s2 int) *httptest.ResponseRecorder {
		body, err := json.Marshal(submitScoreRequest{
			TournamentID: created.ID,
			MatchID:      matchID,
			Score1:       s1,
			Score2:       s2,
		})
		require.NoError(t, err)
		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, httptest.NewRequest("POST", "/tournaments/score", bytes.NewReader(body)))
		return rr
	}

	// Valid score.
	rr = submit(ready[0].ID, 5, 3)
	require.Equal(t, http.StatusOK, rr.Code, "body: %s", rr.Body.String())
	var resp submitScoreResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, sabo.MatchCompleted, resp.Match.Status)
	assert.False(t, resp.FinalStageUnlocked)

	// Identical resubmit is idempotent.
	rr = submit(ready[0].ID, 5, 3)
	assert.Equal(t, http.StatusOK, rr.Code)

	// Conflicting correction is rejected.
	rr = submit(ready[0].ID, 5, 1)
	assert.Equal(t, http.StatusConflict, rr.Code)

	// Draws are impossible in a race-to format.
	rr = submit(ready[1].ID, 4, 4)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	// Unknown match.
	rr = submit("no-such-match", 5, 0)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestStateHandler(t *testing.T) {
	server, teardown := setupTestServer(t)
	defer teardown()

	created := createTestTournament(t, server)

	req := httptest.NewRequest("GET", "/tournaments/state?tournamentID="+created.ID, nil)
	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var state tournament.State
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &state))
	require.Len(t, state.Groups, 2)
	assert.Equal(t, 0, state.Groups[0].CompletedMatches)
	assert.Len(t, state.Matches, 60)

	// Unknown tournament maps to 404.
	req = httptest.NewRequest("GET", "/tournaments/state?tournamentID=missing", nil)
	rr = httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
