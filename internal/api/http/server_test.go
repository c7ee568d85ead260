package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	apihttp "flyerpoints-backend/internal/api/http"
	"flyerpoints-backend/internal/domain"
	"flyerpoints-backend/internal/ocr"
	"flyerpoints-backend/internal/repository/memory"
	"flyerpoints-backend/internal/security"
	"flyerpoints-backend/internal/service"
	"flyerpoints-backend/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type testServer struct {
	store  *memory.Store
	blobs  *storage.MemoryStorage
	ocr    *ocr.StubClient
	board  service.LeaderboardService
	server *httptest.Server
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	store := memory.NewStore()
	blobs := storage.NewMemoryStorage(1 << 20)
	stub := &ocr.StubClient{Text: "Weekend supermarket sale"}
	verifier := security.NewLocalVerifier(testSecret)

	board := service.NewLeaderboardService(store.UserRepository, store.LeaderboardRepository, 100, 400, time.UTC)
	srv := apihttp.NewServer(
		service.NewIngestService(store, store.PhotoRepository, blobs, stub, 10),
		service.NewReviewService(store, store.UserRepository, store.PhotoRepository, 10),
		service.NewRedemptionService(store, service.NopNotifier{}, 1000),
		board,
		service.NewUserService(store.UserRepository, store.TransactionRepository),
		verifier,
	)

	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return &testServer{store: store, blobs: blobs, ocr: stub, board: board, server: ts}
}

func (ts *testServer) request(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var payload bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&payload).Encode(body))
	}
	req, err := http.NewRequest(method, ts.server.URL+path, &payload)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func (ts *testServer) uploadEvent(userID, fileID string, data []byte) domain.UploadEvent {
	name := "users/" + userID + "/photos/" + fileID
	ts.blobs.Put("flyer-bucket", name, data)
	return domain.UploadEvent{Name: name, Bucket: "flyer-bucket", ContentType: "image/jpeg"}
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func signToken(t *testing.T, userID string) string {
	t.Helper()
	token, err := security.SignLocalToken(testSecret, userID)
	require.NoError(t, err)
	return token
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)
	resp := ts.request(t, http.MethodGet, "/healthz", "", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuth(t *testing.T) {
	ts := newTestServer(t)

	t.Run("Missing token", func(t *testing.T) {
		resp := ts.request(t, http.MethodGet, "/v1/me", "", nil)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Invalid token", func(t *testing.T) {
		resp := ts.request(t, http.MethodGet, "/v1/me", "garbage", nil)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestStorageEventEndpoint(t *testing.T) {
	t.Run("Valid upload returns the new record", func(t *testing.T) {
		ts := newTestServer(t)
		ts.store.SeedUser(domain.UserAccount{ID: "u1"})

		resp := ts.request(t, http.MethodPost, "/v1/events/storage", "", ts.uploadEvent("u1", "f1", []byte("flyer")))
		require.Equal(t, http.StatusOK, resp.StatusCode)

		record := decode[domain.PhotoRecord](t, resp)
		assert.Equal(t, "u1_f1", record.ID)
		assert.Equal(t, domain.PhotoStatusPending, record.Status)
		assert.Equal(t, domain.CategorySupermarket, record.Category)
	})

	t.Run("Out-of-scope object is acknowledged as skipped", func(t *testing.T) {
		ts := newTestServer(t)
		resp := ts.request(t, http.MethodPost, "/v1/events/storage", "", domain.UploadEvent{
			Name: "avatars/u1/pic.jpg", Bucket: "flyer-bucket", ContentType: "image/jpeg",
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		body := decode[map[string]bool](t, resp)
		assert.True(t, body["skipped"])
	})

	t.Run("Transient failure returns a 5xx for redelivery", func(t *testing.T) {
		ts := newTestServer(t)
		ts.store.SeedUser(domain.UserAccount{ID: "u1"})
		ts.ocr.Err = status.Error(codes.Unavailable, "vision down")

		resp := ts.request(t, http.MethodPost, "/v1/events/storage", "", ts.uploadEvent("u1", "f1", []byte("flyer")))
		defer resp.Body.Close()
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	})

	t.Run("Malformed payload", func(t *testing.T) {
		ts := newTestServer(t)
		req, err := http.NewRequest(http.MethodPost, ts.server.URL+"/v1/events/storage", bytes.NewBufferString("{"))
		require.NoError(t, err)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestReviewEndpoints(t *testing.T) {
	seed := func(t *testing.T) (*testServer, string) {
		ts := newTestServer(t)
		ts.store.SeedUser(domain.UserAccount{ID: "admin", IsAdmin: true})
		ts.store.SeedUser(domain.UserAccount{ID: "u1"})
		resp := ts.request(t, http.MethodPost, "/v1/events/storage", "", ts.uploadEvent("u1", "f1", []byte("flyer")))
		resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
		return ts, signToken(t, "admin")
	}

	t.Run("Approve moves the photo to approved", func(t *testing.T) {
		ts, admin := seed(t)
		resp := ts.request(t, http.MethodPost, "/v1/photos/u1_f1/approve", admin, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		record := decode[domain.PhotoRecord](t, resp)
		assert.Equal(t, domain.PhotoStatusApproved, record.Status)
	})

	t.Run("Double approve conflicts", func(t *testing.T) {
		ts, admin := seed(t)
		resp := ts.request(t, http.MethodPost, "/v1/photos/u1_f1/approve", admin, nil)
		resp.Body.Close()
		resp = ts.request(t, http.MethodPost, "/v1/photos/u1_f1/approve", admin, nil)
		require.Equal(t, http.StatusConflict, resp.StatusCode)

		body := decode[map[string]map[string]string](t, resp)
		assert.Equal(t, "FailedPrecondition", body["error"]["code"])
	})

	t.Run("Non-admin is forbidden", func(t *testing.T) {
		ts, _ := seed(t)
		resp := ts.request(t, http.MethodPost, "/v1/photos/u1_f1/reject", signToken(t, "u1"), nil)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("Pending list", func(t *testing.T) {
		ts, admin := seed(t)
		resp := ts.request(t, http.MethodGet, "/v1/photos/pending", admin, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		body := decode[map[string][]domain.PhotoRecord](t, resp)
		require.Len(t, body["photos"], 1)
		assert.Equal(t, "u1_f1", body["photos"][0].ID)
	})

	t.Run("Bad limit parameter", func(t *testing.T) {
		ts, admin := seed(t)
		resp := ts.request(t, http.MethodGet, "/v1/photos/pending?limit=zero", admin, nil)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestExchangeEndpoint(t *testing.T) {
	t.Run("Successful redemption", func(t *testing.T) {
		ts := newTestServer(t)
		ts.store.SeedUser(domain.UserAccount{ID: "u1", Points: 1500})

		resp := ts.request(t, http.MethodPost, "/v1/exchange", signToken(t, "u1"),
			domain.RedemptionDetails{Name: "Hana", Email: "hana@example.com"})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		entry := decode[domain.PointTransaction](t, resp)
		assert.Equal(t, int64(-1000), entry.Amount)
		assert.Equal(t, domain.RedemptionStatusPending, entry.Status)
	})

	t.Run("Insufficient balance conflicts", func(t *testing.T) {
		ts := newTestServer(t)
		ts.store.SeedUser(domain.UserAccount{ID: "u1", Points: 10})

		resp := ts.request(t, http.MethodPost, "/v1/exchange", signToken(t, "u1"),
			domain.RedemptionDetails{Name: "Hana", Email: "hana@example.com"})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("Missing details rejected", func(t *testing.T) {
		ts := newTestServer(t)
		ts.store.SeedUser(domain.UserAccount{ID: "u1", Points: 1500})

		resp := ts.request(t, http.MethodPost, "/v1/exchange", signToken(t, "u1"),
			domain.RedemptionDetails{Name: "Hana"})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestProfileEndpoint(t *testing.T) {
	ts := newTestServer(t)
	ts.store.SeedUser(domain.UserAccount{ID: "u1", DisplayName: "Hana", Points: 30})

	resp := ts.request(t, http.MethodGet, "/v1/me", signToken(t, "u1"), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode[struct {
		User         domain.UserAccount        `json:"user"`
		Transactions []domain.PointTransaction `json:"transactions"`
	}](t, resp)
	assert.Equal(t, "Hana", body.User.DisplayName)
	assert.Equal(t, int64(30), body.User.Points)
	assert.NotNil(t, body.Transactions)
}

func TestLeaderboardEndpoints(t *testing.T) {
	ts := newTestServer(t)
	ts.store.SeedUser(domain.UserAccount{ID: "u1", DisplayName: "Hana", WeeklyPhotos: 4})
	token := signToken(t, "u1")

	t.Run("Unknown week is a 404", func(t *testing.T) {
		resp := ts.request(t, http.MethodGet, "/v1/leaderboard/2020-W01", token, nil)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("Snapshot is served after the job runs", func(t *testing.T) {
		now := time.Now()
		snapshot, err := ts.board.RunWeeklySnapshot(context.Background(), now)
		require.NoError(t, err)

		resp := ts.request(t, http.MethodGet, "/v1/leaderboard/"+snapshot.WeekID, token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		got := decode[domain.LeaderboardSnapshot](t, resp)
		require.Len(t, got.Rankings, 1)
		assert.Equal(t, "u1", got.Rankings[0].UserID)

		resp = ts.request(t, http.MethodGet, "/v1/leaderboard/current", token, nil)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}
