package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vidtube/internal/middleware"
	"vidtube/internal/test"
	"vidtube/pkg/tasks"
)

const testSecret = "handlers-test-secret"

type envelope struct {
	StatusCode int             `json:"statusCode"`
	Kind       string          `json:"kind"`
	Message    string          `json:"message"`
	Success    bool            `json:"success"`
	Data       json.RawMessage `json:"data"`
}

type testServer struct {
	router   *mux.Router
	mock     sqlmock.Sqlmock
	enqueuer *test.MockTaskEnqueuer
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	store, mock := test.NewMockStore(t)
	enqueuer := &test.MockTaskEnqueuer{}
	h := New(store, enqueuer, "http://localhost:8080")
	auth := middleware.NewAuthenticator(testSecret)
	return &testServer{router: NewRouter(h, auth, nil, nil), mock: mock, enqueuer: enqueuer}
}

func (s *testServer) do(t *testing.T, method, target string, caller *uuid.UUID) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	if caller != nil {
		req.Header.Set("Authorization", "Bearer "+test.SignAccessToken(t, testSecret, *caller, time.Hour))
	}
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env), rr.Body.String())
	return env
}

var videoColumns = []string{
	"id", "owner_id", "title", "description", "video_url", "thumbnail_url",
	"duration", "views", "is_published", "created_at", "updated_at",
}

func TestHealthcheck(t *testing.T) {
	srv := newTestServer(t)

	rr := srv.do(t, http.MethodGet, "/api/v1/healthcheck", nil)

	assert.Equal(t, http.StatusOK, rr.Code)
	env := decode(t, rr)
	assert.True(t, env.Success)
	assert.Equal(t, "Server is running OK!", env.Message)
}

func TestUnknownRoute(t *testing.T) {
	srv := newTestServer(t)

	rr := srv.do(t, http.MethodGet, "/api/v1/nope", nil)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.False(t, decode(t, rr).Success)
}

func TestGetChannelStats(t *testing.T) {
	srv := newTestServer(t)
	caller := uuid.New()

	srv.mock.ExpectQuery(`SELECT\s+EXISTS \(SELECT 1 FROM users`).
		WithArgs(caller.String()).
		WillReturnRows(sqlmock.NewRows([]string{
			"channel_exists", "total_videos", "total_views", "subscribers",
			"subscribed_to", "total_likes", "total_comments", "total_tweets",
		}).AddRow(true, 3, 120, 7, 2, 15, 4, 1))

	rr := srv.do(t, http.MethodGet, "/api/v1/dashboard/stats", &caller)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var stats struct {
		TotalVideos int64 `json:"totalVideos"`
		TotalViews  int64 `json:"totalViews"`
		Subscribers int64 `json:"subscribers"`
		TotalLikes  int64 `json:"totalLikes"`
	}
	require.NoError(t, json.Unmarshal(decode(t, rr).Data, &stats))
	assert.Equal(t, int64(3), stats.TotalVideos)
	assert.Equal(t, int64(120), stats.TotalViews)
	assert.Equal(t, int64(7), stats.Subscribers)
	assert.Equal(t, int64(15), stats.TotalLikes)
}

func TestGetChannelStatsRequiresCaller(t *testing.T) {
	srv := newTestServer(t)

	rr := srv.do(t, http.MethodGet, "/api/v1/dashboard/stats", nil)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "UNAUTHORIZED", decode(t, rr).Kind)
}

func TestInvalidTokenOnPublicRouteIsAnonymous(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/healthcheck", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rr := httptest.NewRecorder()
	srv.router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestInvalidTokenOnProtectedRouteIsRejected(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/stats", nil)
	req.Header.Set("Authorization", "Bearer "+test.SignAccessToken(t, testSecret, uuid.New(), -time.Minute))
	rr := httptest.NewRecorder()
	srv.router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	env := decode(t, rr)
	assert.Equal(t, "UNAUTHORIZED", env.Kind)
	assert.Equal(t, "Invalid access token", env.Message)
}

func TestGetChannelStoreFailure(t *testing.T) {
	srv := newTestServer(t)
	caller := uuid.New()

	srv.mock.ExpectQuery(`FROM videos\s+WHERE owner_id = \$1`).
		WithArgs(caller.String()).
		WillReturnError(errors.New("connection refused"))

	rr := srv.do(t, http.MethodGet, "/api/v1/dashboard/videos", &caller)

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	env := decode(t, rr)
	assert.Equal(t, "STORE_UNAVAILABLE", env.Kind)
	assert.NotContains(t, env.Message, "connection refused")
}

func TestGetAllVideos(t *testing.T) {
	srv := newTestServer(t)
	owner, video := uuid.New(), uuid.New()

	srv.mock.ExpectQuery(`WITH matched AS`).
		WithArgs("%intro%", owner.String(), 5, 0).
		WillReturnRows(sqlmock.NewRows([]string{
			"total", "position", "id", "title", "description", "thumbnail_url", "duration",
			"views", "is_published", "created_at", "owner_id", "owner_full_name",
			"owner_username", "owner_avatar_url",
		}).AddRow(1, 1, video.String(), "Intro", "first", "t.png", 12.0, 4, true, time.Now(),
			owner.String(), "Go Pher", "gopher", "a.png"))

	rr := srv.do(t, http.MethodGet, "/api/v1/videos?query=intro&userId="+owner.String()+"&limit=5&sortBy=views&sortType=-1", nil)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var page struct {
		Items []struct {
			ID    uuid.UUID `json:"_id"`
			Owner struct {
				Username string `json:"username"`
			} `json:"owner"`
		} `json:"items"`
		TotalItems int64 `json:"totalItems"`
		TotalPages int   `json:"totalPages"`
	}
	require.NoError(t, json.Unmarshal(decode(t, rr).Data, &page))
	require.Len(t, page.Items, 1)
	assert.Equal(t, video, page.Items[0].ID)
	assert.Equal(t, "gopher", page.Items[0].Owner.Username)
	assert.Equal(t, int64(1), page.TotalItems)
	assert.Equal(t, 1, page.TotalPages)
}

func TestGetAllVideosRejectsBadParams(t *testing.T) {
	cases := map[string]string{
		"page=0":           "INVALID_PAGE",
		"limit=500":        "INVALID_LIMIT",
		"sortBy=password":  "INVALID_SORT",
		"userId=not-a-uid": "INVALID_REFERENCE",
	}
	for params, kind := range cases {
		t.Run(params, func(t *testing.T) {
			srv := newTestServer(t)

			rr := srv.do(t, http.MethodGet, "/api/v1/videos?"+params, nil)

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Equal(t, kind, decode(t, rr).Kind)
		})
	}
}

func TestGetVideoByIDQueuesView(t *testing.T) {
	srv := newTestServer(t)
	id, owner := uuid.New(), uuid.New()
	now := time.Now()

	srv.mock.ExpectQuery(`FROM videos WHERE id = \$1`).
		WithArgs(id.String()).
		WillReturnRows(sqlmock.NewRows(videoColumns).
			AddRow(id.String(), owner.String(), "Intro", "", "v.mp4", "", 10.0, 3, true, now, now))

	rr := srv.do(t, http.MethodGet, "/api/v1/videos/"+id.String(), nil)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	queued := srv.enqueuer.Tasks()
	require.Len(t, queued, 1)
	assert.Equal(t, tasks.TypeRecordView, queued[0].Type())

	payload, err := tasks.ParseRecordViewTask(queued[0])
	require.NoError(t, err)
	assert.Equal(t, id, payload.VideoID)
}

func TestGetVideoByIDEnqueueFailureStillServes(t *testing.T) {
	srv := newTestServer(t)
	srv.enqueuer.Err = errors.New("redis down")
	id := uuid.New()
	now := time.Now()

	srv.mock.ExpectQuery(`FROM videos WHERE id = \$1`).
		WithArgs(id.String()).
		WillReturnRows(sqlmock.NewRows(videoColumns).
			AddRow(id.String(), uuid.New().String(), "Intro", "", "v.mp4", "", 10.0, 3, true, now, now))

	rr := srv.do(t, http.MethodGet, "/api/v1/videos/"+id.String(), nil)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, srv.enqueuer.Tasks())
}

func TestGetVideoByIDErrors(t *testing.T) {
	srv := newTestServer(t)

	rr := srv.do(t, http.MethodGet, "/api/v1/videos/42", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "INVALID_REFERENCE", decode(t, rr).Kind)

	missing := uuid.New()
	srv.mock.ExpectQuery(`FROM videos WHERE id = \$1`).WithArgs(missing.String()).WillReturnError(sql.ErrNoRows)

	rr = srv.do(t, http.MethodGet, "/api/v1/videos/"+missing.String(), nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Empty(t, srv.enqueuer.Tasks())
}

func TestTogglePublishStatusForbidden(t *testing.T) {
	srv := newTestServer(t)
	caller, owner, id := uuid.New(), uuid.New(), uuid.New()
	now := time.Now()

	srv.mock.ExpectQuery(`UPDATE videos`).
		WithArgs(id.String(), caller.String()).
		WillReturnError(sql.ErrNoRows)
	srv.mock.ExpectQuery(`FROM videos WHERE id = \$1`).
		WithArgs(id.String()).
		WillReturnRows(sqlmock.NewRows(videoColumns).
			AddRow(id.String(), owner.String(), "Intro", "", "v.mp4", "", 10.0, 3, true, now, now))

	rr := srv.do(t, http.MethodPatch, "/api/v1/videos/toggle/publish/"+id.String(), &caller)

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Equal(t, "FORBIDDEN", decode(t, rr).Kind)
}

func TestToggleSubscriptionAdds(t *testing.T) {
	srv := newTestServer(t)
	caller, channel, subID := uuid.New(), uuid.New(), uuid.New()

	srv.mock.ExpectQuery(`DELETE FROM subscriptions`).
		WithArgs(channel.String(), caller.String()).
		WillReturnError(sql.ErrNoRows)
	srv.mock.ExpectQuery(`INSERT INTO subscriptions`).
		WithArgs(channel.String(), caller.String()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "channel_id", "subscriber_id", "created_at"}).
			AddRow(subID.String(), channel.String(), caller.String(), time.Now()))

	rr := srv.do(t, http.MethodPost, "/api/v1/subscriptions/c/"+channel.String(), &caller)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "Channel subscription added successfully", decode(t, rr).Message)
}

func TestToggleSubscriptionSelf(t *testing.T) {
	srv := newTestServer(t)
	caller := uuid.New()

	rr := srv.do(t, http.MethodPost, "/api/v1/subscriptions/c/"+caller.String(), &caller)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "INVALID_INPUT", decode(t, rr).Kind)
}

func TestGetChannelSubscribersEmpty(t *testing.T) {
	srv := newTestServer(t)
	channel := uuid.New()

	srv.mock.ExpectQuery(`JOIN users u ON u.id = s.subscriber_id`).
		WithArgs(channel.String()).
		WillReturnRows(sqlmock.NewRows([]string{"subscription_id", "subscribed_at", "user.id", "user.full_name", "user.username", "user.avatar_url"}))

	rr := srv.do(t, http.MethodGet, "/api/v1/subscriptions/c/"+channel.String(), nil)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, string(decode(t, rr).Data))
}

func TestToggleLikeRemoves(t *testing.T) {
	srv := newTestServer(t)
	caller, comment := uuid.New(), uuid.New()

	srv.mock.ExpectQuery(`DELETE FROM likes`).
		WithArgs(caller.String(), "comment", comment.String()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New().String()))

	rr := srv.do(t, http.MethodPost, "/api/v1/likes/toggle/c/"+comment.String(), &caller)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "comment like removed successfully", decode(t, rr).Message)
}

func TestToggleLikeUnknownKind(t *testing.T) {
	srv := newTestServer(t)
	caller := uuid.New()

	rr := srv.do(t, http.MethodPost, "/api/v1/likes/toggle/x/"+uuid.New().String(), &caller)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "INVALID_INPUT", decode(t, rr).Kind)
}

func TestGetChannelFeed(t *testing.T) {
	srv := newTestServer(t)
	channel, video := uuid.New(), uuid.New()
	now := time.Now()

	srv.mock.ExpectQuery(`FROM users WHERE id = \$1`).
		WithArgs(channel.String()).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "username", "email", "full_name", "avatar_url", "cover_image_url",
			"password_hash", "refresh_token", "created_at", "updated_at",
		}).AddRow(channel.String(), "gopher", "g@example.com", "Go Pher", "https://cdn/a.png", "", "hash", nil, now, now))
	srv.mock.ExpectQuery(`WHERE owner_id = \$1 AND is_published`).
		WithArgs(channel.String(), feedItemLimit).
		WillReturnRows(sqlmock.NewRows(videoColumns).
			AddRow(video.String(), channel.String(), "Intro To Go", "basics", "https://cdn/v.mp4", "", 61.0, 3, true, now, now))

	rr := srv.do(t, http.MethodGet, "/api/v1/channels/"+channel.String()+"/feed.rss", nil)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "application/rss+xml", rr.Header().Get("Content-Type"))
	body := rr.Body.String()
	assert.True(t, strings.Contains(body, "<rss"))
	assert.Contains(t, body, "Intro To Go")
	assert.Contains(t, body, "Go Pher")
	assert.NotContains(t, body, "g@example.com")
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, statusFor("INVALID_SORT"))
	assert.Equal(t, http.StatusConflict, statusFor("CONFLICT"))
	assert.Equal(t, http.StatusInternalServerError, statusFor("INTERNAL"))
	assert.Equal(t, http.StatusInternalServerError, statusFor(""))
}

var commentColumns = []string{
	"video_exists", "total", "position", "id", "video_id", "content", "created_at",
	"owner_id", "owner_full_name", "owner_username", "owner_avatar_url",
}

func TestGetVideoComments(t *testing.T) {
	srv := newTestServer(t)
	video, author, comment := uuid.New(), uuid.New(), uuid.New()

	srv.mock.ExpectQuery(`FROM comments c`).
		WithArgs(video.String(), 5, 5).
		WillReturnRows(sqlmock.NewRows(commentColumns).
			AddRow(true, 6, 1, comment.String(), video.String(), "first!", time.Now(),
				author.String(), "Go Pher", "gopher", "a.png"))

	rr := srv.do(t, http.MethodGet, "/api/v1/comments/"+video.String()+"?page=2&limit=5", nil)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var page struct {
		Items []struct {
			Content string `json:"content"`
			Owner   struct {
				Username string `json:"username"`
			} `json:"owner"`
		} `json:"items"`
		TotalItems  int64 `json:"totalItems"`
		HasPrevPage bool  `json:"hasPrevPage"`
	}
	require.NoError(t, json.Unmarshal(decode(t, rr).Data, &page))
	require.Len(t, page.Items, 1)
	assert.Equal(t, "first!", page.Items[0].Content)
	assert.Equal(t, "gopher", page.Items[0].Owner.Username)
	assert.Equal(t, int64(6), page.TotalItems)
	assert.True(t, page.HasPrevPage)
}

func TestGetVideoCommentsErrors(t *testing.T) {
	srv := newTestServer(t)
	video := uuid.New()

	rr := srv.do(t, http.MethodGet, "/api/v1/comments/"+video.String()+"?page=9223372036854775807", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "INVALID_PAGE", decode(t, rr).Kind)

	srv.mock.ExpectQuery(`FROM comments c`).
		WithArgs(video.String(), 10, 0).
		WillReturnRows(sqlmock.NewRows(commentColumns).
			AddRow(false, 0, nil, nil, nil, nil, nil, nil, nil, nil, nil))

	rr = srv.do(t, http.MethodGet, "/api/v1/comments/"+video.String(), nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestGetUserTweets(t *testing.T) {
	srv := newTestServer(t)
	owner := uuid.New()

	srv.mock.ExpectQuery(`FROM tweets`).
		WithArgs(owner.String()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "content", "created_at"}))

	rr := srv.do(t, http.MethodGet, "/api/v1/tweets/user/"+owner.String(), nil)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, string(decode(t, rr).Data))
}
