package post

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Perch/internal/core/accounts"
	"Perch/internal/core/drafts"
	"Perch/internal/core/posts"
	"Perch/internal/core/scheduler"
	"Perch/internal/db/memory"
)

var testNow = time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)

// newTestRouter wires the handlers the way routes.RegisterPostRoutes does
func newTestRouter(t *testing.T, repo posts.Repository) (http.Handler, scheduler.Service) {
	t.Helper()

	svc := scheduler.NewService(
		repo,
		memory.NewAccountStore(accounts.Defaults()),
		scheduler.Config{
			Now:           func() time.Time { return testNow },
			Location:      time.UTC,
			RequireFuture: true,
		},
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)

	r := chi.NewRouter()
	csv := NewCSVHandler(svc, time.UTC)
	update := NewUpdateHandler(svc)
	r.Get("/api/posts", NewListHandler(svc, time.UTC).HandleList)
	r.Post("/api/posts", NewCreateHandler(svc).HandleCreate)
	r.Post("/api/posts/validate", NewValidateHandler(svc).HandleValidate)
	r.Post("/api/posts/import", csv.HandleImport)
	r.Get("/api/posts/export", csv.HandleExport)
	r.Get("/api/posts/{id}", NewGetHandler(svc).HandleGet)
	r.Delete("/api/posts/{id}", NewDeleteHandler(svc).HandleDelete)
	r.Post("/api/posts/{id}/reschedule", update.HandleReschedule)
	r.Post("/api/posts/{id}/status", update.HandleStatus)
	return r, svc
}

func do(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestHandleValidate(t *testing.T) {
	h, _ := newTestRouter(t, memory.NewPostStore(nil))

	w := do(h, http.MethodPost, "/api/posts/validate",
		`{"text":"hi 👋🏽","scheduledAt":"2020-01-01T00:00:00Z","accountId":"h1","mediaUrls":["a.gif","b.png"]}`)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[ValidateResponse](t, w)
	assert.Equal(t, []string{drafts.IssueNotInFuture, drafts.IssueGIFMixed}, resp.Issues)
	assert.Equal(t, 5, resp.Length)
	assert.Equal(t, 4, resp.Graphemes)
	assert.Equal(t, 275, resp.Remaining)
}

func TestHandleValidate_ValidDraftHasEmptyIssues(t *testing.T) {
	h, _ := newTestRouter(t, memory.NewPostStore(nil))

	w := do(h, http.MethodPost, "/api/posts/validate", `{"text":"ok","scheduledAt":"2026-11-01T09:00:00Z","accountId":"h1"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"issues":[]`)
}

func TestHandleCreate(t *testing.T) {
	h, _ := newTestRouter(t, memory.NewPostStore(nil))

	w := do(h, http.MethodPost, "/api/posts",
		`{"text":"weekly tip","scheduledAt":"2026-11-02T09:00:00Z","accountId":"h1","repeat":"weekly","occurrences":3}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	resp := decode[CreateResponse](t, w)
	require.Len(t, resp.Posts, 3)
	assert.Equal(t, time.Date(2026, 11, 16, 9, 0, 0, 0, time.UTC), resp.Posts[2].ScheduledAt)
	assert.NotEqual(t, resp.Posts[0].ID, resp.Posts[1].ID)

	list := decode[ListResponse](t, do(h, http.MethodGet, "/api/posts?account=h1", ""))
	assert.Len(t, list.Posts, 3)
}

func TestHandleCreate_ValidationFailed(t *testing.T) {
	h, _ := newTestRouter(t, memory.NewPostStore(nil))

	w := do(h, http.MethodPost, "/api/posts", `{"text":"","scheduledAt":"nope","accountId":""}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	resp := decode[errorResponse](t, w)
	assert.Equal(t, "ValidationFailed", resp.Error)
	assert.Equal(t, []string{drafts.IssueTextRequired, drafts.IssueInvalidDate, drafts.IssueHandleRequired}, resp.Issues)
}

func TestHandleCreate_UnknownAccount(t *testing.T) {
	h, _ := newTestRouter(t, memory.NewPostStore(nil))

	w := do(h, http.MethodPost, "/api/posts", `{"text":"hi","scheduledAt":"2026-11-02T09:00:00Z","accountId":"h9"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "AccountNotFound", decode[errorResponse](t, w).Error)
}

func TestHandleCreate_BadJSON(t *testing.T) {
	h, _ := newTestRouter(t, memory.NewPostStore(nil))

	w := do(h, http.MethodPost, "/api/posts", `{"text":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "InvalidRequest", decode[errorResponse](t, w).Error)
}

// failingRepo fails every Create after the first n
type failingRepo struct {
	*memory.PostStore
	n int
}

func (r *failingRepo) Create(ctx context.Context, p *posts.Post) error {
	if r.n == 0 {
		return errors.New("store unavailable")
	}
	r.n--
	return r.PostStore.Create(ctx, p)
}

func TestHandleCreate_PartialFailure(t *testing.T) {
	h, _ := newTestRouter(t, &failingRepo{PostStore: memory.NewPostStore(nil), n: 2})

	w := do(h, http.MethodPost, "/api/posts",
		`{"text":"daily","scheduledAt":"2026-11-02T09:00:00Z","accountId":"h1","repeat":"daily","occurrences":5}`)
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var resp struct {
		Error string        `json:"error"`
		Posts []*posts.Post `json:"posts"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "PartialFailure", resp.Error)
	assert.Len(t, resp.Posts, 2)
}

func TestHandleList_Filters(t *testing.T) {
	store := memory.NewPostStore([]posts.Post{
		{ID: "a", AccountID: "h1", Text: "a", ScheduledAt: time.Date(2026, 11, 1, 9, 0, 0, 0, time.UTC)},
		{ID: "b", AccountID: "h1", Text: "b", ScheduledAt: time.Date(2026, 11, 3, 9, 0, 0, 0, time.UTC), Status: posts.StatusPosted},
		{ID: "c", AccountID: "h2", Text: "c", ScheduledAt: time.Date(2026, 11, 2, 9, 0, 0, 0, time.UTC)},
	})
	h, _ := newTestRouter(t, store)

	ids := func(target string) []string {
		w := do(h, http.MethodGet, target, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var out []string
		for _, p := range decode[ListResponse](t, w).Posts {
			out = append(out, p.ID)
		}
		return out
	}

	assert.Equal(t, []string{"a", "c", "b"}, ids("/api/posts"))
	assert.Equal(t, []string{"a", "b"}, ids("/api/posts?account=h1"))
	assert.Equal(t, []string{"b"}, ids("/api/posts?status=posted"))
	assert.Equal(t, []string{"c"}, ids("/api/posts?from=2026-11-02T00:00&to=2026-11-03T00:00"))
	assert.Equal(t, []string{"a"}, ids("/api/posts?limit=1"))

	assert.Equal(t, http.StatusBadRequest, do(h, http.MethodGet, "/api/posts?status=draft", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(h, http.MethodGet, "/api/posts?limit=0", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(h, http.MethodGet, "/api/posts?from=yesterday", "").Code)
}

func TestHandleGetAndDelete(t *testing.T) {
	store := memory.NewPostStore([]posts.Post{{ID: "p1", AccountID: "h1", Text: "x", ScheduledAt: testNow.Add(time.Hour)}})
	h, _ := newTestRouter(t, store)

	w := do(h, http.MethodGet, "/api/posts/p1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "x", decode[posts.Post](t, w).Text)

	assert.Equal(t, http.StatusNoContent, do(h, http.MethodDelete, "/api/posts/p1", "").Code)
	assert.Equal(t, http.StatusNotFound, do(h, http.MethodGet, "/api/posts/p1", "").Code)
	assert.Equal(t, http.StatusNotFound, do(h, http.MethodDelete, "/api/posts/p1", "").Code)
}

func TestHandleReschedule(t *testing.T) {
	store := memory.NewPostStore([]posts.Post{{ID: "p1", AccountID: "h1", Text: "x", ScheduledAt: testNow.Add(time.Hour)}})
	h, _ := newTestRouter(t, store)

	w := do(h, http.MethodPost, "/api/posts/p1/reschedule", `{"scheduledAt":"2026-12-24T18:00"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, time.Date(2026, 12, 24, 18, 0, 0, 0, time.UTC), decode[posts.Post](t, w).ScheduledAt)

	w = do(h, http.MethodPost, "/api/posts/p1/reschedule", `{"scheduledAt":"2026-01-01T00:00:00Z"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []string{drafts.IssueNotInFuture}, decode[errorResponse](t, w).Issues)

	assert.Equal(t, http.StatusNotFound, do(h, http.MethodPost, "/api/posts/zz/reschedule", `{"scheduledAt":"2026-12-24T18:00"}`).Code)
}

func TestHandleStatus(t *testing.T) {
	store := memory.NewPostStore([]posts.Post{{ID: "p1", AccountID: "h1", Text: "x", ScheduledAt: testNow.Add(time.Hour)}})
	h, _ := newTestRouter(t, store)

	w := do(h, http.MethodPost, "/api/posts/p1/status", `{"status":"posted"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, posts.StatusPosted, decode[posts.Post](t, w).Status)

	assert.Equal(t, http.StatusBadRequest, do(h, http.MethodPost, "/api/posts/p1/status", `{"status":"archived"}`).Code)
}

func TestHandleImport(t *testing.T) {
	h, _ := newTestRouter(t, memory.NewPostStore(nil))

	body := "Text,Image URL,Tags,Posting Time\n" +
		"hello,,news,2026-11-01 10:00\n" +
		",,,2026-11-01 11:00\n" +
		"old,https://x.test/a.png,,2019-05-05 08:00\n"
	w := do(h, http.MethodPost, "/api/posts/import?account=h2", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode[scheduler.ImportResult](t, w)
	assert.NotEmpty(t, resp.BatchID)
	require.Len(t, resp.Imported, 2)
	assert.Equal(t, []string{"news"}, resp.Imported[0].Tags)
	require.Len(t, resp.Skipped, 1)
	assert.Equal(t, 3, resp.Skipped[0].Line)
	assert.Equal(t, []string{drafts.IssueTextRequired}, resp.Skipped[0].Issues)
}

func TestHandleImport_Errors(t *testing.T) {
	h, _ := newTestRouter(t, memory.NewPostStore(nil))

	w := do(h, http.MethodPost, "/api/posts/import?account=h1", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "InvalidCSV", decode[errorResponse](t, w).Error)

	w = do(h, http.MethodPost, "/api/posts/import?account=nobody", "Text\nhi\n")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(h, http.MethodPost, "/api/posts/import?account=h1", "Text\n"+strings.Repeat("x", maxBodyBytes+1))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestHandleExport(t *testing.T) {
	store := memory.NewPostStore([]posts.Post{
		{ID: "p1", AccountID: "h1", Text: "one, two", ScheduledAt: time.Date(2026, 11, 1, 9, 5, 0, 0, time.UTC), Tags: []string{"a", "b"}},
		{ID: "p2", AccountID: "h2", Text: "other", ScheduledAt: time.Date(2026, 11, 1, 9, 0, 0, 0, time.UTC)},
	})
	h, _ := newTestRouter(t, store)

	w := do(h, http.MethodGet, "/api/posts/export?account=h1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "posts.csv")
	assert.Equal(t, "Text,Image URL,Tags,Posting Time\n\"one, two\",,\"a,b\",2026-11-01 09:05\n", w.Body.String())
}
