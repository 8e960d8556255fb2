package remote

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"liteboard/internal/domain"
	"liteboard/internal/domain/models"
	"liteboard/internal/httputil"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(t *testing.T, h http.Handler, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	opts = append([]Option{WithLogger(quietLogger())}, opts...)
	c, err := New(srv.URL, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestNew_RejectsRelativeURL(t *testing.T) {
	if _, err := New("/api"); err == nil {
		t.Fatal("expected error for base url without host")
	}
}

func TestClient_ErrorMapping(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
		wantIs      error
	}{
		{
			name:        "server message is surfaced verbatim",
			status:      http.StatusBadRequest,
			body:        `{"error":"title is required"}`,
			wantMessage: "title is required",
			wantIs:      domain.ErrNetwork,
		},
		{
			name:        "generic message without envelope",
			status:      http.StatusBadGateway,
			body:        `<html>bad gateway</html>`,
			wantMessage: "HTTP 502: Bad Gateway",
			wantIs:      domain.ErrNetwork,
		},
		{
			name:        "empty error field falls back to status line",
			status:      http.StatusInternalServerError,
			body:        `{"error":""}`,
			wantMessage: "HTTP 500: Internal Server Error",
			wantIs:      domain.ErrNetwork,
		},
		{
			name:        "not found",
			status:      http.StatusNotFound,
			body:        `{"error":"project 9: not found"}`,
			wantMessage: "project 9: not found",
			wantIs:      domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			}))

			_, err := c.GetProject(context.Background(), 9)
			if err == nil {
				t.Fatal("expected error")
			}
			if err.Error() != tt.wantMessage {
				t.Errorf("message = %q, want %q", err.Error(), tt.wantMessage)
			}
			if !errors.Is(err, tt.wantIs) {
				t.Errorf("errors.Is(%v, %v) = false", err, tt.wantIs)
			}
		})
	}
}

func TestClient_TransportFailureIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := New(url, WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_, err = c.ListProjects(context.Background())
	if !errors.Is(err, domain.ErrNetwork) {
		t.Fatalf("expected ErrNetwork, got %v", err)
	}
	var netErr *domain.NetworkError
	if !errors.As(err, &netErr) || netErr.Status != 0 {
		t.Errorf("expected transport NetworkError with status 0, got %#v", err)
	}
}

func TestClient_SessionExpiredHookFiresOnce(t *testing.T) {
	var fired atomic.Int32
	c := newTestClient(t,
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			httputil.RespondError(w, http.StatusUnauthorized, "not logged in")
		}),
		WithSessionExpiredHook(func() { fired.Add(1) }),
	)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.ListsByProject(context.Background(), 1)
			if !errors.Is(err, domain.ErrSessionExpired) {
				t.Errorf("expected ErrSessionExpired, got %v", err)
			}
		}()
	}
	wg.Wait()

	if got := fired.Load(); got != 1 {
		t.Errorf("hook fired %d times, want 1", got)
	}
}

func TestClient_SendsSessionCookieAndQuery(t *testing.T) {
	c := newTestClient(t,
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(httputil.SessionCookie)
			if err != nil || cookie.Value != "tok-1" {
				httputil.RespondError(w, http.StatusUnauthorized, "not logged in")
				return
			}
			if r.URL.Path != "/api/content_lists" || r.URL.Query().Get("projectid") != "42" {
				httputil.RespondError(w, http.StatusBadRequest, "unexpected request "+r.URL.String())
				return
			}
			// flat legacy item form
			io.WriteString(w, `[{"id":1,"type":"list","title":"Todo","project_id":42,"items":[{"id":5,"type":"task","title":"a"}]}]`)
		}),
		WithSessionToken("tok-1"),
	)

	lists, err := c.ListsByProject(context.Background(), 42)
	if err != nil {
		t.Fatalf("ListsByProject: %v", err)
	}
	if len(lists) != 1 || lists[0].IndexOfEntry(5) != 0 {
		t.Fatalf("unexpected lists: %+v", lists)
	}
	if c.SessionToken() != "tok-1" {
		t.Errorf("SessionToken() = %q, want tok-1", c.SessionToken())
	}
}

func TestClient_LoginStoresCookie(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/auth/login" {
			http.NotFound(w, r)
			return
		}
		var req models.LoginRequest
		if err := httputil.ParseJSON(w, r, &req); err != nil {
			httputil.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
		http.SetCookie(w, &http.Cookie{Name: httputil.SessionCookie, Value: "issued-" + req.Username, Path: "/"})
		httputil.RespondJSON(w, http.StatusOK, models.User{ID: req.Username, Username: req.Username})
	}))

	user, err := c.Login(context.Background(), "ada")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if user.Username != "ada" {
		t.Errorf("Username = %q, want ada", user.Username)
	}
	if got := c.SessionToken(); got != "issued-ada" {
		t.Errorf("SessionToken() = %q, want issued-ada", got)
	}
}

func TestClient_UpdateListSendsWholeDocument(t *testing.T) {
	var got models.List
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/api/content_lists/7" {
			http.NotFound(w, r)
			return
		}
		if err := httputil.ParseJSON(w, r, &got); err != nil {
			httputil.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
		httputil.RespondJSON(w, http.StatusOK, got)
	}))

	list := &models.List{
		ID:    7,
		Type:  models.ListType,
		Title: "Done",
		Items: models.Items{
			models.EntryItem{Entry: models.Entry{ID: 1, Title: "a"}},
			models.EntryItem{Entry: models.Entry{ID: 2, Title: "b"}},
		},
	}
	if _, err := c.UpdateList(context.Background(), list); err != nil {
		t.Fatalf("UpdateList: %v", err)
	}
	if got.Title != "Done" || got.IndexOfEntry(1) != 0 || got.IndexOfEntry(2) != 1 {
		t.Errorf("server received %+v", got)
	}
}

func TestClient_DeleteAcceptsMessageEnvelope(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httputil.RespondMessage(w, http.StatusOK, "deleted")
	}))

	if err := c.DeleteEntry(context.Background(), 3); err != nil {
		t.Fatalf("DeleteEntry: %v", err)
	}
}
