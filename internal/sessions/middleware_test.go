package sessions

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"rentacab/pkg/logger"
	"rentacab/pkg/model"
	"rentacab/pkg/sealer"

	"github.com/julienschmidt/httprouter"
)

const testKey = "lfQVRuulcL2iOhOJ2r8BYTweoSKwVAJnIF9U+AL+M60="

type fakeStore struct {
	GetFunc    func(ctx context.Context, sessionID string) (*model.Session, error)
	CreateFunc func(ctx context.Context, userID, username string) (*model.Session, error)
	DeleteFunc func(ctx context.Context, sessionID string) error
}

func (f *fakeStore) Get(ctx context.Context, sessionID string) (*model.Session, error) {
	return f.GetFunc(ctx, sessionID)
}

func (f *fakeStore) Create(ctx context.Context, userID, username string) (*model.Session, error) {
	return f.CreateFunc(ctx, userID, username)
}

func (f *fakeStore) Delete(ctx context.Context, sessionID string) error {
	return f.DeleteFunc(ctx, sessionID)
}

func testAuthenticator(t *testing.T, store Store) *Authenticator {
	t.Helper()

	s, err := sealer.New(testKey)
	if err != nil {
		t.Fatalf("failed to create sealer: %v", err)
	}

	log := logger.New(logger.Config{Level: "error", Format: "text", Output: os.Stderr, Service: "test"})
	return NewAuthenticator(store, s, time.Hour, log)
}

func protectedHandler(called *bool, session **model.Session) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		*called = true
		if s, ok := FromContext(r.Context()); ok {
			*session = s
		}
		w.WriteHeader(http.StatusOK)
	}
}

func TestRequireRejectsMissingCookie(t *testing.T) {
	auth := testAuthenticator(t, &fakeStore{})

	called := false
	var session *model.Session
	handler := auth.Require(protectedHandler(&called, &session))

	req := httptest.NewRequest(http.MethodGet, "/my_bookings", nil)
	rec := httptest.NewRecorder()
	handler(rec, req, nil)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
	if called {
		t.Error("handler should not run without a session")
	}
}

func TestRequireRejectsTamperedToken(t *testing.T) {
	auth := testAuthenticator(t, &fakeStore{})

	called := false
	var session *model.Session
	handler := auth.Require(protectedHandler(&called, &session))

	req := httptest.NewRequest(http.MethodGet, "/my_bookings", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "not-a-sealed-token"})
	rec := httptest.NewRecorder()
	handler(rec, req, nil)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
	if called {
		t.Error("handler should not run with a tampered token")
	}
}

func TestRequireRejectsExpiredSession(t *testing.T) {
	store := &fakeStore{
		GetFunc: func(ctx context.Context, sessionID string) (*model.Session, error) {
			return nil, ErrNotFound
		},
	}
	auth := testAuthenticator(t, store)

	called := false
	var session *model.Session
	handler := auth.Require(protectedHandler(&called, &session))

	rec := httptest.NewRecorder()
	if err := auth.IssueCookie(rec, "gone-session"); err != nil {
		t.Fatalf("failed to issue cookie: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/my_bookings", nil)
	req.AddCookie(rec.Result().Cookies()[0])
	rec = httptest.NewRecorder()
	handler(rec, req, nil)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for expired session, got %d", rec.Code)
	}
	if called {
		t.Error("handler should not run for an expired session")
	}
}

func TestRequireAttachesSession(t *testing.T) {
	want := &model.Session{ID: "s-1", UserID: "u-1", Username: "asha"}
	store := &fakeStore{
		GetFunc: func(ctx context.Context, sessionID string) (*model.Session, error) {
			if sessionID != "s-1" {
				return nil, ErrNotFound
			}
			return want, nil
		},
	}
	auth := testAuthenticator(t, store)

	called := false
	var session *model.Session
	handler := auth.Require(protectedHandler(&called, &session))

	rec := httptest.NewRecorder()
	if err := auth.IssueCookie(rec, "s-1"); err != nil {
		t.Fatalf("failed to issue cookie: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/my_bookings", nil)
	req.AddCookie(rec.Result().Cookies()[0])
	rec = httptest.NewRecorder()
	handler(rec, req, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !called {
		t.Fatal("handler should run with a valid session")
	}
	if session == nil || session.UserID != "u-1" {
		t.Errorf("expected session for u-1 in context, got %+v", session)
	}
}

func TestClearCookieExpires(t *testing.T) {
	auth := testAuthenticator(t, &fakeStore{})

	rec := httptest.NewRecorder()
	auth.ClearCookie(rec)

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected one cookie, got %d", len(cookies))
	}
	if cookies[0].MaxAge != -1 {
		t.Errorf("expected MaxAge -1, got %d", cookies[0].MaxAge)
	}
	if cookies[0].Value != "" {
		t.Errorf("expected empty value, got %s", cookies[0].Value)
	}
}
