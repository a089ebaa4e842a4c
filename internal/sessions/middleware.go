package sessions

import (
	"net/http"
	"time"

	apperrors "rentacab/pkg/errors"
	httputil "rentacab/pkg/http"
	"rentacab/pkg/logger"
	"rentacab/pkg/model"
	"rentacab/pkg/sealer"

	"github.com/julienschmidt/httprouter"
)

const CookieName = "session"

// Authenticator resolves the session cookie into a request-scoped identity.
// The cookie carries a sealed session ID; the session itself lives in Redis.
type Authenticator struct {
	store  Store
	sealer *sealer.Sealer
	ttl    time.Duration
	log    *logger.Logger
}

func NewAuthenticator(store Store, sealer *sealer.Sealer, ttl time.Duration, log *logger.Logger) *Authenticator {
	return &Authenticator{
		store:  store,
		sealer: sealer,
		ttl:    ttl,
		log:    log,
	}
}

// IssueCookie seals the session ID and sets it as the session cookie.
func (a *Authenticator) IssueCookie(w http.ResponseWriter, sessionID string) error {
	token, err := a.sealer.Seal(sessionID)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(a.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return nil
}

// ClearCookie expires the session cookie on the client.
func (a *Authenticator) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Require rejects requests without a valid session with 401. On success the
// session is attached to the request context.
func (a *Authenticator) Require(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		session, err := a.resolve(r)
		if err != nil {
			_ = httputil.WriteError(w, apperrors.Unauthorized("Authentication required"))
			return
		}

		next(w, r.WithContext(WithSession(r.Context(), session)), ps)
	}
}

func (a *Authenticator) resolve(r *http.Request) (*model.Session, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return nil, err
	}

	sessionID, err := a.sealer.Open(cookie.Value)
	if err != nil {
		a.log.Warn("Rejected session cookie", "error", err, "path", r.URL.Path)
		return nil, err
	}

	session, err := a.store.Get(r.Context(), sessionID)
	if err != nil {
		if err != ErrNotFound {
			a.log.Error("Session lookup failed", "error", err)
		}
		return nil, err
	}

	return session, nil
}
