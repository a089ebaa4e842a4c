package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"rentacab/internal/bookings/service"
	"rentacab/internal/sessions"
	"rentacab/pkg/logger"
	"rentacab/pkg/model"
	"rentacab/pkg/pricing"
	"rentacab/pkg/sealer"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSealerKey = "lfQVRuulcL2iOhOJ2r8BYTweoSKwVAJnIF9U+AL+M60="

type stubBookingService struct{}

func (stubBookingService) Categories() []pricing.Category { return pricing.Categories() }

func (stubBookingService) CategoryFor(carType string) pricing.Category {
	return pricing.Category{Name: carType, PricePerDay: pricing.DailyRate(carType)}
}

func (stubBookingService) Create(ctx context.Context, userID, carType string, req *model.BookingRequest) (*model.Booking, error) {
	panic("not used")
}

func (stubBookingService) ListByUser(ctx context.Context, userID string) ([]*model.Booking, error) {
	panic("not used")
}

func (stubBookingService) Cancel(ctx context.Context, userID, id string) (*model.Booking, error) {
	panic("not used")
}

var _ service.BookingService = stubBookingService{}

// emptySessionStore has no sessions, so every cookie-bearing request still
// resolves to unauthenticated.
type emptySessionStore struct{}

func (emptySessionStore) Create(ctx context.Context, userID, username string) (*model.Session, error) {
	panic("not used")
}

func (emptySessionStore) Get(ctx context.Context, sessionID string) (*model.Session, error) {
	return nil, sessions.ErrNotFound
}

func (emptySessionStore) Delete(ctx context.Context, sessionID string) error {
	return nil
}

func testRouter(t *testing.T) *httprouter.Router {
	t.Helper()

	s, err := sealer.New(testSealerKey)
	require.NoError(t, err)

	log := logger.New(logger.Config{Level: "error", Format: "text", Output: os.Stderr, Service: "test"})
	auth := sessions.NewAuthenticator(emptySessionStore{}, s, time.Hour, log)

	router := httprouter.New()
	NewBookingHandler(stubBookingService{}, auth, log).RegisterRoutes(router)
	return router
}

func TestCategoriesOpenToAnonymous(t *testing.T) {
	router := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/car_type", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, "category listing must not require a session")
	assert.Contains(t, rec.Body.String(), "sedan")
	assert.Contains(t, rec.Body.String(), "suv")
}

func TestSelectCategoryOpenToAnonymous(t *testing.T) {
	router := testRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/car_type", strings.NewReader(`{"car_type":"suv"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/book/suv", rec.Header().Get("Location"))
}

func TestBookingRoutesRequireSession(t *testing.T) {
	router := testRouter(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/book/sedan"},
		{http.MethodPost, "/book/sedan"},
		{http.MethodGet, "/my_bookings"},
		{http.MethodPost, "/cancel_booking/b-1"},
	}

	for _, p := range paths {
		req := httptest.NewRequest(p.method, p.path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s should require a session", p.method, p.path)
	}
}
