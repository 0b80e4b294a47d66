package adaptor

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"coffee-reservation/internal/domain"
	"coffee-reservation/internal/dto/request"
	"coffee-reservation/internal/dto/response"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubReservationService struct {
	createFn  func(ctx context.Context, req *request.CreateReservationRequest) (*response.ReservationResponse, error)
	getFn     func(ctx context.Context, id int64) (*response.ReservationResponse, error)
	searchFn  func(ctx context.Context, phone, email string) ([]response.ReservationResponse, error)
	confirmFn func(ctx context.Context, id int64) (*response.ReservationResponse, error)
	listFn    func(ctx context.Context, limit int) (*response.AdminReservationsResponse, error)
	statusFn  func(ctx context.Context, id int64, status string) (*response.ReservationResponse, error)
	deleteFn  func(ctx context.Context, id int64) error
}

func (s *stubReservationService) CreateReservation(ctx context.Context, req *request.CreateReservationRequest) (*response.ReservationResponse, error) {
	return s.createFn(ctx, req)
}

func (s *stubReservationService) GetReservation(ctx context.Context, id int64) (*response.ReservationResponse, error) {
	return s.getFn(ctx, id)
}

func (s *stubReservationService) SearchByContact(ctx context.Context, phone, email string) ([]response.ReservationResponse, error) {
	return s.searchFn(ctx, phone, email)
}

func (s *stubReservationService) ConfirmPayment(ctx context.Context, id int64) (*response.ReservationResponse, error) {
	return s.confirmFn(ctx, id)
}

func (s *stubReservationService) ListAdminReservations(ctx context.Context, limit int) (*response.AdminReservationsResponse, error) {
	return s.listFn(ctx, limit)
}

func (s *stubReservationService) SetStatus(ctx context.Context, id int64, status string) (*response.ReservationResponse, error) {
	return s.statusFn(ctx, id, status)
}

func (s *stubReservationService) DeleteReservation(ctx context.Context, id int64) error {
	return s.deleteFn(ctx, id)
}

func newReservationRouter(service *stubReservationService) http.Handler {
	handler := NewReservationHandler(service, zap.NewNop())

	r := chi.NewRouter()
	r.Post("/api/reservations", handler.CreateReservation)
	r.Get("/api/reservations/search", handler.SearchReservations)
	r.Get("/api/reservations/{id}", handler.GetReservation)
	r.Post("/api/reservations/{id}/confirm-payment", handler.ConfirmPayment)
	r.Put("/api/admin/reservations/{id}", handler.UpdateStatus)
	return r
}

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  json.RawMessage `json:"errors"`
}

func decodeEnvelope(t *testing.T, body *bytes.Buffer) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(body.Bytes(), &env))
	return env
}

func TestReservationHandler_Create_Success(t *testing.T) {
	service := &stubReservationService{
		createFn: func(ctx context.Context, req *request.CreateReservationRequest) (*response.ReservationResponse, error) {
			return &response.ReservationResponse{
				ID:          7,
				Name:        req.Name,
				Status:      "pending",
				TotalAmount: 64000,
			}, nil
		},
	}
	router := newReservationRouter(service)

	body, _ := json.Marshal(request.CreateReservationRequest{
		Name:      "Budi",
		Phone:     "081234567890",
		Date:      "2026-09-10",
		Time:      "14:00",
		PartySize: 2,
		CoffeeID:  "caffe-latte",
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/reservations", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	env := decodeEnvelope(t, w.Body)
	assert.True(t, env.Status)

	var created response.ReservationResponse
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, int64(7), created.ID)
	assert.Equal(t, "pending", created.Status)
}

func TestReservationHandler_Create_AdmissionRejected(t *testing.T) {
	service := &stubReservationService{
		createFn: func(ctx context.Context, req *request.CreateReservationRequest) (*response.ReservationResponse, error) {
			return nil, &domain.AdmissionError{
				Reason:         "Only 2 spots available for this time slot",
				AvailableSpots: 2,
			}
		},
	}
	router := newReservationRouter(service)

	body, _ := json.Marshal(request.CreateReservationRequest{
		Name:      "Budi",
		Phone:     "081234567890",
		Date:      "2026-09-10",
		Time:      "14:00",
		PartySize: 3,
		CoffeeID:  "caffe-latte",
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/reservations", bytes.NewReader(body))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	env := decodeEnvelope(t, w.Body)
	assert.False(t, env.Status)
	assert.Equal(t, "Only 2 spots available for this time slot", env.Message)

	var details map[string]int
	require.NoError(t, json.Unmarshal(env.Errors, &details))
	assert.Equal(t, 2, details["available_spots"])
}

func TestReservationHandler_Create_MissingFields(t *testing.T) {
	router := newReservationRouter(&stubReservationService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/reservations", strings.NewReader(`{"name":"Budi"}`))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := decodeEnvelope(t, w.Body)
	assert.Equal(t, "Validation failed", env.Message)
}

func TestReservationHandler_Get_InvalidID(t *testing.T) {
	router := newReservationRouter(&stubReservationService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/reservations/abc", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReservationHandler_Get_NotFound(t *testing.T) {
	service := &stubReservationService{
		getFn: func(ctx context.Context, id int64) (*response.ReservationResponse, error) {
			return nil, domain.ErrReservationNotFound
		},
	}
	router := newReservationRouter(service)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/reservations/99", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReservationHandler_Search_RequiresContact(t *testing.T) {
	service := &stubReservationService{
		searchFn: func(ctx context.Context, phone, email string) ([]response.ReservationResponse, error) {
			return nil, domain.ErrContactRequired
		},
	}
	router := newReservationRouter(service)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/reservations/search", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReservationHandler_UpdateStatus_IllegalTransition(t *testing.T) {
	service := &stubReservationService{
		statusFn: func(ctx context.Context, id int64, status string) (*response.ReservationResponse, error) {
			return nil, &domain.TransitionError{From: "cancelled", To: "pending"}
		},
	}
	router := newReservationRouter(service)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/admin/reservations/7", strings.NewReader(`{"status":"pending"}`))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := decodeEnvelope(t, w.Body)
	assert.Contains(t, env.Message, "cannot transition reservation from cancelled to pending")
}

func TestReservationHandler_UpdateStatus_UnknownValue(t *testing.T) {
	router := newReservationRouter(&stubReservationService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/admin/reservations/7", strings.NewReader(`{"status":"archived"}`))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
