package v1

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tobscouts/troop-api/internal/domain"
	"github.com/tobscouts/troop-api/internal/service"
)

type stubScoutService struct {
	scout     domain.Scout
	getErr    error
	updateErr error
	deleteErr error

	deletedIDs []uint
	updates    []service.ScoutUpdate
}

func (s *stubScoutService) ListScouts(_ context.Context) ([]domain.Scout, error) {
	return []domain.Scout{s.scout}, nil
}

func (s *stubScoutService) GetScout(_ context.Context, id uint) (domain.Scout, error) {
	if s.getErr != nil {
		return domain.Scout{}, s.getErr
	}

	return s.scout, nil
}

func (s *stubScoutService) GetProfile(_ context.Context, id uint, physicallyObtained *bool) (domain.ScoutProfile, error) {
	if s.getErr != nil {
		return domain.ScoutProfile{}, s.getErr
	}

	return domain.ScoutProfile{Scout: s.scout}, nil
}

func (s *stubScoutService) GetProfileByEmail(_ context.Context, email string) (domain.ScoutProfile, error) {
	if s.getErr != nil {
		return domain.ScoutProfile{}, s.getErr
	}

	return domain.ScoutProfile{Scout: s.scout}, nil
}

func (s *stubScoutService) GetAttendanceByEmail(_ context.Context, email string) ([]domain.AttendanceRecord, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}

	return nil, nil
}

func (s *stubScoutService) UpdateScout(_ context.Context, id uint, update service.ScoutUpdate) (domain.Scout, error) {
	s.updates = append(s.updates, update)
	if s.updateErr != nil {
		return domain.Scout{}, s.updateErr
	}

	return s.scout, nil
}

func (s *stubScoutService) DeleteScout(_ context.Context, id uint) error {
	s.deletedIDs = append(s.deletedIDs, id)

	return s.deleteErr
}

func newScoutRouter(svc *stubScoutService, invite *stubInviteService) *gin.Engine {
	gin.SetMode(gin.TestMode)

	handler := NewScoutHandler(svc, invite)

	router := gin.New()
	router.POST("/api/scout-management/add-scout", handler.HandleAddScout)
	router.DELETE("/api/scout-management/delete-scout/:scoutID", handler.HandleDeleteScout)
	router.GET("/api/v1/scouts/:scoutID", handler.HandleGetScout)
	router.PUT("/api/v1/scouts/:scoutID", handler.HandleUpdateScout)
	router.GET("/api/v1/scouts/:scoutID/profile", handler.HandleGetScoutProfile)

	return router
}

func TestScoutHandler_HandleAddScout_DefaultsToScoutRole(t *testing.T) {
	invite := &stubInviteService{}
	router := newScoutRouter(&stubScoutService{}, invite)

	req := httptest.NewRequest(http.MethodPost, "/api/scout-management/add-scout",
		strings.NewReader(`{"email":"new@example.com","user_metadata":{"name":"New Scout"}}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	require.Len(t, invite.invitations, 1)
	assert.Equal(t, domain.RoleScout, invite.invitations[0].Role)
}

func TestScoutHandler_HandleAddScout_RejectsLeaderRole(t *testing.T) {
	router := newScoutRouter(&stubScoutService{}, &stubInviteService{})

	req := httptest.NewRequest(http.MethodPost, "/api/scout-management/add-scout",
		strings.NewReader(`{"email":"new@example.com","user_metadata":{"userrole":"leader"}}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestScoutHandler_HandleDeleteScout(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		deleteErr  error
		wantStatus int
	}{
		{
			name:       "success",
			path:       "/api/scout-management/delete-scout/7",
			wantStatus: http.StatusOK,
		},
		{
			name:       "unknown scout",
			path:       "/api/scout-management/delete-scout/99",
			deleteErr:  service.ErrScoutNotFound,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "malformed id",
			path:       "/api/scout-management/delete-scout/abc",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "account delete failed downstream",
			path:       "/api/scout-management/delete-scout/7",
			deleteErr:  service.ErrAccountDelete,
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubScoutService{deleteErr: tt.deleteErr}
			router := newScoutRouter(svc, &stubInviteService{})

			req := httptest.NewRequest(http.MethodDelete, tt.path, nil)
			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, req)

			assert.Equal(t, tt.wantStatus, resp.Code, resp.Body.String())
		})
	}
}

func TestScoutHandler_HandleUpdateScout(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &stubScoutService{scout: domain.Scout{ID: 7, FullName: "Alex Doe"}}
		router := newScoutRouter(svc, &stubInviteService{})

		req := httptest.NewRequest(http.MethodPut, "/api/v1/scouts/7",
			strings.NewReader(`{"full_name":"Alex Doe","email":"alex@example.com","rank":"Second Class","crew":"Hawks"}`))
		req.Header.Set("Content-Type", "application/json")
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)

		require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
		require.Len(t, svc.updates, 1)
		assert.Equal(t, "Second Class", svc.updates[0].Rank)
	})

	t.Run("missing fields", func(t *testing.T) {
		router := newScoutRouter(&stubScoutService{}, &stubInviteService{})

		req := httptest.NewRequest(http.MethodPut, "/api/v1/scouts/7",
			strings.NewReader(`{"full_name":"Alex Doe"}`))
		req.Header.Set("Content-Type", "application/json")
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)

		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})

	t.Run("provider rejects email", func(t *testing.T) {
		svc := &stubScoutService{updateErr: service.ErrEmailSync}
		router := newScoutRouter(svc, &stubInviteService{})

		req := httptest.NewRequest(http.MethodPut, "/api/v1/scouts/7",
			strings.NewReader(`{"full_name":"Alex Doe","email":"taken@example.com","rank":"Tenderfoot","crew":"Eagles"}`))
		req.Header.Set("Content-Type", "application/json")
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)

		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})
}

func TestScoutHandler_HandleGetScoutProfile(t *testing.T) {
	t.Run("bad filter value", func(t *testing.T) {
		router := newScoutRouter(&stubScoutService{}, &stubInviteService{})

		req := httptest.NewRequest(http.MethodGet, "/api/v1/scouts/7/profile?physically_obtained=maybe", nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)

		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})

	t.Run("unknown scout", func(t *testing.T) {
		svc := &stubScoutService{getErr: service.ErrScoutNotFound}
		router := newScoutRouter(svc, &stubInviteService{})

		req := httptest.NewRequest(http.MethodGet, "/api/v1/scouts/99/profile", nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)

		assert.Equal(t, http.StatusNotFound, resp.Code)
	})
}
