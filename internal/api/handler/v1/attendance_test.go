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
)

type stubAttendanceService struct {
	created []domain.AttendanceRecord
}

func (s *stubAttendanceService) CreateRecord(_ context.Context, record domain.AttendanceRecord) (domain.AttendanceRecord, error) {
	record.ID = 1
	s.created = append(s.created, record)

	return record, nil
}

func (s *stubAttendanceService) GetRecord(_ context.Context, id uint) (domain.AttendanceRecord, error) {
	return domain.AttendanceRecord{ID: id}, nil
}

func (s *stubAttendanceService) ListRecords(_ context.Context) ([]domain.AttendanceRecord, error) {
	return nil, nil
}

func (s *stubAttendanceService) UpdateRecord(_ context.Context, record domain.AttendanceRecord) (domain.AttendanceRecord, error) {
	return record, nil
}

func (s *stubAttendanceService) DeleteRecord(_ context.Context, id uint) error {
	return nil
}

func (s *stubAttendanceService) ActivityTypes(_ context.Context) ([]string, error) {
	return []string{domain.ActivityHike}, nil
}

func newAttendanceRouter(svc *stubAttendanceService) *gin.Engine {
	gin.SetMode(gin.TestMode)

	handler := NewAttendanceHandler(svc)

	router := gin.New()
	router.POST("/api/v1/attendance", handler.HandleCreateRecord)
	router.GET("/api/v1/attendance/:recordID", handler.HandleGetRecord)

	return router
}

func TestAttendanceHandler_HandleCreateRecord(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{
			name:       "valid troop night",
			body:       `{"date":"2024-09-14","activity_type":"Troop Night","scout_ids":[1,2]}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "no attendees",
			body:       `{"date":"2024-09-14","activity_type":"Troop Night","scout_ids":[]}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown activity type",
			body:       `{"date":"2024-09-14","activity_type":"Karaoke","scout_ids":[1]}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "other without custom name",
			body:       `{"date":"2024-09-14","activity_type":"Other","scout_ids":[1]}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "other with custom name",
			body:       `{"date":"2024-09-14","activity_type":"Other","custom_activity_name":"First aid course","scout_ids":[1]}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "bad date",
			body:       `{"date":"14/09/2024","activity_type":"Hike","scout_ids":[1]}`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubAttendanceService{}
			router := newAttendanceRouter(svc)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/attendance", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, req)

			assert.Equal(t, tt.wantStatus, resp.Code, resp.Body.String())
		})
	}
}

func TestAttendanceHandler_HandleCreateRecord_ParsesDate(t *testing.T) {
	svc := &stubAttendanceService{}
	router := newAttendanceRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/attendance",
		strings.NewReader(`{"date":"2024-09-14","activity_type":"Camp","scout_ids":[3]}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusCreated, resp.Code)
	require.Len(t, svc.created, 1)
	assert.Equal(t, 2024, svc.created[0].Date.Year())
	assert.Equal(t, domain.ActivityCamp, svc.created[0].ActivityType)
}

func TestAttendanceHandler_HandleGetRecord_BadID(t *testing.T) {
	router := newAttendanceRouter(&stubAttendanceService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/attendance/zero", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}
