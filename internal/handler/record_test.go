package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/examhub/examhub/config"
	"github.com/examhub/examhub/internal/dto"
	apperrors "github.com/examhub/examhub/internal/errors"
	"github.com/examhub/examhub/internal/model"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubRecordService struct {
	record     *model.Record
	err        error
	lastUserID uint
}

func (s *stubRecordService) CreateRecord(_ context.Context, userID uint, _ *dto.CreateRecordRequest) (*model.Record, error) {
	s.lastUserID = userID
	return s.record, s.err
}

func (s *stubRecordService) GetRecord(_ context.Context, _, userID uint) (*model.Record, error) {
	s.lastUserID = userID
	return s.record, s.err
}

func (s *stubRecordService) ListRecords(_ context.Context, userID uint, _, _ int) ([]model.Record, int64, error) {
	s.lastUserID = userID
	if s.err != nil {
		return nil, 0, s.err
	}
	return []model.Record{*s.record}, 1, nil
}

func (s *stubRecordService) UpdateRecord(_ context.Context, _, userID uint, _ *dto.UpdateRecordRequest) (*model.Record, error) {
	s.lastUserID = userID
	return s.record, s.err
}

func sampleRecord() *model.Record {
	started := time.Now()
	return &model.Record{
		Model:         gorm.Model{ID: 3},
		UserID:        7,
		IsStarted:     true,
		TimeStarted:   &started,
		ExamNameID:    1,
		ExamTypeID:    2,
		ExamYearID:    4,
		ExamSubjectID: 5,
	}
}

func recordTestRouter(svc *stubRecordService, user *model.User) *gin.Engine {
	cfg := &config.Config{}
	cfg.Pagination.Limit = 10
	h := NewRecordHandler(svc, cfg)

	r := gin.New()
	group := r.Group("/auth/records", injectUser(user))
	group.POST("", h.CreateRecord)
	group.GET("", h.ListRecords)
	group.GET("/:id", h.GetRecord)
	group.PATCH("/:id", h.UpdateRecord)
	return r
}

func TestRecordHandler_CreateRecord(t *testing.T) {
	svc := &stubRecordService{record: sampleRecord()}
	r := recordTestRouter(svc, sampleUser())

	started := true
	w := doJSON(t, r, http.MethodPost, "/auth/records", gin.H{
		"is_started":      started,
		"time_started":    time.Now().Format(time.RFC3339),
		"exam_name_id":    1,
		"exam_type_id":    2,
		"exam_year_id":    4,
		"exam_subject_id": 5,
	})

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, uint(7), svc.lastUserID, "record must be scoped to the caller")

	body := decodeBody(t, w)
	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(3), data["id"])
}

func TestRecordHandler_ListRecords(t *testing.T) {
	svc := &stubRecordService{record: sampleRecord()}
	r := recordTestRouter(svc, sampleUser())

	w := doJSON(t, r, http.MethodGet, "/auth/records", nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(1), body["total"])
	assert.Equal(t, uint(7), svc.lastUserID)
}

func TestRecordHandler_GetRecordNotFound(t *testing.T) {
	svc := &stubRecordService{err: apperrors.ErrNotFound}
	r := recordTestRouter(svc, sampleUser())

	w := doJSON(t, r, http.MethodGet, "/auth/records/99", nil)

	require.Equal(t, http.StatusNotFound, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Not Found", body["message"])
}

func TestRecordHandler_UpdateRecord(t *testing.T) {
	record := sampleRecord()
	completed := time.Now()
	record.IsCompleted = true
	record.TimeCompleted = &completed
	record.Score = 87.5
	svc := &stubRecordService{record: record}
	r := recordTestRouter(svc, sampleUser())

	w := doJSON(t, r, http.MethodPatch, "/auth/records/3", gin.H{
		"is_completed":   true,
		"time_completed": completed.Format(time.RFC3339),
		"score":          87.5,
	})

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 87.5, data["score"])
}

func TestRecordHandler_InvalidID(t *testing.T) {
	svc := &stubRecordService{record: sampleRecord()}
	r := recordTestRouter(svc, sampleUser())

	w := doJSON(t, r, http.MethodGet, "/auth/records/abc", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
