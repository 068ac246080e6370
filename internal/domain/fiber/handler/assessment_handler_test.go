package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fadilmartias/ai-assessment/internal/repository"
	"github.com/fadilmartias/ai-assessment/internal/testutil"
	"github.com/fadilmartias/ai-assessment/internal/usecase"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const passReply = `{"result":"PASS","justification":"Requirement met","evidence_found":"Stated in profile"}`

func setupAssessmentApp(t *testing.T, db *gorm.DB, gw *testutil.FakeGateway) *fiber.App {
	t.Helper()
	store := repository.NewLocalJobStore(repository.NewJobRepository(db), repository.NewCriteriaRepository(db))
	ledger := usecase.NewUsageLedger(repository.NewUsageRepository(db), true, nil)
	uc := usecase.NewAssessmentUsecase(store, repository.NewResultRepository(db), ledger, gw, 1, nil)

	app := fiber.New()
	NewAssessmentHandler(uc).RegisterRoutes(app)
	NewUsageHandler(ledger).RegisterRoutes(app)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp.StatusCode, out
}

func TestAssessmentHandler_AssessMinQualification(t *testing.T) {
	db := testutil.SetupTestDB(t)
	entity := testutil.TestEntity(t, db)
	job := testutil.TestJob(t, db, entity.ID)
	testutil.TestMinQualificationCriterion(t, db, job.ID, "Education", 1)
	gw := testutil.NewFakeGateway()
	gw.Default = passReply
	app := setupAssessmentApp(t, db, gw)

	status, body := doJSON(t, app, http.MethodPost, "/api/min-qualification/assess", map[string]any{
		"job_id":         job.ID,
		"candidate_id":   "cand-1",
		"candidate_data": testutil.CandidateProfile(),
	})

	require.Equal(t, fiber.StatusOK, status, body)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "PASS", body["overall_result"])
	assert.Equal(t, "min_qualification", body["assessment_type"])
	assert.NotEmpty(t, body["run_id"])

	areas, ok := body["area_results"].([]any)
	require.True(t, ok)
	require.Len(t, areas, 1)
	area := areas[0].(map[string]any)
	assert.Equal(t, "Education", area["area"])
	assert.Equal(t, "PASS", area["result"])
}

func TestAssessmentHandler_AcceptsStringJobID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	entity := testutil.TestEntity(t, db)
	job := testutil.TestJob(t, db, entity.ID)
	testutil.TestFormalCriterion(t, db, job.ID, "Education", 10, 1)
	gw := testutil.NewFakeGateway()
	gw.Default = `{"raw_score":8,"evidence":"Degree","justification":"Relevant degree"}`
	app := setupAssessmentApp(t, db, gw)

	raw := `{"job_id":"` + jsonNumber(job.ID) + `","candidate_id":"cand-1","candidate_data":{"education":"BSc"}}`
	status, body := doJSON(t, app, http.MethodPost, "/api/formal-assessment/assess", raw)

	require.Equal(t, fiber.StatusOK, status, body)
	overall := body["overall_score"].(map[string]any)
	assert.Equal(t, 80.0, overall["percentage"])
	assert.Equal(t, "B", overall["grade"])
}

func TestAssessmentHandler_ErrorMapping(t *testing.T) {
	db := testutil.SetupTestDB(t)
	entity := testutil.TestEntity(t, db)
	emptyJob := testutil.TestJob(t, db, entity.ID)
	gw := testutil.NewFakeGateway()
	app := setupAssessmentApp(t, db, gw)

	tests := []struct {
		name   string
		path   string
		body   any
		status int
		error  string
	}{
		{
			name:   "missing fields",
			path:   "/api/min-qualification/assess",
			body:   map[string]any{"candidate_id": "c"},
			status: fiber.StatusBadRequest,
			error:  "Missing required fields: job_id, candidate_id, candidate_data",
		},
		{
			name:   "invalid job id",
			path:   "/api/min-qualification/assess",
			body:   `{"job_id":"abc","candidate_id":"c","candidate_data":{"a":1}}`,
			status: fiber.StatusBadRequest,
			error:  "job_id must be a valid integer",
		},
		{
			name:   "malformed body",
			path:   "/api/formal-assessment/assess",
			body:   `{"job_id":`,
			status: fiber.StatusBadRequest,
			error:  "Invalid JSON body",
		},
		{
			name:   "unknown job",
			path:   "/api/formal-assessment/assess",
			body:   map[string]any{"job_id": 999, "candidate_id": "c", "candidate_data": map[string]any{"a": 1}},
			status: fiber.StatusNotFound,
			error:  "Job not found",
		},
		{
			name:   "no criteria",
			path:   "/api/min-qualification/assess",
			body:   map[string]any{"job_id": emptyJob.ID, "candidate_id": "c", "candidate_data": map[string]any{"a": 1}},
			status: fiber.StatusUnprocessableEntity,
			error:  "No minimum qualification criteria found",
		},
		{
			name:   "batch too large",
			path:   "/api/formal-assessment/batch-assess",
			body:   map[string]any{"job_id": emptyJob.ID, "candidates": make([]map[string]any, 6)},
			status: fiber.StatusBadRequest,
			error:  "Batch size cannot exceed 5 candidates",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := doJSON(t, app, http.MethodPost, tt.path, tt.body)
			assert.Equal(t, tt.status, status, body)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tt.error, body["error"])
		})
	}
	assert.Zero(t, gw.Calls())
}

func TestAssessmentHandler_PreviewAndUsageStats(t *testing.T) {
	db := testutil.SetupTestDB(t)
	entity := testutil.TestEntity(t, db)
	job := testutil.TestJob(t, db, entity.ID)
	testutil.TestMinQualificationCriterion(t, db, job.ID, "Education", 1)
	testutil.TestFormalCriterion(t, db, job.ID, "Education", 10, 1)
	gw := testutil.NewFakeGateway()
	gw.Default = passReply
	app := setupAssessmentApp(t, db, gw)

	status, body := doJSON(t, app, http.MethodPost, "/api/formal-assessment/preview", map[string]any{"job_id": job.ID})
	require.Equal(t, fiber.StatusOK, status, body)
	assert.Equal(t, 1.0, body["criteria_count"])
	assert.NotNil(t, body["scoring_summary"])
	assert.Zero(t, gw.Calls())

	status, _ = doJSON(t, app, http.MethodPost, "/api/min-qualification/assess", map[string]any{
		"job_id": job.ID, "candidate_id": "cand-1", "candidate_data": testutil.CandidateProfile(),
	})
	require.Equal(t, fiber.StatusOK, status)

	status, body = doJSON(t, app, http.MethodGet, "/api/usage/stats?job_id="+jsonNumber(job.ID), nil)
	require.Equal(t, fiber.StatusOK, status, body)
	stats := body["stats"].(map[string]any)
	assert.Equal(t, 1.0, stats["total_assessments"])
	assert.Equal(t, 1500.0, stats["total_tokens"])

	status, body = doJSON(t, app, http.MethodGet, "/api/usage/stats?job_id=x", nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Invalid job_id", body["error"])
}

func jsonNumber(id uint) string {
	b, _ := json.Marshal(id)
	return string(b)
}
