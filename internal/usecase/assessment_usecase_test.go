package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/fadilmartias/ai-assessment/internal/dto"
	"github.com/fadilmartias/ai-assessment/internal/model"
	"github.com/fadilmartias/ai-assessment/internal/repository"
	"github.com/fadilmartias/ai-assessment/internal/service"
	"github.com/fadilmartias/ai-assessment/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const (
	passReply = `{"result":"PASS","justification":"Requirement met","evidence_found":"Stated in profile"}`
	failReply = `{"result":"FAIL","justification":"Requirement not met","evidence_found":"None"}`
)

func scoreReply(score any) string {
	b, _ := json.Marshal(map[string]any{
		"raw_score":     score,
		"evidence":      "Stated in profile",
		"justification": "Scored against rubric",
	})
	return string(b)
}

func newAssessmentUsecase(db *gorm.DB, gw *testutil.FakeGateway, trackUsage bool) *AssessmentUsecase {
	store := repository.NewLocalJobStore(repository.NewJobRepository(db), repository.NewCriteriaRepository(db))
	ledger := NewUsageLedger(repository.NewUsageRepository(db), trackUsage, nil)
	return NewAssessmentUsecase(store, repository.NewResultRepository(db), ledger, gw, 1, nil)
}

func jobID(id uint) *dto.JobID {
	j := dto.JobID(id)
	return &j
}

func assessRequest(t *testing.T, id uint, candidateID string) dto.AssessRequest {
	t.Helper()
	data, err := json.Marshal(testutil.CandidateProfile())
	require.NoError(t, err)
	return dto.AssessRequest{JobID: jobID(id), CandidateID: candidateID, CandidateData: data}
}

func seedMinQualification(t *testing.T, db *gorm.DB, areas ...string) *model.Job {
	t.Helper()
	entity := testutil.TestEntity(t, db)
	job := testutil.TestJob(t, db, entity.ID)
	for i, area := range areas {
		testutil.TestMinQualificationCriterion(t, db, job.ID, area, i+1)
	}
	return job
}

func seedFormal(t *testing.T, db *gorm.DB, maxScore float64, opts []func(*model.Job), areas ...string) *model.Job {
	t.Helper()
	entity := testutil.TestEntity(t, db)
	job := testutil.TestJob(t, db, entity.ID, opts...)
	for i, area := range areas {
		testutil.TestFormalCriterion(t, db, job.ID, area, maxScore, i+1)
	}
	return job
}

func TestAssessMinQualification_AllPass(t *testing.T) {
	db := testutil.SetupTestDB(t)
	job := seedMinQualification(t, db, "Education", "Professional Experience", "Language Proficiency")
	gw := testutil.NewFakeGateway()
	gw.Default = passReply
	uc := newAssessmentUsecase(db, gw, true)

	report, err := uc.AssessMinQualification(context.Background(), assessRequest(t, job.ID, "cand-1"))
	require.NoError(t, err)

	assert.True(t, report.Success)
	assert.Equal(t, model.AssessmentMinQualification, report.AssessmentType)
	assert.Equal(t, model.ResultPass, report.OverallResult)
	require.Len(t, report.AreaResults, 3)
	assert.Equal(t, "Education", report.AreaResults[0].Area)
	assert.Equal(t, "Language Proficiency", report.AreaResults[2].Area)
	assert.Empty(t, report.FailedCriteria)
	assert.Equal(t, 3, gw.Calls())

	assert.Equal(t, int64(3), testutil.CountRows(t, db, &model.MinQualificationResult{}, "run_id = ?", report.AreaResults[0].RunID))
	assert.Equal(t, int64(3), testutil.CountRows(t, db, &model.UsageRecord{}, "run_id = ?", report.AreaResults[0].RunID))
	assert.Equal(t, report.RunID, report.AreaResults[0].RunID.String())
}

func TestAssessMinQualification_AnyFailFailsOverall(t *testing.T) {
	db := testutil.SetupTestDB(t)
	job := seedMinQualification(t, db, "Education", "Address", "Computer Proficiency")
	gw := testutil.NewFakeGateway().
		Reply("Education", passReply).
		Reply("Address", failReply).
		Reply("Computer Proficiency", passReply)
	uc := newAssessmentUsecase(db, gw, true)

	report, err := uc.AssessMinQualification(context.Background(), assessRequest(t, job.ID, "cand-1"))
	require.NoError(t, err)

	assert.Equal(t, model.ResultFail, report.OverallResult)
	require.Len(t, report.AreaResults, 3)
	assert.Equal(t, model.ResultFail, report.AreaResults[1].Result)
}

func TestAssessMinQualification_NormalizesResult(t *testing.T) {
	db := testutil.SetupTestDB(t)
	job := seedMinQualification(t, db, "Education", "Address")
	gw := testutil.NewFakeGateway().
		Reply("Education", `{"result":" pass ","justification":"ok","evidence_found":"x"}`).
		Reply("Address", `{"result":"MAYBE","justification":"unsure","evidence_found":"x"}`)
	uc := newAssessmentUsecase(db, gw, true)

	report, err := uc.AssessMinQualification(context.Background(), assessRequest(t, job.ID, "cand-1"))
	require.NoError(t, err)

	assert.Equal(t, model.ResultPass, report.AreaResults[0].Result)
	assert.Equal(t, model.ResultFail, report.AreaResults[1].Result)
	assert.NotEmpty(t, report.AreaResults[0].Warning)
	assert.Equal(t, model.ResultFail, report.OverallResult)
}

func TestAssessMinQualification_MalformedReply(t *testing.T) {
	db := testutil.SetupTestDB(t)
	job := seedMinQualification(t, db, "Education")
	gw := testutil.NewFakeGateway().Reply("Education", "the candidate passes")
	uc := newAssessmentUsecase(db, gw, true)

	report, err := uc.AssessMinQualification(context.Background(), assessRequest(t, job.ID, "cand-1"))
	require.NoError(t, err)

	require.Len(t, report.AreaResults, 1)
	area := report.AreaResults[0]
	assert.Equal(t, model.ResultFail, area.Result)
	assert.Equal(t, malformedReplyWarning, area.Warning)
	assert.JSONEq(t, `{"error":"Invalid JSON response","raw_content":"the candidate passes"}`, string(area.RawReply))
}

func TestAssessMinQualification_FailedCallFailsClosed(t *testing.T) {
	db := testutil.SetupTestDB(t)
	job := seedMinQualification(t, db, "Education", "Address", "Computer Proficiency")
	gw := testutil.NewFakeGateway().Fail("Address")
	gw.Default = passReply
	uc := newAssessmentUsecase(db, gw, true)

	report, err := uc.AssessMinQualification(context.Background(), assessRequest(t, job.ID, "cand-1"))
	require.NoError(t, err)

	assert.Equal(t, model.ResultFail, report.OverallResult)
	assert.Len(t, report.AreaResults, 2)
	require.Len(t, report.FailedCriteria, 1)
	assert.Equal(t, "Address", report.FailedCriteria[0].Area)

	records, err := repository.NewUsageRepository(db).ListByRun(context.Background(), report.RunID)
	require.NoError(t, err)
	require.Len(t, records, 3)

	var failed []model.UsageRecord
	for _, r := range records {
		if !r.Success {
			failed = append(failed, r)
		}
	}
	require.Len(t, failed, 1)
	assert.Zero(t, failed[0].TotalTokens)
	assert.Equal(t, gw.Model(), failed[0].ModelUsed)
}

func TestAssessMinQualification_NoCriteria(t *testing.T) {
	db := testutil.SetupTestDB(t)
	job := seedMinQualification(t, db)
	gw := testutil.NewFakeGateway()
	uc := newAssessmentUsecase(db, gw, true)

	_, err := uc.AssessMinQualification(context.Background(), assessRequest(t, job.ID, "cand-1"))
	require.ErrorIs(t, err, ErrNoCriteria)
	assert.Equal(t, "No minimum qualification criteria found", err.Error())
	assert.Zero(t, gw.Calls())
	assert.Zero(t, testutil.CountRows(t, db, &model.MinQualificationResult{}, "job_id = ?", job.ID))
}

func TestAssessMinQualification_JobNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	gw := testutil.NewFakeGateway()
	uc := newAssessmentUsecase(db, gw, true)

	_, err := uc.AssessMinQualification(context.Background(), assessRequest(t, 999, "cand-1"))
	require.ErrorIs(t, err, ErrJobNotFound)
	assert.Zero(t, gw.Calls())
}

func TestAssessMinQualification_Validation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	job := seedMinQualification(t, db, "Education")
	gw := testutil.NewFakeGateway()
	uc := newAssessmentUsecase(db, gw, true)

	tests := []struct {
		name string
		req  dto.AssessRequest
		msg  string
	}{
		{"missing job id", dto.AssessRequest{CandidateID: "c", CandidateData: json.RawMessage(`{"a":1}`)}, missingAssessFields},
		{"missing candidate id", dto.AssessRequest{JobID: jobID(job.ID), CandidateData: json.RawMessage(`{"a":1}`)}, missingAssessFields},
		{"missing candidate data", dto.AssessRequest{JobID: jobID(job.ID), CandidateID: "c"}, missingAssessFields},
		{"empty object", dto.AssessRequest{JobID: jobID(job.ID), CandidateID: "c", CandidateData: json.RawMessage(`{}`)}, "candidate_data must be a non-empty object"},
		{"array", dto.AssessRequest{JobID: jobID(job.ID), CandidateID: "c", CandidateData: json.RawMessage(`[1,2]`)}, "candidate_data must be a non-empty object"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.AssessMinQualification(context.Background(), tt.req)
			require.ErrorIs(t, err, ErrValidation)
			assert.Equal(t, tt.msg, err.Error())
		})
	}
	assert.Zero(t, gw.Calls())
}

func TestAssessMinQualification_RunsAreAppendOnly(t *testing.T) {
	db := testutil.SetupTestDB(t)
	job := seedMinQualification(t, db, "Education", "Address")
	gw := testutil.NewFakeGateway()
	gw.Default = passReply
	uc := newAssessmentUsecase(db, gw, true)
	ctx := context.Background()

	first, err := uc.AssessMinQualification(ctx, assessRequest(t, job.ID, "cand-1"))
	require.NoError(t, err)
	second, err := uc.AssessMinQualification(ctx, assessRequest(t, job.ID, "cand-1"))
	require.NoError(t, err)

	assert.NotEqual(t, first.RunID, second.RunID)
	assert.Equal(t, int64(4), testutil.CountRows(t, db, &model.MinQualificationResult{}, "job_id = ? AND candidate_id = ?", job.ID, "cand-1"))
}

func TestAssessMinQualification_PersistenceFailure(t *testing.T) {
	db := testutil.SetupTestDB(t)
	job := seedMinQualification(t, db, "Education")
	gw := testutil.NewFakeGateway()
	gw.Default = passReply
	uc := newAssessmentUsecase(db, gw, true)

	require.NoError(t, db.Migrator().DropTable(&model.MinQualificationResult{}))

	_, err := uc.AssessMinQualification(context.Background(), assessRequest(t, job.ID, "cand-1"))
	require.ErrorIs(t, err, ErrPersistence)
	assert.Equal(t, int64(1), testutil.CountRows(t, db, &model.UsageRecord{}, "job_id = ?", job.ID))
}

func TestAssessMinQualification_ConcurrentKeepsOrder(t *testing.T) {
	db := testutil.SetupTestDB(t)
	areas := []string{"Education", "Address", "Computer Proficiency", "Language Proficiency", "Additional Skills"}
	job := seedMinQualification(t, db, areas...)
	gw := testutil.NewFakeGateway()
	gw.Default = passReply
	uc := newAssessmentUsecase(db, gw, true)
	uc.concurrency = 4

	report, err := uc.AssessMinQualification(context.Background(), assessRequest(t, job.ID, "cand-1"))
	require.NoError(t, err)

	require.Len(t, report.AreaResults, len(areas))
	for i, area := range areas {
		assert.Equal(t, area, report.AreaResults[i].Area)
	}
	assert.Equal(t, len(areas), gw.Calls())
	assert.Equal(t, int64(len(areas)), testutil.CountRows(t, db, &model.UsageRecord{}, "job_id = ?", job.ID))
}

// cancellingGateway cancels the request context once the model has replied.
type cancellingGateway struct {
	*testutil.FakeGateway
	cancel context.CancelFunc
}

func (g cancellingGateway) Complete(ctx context.Context, prompt, systemPrompt string) (*service.Completion, error) {
	completion, err := g.FakeGateway.Complete(ctx, prompt, systemPrompt)
	g.cancel()
	return completion, err
}

func TestAssessMinQualification_UsageRecordedAfterCancellation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	job := seedMinQualification(t, db, "Education")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	gw := cancellingGateway{
		FakeGateway: testutil.NewFakeGateway().Reply("Education", passReply),
		cancel:      cancel,
	}
	store := repository.NewLocalJobStore(repository.NewJobRepository(db), repository.NewCriteriaRepository(db))
	ledger := NewUsageLedger(repository.NewUsageRepository(db), true, nil)
	uc := NewAssessmentUsecase(store, repository.NewResultRepository(db), ledger, gw, 1, nil)

	_, _ = uc.AssessMinQualification(ctx, assessRequest(t, job.ID, "cand-1"))

	assert.Equal(t, int64(1), testutil.CountRows(t, db, &model.UsageRecord{}, "job_id = ? AND success = ?", job.ID, true))
}

func TestAssessMinQualification_TrackingDisabled(t *testing.T) {
	db := testutil.SetupTestDB(t)
	job := seedMinQualification(t, db, "Education")
	gw := testutil.NewFakeGateway()
	gw.Default = passReply
	uc := newAssessmentUsecase(db, gw, false)

	report, err := uc.AssessMinQualification(context.Background(), assessRequest(t, job.ID, "cand-1"))
	require.NoError(t, err)
	assert.Equal(t, model.ResultPass, report.OverallResult)
	assert.Zero(t, testutil.CountRows(t, db, &model.UsageRecord{}, "job_id = ?", job.ID))
}

func TestAssessMinQualification_UsesSystemPromptAndAreaData(t *testing.T) {
	db := testutil.SetupTestDB(t)
	job := seedMinQualification(t, db, "Education")
	gw := testutil.NewFakeGateway()
	gw.Default = passReply
	uc := newAssessmentUsecase(db, gw, true)

	_, err := uc.AssessMinQualification(context.Background(), assessRequest(t, job.ID, "cand-1"))
	require.NoError(t, err)

	require.Len(t, gw.Prompts(), 1)
	assert.Contains(t, gw.Prompts()[0], "BSc Computer Science")
	assert.Equal(t, "You are an expert HR evaluator", gw.SystemPrompts()[0][:len("You are an expert HR evaluator")])
}

func TestAssessFormal_ClampsScore(t *testing.T) {
	db := testutil.SetupTestDB(t)
	job := seedFormal(t, db, 10, nil, "Education")
	gw := testutil.NewFakeGateway().Reply("Education", scoreReply(15))
	uc := newAssessmentUsecase(db, gw, true)

	report, err := uc.AssessFormal(context.Background(), assessRequest(t, job.ID, "cand-1"))
	require.NoError(t, err)

	require.Len(t, report.AreaResults, 1)
	assert.Equal(t, 10.0, report.AreaResults[0].RawScore)
	assert.Equal(t, 100.0, report.AreaResults[0].Percentage)
	assert.Equal(t, "A", report.OverallScore.Grade)

	rows, err := repository.NewResultRepository(db).ListFormal(context.Background(), job.ID, "cand-1")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 10.0, rows[0].RawScore)
}

func TestAssessFormal_ScoreParsing(t *testing.T) {
	tests := []struct {
		name  string
		score any
		want  float64
	}{
		{"number", 7.5, 7.5},
		{"numeric string", "6", 6},
		{"text", "seven", 0},
		{"negative", -3, 0},
		{"null", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := testutil.SetupTestDB(t)
			job := seedFormal(t, db, 10, nil, "Education")
			gw := testutil.NewFakeGateway().Reply("Education", scoreReply(tt.score))
			uc := newAssessmentUsecase(db, gw, true)

			report, err := uc.AssessFormal(context.Background(), assessRequest(t, job.ID, "cand-1"))
			require.NoError(t, err)
			require.Len(t, report.AreaResults, 1)
			assert.Equal(t, tt.want, report.AreaResults[0].RawScore)
		})
	}
}

func TestAssessFormal_OverallScore(t *testing.T) {
	db := testutil.SetupTestDB(t)
	job := seedFormal(t, db, 10, []func(*model.Job){testutil.WithCutoffGrade(75)}, "Education", "Address", "Computer Proficiency")
	gw := testutil.NewFakeGateway().
		Reply("Education", scoreReply(8)).
		Reply("Address", scoreReply(9)).
		Reply("Computer Proficiency", scoreReply(7))
	uc := newAssessmentUsecase(db, gw, true)

	report, err := uc.AssessFormal(context.Background(), assessRequest(t, job.ID, "cand-1"))
	require.NoError(t, err)

	score := report.OverallScore
	assert.Equal(t, 24.0, score.TotalScore)
	assert.Equal(t, 30.0, score.TotalMaxScore)
	assert.Equal(t, 80.0, score.Percentage)
	assert.Equal(t, "B", score.Grade)
	require.NotNil(t, score.MeetsCutoff)
	assert.True(t, *score.MeetsCutoff)
}

func TestAssessFormal_GradeFollowsReportedPercentage(t *testing.T) {
	db := testutil.SetupTestDB(t)
	job := seedFormal(t, db, 10, []func(*model.Job){testutil.WithCutoffGrade(90)}, "Education")
	gw := testutil.NewFakeGateway().Reply("Education", scoreReply(8.9996))
	uc := newAssessmentUsecase(db, gw, true)

	report, err := uc.AssessFormal(context.Background(), assessRequest(t, job.ID, "cand-1"))
	require.NoError(t, err)

	score := report.OverallScore
	assert.Equal(t, 90.0, score.Percentage)
	assert.Equal(t, "A", score.Grade)
	require.NotNil(t, score.MeetsCutoff)
	assert.True(t, *score.MeetsCutoff)
}

func TestAssessFormal_BelowCutoff(t *testing.T) {
	db := testutil.SetupTestDB(t)
	job := seedFormal(t, db, 10, []func(*model.Job){testutil.WithCutoffGrade(75)}, "Education")
	gw := testutil.NewFakeGateway().Reply("Education", scoreReply(7))
	uc := newAssessmentUsecase(db, gw, true)

	report, err := uc.AssessFormal(context.Background(), assessRequest(t, job.ID, "cand-1"))
	require.NoError(t, err)
	require.NotNil(t, report.OverallScore.MeetsCutoff)
	assert.False(t, *report.OverallScore.MeetsCutoff)
	assert.Equal(t, "C", report.OverallScore.Grade)
}

func TestAssessFormal_NoCutoffOmitsMeetsCutoff(t *testing.T) {
	db := testutil.SetupTestDB(t)
	job := seedFormal(t, db, 10, nil, "Education")
	gw := testutil.NewFakeGateway().Reply("Education", scoreReply(5))
	uc := newAssessmentUsecase(db, gw, true)

	report, err := uc.AssessFormal(context.Background(), assessRequest(t, job.ID, "cand-1"))
	require.NoError(t, err)
	assert.Nil(t, report.OverallScore.MeetsCutoff)
	assert.Equal(t, "F", report.OverallScore.Grade)
}

func TestAssessFormal_SkipsFailedCriterion(t *testing.T) {
	db := testutil.SetupTestDB(t)
	job := seedFormal(t, db, 10, nil, "Education", "Address")
	gw := testutil.NewFakeGateway().
		Reply("Education", scoreReply(9)).
		Fail("Address")
	uc := newAssessmentUsecase(db, gw, true)

	report, err := uc.AssessFormal(context.Background(), assessRequest(t, job.ID, "cand-1"))
	require.NoError(t, err)

	require.Len(t, report.AreaResults, 1)
	require.Len(t, report.SkippedCriteria, 1)
	assert.Equal(t, "Address", report.SkippedCriteria[0].Area)
	assert.Equal(t, 10.0, report.OverallScore.TotalMaxScore)
	assert.Equal(t, 90.0, report.OverallScore.Percentage)
}

func TestAssessFormal_FailClosedCountsMaxScore(t *testing.T) {
	db := testutil.SetupTestDB(t)
	job := seedFormal(t, db, 10, nil, "Education", "Address")
	gw := testutil.NewFakeGateway().
		Reply("Education", scoreReply(10)).
		Fail("Address")
	uc := newAssessmentUsecase(db, gw, true)
	uc.formalPolicy = PolicyFailClosed

	report, err := uc.AssessFormal(context.Background(), assessRequest(t, job.ID, "cand-1"))
	require.NoError(t, err)
	assert.Equal(t, 20.0, report.OverallScore.TotalMaxScore)
	assert.Equal(t, 50.0, report.OverallScore.Percentage)
	assert.Equal(t, "F", report.OverallScore.Grade)
}

func TestAssessFormal_ExperiencePromptIncludesJob(t *testing.T) {
	db := testutil.SetupTestDB(t)
	job := seedFormal(t, db, 20, []func(*model.Job){testutil.WithTitle("Staff Platform Engineer")}, "Professional Experience", "Education")
	gw := testutil.NewFakeGateway()
	gw.Default = scoreReply(10)
	uc := newAssessmentUsecase(db, gw, true)

	_, err := uc.AssessFormal(context.Background(), assessRequest(t, job.ID, "cand-1"))
	require.NoError(t, err)

	prompts := gw.Prompts()
	require.Len(t, prompts, 2)
	assert.Contains(t, prompts[0], "Job Title: Staff Platform Engineer")
	assert.Contains(t, prompts[0], "8 years building backend services")
	assert.NotContains(t, prompts[1], "Job Title:")
}

func TestAssessFormal_NoCriteria(t *testing.T) {
	db := testutil.SetupTestDB(t)
	job := seedFormal(t, db, 10, nil)
	gw := testutil.NewFakeGateway()
	uc := newAssessmentUsecase(db, gw, true)

	_, err := uc.AssessFormal(context.Background(), assessRequest(t, job.ID, "cand-1"))
	require.ErrorIs(t, err, ErrNoCriteria)
	assert.Equal(t, "No formal assessment criteria found", err.Error())
	assert.Zero(t, gw.Calls())
}

func batchRequest(t *testing.T, id uint, n int) dto.BatchAssessRequest {
	t.Helper()
	req := dto.BatchAssessRequest{JobID: jobID(id)}
	for i := 0; i < n; i++ {
		item, err := json.Marshal(map[string]any{
			"candidate_id":   fmt.Sprintf("cand-%d", i),
			"candidate_data": testutil.CandidateProfile(),
		})
		require.NoError(t, err)
		req.Candidates = append(req.Candidates, item)
	}
	return req
}

func TestBatchMinQualification_SizeLimit(t *testing.T) {
	db := testutil.SetupTestDB(t)
	job := seedMinQualification(t, db, "Education")
	gw := testutil.NewFakeGateway()
	gw.Default = passReply
	uc := newAssessmentUsecase(db, gw, true)
	ctx := context.Background()

	_, err := uc.BatchMinQualification(ctx, batchRequest(t, job.ID, MaxMinQualificationBatch+1))
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "Batch size cannot exceed 10 candidates", err.Error())
	assert.Zero(t, gw.Calls())

	resp, err := uc.BatchMinQualification(ctx, batchRequest(t, job.ID, MaxMinQualificationBatch))
	require.NoError(t, err)
	assert.Equal(t, 10, resp.Summary.TotalCandidates)
	assert.Equal(t, 10, resp.Summary.PassedCandidates)
	assert.Equal(t, 10, gw.Calls())
}

func TestBatchMinQualification_EmptyCandidates(t *testing.T) {
	db := testutil.SetupTestDB(t)
	uc := newAssessmentUsecase(db, testutil.NewFakeGateway(), true)

	_, err := uc.BatchMinQualification(context.Background(), dto.BatchAssessRequest{JobID: jobID(1)})
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "candidates must be a non-empty array", err.Error())
}

func TestBatchMinQualification_ItemErrorsDoNotStopBatch(t *testing.T) {
	db := testutil.SetupTestDB(t)
	job := seedMinQualification(t, db, "Education")
	gw := testutil.NewFakeGateway()
	gw.Default = failReply
	uc := newAssessmentUsecase(db, gw, true)

	req := batchRequest(t, job.ID, 1)
	req.Candidates = append(req.Candidates,
		json.RawMessage(`{"candidate_data":{}}`),
		json.RawMessage(`{"candidate_data":{"education":"MSc"}}`),
	)

	resp, err := uc.BatchMinQualification(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, resp.Results, 3)
	assert.True(t, resp.Results[0].Success)
	assert.False(t, resp.Results[1].Success)
	assert.Equal(t, "candidate_1", resp.Results[1].CandidateID)
	assert.Equal(t, "candidate_data must be a non-empty object", resp.Results[1].Error)
	assert.Equal(t, "candidate_2", resp.Results[2].CandidateID)
	assert.True(t, resp.Results[2].Success)

	summary := resp.Summary
	assert.Equal(t, 3, summary.TotalCandidates)
	assert.Equal(t, 2, summary.SuccessfulAssessments)
	assert.Equal(t, 0, summary.PassedCandidates)
	assert.Equal(t, 2, summary.FailedCandidates)
	assert.Equal(t, 1, summary.ProcessingErrors)
}

func TestBatchFormal_SizeLimitAndSummary(t *testing.T) {
	db := testutil.SetupTestDB(t)
	job := seedFormal(t, db, 10, nil, "Education")
	gw := testutil.NewFakeGateway()
	gw.Default = scoreReply(9)
	uc := newAssessmentUsecase(db, gw, true)
	ctx := context.Background()

	_, err := uc.BatchFormal(ctx, batchRequest(t, job.ID, MaxFormalBatch+1))
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "Batch size cannot exceed 5 candidates", err.Error())
	assert.Zero(t, gw.Calls())

	resp, err := uc.BatchFormal(ctx, batchRequest(t, job.ID, MaxFormalBatch))
	require.NoError(t, err)

	summary := resp.Summary
	assert.Equal(t, 5, summary.SuccessfulAssessments)
	assert.Equal(t, 5, summary.GradeDistribution["A"])
	assert.Equal(t, 0, summary.GradeDistribution["F"])
	assert.Equal(t, 90.0, summary.ScoreStatistics.Average)
	assert.Equal(t, 90.0, summary.ScoreStatistics.Maximum)
	assert.Equal(t, 90.0, summary.ScoreStatistics.Minimum)
}

func TestPreview_MakesNoModelCalls(t *testing.T) {
	db := testutil.SetupTestDB(t)
	entity := testutil.TestEntity(t, db)
	job := testutil.TestJob(t, db, entity.ID, testutil.WithCutoffGrade(70))
	testutil.TestMinQualificationCriterion(t, db, job.ID, "Education", 1)
	testutil.TestFormalCriterion(t, db, job.ID, "Education", 10, 1)
	testutil.TestFormalCriterion(t, db, job.ID, "Professional Experience", 20, 2)
	gw := testutil.NewFakeGateway()
	uc := newAssessmentUsecase(db, gw, true)
	ctx := context.Background()

	minPreview, err := uc.PreviewMinQualification(ctx, dto.PreviewRequest{JobID: jobID(job.ID)})
	require.NoError(t, err)
	assert.Equal(t, 1, minPreview.CriteriaCount)
	assert.Nil(t, minPreview.ScoringSummary)
	assert.Equal(t, job.Title, minPreview.JobData.Title)

	formalPreview, err := uc.PreviewFormal(ctx, dto.PreviewRequest{JobID: jobID(job.ID)})
	require.NoError(t, err)
	assert.Equal(t, 2, formalPreview.CriteriaCount)
	require.NotNil(t, formalPreview.ScoringSummary)
	assert.Equal(t, 30.0, formalPreview.ScoringSummary.TotalMaxScore)
	assert.Equal(t, 15.0, formalPreview.ScoringSummary.AverageMaxScore)
	require.NotNil(t, formalPreview.JobData.CutoffGrade)
	assert.Equal(t, 70.0, *formalPreview.JobData.CutoffGrade)

	assert.Zero(t, gw.Calls())
}

func TestPreview_MissingJob(t *testing.T) {
	db := testutil.SetupTestDB(t)
	uc := newAssessmentUsecase(db, testutil.NewFakeGateway(), true)

	_, err := uc.PreviewFormal(context.Background(), dto.PreviewRequest{JobID: jobID(42)})
	require.ErrorIs(t, err, ErrJobNotFound)

	_, err = uc.PreviewMinQualification(context.Background(), dto.PreviewRequest{})
	require.ErrorIs(t, err, ErrValidation)
}

type failingStore struct{}

func (failingStore) GetJob(ctx context.Context, jobID uint) (*model.Job, error) {
	return nil, fmt.Errorf("connection refused")
}

func (failingStore) GetJobCriteria(ctx context.Context, jobID uint) (*model.JobCriteria, error) {
	return nil, fmt.Errorf("connection refused")
}

func TestAssess_UpstreamFailure(t *testing.T) {
	db := testutil.SetupTestDB(t)
	gw := testutil.NewFakeGateway()
	ledger := NewUsageLedger(repository.NewUsageRepository(db), true, nil)
	uc := NewAssessmentUsecase(failingStore{}, repository.NewResultRepository(db), ledger, gw, 1, nil)

	_, err := uc.AssessMinQualification(context.Background(), assessRequest(t, 1, "cand-1"))
	require.ErrorIs(t, err, ErrUpstreamFetch)
	assert.True(t, strings.HasPrefix(err.Error(), "Failed to fetch job criteria"))

	_, err = uc.AssessFormal(context.Background(), assessRequest(t, 1, "cand-1"))
	require.ErrorIs(t, err, ErrUpstreamFetch)
	assert.True(t, strings.HasPrefix(err.Error(), "Failed to fetch job data"))
	assert.Zero(t, gw.Calls())
}
