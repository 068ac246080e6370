package repository

import (
	"context"
	"fmt"
	"net/http"

	"github.com/fadilmartias/ai-assessment/internal/config"
	"github.com/fadilmartias/ai-assessment/internal/model"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

// HTTPJobStore reads jobs from the Job Management API.
type HTTPJobStore struct {
	client *resty.Client
}

func NewHTTPJobStore(cfg *config.JobServiceConfig) *HTTPJobStore {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json")
	return &HTTPJobStore{client: client}
}

func (s *HTTPJobStore) GetJob(ctx context.Context, jobID uint) (*model.Job, error) {
	body, err := s.get(ctx, fmt.Sprintf("/api/jobs/%d", jobID))
	if err != nil {
		return nil, err
	}

	job := &model.Job{
		ID:              uint(body.Get("id").Uint()),
		EntityID:        uint(body.Get("entity_id").Uint()),
		ReferenceNumber: body.Get("reference_number").String(),
		Title:           body.Get("title").String(),
		Description:     body.Get("description").String(),
		Status:          body.Get("status").String(),
	}
	if cg := body.Get("cutoff_grade"); cg.Exists() && cg.Type != gjson.Null {
		v := cg.Float()
		job.CutoffGrade = &v
	}
	if job.ID == 0 {
		job.ID = jobID
	}
	return job, nil
}

func (s *HTTPJobStore) GetJobCriteria(ctx context.Context, jobID uint) (*model.JobCriteria, error) {
	body, err := s.get(ctx, fmt.Sprintf("/api/jobs/%d/criteria", jobID))
	if err != nil {
		return nil, err
	}

	return &model.JobCriteria{
		JobID:            jobID,
		MinQualification: parseCriteria(body.Get("min_qualification_criteria"), jobID),
		FormalAssessment: parseCriteria(body.Get("formal_assessment_criteria"), jobID),
	}, nil
}

// get fetches path and returns the payload, unwrapping the {"data": ...} envelope when present.
func (s *HTTPJobStore) get(ctx context.Context, path string) (gjson.Result, error) {
	resp, err := s.client.R().SetContext(ctx).Get(path)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("GET %s: %w", path, err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return gjson.Result{}, ErrJobNotFound
	}
	if resp.IsError() {
		return gjson.Result{}, fmt.Errorf("GET %s: status %d", path, resp.StatusCode())
	}

	raw := resp.String()
	if !gjson.Valid(raw) {
		return gjson.Result{}, fmt.Errorf("GET %s: response is not JSON", path)
	}
	root := gjson.Parse(raw)
	if data := root.Get("data"); data.IsObject() {
		return data, nil
	}
	return root, nil
}

func parseCriteria(list gjson.Result, jobID uint) []model.Criterion {
	out := make([]model.Criterion, 0)
	list.ForEach(func(_, c gjson.Result) bool {
		criterion := model.Criterion{
			ID:          uint(c.Get("id").Uint()),
			JobID:       uint(c.Get("job_id").Uint()),
			Area:        c.Get("area").String(),
			RuleText:    c.Get("criteria").String(),
			Explanation: c.Get("explanation").String(),
			MaxScore:    c.Get("max_score").Float(),
			Weight:      c.Get("weight").Float(),
			OrderIndex:  int(c.Get("order_index").Int()),
		}
		if criterion.JobID == 0 {
			criterion.JobID = jobID
		}
		out = append(out, criterion)
		return true
	})
	return out
}
