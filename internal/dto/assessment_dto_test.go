package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobID_UnmarshalJSON(t *testing.T) {
	cases := []struct {
		in      string
		want    JobID
		wantErr bool
	}{
		{in: `{"job_id": 7}`, want: 7},
		{in: `{"job_id": "42"}`, want: 42},
		{in: `{"job_id": " 3 "}`, want: 3},
		{in: `{"job_id": "abc"}`, wantErr: true},
		{in: `{"job_id": 1.5}`, wantErr: true},
		{in: `{"job_id": 0}`, wantErr: true},
		{in: `{"job_id": -4}`, wantErr: true},
	}
	for _, tc := range cases {
		var req PreviewRequest
		err := json.Unmarshal([]byte(tc.in), &req)
		if tc.wantErr {
			assert.Error(t, err, tc.in)
			continue
		}
		require.NoError(t, err, tc.in)
		require.NotNil(t, req.JobID)
		assert.Equal(t, tc.want, *req.JobID)
	}
}

func TestJobID_Missing(t *testing.T) {
	var req PreviewRequest
	require.NoError(t, json.Unmarshal([]byte(`{}`), &req))
	assert.Nil(t, req.JobID)
}

func TestMinQualificationAreaResult_FlattensRow(t *testing.T) {
	item := MinQualificationAreaResult{Warning: "schema"}
	item.Area = "Education"
	item.Result = "PASS"

	b, err := json.Marshal(item)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, "Education", out["area"])
	assert.Equal(t, "PASS", out["result"])
	assert.Equal(t, "schema", out["warning"])
	assert.NotContains(t, out, "RawReply")
}
