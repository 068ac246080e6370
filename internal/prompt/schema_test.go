package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateMinQualificationReply(t *testing.T) {
	assert.NoError(t, ValidateMinQualificationReply(`{"result":"PASS","justification":"ok","evidence_found":"BSc"}`))
	assert.Error(t, ValidateMinQualificationReply(`{"result":"MAYBE","justification":"ok","evidence_found":"BSc"}`))
	assert.Error(t, ValidateMinQualificationReply(`{"result":"PASS"}`))
	assert.Error(t, ValidateMinQualificationReply(`not json`))
}

func TestValidateFormalReply(t *testing.T) {
	assert.NoError(t, ValidateFormalReply(`{"raw_score":7.5,"evidence":"e","justification":"j"}`))
	assert.Error(t, ValidateFormalReply(`{"raw_score":"7.5","evidence":"e","justification":"j"}`))
	assert.Error(t, ValidateFormalReply(`{"evidence":"e","justification":"j"}`))
}
