package llm

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", `{"headline":"Hi","strengths":["calm"],"tone":"warm"}`, false},
		{"optional omitted", `{"headline":"Hi","strengths":["calm"]}`, false},
		{"missing required", `{"headline":"Hi"}`, true},
		{"wrong type", `{"headline":3,"strengths":["calm"]}`, true},
		{"bad enum", `{"headline":"Hi","strengths":["calm"],"tone":"loud"}`, true},
		{"empty array", `{"headline":"Hi","strengths":[]}`, true},
		{"extra field", `{"headline":"Hi","strengths":["calm"],"x":1}`, true},
		{"not json", `headline: Hi`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(readingSchema(), json.RawMessage(tt.raw))
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var inv *ErrInvalidResponse
			require.ErrorAs(t, err, &inv)
			assert.Equal(t, tt.raw, string(inv.Content))
		})
	}
}

func TestValidateResponseNilSchema(t *testing.T) {
	assert.NoError(t, validateResponse(nil, json.RawMessage(`not json`)))
}

func TestFinishPlainTextIsJSONString(t *testing.T) {
	content, err := finish(Request{}, `She said "hi"`, stopEnd)
	require.NoError(t, err)

	var s string
	require.NoError(t, json.Unmarshal(content, &s))
	assert.Equal(t, `She said "hi"`, s)
}

func TestFinishTruncatedStructuredOutput(t *testing.T) {
	_, err := finish(Request{Schema: readingSchema()}, `{"headline":"H`, stopMaxTokens)
	var maxTok *ErrMaxTokensExceeded
	require.ErrorAs(t, err, &maxTok)
	assert.Equal(t, `{"headline":"H`, string(maxTok.Content))
}
