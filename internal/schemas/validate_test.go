package schemas

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-studio/internal/types"
)

func TestDiagnoseResume_CanonicalDocument(t *testing.T) {
	raw, err := json.Marshal(types.DefaultResume())
	require.NoError(t, err)

	assert.Nil(t, DiagnoseResume(raw), "the default resume must conform to its own schema")
}

func TestDiagnoseResume_TolerantShapes(t *testing.T) {
	// Shapes the normalizer accepts must not raise schema diagnostics.
	tests := []struct {
		name string
		doc  string
	}{
		{"location as string", `{"basics": {"location": "Berlin, Germany"}}`},
		{"socials as keyed object", `{"basics": {"socials": {"github": "https://github.com/x"}}}`},
		{"numeric score", `{"sections": [{"type": "education", "items": [{"score": 3.9}]}]}`},
		{"empty document", `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, DiagnoseResume([]byte(tt.doc)))
		})
	}
}

func TestDiagnoseResume_Mismatches(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"numeric fullName", `{"basics": {"fullName": 42}}`},
		{"unknown section type", `{"sections": [{"type": "hobbies"}]}`},
		{"visible as string", `{"sections": [{"type": "skills", "visible": "yes"}]}`},
		{"bad pageSize", `{"metadata": {"pageSize": "A5"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags := DiagnoseResume([]byte(tt.doc))
			require.NotEmpty(t, diags)
			assert.NotEmpty(t, diags[0].Field)
			assert.NotEmpty(t, diags[0].Message)
		})
	}
}

func TestDiagnoseResume_UnloadableDocument(t *testing.T) {
	diags := DiagnoseResume([]byte("{ broken"))

	require.Len(t, diags, 1)
	assert.Equal(t, "(document)", diags[0].Field)
}

func TestWarningStrings(t *testing.T) {
	assert.Nil(t, WarningStrings(nil))

	warnings := WarningStrings([]FieldError{{Field: "basics.email", Message: "bad"}})
	require.Len(t, warnings, 1)
	assert.Equal(t, "basics.email: bad", warnings[0])
}
