package fields

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListUnmarshalCSV(t *testing.T) {
	var l List
	require.NoError(t, json.Unmarshal([]byte(`"a, b ,  b"`), &l))
	assert.Equal(t, List{"a", "b"}, l)
}

func TestListUnmarshalArray(t *testing.T) {
	var l List
	require.NoError(t, json.Unmarshal([]byte(`[" React ", "Go", "React", ""]`), &l))
	assert.Equal(t, List{"React", "Go"}, l)
}

func TestListUnmarshalRejectsOtherTypes(t *testing.T) {
	var l List
	assert.Error(t, json.Unmarshal([]byte(`42`), &l))
}

func TestListMarshalNilAsEmptyArray(t *testing.T) {
	out, err := json.Marshal(List(nil))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(out))
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"dedup preserves order", []string{"b", "a", "b"}, []string{"b", "a"}},
		{"trims and drops empties", []string{" x ", "", "  "}, []string{"x"}},
		{"empty input", nil, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestFirstNonEmpty(t *testing.T) {
	assert.Equal(t, "b", FirstNonEmpty("", "  ", "b", "c"))
	assert.Equal(t, "", FirstNonEmpty("", " "))
}
