package contracts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSampleSpecifier(t *testing.T) {
	tests := []struct {
		input    string
		wantKind SampleKind
		wantStr  string
		wantKey  string
	}{
		{"listed_companies", SampleListedCompanies, "listed_companies", "listed_companies"},
		{"empresas_listadas", SampleListedCompanies, "listed_companies", "listed_companies"},
		{"index:IDIV", SampleIndex, "index:IDIV", "index_IDIV"},
		{"index:smll", SampleIndex, "index:SMLL", "index_SMLL"},
		{"indice:IFIX", SampleIndex, "index:IFIX", "index_IFIX"},
		{"  INDEX:IBOV ", SampleIndex, "index:IBOV", "index_IBOV"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			spec, err := ParseSampleSpecifier(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, spec.Kind())
			assert.Equal(t, tt.wantStr, spec.String())
			assert.Equal(t, tt.wantKey, spec.FileKey())
			assert.NoError(t, spec.Validate())
		})
	}
}

func TestParseSampleSpecifierInvalid(t *testing.T) {
	for _, input := range []string{"foo", "", "index:", "index:ID-IV", "indice", "listed"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseSampleSpecifier(input)
			assert.ErrorIs(t, err, ErrInvalidSpecifier)
		})
	}
}

func TestZeroSpecifierIsInvalid(t *testing.T) {
	var spec SampleSpecifier
	assert.ErrorIs(t, spec.Validate(), ErrInvalidSpecifier)
	assert.Equal(t, "", spec.String())
}

func TestIndexCode(t *testing.T) {
	spec, err := Index("idiv")
	require.NoError(t, err)
	assert.Equal(t, "IDIV", spec.IndexCode())
	assert.Equal(t, "", ListedCompanies().IndexCode())
}
