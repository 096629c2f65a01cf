package domain

import (
	"testing"

	xerrors "country-service/pkg/xerrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseField(t *testing.T) {
	for in, want := range map[string]Field{
		"capital":      FieldCapital,
		" Population ": FieldPopulation,
		"NAME":         FieldName,
		"wiki":         FieldWiki,
		"list":         FieldList,
	} {
		got, err := ParseField(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := ParseField("anthem")
	assert.ErrorIs(t, err, xerrors.ErrUnknownField)
}

func TestFieldRoutes(t *testing.T) {
	assert.Equal(t, "/country-capital", FieldCapital.Route())
	assert.Equal(t, "/country-population", FieldPopulation.Route())
	assert.Equal(t, "/country-name", FieldName.Route())
	assert.Equal(t, "/wiki", FieldWiki.Route())
	assert.Equal(t, "/country-list", FieldList.Route())

	assert.Equal(t, "/pop", FieldPopulation.LegacyRoute())
	assert.Equal(t, "/name", FieldName.LegacyRoute())
	assert.Empty(t, FieldCapital.LegacyRoute())
	assert.Empty(t, FieldList.LegacyRoute())
}

func TestCountryValue(t *testing.T) {
	peru := Country{Name: "Peru", Capital: "Lima", Population: 32000000, Wiki: "https://en.wikipedia.org/wiki/Peru"}

	v, err := peru.Value(FieldCapital)
	require.NoError(t, err)
	assert.Equal(t, "Lima", v)

	v, err = peru.Value(FieldPopulation)
	require.NoError(t, err)
	assert.Equal(t, "32000000", v)

	v, err = peru.Value(FieldWiki)
	require.NoError(t, err)
	assert.Equal(t, peru.Wiki, v)

	for _, f := range []Field{FieldName, FieldList} {
		assert.False(t, f.Scalar())
		_, err = peru.Value(f)
		assert.ErrorIs(t, err, xerrors.ErrUnknownField)
	}
}

func TestCountryValidate(t *testing.T) {
	assert.NoError(t, Country{Name: "Tuvalu"}.Validate())
	assert.ErrorIs(t, Country{Name: "  "}.Validate(), xerrors.ErrInvalidRecord)
	assert.ErrorIs(t, Country{Name: "Nowhere", Population: -1}.Validate(), xerrors.ErrInvalidRecord)
}
