package selection_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/tacsym/selection"
	"github.com/c360studio/tacsym/symbology"
)

func defaultCatalog(t *testing.T) *symbology.Catalog {
	t.Helper()
	catalog, err := symbology.Default()
	require.NoError(t, err)
	return catalog
}

func TestEncode_EmptySelectionUsesDefaults(t *testing.T) {
	code := selection.Selection{}.Encode()
	assert.Equal(t, "SUZ---------", code)
	assert.Len(t, code, selection.CodeLength)
}

func TestEncode_AlwaysTwelveCharacters(t *testing.T) {
	catalog := defaultCatalog(t)
	sess := selection.NewSession(catalog)

	require.NoError(t, sess.Apply(selection.FieldScheme, "S"))
	require.NoError(t, sess.Apply(selection.FieldAffiliation, "H"))
	require.NoError(t, sess.Apply(selection.FieldStatus, "P"))
	require.NoError(t, sess.Apply(selection.FieldDimension, "Ground Units"))
	require.NoError(t, sess.Apply(selection.FieldFunction, "UCI---"))
	require.NoError(t, sess.Apply(selection.FieldModifier1, "B"))
	require.NoError(t, sess.Apply(selection.FieldModifier2, "A"))

	assert.Equal(t, "SHGPUCI---BA", sess.Encode())
}

func TestDecode_LengthValidation(t *testing.T) {
	sess := selection.NewSession(defaultCatalog(t))

	for _, code := range []string{"", "SUZ", "SUZ--------", "SUZ----------"} {
		err := sess.Decode(code)
		assert.ErrorIs(t, err, selection.ErrCodeLength, "code %q", code)
	}
}

func TestDecode_WellFormedCode(t *testing.T) {
	sess, err := selection.NewSessionFromCode(defaultCatalog(t), "SHGPUCI---BA")
	require.NoError(t, err)

	sel := sess.Selection()
	require.NotNil(t, sel.Scheme)
	assert.Equal(t, "Warfighting", sel.Scheme.Label)
	assert.Equal(t, "H", sel.Affiliation)
	assert.Equal(t, "P", sel.Status)
	require.NotNil(t, sel.Dimension)
	assert.Equal(t, "Ground Units", sel.Dimension.Name)
	require.NotNil(t, sel.Function)
	assert.Equal(t, "UCI---", sel.Function.Code)
	assert.Equal(t, "Infantry", sel.Function.Name())
	assert.Equal(t, "B", sel.Modifier1)
	assert.Equal(t, "A", sel.Modifier2)
}

func TestDecode_UnknownSegmentsLeftUnset(t *testing.T) {
	catalog := defaultCatalog(t)

	t.Run("unknown scheme clears everything catalog-derived", func(t *testing.T) {
		sess, err := selection.NewSessionFromCode(catalog, "QHGPUCI---BA")
		require.NoError(t, err)

		sel := sess.Selection()
		assert.Nil(t, sel.Scheme)
		assert.Nil(t, sel.Dimension)
		assert.Nil(t, sel.Function)
		assert.Empty(t, sel.Modifier1)
		assert.Empty(t, sel.Modifier2)
		// Affiliation and status are catalog-independent.
		assert.Equal(t, "H", sel.Affiliation)
		assert.Equal(t, "P", sel.Status)
	})

	t.Run("unknown function leaves dimension and function unset", func(t *testing.T) {
		sess, err := selection.NewSessionFromCode(catalog, "SHGPQQQQQQ--")
		require.NoError(t, err)

		sel := sess.Selection()
		require.NotNil(t, sel.Scheme)
		assert.Equal(t, "Warfighting", sel.Scheme.Label)
		assert.Nil(t, sel.Dimension)
		assert.Nil(t, sel.Function)
		assert.Equal(t, "H", sel.Affiliation)
		assert.Equal(t, "P", sel.Status)
	})

	t.Run("unknown affiliation and status stay unset", func(t *testing.T) {
		sess, err := selection.NewSessionFromCode(catalog, "S1G2UCI-----")
		require.NoError(t, err)

		sel := sess.Selection()
		assert.Empty(t, sel.Affiliation)
		assert.Empty(t, sel.Status)
		require.NotNil(t, sel.Function)
	})
}

func TestDecode_SyntheticMobilityModifiers(t *testing.T) {
	// EVAT-- lives in Ground Equipment; M selects the mobility vocabulary
	// and Q (tracked) is only valid inside it.
	sess, err := selection.NewSessionFromCode(defaultCatalog(t), "SHGPEVAT--MQ")
	require.NoError(t, err)

	sel := sess.Selection()
	require.NotNil(t, sel.Dimension)
	assert.Equal(t, "Ground Equipment", sel.Dimension.Name)
	assert.Equal(t, "M", sel.Modifier1)
	assert.Equal(t, "Q", sel.Modifier2)
}

func TestDecode_ModifierOutsideOptionsLeftUnset(t *testing.T) {
	// Q is not in the Ground Units modifier-1 vocabulary.
	sess, err := selection.NewSessionFromCode(defaultCatalog(t), "SHGPUCI---Q-")
	require.NoError(t, err)
	assert.Empty(t, sess.Selection().Modifier1)
}

// Round-trip: every function in the catalog survives encode/decode with its
// scheme, battle dimension, and function intact.
func TestRoundTrip_EveryCatalogFunction(t *testing.T) {
	catalog := defaultCatalog(t)

	for _, scheme := range catalog.Schemes() {
		for _, dim := range scheme.NamedDimensions() {
			for _, fn := range dim.Functions {
				sess := selection.NewSession(catalog)
				require.NoError(t, sess.Apply(selection.FieldScheme, scheme.Code))
				require.NoError(t, sess.Apply(selection.FieldDimension, dim.Name))
				require.NoError(t, sess.Apply(selection.FieldFunction, fn.Code))

				code := sess.Encode()
				require.Len(t, code, selection.CodeLength)

				decoded := selection.NewSession(catalog)
				require.NoError(t, decoded.Decode(code))

				sel := decoded.Selection()
				require.NotNil(t, sel.Scheme, "code %s", code)
				assert.Equal(t, scheme.Code, sel.Scheme.Code)
				require.NotNil(t, sel.Function, "code %s", code)
				assert.Equal(t, fn.Code, sel.Function.Code)
				assert.Equal(t, fn.BattleDimension, sel.Function.BattleDimension)
			}
		}
	}
}

// Idempotence: encoding a decoded well-formed code reproduces it exactly.
func TestEncodeDecode_Idempotent(t *testing.T) {
	catalog := defaultCatalog(t)

	codes := []string{
		"SHGPUCI---BA",
		"SFGPEVAT--MQ",
		"SFGPEVAT--NL",
		"ENI-B-------",
		"SUZ---------",
		"EPOAAB----EU",
	}
	for _, code := range codes {
		sess, err := selection.NewSessionFromCode(catalog, code)
		require.NoError(t, err, "code %s", code)
		assert.Equal(t, code, sess.Encode(), "code %s", code)
	}
}
