package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func headerTerms() []Term {
	return DefaultTermSet().Headers
}

func TestLocateHeaderAllFieldsPresent(t *testing.T) {
	blocks := []Block{
		Table{Rows: [][2]string{
			{"PROVINCE", "Western Cape"},
			{"DISTRICT", "West Coast"},
			{"SCHOOL", "Test High"},
			{"SUBJECT", "Physics"},
		}},
	}

	fields, err := LocateHeader(blocks, headerTerms())
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"PROVINCE": "Western Cape",
		"DISTRICT": "West Coast",
		"SCHOOL":   "Test High",
		"SUBJECT":  "Physics",
	}, fields)
}

func TestLocateHeaderNormalizedSpellings(t *testing.T) {
	blocks := []Block{
		Table{Rows: [][2]string{
			{"Province :", "Eastern Cape"},
			{"District:", "Sarah Baartman"},
			{"DISTRICT/REGION", "ignored, first district wins"},
			{"school", "Test Primary"},
			{"SUBJECT :", "Mathematics"},
		}},
	}

	fields, err := LocateHeader(blocks, headerTerms())
	require.NoError(t, err)
	assert.Equal(t, "Eastern Cape", fields["PROVINCE"])
	assert.Equal(t, "Sarah Baartman", fields["DISTRICT"])
	assert.Equal(t, "Test Primary", fields["SCHOOL"])
	assert.Equal(t, "Mathematics", fields["SUBJECT"])
}

func TestLocateHeaderDistrictRegionVariant(t *testing.T) {
	blocks := []Block{
		Table{Rows: [][2]string{
			{"PROVINCE", "Gauteng"},
			{"DISTRICT/REGION", "Tshwane South"},
		}},
	}

	fields, err := LocateHeader(blocks, headerTerms())
	require.NoError(t, err)
	assert.Equal(t, "Tshwane South", fields["DISTRICT"])
}

func TestLocateHeaderMissingLabelsAreEmpty(t *testing.T) {
	blocks := []Block{
		Table{Rows: [][2]string{
			{"PROVINCE", "Limpopo"},
			{"DISTRICT", "Vhembe"},
		}},
	}

	fields, err := LocateHeader(blocks, headerTerms())
	require.NoError(t, err)
	assert.Equal(t, "Limpopo", fields["PROVINCE"])
	assert.Equal(t, "Vhembe", fields["DISTRICT"])
	assert.Equal(t, "", fields["SCHOOL"])
	assert.Equal(t, "", fields["SUBJECT"])
	assert.Len(t, fields, 4)
}

func TestLocateHeaderNotFound(t *testing.T) {
	blocks := []Block{
		Paragraph{Text: "Some narrative text"},
		Table{Rows: [][2]string{{"unrelated", "content"}}},
	}

	_, err := LocateHeader(blocks, headerTerms())
	assert.ErrorIs(t, err, ErrHeaderNotFound)
}

func TestLocateHeaderNoBlocks(t *testing.T) {
	_, err := LocateHeader(nil, headerTerms())
	assert.ErrorIs(t, err, ErrHeaderNotFound)
}

func TestLocateHeaderFirstTableWins(t *testing.T) {
	blocks := []Block{
		Table{Rows: [][2]string{
			{"PROVINCE", "First"},
		}},
		Table{Rows: [][2]string{
			{"PROVINCE", "Second"},
			{"DISTRICT", "Also ignored"},
		}},
	}

	fields, err := LocateHeader(blocks, headerTerms())
	require.NoError(t, err)
	assert.Equal(t, "First", fields["PROVINCE"])
	assert.Equal(t, "", fields["DISTRICT"])
}

func TestLocateHeaderExactPassBeatsEarlierLooseTable(t *testing.T) {
	// A table that only matches after normalization must lose to a
	// later table with a cleanly spelled header.
	blocks := []Block{
		Table{Rows: [][2]string{
			{"province :", "Loose"},
		}},
		Table{Rows: [][2]string{
			{"PROVINCE", "Clean"},
		}},
	}

	fields, err := LocateHeader(blocks, headerTerms())
	require.NoError(t, err)
	assert.Equal(t, "Clean", fields["PROVINCE"])
}

func TestLocateHeaderLabelAtEndOfTable(t *testing.T) {
	// A label in the table's final cell has no following value cell.
	blocks := []Block{
		Table{Rows: [][2]string{
			{"PROVINCE", "KwaZulu-Natal"},
			{"filler", "DISTRICT"},
		}},
	}

	fields, err := LocateHeader(blocks, headerTerms())
	require.NoError(t, err)
	assert.Equal(t, "KwaZulu-Natal", fields["PROVINCE"])
	assert.Equal(t, "", fields["DISTRICT"])
}

func TestLocateHeaderDoesNotMutateBlocks(t *testing.T) {
	table := Table{Rows: [][2]string{{"Province:", "Free State"}}}
	blocks := []Block{table}

	_, err := LocateHeader(blocks, headerTerms())
	require.NoError(t, err)
	assert.Equal(t, [][2]string{{"Province:", "Free State"}}, table.Rows)
}
