package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "ruth cohen", NormalizeName("  Ruth COHEN "))
	assert.Equal(t, "", NormalizeName("   "))
}

func TestSplitNames(t *testing.T) {
	names := SplitNames("Ruth Cohen,  ABRAHAM Levi , ,")
	assert.Equal(t, []string{"ruth cohen", "abraham levi"}, names)

	assert.Nil(t, SplitNames(""))
}

func TestLocationAddress(t *testing.T) {
	loc := Location{Street: "3995 Aurora Ave", City: "Boulder", State: "CO", Zip: "80303"}
	assert.Equal(t, "3995 Aurora Ave, Boulder, CO 80303", loc.Address())

	assert.Equal(t, "Boulder", Location{City: "Boulder"}.Address())
	assert.Equal(t, "", Location{}.Address())
}

func TestArchiveKey(t *testing.T) {
	assert.Equal(t, "E1|S1|V1", ArchiveKey("E1", "S1", "V1"))
}

func TestShiftKeyIgnoresSurrogateFields(t *testing.T) {
	a := Shift{ID: "a", Row: 2, DeceasedName: "Ruth", LocationName: "Crist", StartEpoch: 1, EndEpoch: 2, PersonalInfo: "x"}
	b := Shift{ID: "b", Row: 9, DeceasedName: "Ruth", LocationName: "Crist", StartEpoch: 1, EndEpoch: 2, PersonalInfo: "y"}
	assert.Equal(t, a.Key(), b.Key())
}

func TestSkipString(t *testing.T) {
	assert.Equal(t, "E1: unknown event", Skip{Record: "E1", Reason: SkipUnknownEvent}.String())
	assert.Equal(t, "E1: malformed date/time (bad start)", Skip{Record: "E1", Reason: SkipMalformedTime, Detail: "bad start"}.String())
}
