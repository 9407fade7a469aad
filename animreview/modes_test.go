package animreview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupMode_Table(t *testing.T) {
	tests := []struct {
		mode  Mode
		fps   int
		tier  ModelTier
		shape OutputShape
	}{
		{ModeCheck, 5, TierFast, ShapeStructured},
		{ModeReview, 12, TierFast, ShapeStructured},
		{ModeDiagnose, 24, TierPrecise, ShapeRaw},
		{ModeInspire, 24, TierPrecise, ShapeRaw},
	}
	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			p, err := LookupMode(tt.mode)
			require.NoError(t, err)
			assert.Equal(t, tt.fps, p.FPS)
			assert.Equal(t, tt.tier, p.Tier)
			assert.Equal(t, tt.shape, p.DefaultShape)
			assert.Equal(t, tt.mode, p.Mode)
		})
	}
}

func TestLookupMode_Unknown(t *testing.T) {
	for _, mode := range []Mode{"", "CHECK", "profile", "review "} {
		_, err := LookupMode(mode)
		assert.ErrorIs(t, err, ErrUnknownMode, "mode %q", mode)
	}
}

func TestModes_CoversProfileTable(t *testing.T) {
	assert.Len(t, Modes(), len(modeProfiles))
	for _, m := range Modes() {
		_, ok := modeProfiles[m]
		assert.True(t, ok, "mode %q missing from profile table", m)
	}
}
