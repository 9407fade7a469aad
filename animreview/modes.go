package animreview

import "fmt"

// Mode names an analysis profile. The set is closed; unknown identifiers are
// rejected before any network call.
type Mode string

const (
	// ModeCheck answers "does it work?" — a basic functionality sanity check.
	ModeCheck Mode = "check"
	// ModeReview answers "how does it feel?" — design quality and polish.
	ModeReview Mode = "review"
	// ModeDiagnose answers "what's going wrong?" — frame-level bug analysis.
	ModeDiagnose Mode = "diagnose"
	// ModeInspire answers "what's happening here?" — decompose a reference effect.
	ModeInspire Mode = "inspire"
)

// ModelTier selects which class of remote model a mode uses.
type ModelTier string

const (
	TierFast    ModelTier = "fast"
	TierPrecise ModelTier = "precise"
)

// OutputShape is the form a result takes: parsed fields or free text.
type OutputShape string

const (
	ShapeStructured OutputShape = "structured"
	ShapeRaw        OutputShape = "raw"
)

// MaxFPS caps frame-rate overrides. Remote video understanding does not
// sample finer than this.
const MaxFPS = 24

// ModeProfile is the immutable per-mode configuration. Frame rate, model tier
// and default output shape live here and nowhere else.
type ModeProfile struct {
	Mode         Mode
	FPS          int
	Tier         ModelTier
	DefaultShape OutputShape
}

var modeProfiles = map[Mode]ModeProfile{
	ModeCheck:    {Mode: ModeCheck, FPS: 5, Tier: TierFast, DefaultShape: ShapeStructured},
	ModeReview:   {Mode: ModeReview, FPS: 12, Tier: TierFast, DefaultShape: ShapeStructured},
	ModeDiagnose: {Mode: ModeDiagnose, FPS: 24, Tier: TierPrecise, DefaultShape: ShapeRaw},
	ModeInspire:  {Mode: ModeInspire, FPS: 24, Tier: TierPrecise, DefaultShape: ShapeRaw},
}

// LookupMode returns the profile for the given mode, or ErrUnknownMode.
func LookupMode(mode Mode) (ModeProfile, error) {
	p, ok := modeProfiles[mode]
	if !ok {
		return ModeProfile{}, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
	return p, nil
}

// Modes lists the known mode identifiers in a stable order.
func Modes() []Mode {
	return []Mode{ModeCheck, ModeReview, ModeDiagnose, ModeInspire}
}
