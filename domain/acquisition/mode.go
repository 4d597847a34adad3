package acquisition

// Mode enumerates the mutually exclusive editing modes. Exactly one is active;
// it decides what a canvas click does and which commands are enabled.
type Mode int

const (
	ModeDefiningOrigin Mode = iota
	ModeDefiningScale
	ModeAcquiring
	ModeViewing
)

func (m Mode) String() string {
	switch m {
	case ModeDefiningOrigin:
		return "defining-origin"
	case ModeDefiningScale:
		return "defining-scale"
	case ModeAcquiring:
		return "acquiring"
	case ModeViewing:
		return "viewing"
	default:
		return "unknown"
	}
}

// showsPoints reports whether recorded points are drawn over frames.
func (m Mode) showsPoints() bool { return m == ModeViewing || m == ModeAcquiring }
