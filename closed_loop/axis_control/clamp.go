package control

// ClampState classifies whether the previous output drove the axis into saturation
type ClampState int

const (
	NoClamp ClampState = iota
	Clamp
)

func (c ClampState) String() string {
	switch c {
	case NoClamp:
		return "NO_CLAMP"
	case Clamp:
		return "CLAMP"
	default:
		return "UNKNOWN"
	}
}

// checkClamping reports Clamp when the previous output exceeded the limit and
// the previous error pushed in the same direction.
func (e *Engine) checkClamping() ClampState {
	if e.lastError == 0 || e.lastOutput == 0 {
		return NoClamp
	}
	sameSign := e.lastError/e.lastOutput > 0
	if !sameSign {
		return NoClamp
	}
	if e.lastOutput > e.limit {
		return Clamp
	}
	if e.symmetric && e.lastOutput < -e.limit {
		return Clamp
	}
	return NoClamp
}
