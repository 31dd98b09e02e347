package control

import "fmt"

// Gains holds the PID tuning coefficients
type Gains struct {
	Kp float64 `yaml:"kp"`
	Ki float64 `yaml:"ki"`
	Kd float64 `yaml:"kd"`
}

// Validate rejects negative or non-finite coefficients
func (g Gains) Validate() error {
	for _, c := range []struct {
		name string
		v    float64
	}{{"kp", g.Kp}, {"ki", g.Ki}, {"kd", g.Kd}} {
		if !isFinite(c.v) || c.v < 0 {
			return fmt.Errorf("%s=%v: %w", c.name, c.v, ErrInvalidGains)
		}
	}
	return nil
}

// GainsFromVector3 maps a tuning vector to gains: x→kp, y→ki, z→kd
func GainsFromVector3(v Vector3) Gains {
	return Gains{Kp: v.X, Ki: v.Y, Kd: v.Z}
}

func (g Gains) String() string {
	return fmt.Sprintf("Kp=%.4g Ki=%.4g Kd=%.4g", g.Kp, g.Ki, g.Kd)
}

