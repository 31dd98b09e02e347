package control

import (
	"fmt"
	"math"
	"sync/atomic"
	"time"
)

// MaxSpeed is the default saturation bound used by the anti-windup check
const MaxSpeed = 2.0

// Config holds PID engine parameters
type Config struct {
	Gains Gains `yaml:"gains"`

	// Output magnitude above which integration is frozen (anti-windup only,
	// the engine never clips its output)
	SaturationLimit float64 `yaml:"saturation_limit"`

	// Also treat outputs below -SaturationLimit as saturated
	SymmetricClamp bool `yaml:"symmetric_clamp"`
}

// Option customizes an Engine at construction
type Option func(*Engine)

// WithClock sets the time source used by Update
func WithClock(c Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// Engine is a single-axis PID controller with time-aware integral and
// derivative terms and clamp-gated integration.
//
// Step, Update and Reset must be called from one goroutine. SetGains may be
// called concurrently from any goroutine.
type Engine struct {
	gains atomic.Pointer[Gains]
	clock Clock

	limit     float64
	symmetric bool

	// State
	integral        float64
	derivative      float64
	lastIntegration time.Duration
	lastDerivative  time.Duration
	lastMeasurement float64
	lastOutput      float64
	lastError       float64
	clamp           ClampState
	initialized     bool
}

// NewEngine creates a new PID engine with given configuration
func NewEngine(cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Gains.Validate(); err != nil {
		return nil, err
	}
	limit := cfg.SaturationLimit
	if limit == 0 {
		limit = MaxSpeed
	}
	if limit < 0 || math.IsNaN(limit) {
		return nil, fmt.Errorf("invalid saturation limit %v", cfg.SaturationLimit)
	}

	e := &Engine{
		limit:     limit,
		symmetric: cfg.SymmetricClamp,
	}
	g := cfg.Gains
	e.gains.Store(&g)

	for _, opt := range opts {
		opt(e)
	}
	if e.clock == nil {
		e.clock = NewMonotonicClock()
	}
	return e, nil
}

// SetGains publishes new gains; they take effect on the next Step
func (e *Engine) SetGains(g Gains) error {
	if err := g.Validate(); err != nil {
		return err
	}
	e.gains.Store(&g)
	return nil
}

// Gains returns the gains currently in effect
func (e *Engine) Gains() Gains {
	return *e.gains.Load()
}

// Reset clears accumulated state. Timestamps are re-armed by the next Step.
func (e *Engine) Reset() {
	e.integral = 0
	e.derivative = 0
	e.lastMeasurement = 0
	e.lastOutput = 0
	e.lastError = 0
	e.lastIntegration = 0
	e.lastDerivative = 0
	e.clamp = NoClamp
	e.initialized = false
}

// Update runs Step with the current time of the engine's clock
func (e *Engine) Update(measurement, setpoint float64) (float64, error) {
	return e.Step(measurement, setpoint, e.clock.Now())
}

// Step computes the control output for one sample taken at now.
//
// now must not decrease between calls. A term whose last update happened at
// or after now is not updated and keeps its previous contribution.
func (e *Engine) Step(measurement, setpoint float64, now time.Duration) (float64, error) {
	if !isFinite(measurement) || !isFinite(setpoint) {
		return 0, fmt.Errorf("measurement=%v setpoint=%v: %w", measurement, setpoint, ErrNonFiniteInput)
	}

	g := *e.gains.Load()

	if !e.initialized {
		e.lastIntegration = now
		e.lastDerivative = now
		e.lastMeasurement = measurement
		e.initialized = true
	}

	pvErr := setpoint - measurement

	// Saturation is judged on the previous cycle, before this cycle integrates
	e.clamp = e.checkClamping()

	e.integrate(pvErr, now)
	e.differentiate(measurement, now)

	p := g.Kp * pvErr
	i := g.Ki * e.integral
	d := g.Kd * e.derivative
	output := p + i + d

	e.lastError = pvErr
	e.lastOutput = output

	return output, nil
}

func (e *Engine) integrate(pvErr float64, now time.Duration) {
	dt := now - e.lastIntegration
	if dt <= 0 {
		return
	}
	if e.clamp == NoClamp {
		e.integral += pvErr * dt.Seconds()
	}
	// Time spent frozen is not credited to a later unclamped cycle
	e.lastIntegration = now
}

func (e *Engine) differentiate(measurement float64, now time.Duration) {
	dt := now - e.lastDerivative
	if dt <= 0 {
		return
	}
	// On measurement, so setpoint steps do not kick the output
	e.derivative = (e.lastMeasurement - measurement) / dt.Seconds()
	e.lastDerivative = now
	e.lastMeasurement = measurement
}

// Integral returns the accumulated error·seconds
func (e *Engine) Integral() float64 {
	return e.integral
}

// ClampState returns the clamp classification made by the last Step
func (e *Engine) ClampState() ClampState {
	return e.clamp
}

// Diagnostics returns current PID state for logging/debugging
func (e *Engine) Diagnostics() Diagnostics {
	g := *e.gains.Load()
	return Diagnostics{
		Error:    e.lastError,
		Output:   e.lastOutput,
		Integral: e.integral,
		P:        g.Kp * e.lastError,
		I:        g.Ki * e.integral,
		D:        g.Kd * e.derivative,
		Clamp:    e.clamp,
		Gains:    g,
	}
}

// Diagnostics contains PID internal state for monitoring
type Diagnostics struct {
	Error    float64
	Output   float64
	Integral float64
	P        float64
	I        float64
	D        float64
	Clamp    ClampState
	Gains    Gains
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
