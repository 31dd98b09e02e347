package control

import (
	"fmt"
	"strings"
)

// Vector3 is a plain three-component vector (linear/angular rates, tuning triples)
type Vector3 struct {
	X, Y, Z float64
}

// Point is a position in metres
type Point struct {
	X, Y, Z float64
}

// Pose2D is a planar target: position plus heading (rad)
type Pose2D struct {
	X, Y, Theta float64
}

// AxisRot is an orientation already converted to Euler angles (rad)
type AxisRot struct {
	Yaw, Pitch, Roll float64
}

// Odometry is the measured state of the vehicle
type Odometry struct {
	Position    Point
	Orientation AxisRot
	Linear      Vector3
	Angular     Vector3
}

// Axis selects which odometry component is controlled and which target field feeds it
type Axis int

const (
	AxisYaw Axis = iota
	AxisPitch
	AxisRoll
	AxisX
	AxisY
	AxisZ
	AxisVX
	AxisVY
	AxisVZ
	AxisWZ
)

var axisNames = map[Axis]string{
	AxisYaw:   "yaw",
	AxisPitch: "pitch",
	AxisRoll:  "roll",
	AxisX:     "x",
	AxisY:     "y",
	AxisZ:     "z",
	AxisVX:    "vx",
	AxisVY:    "vy",
	AxisVZ:    "vz",
	AxisWZ:    "wz",
}

func (a Axis) String() string {
	if n, ok := axisNames[a]; ok {
		return n
	}
	return fmt.Sprintf("Axis(%d)", int(a))
}

// ParseAxis converts a config name (case-insensitive) to an Axis
func ParseAxis(s string) (Axis, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for a, n := range axisNames {
		if n == name {
			return a, nil
		}
	}
	return 0, fmt.Errorf("unknown axis %q", s)
}

// Measurement extracts the controlled value from odometry
func (a Axis) Measurement(o Odometry) float64 {
	switch a {
	case AxisYaw:
		return o.Orientation.Yaw
	case AxisPitch:
		return o.Orientation.Pitch
	case AxisRoll:
		return o.Orientation.Roll
	case AxisX:
		return o.Position.X
	case AxisY:
		return o.Position.Y
	case AxisZ:
		return o.Position.Z
	case AxisVX:
		return o.Linear.X
	case AxisVY:
		return o.Linear.Y
	case AxisVZ:
		return o.Linear.Z
	case AxisWZ:
		return o.Angular.Z
	}
	return 0
}

// Setpoint extracts the target for this axis from a planar pose.
// Yaw follows Theta; x and y follow the position. Axes the pose cannot
// describe are regulated to zero.
func (a Axis) Setpoint(p Pose2D) float64 {
	switch a {
	case AxisYaw:
		return p.Theta
	case AxisX:
		return p.X
	case AxisY:
		return p.Y
	}
	return 0
}
