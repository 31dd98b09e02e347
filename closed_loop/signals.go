package main

import control "axis-pid-core/closed_loop/axis_control"

// Signal names the runner understands, as they appear in the CAN map
const (
	sigPosX = "pos_x"
	sigPosY = "pos_y"
	sigPosZ = "pos_z"
	sigVelX = "vel_x"
	sigVelY = "vel_y"
	sigVelZ = "vel_z"
	sigAngX = "ang_x"
	sigAngY = "ang_y"
	sigAngZ = "ang_z"

	sigYaw   = "yaw"
	sigPitch = "pitch"
	sigRoll  = "roll"

	sigTargetX     = "target_x"
	sigTargetY     = "target_y"
	sigTargetTheta = "target_theta"

	sigKp = "kp"
	sigKi = "ki"
	sigKd = "kd"

	sigEnable = "enable"

	sigAxisCmd       = "axis_cmd"
	sigIntegral      = "integral"
	sigClampActive   = "clamp_active"
	sigSessionActive = "session_active"
)

// axisSignal is the signal that carries each axis's measurement
var axisSignal = map[control.Axis]string{
	control.AxisYaw:   sigYaw,
	control.AxisPitch: sigPitch,
	control.AxisRoll:  sigRoll,
	control.AxisX:     sigPosX,
	control.AxisY:     sigPosY,
	control.AxisZ:     sigPosZ,
	control.AxisVX:    sigVelX,
	control.AxisVY:    sigVelY,
	control.AxisVZ:    sigVelZ,
	control.AxisWZ:    sigAngZ,
}

// mergeOdometry overwrites the odometry fields present in sig and reports
// whether any were present
func mergeOdometry(o *control.Odometry, sig map[string]float64) bool {
	fields := map[string]*float64{
		sigPosX:  &o.Position.X,
		sigPosY:  &o.Position.Y,
		sigPosZ:  &o.Position.Z,
		sigVelX:  &o.Linear.X,
		sigVelY:  &o.Linear.Y,
		sigVelZ:  &o.Linear.Z,
		sigAngX:  &o.Angular.X,
		sigAngY:  &o.Angular.Y,
		sigAngZ:  &o.Angular.Z,
		sigYaw:   &o.Orientation.Yaw,
		sigPitch: &o.Orientation.Pitch,
		sigRoll:  &o.Orientation.Roll,
	}
	found := false
	for name, dst := range fields {
		if v, ok := sig[name]; ok {
			*dst = v
			found = true
		}
	}
	return found
}

// pose2DFromSignals extracts a target pose; all three fields must be present
func pose2DFromSignals(sig map[string]float64) (control.Pose2D, bool) {
	x, okX := sig[sigTargetX]
	y, okY := sig[sigTargetY]
	th, okT := sig[sigTargetTheta]
	if !okX || !okY || !okT {
		return control.Pose2D{}, false
	}
	return control.Pose2D{X: x, Y: y, Theta: th}, true
}

// gainsVectorFromSignals extracts the (kp, ki, kd) tuning vector
func gainsVectorFromSignals(sig map[string]float64) (control.Vector3, bool) {
	kp, okP := sig[sigKp]
	ki, okI := sig[sigKi]
	kd, okD := sig[sigKd]
	if !okP || !okI || !okD {
		return control.Vector3{}, false
	}
	return control.Vector3{X: kp, Y: ki, Z: kd}, true
}
