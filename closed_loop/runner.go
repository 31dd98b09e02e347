package main

import (
	"context"
	"fmt"
	"time"

	"go.einride.tech/can"

	control "axis-pid-core/closed_loop/axis_control"
	"axis-pid-core/utils"
)

type RunnerConfig struct {
	Interface  string
	MapPath    string
	ConfigPath string
}

type Runner struct {
	cfg    RunnerConfig
	log    *utils.Logger
	cmap   *utils.CANMap
	sess   SessionConfig
	axis   control.Axis
	writer utils.CANWriter
	reader utils.CANReader
	fd     *utils.FrameDef
	pid    *control.Engine

	// Owned by the control goroutine
	odom        control.Odometry
	target      control.Pose2D
	haveMeas    bool
	haveTarget  bool
	enabled     bool
	lastMeasAt  time.Time
	staleWarned bool
	sent        uint64
}

func NewRunner(ctx context.Context, cfg RunnerConfig, log *utils.Logger) (*Runner, error) {
	cmap, err := utils.LoadCANMap(cfg.MapPath)
	if err != nil {
		return nil, fmt.Errorf("load can map: %w", err)
	}

	sess, err := LoadConfig(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load session config: %w", err)
	}

	writer, err := utils.NewSocketCANWriter(ctx, cfg.Interface)
	if err != nil {
		return nil, err
	}

	reader, err := utils.NewSocketCANReader(ctx, cfg.Interface)
	if err != nil {
		writer.Close()
		return nil, err
	}

	r, err := newRunner(cfg, log, cmap, sess, reader, writer, control.NewMonotonicClock())
	if err != nil {
		reader.Close()
		writer.Close()
		return nil, err
	}
	return r, nil
}

func newRunner(cfg RunnerConfig, log *utils.Logger, cmap *utils.CANMap, sess SessionConfig,
	reader utils.CANReader, writer utils.CANWriter, clock control.Clock) (*Runner, error) {
	fd, err := cmap.FrameByName(sess.CommandFrame)
	if err != nil {
		return nil, fmt.Errorf("frame: %w", err)
	}
	if fd.Direction != utils.DirectionTX {
		return nil, fmt.Errorf("command frame %s is not a TX frame", fd.Name)
	}
	if fd.CycleMS <= 0 {
		return nil, fmt.Errorf("frame %s has invalid cycle_ms %d", fd.Name, fd.CycleMS)
	}

	axis, err := control.ParseAxis(sess.Axis)
	if err != nil {
		return nil, err
	}

	pid, err := control.NewEngine(sess.Control, control.WithClock(clock))
	if err != nil {
		return nil, fmt.Errorf("pid: %w", err)
	}
	log.Info("PID engine initialized: session=%s axis=%s %s saturation=%.2f symmetric=%v",
		sess.Name, axis, sess.Control.Gains, sess.Control.SaturationLimit, sess.Control.SymmetricClamp)

	return &Runner{
		cfg:     cfg,
		log:     log,
		cmap:    cmap,
		sess:    sess,
		axis:    axis,
		writer:  writer,
		reader:  reader,
		fd:      fd,
		pid:     pid,
		enabled: !sess.RequireEnable,
	}, nil
}

func (r *Runner) Close() {
	if r.reader != nil {
		_ = r.reader.Close()
	}
	if r.writer != nil {
		_ = r.writer.Close()
	}
}

// feedback is one decoded RX frame handed to the control goroutine
type feedback struct {
	frame   string
	signals map[string]float64
	at      time.Time
}

func (r *Runner) Run(ctx context.Context) error {
	r.log.Info("Starting TX: frame=%s id=0x%X dlc=%d cycle_ms=%d iface=%s axis=%s require_enable=%v",
		r.fd.Name, r.fd.ID, r.fd.DLC, r.fd.CycleMS, r.cfg.Interface, r.axis, r.sess.RequireEnable)

	ticker := time.NewTicker(time.Duration(r.fd.CycleMS) * time.Millisecond)
	defer ticker.Stop()

	rxCtx, cancelRx := context.WithCancel(ctx)
	defer cancelRx()
	rxChan := make(chan feedback, 100)
	go r.receiveLoop(rxCtx, rxChan)

	for {
		select {
		case <-ctx.Done():
			r.log.Warn("Context canceled; stopping TX")
			r.log.Info("Completed TX. frames_sent=%d", r.sent)
			return ctx.Err()

		case fb := <-rxChan:
			r.applyFeedback(fb)

		case now := <-ticker.C:
			if err := r.transmit(ctx, now); err != nil {
				return err
			}
		}
	}
}

// applyFeedback folds one RX frame into the runner state
func (r *Runner) applyFeedback(fb feedback) {
	mergeOdometry(&r.odom, fb.signals)
	if _, ok := fb.signals[axisSignal[r.axis]]; ok {
		r.haveMeas = true
		r.lastMeasAt = fb.at
		if r.staleWarned {
			r.log.Info("Feedback resumed on %s", fb.frame)
			r.staleWarned = false
		}
	}
	if p, ok := pose2DFromSignals(fb.signals); ok {
		r.target = p
		r.haveTarget = true
	}
	if v, ok := fb.signals[sigEnable]; ok {
		r.setEnabled(v >= 0.5)
	}
}

// setEnabled re-arms the engine on a rising edge so no integral carries over
// from a previous session
func (r *Runner) setEnabled(on bool) {
	if on == r.enabled {
		return
	}
	r.enabled = on
	if on {
		r.pid.Reset()
		r.log.Info("Session enabled; PID state reset")
	} else {
		r.log.Info("Session disabled")
	}
}

// command computes the values for one TX frame
func (r *Runner) command(now time.Time) map[string]float64 {
	idle := map[string]float64{
		sigAxisCmd:       0,
		sigIntegral:      r.pid.Integral(),
		sigClampActive:   0,
		sigSessionActive: 0,
	}
	if !r.enabled || !r.haveMeas || !r.haveTarget {
		return idle
	}

	timeout := time.Duration(r.sess.FeedbackTimeoutMS) * time.Millisecond
	if age := now.Sub(r.lastMeasAt); age > timeout && !r.staleWarned {
		r.log.Warn("No %s feedback for %.1f ms - PID may be unreliable", r.axis, age.Seconds()*1000)
		r.staleWarned = true
	}

	meas := r.axis.Measurement(r.odom)
	sp := r.axis.Setpoint(r.target)
	out, err := r.pid.Update(meas, sp)
	if err != nil {
		r.log.Error("PID step rejected: %v", err)
		return idle
	}

	if lim := r.sess.OutputLimit; lim > 0 {
		out = control.ClampFloat(out, -lim, lim)
	}

	return map[string]float64{
		sigAxisCmd:       out,
		sigIntegral:      r.pid.Integral(),
		sigClampActive:   control.BoolToFloat(r.pid.ClampState() == control.Clamp),
		sigSessionActive: 1,
	}
}

func (r *Runner) transmit(ctx context.Context, now time.Time) error {
	values := r.command(now)

	frame, err := r.cmap.EncodeFrame(r.fd.Name, values)
	if err != nil {
		r.log.Error("Encode failed: %v", err)
		return err
	}

	if err := r.writer.WriteFrame(ctx, frame); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		r.log.Critical("Transmit failed: %v", err)
		return err
	}

	r.sent++
	if r.sess.DiagEvery > 0 && r.sent%uint64(r.sess.DiagEvery) == 0 {
		d := r.pid.Diagnostics()
		r.log.Debug("PID: axis=%s err=%.4f out=%.4f P=%.4f I=%.4f D=%.4f integral=%.4f clamp=%s",
			r.axis, d.Error, d.Output, d.P, d.I, d.D, d.Integral, d.Clamp)
	}
	r.log.Trace("TX id=0x%X len=%d data=% X cmd=%.4f",
		frame.ID, frame.Length, frame.Data[:frame.Length], values[sigAxisCmd])
	return nil
}

// receiveLoop decodes RX frames. Gains are published to the engine from here;
// everything else is forwarded to the control goroutine.
func (r *Runner) receiveLoop(ctx context.Context, out chan<- feedback) {
	r.log.Debug("RX loop started")
	defer r.log.Debug("RX loop stopped")

	for {
		frame, err := r.reader.ReadFrame(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			r.log.Error("RX error: %v", err)
			// back off so a dead socket does not spin
			select {
			case <-ctx.Done():
				return
			case <-time.After(100 * time.Millisecond):
			}
			continue
		}
		r.handleFrame(ctx, frame, out)
	}
}

func (r *Runner) handleFrame(ctx context.Context, frame can.Frame, out chan<- feedback) {
	fd, signals, err := r.cmap.DecodeFrame(frame)
	if err != nil {
		r.log.Trace("RX ignored id=0x%X: %v", frame.ID, err)
		return
	}
	if fd.Direction != utils.DirectionRX {
		return
	}
	r.log.Trace("RX %s id=0x%X data=% X", fd.Name, frame.ID, frame.Data[:frame.Length])

	if v, ok := gainsVectorFromSignals(signals); ok {
		g := control.GainsFromVector3(v)
		prev := r.pid.Gains()
		if err := r.pid.SetGains(g); err != nil {
			r.log.Warn("Rejected gains from %s: %v", fd.Name, err)
		} else if g != prev {
			r.log.Info("Gains updated: %s", g)
		}
	}

	select {
	case out <- feedback{frame: fd.Name, signals: signals, at: time.Now()}:
	case <-ctx.Done():
	}
}
