package utils

import (
	"encoding/binary"
	"fmt"
	"math"

	"go.einride.tech/can"
)

// EncodeFrame packs physical values into a frame. Signals missing from values
// take their default; every value is limited to the signal's min/max and to
// its raw bit range.
func (m *CANMap) EncodeFrame(frameName string, values map[string]float64) (can.Frame, error) {
	fd, err := m.FrameByName(frameName)
	if err != nil {
		return can.Frame{}, err
	}

	var payload uint64
	for _, s := range fd.Signals {
		v, ok := values[s.Name]
		if !ok {
			v = s.Default
		}
		if math.IsNaN(v) {
			return can.Frame{}, fmt.Errorf("frame %s signal %s: NaN value", fd.Name, s.Name)
		}
		v = clampFloat(v, s.Min, s.Max)

		raw := int64(math.Round((v - s.Offset) / s.Factor))
		lo, hi := rawRange(s.BitLength, s.Signed)
		if raw < lo {
			raw = lo
		} else if raw > hi {
			raw = hi
		}
		payload = insertBits(payload, s.StartBit, s.BitLength, truncateRaw(raw, s.BitLength))
	}

	f := can.Frame{
		ID:     fd.ID,
		Length: uint8(fd.DLC),
	}
	binary.LittleEndian.PutUint64(f.Data[:], payload)
	return f, nil
}

// DecodeFrame converts a received frame into physical signal values keyed by name
func (m *CANMap) DecodeFrame(frame can.Frame) (*FrameDef, map[string]float64, error) {
	fd, err := m.FrameByID(frame.ID)
	if err != nil {
		return nil, nil, err
	}
	if int(frame.Length) < fd.DLC {
		return nil, nil, fmt.Errorf("frame 0x%X expects DLC %d, got %d", frame.ID, fd.DLC, frame.Length)
	}

	var buf [8]byte
	copy(buf[:fd.DLC], frame.Data[:fd.DLC])
	payload := binary.LittleEndian.Uint64(buf[:])

	out := make(map[string]float64, len(fd.Signals))
	for _, s := range fd.Signals {
		u := extractBits(payload, s.StartBit, s.BitLength)
		var raw float64
		if s.Signed {
			raw = float64(signExtend(u, s.BitLength))
		} else {
			raw = float64(u)
		}
		out[s.Name] = raw*s.Factor + s.Offset
	}
	return fd, out, nil
}
