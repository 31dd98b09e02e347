package utils

import (
	"context"
	"sort"

	"go.einride.tech/can"
)

// Frame directions as written in the map's direction column, seen from the controller
const (
	DirectionTX = "TX"
	DirectionRX = "RX"
)

type SignalDef struct {
	Name       string
	StartBit   int
	BitLength  int
	Signed     bool
	Factor     float64
	Offset     float64
	Min        float64
	Max        float64
	Default    float64
	Unit       string
	Comment    string
	Endianness string // only "little" supported
}

type FrameDef struct {
	ID        uint32
	Name      string
	DLC       int
	Direction string
	CycleMS   int
	Signals   []SignalDef
}

// HasSignal reports whether the frame carries a signal with the given name
func (fd *FrameDef) HasSignal(name string) bool {
	for _, s := range fd.Signals {
		if s.Name == name {
			return true
		}
	}
	return false
}

type CANMap struct {
	ByID   map[uint32]*FrameDef
	ByName map[string]*FrameDef
}

func (m *CANMap) FrameNames() []string {
	out := make([]string, 0, len(m.ByName))
	for k := range m.ByName {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// CANReader delivers received frames one at a time
type CANReader interface {
	ReadFrame(ctx context.Context) (can.Frame, error)
	Close() error
}

// CANWriter transmits frames
type CANWriter interface {
	WriteFrame(ctx context.Context, frame can.Frame) error
	Close() error
}
