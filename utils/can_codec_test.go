package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.einride.tech/can"
)

func loadShippedMap(t *testing.T) *CANMap {
	t.Helper()
	m, err := LoadCANMap("../config/can/can_map.csv")
	require.NoError(t, err)
	return m
}

func TestEncodeDecode_CommandFrame(t *testing.T) {
	m := loadShippedMap(t)

	f, err := m.EncodeFrame("AXIS_CMD", map[string]float64{
		"axis_cmd":       -1.25,
		"integral":       3.5,
		"clamp_active":   1,
		"session_active": 1,
	})
	require.NoError(t, err)
	assert.Equal(t, uint32(0x200), f.ID)
	assert.Equal(t, uint8(8), f.Length)

	// -1250 as int16 little-endian
	assert.Equal(t, byte(0x1E), f.Data[0])
	assert.Equal(t, byte(0xFB), f.Data[1])

	fd, got, err := m.DecodeFrame(f)
	require.NoError(t, err)
	assert.Equal(t, "AXIS_CMD", fd.Name)
	assert.InDelta(t, -1.25, got["axis_cmd"], 1e-9)
	assert.InDelta(t, 3.5, got["integral"], 1e-9)
	assert.Equal(t, 1.0, got["clamp_active"])
	assert.Equal(t, 1.0, got["session_active"])
}

func TestEncodeFrame_LimitsAndDefaults(t *testing.T) {
	src := mapHeader +
		"TX,0x1,F,10,2,s,0,8,little,true,1,0,-200,200,0,,\n" +
		"TX,0x1,F,10,2,u,8,8,little,false,0.5,0,0,10,7,,\n"
	m, err := ParseCANMap(strings.NewReader(src))
	require.NoError(t, err)

	f, err := m.EncodeFrame("F", map[string]float64{"s": -150})
	require.NoError(t, err)
	_, got, err := m.DecodeFrame(f)
	require.NoError(t, err)
	// -150 fits min/max but not int8
	assert.Equal(t, -128.0, got["s"])
	// default applied
	assert.Equal(t, 7.0, got["u"])

	f, err = m.EncodeFrame("F", map[string]float64{"s": 1, "u": 99})
	require.NoError(t, err)
	_, got, err = m.DecodeFrame(f)
	require.NoError(t, err)
	assert.Equal(t, 10.0, got["u"])
}

func TestDecodeFrame_Errors(t *testing.T) {
	m := loadShippedMap(t)

	_, _, err := m.DecodeFrame(can.Frame{ID: 0x7FF, Length: 8})
	assert.ErrorContains(t, err, "unknown frame id")

	_, _, err = m.DecodeFrame(can.Frame{ID: 0x300, Length: 2})
	assert.ErrorContains(t, err, "expects DLC")

	_, err = m.EncodeFrame("NOPE", nil)
	assert.ErrorContains(t, err, "unknown frame")
}

func TestBits(t *testing.T) {
	p := insertBits(0, 4, 8, 0xAB)
	assert.Equal(t, uint64(0xAB0), p)
	assert.Equal(t, uint64(0xAB), extractBits(p, 4, 8))

	p = insertBits(p, 4, 8, 0x1FF)
	assert.Equal(t, uint64(0xFF0), p)

	assert.Equal(t, int64(-1), signExtend(0xF, 4))
	assert.Equal(t, int64(7), signExtend(0x7, 4))
	assert.Equal(t, uint64(0xE), truncateRaw(-2, 4))

	lo, hi := rawRange(16, true)
	assert.Equal(t, int64(-32768), lo)
	assert.Equal(t, int64(32767), hi)
	lo, hi = rawRange(1, false)
	assert.Equal(t, int64(0), lo)
	assert.Equal(t, int64(1), hi)
}
