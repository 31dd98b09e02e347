package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mapHeader = "direction,frame_id,frame_name,cycle_ms,dlc,signal_name,start_bit,bit_length,endianness,signed,factor,offset,min,max,default,unit,comment\n"

func TestLoadCANMap_ShippedMap(t *testing.T) {
	m, err := LoadCANMap("../config/can/can_map.csv")
	require.NoError(t, err)

	cmd, err := m.FrameByName("AXIS_CMD")
	require.NoError(t, err)
	assert.Equal(t, uint32(0x200), cmd.ID)
	assert.Equal(t, DirectionTX, cmd.Direction)
	assert.Equal(t, 10, cmd.CycleMS)
	assert.True(t, cmd.HasSignal("axis_cmd"))

	gains, err := m.FrameByID(0x320)
	require.NoError(t, err)
	assert.Equal(t, "PID_GAINS", gains.Name)
	require.Len(t, gains.Signals, 3)
	assert.Equal(t, []string{"kp", "ki", "kd"},
		[]string{gains.Signals[0].Name, gains.Signals[1].Name, gains.Signals[2].Name})
}

func TestParseCANMap_SortsSignalsByStartBit(t *testing.T) {
	src := mapHeader +
		"RX,0x10,F,10,2,b,8,8,little,false,1,0,0,255,0,,\n" +
		"RX,0x10,F,10,2,a,0,8,little,false,1,0,0,255,0,,\n"
	m, err := ParseCANMap(strings.NewReader(src))
	require.NoError(t, err)
	fd := m.ByName["F"]
	require.NotNil(t, fd)
	assert.Equal(t, "a", fd.Signals[0].Name)
	assert.Equal(t, "b", fd.Signals[1].Name)
	assert.Equal(t, []string{"F"}, m.FrameNames())
}

func TestParseCANMap_Errors(t *testing.T) {
	tests := []struct {
		name string
		rows string
		want string
	}{
		{"bad id", "RX,zz,F,10,8,a,0,8,little,false,1,0,0,1,0,,\n", "invalid frame_id"},
		{"bad direction", "UP,0x1,F,10,8,a,0,8,little,false,1,0,0,1,0,,\n", "direction"},
		{"big endian", "RX,0x1,F,10,8,a,0,8,big,false,1,0,0,1,0,,\n", "endianness"},
		{"bad dlc", "RX,0x1,F,10,9,a,0,8,little,false,1,0,0,1,0,,\n", "invalid dlc"},
		{"past dlc", "RX,0x1,F,10,1,a,4,8,little,false,1,0,0,1,0,,\n", "exceed dlc"},
		{"zero factor", "RX,0x1,F,10,8,a,0,8,little,false,0,0,0,1,0,,\n", "factor"},
		{"bad float", "RX,0x1,F,10,8,a,0,8,little,false,x,0,0,1,0,,\n", "invalid factor"},
		{"dup signal", "RX,0x1,F,10,8,a,0,8,little,false,1,0,0,1,0,,\nRX,0x1,F,10,8,a,8,8,little,false,1,0,0,1,0,,\n", "duplicate signal"},
		{"dlc mismatch", "RX,0x1,F,10,8,a,0,8,little,false,1,0,0,1,0,,\nRX,0x1,F,10,4,b,8,8,little,false,1,0,0,1,0,,\n", "inconsistent DLC"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCANMap(strings.NewReader(mapHeader + tt.rows))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	_, err := ParseCANMap(strings.NewReader("direction,frame_id\n"))
	assert.ErrorContains(t, err, "missing required column")
}
