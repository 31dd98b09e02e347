package utils

// Little-endian (Intel) bit layout: bit 0 is the LSB of byte 0.

func fieldMask(bitLen int) uint64 {
	if bitLen >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << bitLen) - 1
}

func extractBits(payload uint64, startBit, bitLen int) uint64 {
	if bitLen <= 0 || bitLen > 64 {
		return 0
	}
	return (payload >> startBit) & fieldMask(bitLen)
}

func insertBits(payload uint64, startBit, bitLen int, value uint64) uint64 {
	if bitLen <= 0 || bitLen > 64 {
		return payload
	}
	m := fieldMask(bitLen)
	return payload&^(m<<startBit) | (value&m)<<startBit
}

// signExtend interprets the low bitLen bits of u as two's complement
func signExtend(u uint64, bitLen int) int64 {
	if bitLen >= 64 {
		return int64(u)
	}
	shift := 64 - bitLen
	return int64(u<<shift) >> shift
}

func truncateRaw(raw int64, bitLen int) uint64 {
	return uint64(raw) & fieldMask(bitLen)
}

// rawRange is the representable raw range of a signal
func rawRange(bitLen int, signed bool) (lo, hi int64) {
	if bitLen >= 63 {
		if signed {
			return -1 << 62, 1<<62 - 1
		}
		return 0, 1<<62 - 1
	}
	if signed {
		return -(int64(1) << (bitLen - 1)), int64(1)<<(bitLen-1) - 1
	}
	return 0, int64(1)<<bitLen - 1
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
