package tlv

import (
	"encoding/binary"
	"math/big"
)

const int128Len = 16

// Int128 is a signed 128-bit integer stored as two's complement halves.
type Int128 struct {
	Hi int64
	Lo uint64
}

func Int128FromInt64(v int64) Int128 {
	var hi int64
	if v < 0 {
		hi = -1
	}
	return Int128{Hi: hi, Lo: uint64(v)}
}

func int128FromBytes(b []byte) Int128 {
	return Int128{
		Hi: int64(binary.BigEndian.Uint64(b[:8])),
		Lo: binary.BigEndian.Uint64(b[8:16]),
	}
}

func (i Int128) putBytes(b []byte) {
	binary.BigEndian.PutUint64(b[:8], uint64(i.Hi))
	binary.BigEndian.PutUint64(b[8:16], i.Lo)
}

// Int64 returns i as an int64. ok is false when i does not fit.
func (i Int128) Int64() (v int64, ok bool) {
	signBit := i.Lo >> 63
	if (i.Hi == 0 && signBit == 0) || (i.Hi == -1 && signBit == 1) {
		return int64(i.Lo), true
	}
	return 0, false
}

func (i Int128) Cmp(other Int128) int {
	switch {
	case i.Hi < other.Hi:
		return -1
	case i.Hi > other.Hi:
		return 1
	case i.Lo < other.Lo:
		return -1
	case i.Lo > other.Lo:
		return 1
	default:
		return 0
	}
}

func (i Int128) Big() *big.Int {
	out := new(big.Int).SetInt64(i.Hi)
	out.Lsh(out, 64)
	return out.Add(out, new(big.Int).SetUint64(i.Lo))
}

func (i Int128) String() string {
	return i.Big().String()
}
