package store

import (
	"encoding/binary"
	"encoding/json"
	"math"
	"time"
)

func mustMarshalJSON(in interface{}) []byte {
	out, err := json.Marshal(in)
	if err != nil {
		panic(err)
	}
	return out
}

func unmarshalJSON(data []byte, in interface{}) error {
	return json.Unmarshal(data, in)
}

func encodeTime(t time.Time) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, uint64(t.UnixNano()))
	return buf
}

func mustDecodeTime(buf []byte) time.Time {
	if buf == nil {
		return time.Time{}
	}
	out := binary.BigEndian.Uint64(buf)
	if out > math.MaxInt64 {
		panic("overflow")
	}
	return time.Unix(0, int64(out))
}
