package bolt

import (
	"encoding/binary"
	"math"
)

// Small big-endian helpers shared by Value's scalar (de)serialization and
// the PackStream codec. All on-wire integers are big-endian; nothing here
// depends on host byte order.

func beUint16(x uint16) []byte {
	b := make([]byte, 2)
	binary.BigEndian.PutUint16(b, x)
	return b
}

func beUint32(x uint32) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, x)
	return b
}

func beUint64(x uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, x)
	return b
}

func beGetUint16(b []byte) uint16 { return binary.BigEndian.Uint16(b) }
func beGetUint32(b []byte) uint32 { return binary.BigEndian.Uint32(b) }
func beGetUint64(b []byte) uint64 { return binary.BigEndian.Uint64(b) }

func float32bits(f float32) uint32     { return math.Float32bits(f) }
func float32frombits(b uint32) float32 { return math.Float32frombits(b) }
func float64bits(f float64) uint64     { return math.Float64bits(f) }
func float64frombits(b uint64) float64 { return math.Float64frombits(b) }
