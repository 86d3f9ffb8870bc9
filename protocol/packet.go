package protocol

import (
	"bytes"
	"fmt"
)

// Packet is a single 64-byte transfer unit.
type Packet [PacketSize]byte

// Bytes returns the packet as a slice backed by p.
func (p *Packet) Bytes() []byte {
	return p[:]
}

// PacketFrom copies a received buffer into a Packet.
func PacketFrom(buf []byte) (Packet, error) {
	var p Packet
	if len(buf) != PacketSize {
		return p, fmt.Errorf("packet must be exactly %d bytes, got %d", PacketSize, len(buf))
	}
	copy(p[:], buf)
	return p, nil
}

// PackContinuous returns the wire word for a continuous control: the value
// is transmitted duplicated in both bytes.
func PackContinuous(v uint8) uint16 {
	return uint16(v)<<8 | uint16(v)
}

// UnpackContinuous inverts PackContinuous.
func UnpackContinuous(w uint16) (uint8, error) {
	hi, lo := uint8(w>>8), uint8(w)
	if hi != lo {
		return 0, &ValidationError{
			Field:  "continuous word",
			Value:  int(w),
			Reason: "high and low bytes differ",
		}
	}
	return hi, nil
}

// PackDiscrete returns the wire byte for a selector control.
func PackDiscrete(v uint8) byte {
	return v
}

// packBool packs a flag as 1 or 0.
func packBool(v bool) byte {
	if v {
		return 1
	}
	return 0
}

// putContinuous writes the packed word of v at a single-byte field offset.
// The low byte duplicates the high byte, so the high byte carries the value.
func (p *Packet) putContinuous(offset int, v uint8) {
	p[offset] = byte(PackContinuous(v) >> 8)
}

// continuous reads a single-byte continuous field. Only the high byte of the
// packed word is on the wire and it equals the value.
func (p *Packet) continuous(offset int) uint8 {
	return p[offset]
}

func (p *Packet) putHeader(dsp byte) {
	p[OffsetStage] = StageData
	p[OffsetType] = TypeApply
	p[OffsetDSP] = dsp
	p[6] = 0x01
	p[7] = 0x01
}

// putName writes name into the fixed name buffer, truncating at NameSize.
func (p *Packet) putName(name string) {
	n := copy(p[OffsetCode:OffsetCode+NameSize], name)
	for i := OffsetCode + n; i < OffsetCode+NameSize; i++ {
		p[i] = 0
	}
}

// name reads the fixed name buffer up to the first NUL.
func (p *Packet) name() string {
	buf := p[OffsetCode : OffsetCode+NameSize]
	if i := bytes.IndexByte(buf, 0); i >= 0 {
		buf = buf[:i]
	}
	return string(buf)
}
