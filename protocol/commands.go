package protocol

import "fmt"

// ampWireConstants are the per-model bytes the device expects alongside the
// model code. Their meaning is undocumented.
type ampWireConstants struct {
	b40 byte // also written at 43
	b46 byte // also written at 50
	b54 byte
}

var ampConstants = map[AmpModel]ampWireConstants{
	Fender57Deluxe:       {0x80, 0x01, 0x53},
	Fender59Bassman:      {0x80, 0x02, 0x67},
	Fender57Champ:        {0x80, 0x0C, 0x00},
	Fender65DeluxeReverb: {0x00, 0x03, 0x6A},
	Fender65Princeton:    {0x80, 0x04, 0x61},
	Fender65TwinReverb:   {0x80, 0x05, 0x72},
	FenderSuperSonic:     {0x80, 0x06, 0x79},
	British60s:           {0x80, 0x07, 0x5E},
	British70s:           {0x80, 0x0B, 0x7C},
	British80s:           {0x80, 0x09, 0x5D},
	American90s:          {0x80, 0x0A, 0x6D},
	Metal2000:            {0x80, 0x08, 0x75},
}

// InitCommand builds the initialization command sent once after claiming the
// interface.
//
// Packet structure:
//
//	[0xFF][0xC1][0x00 ...]
func InitCommand() Packet {
	var p Packet
	p[0] = InitByte0
	p[1] = InitByte1
	return p
}

// DirectoryCommand builds the request for the preset name directory. The
// device answers with SlotCount name packets in slot order.
//
// Packet structure:
//
//	[0x1A][0x03][0x00 ...]
func DirectoryCommand() Packet {
	var p Packet
	p[0] = DirectoryByte0
	p[1] = DirectoryByte1
	return p
}

// ApplyCommand builds the command that makes previously sent data packets
// take effect.
//
// Packet structure:
//
//	[0x1C][0x03][0x00 ...]
func ApplyCommand() Packet {
	var p Packet
	p[OffsetStage] = StageData
	p[OffsetType] = TypeApply
	return p
}

// LoadSlotCommand builds the command that recalls a preset from device memory.
// The device answers with the preset's name, amp, effect and USB gain packets.
//
// Packet structure:
//
//	[0x1C][0x01][0x01][..][SLOT][..][0x01][0x00 ...]
func LoadSlotCommand(slot PresetSlot) Packet {
	var p Packet
	p[OffsetStage] = StageData
	p[OffsetType] = TypeMemory
	p[OffsetDSP] = MemoryLoad
	p[OffsetSlot] = byte(slot)
	p[6] = 0x01
	return p
}

// SaveSlotCommand builds the command that stores the current settings in
// device memory under name. Names longer than NameSize bytes are truncated.
//
// Packet structure:
//
//	[0x1C][0x01][0x03][..][SLOT][..][0x01][0x01]...[NAME(32) @16]
func SaveSlotCommand(slot PresetSlot, name string) Packet {
	var p Packet
	p[OffsetStage] = StageData
	p[OffsetType] = TypeMemory
	p[OffsetDSP] = MemorySave
	p[OffsetSlot] = byte(slot)
	p[6] = 0x01
	p[7] = 0x01
	p.putName(name)
	return p
}

// EncodeAmp builds the amplifier data packet.
//
// Packet structure:
//
//	[0x1C][0x03][DSP=0x05]...[MODEL @16]...[VOL][GAIN][GAIN2][MASTER][TREBLE][MIDDLE][BASS][PRESENCE @32-39]
//	[DEPTH @41][BIAS @42][GATE @47][THRESHOLD @48][CABINET @49][SAG @51][BRIGHT @52]
func EncodeAmp(s AmpSettings) (Packet, error) {
	var p Packet

	model, err := AmpModels.ByValue(s.Model)
	if err != nil {
		return p, err
	}
	cabinet, err := Cabinets.ByValue(s.Cabinet)
	if err != nil {
		return p, err
	}

	p.putHeader(DSPAmp)
	p[OffsetCode] = PackDiscrete(model)

	p.putContinuous(OffsetVolume, s.Volume)
	p.putContinuous(OffsetGain, s.Gain)
	p.putContinuous(OffsetGain2, s.Gain2)
	p.putContinuous(OffsetMasterVolume, s.MasterVolume)
	p.putContinuous(OffsetTreble, s.Treble)
	p.putContinuous(OffsetMiddle, s.Middle)
	p.putContinuous(OffsetBass, s.Bass)
	p.putContinuous(OffsetPresence, s.Presence)
	p.putContinuous(OffsetDepth, s.Depth)
	p.putContinuous(OffsetBias, s.Bias)

	p[OffsetNoiseGate] = PackDiscrete(s.NoiseGate)
	p[OffsetThreshold] = PackDiscrete(s.Threshold)
	p[OffsetCabinet] = PackDiscrete(cabinet)
	p[OffsetSag] = PackDiscrete(s.Sag)
	p[OffsetBrightness] = packBool(s.Brightness)

	c := ampConstants[s.Model]
	p[40], p[43] = c.b40, c.b40
	p[46], p[50] = c.b46, c.b46
	p[54] = c.b54

	return p, nil
}

// EncodeUSBGain builds the packet carrying the USB input gain.
//
// Packet structure:
//
//	[0x1C][0x03][DSP=0x0D]...[GAIN @16]
func EncodeUSBGain(s AmpSettings) Packet {
	var p Packet
	p.putHeader(DSPUSBGain)
	p[OffsetCode] = s.USBGain
	return p
}

// EncodeEffect builds the data packet for a single effect. An empty effect
// carries no processor selector; use EncodeEffects to clear a category.
//
// Packet structure:
//
//	[0x1C][0x03][DSP]...[EFFECT @16][..][POSITION @18]...[KNOB1-6 @32-37]
func EncodeEffect(fx EffectSettings) (Packet, error) {
	code, err := Effects.ByValue(fx.Type)
	if err != nil {
		return Packet{}, err
	}

	var p Packet
	cat := fx.Type.Category()
	dsp := byte(0)
	if cat != CategoryNone {
		dsp = cat.DSP()
	}
	p.putHeader(dsp)
	p[OffsetCode] = PackDiscrete(code)
	p[OffsetPosition] = PackDiscrete(encodePosition(fx.Slot))

	if fx.Type != EffectEmpty {
		for i, v := range fx.Knobs {
			p.putContinuous(OffsetKnob1+i, v)
		}
	}
	return p, nil
}

// EncodeEffects builds one packet per effect category in chain order. A
// category without an effect gets an explicit empty block at its default
// position. Two effects of the same category are rejected.
func EncodeEffects(effects []EffectSettings) ([CategoryCount]Packet, error) {
	var out [CategoryCount]Packet
	var placed [CategoryCount]*EffectSettings

	for i := range effects {
		fx := &effects[i]
		if fx.Type == EffectEmpty {
			continue
		}
		cat := fx.Type.Category()
		if cat == CategoryNone {
			return out, &ValidationError{Field: "effect", Value: int(fx.Type), Reason: "no effect category"}
		}
		if placed[cat] != nil {
			return out, &ValidationError{
				Field:  "effect",
				Value:  int(fx.Type),
				Reason: fmt.Sprintf("%s category already holds %s", cat, placed[cat].Type),
			}
		}
		placed[cat] = fx
	}

	for _, cat := range Categories {
		if placed[cat] == nil {
			out[cat] = emptyEffect(cat)
			continue
		}
		p, err := EncodeEffect(*placed[cat])
		if err != nil {
			return out, err
		}
		out[cat] = p
	}
	return out, nil
}

// emptyEffect clears a category: code 0x00, no knobs, default position.
func emptyEffect(cat Category) Packet {
	var p Packet
	p.putHeader(cat.DSP())
	p[OffsetCode] = 0x00
	p[OffsetPosition] = byte(cat.DefaultPosition())
	return p
}

// encodePosition returns the wire position of a chain slot: its offset within
// the chain half, plus FxLoopOffset inside the effects loop.
func encodePosition(s SlotID) byte {
	pos := s.Offset()
	if s.IsFxLoop() {
		pos += FxLoopOffset
	}
	return byte(pos)
}
