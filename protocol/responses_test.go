package protocol

import (
	"testing"
)

func TestDecodeAmpRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		s    AmpSettings
	}{
		{
			name: "every field set",
			s:    testAmpSettings(),
		},
		{
			name: "deluxe reverb cabinet off",
			s: AmpSettings{
				Model: Fender65DeluxeReverb, Cabinet: CabinetOff,
				Gain: 1, Volume: 2, Treble: 3, Middle: 4, Bass: 5, MasterVolume: 6,
				Gain2: 7, Presence: 8, Depth: 9, Bias: 10, NoiseGate: 1, Threshold: 9, Sag: 1,
			},
		},
		{
			name: "metal maxed",
			s: AmpSettings{
				Model: Metal2000, Cabinet: CabinetSS112,
				Gain: 255, Volume: 255, Treble: 255, Middle: 255, Bass: 255, MasterVolume: 255,
				Gain2: 255, Presence: 255, Depth: 255, Bias: 255, NoiseGate: 5, Threshold: 9, Sag: 2,
				Brightness: true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := EncodeAmp(tt.s)
			if err != nil {
				t.Fatalf("encode: %v", err)
			}
			got, err := DecodeAmp(p)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			got.USBGain = DecodeUSBGain(EncodeUSBGain(tt.s))
			if got != tt.s {
				t.Errorf("round trip mismatch:\n got  %+v\n want %+v", got, tt.s)
			}
		})
	}
}

func TestDecodeAmpInvalid(t *testing.T) {
	valid, err := EncodeAmp(testAmpSettings())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	tests := []struct {
		name   string
		offset int
		value  byte
	}{
		{"amp code 0x00", OffsetCode, 0x00},
		{"amp code 0xFF", OffsetCode, 0xFF},
		{"cabinet code 0xFF", OffsetCabinet, 0xFF},
		{"cabinet code 0x0D", OffsetCabinet, 0x0D},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			p[tt.offset] = tt.value
			_, err := DecodeAmp(p)
			if !IsValidationError(err) {
				t.Errorf("error = %v, want ValidationError", err)
			}
		})
	}
}

func TestDecodeEffectRoundTrip(t *testing.T) {
	for e := Overdrive; e <= Fender65SpringReverb; e++ {
		fx := mustEffect(t, e, int(e)%ChainSlots, 10, 20, 30, 40, 50, uint8(e))
		p, err := EncodeEffect(fx)
		if err != nil {
			t.Fatalf("encode %s: %v", e, err)
		}
		got, err := DecodeEffect(p)
		if err != nil {
			t.Fatalf("decode %s: %v", e, err)
		}
		if got != fx {
			t.Errorf("%s round trip: got %+v, want %+v", e, got, fx)
		}
	}
}

func TestDecodeEffectInvalid(t *testing.T) {
	p, err := EncodeEffect(mustEffect(t, Overdrive, 0))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	bad := p
	bad[OffsetCode] = 0xFF
	if _, err := DecodeEffect(bad); !IsValidationError(err) {
		t.Errorf("effect 0xFF: error = %v, want ValidationError", err)
	}

	bad = p
	bad[OffsetPosition] = 8
	if _, err := DecodeEffect(bad); !IsValidationError(err) {
		t.Errorf("position 8: error = %v, want ValidationError", err)
	}
}

func TestDecodeEmptyEffect(t *testing.T) {
	blocks, err := EncodeEffects(nil)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	p := blocks[CategoryReverb]
	p[OffsetKnob1] = 0x55

	fx, err := DecodeEffect(p)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if fx.Type != EffectEmpty {
		t.Errorf("type = %s, want Empty", fx.Type)
	}
	if fx.Knobs != [KnobCount]uint8{} {
		t.Errorf("knobs = %v, want zero", fx.Knobs)
	}
	if fx.Slot.ID() != 3 {
		t.Errorf("slot = %d, want 3", fx.Slot.ID())
	}
}

func TestDecodePreset(t *testing.T) {
	amp := testAmpSettings()
	ampPacket, err := EncodeAmp(amp)
	if err != nil {
		t.Fatalf("encode amp: %v", err)
	}
	blocks, err := EncodeEffects([]EffectSettings{
		mustEffect(t, Overdrive, 0, 1, 2, 3, 4, 5, 6),
		mustEffect(t, LargeHallReverb, 7, 6, 5, 4, 3, 2, 1),
	})
	if err != nil {
		t.Fatalf("encode effects: %v", err)
	}

	var name Packet
	name.putName("Brown Sound")

	packets := []Packet{name, ampPacket, blocks[0], blocks[1], blocks[2], blocks[3], EncodeUSBGain(amp)}
	preset, err := DecodePreset(42, packets)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if preset.Slot != 42 || preset.Name != "Brown Sound" {
		t.Errorf("slot/name = %d %q", preset.Slot, preset.Name)
	}
	if preset.Amp != amp {
		t.Errorf("amp = %+v, want %+v", preset.Amp, amp)
	}
	if len(preset.Effects) != 2 {
		t.Fatalf("got %d effects, want 2", len(preset.Effects))
	}
	if preset.Effects[0].Type != Overdrive || preset.Effects[1].Type != LargeHallReverb {
		t.Errorf("effects = %s, %s", preset.Effects[0].Type, preset.Effects[1].Type)
	}
	if !preset.Effects[1].PostAmp() {
		t.Error("reverb in slot 7 should be post-amp")
	}
}

func TestDecodePresetShort(t *testing.T) {
	_, err := DecodePreset(0, make([]Packet, 3))
	if !IsValidationError(err) {
		t.Errorf("error = %v, want ValidationError", err)
	}
}

func TestPacketFrom(t *testing.T) {
	if _, err := PacketFrom(make([]byte, 63)); err == nil {
		t.Error("63 bytes: expected error")
	}
	buf := make([]byte, PacketSize)
	buf[5] = 9
	p, err := PacketFrom(buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p[5] != 9 {
		t.Errorf("p[5] = %d, want 9", p[5])
	}
}

func TestDecodeContinuousFields(t *testing.T) {
	valid, err := EncodeAmp(testAmpSettings())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	p := valid
	p[OffsetGain] = 0x00
	p[OffsetTreble] = 0xFF
	p[OffsetBias] = 0x7F
	got, err := DecodeAmp(p)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Gain != 0x00 || got.Treble != 0xFF || got.Bias != 0x7F {
		t.Errorf("gain/treble/bias = 0x%02X/0x%02X/0x%02X, want 0x00/0xFF/0x7F", got.Gain, got.Treble, got.Bias)
	}

	fx, err := EncodeEffect(mustEffect(t, Phaser, 1, 1, 2, 3, 4, 5, 6))
	if err != nil {
		t.Fatalf("encode effect: %v", err)
	}
	fx[OffsetKnob6] = 0xC8
	decoded, err := DecodeEffect(fx)
	if err != nil {
		t.Fatalf("decode effect: %v", err)
	}
	if decoded.Knobs[5] != 0xC8 {
		t.Errorf("knob 6 = 0x%02X, want 0xC8", decoded.Knobs[5])
	}
}
