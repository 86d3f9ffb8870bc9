package protocol

// DecodeAmp parses an amplifier data packet. Unknown model or cabinet codes
// are rejected with a ValidationError. USBGain is not part of this packet;
// see DecodeUSBGain.
func DecodeAmp(p Packet) (AmpSettings, error) {
	model, err := AmpModels.ByCode(p[OffsetCode])
	if err != nil {
		return AmpSettings{}, err
	}
	cabinet, err := Cabinets.ByCode(p[OffsetCabinet])
	if err != nil {
		return AmpSettings{}, err
	}

	s := AmpSettings{
		Model:   model,
		Cabinet: cabinet,

		Volume:       p.continuous(OffsetVolume),
		Gain:         p.continuous(OffsetGain),
		Gain2:        p.continuous(OffsetGain2),
		MasterVolume: p.continuous(OffsetMasterVolume),
		Treble:       p.continuous(OffsetTreble),
		Middle:       p.continuous(OffsetMiddle),
		Bass:         p.continuous(OffsetBass),
		Presence:     p.continuous(OffsetPresence),
		Depth:        p.continuous(OffsetDepth),
		Bias:         p.continuous(OffsetBias),

		NoiseGate:  p[OffsetNoiseGate],
		Threshold:  p[OffsetThreshold],
		Sag:        p[OffsetSag],
		Brightness: p[OffsetBrightness] != 0,
	}
	return s, nil
}

// DecodeEffect parses an effect data packet. Unknown effect codes and chain
// positions above 7 are rejected with a ValidationError. An empty effect
// always decodes with zero knobs.
func DecodeEffect(p Packet) (EffectSettings, error) {
	t, err := Effects.ByCode(p[OffsetCode])
	if err != nil {
		return EffectSettings{}, err
	}
	slot, err := NewSlotID(int(p[OffsetPosition]))
	if err != nil {
		return EffectSettings{}, err
	}

	fx := EffectSettings{Type: t, Slot: slot}
	if t != EffectEmpty {
		for i := range fx.Knobs {
			fx.Knobs[i] = p.continuous(OffsetKnob1 + i)
		}
	}
	return fx, nil
}

// DecodeUSBGain returns the gain carried by a USB gain packet.
func DecodeUSBGain(p Packet) uint8 {
	return p[OffsetCode]
}

// DecodeName returns the NUL-terminated preset name of a name packet.
func DecodeName(p Packet) string {
	return p.name()
}

// DecodePreset assembles a preset from the packets the device returns for a
// load command: name, amp, the four effect categories, USB gain. Empty effect
// blocks are dropped from Preset.Effects.
func DecodePreset(slot PresetSlot, packets []Packet) (*Preset, error) {
	if len(packets) < LoadResponsePackets {
		return nil, &ValidationError{
			Field:  "preset packet count",
			Value:  len(packets),
			Reason: "need name, amp, 4 effects and USB gain",
		}
	}

	amp, err := DecodeAmp(packets[1])
	if err != nil {
		return nil, err
	}
	amp.USBGain = DecodeUSBGain(packets[6])

	preset := &Preset{
		Slot: slot,
		Name: DecodeName(packets[0]),
		Amp:  amp,
	}
	for _, p := range packets[2:6] {
		fx, err := DecodeEffect(p)
		if err != nil {
			return nil, err
		}
		if fx.Type != EffectEmpty {
			preset.Effects = append(preset.Effects, fx)
		}
	}
	return preset, nil
}
