package protocol

import "fmt"

// AmpSettings holds the amplifier section of a preset.
type AmpSettings struct {
	Model   AmpModel
	Cabinet Cabinet

	Gain         uint8
	Volume       uint8
	Treble       uint8
	Middle       uint8
	Bass         uint8
	MasterVolume uint8
	Gain2        uint8
	Presence     uint8
	Depth        uint8
	Bias         uint8

	// NoiseGate is the gate level selector (0-5 on current firmware)
	NoiseGate uint8

	// Threshold is the gate threshold selector (0-9 on current firmware)
	Threshold uint8

	// Sag is the power amp sag selector (0-2 on current firmware)
	Sag uint8

	Brightness bool

	// USBGain is sent in its own packet, see EncodeUSBGain
	USBGain uint8
}

// EffectSettings holds one effect pedal and its place in the chain.
type EffectSettings struct {
	Type  EffectType
	Knobs [KnobCount]uint8
	Slot  SlotID
}

// PostAmp reports whether the effect sits in the effects loop.
func (e EffectSettings) PostAmp() bool {
	return e.Slot.IsFxLoop()
}

// NewEffectSettings validates the effect type and chain position. Knobs of
// an empty effect are forced to zero.
func NewEffectSettings(t EffectType, slot int, knobs ...uint8) (EffectSettings, error) {
	if _, err := Effects.ByValue(t); err != nil {
		return EffectSettings{}, err
	}
	s, err := NewSlotID(slot)
	if err != nil {
		return EffectSettings{}, err
	}
	if len(knobs) > KnobCount {
		return EffectSettings{}, fmt.Errorf("effect takes at most %d knobs, got %d", KnobCount, len(knobs))
	}

	fx := EffectSettings{Type: t, Slot: s}
	if t != EffectEmpty {
		copy(fx.Knobs[:], knobs)
	}
	return fx, nil
}

// Preset is a named preset as stored in device memory.
type Preset struct {
	Slot    PresetSlot
	Name    string
	Amp     AmpSettings
	Effects []EffectSettings
}

// Model describes an amplifier family identified by its USB product ID.
type Model struct {
	ProductID uint16
	Name      string
}

// Models lists the supported product IDs in the order a session probes them.
var Models = []Model{
	{ProductMustangI, "Mustang I/II"},
	{ProductMustangIII, "Mustang III/IV/V"},
	{ProductMini, "Mustang Mini"},
	{ProductFloor, "Mustang Floor"},
	{ProductMustangIIv2, "Mustang I/II v2"},
	{ProductMustangIIIv2, "Mustang III v2"},
	{ProductMustangIVv2, "Mustang IV v2"},
}

// LookupModel returns the model for a product ID.
func LookupModel(productID uint16) (Model, bool) {
	for _, m := range Models {
		if m.ProductID == productID {
			return m, true
		}
	}
	return Model{}, false
}
