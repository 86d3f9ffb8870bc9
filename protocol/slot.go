package protocol

// SlotID is a position in the effect chain. Positions 0-3 sit in front of the
// amplifier, 4-7 inside its effects loop. The zero value is position 0.
type SlotID struct {
	id uint8
}

// NewSlotID validates id and returns the corresponding chain position.
func NewSlotID(id int) (SlotID, error) {
	if id < 0 || id >= ChainSlots {
		return SlotID{}, &ValidationError{
			Field:  "slot id",
			Value:  id,
			Reason: "must be 0-7",
		}
	}
	return SlotID{id: uint8(id)}, nil
}

// ID returns the chain position (0-7).
func (s SlotID) ID() int {
	return int(s.id)
}

// IsFxLoop reports whether the position lies in the effects loop.
func (s SlotID) IsFxLoop() bool {
	return s.id >= FxLoopOffset
}

// Offset returns the position relative to its half of the chain (0-3).
func (s SlotID) Offset() int {
	return int(s.id % FxLoopOffset)
}

// PresetSlot is a numbered preset memory location on the device (0-99).
type PresetSlot uint8

// NewPresetSlot validates n and returns the corresponding preset slot.
func NewPresetSlot(n int) (PresetSlot, error) {
	if n < 0 || n >= SlotCount {
		return 0, &ValidationError{
			Field:  "preset slot",
			Value:  n,
			Reason: "must be 0-99",
		}
	}
	return PresetSlot(n), nil
}
