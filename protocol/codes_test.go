package protocol

import (
	"errors"
	"testing"
)

func TestSlotID(t *testing.T) {
	for id := 0; id < ChainSlots; id++ {
		s, err := NewSlotID(id)
		if err != nil {
			t.Fatalf("NewSlotID(%d): unexpected error: %v", id, err)
		}
		if s.ID() != id {
			t.Errorf("ID() = %d, want %d", s.ID(), id)
		}
		if s.IsFxLoop() != (id >= 4) {
			t.Errorf("NewSlotID(%d).IsFxLoop() = %v, want %v", id, s.IsFxLoop(), id >= 4)
		}
		if s.Offset() != id%4 {
			t.Errorf("NewSlotID(%d).Offset() = %d, want %d", id, s.Offset(), id%4)
		}
	}
}

func TestSlotIDInvalid(t *testing.T) {
	for _, id := range []int{8, 9, 100, 255, -1} {
		_, err := NewSlotID(id)
		if err == nil {
			t.Fatalf("NewSlotID(%d): expected error, got nil", id)
		}
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("NewSlotID(%d): error type = %T, want *ValidationError", id, err)
		}
	}
}

func TestPresetSlot(t *testing.T) {
	tests := []struct {
		name    string
		n       int
		wantErr bool
	}{
		{name: "first", n: 0},
		{name: "last", n: 99},
		{name: "past end", n: 100, wantErr: true},
		{name: "negative", n: -1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slot, err := NewPresetSlot(tt.n)
			if tt.wantErr {
				if !IsValidationError(err) {
					t.Fatalf("expected ValidationError, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if int(slot) != tt.n {
				t.Errorf("slot = %d, want %d", slot, tt.n)
			}
		})
	}
}

func TestCodeTableSizes(t *testing.T) {
	if AmpModels.Len() != 12 {
		t.Errorf("AmpModels.Len() = %d, want 12", AmpModels.Len())
	}
	if Effects.Len() != 38 {
		t.Errorf("Effects.Len() = %d, want 38", Effects.Len())
	}
	if Cabinets.Len() != 13 {
		t.Errorf("Cabinets.Len() = %d, want 13", Cabinets.Len())
	}
}

func TestCodeTableRoundTrip(t *testing.T) {
	t.Run("amp codes", func(t *testing.T) {
		for _, code := range AmpModels.Codes() {
			v, err := AmpModels.ByCode(code)
			if err != nil {
				t.Fatalf("ByCode(0x%02X): %v", code, err)
			}
			back, err := AmpModels.ByValue(v)
			if err != nil || back != code {
				t.Errorf("ByValue(ByCode(0x%02X)) = 0x%02X, %v", code, back, err)
			}
		}
	})

	t.Run("amp values", func(t *testing.T) {
		for m := Fender57Deluxe; m <= Metal2000; m++ {
			code, err := AmpModels.ByValue(m)
			if err != nil {
				t.Fatalf("ByValue(%s): %v", m, err)
			}
			back, err := AmpModels.ByCode(code)
			if err != nil || back != m {
				t.Errorf("ByCode(ByValue(%s)) = %s, %v", m, back, err)
			}
		}
	})

	t.Run("effect values", func(t *testing.T) {
		for e := EffectEmpty; e <= Fender65SpringReverb; e++ {
			code, err := Effects.ByValue(e)
			if err != nil {
				t.Fatalf("ByValue(%s): %v", e, err)
			}
			back, err := Effects.ByCode(code)
			if err != nil || back != e {
				t.Errorf("ByCode(ByValue(%s)) = %s, %v", e, back, err)
			}
		}
	})

	t.Run("effect codes", func(t *testing.T) {
		for _, code := range Effects.Codes() {
			v, err := Effects.ByCode(code)
			if err != nil {
				t.Fatalf("ByCode(0x%02X): %v", code, err)
			}
			back, err := Effects.ByValue(v)
			if err != nil || back != code {
				t.Errorf("ByValue(ByCode(0x%02X)) = 0x%02X, %v", code, back, err)
			}
		}
	})

	t.Run("cabinet values", func(t *testing.T) {
		for c := CabinetOff; c <= CabinetSS112; c++ {
			code, err := Cabinets.ByValue(c)
			if err != nil {
				t.Fatalf("ByValue(%s): %v", c, err)
			}
			back, err := Cabinets.ByCode(code)
			if err != nil || back != c {
				t.Errorf("ByCode(ByValue(%s)) = %s, %v", c, back, err)
			}
		}
	})

	t.Run("cabinet codes", func(t *testing.T) {
		if Cabinets.Len() != 13 {
			t.Errorf("Len() = %d, want 13", Cabinets.Len())
		}
		for _, code := range Cabinets.Codes() {
			v, err := Cabinets.ByCode(code)
			if err != nil {
				t.Fatalf("ByCode(0x%02X): %v", code, err)
			}
			back, err := Cabinets.ByValue(v)
			if err != nil || back != code {
				t.Errorf("ByValue(ByCode(0x%02X)) = 0x%02X, %v", code, back, err)
			}
		}
	})
}

func TestCodeTableUnknown(t *testing.T) {
	tests := []struct {
		name   string
		lookup func() error
	}{
		{name: "amp 0x00", lookup: func() error { _, err := AmpModels.ByCode(0x00); return err }},
		{name: "amp 0xFF", lookup: func() error { _, err := AmpModels.ByCode(0xFF); return err }},
		{name: "effect 0xFF", lookup: func() error { _, err := Effects.ByCode(0xFF); return err }},
		{name: "effect 0x01", lookup: func() error { _, err := Effects.ByCode(0x01); return err }},
		{name: "cabinet 0xFF", lookup: func() error { _, err := Cabinets.ByCode(0xFF); return err }},
		{name: "cabinet 0x0D", lookup: func() error { _, err := Cabinets.ByCode(0x0D); return err }},
		{name: "amp value", lookup: func() error { _, err := AmpModels.ByValue(AmpModel(12)); return err }},
		{name: "effect value", lookup: func() error { _, err := Effects.ByValue(EffectType(38)); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.lookup()
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !IsValidationError(err) {
				t.Errorf("error type = %T, want *ValidationError", err)
			}
		})
	}
}

func TestEffectCategory(t *testing.T) {
	tests := []struct {
		first, last EffectType
		want        Category
	}{
		{Overdrive, Compressor, CategoryStompbox},
		{SineChorus, PitchShifter, CategoryModulation},
		{MonoDelay, StereoTapeDelay, CategoryDelay},
		{SmallHallReverb, Fender65SpringReverb, CategoryReverb},
	}

	counts := map[Category]int{}
	for _, tt := range tests {
		for e := tt.first; e <= tt.last; e++ {
			if got := e.Category(); got != tt.want {
				t.Errorf("%s.Category() = %s, want %s", e, got, tt.want)
			}
			counts[tt.want]++
		}
	}
	if EffectEmpty.Category() != CategoryNone {
		t.Errorf("EffectEmpty.Category() = %s, want none", EffectEmpty.Category())
	}

	want := map[Category]int{CategoryStompbox: 7, CategoryModulation: 11, CategoryDelay: 9, CategoryReverb: 10}
	for cat, n := range want {
		if counts[cat] != n {
			t.Errorf("%s has %d effects, want %d", cat, counts[cat], n)
		}
	}
}

func TestValidationErrorMessage(t *testing.T) {
	_, err := Effects.ByCode(0xFF)
	if got, want := err.Error(), "invalid effect code 0xFF: not a known code"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	_, err = NewSlotID(9)
	if got, want := err.Error(), "invalid slot id 9: must be 0-7"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestLookupModel(t *testing.T) {
	if len(Models) != 7 {
		t.Fatalf("len(Models) = %d, want 7", len(Models))
	}
	m, ok := LookupModel(ProductMustangIII)
	if !ok || m.Name != "Mustang III/IV/V" {
		t.Errorf("LookupModel(0x0005) = %+v, %v", m, ok)
	}
	if _, ok := LookupModel(0x9999); ok {
		t.Error("LookupModel(0x9999) found a model")
	}
}
