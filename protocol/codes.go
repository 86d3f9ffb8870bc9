package protocol

import "fmt"

// CodeTable is a fixed bijection between protocol byte codes and one family
// of domain values. Tables are built once at init and never modified.
type CodeTable[T ~uint8] struct {
	family  string
	byCode  map[byte]T
	byValue map[T]byte
	codes   []byte
}

type codeEntry[T ~uint8] struct {
	code  byte
	value T
}

// newCodeTable panics if two entries share a code or a value.
func newCodeTable[T ~uint8](family string, entries []codeEntry[T]) *CodeTable[T] {
	t := &CodeTable[T]{
		family:  family,
		byCode:  make(map[byte]T, len(entries)),
		byValue: make(map[T]byte, len(entries)),
		codes:   make([]byte, 0, len(entries)),
	}
	for _, e := range entries {
		if _, dup := t.byCode[e.code]; dup {
			panic(fmt.Sprintf("protocol: duplicate %s code 0x%02X", family, e.code))
		}
		if _, dup := t.byValue[e.value]; dup {
			panic(fmt.Sprintf("protocol: duplicate %s value %v", family, e.value))
		}
		t.byCode[e.code] = e.value
		t.byValue[e.value] = e.code
		t.codes = append(t.codes, e.code)
	}
	return t
}

// ByCode returns the value for a protocol code.
func (t *CodeTable[T]) ByCode(code byte) (T, error) {
	v, ok := t.byCode[code]
	if !ok {
		return v, &ValidationError{
			Field:  t.family + " code",
			Value:  int(code),
			Reason: "not a known code",
		}
	}
	return v, nil
}

// ByValue returns the protocol code for a value.
func (t *CodeTable[T]) ByValue(v T) (byte, error) {
	code, ok := t.byValue[v]
	if !ok {
		return 0, &ValidationError{
			Field:  t.family,
			Value:  int(v),
			Reason: "no protocol code",
		}
	}
	return code, nil
}

// Codes returns every known code in table order.
func (t *CodeTable[T]) Codes() []byte {
	out := make([]byte, len(t.codes))
	copy(out, t.codes)
	return out
}

// Len returns the number of entries.
func (t *CodeTable[T]) Len() int {
	return len(t.codes)
}

// AmpModel is an amplifier model emulation.
type AmpModel uint8

const (
	Fender57Deluxe AmpModel = iota
	Fender59Bassman
	Fender57Champ
	Fender65DeluxeReverb
	Fender65Princeton
	Fender65TwinReverb
	FenderSuperSonic
	British60s
	British70s
	British80s
	American90s
	Metal2000
)

var ampNames = [...]string{
	"'57 Deluxe", "'59 Bassman", "'57 Champ", "'65 Deluxe Reverb",
	"'65 Princeton", "'65 Twin Reverb", "Super-Sonic", "British '60s",
	"British '70s", "British '80s", "American '90s", "Metal 2000",
}

func (m AmpModel) String() string {
	if int(m) < len(ampNames) {
		return ampNames[m]
	}
	return fmt.Sprintf("AmpModel(%d)", uint8(m))
}

// Cabinet is a speaker cabinet emulation.
type Cabinet uint8

const (
	CabinetOff Cabinet = iota
	Cabinet57Deluxe
	CabinetBassman
	Cabinet65Deluxe
	Cabinet65Princeton
	CabinetChamp
	Cabinet4x12M
	Cabinet2x12C
	Cabinet4x12G
	Cabinet65Twin
	Cabinet4x12V
	CabinetSS212
	CabinetSS112
)

var cabinetNames = [...]string{
	"Off", "'57 DLX", "Bassman", "'65 DLX", "'65 PRN", "Champ", "4x12 M",
	"2x12 C", "4x12 G", "'65 TWN", "4x12 V", "SS 2x12", "SS 1x12",
}

func (c Cabinet) String() string {
	if int(c) < len(cabinetNames) {
		return cabinetNames[c]
	}
	return fmt.Sprintf("Cabinet(%d)", uint8(c))
}

// EffectType is an effect pedal emulation. The declaration order groups the
// types by category and EffectType.Category depends on it.
type EffectType uint8

const (
	EffectEmpty EffectType = iota

	// stompbox
	Overdrive
	Wah
	TouchWah
	Fuzz
	FuzzTouchWah
	SimpleComp
	Compressor

	// modulation
	SineChorus
	TriangleChorus
	SineFlanger
	TriangleFlanger
	Vibratone
	VintageTremolo
	SineTremolo
	RingModulator
	StepFilter
	Phaser
	PitchShifter

	// delay
	MonoDelay
	MonoEchoFilter
	StereoEchoFilter
	MultitapDelay
	PingPongDelay
	DuckingDelay
	ReverseDelay
	TapeDelay
	StereoTapeDelay

	// reverb
	SmallHallReverb
	LargeHallReverb
	SmallRoomReverb
	LargeRoomReverb
	SmallPlateReverb
	LargePlateReverb
	AmbientReverb
	ArenaReverb
	Fender63SpringReverb
	Fender65SpringReverb
)

var effectNames = [...]string{
	"Empty",
	"Overdrive", "Wah", "Touch Wah", "Fuzz", "Fuzz Touch Wah", "Simple Comp", "Compressor",
	"Sine Chorus", "Triangle Chorus", "Sine Flanger", "Triangle Flanger", "Vibratone",
	"Vintage Tremolo", "Sine Tremolo", "Ring Modulator", "Step Filter", "Phaser", "Pitch Shifter",
	"Mono Delay", "Mono Echo Filter", "Stereo Echo Filter", "Multitap Delay", "Ping Pong Delay",
	"Ducking Delay", "Reverse Delay", "Tape Delay", "Stereo Tape Delay",
	"Small Hall", "Large Hall", "Small Room", "Large Room", "Small Plate", "Large Plate",
	"Ambient", "Arena", "'63 Spring", "'65 Spring",
}

func (e EffectType) String() string {
	if int(e) < len(effectNames) {
		return effectNames[e]
	}
	return fmt.Sprintf("EffectType(%d)", uint8(e))
}

// Category is one of the four effect processors in the signal chain.
type Category uint8

const (
	CategoryStompbox Category = iota
	CategoryModulation
	CategoryDelay
	CategoryReverb

	// CategoryNone is returned for EffectEmpty and unknown types
	CategoryNone Category = 0xFF
)

// CategoryCount is the number of effect processors.
const CategoryCount = 4

// Categories lists the processors in chain order.
var Categories = [CategoryCount]Category{CategoryStompbox, CategoryModulation, CategoryDelay, CategoryReverb}

func (c Category) String() string {
	switch c {
	case CategoryStompbox:
		return "stompbox"
	case CategoryModulation:
		return "modulation"
	case CategoryDelay:
		return "delay"
	case CategoryReverb:
		return "reverb"
	default:
		return "none"
	}
}

// DSP returns the processor selector written at OffsetDSP.
func (c Category) DSP() byte {
	return DSPStompbox + byte(c)
}

// DefaultPosition is the chain position written for an empty category.
func (c Category) DefaultPosition() int {
	return int(c)
}

// Category returns the processor the effect type runs on.
func (e EffectType) Category() Category {
	switch {
	case e >= Overdrive && e <= Compressor:
		return CategoryStompbox
	case e >= SineChorus && e <= PitchShifter:
		return CategoryModulation
	case e >= MonoDelay && e <= StereoTapeDelay:
		return CategoryDelay
	case e >= SmallHallReverb && e <= Fender65SpringReverb:
		return CategoryReverb
	default:
		return CategoryNone
	}
}

// AmpModels maps amplifier model codes.
var AmpModels = newCodeTable("amp", []codeEntry[AmpModel]{
	{0x67, Fender57Deluxe},
	{0x64, Fender59Bassman},
	{0x7C, Fender57Champ},
	{0x53, Fender65DeluxeReverb},
	{0x6A, Fender65Princeton},
	{0x75, Fender65TwinReverb},
	{0x72, FenderSuperSonic},
	{0x61, British60s},
	{0x79, British70s},
	{0x5E, British80s},
	{0x5D, American90s},
	{0x6D, Metal2000},
})

// Cabinets maps cabinet codes.
var Cabinets = newCodeTable("cabinet", []codeEntry[Cabinet]{
	{0x00, CabinetOff},
	{0x01, Cabinet57Deluxe},
	{0x02, CabinetBassman},
	{0x03, Cabinet65Deluxe},
	{0x04, Cabinet65Princeton},
	{0x05, CabinetChamp},
	{0x06, Cabinet4x12M},
	{0x07, Cabinet2x12C},
	{0x08, Cabinet4x12G},
	{0x09, Cabinet65Twin},
	{0x0A, Cabinet4x12V},
	{0x0B, CabinetSS212},
	{0x0C, CabinetSS112},
})

// Effects maps effect codes.
var Effects = newCodeTable("effect", []codeEntry[EffectType]{
	{0x00, EffectEmpty},

	{0x3C, Overdrive},
	{0x49, Wah},
	{0x4A, TouchWah},
	{0x1A, Fuzz},
	{0x1C, FuzzTouchWah},
	{0x88, SimpleComp},
	{0x07, Compressor},

	{0x12, SineChorus},
	{0x13, TriangleChorus},
	{0x18, SineFlanger},
	{0x19, TriangleFlanger},
	{0x2D, Vibratone},
	{0x40, VintageTremolo},
	{0x41, SineTremolo},
	{0x22, RingModulator},
	{0x29, StepFilter},
	{0x4F, Phaser},
	{0x1F, PitchShifter},

	{0x16, MonoDelay},
	{0x43, MonoEchoFilter},
	{0x48, StereoEchoFilter},
	{0x44, MultitapDelay},
	{0x45, PingPongDelay},
	{0x15, DuckingDelay},
	{0x46, ReverseDelay},
	{0x2B, TapeDelay},
	{0x2A, StereoTapeDelay},

	{0x24, SmallHallReverb},
	{0x3A, LargeHallReverb},
	{0x26, SmallRoomReverb},
	{0x3B, LargeRoomReverb},
	{0x4E, SmallPlateReverb},
	{0x4B, LargePlateReverb},
	{0x4C, AmbientReverb},
	{0x4D, ArenaReverb},
	{0x21, Fender63SpringReverb},
	{0x0B, Fender65SpringReverb},
})
