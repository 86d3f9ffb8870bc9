package protocol

// PacketSize is the size of every packet exchanged with the amplifier.
const PacketSize = 64

// USB identity of the Fender Mustang family.
const (
	// VendorID is the Fender Musical Instruments USB vendor ID
	VendorID = 0x1ED8

	// EndpointOut is the interrupt OUT endpoint used for all writes
	EndpointOut = 0x01

	// EndpointIn is the interrupt IN endpoint used for all reads
	EndpointIn = 0x81

	// DefaultInterface is the USB interface number claimed by a session
	DefaultInterface = 0
)

// Product IDs per amplifier family.
const (
	ProductMustangI     = 0x0004 // Mustang I and II
	ProductMustangIII   = 0x0005 // Mustang III, IV and V
	ProductMini         = 0x0010 // Mustang Mini
	ProductFloor        = 0x0012 // Mustang Floor
	ProductMustangIIv2  = 0x0014 // Mustang I and II v2
	ProductMustangIIIv2 = 0x0016 // Mustang III v2
	ProductMustangIVv2  = 0x0017 // Mustang IV v2
)

// Field offsets within a packet.
const (
	OffsetStage = 0
	OffsetType  = 1

	// OffsetDSP selects the signal processor a data packet addresses
	OffsetDSP = 2

	// OffsetSlot is the preset slot number in load and save commands
	OffsetSlot = 4

	// OffsetCode holds the amp model, effect or preset name depending on the packet
	OffsetCode = 16

	// OffsetPosition is the effect chain position (0-7)
	OffsetPosition = 18

	OffsetKnob1 = 32
	OffsetKnob2 = 33
	OffsetKnob3 = 34
	OffsetKnob4 = 35
	OffsetKnob5 = 36
	OffsetKnob6 = 37

	OffsetVolume       = 32
	OffsetGain         = 33
	OffsetGain2        = 34
	OffsetMasterVolume = 35
	OffsetTreble       = 36
	OffsetMiddle       = 37
	OffsetBass         = 38
	OffsetPresence     = 39
	OffsetDepth        = 41
	OffsetBias         = 42
	OffsetNoiseGate    = 47
	OffsetThreshold    = 48
	OffsetCabinet      = 49
	OffsetSag          = 51
	OffsetBrightness   = 52
)

// Packet header values.
const (
	// StageData marks a packet carrying settings or a command
	StageData = 0x1C

	// TypeApply marks a data packet (and, on its own, the apply command)
	TypeApply = 0x03

	// TypeMemory marks a preset memory command
	TypeMemory = 0x01

	// MemoryLoad and MemorySave select the memory operation at OffsetDSP
	MemoryLoad = 0x01
	MemorySave = 0x03
)

// DSP selectors.
const (
	DSPAmp        = 0x05
	DSPStompbox   = 0x06
	DSPModulation = 0x07
	DSPDelay      = 0x08
	DSPReverb     = 0x09
	DSPUSBGain    = 0x0D
)

// Initialization command bytes.
const (
	InitByte0 = 0xFF
	InitByte1 = 0xC1
)

// Directory request bytes. The device answers with one name packet per
// preset slot.
const (
	DirectoryByte0 = 0x1A
	DirectoryByte1 = 0x03
)

// Preset memory layout.
const (
	// SlotCount is the number of named preset slots on the device
	SlotCount = 100

	// NameSize is the size of the fixed preset name buffer
	NameSize = 32

	// LoadResponsePackets is the number of packets answering a load command
	LoadResponsePackets = 7
)

// Effect chain layout.
const (
	// ChainSlots is the number of addressable effect chain positions
	ChainSlots = 8

	// FxLoopOffset is the first position inside the effects loop
	FxLoopOffset = 4

	// KnobCount is the number of knobs on every effect
	KnobCount = 6
)
