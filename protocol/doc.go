// Package protocol implements the Fender Mustang USB control protocol.
//
// This package converts amplifier and effect settings to and from the fixed
// 64-byte packets the amplifier exchanges over its interrupt endpoints, and
// maps the protocol's byte codes to domain enumerations.
//
// # Packet Overview
//
// Every transfer is exactly PacketSize bytes. Data packets share a header:
//
//	[0x1C][0x03][DSP][..][..][..][0x01][0x01] ... [FIELDS @16-54]
//
// Where:
//   - DSP selects the processor: 0x05 amp, 0x06 stompbox, 0x07 modulation,
//     0x08 delay, 0x09 reverb, 0x0D USB gain
//   - byte 16 holds the amp model, effect code or preset name
//   - byte 18 holds the effect chain position (4-7 = effects loop)
//   - bytes 32-54 hold the knob and selector values
//
// Continuous controls (gain, volume, tone stack, knobs) pack as a word that
// repeats the value in both bytes (see PackContinuous); selectors (codes,
// noise gate, threshold, sag, brightness, position) pack as one raw byte.
//
// # Encoding
//
//	amp, err := protocol.EncodeAmp(settings)
//	blocks, err := protocol.EncodeEffects(effects) // one packet per category
//
// # Decoding
//
//	settings, err := protocol.DecodeAmp(packet)
//	fx, err := protocol.DecodeEffect(packet)
//
// Decoders reject unknown codes with a *ValidationError.
//
// # Code Tables
//
// AmpModels, Effects and Cabinets map codes in both directions:
//
//	model, err := protocol.AmpModels.ByCode(0x67) // Fender57Deluxe
//	code, err := protocol.Effects.ByValue(protocol.Phaser) // 0x4F
package protocol
