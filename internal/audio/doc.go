// Package audio renders the broadcast clip: a spoken report laid over a
// looping music bed.
//
// # Mixing
//
// Both tracks are decoded and resampled to the output rate, so every length
// below is a sample count at that rate. For a voice track of V samples and a
// music track of M samples:
//
//  1. The music is attenuated by a fixed gain in dB.
//  2. The music is tiled V/M + 1 times end to end and truncated to V samples.
//  3. Linear fade-in and fade-out envelopes are applied to the tiled bed.
//  4. The voice is mixed onto the bed from sample zero.
//
// The mixed track is therefore always exactly as long as the voice track.
//
// # Output
//
// The mix is encoded to MP3 in a temporary file next to the destination,
// tagged with ID3 artist and title frames, and then renamed over the
// destination. A failed render never leaves a partial file behind.
package audio
