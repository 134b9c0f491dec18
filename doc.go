// Package basex encodes byte slices as strings over an arbitrary alphabet of
// 2 to 254 single-byte symbols, the way Bitcoin's Base58 does, and decodes
// them back.
//
// Encoding is an exact radix conversion of the input, read as a big-endian
// integer, into the alphabet's base. Every leading zero byte is kept as one
// leader symbol, the first symbol of the alphabet, so
//
//	a.Decode(a.Encode(b)) == b
//
// holds for every byte slice, including the empty one.
package basex
