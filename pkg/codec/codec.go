// Package codec converts between raw file bytes and codepoints.
//
// Decoding never fails: a malformed or truncated sequence decodes to
// U+FFFD and consumes exactly one byte, so decoding always makes progress.
package codec

import "unicode/utf8"

// Replacement is substituted for undecodable input and unencodable values.
const Replacement = utf8.RuneError

// DecodeNext decodes the UTF-8 sequence whose lead byte is b[off] and
// returns the codepoint and the number of bytes consumed (1-4). At or past
// the end of b it returns (Replacement, 0).
func DecodeNext(b []byte, off int) (rune, int) {
	if off < 0 || off >= len(b) {
		return Replacement, 0
	}
	if c := b[off]; c < utf8.RuneSelf {
		return rune(c), 1
	}
	return utf8.DecodeRune(b[off:])
}

// Decode converts all of b to codepoints.
func Decode(b []byte) []rune {
	out := make([]rune, 0, utf8.RuneCount(b))
	for off := 0; off < len(b); {
		r, w := DecodeNext(b, off)
		out = append(out, r)
		off += w
	}
	return out
}

// Encode returns the UTF-8 form of cp and its length. Values outside the
// Unicode scalar range, surrogates included, encode as Replacement.
func Encode(cp rune) ([utf8.UTFMax]byte, int) {
	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], cp)
	return buf, n
}

// AppendEncode appends the UTF-8 form of cp to dst.
func AppendEncode(dst []byte, cp rune) []byte {
	return utf8.AppendRune(dst, cp)
}

// EncodedLen returns the number of bytes cps occupy once encoded.
func EncodedLen(cps []rune) int {
	n := 0
	for _, cp := range cps {
		if l := utf8.RuneLen(cp); l > 0 {
			n += l
		} else {
			n += utf8.RuneLen(Replacement)
		}
	}
	return n
}
