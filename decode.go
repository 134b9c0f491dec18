package basex

// Decode returns the bytes represented by s. Each leading leader symbol
// becomes one 0x00 byte. Decoding stops at the first byte of s that is not
// in the alphabet and returns a *NotInAlphabetError.
func (a *Alphabet) Decode(s string) ([]byte, error) {
	if len(s) == 0 {
		return []byte{}, nil
	}

	leader := a.symbols[0]
	zeroes := 0
	for zeroes < len(s) && s[zeroes] == leader {
		zeroes++
	}

	var (
		base = uint32(len(a.symbols))
		size = MaxDecodedLen(len(s)-zeroes, len(a.symbols))
		buf  = make([]byte, size) // 大端序的 256 进制数字
		high = size - 1
	)
	for pos := zeroes; pos < len(s); pos++ {
		d := a.digits[s[pos]]
		if d == invalidDigit {
			return nil, &NotInAlphabetError{Char: s[pos], Offset: pos}
		}

		// buf = buf*base + d
		carry := uint32(d)
		i := size - 1
		for ; i > high || carry != 0; i-- {
			carry += uint32(buf[i]) * base
			buf[i] = byte(carry)
			carry >>= 8
		}
		high = i
	}

	it := 0
	for it < size && buf[it] == 0 {
		it++
	}

	out := make([]byte, zeroes+size-it)
	copy(out[zeroes:], buf[it:])
	return out, nil
}
