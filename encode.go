package basex

// Encode returns the encoding of src. Each leading 0x00 byte of src becomes
// one leader symbol and the rest is converted from base 256 to the
// alphabet's base. Encode never fails.
func (a *Alphabet) Encode(src []byte) string {
	if len(src) == 0 {
		return ""
	}

	zeroes := 0
	for zeroes < len(src) && src[zeroes] == 0 {
		zeroes++
	}

	var (
		base = uint32(len(a.symbols))
		size = MaxEncodedLen(len(src)-zeroes, len(a.symbols))
		buf  = make([]byte, size) // 大端序的 base 进制数字
		high = size - 1           // buf[high+1:] 为已写入的数字
	)
	for _, b := range src[zeroes:] {
		// buf = buf*256 + b
		carry := uint32(b)
		i := size - 1
		for ; i > high || carry != 0; i-- {
			carry += uint32(buf[i]) << 8
			buf[i] = byte(carry % base)
			carry /= base
		}
		high = i
	}

	it := 0
	for it < size && buf[it] == 0 {
		it++
	}

	out := make([]byte, zeroes+size-it)
	leader := a.symbols[0]
	for i := 0; i < zeroes; i++ {
		out[i] = leader
	}
	for i, d := range buf[it:] {
		out[zeroes+i] = a.symbols[d]
	}
	return string(out)
}
