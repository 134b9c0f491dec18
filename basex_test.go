package basex

import (
	"encoding/hex"
	"errors"
	"github.com/stretchr/testify/require"
	"math/big"
	"math/rand"
	"strings"
	"sync"
	"testing"
)

// byteAlphabet returns the n bytes 0x00..n-1 as an alphabet string.
func byteAlphabet(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i)
	}
	return string(b)
}

// refEncode converts src with math/big, the slow exact way.
func refEncode(symbols string, src []byte) string {
	var sb strings.Builder
	for _, b := range src {
		if b != 0 {
			break
		}
		sb.WriteByte(symbols[0])
	}

	x := new(big.Int).SetBytes(src)
	radix := big.NewInt(int64(len(symbols)))
	mod := new(big.Int)
	var digits []byte
	for x.Sign() != 0 {
		x.DivMod(x, radix, mod)
		digits = append(digits, symbols[mod.Int64()])
	}
	for i := len(digits) - 1; i >= 0; i-- {
		sb.WriteByte(digits[i])
	}
	return sb.String()
}

func mustHex(t *testing.T, s string) []byte {
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func TestBitcoinVectors(t *testing.T) {
	vectors := []struct {
		hex     string
		encoded string
	}{
		{"", ""},
		{"61", "2g"},
		{"626262", "a3gV"},
		{"636363", "aPEr"},
		{"73696d706c792061206c6f6e6720737472696e67", "2cFupjhnEsSn59qHXstmK2ffpLv2"},
		{"00eb15231dfceb60925886b67d065299925915aeb172c06647", "1NS17iag9jJgTHD1VXjvLCEnZuQ3rJDE9L"},
		{"00010966776006953d5567439e5e39f86a0d273beed61967f6", "16UwLL9Risc3QfPqBUvKofHmBQ7wMtjvM"},
		{"516b6fcd0f", "ABnLTmg"},
		{"bf4f89001e670274dd", "3SEo3LWLoPntC"},
		{"572e4794", "3EFU7m"},
		{"ecac89cad93923c02321", "EJDM8drfXA6uyA"},
		{"10c8511e", "Rt5zm"},
		{"000000", "111"},
		{"00000000000000000000", "1111111111"},
	}

	for _, v := range vectors {
		src := mustHex(t, v.hex)
		require.Equal(t, v.encoded, Bitcoin.Encode(src), "encode %s", v.hex)

		dst, err := Bitcoin.Decode(v.encoded)
		require.NoError(t, err)
		require.Equal(t, src, dst, "decode %s", v.encoded)
	}
}

func TestOtherAlphabets(t *testing.T) {
	vectors := []struct {
		alphabet *Alphabet
		hex      string
		encoded  string
	}{
		{Binary, "0102", "100000010"},
		{Hex, "00ff10", "0ff10"},
		{Crockford, "0000ffff", "001ZZZ"},
		{MustAlphabet(Base11), "0100", "213"},
		{Ripple, "00ff", "rnQ"},
		{Alnum62, hex.EncodeToString([]byte("hello")), "7TqlfhZ"},
	}

	for _, v := range vectors {
		src := mustHex(t, v.hex)
		require.Equal(t, v.encoded, v.alphabet.Encode(src))

		dst, err := v.alphabet.Decode(v.encoded)
		require.NoError(t, err)
		require.Equal(t, src, dst)
	}
}

func TestEmpty(t *testing.T) {
	for _, name := range Names() {
		a, err := Lookup(name)
		require.NoError(t, err)

		require.Equal(t, "", a.Encode(nil))
		require.Equal(t, "", a.Encode([]byte{}))

		dst, err := a.Decode("")
		require.NoError(t, err)
		require.NotNil(t, dst)
		require.Len(t, dst, 0)
	}
}

func TestLeadingZeroes(t *testing.T) {
	rests := [][]byte{nil, {1}, {0xff, 0}, []byte("this is the example")}
	for _, a := range []*Alphabet{Bitcoin, Binary, Alnum62, MustAlphabet(byteAlphabet(254))} {
		leader := string([]byte{a.Leader()})
		for k := 0; k <= 5; k++ {
			for _, rest := range rests {
				src := append(make([]byte, k), rest...)
				enc := a.Encode(src)

				require.True(t, strings.HasPrefix(enc, strings.Repeat(leader, k)))
				if len(rest) == 0 {
					require.Equal(t, strings.Repeat(leader, k), enc)
				} else {
					require.NotEqual(t, a.Leader(), enc[k])
				}
			}
		}
	}
}

func TestMatchesBigInt(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 2000; i++ {
		a := MustAlphabet(byteAlphabet(2 + r.Intn(253)))
		zeroes := r.Intn(4)
		src := make([]byte, zeroes+r.Intn(64))
		r.Read(src[zeroes:])
		require.Equal(t, refEncode(a.String(), src), a.Encode(src), "base %d src %x", a.Base(), src)
	}
}

func TestRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	alphabets := []*Alphabet{Bitcoin, Flickr, Ripple, Binary, Octal, Hex, Crockford, Alnum36, Alnum62}
	for base := 2; base <= 254; base += 7 {
		alphabets = append(alphabets, MustAlphabet(byteAlphabet(base)))
	}

	for _, a := range alphabets {
		for i := 0; i < 100; i++ {
			zeroes := r.Intn(3)
			src := make([]byte, zeroes+r.Intn(80))
			r.Read(src[zeroes:])

			dst, err := a.Decode(a.Encode(src))
			require.NoError(t, err)
			require.Equal(t, src, dst)
		}
	}
}

func TestDecodeEncodeRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	for _, a := range []*Alphabet{Bitcoin, Binary, Hex, Alnum62, MustAlphabet(byteAlphabet(254))} {
		for i := 0; i < 200; i++ {
			b := make([]byte, r.Intn(50))
			for j := range b {
				b[j] = a.String()[r.Intn(a.Base())]
			}
			s := string(b)

			dst, err := a.Decode(s)
			require.NoError(t, err)
			require.Equal(t, s, a.Encode(dst))
		}
	}
}

func TestNewAlphabet(t *testing.T) {
	_, err := NewAlphabet(byteAlphabet(255))
	require.ErrorIs(t, err, ErrAlphabetTooLong)

	_, err = NewAlphabet(byteAlphabet(256))
	require.ErrorIs(t, err, ErrAlphabetTooLong)

	_, err = NewAlphabet("")
	require.ErrorIs(t, err, ErrAlphabetTooShort)

	_, err = NewAlphabet("1")
	require.ErrorIs(t, err, ErrAlphabetTooShort)

	_, err = NewAlphabet("0123456789abcdefa")
	require.ErrorIs(t, err, ErrAlphabetAmbiguous)
	var ambiguous *AmbiguousError
	require.True(t, errors.As(err, &ambiguous))
	require.Equal(t, byte('a'), ambiguous.Symbol)
	require.Equal(t, 10, ambiguous.First)
	require.Equal(t, 16, ambiguous.Second)

	a, err := NewAlphabet(byteAlphabet(254))
	require.NoError(t, err)
	require.Equal(t, 254, a.Base())

	a, err = NewAlphabet(Base58Bitcoin)
	require.NoError(t, err)
	require.Equal(t, 58, a.Base())
	require.Equal(t, byte('1'), a.Leader())
	require.Equal(t, Base58Bitcoin, a.String())
	for i := 0; i < len(Base58Bitcoin); i++ {
		d, ok := a.Digit(Base58Bitcoin[i])
		require.True(t, ok)
		require.Equal(t, i, d)
	}
	for _, c := range []byte("0OIl+/") {
		_, ok := a.Digit(c)
		require.False(t, ok)
	}
}

func TestMustAlphabetPanics(t *testing.T) {
	require.Panics(t, func() { MustAlphabet("aa") })
	require.NotPanics(t, func() { MustAlphabet("ab") })
}

func TestDecodeNotInAlphabet(t *testing.T) {
	cases := []struct {
		input  string
		char   byte
		offset int
	}{
		{"0", '0', 0},
		{"11O", 'O', 2},
		{"3SEo3LWLoPntCl", 'l', 13},
		{"1 2", ' ', 1},
		{"\xff", 0xff, 0},
	}

	for _, c := range cases {
		dst, err := Bitcoin.Decode(c.input)
		require.Nil(t, dst)
		require.ErrorIs(t, err, ErrNotInAlphabet)

		var notIn *NotInAlphabetError
		require.True(t, errors.As(err, &notIn))
		require.Equal(t, c.char, notIn.Char)
		require.Equal(t, c.offset, notIn.Offset)
	}
}

// digitsFor returns the smallest d with to^d >= from^n.
func digitsFor(from, to int64, n int) int {
	limit := new(big.Int).Exp(big.NewInt(from), big.NewInt(int64(n)), nil)
	p := big.NewInt(1)
	radix := big.NewInt(to)
	d := 0
	for p.Cmp(limit) < 0 {
		p.Mul(p, radix)
		d++
	}
	return d
}

func TestBufferCapacity(t *testing.T) {
	for base := 2; base <= 254; base++ {
		for n := 1; n <= 48; n++ {
			require.LessOrEqual(t, digitsFor(256, int64(base), n), MaxEncodedLen(n, base), "encode base %d n %d", base, n)
			require.LessOrEqual(t, digitsFor(int64(base), 256, n), MaxDecodedLen(n, base), "decode base %d n %d", base, n)
		}
	}
	require.Equal(t, 0, MaxEncodedLen(0, 58))
	require.Equal(t, 0, MaxDecodedLen(0, 58))
}

func TestLargeInputs(t *testing.T) {
	for _, base := range []int{2, 3, 58, 253, 254} {
		a := MustAlphabet(byteAlphabet(base))
		for _, n := range []int{1, 255, 256, 1024, 4096} {
			src := make([]byte, n)
			for i := range src {
				src[i] = 0xff
			}
			enc := a.Encode(src)
			require.LessOrEqual(t, len(enc), MaxEncodedLen(n, base))

			dst, err := a.Decode(enc)
			require.NoError(t, err)
			require.Equal(t, src, dst)

			top := strings.Repeat(a.String()[base-1:], n)
			dst, err = a.Decode(top)
			require.NoError(t, err)
			require.Equal(t, top, a.Encode(dst))
		}
	}
}

func TestConcurrentUse(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			r := rand.New(rand.NewSource(seed))
			for j := 0; j < 200; j++ {
				src := make([]byte, r.Intn(40))
				r.Read(src)
				dst, err := Bitcoin.Decode(Bitcoin.Encode(src))
				if err != nil || string(dst) != string(src) {
					t.Errorf("round trip failed for %x", src)
					return
				}
			}
		}(int64(i))
	}
	wg.Wait()
}

func TestRandom(t *testing.T) {
	s, err := Alnum62.Random(16)
	require.NoError(t, err)
	dst, err := Alnum62.Decode(s)
	require.NoError(t, err)
	require.Len(t, dst, 16)

	s, err = Alnum62.Random(0)
	require.NoError(t, err)
	require.Equal(t, "", s)

	_, err = Alnum62.Random(-1)
	require.Error(t, err)
}

func BenchmarkEncode(b *testing.B) {
	src := []byte("this is the example")
	for i := 0; i < b.N; i++ {
		_ = Bitcoin.Encode(src)
	}
}

func BenchmarkDecode(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = Bitcoin.Decode("2Cf1ZEY1opMKrSbSgCAYAMw3epujqbUL3Rbg5Tv5omXXUd4qrK")
	}
}

func TestIsASCII(t *testing.T) {
	for _, name := range Names() {
		a, err := Lookup(name)
		require.NoError(t, err)
		require.True(t, a.IsASCII(), name)
	}
	require.False(t, MustAlphabet(byteAlphabet(200)).IsASCII())
	require.False(t, MustAlphabet("01\x80").IsASCII())
}
