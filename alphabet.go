package basex

import (
	"crypto/rand"
	"fmt"
)

const (
	minAlphabetLen = 2
	maxAlphabetLen = 254

	// invalidDigit marks a byte that is not part of the alphabet.
	invalidDigit = 0xff
)

// Alphabet 编码字符表。构造后只读，可在多个 goroutine 间共享。
type Alphabet struct {
	symbols string
	digits  [256]byte // 字符 => 数值，invalidDigit 表示不在字符表中
}

// NewAlphabet validates symbols and builds the reverse lookup table.
// symbols must hold between 2 and 254 distinct bytes; the first one is the
// leader that stands for a leading zero byte. Symbols are single bytes, so an
// alphabet using bytes above 0x7f yields strings that are not valid UTF-8.
func NewAlphabet(symbols string) (*Alphabet, error) {
	if len(symbols) > maxAlphabetLen {
		return nil, ErrAlphabetTooLong
	}
	if len(symbols) < minAlphabetLen {
		return nil, ErrAlphabetTooShort
	}

	a := &Alphabet{symbols: symbols}
	for i := range a.digits {
		a.digits[i] = invalidDigit
	}

	for i := 0; i < len(symbols); i++ {
		c := symbols[i]
		if a.digits[c] != invalidDigit {
			return nil, &AmbiguousError{Symbol: c, First: int(a.digits[c]), Second: i}
		}
		a.digits[c] = byte(i)
	}

	return a, nil
}

// MustAlphabet is like NewAlphabet but panics on an invalid alphabet.
func MustAlphabet(symbols string) *Alphabet {
	a, err := NewAlphabet(symbols)
	if err != nil {
		panic(fmt.Sprintf("basex: %v", err))
	}
	return a
}

// Base 进制数
func (a *Alphabet) Base() int {
	return len(a.symbols)
}

// Leader returns the symbol of digit value 0.
func (a *Alphabet) Leader() byte {
	return a.symbols[0]
}

func (a *Alphabet) String() string {
	return a.symbols
}

// IsASCII reports whether every symbol is a 7-bit byte. Only such alphabets
// produce encodings that survive text transports like JSON.
func (a *Alphabet) IsASCII() bool {
	for i := 0; i < len(a.symbols); i++ {
		if a.symbols[i] >= 0x80 {
			return false
		}
	}
	return true
}

// Digit returns the digit value of c, and false if c is not in the alphabet.
func (a *Alphabet) Digit(c byte) (int, bool) {
	d := a.digits[c]
	if d == invalidDigit {
		return 0, false
	}
	return int(d), true
}

// Random returns the encoding of n bytes read from crypto/rand.
func (a *Alphabet) Random(n int) (string, error) {
	if n < 0 {
		return "", fmt.Errorf("negative random length %d", n)
	}
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes failed: %v", err)
	}
	return a.Encode(buf), nil
}
