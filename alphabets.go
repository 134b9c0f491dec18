package basex

import (
	"fmt"
	"sort"
	"sync"
)

// 常用字符表
const (
	Base2           = "01"
	Base8           = "01234567"
	Base11          = "0123456789a"
	Base16          = "0123456789abcdef"
	Base32Crockford = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"
	Base36          = "0123456789abcdefghijklmnopqrstuvwxyz"
	Base58Bitcoin   = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"
	Base58Flickr    = "123456789abcdefghijkmnopqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ"
	Base58Ripple    = "rpshnaf39wBUDNEGHJKLM4PQRST7VWXYZ2bcdeCg65jkm8oFqi1tuvAxyz"
	Base62          = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	Base64          = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"
	Base67          = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_.!~"
)

var (
	Binary    = MustAlphabet(Base2)
	Octal     = MustAlphabet(Base8)
	Hex       = MustAlphabet(Base16)
	Crockford = MustAlphabet(Base32Crockford)
	Alnum36   = MustAlphabet(Base36)
	Bitcoin   = MustAlphabet(Base58Bitcoin)
	Flickr    = MustAlphabet(Base58Flickr)
	Ripple    = MustAlphabet(Base58Ripple)
	Alnum62   = MustAlphabet(Base62)
)

var registry = struct {
	sync.RWMutex
	alphabets map[string]*Alphabet
}{alphabets: map[string]*Alphabet{
	"base2":    Binary,
	"base8":    Octal,
	"base11":   MustAlphabet(Base11),
	"base16":   Hex,
	"base32":   Crockford,
	"base36":   Alnum36,
	"base58":   Bitcoin,
	"flickr58": Flickr,
	"ripple58": Ripple,
	"base62":   Alnum62,
	"base64":   MustAlphabet(Base64),
	"base67":   MustAlphabet(Base67),
}}

// Lookup returns the registered alphabet called name.
func Lookup(name string) (*Alphabet, error) {
	registry.RLock()
	defer registry.RUnlock()
	a, ok := registry.alphabets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAlphabet, name)
	}
	return a, nil
}

// Register validates symbols and registers them under name. Names are never
// overwritten.
func Register(name, symbols string) (*Alphabet, error) {
	if name == "" {
		return nil, fmt.Errorf("empty alphabet name")
	}
	a, err := NewAlphabet(symbols)
	if err != nil {
		return nil, err
	}

	registry.Lock()
	defer registry.Unlock()
	if _, ok := registry.alphabets[name]; ok {
		return nil, fmt.Errorf("alphabet %s already registered", name)
	}
	registry.alphabets[name] = a
	return a, nil
}

// Names returns the registered alphabet names in sorted order.
func Names() []string {
	registry.RLock()
	names := make([]string, 0, len(registry.alphabets))
	for name := range registry.alphabets {
		names = append(names, name)
	}
	registry.RUnlock()

	sort.Strings(names)
	return names
}
