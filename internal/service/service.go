package service

import (
	"errors"
	"fmt"
	"github.com/treeforest/basex"
	"github.com/treeforest/basex/dao"
	log "github.com/treeforest/logger"
)

var (
	ErrBuiltin      = errors.New("alphabet is builtin")
	ErrNoStore      = errors.New("alphabet store not configured")
	ErrNegativeSize = errors.New("negative random size")
)

// Entry describes one alphabet known to the service.
type Entry struct {
	Name    string `json:"name"`
	Symbols string `json:"symbols"`
	Builtin bool   `json:"builtin"`
}

// Service resolves alphabets by name, first from the process registry and
// then from the store, and runs the codec with them.
type Service struct {
	store *dao.DAO
}

// New returns a Service. store may be nil, leaving only registered alphabets.
func New(store *dao.DAO) *Service {
	return &Service{store: store}
}

func (s *Service) Resolve(name string) (*basex.Alphabet, error) {
	a, err := basex.Lookup(name)
	if err == nil {
		return a, nil
	}
	if s.store == nil {
		return nil, err
	}

	r, err := s.store.Get(name)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", basex.ErrUnknownAlphabet, name)
		}
		return nil, err
	}
	return basex.NewAlphabet(r.Symbols)
}

func (s *Service) Encode(name string, data []byte) (string, error) {
	a, err := s.Resolve(name)
	if err != nil {
		return "", err
	}
	return a.Encode(data), nil
}

func (s *Service) Decode(name, encoded string) ([]byte, error) {
	a, err := s.Resolve(name)
	if err != nil {
		return nil, err
	}
	return a.Decode(encoded)
}

// Random encodes n random bytes with the named alphabet.
func (s *Service) Random(name string, n int) (string, error) {
	if n < 0 {
		return "", fmt.Errorf("%w: %d", ErrNegativeSize, n)
	}
	a, err := s.Resolve(name)
	if err != nil {
		return "", err
	}
	return a.Random(n)
}

// Alphabets lists the registered alphabets followed by the stored ones.
func (s *Service) Alphabets() ([]Entry, error) {
	entries := make([]Entry, 0)
	for _, name := range basex.Names() {
		a, err := basex.Lookup(name)
		if err != nil {
			continue
		}
		entries = append(entries, Entry{Name: name, Symbols: a.String(), Builtin: true})
	}
	if s.store == nil {
		return entries, nil
	}

	records, err := s.store.List()
	if err != nil {
		return nil, err
	}
	for _, r := range records {
		entries = append(entries, Entry{Name: r.Name, Symbols: r.Symbols})
	}
	return entries, nil
}

// Register stores a custom alphabet. Registered names cannot be shadowed,
// and stored alphabets must be ASCII so they can be served over JSON.
func (s *Service) Register(name, symbols string) error {
	if s.store == nil {
		return ErrNoStore
	}
	if _, err := basex.Lookup(name); err == nil {
		return fmt.Errorf("%w: %s", ErrBuiltin, name)
	}
	a, err := basex.NewAlphabet(symbols)
	if err != nil {
		return err
	}
	if !a.IsASCII() {
		return fmt.Errorf("%w: %s", basex.ErrAlphabetNotASCII, name)
	}
	if err := s.store.Put(name, symbols); err != nil {
		return err
	}
	log.Infof("register alphabet %s (base %d)", name, len(symbols))
	return nil
}

func (s *Service) Remove(name string) error {
	if s.store == nil {
		return ErrNoStore
	}
	if err := s.store.Delete(name); err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return fmt.Errorf("%w: %s", basex.ErrUnknownAlphabet, name)
		}
		return err
	}
	log.Infof("remove alphabet %s", name)
	return nil
}
