package replay

import (
	"errors"
	"fmt"
	"log"
	"regexp"

	"github.com/quasilyte/gdata"
	"github.com/vmihailenco/msgpack/v5"
)

var (
	// ErrNotFound is returned when no recording has the requested name.
	ErrNotFound = errors.New("replay: not found")
	// ErrBadName is returned for names that cannot be used as storage keys.
	ErrBadName = errors.New("replay: invalid name")
)

var validName = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)

// Storage is the item store recordings are written to. *gdata.Manager
// implements it.
type Storage interface {
	LoadItem(key string) ([]byte, error)
	SaveItem(key string, data []byte) error
}

// Store saves and loads recordings by name.
type Store struct {
	storage Storage
}

// OpenStore opens the per-user data directory for appName.
func OpenStore(appName string) (*Store, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("open replay store: %w", err)
	}
	return NewStore(m), nil
}

func NewStore(s Storage) *Store {
	return &Store{storage: s}
}

func key(name string) (string, error) {
	if !validName.MatchString(name) {
		return "", fmt.Errorf("%w: %q", ErrBadName, name)
	}
	return "replay_" + name, nil
}

// Save writes rec under name, replacing any earlier recording.
func (s *Store) Save(name string, rec *Recording) error {
	k, err := key(name)
	if err != nil {
		return err
	}
	data, err := msgpack.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode replay %s: %w", name, err)
	}
	if err := s.storage.SaveItem(k, data); err != nil {
		return fmt.Errorf("save replay %s: %w", name, err)
	}
	log.Printf("[replay] saved %s: %d frames (%.1fs)", name, len(rec.Frames), rec.Duration())
	return nil
}

// Load reads the recording saved under name.
func (s *Store) Load(name string) (*Recording, error) {
	k, err := key(name)
	if err != nil {
		return nil, err
	}
	data, err := s.storage.LoadItem(k)
	if err != nil {
		return nil, fmt.Errorf("load replay %s: %w", name, err)
	}
	if data == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	var rec Recording
	if err := msgpack.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode replay %s: %w", name, err)
	}
	return &rec, nil
}
