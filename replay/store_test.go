package replay

import (
	"errors"
	"testing"

	"github.com/automoto/jumpsync/shared/gamemath"
	"github.com/automoto/jumpsync/shared/movement"
)

type memStorage map[string][]byte

func (m memStorage) LoadItem(key string) ([]byte, error) {
	return m[key], nil
}

func (m memStorage) SaveItem(key string, data []byte) error {
	m[key] = data
	return nil
}

type failingStorage struct{}

func (failingStorage) LoadItem(string) ([]byte, error) { return nil, errors.New("disk gone") }
func (failingStorage) SaveItem(string, []byte) error   { return errors.New("disk gone") }

func TestStoreSaveLoad(t *testing.T) {
	mem := memStorage{}
	s := NewStore(mem)

	r := NewRecorder("playground", gamemath.Vector{X: 2, Y: 1}, dt)
	r.Record(movement.InputSample{Jump: true, Run: true})
	r.Record(movement.InputSample{Crouch: true})

	if err := s.Save("best-run", r.Recording()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, ok := mem["replay_best-run"]; !ok {
		t.Errorf("keys = %v", mem)
	}

	got, err := s.Load("best-run")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Level != "playground" || got.Start.X != 2 || got.Step != dt || len(got.Frames) != 2 {
		t.Fatalf("loaded %+v", got)
	}
	if !got.Frames[1].Input().Crouch {
		t.Error("frame contents lost")
	}
}

func TestStoreErrors(t *testing.T) {
	s := NewStore(memStorage{})

	tests := []struct {
		name string
		want error
	}{
		{"missing", ErrNotFound},
		{"", ErrBadName},
		{"../escape", ErrBadName},
	}
	for _, tt := range tests {
		if _, err := s.Load(tt.name); !errors.Is(err, tt.want) {
			t.Errorf("Load(%q) err = %v, want %v", tt.name, err, tt.want)
		}
	}

	if err := s.Save("bad name", &Recording{}); !errors.Is(err, ErrBadName) {
		t.Errorf("Save with a space err = %v", err)
	}

	broken := NewStore(failingStorage{})
	if err := broken.Save("x", &Recording{}); err == nil {
		t.Error("storage failure swallowed on save")
	}
	if _, err := broken.Load("x"); err == nil || errors.Is(err, ErrNotFound) {
		t.Errorf("storage failure on load = %v", err)
	}
}
