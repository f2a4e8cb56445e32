// Package save is the persistence collaborator: a fixed bank of shader-text
// save slots backed by a JSON file. The engine side of the contract is only
// ShaderText/SetShaderText; slot numbering and the storage medium live here.
package save

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// SlotCount is the fixed number of save slots.
const SlotCount = 5

// Slot is one saved shader record.
type Slot struct {
	ShaderText string    `json:"shaderText"`
	Timestamp  time.Time `json:"timestamp"`
	Name       string    `json:"name"`
}

// Store holds the slot bank and its file path.
type Store struct {
	path  string
	slots [SlotCount]*Slot
}

// Open loads the slot file, or starts an empty bank when the file does not
// exist yet.
func Open(path string) (*Store, error) {
	s := &Store{path: path}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read save slots: %w", err)
	}
	if err := json.Unmarshal(data, &s.slots); err != nil {
		return nil, fmt.Errorf("failed to parse save slots: %w", err)
	}
	return s, nil
}

func (s *Store) checkIndex(i int) error {
	if i < 0 || i >= SlotCount {
		return fmt.Errorf("slot index %d out of range [0,%d)", i, SlotCount)
	}
	return nil
}

// Save writes shader text into a slot and persists the bank.
func (s *Store) Save(i int, name, shaderText string) error {
	if err := s.checkIndex(i); err != nil {
		return err
	}
	s.slots[i] = &Slot{
		ShaderText: shaderText,
		Timestamp:  time.Now(),
		Name:       name,
	}
	return s.flush()
}

// Load returns the slot at i, or an error when the slot is empty.
func (s *Store) Load(i int) (*Slot, error) {
	if err := s.checkIndex(i); err != nil {
		return nil, err
	}
	if s.slots[i] == nil {
		return nil, fmt.Errorf("slot %d is empty", i)
	}
	return s.slots[i], nil
}

// Clear empties a slot and persists the bank.
func (s *Store) Clear(i int) error {
	if err := s.checkIndex(i); err != nil {
		return err
	}
	s.slots[i] = nil
	return s.flush()
}

// List returns all slots; empty slots are nil.
func (s *Store) List() [SlotCount]*Slot {
	return s.slots
}

func (s *Store) flush() error {
	data, err := json.MarshalIndent(&s.slots, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode save slots: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write save slots: %w", err)
	}
	return nil
}
