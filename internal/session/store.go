package session

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-logr/logr"

	"github.com/danieljhkim/mealwiz/internal/kv"
)

// Phase is the coarse progress of a session.
type Phase string

const (
	// PhaseUninitialized means no slot is set.
	PhaseUninitialized Phase = "uninitialized"
	// PhaseInProgress means at least one slot is set but no plan exists yet.
	PhaseInProgress Phase = "in_progress"
	// PhaseCompleted means createdPlan is set.
	PhaseCompleted Phase = "completed"
)

// Store reads and writes wizard slots in a kv.Storage. There is no cache:
// every call goes to the storage.
type Store struct {
	storage kv.Storage
	log     logr.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for degraded reads and teardown.
func WithLogger(log logr.Logger) Option {
	return func(s *Store) {
		s.log = log
	}
}

// New creates a Store over storage.
func New(storage kv.Storage, opts ...Option) *Store {
	s := &Store{
		storage: storage,
		log:     logr.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the serialized value of slot. ok is false when the slot was
// never set, was cleared, holds null, or the storage cannot be read.
func (s *Store) Get(slot Slot) (string, bool) {
	if !slot.Valid() {
		return "", false
	}
	raw, ok, err := s.storage.GetItem(slot.Key())
	if err != nil {
		s.log.V(1).Info("storage read failed, treating slot as absent", "slot", slot, "error", err.Error())
		return "", false
	}
	if !ok || strings.TrimSpace(raw) == "null" {
		return "", false
	}
	return raw, true
}

// Value returns the decoded value of slot, typed as documented on the
// accessor for that slot. A stored value that no longer decodes or validates
// is reported as absent.
func (s *Store) Value(slot Slot) (any, bool) {
	raw, ok := s.Get(slot)
	if !ok {
		return nil, false
	}
	v, err := decodeSlot(slot, []byte(raw))
	if err != nil {
		s.log.V(1).Info("stored value is invalid, treating slot as absent", "slot", slot, "error", err.Error())
		return nil, false
	}
	return v, true
}

// Set overwrites slot with the JSON encoding of value.
func (s *Store) Set(slot Slot, value any) error {
	if !slot.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownSlot, slot)
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidValue, slot, err)
	}
	return s.put(slot, data)
}

// SetJSON decodes text as the slot's type, validates it, and stores the
// canonical encoding.
func (s *Store) SetJSON(slot Slot, text string) error {
	if !slot.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownSlot, slot)
	}
	return s.put(slot, []byte(text))
}

func (s *Store) put(slot Slot, data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		if slot != SlotClientID {
			return fmt.Errorf("%w: %s: null is only accepted for %s", ErrInvalidValue, slot, SlotClientID)
		}
		return s.write(slot, "null")
	}
	v, err := decodeSlot(slot, data)
	if err != nil {
		return err
	}
	canonical, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", slot, err)
	}
	return s.write(slot, string(canonical))
}

func (s *Store) write(slot Slot, value string) error {
	if err := s.storage.SetItem(slot.Key(), value); err != nil {
		return fmt.Errorf("%w: failed to write %s: %w", ErrStorageUnavailable, slot.Key(), err)
	}
	s.log.V(2).Info("slot written", "slot", slot, "bytes", len(value))
	return nil
}

// ClearAll deletes every slot. Backends implementing kv.BatchRemover delete
// them in one step; others are cleared one key at a time.
func (s *Store) ClearAll() error {
	keys := make([]string, 0, len(slotInfos))
	for _, slot := range Slots() {
		keys = append(keys, slot.Key())
	}

	if br, ok := s.storage.(kv.BatchRemover); ok {
		if err := br.RemoveItems(keys...); err != nil {
			return fmt.Errorf("%w: failed to clear session: %w", ErrStorageUnavailable, err)
		}
	} else {
		for _, key := range keys {
			if err := s.storage.RemoveItem(key); err != nil {
				return fmt.Errorf("%w: failed to clear %s: %w", ErrStorageUnavailable, key, err)
			}
		}
	}

	s.log.V(1).Info("session cleared", "slots", len(keys))
	return nil
}

// SetSlots returns the slots currently holding a value, in display order.
func (s *Store) SetSlots() []Slot {
	var out []Slot
	for _, slot := range Slots() {
		if _, ok := s.Get(slot); ok {
			out = append(out, slot)
		}
	}
	return out
}

// Phase derives the session's progress from the stored slots.
func (s *Store) Phase() Phase {
	if _, ok := s.CreatedPlan(); ok {
		return PhaseCompleted
	}
	if len(s.SetSlots()) > 0 {
		return PhaseInProgress
	}
	return PhaseUninitialized
}

// Snapshot reads every slot.
func (s *Store) Snapshot() Snapshot {
	var snap Snapshot
	if v, ok := s.CompletedSteps(); ok {
		snap.CompletedSteps = v
	}
	if v, ok := s.SelectedTags(); ok {
		snap.SelectedTags = v
	}
	if v, ok := s.Allergens(); ok {
		snap.Allergens = v
	}
	if v, ok := s.AllergensDescription(); ok {
		snap.AllergensDescription = &v
	}
	if v, ok := s.AllExcludedIngredients(); ok {
		snap.AllExcludedIngredients = v
	}
	if v, ok := s.ClientID(); ok {
		snap.ClientID = &v
	}
	if v, ok := s.FoodPreferences(); ok {
		snap.FoodPreferences = v
	}
	if v, ok := s.FavoriteFoods(); ok {
		snap.FavoriteFoods = v
	}
	if v, ok := s.SelectedRecipes(); ok {
		snap.SelectedRecipes = v
	}
	if v, ok := s.CreatedPlan(); ok {
		snap.CreatedPlan = v
	}
	if v, ok := s.Step(); ok {
		snap.Step = &v
	}
	if v, ok := s.Step3Loaded(); ok {
		snap.Step3Loaded = &v
	}
	return snap
}

// decodeSlot strictly decodes data into the Go type of slot and validates it.
func decodeSlot(slot Slot, data []byte) (any, error) {
	invalid := func(err error) error {
		return fmt.Errorf("%w: %s: %w", ErrInvalidValue, slot, err)
	}

	switch slot {
	case SlotCompletedSteps:
		var v StepSet
		if err := strictUnmarshal(data, &v); err != nil {
			return nil, invalid(err)
		}
		if v == nil {
			v = StepSet{}
		}
		if err := v.validate(); err != nil {
			return nil, invalid(err)
		}
		return v, nil

	case SlotSelectedTags, SlotAllergens, SlotAllExcludedIngredients, SlotFavoriteFoods, SlotSelectedRecipes:
		var v []string
		if err := strictUnmarshal(data, &v); err != nil {
			return nil, invalid(err)
		}
		if v == nil {
			v = []string{}
		}
		if err := validateIDs(string(slot), v); err != nil {
			return nil, invalid(err)
		}
		return v, nil

	case SlotAllergensDescription:
		var v string
		if err := strictUnmarshal(data, &v); err != nil {
			return nil, invalid(err)
		}
		return v, nil

	case SlotClientID:
		var v string
		if err := strictUnmarshal(data, &v); err != nil {
			return nil, invalid(err)
		}
		if err := validateID(string(slot), v); err != nil {
			return nil, invalid(err)
		}
		return v, nil

	case SlotFoodPreferences:
		var v FoodPreferences
		if err := strictUnmarshal(data, &v); err != nil {
			return nil, invalid(err)
		}
		if err := v.Validate(); err != nil {
			return nil, invalid(err)
		}
		return v, nil

	case SlotCreatedPlan:
		var v Plan
		if err := strictUnmarshal(data, &v); err != nil {
			return nil, invalid(err)
		}
		if err := v.Validate(); err != nil {
			return nil, invalid(err)
		}
		return v, nil

	case SlotStep:
		var v int
		if err := strictUnmarshal(data, &v); err != nil {
			return nil, invalid(err)
		}
		if v < 0 {
			return nil, invalid(fmt.Errorf("step %d must not be negative", v))
		}
		return v, nil

	case SlotStep3Loaded:
		var v bool
		if err := strictUnmarshal(data, &v); err != nil {
			return nil, invalid(err)
		}
		return v, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownSlot, slot)
}

func strictUnmarshal(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("unexpected data after value")
	}
	return nil
}
