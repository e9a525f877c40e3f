package store

import (
	"testing"
	"time"

	"github.com/lazypower/leitner/internal/leitner"
)

func TestFieldStoreGetMissing(t *testing.T) {
	db := testDB(t)

	v, ok, err := db.Profile("alice").Get(leitner.KeyBoxes)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok || v != nil {
		t.Errorf("Get missing = %q, %v; want nil, false", v, ok)
	}
}

func TestFieldStoreSetOverwrites(t *testing.T) {
	db := testDB(t)
	f := db.Profile("alice")

	if err := f.Set("k", []byte("one")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := f.Set("k", []byte("two")); err != nil {
		t.Fatalf("Set again: %v", err)
	}
	v, ok, err := f.Get("k")
	if err != nil || !ok {
		t.Fatalf("Get: %v, %v", ok, err)
	}
	if string(v) != "two" {
		t.Errorf("value = %q, want two", v)
	}
}

func TestFieldStoreProfilesIsolated(t *testing.T) {
	db := testDB(t)
	db.Profile("alice").Set("k", []byte("a"))
	db.Profile("bob").Set("k", []byte("b"))

	v, _, _ := db.Profile("alice").Get("k")
	if string(v) != "a" {
		t.Errorf("alice value = %q, want a", v)
	}

	profiles, err := db.Profiles()
	if err != nil {
		t.Fatalf("Profiles: %v", err)
	}
	if len(profiles) != 2 || profiles[0] != "alice" || profiles[1] != "bob" {
		t.Errorf("profiles = %v, want [alice bob]", profiles)
	}
}

func TestSchedulerOverFieldStore(t *testing.T) {
	db := testDB(t)
	clock := &leitner.FixedClock{T: time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)}
	opts := leitner.Options{Clock: clock, Location: time.UTC}

	s, err := leitner.New(db.Profile("alice"), opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	id := leitner.NewCardID("Geography", "Capitals", "Capital of Peru?")
	if _, err := s.RecordAnswer(id, leitner.Great); err != nil {
		t.Fatalf("RecordAnswer: %v", err)
	}
	if err := s.Pin([]leitner.CardID{id}); err != nil {
		t.Fatalf("Pin: %v", err)
	}

	reloaded, err := leitner.New(db.Profile("alice"), opts)
	if err != nil {
		t.Fatalf("New reloaded: %v", err)
	}
	if b, ok := reloaded.Box(id); !ok || b != 1 {
		t.Errorf("box = %d, %v; want 1, true", b, ok)
	}
	if !reloaded.IsFocusActive() {
		t.Error("focus queue not restored")
	}

	other, _ := leitner.New(db.Profile("bob"), opts)
	if _, ok := other.Box(id); ok {
		t.Error("bob sees alice's card")
	}
}
