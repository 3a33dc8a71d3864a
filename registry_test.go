package allhicmerge_test

import (
	"testing"

	"github.com/tanghaibao/allhic-merge"
)

func TestRegistryInternAssignsDenseKeys(t *testing.T) {
	r := allhicmerge.NewContigIDRegistry()
	a, _ := r.Intern("contig1")
	b, _ := r.Intern("contig2")
	c, _ := r.Intern("contig1")

	if a != 0 || b != 1 {
		t.Fatalf("got keys %d, %d; want 0, 1", a, b)
	}
	if c != a {
		t.Errorf("re-interning `contig1` returned %d; want %d", c, a)
	}
}

func TestRegistryLockRejectsUnseenNames(t *testing.T) {
	r := allhicmerge.NewContigIDRegistry()
	r.Intern("contig1")
	r.Lock()

	if _, err := r.Intern("contig1"); err != nil {
		t.Errorf("re-interning an already-known name after Lock returned %v; want nil", err)
	}
	if _, err := r.Intern("contig2"); err == nil {
		t.Error("interning a new name after Lock returned nil error; want *LockedError")
	}
}

func TestRegistryNameIsTotalOnAllocatedKeys(t *testing.T) {
	r := allhicmerge.NewContigIDRegistry()
	key, _ := r.Intern("contig1")

	name, err := r.Name(key)
	if err != nil || name != "contig1" {
		t.Errorf("Name(%d) = %q, %v; want \"contig1\", nil", key, name, err)
	}

	if _, err := r.Name(99); err == nil {
		t.Error("Name on an unallocated key returned nil error; want *UnknownKeyError")
	}
}
