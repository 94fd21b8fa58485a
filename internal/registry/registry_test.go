// SPDX-License-Identifier: MPL-2.0

package registry

import (
	"errors"
	"testing"

	"github.com/runwith/runwith/pkg/runconfig"
)

func names(configs []runconfig.Configuration) []string {
	out := make([]string, len(configs))
	for i, c := range configs {
		out[i] = c.Name()
	}
	return out
}

func TestMemory_AddGet(t *testing.T) {
	t.Parallel()

	app := runconfig.NewApplicationConfiguration("server")
	reg, err := NewMemory(app)
	if err != nil {
		t.Fatalf("NewMemory() returned error: %v", err)
	}

	got, err := reg.Get("server")
	if err != nil || got != app {
		t.Fatalf("Get(server) = %v, %v", got, err)
	}
	if _, err := reg.Get("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrNotFound", err)
	}

	if err := reg.Add(runconfig.NewScriptConfiguration("server")); !errors.Is(err, ErrDuplicateName) {
		t.Errorf("Add(duplicate) error = %v, want ErrDuplicateName", err)
	}
	if err := reg.Add(runconfig.NewApplicationConfiguration("")); err == nil {
		t.Error("Add() with empty name should fail")
	}
	if err := reg.Add(nil); err == nil {
		t.Error("Add(nil) should fail")
	}
}

func TestMemory_TemporaryReplacement(t *testing.T) {
	t.Parallel()

	reg, _ := NewMemory()
	first := runconfig.NewApplicationConfiguration("server (with a.txt)")
	first.SetTemporary(true)
	if err := reg.Add(first); err != nil {
		t.Fatalf("Add(first) returned error: %v", err)
	}
	if err := reg.Select(first); err != nil {
		t.Fatalf("Select(first) returned error: %v", err)
	}

	second := runconfig.NewApplicationConfiguration("server (with a.txt)")
	second.SetTemporary(true)
	if err := reg.Add(second); err != nil {
		t.Fatalf("Add(second) returned error: %v", err)
	}

	if len(reg.All()) != 1 {
		t.Errorf("All() = %v, want a single entry", names(reg.All()))
	}
	if reg.Selected() != second {
		t.Error("replacing the selected temporary entry should move the selection")
	}
}

func TestMemory_Select(t *testing.T) {
	t.Parallel()

	app := runconfig.NewApplicationConfiguration("server")
	reg, _ := NewMemory(app)

	if reg.Selected() != nil {
		t.Error("Selected() should start nil")
	}
	if err := reg.Select(runconfig.NewApplicationConfiguration("other")); !errors.Is(err, ErrNotFound) {
		t.Errorf("Select(unregistered) error = %v, want ErrNotFound", err)
	}
	if err := reg.Select(app); err != nil || reg.Selected() != app {
		t.Errorf("Select(app) = %v, selected %v", err, reg.Selected())
	}
	if err := reg.Select(nil); err != nil || reg.Selected() != nil {
		t.Error("Select(nil) should clear the selection")
	}
}

func TestMemory_FactoryFor(t *testing.T) {
	t.Parallel()

	reg, _ := NewMemory()
	for _, typ := range []runconfig.TypeID{runconfig.TypeApplication, runconfig.TypeScript, runconfig.TypeCompound} {
		if f, ok := reg.FactoryFor(typ); !ok || f.Type() != typ {
			t.Errorf("FactoryFor(%s) = %v, %v", typ, f, ok)
		}
	}
	if _, ok := reg.FactoryFor("remote"); ok {
		t.Error("FactoryFor(remote) should be missing")
	}

	reg.RegisterFactory(runconfig.NewFactory("remote", func(name string) runconfig.Configuration {
		return runconfig.NewCompoundConfiguration(name)
	}))
	if _, ok := reg.FactoryFor("remote"); !ok {
		t.Error("RegisterFactory() did not register remote")
	}
}

func TestEligible(t *testing.T) {
	t.Parallel()

	temp := runconfig.NewApplicationConfiguration("server (with a.txt)")
	temp.SetTemporary(true)
	reg, err := NewMemory(
		runconfig.NewApplicationConfiguration("server"),
		runconfig.NewCompoundConfiguration("all"),
		temp,
		runconfig.NewScriptConfiguration("lint"),
	)
	if err != nil {
		t.Fatalf("NewMemory() returned error: %v", err)
	}

	got := names(Eligible(reg, []runconfig.TypeID{runconfig.TypeApplication, runconfig.TypeScript}))
	want := []string{"server", "lint"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("Eligible() = %v, want %v", got, want)
	}

	all := names(Eligible(reg, nil))
	if len(all) != 3 {
		t.Errorf("Eligible(nil) = %v, want every non-temporary entry", all)
	}
}
