package prefabs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadActorSpecEmbedded(t *testing.T) {
	spec, err := LoadActorSpec()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if spec.Name != "player" || len(spec.Weapons) == 0 {
		t.Fatalf("unexpected spec %+v", spec)
	}
	if spec.Tuning.Tuning().DodgeDuration <= 0 {
		t.Fatalf("expected a dodge duration")
	}
	for _, sk := range spec.Skills {
		if _, err := LoadScript(sk.Script); err != nil {
			t.Fatalf("skill %s: %v", sk.Name, err)
		}
	}
}

func TestDiskOverride(t *testing.T) {
	dir := t.TempDir()
	old := Dir
	Dir = dir
	t.Cleanup(func() { Dir = old })

	data := []byte("name: override\ntuning:\n  move_speed: 1\n")
	if err := os.WriteFile(filepath.Join(dir, ActorFile), data, 0o644); err != nil {
		t.Fatal(err)
	}

	spec, err := LoadActorSpec()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if spec.Name != "override" || spec.Tuning.MoveSpeed != 1 {
		t.Fatalf("expected the disk copy, got %+v", spec)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		yaml string
		ok   bool
	}{
		{"valid", "weapons:\n  - name: sword\n    chargeable: true\n    charge_duration: 0.5\n", true},
		{"negative_tuning", "tuning:\n  dodge_duration: -1\n", false},
		{"unnamed_weapon", "weapons:\n  - chargeable: false\n", false},
		{"duplicate_weapon", "weapons:\n  - name: a\n  - name: a\n", false},
		{"chargeable_without_duration", "weapons:\n  - name: a\n    chargeable: true\n", false},
		{"skill_without_script", "skills:\n  - name: whirl\n", false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := ParseActorSpec([]byte(c.yaml))
			if c.ok && err != nil {
				t.Fatalf("unexpected error %v", err)
			}
			if !c.ok && !errors.Is(err, ErrInvalidSpec) {
				t.Fatalf("expected ErrInvalidSpec, got %v", err)
			}
		})
	}
}

func TestCleanScriptPath(t *testing.T) {
	cases := map[string]string{
		"whirl.tengo":                 "scripts/whirl.tengo",
		"scripts/whirl.tengo":         "scripts/whirl.tengo",
		"prefabs/scripts/whirl.tengo": "scripts/whirl.tengo",
	}
	for in, want := range cases {
		if got := cleanScriptPath(in); got != want {
			t.Errorf("cleanScriptPath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		path  string
		asset Asset
		name  string
	}{
		{"actor.yaml", AssetActor, "actor.yaml"},
		{"/tmp/dev/prefabs/actor.yaml", AssetActor, "actor.yaml"},
		{"prefabs/scripts/whirl.tengo", AssetScript, "whirl.tengo"},
		{"scripts/GUARD.TENGO", AssetScript, "GUARD.TENGO"},
		{"enemy.yaml", AssetNone, ""},
		{"notes.txt", AssetNone, ""},
	}
	for _, c := range cases {
		t.Run(c.path, func(t *testing.T) {
			asset, name := Classify(c.path)
			if asset != c.asset || name != c.name {
				t.Fatalf("expected %s %q, got %s %q", c.asset, c.name, asset, name)
			}
		})
	}
}

func TestLoadout(t *testing.T) {
	l := NewLoadout([]WeaponSpec{
		{Name: "sword", Chargeable: true, ChargeDuration: 0.5, AttackDuration: 0.3},
		{Name: "dagger", AttackDuration: 0.1},
	})
	if l.Current().Name() != "sword" || !l.Current().CanChargeAttack() {
		t.Fatalf("expected sword first")
	}
	if l.Next().Name() != "dagger" {
		t.Fatalf("expected dagger")
	}
	if l.Next().Name() != "sword" {
		t.Fatalf("Next should wrap around")
	}
	if _, ok := l.Select("axe"); ok {
		t.Fatalf("unknown weapon should not be selected")
	}
	if w, ok := l.Select("dagger"); !ok || w.AttackDuration() != 0.1 {
		t.Fatalf("expected dagger to be selected")
	}

	empty := NewLoadout(nil)
	if empty.Len() != 1 || empty.Current().CanChargeAttack() {
		t.Fatalf("empty loadout should hold an unarmed weapon")
	}
}

func TestWatcherBatchesChanges(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(50*time.Millisecond, dir)
	if err != nil {
		t.Fatalf("watcher: %v", err)
	}
	defer w.Close()

	writes := []struct {
		name string
		data string
	}{
		{"notes.txt", "x"},
		{"whirl.tengo", "cast := func(engine, skill) { return true }"},
		{ActorFile, "name: x\n"},
		{ActorFile, "name: y\n"},
	}
	for _, wr := range writes {
		if err := os.WriteFile(filepath.Join(dir, wr.name), []byte(wr.data), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	var got []Change
	timeout := time.After(5 * time.Second)
	for len(got) < 2 {
		select {
		case c := <-w.Changes:
			got = append(got, c)
		case err := <-w.Errors:
			t.Fatalf("watch error: %v", err)
		case <-timeout:
			t.Fatalf("expected two changes, got %+v", got)
		}
	}

	if got[0].Asset != AssetActor || got[0].Name != ActorFile {
		t.Fatalf("expected the actor first, got %+v", got[0])
	}
	if got[1].Asset != AssetScript || got[1].Name != "whirl.tengo" {
		t.Fatalf("expected the script second, got %+v", got[1])
	}
	select {
	case c := <-w.Changes:
		t.Fatalf("repeated writes should be batched, got extra %+v", c)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcherCloseTwice(t *testing.T) {
	w, err := NewWatcher(0, t.TempDir())
	if err != nil {
		t.Fatalf("watcher: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
	if _, ok := <-w.Changes; ok {
		t.Fatalf("changes channel should be closed")
	}
}
