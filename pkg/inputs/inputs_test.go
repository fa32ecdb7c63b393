package inputs

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestScanComplete(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir,
		"demo_neutral_padstacks.csv",
		"demo_neutral_pins.csv",
		"demo.brd",
		"demo.PCB",
		"notes.txt",
	)

	set, err := Scan(dir)
	if err != nil {
		t.Fatalf("Scan() error: %v", err)
	}
	if !set.Complete() {
		t.Fatalf("Complete() = false, missing %v", set.Missing())
	}

	tests := []struct {
		kind Kind
		want string
	}{
		{KindPadstacks, "demo_neutral_padstacks.csv"},
		{KindPins, "demo_neutral_pins.csv"},
		{KindPlacement, "demo.brd"},
		{KindPattern, "demo.PCB"},
	}
	for _, tt := range tests {
		if got := set.Path(tt.kind); got != filepath.Join(dir, tt.want) {
			t.Errorf("Path(%s) = %q, want %q", tt.kind, got, tt.want)
		}
	}

	if got := set.BoardName(); got != "demo" {
		t.Errorf("BoardName() = %q, want demo", got)
	}
	if got, want := set.OutputPath(), filepath.Join(dir, "output_demo_test-netlist.csv"); got != want {
		t.Errorf("OutputPath() = %q, want %q", got, want)
	}
}

func TestScanMissing(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "demo_neutral_pins.csv", "demo.pcb")

	set, err := Scan(dir)
	if err != nil {
		t.Fatalf("Scan() error: %v", err)
	}
	if set.Complete() {
		t.Fatal("Complete() = true with missing files")
	}

	// Pattern markers are case sensitive: demo.pcb does not count.
	want := []Kind{KindPadstacks, KindPlacement, KindPattern}
	if got := set.Missing(); !reflect.DeepEqual(got, want) {
		t.Errorf("Missing() = %v, want %v", got, want)
	}
}

func TestScanLastMatchWins(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.brd", "b.brd")

	set, err := Scan(dir)
	if err != nil {
		t.Fatal(err)
	}
	if got := set.BoardName(); got != "b" {
		t.Errorf("BoardName() = %q, want b", got)
	}
}

func TestScanSkipsDirectories(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "old.brd"), 0o755); err != nil {
		t.Fatal(err)
	}
	set, err := Scan(dir)
	if err != nil {
		t.Fatal(err)
	}
	if set.Path(KindPlacement) != "" {
		t.Errorf("directory matched as placement file")
	}
}

func TestScanMissingDirectory(t *testing.T) {
	if _, err := Scan(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestBoardNameWithDots(t *testing.T) {
	set := &Set{Dir: "in", Paths: map[Kind]string{KindPlacement: filepath.Join("in", "main.rev2.brd")}}
	if got := set.BoardName(); got != "main.rev2" {
		t.Errorf("BoardName() = %q, want main.rev2", got)
	}
}
