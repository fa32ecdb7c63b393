package sisoft

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

const samplePadstacks = `Padstack,Shape,Width (in),Diameter (in)
P1,Circle,"0,0000","0,0400"
P0,Circle,"0,0000","0,0000"
R1,Rectangle,"0,0500","0,0000"
NEG,Circle,"0,0000","-0,0100"
BAD,Circle,"0,0000","n/a"
SQ,RoundedRectangle,"0,0200","0,0300"
`

func TestParsePadstacks(t *testing.T) {
	table, err := ParsePadstacks(strings.NewReader(samplePadstacks))
	if err != nil {
		t.Fatalf("ParsePadstacks() error: %v", err)
	}

	tests := []struct {
		id     string
		want   string
		wantOK bool
	}{
		{id: "P1", want: "1.016", wantOK: true},
		{id: "R1", want: "1.27", wantOK: true},
		{id: "SQ", want: "0.508", wantOK: true},
		{id: "P0", wantOK: false},
		{id: "NEG", wantOK: false},
		{id: "BAD", wantOK: false},
		{id: "UNKNOWN", wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			got, ok := table.Lookup(tt.id)
			if ok != tt.wantOK {
				t.Fatalf("Lookup(%q) ok = %v, want %v", tt.id, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("Lookup(%q) = %q, want %q", tt.id, got, tt.want)
			}
		})
	}

	if got, want := table.IDs(), []string{"P1", "R1", "SQ"}; !reflect.DeepEqual(got, want) {
		t.Errorf("IDs() = %v, want %v", got, want)
	}
	if got := table.Skipped; !reflect.DeepEqual(got, []string{"BAD"}) {
		t.Errorf("Skipped = %v, want [BAD]", got)
	}
}

func TestParsePadstacksNeverKeepsNonPositive(t *testing.T) {
	input := "Padstack,Shape,Width (in),Diameter (in)\n" +
		"A,Circle,\"0\",\"0\"\n" +
		"B,Rectangle,\"-1,0\",\"5,0\"\n" +
		"C,Circle,\"9,0\",\"-0,00001\"\n" +
		"D,Circle,\"0\",\"0,000001\"\n"

	table, err := ParsePadstacks(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParsePadstacks() error: %v", err)
	}
	// D rounds to 0.0000 mm and is dropped with the others.
	if table.Len() != 0 {
		t.Errorf("Len() = %d, want 0 (ids %v)", table.Len(), table.IDs())
	}
}

func TestParsePadstacksBOMHeader(t *testing.T) {
	input := "\ufeffPadstack,Shape,Width (in),Diameter (in)\nP1,Circle,\"0\",\"0,1\"\n"
	table, err := ParsePadstacks(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParsePadstacks() error: %v", err)
	}
	if got, _ := table.Lookup("P1"); got != "2.54" {
		t.Errorf("Lookup(P1) = %q, want 2.54", got)
	}
}

func TestParsePadstacksInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty file", ""},
		{"missing columns", "Padstack,Shape\nP1,Circle\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParsePadstacks(strings.NewReader(tt.input)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

const samplePins = `RefDes,CAD Net,X (in),Y (in),Pin Number,Padstack
TP1,VCC_5V0,"1,0000","2,0000",1,P1
J1,GND,"0,5000","0,2500",2,R1
U1,SHORT
`

func TestParsePins(t *testing.T) {
	pins, err := ParsePins(strings.NewReader(samplePins))
	if err != nil {
		t.Fatalf("ParsePins() error: %v", err)
	}
	want := []PinRecord{
		{RefDes: "TP1", PinNumber: "1", Net: "VCC_5V0", X: "1,0000", Y: "2,0000", Padstack: "P1"},
		{RefDes: "J1", PinNumber: "2", Net: "GND", X: "0,5000", Y: "0,2500", Padstack: "R1"},
		{RefDes: "U1", Net: "SHORT", Missing: []string{ColPinNumber, ColX, ColY, ColPadstack}},
	}
	if !reflect.DeepEqual(pins, want) {
		t.Errorf("ParsePins() = %+v\nwant %+v", pins, want)
	}
}

func TestParsePinsMissingColumn(t *testing.T) {
	_, err := ParsePins(strings.NewReader("RefDes,CAD Net,X (in)\nTP1,N,\"1\"\n"))
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "Y (in)") {
		t.Errorf("error should name the missing column: %v", err)
	}
}

func TestReadFiles(t *testing.T) {
	dir := t.TempDir()
	padPath := filepath.Join(dir, "b_neutral_padstacks.csv")
	pinPath := filepath.Join(dir, "b_neutral_pins.csv")
	if err := os.WriteFile(padPath, []byte(samplePadstacks), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(pinPath, []byte(samplePins), 0o644); err != nil {
		t.Fatal(err)
	}

	table, err := ReadPadstacks(padPath)
	if err != nil || table.Len() != 3 {
		t.Errorf("ReadPadstacks() = %v, %v", table, err)
	}
	pins, err := ReadPins(pinPath)
	if err != nil || len(pins) != 3 {
		t.Errorf("ReadPins() = %d pins, %v", len(pins), err)
	}

	if _, err := ReadPadstacks(filepath.Join(dir, "missing.csv")); err == nil {
		t.Error("expected error for missing padstack file")
	}
	if _, err := ReadPins(filepath.Join(dir, "missing.csv")); err == nil {
		t.Error("expected error for missing pin file")
	}
}
