package colour

import (
	"math"
	"reflect"
	"testing"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		in      string
		want    RGB
		wantErr bool
	}{
		{in: "#FF7F7F", want: RGB{255, 127, 127}},
		{in: "#ff7f7f", want: RGB{255, 127, 127}},
		{in: "#000000", want: RGB{0, 0, 0}},
		{in: "#FFFFFF", want: RGB{255, 255, 255}},
		{in: "ff7f7f", wantErr: true},
		{in: "#FFF", wantErr: true},
		{in: "#ZZZZZZ", wantErr: true},
		{in: "", wantErr: true},
		{in: " #FF7F7F", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHex(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseHex(%q): expected error, got %v", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseHex(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseHex(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestHexRoundTrip(t *testing.T) {
	c := RGB{255, 127, 127}
	if c.Hex() != "#FF7F7F" {
		t.Errorf("Hex: got %q, want #FF7F7F", c.Hex())
	}
	back, err := ParseHex(c.Hex())
	if err != nil || back != c {
		t.Errorf("ParseHex(Hex()) = %v, %v", back, err)
	}
	if c.String() != "255,127,127" {
		t.Errorf("String: got %q", c.String())
	}
}

func TestParseTriplet(t *testing.T) {
	got, err := ParseTriplet(" 255, 215 ,0")
	if err != nil {
		t.Fatalf("ParseTriplet: %v", err)
	}
	if got != (RGB{255, 215, 0}) {
		t.Errorf("got %v", got)
	}

	for _, bad := range []string{"", "255,255", "a,b,c", "256,0,0", "-1,0,0"} {
		if _, err := ParseTriplet(bad); err == nil {
			t.Errorf("ParseTriplet(%q): expected error", bad)
		}
	}
}

func TestParse(t *testing.T) {
	want := RGB{212, 175, 55}
	for _, in := range []string{"212,175,55", " rgb(212, 175, 55) ", "RGB(212,175,55)", "#D4AF37", "d4af37"} {
		got, err := Parse(in)
		if err != nil {
			t.Errorf("Parse(%q): %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("Parse(%q) = %v, want %v", in, got, want)
		}
	}

	for _, bad := range []string{"", "rgb(1,2)", "#D4AF3", "gold", "300,0,0"} {
		if _, err := Parse(bad); err == nil {
			t.Errorf("Parse(%q): expected error", bad)
		}
	}
}

func TestDistanceProperties(t *testing.T) {
	samples := []RGB{{0, 0, 0}, {255, 255, 255}, {255, 127, 127}, {12, 200, 99}, {128, 0, 32}}

	for _, a := range samples {
		if d := Distance(a, a); d != 0 {
			t.Errorf("d(%v,%v) = %v, want 0", a, a, d)
		}
		for _, b := range samples {
			if Distance(a, b) != Distance(b, a) {
				t.Errorf("d(%v,%v) != d(%v,%v)", a, b, b, a)
			}
		}
	}

	if got := Distance(RGB{0, 0, 0}, RGB{255, 255, 255}); math.Abs(got-MaxDistance) > 1e-9 {
		t.Errorf("black-white distance = %v, want %v", got, MaxDistance)
	}
	if math.Abs(MaxDistance-441.6729559300637) > 1e-9 {
		t.Errorf("MaxDistance = %v", MaxDistance)
	}
	if SquaredDistance(RGB{1, 2, 3}, RGB{4, 6, 3}) != 25 {
		t.Error("SquaredDistance: expected 25")
	}
}

func TestAverage(t *testing.T) {
	if _, ok := Average(); ok {
		t.Error("Average(): expected false for no colours")
	}
	got, ok := Average(RGB{255, 0, 0}, RGB{255, 255, 255})
	if !ok {
		t.Fatal("Average: expected ok")
	}
	if got != (RGB{255, 128, 128}) {
		t.Errorf("Average = %v, want {255 128 128}", got)
	}
}

func TestSplitComponents(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"Red", []string{"Red"}},
		{"Red and White", []string{"Red", "White"}},
		{"Gold/ Silver", []string{"Gold", "Silver"}},
		{"Blue & Green", []string{"Blue", "Green"}},
		{"Peach, Mint", []string{"Peach", "Mint"}},
		{"Sand", []string{"Sand"}},
		{"Red AND Gold", []string{"Red", "Gold"}},
		{"  ", nil},
	}
	for _, tt := range tests {
		if got := SplitComponents(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("SplitComponents(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	if !IsComposite("white and gold") {
		t.Error("IsComposite(white and gold) = false")
	}
	if IsComposite("sand") {
		t.Error("IsComposite(sand) = true")
	}
}

func TestKey(t *testing.T) {
	if Key("  Tamil Hindu Wedding ") != Key("tamil hindu wedding") {
		t.Error("Key should ignore case and surrounding whitespace")
	}
	if Equal("Tamil Wedding", "Tamil Hindu Wedding") {
		t.Error("Equal must not match partial names")
	}
	if Equal("navy  blue", "navy blue") {
		t.Error("Equal must keep interior whitespace significant")
	}
}

func TestNamed(t *testing.T) {
	c, ok := Named(" Gold ")
	if !ok || c != (RGB{255, 215, 0}) {
		t.Errorf("Named(Gold) = %v, %v", c, ok)
	}
	if _, ok := Named("unobtainium"); ok {
		t.Error("Named(unobtainium): expected miss")
	}
}
