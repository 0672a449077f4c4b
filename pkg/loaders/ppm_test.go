package loaders

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestPPMHeader(t *testing.T) {
	c := core.NewCanvas(5, 3)
	if got := PPMHeader(c); got != "P3\n5 3\n255\n" {
		t.Errorf("Unexpected header %q", got)
	}
}

func TestWritePPM_PixelData(t *testing.T) {
	c := core.NewCanvas(5, 3)
	c.WritePixel(0, 0, core.Color(1.5, 0, 0))
	c.WritePixel(2, 1, core.Color(0, 0.5, 0))
	c.WritePixel(4, 2, core.Color(-0.5, 0, 1))

	var buf bytes.Buffer
	if err := WritePPM(&buf, c); err != nil {
		t.Fatalf("WritePPM failed: %v", err)
	}

	expected := "P3\n5 3\n255\n" +
		"255 0 0 0 0 0 0 0 0 0 0 0 0 0 0\n" +
		"0 0 0 0 0 0 0 128 0 0 0 0 0 0 0\n" +
		"0 0 0 0 0 0 0 0 0 0 0 0 0 0 255\n"
	if diff := cmp.Diff(expected, buf.String()); diff != "" {
		t.Errorf("Unexpected PPM (-want +got):\n%s", diff)
	}
}

func TestWritePPM_SplitsLongLines(t *testing.T) {
	c := core.NewCanvas(10, 2)
	for y := 0; y < 2; y++ {
		for x := 0; x < 10; x++ {
			c.WritePixel(x, y, core.Color(1, 0.8, 0.6))
		}
	}

	var buf bytes.Buffer
	if err := WritePPM(&buf, c); err != nil {
		t.Fatalf("WritePPM failed: %v", err)
	}

	lines := strings.Split(buf.String(), "\n")
	expected := []string{
		"255 204 153 255 204 153 255 204 153 255 204 153 255 204 153 255 204",
		"153 255 204 153 255 204 153 255 204 153 255 204 153",
		"255 204 153 255 204 153 255 204 153 255 204 153 255 204 153 255 204",
		"153 255 204 153 255 204 153 255 204 153 255 204 153",
		"",
	}
	if diff := cmp.Diff(expected, lines[3:]); diff != "" {
		t.Errorf("Unexpected pixel lines (-want +got):\n%s", diff)
	}
	for i, line := range lines {
		if len(line) > 70 {
			t.Errorf("Line %d has %d characters", i, len(line))
		}
	}
	if !strings.HasSuffix(buf.String(), "\n") {
		t.Errorf("Expected PPM to end with a newline")
	}
}

func TestReadPPM(t *testing.T) {
	data := `P3
# written by hand
2 2
# comment between header and data
100
100 0 0  0 100 0   # trailing comment
0 0 100  50 50 50
`
	c, err := ReadPPM(strings.NewReader(data))
	if err != nil {
		t.Fatalf("ReadPPM failed: %v", err)
	}
	if c.Width() != 2 || c.Height() != 2 {
		t.Fatalf("Expected 2x2 canvas, got %dx%d", c.Width(), c.Height())
	}

	tests := []struct {
		x, y     int
		expected core.Tuple
	}{
		{0, 0, core.Color(1, 0, 0)},
		{1, 0, core.Color(0, 1, 0)},
		{0, 1, core.Color(0, 0, 1)},
		{1, 1, core.Color(0.5, 0.5, 0.5)},
	}
	for _, tt := range tests {
		if got := c.PixelAt(tt.x, tt.y); !got.Equal(tt.expected) {
			t.Errorf("Pixel (%d, %d): expected %v, got %v", tt.x, tt.y, tt.expected, got)
		}
	}
}

func TestReadPPM_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty", ""},
		{"wrong magic", "P6\n1 1\n255\n0 0 0\n"},
		{"bad width", "P3\nx 1\n255\n0 0 0\n"},
		{"zero height", "P3\n1 0\n255\n"},
		{"too few values", "P3\n2 1\n255\n0 0 0 0\n"},
		{"bad value", "P3\n1 1\n255\n0 zero 0\n"},
		{"overflowing size", "P3\n3074457345618258603 1\n255\n0 0 0\n"},
		{"huge height", "P3\n2 4611686018427387904\n255\n0 0 0 0 0 0\n"},
		{"negative value", "P3\n1 1\n255\n0 -1 0\n"},
		{"value above max", "P3\n1 1\n15\n0 16 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadPPM(strings.NewReader(tt.data))
			if !errors.Is(err, ErrInvalidPPM) {
				t.Errorf("Expected ErrInvalidPPM, got %v", err)
			}
		})
	}
}

func TestPPM_SaveAndLoad(t *testing.T) {
	c := core.NewCanvas(3, 2)
	c.WritePixel(0, 0, core.Color(1, 0, 0))
	c.WritePixel(1, 0, core.Color(0.2, 0.4, 0.6))
	c.WritePixel(2, 1, core.Color(0, 0, 1))

	path := filepath.Join(t.TempDir(), "out.ppm")
	if err := SavePPM(path, c); err != nil {
		t.Fatalf("SavePPM failed: %v", err)
	}
	loaded, err := LoadPPM(path)
	if err != nil {
		t.Fatalf("LoadPPM failed: %v", err)
	}

	// 8-bit quantization is well within the comparison tolerance.
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			if got, want := loaded.PixelAt(x, y), c.PixelAt(x, y); !got.Equal(want) {
				t.Errorf("Pixel (%d, %d): expected %v, got %v", x, y, want, got)
			}
		}
	}
}
