package loaders

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// ErrInvalidPPM is returned when PPM data cannot be parsed
var ErrInvalidPPM = errors.New("invalid PPM data")

const (
	ppmMaxValue   = 255
	ppmLineLength = 70
)

// PPMHeader returns the plain (P3) PPM header for c
func PPMHeader(c *core.Canvas) string {
	return fmt.Sprintf("P3\n%d %d\n%d\n", c.Width(), c.Height(), ppmMaxValue)
}

// WritePPM writes c as a plain PPM. Channels are clamped to [0, 1] and
// scaled to 0..255. Each canvas row starts a new line and no line is
// longer than 70 characters.
func WritePPM(w io.Writer, c *core.Canvas) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(PPMHeader(c)); err != nil {
		return fmt.Errorf("while writing PPM header: %w", err)
	}

	var line strings.Builder
	for y := 0; y < c.Height(); y++ {
		line.Reset()
		for x := 0; x < c.Width(); x++ {
			p := c.PixelAt(x, y)
			for _, v := range [3]float64{p.R(), p.G(), p.B()} {
				token := strconv.Itoa(scaleChannel(v, ppmMaxValue))
				if line.Len() > 0 && line.Len()+1+len(token) > ppmLineLength {
					line.WriteByte('\n')
					bw.WriteString(line.String())
					line.Reset()
				}
				if line.Len() > 0 {
					line.WriteByte(' ')
				}
				line.WriteString(token)
			}
		}
		line.WriteByte('\n')
		if _, err := bw.WriteString(line.String()); err != nil {
			return fmt.Errorf("while writing PPM row %d: %w", y, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("while flushing PPM data: %w", err)
	}
	return nil
}

// SavePPM writes c to the named file as a plain PPM
func SavePPM(filename string, c *core.Canvas) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create PPM file: %w", err)
	}
	if err := WritePPM(f, c); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadPPM parses a plain (P3) PPM. Comments starting with '#' are ignored
// and values are rescaled from the file's maximum value to [0, 1].
func ReadPPM(r io.Reader) (*core.Canvas, error) {
	tokens, err := ppmTokens(r)
	if err != nil {
		return nil, err
	}
	if len(tokens) < 4 {
		return nil, fmt.Errorf("%w: truncated header", ErrInvalidPPM)
	}
	if tokens[0] != "P3" {
		return nil, fmt.Errorf("%w: unsupported magic number %q", ErrInvalidPPM, tokens[0])
	}

	header := make([]int, 3)
	for i, name := range []string{"width", "height", "max value"} {
		v, err := strconv.Atoi(tokens[i+1])
		if err != nil || v <= 0 {
			return nil, fmt.Errorf("%w: bad %s %q", ErrInvalidPPM, name, tokens[i+1])
		}
		header[i] = v
	}
	width, height, maxValue := header[0], header[1], header[2]

	// Divide instead of multiplying so huge headers cannot overflow.
	values := tokens[4:]
	if len(values)/3/width < height {
		return nil, fmt.Errorf("%w: %dx%d image needs more than %d color values", ErrInvalidPPM, width, height, len(values))
	}

	c := core.NewCanvas(width, height)
	for i := 0; i < width*height; i++ {
		var rgb [3]float64
		for j := range rgb {
			v, err := strconv.Atoi(values[i*3+j])
			if err != nil {
				return nil, fmt.Errorf("%w: bad color value %q", ErrInvalidPPM, values[i*3+j])
			}
			if v < 0 || v > maxValue {
				return nil, fmt.Errorf("%w: color value %d outside 0..%d", ErrInvalidPPM, v, maxValue)
			}
			rgb[j] = float64(v) / float64(maxValue)
		}
		c.WritePixel(i%width, i/width, core.Color(rgb[0], rgb[1], rgb[2]))
	}
	return c, nil
}

// LoadPPM reads a plain PPM from the named file
func LoadPPM(filename string) (*core.Canvas, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open PPM file: %w", err)
	}
	defer f.Close()
	return ReadPPM(f)
}

func ppmTokens(r io.Reader) ([]string, error) {
	var tokens []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		tokens = append(tokens, strings.Fields(line)...)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("while reading PPM data: %w", err)
	}
	return tokens, nil
}

// scaleChannel clamps v to [0, 1] and maps it onto 0..maxValue
func scaleChannel(v float64, maxValue int) int {
	if math.IsNaN(v) {
		return 0
	}
	v = math.Max(0, math.Min(1, v))
	return int(math.Round(v * float64(maxValue)))
}
