// Package export writes digitized trajectories as delimited text.
package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/soocke/trackpoint-go/domain/geometry"
)

var (
	ErrNoPoints       = errors.New("no points")
	ErrLengthMismatch = errors.New("length mismatch")
)

// Header names the three columns.
var Header = []string{"temps", "x", "y"}

func check(times []float64, points []geometry.Point) error {
	if len(points) == 0 {
		return ErrNoPoints
	}
	if len(times) != len(points) {
		return fmt.Errorf("%w: %d times, %d points", ErrLengthMismatch, len(times), len(points))
	}
	return nil
}

func num(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

// Write emits the header and one row per point, separated by sep.
func Write(w io.Writer, times []float64, points []geometry.Point, sep rune) error {
	if err := check(times, points); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	cw.Comma = sep
	if err := cw.Write(Header); err != nil {
		return err
	}
	for i, p := range points {
		if err := cw.Write([]string{num(times[i]), num(p.X), num(p.Y)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Format returns the text Write would produce.
func Format(times []float64, points []geometry.Point, sep rune) (string, error) {
	var buf bytes.Buffer
	if err := Write(&buf, times, points, sep); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// WriteFile saves the trajectory at path. Nothing is created when the input
// is rejected, and a failed write leaves no partial file behind.
func WriteFile(path string, times []float64, points []geometry.Point, sep rune) error {
	if err := check(times, points); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	name := tmp.Name()
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		os.Remove(name)
		return fmt.Errorf("export: %w", err)
	}
	if err := Write(tmp, times, points, sep); err != nil {
		tmp.Close()
		os.Remove(name)
		return fmt.Errorf("export: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return fmt.Errorf("export: %w", err)
	}
	if err := os.Rename(name, path); err != nil {
		os.Remove(name)
		return fmt.Errorf("export: %w", err)
	}
	return nil
}

// Table renders the trajectory as aligned columns for display.
func Table(times []float64, points []geometry.Point) (string, error) {
	if err := check(times, points); err != nil {
		return "", err
	}
	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "%s\t%s\t%s\t\n", Header[0], Header[1], Header[2])
	for i, p := range points {
		fmt.Fprintf(tw, "%s\t%s\t%s\t\n", num(times[i]), num(p.X), num(p.Y))
	}
	if err := tw.Flush(); err != nil {
		return "", err
	}
	return sb.String(), nil
}
