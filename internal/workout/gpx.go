package workout

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/tkrajina/gpxgo/gpx"
)

var ErrGPXUnsupported = errors.New("gpx tracks carry no pool data for swimming")

// ReadGPX turns a recorded track into a sensor package. The track length is
// converted back to a step count so the package goes through the same
// formulas as one read from a pedometer.
func ReadGPX(code string, gpxBytes []byte, weight, height float64) (Package, error) {
	switch code {
	case CodeRunning, CodeWalking:
	case CodeSwimming:
		return Package{}, ErrGPXUnsupported
	default:
		return Package{}, &UnsupportedWorkoutTypeError{Code: code}
	}

	g, err := gpx.ParseBytes(gpxBytes)
	if err != nil {
		return Package{}, fmt.Errorf("parsing gpx: %w", err)
	}

	data := trackData(g.Length2D(), g.Duration(), weight)
	if code == CodeWalking {
		data = append(data, height)
	}
	return Package{Code: code, Data: data}, nil
}

// trackData converts meters and seconds to the action, duration and weight readings.
func trackData(meters, seconds, weight float64) []float64 {
	steps := math.Round(meters / lenStep)
	return []float64{steps, seconds / 3600, weight}
}

// gpxHash identifies a track so that importing it twice replaces the first import.
func gpxHash(gpxBytes []byte) string {
	sha := sha256.Sum256(gpxBytes)
	return hex.EncodeToString(sha[:])
}

func readGPXFile(gpxFile string) ([]byte, error) {
	info, err := os.Stat(gpxFile)
	if err != nil {
		return nil, fmt.Errorf("error reading gpx file: %w", err)
	}

	if info.IsDir() {
		return nil, fmt.Errorf("gpx file is a directory")
	}

	file, err := os.Open(gpxFile)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return io.ReadAll(file)
}
