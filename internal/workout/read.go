package workout

import (
	"errors"
	"fmt"
)

const (
	CodeSwimming = "SWM"
	CodeRunning  = "RUN"
	CodeWalking  = "WLK"
)

var (
	// ErrUnsupportedWorkoutType matches any *UnsupportedWorkoutTypeError.
	ErrUnsupportedWorkoutType = errors.New("unsupported workout type")
	// ErrPackageSize is returned when a package has the wrong number of readings for its code.
	ErrPackageSize = errors.New("wrong number of readings in package")
)

type UnsupportedWorkoutTypeError struct {
	Code string
}

func (e *UnsupportedWorkoutTypeError) Error() string {
	return fmt.Sprintf("unsupported workout type %q", e.Code)
}

func (e *UnsupportedWorkoutTypeError) Is(target error) bool {
	return target == ErrUnsupportedWorkoutType
}

var packageSizes = map[string]int{
	CodeSwimming: 5,
	CodeRunning:  3,
	CodeWalking:  4,
}

// ReadPackage builds the calculator for a sensor package. The readings are
// taken in order: action, duration, weight, then height for walking or pool
// length and pool count for swimming.
func ReadPackage(code string, data []float64) (Calculator, error) {
	size, ok := packageSizes[code]
	if !ok {
		return nil, &UnsupportedWorkoutTypeError{Code: code}
	}
	if len(data) != size {
		return nil, fmt.Errorf("%w: %s wants %d, got %d", ErrPackageSize, code, size, len(data))
	}

	t := Training{
		Action:   data[0],
		Duration: data[1],
		Weight:   data[2],
	}

	switch code {
	case CodeSwimming:
		return Swimming{Training: t, LengthPool: data[3], CountPool: data[4]}, nil
	case CodeWalking:
		return SportsWalking{Training: t, Height: data[3]}, nil
	default:
		return Running{Training: t}, nil
	}
}

// Package is a workout code with its raw readings.
type Package struct {
	Code string    `json:"code" yaml:"code"`
	Data []float64 `json:"data" yaml:"data"`
}

// SamplePackages is the sensor data processed when nothing else is configured.
func SamplePackages() []Package {
	return []Package{
		{Code: CodeSwimming, Data: []float64{720, 1, 80, 25, 40}},
		{Code: CodeRunning, Data: []float64{15000, 1, 75}},
		{Code: CodeWalking, Data: []float64{9000, 1, 75, 180}},
	}
}
