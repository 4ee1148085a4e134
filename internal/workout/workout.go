package workout

import (
	"fmt"
	"math"
)

const (
	mInKm      = 1000
	minInHour  = 60
	lenStep    = 0.65
	runCal1    = 18
	runCal2    = 20
	walkCal1   = 0.035
	walkCal2   = 0.029
	swimCalAdd = 1.1
)

// Calculator is implemented by every workout variant.
type Calculator interface {
	Distance() float64
	MeanSpeed() float64
	Calories() float64
	Hours() float64
	Label() string
}

// Summary is the computed result for a single workout.
type Summary struct {
	Type     string  `json:"workout_type"`
	Duration float64 `json:"duration"`
	Distance float64 `json:"distance"`
	Speed    float64 `json:"speed"`
	Calories float64 `json:"calories"`
}

func (s Summary) Message() string {
	return fmt.Sprintf("Workout type: %s; Duration: %.3f h; Distance: %.3f km; Avg speed: %.3f km/h; Calories burned: %.3f.",
		s.Type, s.Duration, s.Distance, s.Speed, s.Calories)
}

// Training holds the readings shared by all variants. It has no calorie
// formula of its own and so is not a Calculator. Action counts steps or
// strokes; fractional counts are used as given.
type Training struct {
	Action   float64
	Duration float64
	Weight   float64
}

func (t Training) Hours() float64 { return t.Duration }

func (t Training) Distance() float64 {
	return t.Action * lenStep / mInKm
}

func (t Training) MeanSpeed() float64 {
	return t.Distance() / t.Duration
}

type Running struct {
	Training
}

func (r Running) Calories() float64 {
	return (runCal1*r.MeanSpeed() - runCal2) * r.Weight / mInKm * (r.Duration * minInHour)
}

func (r Running) Label() string { return "Running" }

type SportsWalking struct {
	Training
	Height float64
}

// Calories floors speed²/height, with height taken as given in centimeters.
func (w SportsWalking) Calories() float64 {
	speed := w.MeanSpeed()
	return (walkCal1*w.Weight + floorDiv(speed*speed, w.Height)*walkCal2*w.Weight) * (w.Duration * minInHour)
}

func (w SportsWalking) Label() string { return "SportsWalking" }

type Swimming struct {
	Training
	LengthPool float64
	CountPool  float64
}

func (s Swimming) MeanSpeed() float64 {
	return s.LengthPool * s.CountPool / mInKm / s.Duration
}

func (s Swimming) Calories() float64 {
	return (s.MeanSpeed() + swimCalAdd) * 2 * s.Weight
}

func (s Swimming) Label() string { return "Swimming" }

// Summarize computes every field of the summary for c.
func Summarize(c Calculator) Summary {
	return Summary{
		Type:     c.Label(),
		Duration: c.Hours(),
		Distance: c.Distance(),
		Speed:    c.MeanSpeed(),
		Calories: c.Calories(),
	}
}

// floorDiv returns x // y with the flooring rules of float floor division:
// the quotient is rounded toward negative infinity and the result carries
// the sign of x/y when it is zero.
func floorDiv(x, y float64) float64 {
	mod := math.Mod(x, y)
	div := (x - mod) / y
	if mod != 0 && (y < 0) != (mod < 0) {
		div -= 1
	}
	if div == 0 {
		return math.Copysign(0, x/y)
	}
	fl := math.Floor(div)
	if div-fl > 0.5 {
		fl += 1
	}
	return fl
}
