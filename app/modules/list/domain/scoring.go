package listdomain

import (
	"errors"
	"math"
)

// ScorePolicy holds the constants of the scoring curve.
//
// The value of a full completion decays with rank as
//
//	MaxPoints / (1 + (rank-1)/DecayScale)^DecayExponent
//
// which stays positive and strictly decreasing for every rank. Progress
// between the qualifying percent and 100 scales that value linearly, and
// partial records are further multiplied by PartialFactor.
type ScorePolicy struct {
	MaxPoints     float64 `yaml:"max_points" env:"SCORE_MAX_POINTS"`
	DecayScale    float64 `yaml:"decay_scale" env:"SCORE_DECAY_SCALE"`
	DecayExponent float64 `yaml:"decay_exponent" env:"SCORE_DECAY_EXPONENT"`
	PartialFactor float64 `yaml:"partial_factor" env:"SCORE_PARTIAL_FACTOR"`
}

// DisplayPrecision is the number of decimals totals are rounded to.
const DisplayPrecision = 3

// DefaultScorePolicy returns the policy used when none is configured.
func DefaultScorePolicy() ScorePolicy {
	return ScorePolicy{
		MaxPoints:     200,
		DecayScale:    10,
		DecayExponent: 0.8,
		PartialFactor: 2.0 / 3.0,
	}
}

// Validate rejects policies that would break the ordering guarantees of Score.
func (p ScorePolicy) Validate() error {
	var errs []error
	if !(p.MaxPoints > 0) {
		errs = append(errs, errors.New("max_points must be positive"))
	}
	if !(p.DecayScale > 0) {
		errs = append(errs, errors.New("decay_scale must be positive"))
	}
	if !(p.DecayExponent > 0) {
		errs = append(errs, errors.New("decay_exponent must be positive"))
	}
	if !(p.PartialFactor > 0 && p.PartialFactor <= 1) {
		errs = append(errs, errors.New("partial_factor must be in (0, 1]"))
	}
	return errors.Join(errs...)
}

// Score maps a level rank, a record percent and the level's qualifying
// percent to a point value. The result is not rounded.
func (p ScorePolicy) Score(rank, percent, percentToQualify int) float64 {
	base := p.MaxPoints / math.Pow(1+float64(rank-1)/p.DecayScale, p.DecayExponent)

	// Shifting the threshold down by one keeps a record exactly at the
	// qualifying percent above zero.
	floor := float64(percentToQualify - 1)
	progress := (float64(percent) - floor) / (100 - floor)
	progress = math.Max(0, math.Min(1, progress))

	score := base * progress
	if percent != 100 {
		score *= p.PartialFactor
	}
	return score
}

// Score evaluates the default policy.
func Score(rank, percent, percentToQualify int) float64 {
	return DefaultScorePolicy().Score(rank, percent, percentToQualify)
}

// Round rounds a total to DisplayPrecision decimals.
func Round(value float64) float64 {
	scale := math.Pow10(DisplayPrecision)
	return math.Round(value*scale) / scale
}
