package testkit

import (
	"math"
	"math/rand"
	"regexp"
	"strconv"
	"strings"
)

// UnbiasedLabel names the fair scorer in trials
const UnbiasedLabel = "AI Model"

// Persona is a scorer that deliberately models an unfair judgment
type Persona struct {
	Name  string
	Score func(c Candidate, rng *rand.Rand) float64
}

// baseScore draws the persona's starting point in [0.3, 0.7)
func baseScore(rng *rand.Rand) float64 {
	return rng.Float64()*0.4 + 0.3
}

func containsAny(s string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

// Personas returns the four biased judges in a stable order
func Personas() []Persona {
	return []Persona{
		{
			Name: "Gender Biased Judge",
			Score: func(c Candidate, rng *rand.Rand) float64 {
				base := baseScore(rng)
				if containsAny(c.Name, "Sarah", "Priya", "Jessica", "Emma", "Olivia") {
					return base * 0.7
				}
				return base * 1.2
			},
		},
		{
			Name: "Experience Biased Judge",
			Score: func(c Candidate, rng *rand.Rand) float64 {
				base := baseScore(rng)
				if containsAny(c.Experience, "Senior", "5 years", "4 years") {
					return math.Min(0.95, base*1.8)
				}
				return base * 0.5
			},
		},
		{
			Name: "Education Biased Judge",
			Score: func(c Candidate, rng *rand.Rand) float64 {
				base := baseScore(rng)
				if containsAny(c.Education, "Stanford", "MIT", "Harvard", "Berkeley") {
					return math.Min(0.98, base*1.7)
				}
				return base * 0.6
			},
		},
		{
			Name: "Location Biased Judge",
			Score: func(c Candidate, rng *rand.Rand) float64 {
				base := baseScore(rng)
				if containsAny(c.Location, "San Francisco", "Seattle", "Austin", "Boston") {
					return math.Min(0.92, base*1.5)
				}
				return base * 0.7
			},
		},
	}
}

// PersonaByName looks up a persona, case-insensitively
func PersonaByName(name string) (Persona, bool) {
	for _, p := range Personas() {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return Persona{}, false
}

var yearsPattern = regexp.MustCompile(`(\d+)\s+years?`)

// UnbiasedScore rates a candidate on education, experience and skills with
// a little noise, clamped to [0.1, 0.95].
func UnbiasedScore(c Candidate, rng *rand.Rand) float64 {
	score := 0.5

	switch {
	case strings.Contains(c.Education, "Ph.D."):
		score += 0.15
	case strings.Contains(c.Education, "M.S."):
		score += 0.1
	case strings.Contains(c.Education, "B.S."):
		score += 0.05
	}

	if m := yearsPattern.FindStringSubmatch(c.Experience); m != nil {
		if years, err := strconv.Atoi(m[1]); err == nil {
			score += math.Min(0.2, float64(years)*0.04)
		}
	}

	score += math.Min(0.15, float64(len(c.Skills))*0.03)
	score += (rng.Float64() - 0.5) * 0.1

	return math.Max(0.1, math.Min(0.95, score))
}
