package testkit

import (
	"fmt"
	"math/rand"
	"time"

	"biasaudit/domain/trial"
)

// SimulatorConfig configures a synthetic audit session
type SimulatorConfig struct {
	Seed int64 `json:"seed"`
	// DetectionSkill is the probability the simulated user flags the biased score
	DetectionSkill float64   `json:"detection_skill"`
	Personas       []string  `json:"personas,omitempty"` // empty means all
	StartTime      time.Time `json:"start_time"`
	Interval       time.Duration
}

// DefaultSimulatorConfig returns a reproducible configuration
func DefaultSimulatorConfig() SimulatorConfig {
	return SimulatorConfig{
		Seed:           42,
		DetectionSkill: 0.7,
		StartTime:      time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
		Interval:       time.Minute,
	}
}

// Simulator plays the session layer: it picks candidates, scores them with
// the unbiased scorer and a random persona, shuffles the presentation, and
// records a simulated user's choice.
type Simulator struct {
	config   SimulatorConfig
	rng      *rand.Rand
	roster   []Candidate
	personas []Persona
}

// NewSimulator validates the config and creates a seeded simulator
func NewSimulator(config SimulatorConfig) (*Simulator, error) {
	if config.DetectionSkill < 0 || config.DetectionSkill > 1 {
		return nil, fmt.Errorf("detection skill must be within [0,1], got %v", config.DetectionSkill)
	}
	if config.Interval <= 0 {
		config.Interval = time.Minute
	}

	personas := Personas()
	if len(config.Personas) > 0 {
		personas = personas[:0:0]
		for _, name := range config.Personas {
			p, ok := PersonaByName(name)
			if !ok {
				return nil, fmt.Errorf("unknown persona %q", name)
			}
			personas = append(personas, p)
		}
	}

	return &Simulator{
		config:   config,
		rng:      rand.New(rand.NewSource(config.Seed)),
		roster:   Roster(),
		personas: personas,
	}, nil
}

// Next produces one submission and the time it was made
func (s *Simulator) Next(index int) (trial.Submission, time.Time) {
	c := s.roster[s.rng.Intn(len(s.roster))]
	persona := s.personas[s.rng.Intn(len(s.personas))]

	options := [2]trial.ScoredOption{
		{Label: UnbiasedLabel, Score: UnbiasedScore(c, s.rng)},
		{Label: persona.Name, Score: persona.Score(c, s.rng), Biased: true},
	}
	if s.rng.Float64() > 0.5 {
		options[0], options[1] = options[1], options[0]
	}

	biasedPos := trial.ChoiceFirst
	if options[1].Biased {
		biasedPos = trial.ChoiceSecond
	}
	choice := biasedPos
	if s.rng.Float64() >= s.config.DetectionSkill {
		choice = 3 - biasedPos
	}

	at := s.config.StartTime.Add(time.Duration(index) * s.config.Interval)
	return trial.Submission{
		SubjectID: c.ID,
		Presented: options,
		Choice:    choice,
	}, at
}

// Run generates n trials in chronological order
func (s *Simulator) Run(n int) ([]trial.Trial, error) {
	if n < 0 {
		return nil, fmt.Errorf("trial count cannot be negative, got %d", n)
	}
	trials := make([]trial.Trial, 0, n)
	for i := 0; i < n; i++ {
		sub, at := s.Next(i)
		t, err := trial.NewFromSubmission(sub, at)
		if err != nil {
			return nil, fmt.Errorf("simulated trial %d: %w", i, err)
		}
		trials = append(trials, t)
	}
	return trials, nil
}
