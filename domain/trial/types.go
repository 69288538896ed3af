package trial

import (
	"fmt"
	"math"
	"strings"
	"time"

	"biasaudit/domain/core"
)

// Choice is the presented position (1 or 2) the user flagged as biased
type Choice int

const (
	ChoiceFirst  Choice = 1
	ChoiceSecond Choice = 2
)

// Valid reports whether the choice refers to one of the two presented scores
func (c Choice) Valid() bool {
	return c == ChoiceFirst || c == ChoiceSecond
}

// Trial is one recorded human judgment comparing two scores.
// ScoreA/LabelA always belong to the unbiased scorer, ScoreB/LabelB to the
// biased persona. A Trial is never mutated after creation.
type Trial struct {
	SubjectID       core.SubjectID `json:"subject_id"`
	ScoreA          float64        `json:"score_a"`
	ScoreB          float64        `json:"score_b"`
	LabelA          string         `json:"label_a"`
	LabelB          string         `json:"label_b"`
	UserChoice      Choice         `json:"user_choice"`
	IsChoiceCorrect bool           `json:"is_choice_correct"`
	Comment         string         `json:"comment,omitempty"`
	RecordedAt      core.Timestamp `json:"recorded_at"`
}

// Validate checks the structural invariants of a trial
func (t Trial) Validate() error {
	if !t.UserChoice.Valid() {
		return fmt.Errorf("%w (got %d)", core.ErrInvalidChoice, t.UserChoice)
	}
	if math.IsNaN(t.ScoreA) || math.IsInf(t.ScoreA, 0) {
		return fmt.Errorf("%w: score_a", core.ErrInvalidScore)
	}
	if math.IsNaN(t.ScoreB) || math.IsInf(t.ScoreB, 0) {
		return fmt.Errorf("%w: score_b", core.ErrInvalidScore)
	}
	return nil
}

// New builds a validated trial from already-resolved fields
func New(subject core.SubjectID, scoreA, scoreB float64, labelA, labelB string, choice Choice, correct bool, comment string, at time.Time) (Trial, error) {
	t := Trial{
		SubjectID:       subject,
		ScoreA:          scoreA,
		ScoreB:          scoreB,
		LabelA:          labelA,
		LabelB:          labelB,
		UserChoice:      choice,
		IsChoiceCorrect: correct,
		Comment:         strings.TrimSpace(comment),
		RecordedAt:      core.NewTimestamp(at),
	}
	if err := t.Validate(); err != nil {
		return Trial{}, err
	}
	return t, nil
}

// ScoredOption is one score as it was shown to the user
type ScoredOption struct {
	Label  string  `json:"label"`
	Score  float64 `json:"score"`
	Biased bool    `json:"biased"`
}

// Submission is what the session layer hands over when the user picks
// which of the two presented scores came from the biased scorer.
type Submission struct {
	SubjectID core.SubjectID  `json:"subject_id"`
	Presented [2]ScoredOption `json:"presented"`
	Choice    Choice          `json:"choice"`
	Comment   string          `json:"comment,omitempty"`
}

// NewFromSubmission resolves a submission into a Trial. Exactly one of the
// presented options must be biased; the choice is correct iff it points at it.
func NewFromSubmission(s Submission, at time.Time) (Trial, error) {
	if !s.Choice.Valid() {
		return Trial{}, fmt.Errorf("%w (got %d)", core.ErrInvalidChoice, s.Choice)
	}

	biasedIdx := -1
	for i, opt := range s.Presented {
		if opt.Biased {
			if biasedIdx >= 0 {
				return Trial{}, core.NewValidationError("presented", "both options marked biased")
			}
			biasedIdx = i
		}
	}
	if biasedIdx < 0 {
		return Trial{}, core.NewValidationError("presented", "no option marked biased")
	}

	unbiased := s.Presented[1-biasedIdx]
	biased := s.Presented[biasedIdx]
	correct := int(s.Choice)-1 == biasedIdx

	return New(s.SubjectID, unbiased.Score, biased.Score, unbiased.Label, biased.Label, s.Choice, correct, s.Comment, at)
}
