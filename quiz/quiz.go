// Package quiz holds the mental-rotation warm-up that precedes a puzzle
// round: a fixed set of multiple-choice questions asking which option shows
// a piece after a given number of clockwise quarter turns.
package quiz

import (
	"fmt"
	"time"
)

// Option is one answer choice.
type Option struct {
	ID     string
	Label  string
	Matrix Matrix
}

// Question asks which option equals Base after the stated rotation.
type Question struct {
	ID              string
	Title           string
	Prompt          string
	Explanation     string
	Base            Matrix
	Options         []Option
	CorrectOptionID string
}

// Option returns the option with the given id.
func (q Question) Option(id string) (Option, bool) {
	for _, opt := range q.Options {
		if opt.ID == id {
			return opt, true
		}
	}
	return Option{}, false
}

// OptionByLabel returns the option labelled label ("A".."D").
func (q Question) OptionByLabel(label string) (Option, bool) {
	for _, opt := range q.Options {
		if opt.Label == label {
			return opt, true
		}
	}
	return Option{}, false
}

func (q Question) clone() Question {
	out := q
	out.Base = q.Base.Clone()
	out.Options = make([]Option, len(q.Options))
	for i, opt := range q.Options {
		opt.Matrix = opt.Matrix.Clone()
		out.Options[i] = opt
	}
	return out
}

// AnswerRecord is what the protocol keeps about one answered question.
type AnswerRecord struct {
	QuestionID string    `json:"questionId"`
	OptionID   string    `json:"optionId"`
	IsCorrect  bool      `json:"isCorrect"`
	AnsweredAt time.Time `json:"answeredAt"`
}

// Answer grades optionID against q.
func Answer(q Question, optionID string, at time.Time) AnswerRecord {
	return AnswerRecord{
		QuestionID: q.ID,
		OptionID:   optionID,
		IsCorrect:  optionID == q.CorrectOptionID,
		AnsweredAt: at,
	}
}

// Score counts the correct answers.
func Score(answers []AnswerRecord) int {
	n := 0
	for _, a := range answers {
		if a.IsCorrect {
			n++
		}
	}
	return n
}

var (
	shapeL = parseShape(
		"#..",
		"###",
		"...",
	)
	shapeZ = parseShape(
		"##.",
		".##",
		"...",
	)
	shapeT = parseShape(
		".#.",
		"###",
		"...",
	)
)

type choice struct {
	matrix  Matrix
	correct bool
}

func buildQuestion(id, title, prompt, explanation string, base Matrix, choices [4]choice) Question {
	q := Question{
		ID:          id,
		Title:       title,
		Prompt:      prompt,
		Explanation: explanation,
		Base:        base.Clone(),
		Options:     make([]Option, len(choices)),
	}

	for i, ch := range choices {
		q.Options[i] = Option{
			ID:     fmt.Sprintf("%s_opt_%d", id, i+1),
			Label:  string(rune('A' + i)),
			Matrix: ch.matrix.Clone(),
		}
		if ch.correct && q.CorrectOptionID == "" {
			q.CorrectOptionID = q.Options[i].ID
		}
	}
	if q.CorrectOptionID == "" {
		q.CorrectOptionID = q.Options[0].ID
	}

	return q
}

var questions = []Question{
	buildQuestion("q1", "Question 1",
		"Pick the L piece turned 90° clockwise.",
		"One clockwise turn stands the L upright with its foot at the top right.",
		shapeL,
		[4]choice{
			{RotateTimes(shapeL, 0), false},
			{RotateTimes(shapeL, 3), false},
			{RotateTimes(shapeL, 1), true},
			{RotateTimes(shapeL, 2), false},
		}),
	buildQuestion("q2", "Question 2",
		"Pick the Z piece turned 90° clockwise.",
		"A turned Z stays a Z; the mirrored options are S pieces and can never match.",
		shapeZ,
		[4]choice{
			{RotateTimes(shapeZ, 0), false},
			{Mirror(RotateTimes(shapeZ, 1)), false},
			{RotateTimes(shapeZ, 1), true},
			{Mirror(RotateTimes(shapeZ, 0)), false},
		}),
	buildQuestion("q3", "Question 3",
		"Pick the T piece turned 270° clockwise.",
		"Three clockwise turns equal one counter-clockwise turn, so the stem ends up pointing left.",
		shapeT,
		[4]choice{
			{RotateTimes(shapeT, 2), false},
			{RotateTimes(shapeT, 3), true},
			{RotateTimes(shapeT, 0), false},
			{RotateTimes(shapeT, 1), false},
		}),
}

// Count is the number of canned questions.
func Count() int { return len(questions) }

// Questions returns up to n questions in their fixed order. The result is a
// deep copy the caller may modify.
func Questions(n int) []Question {
	n = max(0, min(n, len(questions)))

	out := make([]Question, n)
	for i := range n {
		out[i] = questions[i].clone()
	}
	return out
}
