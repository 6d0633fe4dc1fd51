package main

import (
	"time"

	"github.com/plus3/refocus/protocol"
	"github.com/plus3/refocus/quiz"
)

// quizStep walks the player through the rotation questions: pick a label,
// submit to reveal the verdict, then move on.
type quizStep struct {
	questions []quiz.Question
	index     int
	selected  string
	revealed  bool
	answers   []quiz.AnswerRecord
}

func newQuizStep(questions []quiz.Question) *quizStep {
	return &quizStep{questions: questions}
}

func (q *quizStep) current() (quiz.Question, bool) {
	if q.index >= len(q.questions) {
		return quiz.Question{}, false
	}
	return q.questions[q.index], true
}

// choose selects the option with the given label. It is ignored once the
// answer is revealed.
func (q *quizStep) choose(label string) bool {
	cur, ok := q.current()
	if !ok || q.revealed {
		return false
	}
	opt, ok := cur.OptionByLabel(label)
	if !ok {
		return false
	}
	q.selected = opt.ID
	return true
}

func (q *quizStep) submit(at time.Time) bool {
	cur, ok := q.current()
	if !ok || q.revealed || q.selected == "" {
		return false
	}
	q.answers = append(q.answers, quiz.Answer(cur, q.selected, at))
	q.revealed = true
	return true
}

// next advances past a revealed question and reports whether the quiz is
// finished.
func (q *quizStep) next() bool {
	if !q.revealed {
		return false
	}
	q.index++
	q.selected = ""
	q.revealed = false
	return q.index >= len(q.questions)
}

func (q *quizStep) lastCorrect() bool {
	return len(q.answers) > 0 && q.answers[len(q.answers)-1].IsCorrect
}

type checkField int

const (
	fieldMood checkField = iota
	fieldVividness
	fieldFlashbacks
	fieldCount
)

func (f checkField) String() string {
	switch f {
	case fieldMood:
		return "Mood (0-10)"
	case fieldVividness:
		return "Memory vividness (0-10)"
	default:
		return "Flashbacks since start (0-20)"
	}
}

// checkoutForm collects the self-report shown after the round.
type checkoutForm struct {
	values [fieldCount]int
	field  checkField
}

func newCheckoutForm() *checkoutForm {
	return &checkoutForm{values: [fieldCount]int{fieldMood: 5, fieldVividness: 5}}
}

func (f *checkoutForm) limit(field checkField) int {
	if field == fieldFlashbacks {
		return 20
	}
	return 10
}

func (f *checkoutForm) adjust(delta int) {
	v := f.values[f.field] + delta
	f.values[f.field] = max(0, min(f.limit(f.field), v))
}

func (f *checkoutForm) move(delta int) {
	f.field = checkField((int(f.field) + delta + int(fieldCount)) % int(fieldCount))
}

func (f *checkoutForm) input() protocol.CheckInput {
	flashbacks := float64(f.values[fieldFlashbacks])
	return protocol.CheckInput{
		Mood:       float64(f.values[fieldMood]),
		Vividness:  float64(f.values[fieldVividness]),
		Flashbacks: &flashbacks,
	}
}
