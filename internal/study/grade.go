package study

import "errors"

var ErrNoCurrentCard = errors.New("no current card")

// Grade maps a session accuracy percentage to a letter grade.
func Grade(accuracy float64) string {
	grade, _ := GradeInfo(accuracy)
	return grade
}

// GradeInfo returns the letter grade and the encouragement shown on the
// completion screen.
func GradeInfo(accuracy float64) (string, string) {
	switch {
	case accuracy >= 90:
		return "A+", "Outstanding! You're mastering this material!"
	case accuracy >= 80:
		return "A", "Excellent work! Keep it up!"
	case accuracy >= 70:
		return "B", "Good job! Room for improvement!"
	case accuracy >= 60:
		return "C", "Not bad! Keep practicing!"
	default:
		return "D", "Keep studying! You'll get there!"
	}
}
