package lessons

import "github.com/morepeace/manyora/internal/subjects"

// Summary is a structured study summary generated from uploaded material.
// Immutable once produced.
type Summary struct {
	Subject       subjects.Subject
	Title         string
	Summary       string
	Difficulty    string // "Foundation", "Intermediate", "Advanced"
	KeyTerms      []string
	Prerequisites []string
	NextTopic     string
	RealWorldUse  string
	ExaminerNotes string
}

// SummaryInput holds everything needed to produce a summary.
type SummaryInput struct {
	Subject subjects.Subject
	Text    string
}
