// Package subjects defines the fixed set of study domains. The set is closed:
// profiles carry exactly one progress record per subject and nothing in the
// application adds or removes subjects at runtime.
package subjects

import "fmt"

// Subject is one of the fixed study domains.
type Subject string

const (
	Maths    Subject = "Maths"
	English  Subject = "English"
	Science  Subject = "Combined Science"
	Business Subject = "Business Enterprise"
	Accounts Subject = "Accounts"
)

// All returns the subjects in their canonical display order.
func All() []Subject {
	return []Subject{Maths, English, Science, Business, Accounts}
}

// Parse validates a subject string arriving from an external boundary
// (LLM responses, persisted data).
func Parse(s string) (Subject, error) {
	for _, subj := range All() {
		if string(subj) == s {
			return subj, nil
		}
	}
	return "", fmt.Errorf("unknown subject: %q", s)
}

// Valid reports whether s is one of the fixed subjects.
func Valid(s Subject) bool {
	_, err := Parse(string(s))
	return err == nil
}
