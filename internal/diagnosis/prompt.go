package diagnosis

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a revision coach analysing a student's quiz answers. You identify exactly what went wrong and what to do about it.`

func buildUserMessage(input DiagnoseInput) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Subject: %s\n\nQuiz results:\n", input.Subject))

	for i, r := range input.Results {
		b.WriteString(fmt.Sprintf("%d. [%s] %s\n", i+1, r.Question.Concept, r.Question.Question))
		if r.Selected < 0 || r.Selected >= len(r.Question.Options) {
			b.WriteString("   Answered: (no answer)\n")
		} else {
			b.WriteString(fmt.Sprintf("   Answered: %s\n", r.Question.Options[r.Selected]))
		}
		b.WriteString(fmt.Sprintf("   Correct:  %s\n", r.Question.Options[r.Question.CorrectIndex]))
		if r.Correct {
			b.WriteString("   Result:   correct\n")
		} else {
			b.WriteString("   Result:   WRONG\n")
		}
	}

	b.WriteString(fmt.Sprintf(`
Instructions:
Write exactly %d diagnostic notes:
1. Each note names a specific weakness shown by the wrong answers and one concrete action to fix it.
2. One sentence per note. Address the student directly.
3. If every answer was correct, the notes should name what to consolidate next.`, NoteCount))

	return b.String()
}
