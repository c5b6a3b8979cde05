package quizgen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a secondary-school examiner writing short multiple-choice quizzes. Questions must be answerable from the provided summary alone.`

func buildUserMessage(input GenerateInput) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Subject: %s\n\n", input.Subject))
	b.WriteString("Study summary:\n")
	b.WriteString(input.SummaryText)
	b.WriteString("\n")

	if len(input.PriorFailures) > 0 {
		b.WriteString("\nConcepts this student previously got wrong:\n")
		for _, c := range input.PriorFailures {
			b.WriteString(fmt.Sprintf("- %s\n", c))
		}
	}

	b.WriteString(fmt.Sprintf(`
Instructions:
Write exactly %d multiple-choice questions:
1. Each question has exactly 4 options and one correct answer.
2. Spread difficulty: include at least one tier 1 and one tier 3 question.
3. Tag each question with a short concept label (1-3 words).`, QuestionCount))

	if len(input.PriorFailures) > 0 {
		b.WriteString("\n4. At least one question MUST target one of the previously-missed concepts listed above, using that exact concept tag.")
	}

	return b.String()
}
