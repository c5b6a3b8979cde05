package lessons

import (
	"fmt"
	"strings"
)

const summarySystemPrompt = `You are an experienced secondary-school revision tutor. A student has uploaded study material and needs a clear, exam-focused summary of it.`

func buildSummaryUserMessage(input SummaryInput) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Subject: %s\n\n", input.Subject))
	b.WriteString("Material:\n")
	b.WriteString(truncate(input.Text, MaxInputChars))

	b.WriteString(`

Instructions:
Summarize this material for exam revision:
1. Give the topic a short, specific title.
2. Write a 5-8 sentence summary covering the core ideas. Use plain language.
3. Judge the difficulty as Foundation, Intermediate, or Advanced.
4. List the key terms or formulas a student must memorize.
5. List any prerequisite topics, and suggest what to study next.
6. Give one real-world application and one note on what examiners look for.`)

	return b.String()
}

// truncate cuts s to at most n bytes without splitting a UTF-8 rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := s[:n]
	for len(cut) > 0 && cut[len(cut)-1] >= 0x80 && cut[len(cut)-1] < 0xC0 {
		cut = cut[:len(cut)-1]
	}
	if len(cut) > 0 && cut[len(cut)-1] >= 0xC0 {
		cut = cut[:len(cut)-1]
	}
	return cut
}
