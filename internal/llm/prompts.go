package llm

import (
	"fmt"
	"strings"
)

func buildEvalSystemPrompt(mode GradingMode) string {
	var sb strings.Builder
	sb.WriteString("You are a tutor grading a student's free-text answer to a worksheet question.\n\n")

	switch mode {
	case ModeMultimodal:
		sb.WriteString("The question refers to a visual element. The worksheet image is attached; use it when judging the answer.\n\n")
		sb.WriteString("Respond ONLY with a JSON object:\n")
		sb.WriteString(`{"isCorrect": <true/false>, "feedback": "<one or two sentences of feedback>"}`)
	case ModeLenient:
		sb.WriteString("The question refers to a figure, chart, or table that you CANNOT see. ")
		sb.WriteString("Do NOT assert whether the answer is correct. Comment on the student's method and approach only.\n\n")
		sb.WriteString("Respond ONLY with a JSON object:\n")
		sb.WriteString(`{"cannotGrade": true, "feedback": "<comment on the method without judging correctness>"}`)
	default:
		sb.WriteString("Judge the answer on its content; ignore spelling and formatting.\n\n")
		sb.WriteString("Respond ONLY with a JSON object:\n")
		sb.WriteString(`{"isCorrect": <true/false>, "feedback": "<one or two sentences of feedback>"}`)
	}
	sb.WriteString("\nAny text outside the JSON object is an error.\n")

	return sb.String()
}

func buildEvalUserPrompt(questionText, answerText string) string {
	return fmt.Sprintf("QUESTION: %s\n\nSTUDENT ANSWER: %s", questionText, answerText)
}

func buildHintSystemPrompt() string {
	var sb strings.Builder
	sb.WriteString("You are a tutor helping a student who is stuck on a worksheet question.\n\n")
	sb.WriteString("INSTRUCTIONS:\n")
	sb.WriteString("- Give exactly ONE hint that nudges the student toward the solution.\n")
	sb.WriteString("- NEVER reveal the final answer or any value that is the answer.\n")
	sb.WriteString("- Do not repeat a previous hint. If previous hints exist, be more specific than they were.\n")
	sb.WriteString("\nRespond ONLY with a JSON object:\n")
	sb.WriteString(`{"hint": "<the hint>"}`)
	sb.WriteString("\n")
	return sb.String()
}

func buildHintUserPrompt(questionText string, previousHints []string) string {
	var sb strings.Builder
	sb.WriteString("QUESTION: " + questionText + "\n")
	if len(previousHints) == 0 {
		sb.WriteString("\nNo hints have been given yet.\n")
		return sb.String()
	}
	sb.WriteString("\nHINTS ALREADY GIVEN (do not repeat these):\n")
	for i, h := range previousHints {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, h))
	}
	return sb.String()
}

func buildExtractionSystemPrompt() string {
	var sb strings.Builder
	sb.WriteString("You extract the questions from a scanned worksheet or exam paper.\n\n")
	sb.WriteString("INSTRUCTIONS:\n")
	sb.WriteString("- List every question in the order it appears on the page.\n")
	sb.WriteString("- Keep the original label exactly as printed (\"1\", \"2ii\", \"(iv)\", \"1a\").\n")
	sb.WriteString("- Include the full question text. If a question refers to an accompanying ")
	sb.WriteString("figure, chart, graph, diagram, or table, append the marker [figure] to its text.\n")
	sb.WriteString("- If the page contains no questions, return an empty list.\n")
	sb.WriteString("\nRespond ONLY with a JSON object:\n")
	sb.WriteString(`{"questions": [{"number": "<label>", "text": "<question text>"}]}`)
	sb.WriteString("\n")
	return sb.String()
}
