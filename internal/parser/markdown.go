package parser

import (
	"strconv"
	"strings"

	"doc-quiz/internal/domain"
	"doc-quiz/internal/logger"

	"go.uber.org/zap"
)

const (
	colQuestion      = "question"
	colOptionA       = "option a"
	colOptionB       = "option b"
	colOptionC       = "option c"
	colOptionD       = "option d"
	colCorrectAnswer = "correct answer"
	colExplanation   = "explanation"
	colDifficulty    = "difficulty"

	// question, four options and the answer
	minDataCells = 6
)

var expectedColumns = []string{
	colQuestion, colOptionA, colOptionB, colOptionC, colOptionD,
	colCorrectAnswer, colExplanation, colDifficulty,
}

var requiredColumns = []string{
	colQuestion, colOptionA, colOptionB, colOptionC, colOptionD, colCorrectAnswer,
}

// ParseQuizTable extracts questions from the first markdown table in the text.
// Rows that cannot be turned into a valid question are dropped with a warning;
// only a missing table is an error.
func ParseQuizTable(markdown string) ([]domain.QuizQuestion, error) {
	table := tableLines(markdown)
	if len(table) < 3 {
		return nil, domain.NewParseError("invalid table format")
	}

	header := mapHeader(splitRow(table[0]))
	log := logger.Get()

	var candidates []domain.RawQuestionCandidate
	for i := 2; i < len(table); i++ {
		cells := splitRow(table[i])
		if len(cells) < minDataCells {
			continue
		}
		id := strconv.Itoa(i - 1)

		c, missing := buildCandidate(id, cells, header)
		if missing != "" {
			log.Warn("Dropping quiz row: column not found",
				zap.String("question_id", id),
				zap.String("column", missing),
			)
			continue
		}

		if defect := rowDefect(c); defect != "" {
			log.Warn("Dropping quiz row: invalid question",
				zap.String("question_id", id),
				zap.String("reason", defect),
			)
			continue
		}

		if !contains(c.Options, c.CorrectAnswer) {
			match, ok := matchOption(c.Options, c.CorrectAnswer)
			if !ok {
				log.Warn("Dropping quiz row: correct answer does not match any option",
					zap.String("question_id", id),
					zap.String("correct_answer", c.CorrectAnswer),
				)
				continue
			}
			c.CorrectAnswer = match
		}
		candidates = append(candidates, c)
	}

	return Normalize(candidates), nil
}

// tableLines returns the first contiguous run of pipe-delimited lines. Non-table
// lines inside the run are skipped; a blank line ends it.
func tableLines(markdown string) []string {
	var lines []string
	inTable := false
	for _, line := range strings.Split(strings.TrimSpace(markdown), "\n") {
		trimmed := strings.TrimSpace(line)
		if len(trimmed) >= 2 && strings.HasPrefix(trimmed, "|") && strings.HasSuffix(trimmed, "|") {
			inTable = true
			lines = append(lines, trimmed)
		} else if inTable && trimmed == "" {
			break
		}
	}
	return lines
}

func splitRow(line string) []string {
	fields := strings.Split(line, "|")
	if len(fields) < 2 {
		return nil
	}
	fields = fields[1 : len(fields)-1]
	cells := make([]string, len(fields))
	for i, f := range fields {
		cells[i] = strings.TrimSpace(f)
	}
	return cells
}

// mapHeader locates each expected column. Exact label matches are claimed
// first; the remaining labels then take the first unclaimed header that
// contains them or is contained by them. A header column maps to at most one label.
func mapHeader(headers []string) map[string]int {
	normalized := make([]string, len(headers))
	for i, h := range headers {
		normalized[i] = strings.Trim(strings.ToLower(strings.TrimSpace(h)), ": ")
	}

	columns := make(map[string]int, len(expectedColumns))
	claimed := make([]bool, len(normalized))
	for _, want := range expectedColumns {
		for i, h := range normalized {
			if !claimed[i] && h == want {
				columns[want] = i
				claimed[i] = true
				break
			}
		}
	}
	for _, want := range expectedColumns {
		if _, ok := columns[want]; ok {
			continue
		}
		for i, h := range normalized {
			if claimed[i] || h == "" {
				continue
			}
			if strings.Contains(h, want) || strings.Contains(want, h) {
				columns[want] = i
				claimed[i] = true
				break
			}
		}
	}
	return columns
}

// rowDefect reports why a candidate cannot become a question, or "" if it can.
func rowDefect(c domain.RawQuestionCandidate) string {
	if strings.TrimSpace(c.Question) == "" {
		return "empty question"
	}
	seen := make(map[string]bool, len(c.Options))
	for _, o := range c.Options {
		key := strings.ToLower(strings.TrimSpace(o))
		if key == "" {
			return "blank option"
		}
		if seen[key] {
			return "duplicate option"
		}
		seen[key] = true
	}
	return ""
}

func buildCandidate(id string, cells []string, header map[string]int) (domain.RawQuestionCandidate, string) {
	value := func(col string) (string, bool) {
		idx, ok := header[col]
		if !ok || idx >= len(cells) {
			return "", false
		}
		return cells[idx], true
	}

	values := make(map[string]string, len(requiredColumns))
	for _, col := range requiredColumns {
		v, ok := value(col)
		if !ok {
			return domain.RawQuestionCandidate{}, col
		}
		values[col] = v
	}

	c := domain.RawQuestionCandidate{
		ID:       id,
		Question: values[colQuestion],
		Options: []string{
			values[colOptionA], values[colOptionB], values[colOptionC], values[colOptionD],
		},
		CorrectAnswer: values[colCorrectAnswer],
	}
	if v, ok := value(colExplanation); ok {
		c.Explanation = &v
	}
	if v, ok := value(colDifficulty); ok {
		c.Difficulty = &v
	}
	return c, ""
}

func matchOption(options []string, answer string) (string, bool) {
	want := strings.ToLower(strings.TrimSpace(answer))
	for _, o := range options {
		if strings.ToLower(strings.TrimSpace(o)) == want {
			return o, true
		}
	}
	return "", false
}
