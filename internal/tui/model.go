// Package tui runs a generated quiz interactively in the terminal.
package tui

import (
	"fmt"
	"strings"

	"doc-quiz/internal/domain"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var optionLabels = []string{"A", "B", "C", "D"}

// Model walks through the questions of one quiz. Each question is answered
// once; after the last one the score is shown.
type Model struct {
	quiz      *domain.Quiz
	index     int
	selected  int
	submitted bool
	answers   map[string]string
	done      bool
	progress  progress.Model
	width     int
}

// NewModel constructs a runner for quiz.
func NewModel(quiz *domain.Quiz) Model {
	return Model{
		quiz:     quiz,
		answers:  make(map[string]string, len(quiz.Questions)),
		progress: progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		done:     len(quiz.Questions) == 0,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles navigation keys.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.progress.Width = min(max(msg.Width-10, 10), 60)
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit
	}
	if m.done {
		if msg.String() == "enter" {
			return m, tea.Quit
		}
		return m, nil
	}

	question := m.quiz.Questions[m.index]
	if m.submitted {
		if msg.String() == "enter" || msg.String() == " " || msg.String() == "n" {
			m.advance()
		}
		return m, nil
	}

	switch key := msg.String(); key {
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
	case "down", "j":
		if m.selected < len(question.Options)-1 {
			m.selected++
		}
	case "a", "b", "c", "d", "1", "2", "3", "4":
		if i := optionIndex(key); i < len(question.Options) {
			m.selected = i
			m.submit()
		}
	case "enter", " ":
		m.submit()
	}
	return m, nil
}

func optionIndex(key string) int {
	if key[0] >= '1' && key[0] <= '4' {
		return int(key[0] - '1')
	}
	return int(key[0] - 'a')
}

func (m *Model) submit() {
	question := m.quiz.Questions[m.index]
	m.answers[question.ID] = question.Options[m.selected]
	m.submitted = true
}

func (m *Model) advance() {
	m.index++
	m.selected = 0
	m.submitted = false
	if m.index >= len(m.quiz.Questions) {
		m.done = true
	}
}

// Answers returns the chosen option text keyed by question ID.
func (m Model) Answers() map[string]string {
	return m.answers
}

// Finished reports whether every question has been answered.
func (m Model) Finished() bool {
	return m.done
}

// Result scores the answers given so far.
func (m Model) Result() domain.ScoreResult {
	return m.quiz.Score(m.answers)
}

func (m Model) View() string {
	if m.done {
		return m.summaryView()
	}

	question := m.quiz.Questions[m.index]
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.title()))
	b.WriteString("\n")
	ratio := float64(m.index) / float64(len(m.quiz.Questions))
	b.WriteString(m.progress.ViewAs(ratio))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %d/%d", m.index+1, len(m.quiz.Questions))))
	b.WriteString("\n\n")
	b.WriteString(questionStyle.Render(question.Question))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  [%s]", question.Difficulty)))
	b.WriteString("\n\n")

	for i, opt := range question.Options {
		line := fmt.Sprintf("%s) %s", optionLabels[i], opt)
		switch {
		case m.submitted && opt == question.CorrectAnswer:
			b.WriteString(correctStyle.Render("✓ " + line))
		case m.submitted && i == m.selected:
			b.WriteString(wrongStyle.Render("✗ " + line))
		case m.submitted:
			b.WriteString(dimStyle.Render("  " + line))
		case i == m.selected:
			b.WriteString(cursorStyle.Render("▸ " + line))
		default:
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	if m.submitted && question.Explanation != "" {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render(question.Explanation))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.submitted {
		b.WriteString(dimStyle.Render("enter: next • q: quit"))
	} else {
		b.WriteString(dimStyle.Render("↑/↓ or a-d: choose • enter: answer • q: quit"))
	}
	return b.String()
}

func (m Model) summaryView() string {
	result := m.Result()
	lines := []string{
		titleStyle.Render(m.title()),
		"",
		fmt.Sprintf("Score: %d/%d (%.0f%%)", result.Correct, result.Total, result.Percentage),
	}
	if result.Unanswered > 0 {
		lines = append(lines, dimStyle.Render(fmt.Sprintf("%d unanswered", result.Unanswered)))
	}
	lines = append(lines, "", dimStyle.Render("enter or q to exit"))
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m Model) title() string {
	if m.quiz.Metadata.Title != "" {
		return m.quiz.Metadata.Title
	}
	return "Quiz " + m.quiz.ID
}

// Run takes the quiz on the terminal and returns the final score.
func Run(quiz *domain.Quiz, opts ...tea.ProgramOption) (domain.ScoreResult, error) {
	final, err := tea.NewProgram(NewModel(quiz), opts...).Run()
	if err != nil {
		return domain.ScoreResult{}, fmt.Errorf("run quiz: %w", err)
	}
	return final.(Model).Result(), nil
}
