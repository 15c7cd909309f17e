package export

import (
	"bytes"
	"html/template"

	"doc-quiz/internal/domain"
)

var htmlTemplate = template.Must(template.New("quiz").Funcs(template.FuncMap{
	"inc":   func(i int) int { return i + 1 },
	"label": optionLabel,
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}}</title>
  <style>
    body { font-family: Arial, sans-serif; max-width: 800px; margin: 0 auto; padding: 20px; }
    h1 { text-align: center; }
    .question { margin-bottom: 20px; padding: 15px; border: 1px solid #ddd; border-radius: 5px; }
    .options { margin-left: 20px; }
    .explanation { margin-top: 10px; padding: 10px; background-color: #f5f5f5; border-radius: 5px; }
    .correct { color: green; font-weight: bold; }
  </style>
</head>
<body>
  <h1>{{.Title}}</h1>
{{- range $i, $q := .Questions}}
  <div class="question">
    <h3>Question {{inc $i}}: {{$q.Question}}</h3>
    <div class="options">
    {{- range $j, $opt := $q.Options}}
      {{- if eq $opt $q.CorrectAnswer}}
      <div class="correct">{{label $j}}) {{$opt}} ✓</div>
      {{- else}}
      <div>{{label $j}}) {{$opt}}</div>
      {{- end}}
    {{- end}}
    </div>
    <div class="explanation">
      <strong>Explanation:</strong> {{$q.Explanation}}
    </div>
  </div>
{{- end}}
</body>
</html>
`))

func renderHTML(q *domain.Quiz) ([]byte, error) {
	var buf bytes.Buffer
	err := htmlTemplate.Execute(&buf, struct {
		Title     string
		Questions []domain.QuizQuestion
	}{Title: Title(q), Questions: q.Questions})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
