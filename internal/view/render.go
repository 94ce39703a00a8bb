// Package view renders the overview and answer pages. Every function is pure:
// it takes immutable inputs and returns markup.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"strings"

	"github.com/7vignesh/blind-coding/internal/model"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var templates = template.Must(
	template.New("").
		Funcs(template.FuncMap{"lower": func(d model.Difficulty) string { return strings.ToLower(string(d)) }}).
		ParseFS(templateFS, "templates/*.html"),
)

// StaticFS exposes the embedded client assets rooted at static/.
func StaticFS() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// Card is one overview tile.
type Card struct {
	Index     int
	Question  model.Question
	Submitted bool
}

type overviewPage struct {
	PageTitle      string
	Cards          []Card
	SubmittedCount int
}

// RenderOverview renders one card per question. Submitted titles get a
// disabled button; the others carry their index for the start action.
func RenderOverview(set model.QuestionSet, submitted map[string]struct{}) (string, error) {
	page := overviewPage{PageTitle: "Questions", Cards: make([]Card, len(set))}
	for i, q := range set {
		_, done := submitted[q.Title]
		page.Cards[i] = Card{Index: i, Question: q, Submitted: done}
		if done {
			page.SubmittedCount++
		}
	}
	return execute("overview.html", page)
}

// AnswerData is everything the answer page needs.
type AnswerData struct {
	ViewID    string
	Question  model.Question
	Submitted bool
}

type answerPage struct {
	AnswerData
	PageTitle string
}

// RenderAnswer renders a single question with the masked editor.
func RenderAnswer(data AnswerData) (string, error) {
	return execute("answer.html", answerPage{AnswerData: data, PageTitle: data.Question.Title})
}

type messagePage struct {
	PageTitle string
	Message   string
}

// RenderMessage renders a user-facing notice, e.g. when no draw was possible.
func RenderMessage(title, message string) (string, error) {
	return execute("message.html", messagePage{PageTitle: title, Message: message})
}

// RenderPlainText renders the plain-text question document used by the
// terminal command.
func RenderPlainText(q model.Question) string {
	return fmt.Sprintf(`
Blind Coding Question

Title: %s
Difficulty: %s
Topic: %s

%s
`, q.Title, q.Difficulty, q.Topic, q.Description)
}

func execute(name string, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}
