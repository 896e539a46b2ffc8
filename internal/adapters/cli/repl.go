// Package cli is the interactive line-oriented chat shell.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/PabloGalante/haven/internal/content"
)

const (
	userLabel = "You: "
	botLabel  = "Chatbot: "

	exitCommand = "exit"

	maxLineBytes = 1 << 20
)

// Responder turns one line of user input into a reply.
type Responder interface {
	Respond(ctx context.Context, userInput string) string
}

type REPL struct {
	responder Responder
	texts     content.SessionTexts
	in        io.Reader
	out       io.Writer

	userStyle lipgloss.Style
	botStyle  lipgloss.Style
	noteStyle lipgloss.Style
}

// NewREPL builds a shell reading from in and writing to out. Styles come
// from a renderer bound to out, so they degrade to plain text when out is
// not a terminal.
func NewREPL(responder Responder, texts content.SessionTexts, in io.Reader, out io.Writer) *REPL {
	r := lipgloss.NewRenderer(out)
	return &REPL{
		responder: responder,
		texts:     texts,
		in:        in,
		out:       out,
		userStyle: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#8BC34A")),
		botStyle:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("#64B5F6")),
		noteStyle: r.NewStyle().Faint(true),
	}
}

// Run prints the banner and answers lines until "exit", EOF or ctx is done.
// Each line is answered on its own; nothing carries over between turns.
func (r *REPL) Run(ctx context.Context) error {
	r.println(r.texts.Welcome)
	r.println(r.noteStyle.Render(r.texts.Disclaimer))
	r.println(r.texts.ExitHint)

	scanner := bufio.NewScanner(r.in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		r.print("\n" + r.userStyle.Render(userLabel))
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			r.println("")
			break
		}

		line := scanner.Text()
		if strings.EqualFold(strings.TrimSpace(line), exitCommand) {
			break
		}

		reply := r.responder.Respond(ctx, line)
		r.println(r.botStyle.Render(botLabel) + reply)
	}

	r.println(r.texts.Farewell)
	return nil
}

func (r *REPL) print(s string) {
	_, _ = io.WriteString(r.out, s)
}

func (r *REPL) println(s string) {
	_, _ = io.WriteString(r.out, s+"\n")
}
