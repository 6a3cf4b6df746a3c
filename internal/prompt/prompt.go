package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/example/vole/internal/spaced_repetition"
)

const (
	helpLetter  = '?'
	maxAttempts = 2
)

var (
	// ErrNoValidAnswer is returned after too many invalid answers in a row
	ErrNoValidAnswer = errors.New("prompt: no valid answer given")
	// ErrNoOptions is returned for a command without options
	ErrNoOptions = errors.New("prompt: command has no options")
)

// Option is one answer a command accepts
type Option struct {
	Letter rune
	Doc    string
}

// Command is a question with its single-letter answers
type Command struct {
	Question string
	Options  []Option
}

func optionHelp(letter rune, doc string) string {
	return fmt.Sprintf("%c - %s\n", letter, doc)
}

// Text renders the question followed by the accepted letters, e.g.
// "Continue with another card [y, q, ?]? ".
func (c Command) Text() string {
	var b strings.Builder
	b.WriteString(c.Question)
	b.WriteString(" [")
	for _, o := range c.Options {
		b.WriteRune(o.Letter)
		b.WriteString(", ")
	}
	b.WriteRune(helpLetter)
	b.WriteString("]? ")
	return b.String()
}

// Help lists every option with its description
func (c Command) Help() string {
	var b strings.Builder
	for _, o := range c.Options {
		b.WriteString(optionHelp(o.Letter, o.Doc))
	}
	b.WriteString(optionHelp(helpLetter, "help"))
	return b.String()
}

// parse returns the chosen option, or help=true when the user asked for help.
func (c Command) parse(input string) (opt Option, help bool, ok bool) {
	input = strings.TrimSpace(input)
	if utf8.RuneCountInString(input) != 1 {
		return Option{}, false, false
	}
	r, _ := utf8.DecodeRuneInString(input)
	if r == helpLetter {
		return Option{}, true, false
	}
	for _, o := range c.Options {
		if o.Letter == r {
			return o, false, true
		}
	}
	return Option{}, false, false
}

// Prompter asks questions on a line-oriented terminal
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// New creates a Prompter reading answers from in and writing to out
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("read answer: %w", err)
	}
	return line, nil
}

// Ask prints the command and reads answers until one is valid. Asking for
// help does not count as an attempt.
func (p *Prompter) Ask(cmd Command) (Option, error) {
	if len(cmd.Options) == 0 {
		return Option{}, ErrNoOptions
	}

	attempts := 0
	for {
		if _, err := io.WriteString(p.out, cmd.Text()); err != nil {
			return Option{}, err
		}
		line, err := p.readLine()
		if err != nil {
			return Option{}, err
		}

		opt, help, ok := cmd.parse(line)
		if ok {
			return opt, nil
		}
		if !help {
			attempts++
		}
		if attempts >= maxAttempts {
			return Option{}, ErrNoValidAnswer
		}
		if _, err := io.WriteString(p.out, cmd.Help()); err != nil {
			return Option{}, err
		}
	}
}

// AskRating asks how difficult the recall was and returns a rating in 0..5
func (p *Prompter) AskRating() (spaced_repetition.QualityResponse, error) {
	cmd := Command{Question: "How difficult was it"}
	for _, q := range spaced_repetition.Qualities() {
		cmd.Options = append(cmd.Options, Option{Letter: rune('0' + q), Doc: q.String()})
	}
	opt, err := p.Ask(cmd)
	if err != nil {
		return 0, err
	}
	return spaced_repetition.QualityResponse(opt.Letter - '0'), nil
}

// AskYesNo asks a question answered with y (yes) or q (quit)
func (p *Prompter) AskYesNo(question string) (bool, error) {
	opt, err := p.Ask(Command{
		Question: question,
		Options: []Option{
			{Letter: 'y', Doc: "yes"},
			{Letter: 'q', Doc: "quit"},
		},
	})
	if err != nil {
		return false, err
	}
	return opt.Letter == 'y', nil
}

// WaitEnter blocks until a line is entered
func (p *Prompter) WaitEnter() error {
	_, err := p.readLine()
	return err
}

// Printf writes to the prompt's output
func (p *Prompter) Printf(format string, args ...any) {
	fmt.Fprintf(p.out, format, args...)
}
