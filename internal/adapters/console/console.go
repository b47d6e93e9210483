// Package console is a line-oriented view over the employee directory. It
// lists employees, forwards selection and edit intents to the service and
// renders the editor after every command.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/mattn/go-isatty"

	"staffdir/internal/core"
	"staffdir/pkg/domain"
)

// NoSelection is rendered when no employee is selected.
const NoSelection = "No Employee Selected"

const help = `commands:
  list                      show all employees
  select <id>               edit an employee
  clear                     drop the selection
  set <name|phone|title> <value>
  save                      commit the draft
  cancel                    revert the draft
  show                      render the editor
  help                      this text
  quit                      exit`

// Console reads commands from in and writes views to out.
type Console struct {
	svc    *core.Service
	in     io.Reader
	out    io.Writer
	prompt bool
}

// New returns a console driving svc. A prompt is printed when out is a terminal.
func New(svc *core.Service, in io.Reader, out io.Writer) *Console {
	c := &Console{svc: svc, in: in, out: out}
	if f, ok := out.(*os.File); ok {
		c.prompt = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return c
}

// Run processes commands until quit, end of input or ctx is done. Input is
// read on a separate goroutine so cancellation does not wait for a line; that
// goroutine exits once in yields a line or is closed.
func (c *Console) Run(ctx context.Context) error {
	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(c.in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- sc.Err()
	}()

	c.showPrompt()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					return err
				default:
					return ctx.Err()
				}
			}
			quit, err := c.Exec(ctx, line)
			if err != nil {
				fmt.Fprintf(c.out, "error: %v\n", err)
			}
			if quit {
				return nil
			}
			c.showPrompt()
		}
	}
}

// Exec runs a single command line. It reports whether the console should stop.
func (c *Console) Exec(ctx context.Context, line string) (bool, error) {
	cmd, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
	rest = strings.TrimSpace(rest)
	switch strings.ToLower(cmd) {
	case "":
		return false, nil
	case "quit", "exit":
		return true, nil
	case "help":
		fmt.Fprintln(c.out, help)
		return false, nil
	case "list":
		c.List()
		return false, nil
	case "show":
		c.Render()
		return false, nil
	case "select":
		id, err := strconv.Atoi(rest)
		if err != nil {
			return false, fmt.Errorf("select: invalid id %q", rest)
		}
		if err := c.svc.Select(ctx, id); err != nil {
			return false, err
		}
	case "clear":
		if err := c.svc.Clear(ctx); err != nil {
			return false, err
		}
	case "set":
		field, value, _ := strings.Cut(rest, " ")
		if field == "" {
			return false, errors.New("set: missing field")
		}
		if err := c.svc.Edit(ctx, field, strings.TrimSpace(value)); err != nil {
			return false, err
		}
	case "save":
		if err := c.svc.Commit(ctx); err != nil {
			return false, err
		}
	case "cancel":
		if err := c.svc.Cancel(ctx); err != nil {
			return false, err
		}
	default:
		return false, fmt.Errorf("unknown command %q (try help)", cmd)
	}
	c.Render()
	return false, nil
}

// List writes the directory listing, marking the selected employee.
func (c *Console) List() {
	selected := -1
	if d, ok := c.svc.Draft(); ok {
		selected = d.EmployeeID
	}
	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	for e := range c.svc.List() {
		mark := " "
		if e.ID() == selected {
			mark = "*"
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", mark, e.ID(), e.Name, e.Title)
	}
	_ = tw.Flush()
}

// Render writes the editor for the current selection.
func (c *Console) Render() {
	draft, ok := c.svc.Draft()
	if !ok {
		fmt.Fprintln(c.out, NoSelection)
		return
	}
	committed, _ := c.svc.Selected()
	state := "unchanged"
	if c.svc.IsModified() {
		state = "modified: save/cancel enabled"
	}
	fmt.Fprintf(c.out, "Employee #%d: %s [%s]\n", draft.EmployeeID, committed.Name, state)
	tw := tabwriter.NewWriter(c.out, 0, 4, 1, ' ', 0)
	fmt.Fprintf(tw, "  %s:\t%s\n", domain.FieldName, draft.Name)
	fmt.Fprintf(tw, "  %s:\t%s\n", domain.FieldPhone, draft.Phone)
	fmt.Fprintf(tw, "  %s:\t%s\n", domain.FieldTitle, draft.Title)
	_ = tw.Flush()
}

func (c *Console) showPrompt() {
	if c.prompt {
		fmt.Fprint(c.out, "staffdir> ")
	}
}
