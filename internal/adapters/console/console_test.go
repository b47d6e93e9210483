package console

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"staffdir/internal/core"
	"staffdir/pkg/domain"
)

func newService(t *testing.T) *core.Service {
	t.Helper()
	svc, err := core.NewSeededService([]domain.Employee{
		domain.NewEmployee(0, "Bernice Ortiz", "4824931093", "CEO"),
		domain.NewEmployee(1, "Marnie Barnett", "3094812387", "CTO"),
	})
	if err != nil {
		t.Fatalf("service: %v", err)
	}
	return svc
}

func run(t *testing.T, svc *core.Service, script string) string {
	t.Helper()
	var out bytes.Buffer
	if err := New(svc, strings.NewReader(script), &out).Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	return out.String()
}

func TestRenderEmpty(t *testing.T) {
	out := run(t, newService(t), "show\n")
	if strings.TrimSpace(out) != NoSelection {
		t.Fatalf("expected %q, got %q", NoSelection, out)
	}
}

func TestEditSaveFlow(t *testing.T) {
	svc := newService(t)
	out := run(t, svc, "select 1\nset title Chief Technology Officer\nsave\nquit\nlist\n")
	for _, want := range []string{
		"Employee #1: Marnie Barnett [unchanged]",
		"Employee #1: Marnie Barnett [modified: save/cancel enabled]",
		"  title: Chief Technology Officer",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Bernice") {
		t.Fatalf("commands after quit must not run:\n%s", out)
	}
	e, _ := svc.Find(1)
	if e.Title != "Chief Technology Officer" || svc.IsModified() {
		t.Fatalf("unexpected state %+v modified=%v", e, svc.IsModified())
	}
}

func TestCancelRevertsDraft(t *testing.T) {
	svc := newService(t)
	run(t, svc, "select 0\nset name Ann\ncancel\n")
	d, ok := svc.Draft()
	if !ok || d.Name != "Bernice Ortiz" || svc.IsModified() {
		t.Fatalf("unexpected draft %+v", d)
	}
}

func TestListMarksSelection(t *testing.T) {
	svc := newService(t)
	out := run(t, svc, "select 1\nlist\n")
	var marked []string
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "*") {
			marked = append(marked, line)
		}
	}
	if len(marked) != 1 || !strings.Contains(marked[0], "Marnie Barnett") {
		t.Fatalf("unexpected marked rows %q", marked)
	}
	if !strings.Contains(out, "Bernice Ortiz") || !strings.Contains(out, "CEO") {
		t.Fatalf("listing incomplete:\n%s", out)
	}
}

func TestErrorsAreReportedAndLoopContinues(t *testing.T) {
	out := run(t, newService(t), "set name Ann\nselect x\nselect 42\nfly\nselect 0\nset salary 3\nset\n")
	for _, want := range []string{
		"error: edit: no employee selected",
		`error: select: invalid id "x"`,
		"error: unknown command \"fly\"",
		"Employee #0: Bernice Ortiz [unchanged]",
		`error: unknown employee field "salary"`,
		"error: set: missing field",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Count(out, "error: ") != 6 {
		t.Fatalf("expected six errors:\n%s", out)
	}
}

func TestExecClear(t *testing.T) {
	svc := newService(t)
	var out bytes.Buffer
	c := New(svc, strings.NewReader(""), &out)
	ctx := context.Background()
	if _, err := c.Exec(ctx, "select 0"); err != nil {
		t.Fatalf("select: %v", err)
	}
	if _, err := c.Exec(ctx, "clear"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, ok := svc.Draft(); ok {
		t.Fatalf("selection not cleared")
	}
	if !strings.HasSuffix(out.String(), NoSelection+"\n") {
		t.Fatalf("unexpected output %q", out.String())
	}
	if _, err := c.Exec(ctx, "save"); !errors.Is(err, domain.ErrNoSelection) {
		t.Fatalf("expected ErrNoSelection, got %v", err)
	}
	quit, err := c.Exec(ctx, "  ")
	if quit || err != nil {
		t.Fatalf("blank line: %v %v", quit, err)
	}
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out bytes.Buffer
	err := New(newService(t), strings.NewReader("select 0\n"), &out).Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestRunReturnsWhenCancelledWhileWaitingForInput(t *testing.T) {
	pr, pw := io.Pipe()
	defer func() { _ = pw.Close() }()
	ctx, cancel := context.WithCancel(context.Background())
	var out bytes.Buffer
	done := make(chan error, 1)
	go func() { done <- New(newService(t), pr, &out).Run(ctx) }()

	time.Sleep(20 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("Run still blocked after cancel")
	}
}
