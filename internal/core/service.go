package core

import (
	"context"
	"iter"
	"strconv"

	"staffdir/pkg/domain"
)

// Operation names reported to loggers, metrics, tracers and audit recorders.
const (
	OpSelect = "select_employee"
	OpClear  = "clear_selection"
	OpEdit   = "edit_employee"
	OpCommit = "commit_employee"
	OpCancel = "cancel_edit"
)

// Service is the contract a view uses to browse and edit the directory. It
// wraps a Directory and a single EditSession and reports every operation to
// the configured observability hooks.
type Service struct {
	dir       *Directory
	session   *EditSession
	clock     Clock
	logger    Logger
	audit     AuditRecorder
	metrics   MetricsRecorder
	tracer    Tracer
	listeners []CommitListener
}

// NewService constructs a service editing dir.
func NewService(dir *Directory, opts ...ServiceOption) *Service {
	o := defaultServiceOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if dir == nil {
		dir = NewDirectory()
	}
	return &Service{
		dir:       dir,
		session:   NewEditSession(dir),
		clock:     o.clock,
		logger:    o.logger,
		audit:     o.audit,
		metrics:   o.metrics,
		tracer:    o.tracer,
		listeners: o.listeners,
	}
}

// NewSeededService initializes a directory from records and wraps it.
func NewSeededService(records []domain.Employee, opts ...ServiceOption) (*Service, error) {
	dir, err := NewDirectoryFrom(records)
	if err != nil {
		return nil, err
	}
	return NewService(dir, opts...), nil
}

// Directory returns the underlying directory.
func (s *Service) Directory() *Directory { return s.dir }

// List yields the current directory listing.
func (s *Service) List() iter.Seq[domain.Employee] { return s.dir.List() }

// Find looks up an employee by id.
func (s *Service) Find(id int) (domain.Employee, bool) { return s.dir.Find(id) }

// Select starts editing the employee with id.
func (s *Service) Select(ctx context.Context, id int) error {
	return s.run(ctx, OpSelect, strconv.Itoa(id), func() error {
		if s.session.IsModified() {
			if prev, ok := s.session.Selected(); ok && prev.ID() != id {
				s.logger.Warn("discarding unsaved draft", "employee_id", prev.ID())
			}
		}
		return s.session.Select(id)
	})
}

// Clear drops the current selection.
func (s *Service) Clear(ctx context.Context) error {
	return s.run(ctx, OpClear, s.selectedID(), func() error {
		s.session.Clear()
		return nil
	})
}

// Edit sets field of the draft to value. field is one of name, phone or title.
func (s *Service) Edit(ctx context.Context, field, value string) error {
	return s.run(ctx, OpEdit, s.selectedID(), func() error {
		if _, ok := s.session.Draft(); !ok {
			return &domain.NoSelectionError{Op: "edit"}
		}
		f, err := domain.ParseField(field)
		if err != nil {
			return err
		}
		return s.session.Edit(f, value)
	})
}

// Commit writes the draft into the directory and notifies commit listeners.
func (s *Service) Commit(ctx context.Context) error {
	var wrote bool
	err := s.run(ctx, OpCommit, s.selectedID(), func() error {
		wrote = s.session.IsModified()
		return s.session.Commit()
	})
	if err != nil || !wrote {
		return err
	}
	if updated, ok := s.session.Selected(); ok {
		for _, fn := range s.listeners {
			fn(ctx, updated)
		}
	}
	return nil
}

// Cancel reverts the draft to the committed values.
func (s *Service) Cancel(ctx context.Context) error {
	return s.run(ctx, OpCancel, s.selectedID(), s.session.Cancel)
}

// IsModified reports whether the draft has unsaved edits.
func (s *Service) IsModified() bool { return s.session.IsModified() }

// Draft returns the current draft, if an employee is selected.
func (s *Service) Draft() (domain.Draft, bool) { return s.session.Draft() }

// Selected returns the committed state of the selected employee.
func (s *Service) Selected() (domain.Employee, bool) { return s.session.Selected() }

func (s *Service) selectedID() string {
	if d, ok := s.session.Draft(); ok {
		return strconv.Itoa(d.EmployeeID)
	}
	return ""
}

func (s *Service) run(ctx context.Context, op, entityID string, fn func() error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, span := s.tracer.Start(ctx, op)
	start := s.clock.Now()
	err := fn()
	duration := s.clock.Now().Sub(start)
	span.End(err)
	s.metrics.Observe(ctx, op, err == nil, duration)

	entry := AuditEntry{
		Operation: op,
		Entity:    domain.EntityEmployee,
		EntityID:  entityID,
		Status:    AuditStatusSuccess,
		Duration:  duration,
		Timestamp: s.clock.Now(),
	}
	if err != nil {
		entry.Status = AuditStatusError
		entry.Error = err.Error()
		s.logger.Error("operation failed", "operation", op, "employee_id", entityID, "error", err)
	} else {
		s.logger.Debug("operation completed", "operation", op, "employee_id", entityID, "duration", duration)
	}
	s.audit.Record(ctx, entry)
	return err
}
