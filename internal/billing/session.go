package billing

import (
	"errors"
	"sync"
	"time"

	"trade2cart/internal/domain"
	apperrors "trade2cart/internal/errors"
)

// State is the processing-workflow state. Editing and Reviewing alternate
// until commit; Reviewing -> Editing is the only backward edge and it
// discards the frozen snapshot. Committing never goes back to Editing: a
// retryable commit failure returns to Reviewing with the snapshot intact.
type State string

const (
	StateEditing    State = "editing"
	StateReviewing  State = "reviewing"
	StateCommitting State = "committing"
	StateDone       State = "done"
	StateAborted    State = "aborted"
	StateFailed     State = "failed"
)

var ErrInvalidState = errors.New("operation not allowed in current workflow state")

// Session is one vendor's in-flight processing of one order. It exclusively
// owns its builder and the order/customer snapshots taken at entry; all state
// is in memory until commit, so cancelling is always safe before then. The
// mutex serializes operations so they apply in issuance order.
type Session struct {
	ID       string
	VendorID string
	Order    domain.Order
	Customer domain.Customer

	mu      sync.Mutex
	state   State
	builder *Builder
	frozen  *FrozenBill

	createdAt time.Time
}

func newSession(id, vendorID string, order domain.Order, customer domain.Customer, builder *Builder) *Session {
	return &Session{
		ID:        id,
		VendorID:  vendorID,
		Order:     order,
		Customer:  customer,
		state:     StateEditing,
		builder:   builder,
		createdAt: time.Now(),
	}
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) AddLine(materialName string, quantity float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateEditing {
		return ErrInvalidState
	}
	return s.builder.AddLine(materialName, quantity)
}

func (s *Session) RemoveLine(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateEditing {
		return ErrInvalidState
	}
	return s.builder.RemoveLine(index)
}

func (s *Session) SetQuantity(index int, quantity float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateEditing {
		return ErrInvalidState
	}
	return s.builder.SetQuantity(index, quantity)
}

// Finalize freezes the current lines and moves to Reviewing.
func (s *Session) Finalize() (*FrozenBill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateEditing {
		return nil, ErrInvalidState
	}

	frozen, err := s.builder.Finalize()
	if err != nil {
		return nil, err
	}

	s.frozen = frozen
	s.state = StateReviewing
	return frozen, nil
}

// Edit returns from Reviewing to Editing, discarding the frozen snapshot.
// There is at most one live snapshot per session.
func (s *Session) Edit() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateReviewing {
		return ErrInvalidState
	}

	s.frozen = nil
	s.state = StateEditing
	return nil
}

// BeginCommit moves to Committing and hands out the frozen snapshot. While
// Committing, every other operation (including a second commit) is refused;
// this is the duplicate-submission guard.
func (s *Session) BeginCommit() (*FrozenBill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateReviewing {
		return nil, ErrInvalidState
	}

	s.state = StateCommitting
	return s.frozen, nil
}

// FinishCommit resolves the Committing state from the commit outcome:
// success ends the workflow, a conflict means another session completed the
// order and the workflow aborts, a partial commit is terminal, and anything
// else returns to Reviewing so the vendor can retry without re-entering
// lines.
func (s *Session) FinishCommit(commitErr error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateCommitting {
		return
	}

	switch {
	case commitErr == nil:
		s.frozen = nil
		s.state = StateDone
	case isPartialCommit(commitErr):
		s.state = StateFailed
	case isConflict(commitErr):
		s.state = StateAborted
	default:
		s.state = StateReviewing
	}
}

// Cancel discards the workflow. Nothing has been written before commit, so
// the order, customer and catalog are untouched.
func (s *Session) Cancel() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateEditing && s.state != StateReviewing {
		return ErrInvalidState
	}

	s.frozen = nil
	s.state = StateAborted
	return nil
}

// View reports the session for display.
func (s *Session) View() SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()

	view := SessionView{
		ID:       s.ID,
		OrderID:  s.Order.ID,
		State:    s.state,
		Lines:    s.builder.Lines(),
		Total:    s.builder.Total(),
		Customer: s.Customer.Name,
		Mobile:   s.Customer.Phone,
	}
	if s.frozen != nil {
		view.FrozenTotal = &s.frozen.Total
	}
	return view
}

type SessionView struct {
	ID          string
	OrderID     string
	State       State
	Lines       []domain.BillLineItem
	Total       float64
	FrozenTotal *float64
	Customer    string
	Mobile      string
}

func isPartialCommit(err error) bool {
	_, ok := apperrors.IsPartialCommitError(err)
	return ok
}

func isConflict(err error) bool {
	_, ok := apperrors.IsConflictError(err)
	return ok
}
