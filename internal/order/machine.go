package order

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/bekzodart/storefront/internal/domain/errors"
	"github.com/bekzodart/storefront/internal/domain/model"
)

// Submitter is the subset of the catalog client the machine needs.
type Submitter interface {
	CreateOrder(ctx context.Context, draft model.OrderDraft) (*model.OrderConfirmation, error)
}

// State names one node of the submission machine.
type State string

const (
	StateIdle       State = "idle"
	StateInvalid    State = "invalid"
	StateSubmitting State = "submitting"
	StateSucceeded  State = "succeeded"
	StateFailed     State = "failed"
)

// Snapshot is the externally visible condition of one purchase dialog.
type Snapshot struct {
	State        State
	Fields       Fields
	FieldErrors  domainErrors.FieldErrors
	Failure      error
	Confirmation *model.OrderConfirmation
	Items        []model.LineItem
	Total        float64
}

// Machine drives one purchase dialog: it validates buyer fields, derives the
// order payload from the opened candidate set, submits exactly once per
// attempt, and guarantees that a response arriving after Close never
// resurrects the dialog's visible state.
type Machine struct {
	submitter  Submitter
	logger     *slog.Logger
	resetDelay time.Duration

	mu           sync.Mutex
	resetTimer   *time.Timer
	open         bool
	state        State
	fields       Fields
	fieldErrors  domainErrors.FieldErrors
	failure      error
	confirmation *model.OrderConfirmation
	items        []model.LineItem
	total        float64
	generation   uint64

	subMu  sync.Mutex
	nextID int
	subs   map[int]func(Snapshot)
}

// NewMachine constructs a closed machine; call OpenSingle or OpenCart first.
// A positive resetDelay schedules an automatic AcknowledgeSuccess that long
// after a successful submission; zero leaves the reset to the host.
func NewMachine(submitter Submitter, resetDelay time.Duration, logger *slog.Logger) *Machine {
	return &Machine{
		submitter:  submitter,
		logger:     logger,
		resetDelay: resetDelay,
		state:      StateIdle,
		subs:       make(map[int]func(Snapshot)),
	}
}

// OpenSingle opens the dialog against one artwork.
func (m *Machine) OpenSingle(artwork model.Artwork) {
	m.openWith([]model.Artwork{artwork})
}

// OpenCart opens the dialog against a cart snapshot. Line item order follows
// the snapshot; later cart mutations do not affect this dialog.
func (m *Machine) OpenCart(artworks []model.Artwork) {
	m.openWith(artworks)
}

func (m *Machine) openWith(artworks []model.Artwork) {
	m.mu.Lock()
	m.stopResetTimerLocked()
	m.generation++
	m.open = true
	m.state = StateIdle
	m.fields = Fields{}
	m.fieldErrors = nil
	m.failure = nil
	m.confirmation = nil

	m.items = make([]model.LineItem, len(artworks))
	m.total = 0
	for i, a := range artworks {
		m.items[i] = model.LineItem{ArtworkID: a.ID, Quantity: 1}
		m.total += a.Price
	}
	snapshot := m.snapshotLocked()
	m.mu.Unlock()
	m.publish(snapshot)
}

// Snapshot returns the current dialog state.
func (m *Machine) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

// State returns the current machine state.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Subscribe registers a callback for dialog state changes and returns an
// unsubscribe function.
func (m *Machine) Subscribe(fn func(Snapshot)) func() {
	m.subMu.Lock()
	defer m.subMu.Unlock()
	id := m.nextID
	m.nextID++
	m.subs[id] = fn
	return func() {
		m.subMu.Lock()
		defer m.subMu.Unlock()
		delete(m.subs, id)
	}
}

// Submit validates the fields and, when valid, sends the order. Validation
// failure parks the machine in StateInvalid with every field error at once;
// it never reaches the network. From StateFailed a new Submit retries with
// the retained fields.
func (m *Machine) Submit(ctx context.Context, fields Fields) error {
	m.mu.Lock()
	if !m.open {
		m.mu.Unlock()
		return domainErrors.ErrDialogClosed
	}
	if m.state == StateSubmitting {
		m.mu.Unlock()
		return domainErrors.ErrSubmissionInFlight
	}
	if len(m.items) == 0 {
		m.mu.Unlock()
		return domainErrors.ErrEmptyOrder
	}

	m.fields = fields
	if errs := Validate(fields); len(errs) > 0 {
		m.state = StateInvalid
		m.fieldErrors = errs
		m.failure = nil
		snapshot := m.snapshotLocked()
		m.mu.Unlock()
		m.publish(snapshot)
		return errs
	}

	attempt := uuid.NewString()
	gen := m.generation
	draft := model.OrderDraft{
		FullName: fields.FullName,
		Phone:    fields.Phone,
		Email:    fields.Email,
		Address:  fields.Address,
		Agreed:   fields.Agreed,
		Items:    append([]model.LineItem(nil), m.items...),
		Total:    m.total,
	}

	m.state = StateSubmitting
	m.fieldErrors = nil
	m.failure = nil
	snapshot := m.snapshotLocked()
	m.mu.Unlock()
	m.publish(snapshot)

	go m.deliver(ctx, gen, attempt, draft)
	return nil
}

func (m *Machine) deliver(ctx context.Context, gen uint64, attempt string, draft model.OrderDraft) {
	confirmation, err := m.submitter.CreateOrder(ctx, draft)

	m.mu.Lock()
	if !m.open || gen != m.generation {
		m.mu.Unlock()
		m.logger.Debug("late order response ignored", slog.String("attempt", attempt))
		return
	}

	if err != nil {
		m.state = StateFailed
		m.failure = err
		snapshot := m.snapshotLocked()
		m.mu.Unlock()
		m.logger.Error("order submission failed",
			slog.String("attempt", attempt), slog.String("error", err.Error()))
		m.publish(snapshot)
		return
	}

	m.state = StateSucceeded
	m.confirmation = confirmation
	if m.resetDelay > 0 {
		m.resetTimer = time.AfterFunc(m.resetDelay, m.AcknowledgeSuccess)
	}
	snapshot := m.snapshotLocked()
	m.mu.Unlock()
	m.logger.Info("order submitted",
		slog.String("attempt", attempt), slog.String("order_id", confirmation.OrderID))
	m.publish(snapshot)
}

// EditField signals that the buyer changed a field; an Invalid attempt
// returns to Idle so the next Submit revalidates from scratch.
func (m *Machine) EditField() {
	m.mu.Lock()
	if m.state != StateInvalid {
		m.mu.Unlock()
		return
	}
	m.state = StateIdle
	m.fieldErrors = nil
	snapshot := m.snapshotLocked()
	m.mu.Unlock()
	m.publish(snapshot)
}

// AcknowledgeSuccess clears the buyer fields after the success confirmation
// was dismissed or timed out. Clearing only now keeps the draft safe if the
// success signal itself is delayed.
func (m *Machine) AcknowledgeSuccess() {
	m.mu.Lock()
	if m.state != StateSucceeded {
		m.mu.Unlock()
		return
	}
	m.stopResetTimerLocked()
	m.state = StateIdle
	m.fields = Fields{}
	m.confirmation = nil
	snapshot := m.snapshotLocked()
	m.mu.Unlock()
	m.publish(snapshot)
}

// Close cancels the dialog from any state, including mid-submission. The
// in-flight request may still complete on the wire, but its resolution can
// no longer touch this dialog.
func (m *Machine) Close() {
	m.mu.Lock()
	if !m.open {
		m.mu.Unlock()
		return
	}
	m.stopResetTimerLocked()
	m.generation++
	m.open = false
	m.state = StateIdle
	m.fields = Fields{}
	m.fieldErrors = nil
	m.failure = nil
	m.confirmation = nil
	m.items = nil
	m.total = 0
	snapshot := m.snapshotLocked()
	m.mu.Unlock()
	m.publish(snapshot)
}

func (m *Machine) stopResetTimerLocked() {
	if m.resetTimer != nil {
		m.resetTimer.Stop()
		m.resetTimer = nil
	}
}

func (m *Machine) snapshotLocked() Snapshot {
	return Snapshot{
		State:        m.state,
		Fields:       m.fields,
		FieldErrors:  append(domainErrors.FieldErrors(nil), m.fieldErrors...),
		Failure:      m.failure,
		Confirmation: m.confirmation,
		Items:        append([]model.LineItem(nil), m.items...),
		Total:        m.total,
	}
}

func (m *Machine) publish(snapshot Snapshot) {
	m.subMu.Lock()
	fns := make([]func(Snapshot), 0, len(m.subs))
	for _, fn := range m.subs {
		fns = append(fns, fn)
	}
	m.subMu.Unlock()

	for _, fn := range fns {
		fn(snapshot)
	}
}
