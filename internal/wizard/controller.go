package wizard

import (
	"errors"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/jask/txwizard/internal/catalog"
)

const (
	DefaultCountdownSeconds = 300
	DefaultTickInterval     = time.Second
	DefaultFlashDuration    = 2 * time.Second
)

// ClipboardWriter is the side-effecting copy primitive.
type ClipboardWriter interface {
	Write(text string) error
}

// Options configures a Controller. Zero values fall back to defaults.
type Options struct {
	Clipboard        ClipboardWriter
	Schedule         Scheduler
	CountdownSeconds int
	TickInterval     time.Duration
	FlashDuration    time.Duration
	Now              func() time.Time
	NewID            func() string
}

// Receipt records a request that reached SUBMITTED.
type Receipt struct {
	Reference   string
	Network     catalog.Network
	Amount      string
	Fee         string
	Address     string
	Path        AuthPath
	SubmittedAt time.Time
}

// Snapshot is the read-only view handed to the presentation layer.
type Snapshot struct {
	Step             Step
	Draft            Draft
	Err              error
	SelectedPayment  *catalog.PaymentMethod
	SecondsRemaining int
	CountdownActive  bool
	ClipboardFlash   bool
	AuthPath         AuthPath
	Receipt          *Receipt
}

// Controller owns the session and is its only writer.
type Controller struct {
	cat       catalog.Catalog
	opts      Options
	sessionID string

	step     Step
	draft    Draft
	err      error
	selected *catalog.PaymentMethod
	path     AuthPath
	receipt  *Receipt

	countdown countdown
	flash     flash
}

type clipboardWrittenMsg struct{ err error }

// New returns a controller at WELCOME with an empty draft.
func New(cat catalog.Catalog, opts Options) *Controller {
	if opts.Schedule == nil {
		opts.Schedule = TeaScheduler
	}
	if opts.CountdownSeconds <= 0 {
		opts.CountdownSeconds = DefaultCountdownSeconds
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = DefaultTickInterval
	}
	if opts.FlashDuration <= 0 {
		opts.FlashDuration = DefaultFlashDuration
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	c := &Controller{cat: cat, opts: opts, sessionID: opts.NewID()}
	c.countdown.remaining = opts.CountdownSeconds
	log.Printf("wizard[%s]: session started", c.sessionID)
	return c
}

// Catalog returns the catalog the controller was built with.
func (c *Controller) Catalog() catalog.Catalog { return c.cat }

// SessionID identifies the current session in logs.
func (c *Controller) SessionID() string { return c.sessionID }

// CountdownTotal is the length of the payment window in seconds.
func (c *Controller) CountdownTotal() int { return c.opts.CountdownSeconds }

// Step returns the current step.
func (c *Controller) Step() Step { return c.step }

// Snapshot copies the current session state.
func (c *Controller) Snapshot() Snapshot {
	s := Snapshot{
		Step:             c.step,
		Draft:            c.draft.clone(),
		Err:              c.err,
		SecondsRemaining: c.countdown.remaining,
		CountdownActive:  c.countdown.active,
		ClipboardFlash:   c.flash.active,
		AuthPath:         c.path,
	}
	if c.selected != nil {
		m := *c.selected
		s.SelectedPayment = &m
	}
	if c.receipt != nil {
		r := *c.receipt
		s.Receipt = &r
	}
	return s
}

// Confirm is the step's forward action, subject to its guard.
func (c *Controller) Confirm() tea.Cmd {
	switch c.step {
	case StepWelcome:
		return c.enter(StepNetwork)
	case StepNetwork:
		if c.draft.Network == nil {
			return nil
		}
		return c.enter(StepDetails)
	case StepDetails:
		if err := c.draft.ValidateDetails(); err != nil {
			c.err = err
			log.Printf("wizard[%s]: details rejected: %v", c.sessionID, err)
			return nil
		}
		return c.enter(StepAuthChoice)
	case StepKeyEntry:
		c.err = nil
		if !Verify(c.draft.Credential, c.cat.Credential) {
			c.err = ErrInvalidCredential
			log.Printf("wizard[%s]: access key rejected", c.sessionID)
			return nil
		}
		return c.enter(StepSubmitted)
	case StepFeePayment:
		return c.enter(StepSubmitted)
	}
	return nil
}

// Back moves to the step's designated predecessor, if it has one.
func (c *Controller) Back() tea.Cmd {
	prev, ok := Back(c.step)
	if !ok {
		return nil
	}
	return c.enter(prev)
}

// ChooseAuthPath takes one of the AUTH_CHOICE branches.
func (c *Controller) ChooseAuthPath(p AuthPath) tea.Cmd {
	if c.step != StepAuthChoice {
		return nil
	}
	switch p {
	case AuthKey:
		c.path = p
		return c.enter(StepKeyEntry)
	case AuthPay:
		c.path = p
		return c.enter(StepFeePayment)
	}
	return nil
}

// SelectNetwork sets the draft network. Unknown ids are ignored.
func (c *Controller) SelectNetwork(id string) tea.Cmd {
	if c.step != StepNetwork {
		return nil
	}
	n, ok := c.cat.NetworkByID(id)
	if !ok {
		return nil
	}
	c.draft.Network = &n
	return nil
}

// SelectPlan sets amount and fee together from one catalog entry.
func (c *Controller) SelectPlan(amount string) tea.Cmd {
	if c.step != StepDetails {
		return nil
	}
	p, ok := c.cat.PlanByAmount(amount)
	if !ok {
		return nil
	}
	c.draft.Amount, c.draft.Fee = p.Amount, p.Fee
	c.clearValidationError()
	return nil
}

// SetAddress replaces the destination address.
func (c *Controller) SetAddress(addr string) tea.Cmd {
	if c.step != StepDetails {
		return nil
	}
	c.draft.Address = addr
	c.clearValidationError()
	return nil
}

// SetCredential replaces the entered access key. A pending credential
// error stays until the next attempt.
func (c *Controller) SetCredential(key string) tea.Cmd {
	if c.step != StepKeyEntry {
		return nil
	}
	c.draft.Credential = key
	return nil
}

// SelectPaymentMethod picks the deposit option to display.
func (c *Controller) SelectPaymentMethod(name string) tea.Cmd {
	if c.step != StepFeePayment {
		return nil
	}
	m, ok := c.cat.PaymentMethodByName(name)
	if !ok {
		return nil
	}
	c.selected = &m
	return nil
}

// CopyAddress writes the selected deposit address to the clipboard and
// raises the flash for FlashDuration. The flash shows whether or not the
// write succeeds.
func (c *Controller) CopyAddress() tea.Cmd {
	if c.step != StepFeePayment || c.selected == nil {
		return nil
	}
	addr := c.selected.Address
	expire := c.opts.Schedule(c.opts.FlashDuration, c.flash.trigger())
	w := c.opts.Clipboard
	if w == nil {
		return expire
	}
	write := func() tea.Msg { return clipboardWrittenMsg{err: w.Write(addr)} }
	return tea.Batch(write, expire)
}

// Reset starts a fresh session. Only valid from SUBMITTED.
func (c *Controller) Reset() tea.Cmd {
	if c.step != StepSubmitted {
		return nil
	}
	c.countdown.cancel()
	c.countdown.remaining = c.opts.CountdownSeconds
	c.flash.cancel()
	c.draft = Draft{}
	c.err = nil
	c.selected = nil
	c.path = AuthNone
	c.receipt = nil
	c.step = StepWelcome
	c.sessionID = c.opts.NewID()
	log.Printf("wizard[%s]: session reset", c.sessionID)
	return nil
}

// Update applies timer and clipboard messages. Anything else is ignored.
func (c *Controller) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case countdownTickMsg:
		wasActive := c.countdown.active
		if c.countdown.tick(msg) {
			return c.opts.Schedule(c.opts.TickInterval, countdownTickMsg{gen: c.countdown.gen})
		}
		if wasActive && !c.countdown.active {
			log.Printf("wizard[%s]: payment window elapsed", c.sessionID)
		}
	case flashExpiredMsg:
		c.flash.expire(msg)
	case clipboardWrittenMsg:
		if msg.err != nil {
			log.Printf("wizard[%s]: clipboard write failed: %v", c.sessionID, msg.err)
		}
	}
	return nil
}

// enter performs a step change and the scoped timer bookkeeping that goes
// with it.
func (c *Controller) enter(next Step) tea.Cmd {
	prev := c.step
	c.step = next
	c.err = nil
	log.Printf("wizard[%s]: %s -> %s", c.sessionID, prev, next)

	if prev == StepFeePayment {
		c.countdown.cancel()
		c.flash.cancel()
	}
	if next == StepSubmitted {
		c.submit()
	}
	if next == StepFeePayment {
		return c.opts.Schedule(c.opts.TickInterval, c.countdown.start(c.opts.CountdownSeconds))
	}
	return nil
}

func (c *Controller) submit() {
	r := &Receipt{
		Reference:   c.opts.NewID(),
		Amount:      c.draft.Amount,
		Fee:         c.draft.Fee,
		Address:     c.draft.Address,
		Path:        c.path,
		SubmittedAt: c.opts.Now(),
	}
	if c.draft.Network != nil {
		r.Network = *c.draft.Network
	}
	c.receipt = r
	log.Printf("wizard[%s]: submitted %s via %s (ref %s)", c.sessionID, r.Amount, r.Path, r.Reference)
}

func (c *Controller) clearValidationError() {
	var ve ValidationError
	if errors.As(c.err, &ve) {
		c.err = nil
	}
}
