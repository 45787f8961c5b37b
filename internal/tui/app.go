// Package tui renders a wizard.Controller as a Bubble Tea program.
package tui

import (
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/txwizard/internal/wizard"
)

// App is the root Bubble Tea model. It translates keys into controller
// intents and never mutates session state itself.
type App struct {
	ctrl *wizard.Controller
	keys *KeyRegistry

	address textinput.Model
	key     textinput.Model
	bar     progress.Model

	authCursor int
	lastStep   wizard.Step
	width      int
	height     int
	quitting   bool
}

func New(ctrl *wizard.Controller) *App {
	addr := textinput.New()
	addr.Prompt = "› "
	addr.CharLimit = 128
	addr.Width = 48

	key := textinput.New()
	key.Prompt = "› "
	key.Placeholder = "access key"
	key.EchoMode = textinput.EchoPassword
	key.EchoCharacter = '•'
	key.CharLimit = 128
	key.Width = 32

	bar := progress.New(
		progress.WithSolidFill(string(colorAccent)),
		progress.WithoutPercentage(),
		progress.WithWidth(40),
	)

	return &App{
		ctrl:     ctrl,
		keys:     NewKeyRegistry(DefaultBindings()),
		address:  addr,
		key:      key,
		bar:      bar,
		lastStep: ctrl.Step(),
		width:    80,
		height:   24,
	}
}

func (a *App) Init() tea.Cmd {
	return textinput.Blink
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.bar.Width = min(40, max(10, msg.Width-20))
		return a, nil
	case tea.KeyMsg:
		cmd := a.handleKey(msg)
		return a, tea.Batch(cmd, a.sync())
	}

	cmds := []tea.Cmd{a.ctrl.Update(msg)}
	var cmd tea.Cmd
	a.address, cmd = a.address.Update(msg)
	cmds = append(cmds, cmd)
	a.key, cmd = a.key.Update(msg)
	cmds = append(cmds, cmd)
	return a, tea.Batch(cmds...)
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	if isHardQuit(msg) {
		a.quitting = true
		return tea.Quit
	}
	step := a.ctrl.Step()
	switch a.keys.Action(msg, step.String()) {
	case actionQuit:
		a.quitting = true
		return tea.Quit
	case actionConfirm:
		if step == wizard.StepAuthChoice {
			return a.ctrl.ChooseAuthPath(a.authOptions()[a.authCursor])
		}
		return a.ctrl.Confirm()
	case actionBack:
		return a.ctrl.Back()
	case actionUp:
		return a.move(-1)
	case actionDown:
		return a.move(1)
	case actionUseKey:
		return a.ctrl.ChooseAuthPath(wizard.AuthKey)
	case actionPayFee:
		return a.ctrl.ChooseAuthPath(wizard.AuthPay)
	case actionCopy:
		return a.ctrl.CopyAddress()
	case actionReset:
		return a.ctrl.Reset()
	}

	var cmd tea.Cmd
	switch step {
	case wizard.StepDetails:
		a.address, cmd = a.address.Update(msg)
		a.ctrl.SetAddress(a.address.Value())
	case wizard.StepKeyEntry:
		a.key, cmd = a.key.Update(msg)
		a.ctrl.SetCredential(a.key.Value())
	}
	return cmd
}

// move steps the selection of the current list by delta, wrapping.
func (a *App) move(delta int) tea.Cmd {
	snap := a.ctrl.Snapshot()
	cat := a.ctrl.Catalog()
	switch snap.Step {
	case wizard.StepNetwork:
		cur := -1
		for i, n := range cat.Networks {
			if snap.Draft.Network != nil && n.ID == snap.Draft.Network.ID {
				cur = i
			}
		}
		if i, ok := next(cur, delta, len(cat.Networks)); ok {
			return a.ctrl.SelectNetwork(cat.Networks[i].ID)
		}
	case wizard.StepDetails:
		cur := -1
		for i, p := range cat.Plans {
			if p.Amount == snap.Draft.Amount {
				cur = i
			}
		}
		if i, ok := next(cur, delta, len(cat.Plans)); ok {
			return a.ctrl.SelectPlan(cat.Plans[i].Amount)
		}
	case wizard.StepAuthChoice:
		a.authCursor, _ = next(a.authCursor, delta, len(a.authOptions()))
	case wizard.StepFeePayment:
		cur := -1
		for i, m := range cat.PaymentMethods {
			if snap.SelectedPayment != nil && m.Name == snap.SelectedPayment.Name {
				cur = i
			}
		}
		if i, ok := next(cur, delta, len(cat.PaymentMethods)); ok {
			return a.ctrl.SelectPaymentMethod(cat.PaymentMethods[i].Name)
		}
	}
	return nil
}

func (a *App) authOptions() []wizard.AuthPath {
	return []wizard.AuthPath{wizard.AuthKey, wizard.AuthPay}
}

// next returns the index after cur moved by delta in a list of n items.
// With nothing selected, forward lands on the first item and backward on
// the last.
func next(cur, delta, n int) (int, bool) {
	if n == 0 {
		return 0, false
	}
	if cur < 0 {
		if delta < 0 {
			return n - 1, true
		}
		return 0, true
	}
	return ((cur+delta)%n + n) % n, true
}

// sync aligns text field focus and contents with the controller's step
// after a transition.
func (a *App) sync() tea.Cmd {
	step := a.ctrl.Step()
	if step == a.lastStep {
		return nil
	}
	a.lastStep = step
	draft := a.ctrl.Snapshot().Draft
	a.address.Blur()
	a.key.Blur()

	switch step {
	case wizard.StepDetails:
		a.address.SetValue(draft.Address)
		a.address.CursorEnd()
		a.address.Placeholder = "destination address"
		if draft.Network != nil {
			a.address.Placeholder = draft.Network.Short + " address"
		}
		return a.address.Focus()
	case wizard.StepKeyEntry:
		a.key.SetValue(draft.Credential)
		a.key.CursorEnd()
		return a.key.Focus()
	case wizard.StepAuthChoice:
		a.authCursor = 0
	case wizard.StepWelcome:
		a.address.Reset()
		a.key.Reset()
	}
	return nil
}
