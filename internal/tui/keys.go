package tui

import (
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/txwizard/internal/wizard"
)

const (
	actionQuit    = "quit"
	actionConfirm = "confirm"
	actionBack    = "back"
	actionUp      = "up"
	actionDown    = "down"
	actionUseKey  = "use_key"
	actionPayFee  = "pay_fee"
	actionCopy    = "copy"
	actionReset   = "reset"
)

// KeyBinding maps keys to an action within a set of scopes. A binding with
// no scopes applies everywhere. Scopes are wizard step names.
type KeyBinding struct {
	Keys        []string
	Action      string
	Description string
	Scopes      []string
}

type KeyRegistry struct {
	bindings []KeyBinding
}

func NewKeyRegistry(bindings []KeyBinding) *KeyRegistry {
	return &KeyRegistry{bindings: slices.Clone(bindings)}
}

func (r *KeyRegistry) BindingsForScope(scope string) []KeyBinding {
	out := make([]KeyBinding, 0, len(r.bindings))
	for _, b := range r.bindings {
		if scopeMatch(scope, b.Scopes) {
			out = append(out, b)
		}
	}
	return out
}

func (r *KeyRegistry) IsAction(msg tea.KeyMsg, action, scope string) bool {
	pressed := normalizeKey(msg.String())
	for _, b := range r.bindings {
		if b.Action != action || !scopeMatch(scope, b.Scopes) {
			continue
		}
		for _, k := range b.Keys {
			if normalizeKey(k) == pressed {
				return true
			}
		}
	}
	return false
}

// Action returns the first action bound to msg in scope, or "".
func (r *KeyRegistry) Action(msg tea.KeyMsg, scope string) string {
	for _, b := range r.bindings {
		if r.IsAction(msg, b.Action, scope) {
			return b.Action
		}
	}
	return ""
}

func normalizeKey(k string) string {
	return strings.ToLower(strings.TrimSpace(k))
}

func scopeMatch(scope string, scopes []string) bool {
	if len(scopes) == 0 {
		return true
	}
	for _, s := range scopes {
		if s == "*" || s == scope {
			return true
		}
	}
	return false
}

func scopes(steps ...wizard.Step) []string {
	out := make([]string, len(steps))
	for i, s := range steps {
		out[i] = s.String()
	}
	return out
}

// DefaultBindings is the key map. Steps with a text field (DETAILS,
// KEY_ENTRY) bind no printable keys so typing reaches the field.
func DefaultBindings() []KeyBinding {
	lists := scopes(wizard.StepNetwork, wizard.StepAuthChoice, wizard.StepFeePayment)
	return []KeyBinding{
		{Keys: []string{"enter"}, Action: actionConfirm, Description: "start", Scopes: scopes(wizard.StepWelcome)},
		{Keys: []string{"enter"}, Action: actionConfirm, Description: "continue", Scopes: scopes(wizard.StepNetwork, wizard.StepDetails, wizard.StepAuthChoice)},
		{Keys: []string{"enter"}, Action: actionConfirm, Description: "verify", Scopes: scopes(wizard.StepKeyEntry)},
		{Keys: []string{"enter"}, Action: actionConfirm, Description: "confirm sent", Scopes: scopes(wizard.StepFeePayment)},
		{Keys: []string{"up", "k"}, Action: actionUp, Description: "prev", Scopes: lists},
		{Keys: []string{"down", "j"}, Action: actionDown, Description: "next", Scopes: lists},
		{Keys: []string{"up"}, Action: actionUp, Description: "prev plan", Scopes: scopes(wizard.StepDetails)},
		{Keys: []string{"down"}, Action: actionDown, Description: "next plan", Scopes: scopes(wizard.StepDetails)},
		{Keys: []string{"a", "1"}, Action: actionUseKey, Description: "access key", Scopes: scopes(wizard.StepAuthChoice)},
		{Keys: []string{"p", "2"}, Action: actionPayFee, Description: "pay fee", Scopes: scopes(wizard.StepAuthChoice)},
		{Keys: []string{"c"}, Action: actionCopy, Description: "copy address", Scopes: scopes(wizard.StepFeePayment)},
		{Keys: []string{"enter", "r"}, Action: actionReset, Description: "start over", Scopes: scopes(wizard.StepSubmitted)},
		{Keys: []string{"esc"}, Action: actionBack, Description: "back", Scopes: scopes(
			wizard.StepNetwork, wizard.StepDetails, wizard.StepAuthChoice, wizard.StepKeyEntry, wizard.StepFeePayment)},
		{Keys: []string{"q"}, Action: actionQuit, Description: "quit", Scopes: scopes(
			wizard.StepWelcome, wizard.StepNetwork, wizard.StepAuthChoice, wizard.StepFeePayment, wizard.StepSubmitted)},
		{Keys: []string{"ctrl+c"}, Action: actionQuit, Description: "quit", Scopes: scopes(wizard.StepDetails, wizard.StepKeyEntry)},
	}
}

// ctrl+c always quits, whatever the step binds.
func isHardQuit(msg tea.KeyMsg) bool {
	return msg.Type == tea.KeyCtrlC
}
