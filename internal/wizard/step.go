package wizard

// Step identifies one screen of the wizard.
type Step int

const (
	StepWelcome Step = iota
	StepNetwork
	StepDetails
	StepAuthChoice
	StepKeyEntry
	StepFeePayment
	StepSubmitted
)

// Steps lists every step in display order.
var Steps = []Step{
	StepWelcome,
	StepNetwork,
	StepDetails,
	StepAuthChoice,
	StepKeyEntry,
	StepFeePayment,
	StepSubmitted,
}

func (s Step) String() string {
	switch s {
	case StepWelcome:
		return "WELCOME"
	case StepNetwork:
		return "NETWORK"
	case StepDetails:
		return "DETAILS"
	case StepAuthChoice:
		return "AUTH_CHOICE"
	case StepKeyEntry:
		return "KEY_ENTRY"
	case StepFeePayment:
		return "FEE_PAYMENT"
	case StepSubmitted:
		return "SUBMITTED"
	default:
		return "UNKNOWN"
	}
}

// Title is the human label shown in headers.
func (s Step) Title() string {
	switch s {
	case StepWelcome:
		return "Welcome"
	case StepNetwork:
		return "Network"
	case StepDetails:
		return "Details"
	case StepAuthChoice:
		return "Authorize"
	case StepKeyEntry:
		return "Access key"
	case StepFeePayment:
		return "Fee payment"
	case StepSubmitted:
		return "Submitted"
	default:
		return "Unknown"
	}
}

// backTargets maps each step to its single designated predecessor.
// WELCOME and SUBMITTED have none.
var backTargets = map[Step]Step{
	StepNetwork:    StepWelcome,
	StepDetails:    StepNetwork,
	StepAuthChoice: StepDetails,
	StepKeyEntry:   StepAuthChoice,
	StepFeePayment: StepAuthChoice,
}

// Back returns the predecessor of s and whether one exists.
func Back(s Step) (Step, bool) {
	t, ok := backTargets[s]
	return t, ok
}

// AuthPath is the branch chosen at AUTH_CHOICE.
type AuthPath int

const (
	AuthNone AuthPath = iota
	AuthKey
	AuthPay
)

func (p AuthPath) String() string {
	switch p {
	case AuthKey:
		return "key"
	case AuthPay:
		return "pay"
	default:
		return "none"
	}
}
