package wizard

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/jask/txwizard/internal/catalog"
)

const testKey = "s3cret-key-123"

func testCatalog() catalog.Catalog {
	c := catalog.Default()
	c.Credential = testKey
	return c
}

// manualClock collects scheduled messages and releases them as time is
// advanced, standing in for tea.Tick.
type manualClock struct {
	now     time.Duration
	seq     int
	pending []scheduled
}

type scheduled struct {
	at  time.Duration
	seq int
	msg tea.Msg
}

func (mc *manualClock) schedule(d time.Duration, msg tea.Msg) tea.Cmd {
	mc.seq++
	mc.pending = append(mc.pending, scheduled{at: mc.now + d, seq: mc.seq, msg: msg})
	return nil
}

// advance moves the clock forward by d, delivering every message that
// comes due (including ones scheduled while delivering) in time order.
func (mc *manualClock) advance(t *testing.T, c *Controller, d time.Duration) {
	t.Helper()
	target := mc.now + d
	for {
		sort.Slice(mc.pending, func(i, j int) bool {
			if mc.pending[i].at == mc.pending[j].at {
				return mc.pending[i].seq < mc.pending[j].seq
			}
			return mc.pending[i].at < mc.pending[j].at
		})
		if len(mc.pending) == 0 || mc.pending[0].at > target {
			break
		}
		next := mc.pending[0]
		mc.pending = mc.pending[1:]
		mc.now = next.at
		runCmd(t, c, c.Update(next.msg))
	}
	mc.now = target
}

type fakeClipboard struct {
	writes []string
	err    error
}

func (f *fakeClipboard) Write(text string) error {
	f.writes = append(f.writes, text)
	return f.err
}

// runCmd executes cmd and feeds what it produces back into c.
func runCmd(t *testing.T, c *Controller, cmd tea.Cmd) {
	t.Helper()
	for i := 0; cmd != nil && i < 32; i++ {
		msg := cmd()
		if batch, ok := msg.(tea.BatchMsg); ok {
			for _, sub := range batch {
				runCmd(t, c, sub)
			}
			return
		}
		cmd = c.Update(msg)
	}
}

func newTestController(t *testing.T) (*Controller, *manualClock, *fakeClipboard) {
	t.Helper()
	mc := &manualClock{}
	cb := &fakeClipboard{}
	ids := 0
	c := New(testCatalog(), Options{
		Clipboard: cb,
		Schedule:  mc.schedule,
		Now:       func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) },
		NewID: func() string {
			ids++
			return fmt.Sprintf("id-%d", ids)
		},
	})
	return c, mc, cb
}

// driveTo walks a fresh controller to target along the happy path.
func driveTo(t *testing.T, c *Controller, target Step) {
	t.Helper()
	steps := []func(){
		func() { c.Confirm() },
		func() { c.SelectNetwork("trc20"); c.Confirm() },
		func() { c.SelectPlan("10k"); c.SetAddress("T0123456789abcdef"); c.Confirm() },
	}
	for _, s := range steps {
		if c.Step() == target {
			return
		}
		s()
	}
	switch target {
	case StepAuthChoice:
	case StepKeyEntry:
		c.ChooseAuthPath(AuthKey)
	case StepFeePayment:
		c.ChooseAuthPath(AuthPay)
	case StepSubmitted:
		c.ChooseAuthPath(AuthPay)
		c.Confirm()
	}
	require.Equal(t, target, c.Step())
}

func TestInitialState(t *testing.T) {
	t.Parallel()
	c, _, _ := newTestController(t)
	s := c.Snapshot()
	require.Equal(t, StepWelcome, s.Step)
	require.True(t, s.Draft.IsEmpty())
	require.NoError(t, s.Err)
	require.Nil(t, s.SelectedPayment)
	require.False(t, s.CountdownActive)
	require.False(t, s.ClipboardFlash)
	require.Equal(t, DefaultCountdownSeconds, s.SecondsRemaining)
}

func TestHappyPathWithAccessKey(t *testing.T) {
	t.Parallel()
	c, _, _ := newTestController(t)

	c.Confirm()
	require.Equal(t, StepNetwork, c.Step())

	c.Confirm()
	require.Equal(t, StepNetwork, c.Step(), "network guard must block")

	c.SelectNetwork("erc20")
	c.Confirm()
	require.Equal(t, StepDetails, c.Step())

	c.SelectPlan("5k")
	c.SetAddress("0xabcdef0123456789")
	c.Confirm()
	require.Equal(t, StepAuthChoice, c.Step())

	c.ChooseAuthPath(AuthKey)
	require.Equal(t, StepKeyEntry, c.Step())

	c.SetCredential(testKey)
	c.Confirm()
	s := c.Snapshot()
	require.Equal(t, StepSubmitted, s.Step)
	require.NotNil(t, s.Receipt)
	require.Equal(t, "erc20", s.Receipt.Network.ID)
	require.Equal(t, "5k", s.Receipt.Amount)
	require.Equal(t, "27", s.Receipt.Fee)
	require.Equal(t, AuthKey, s.Receipt.Path)
	require.NotEmpty(t, s.Receipt.Reference)
}

func TestBackTargets(t *testing.T) {
	t.Parallel()
	want := map[Step]Step{
		StepNetwork:    StepWelcome,
		StepDetails:    StepNetwork,
		StepAuthChoice: StepDetails,
		StepKeyEntry:   StepAuthChoice,
		StepFeePayment: StepAuthChoice,
	}
	for _, s := range Steps {
		got, ok := Back(s)
		exp, has := want[s]
		require.Equal(t, has, ok, s.String())
		if has {
			require.Equal(t, exp, got, s.String())
		}
	}

	for from, to := range want {
		// Reached along the happy path the draft is filled; the target must
		// not depend on it.
		c, _, _ := newTestController(t)
		driveTo(t, c, from)
		c.Back()
		require.Equal(t, to, c.Step(), "back from %s", from)
	}

	c, _, _ := newTestController(t)
	c.Back()
	require.Equal(t, StepWelcome, c.Step())

	c, _, _ = newTestController(t)
	driveTo(t, c, StepSubmitted)
	c.Back()
	require.Equal(t, StepSubmitted, c.Step(), "SUBMITTED only exits through reset")
}

func TestValidateDetailsOrder(t *testing.T) {
	t.Parallel()
	c, _, _ := newTestController(t)
	driveTo(t, c, StepDetails)

	c.SetAddress("a-very-long-destination-address")
	c.Confirm()
	require.Equal(t, StepDetails, c.Step())
	require.ErrorIs(t, c.Snapshot().Err, ErrMissingAmount)

	c.SelectPlan("3k")
	require.NoError(t, c.Snapshot().Err, "field edit clears validation error")

	c.SetAddress("   short    ")
	c.Confirm()
	require.ErrorIs(t, c.Snapshot().Err, ErrAddressTooShort)
	var ve ValidationError
	require.True(t, errors.As(c.Snapshot().Err, &ve))
}

func TestValidateDetailsAddressLength(t *testing.T) {
	t.Parallel()
	cases := []struct {
		addr string
		err  error
	}{
		{"123456789", ErrAddressTooShort},
		{"  123456789  ", ErrAddressTooShort},
		{"1234567890", nil},
		{"   1234567890   ", nil},
		{"", ErrAddressTooShort},
	}
	for _, tc := range cases {
		d := Draft{Amount: "3k", Fee: "20", Address: tc.addr}
		err := d.ValidateDetails()
		if tc.err == nil {
			require.NoError(t, err, "%q", tc.addr)
		} else {
			require.ErrorIs(t, err, tc.err, "%q", tc.addr)
		}
	}
	require.ErrorIs(t, Draft{Address: "1234567890"}.ValidateDetails(), ErrMissingAmount)
}

func TestCredentialCheck(t *testing.T) {
	t.Parallel()
	require.True(t, Verify(" "+testKey+" ", testKey))
	require.False(t, Verify("s3cret-key-124", testKey))

	c, _, _ := newTestController(t)
	driveTo(t, c, StepKeyEntry)

	c.SetCredential("s3cret-key-124")
	c.Confirm()
	s := c.Snapshot()
	require.Equal(t, StepKeyEntry, s.Step)
	var ce CredentialError
	require.True(t, errors.As(s.Err, &ce))

	// retries are unlimited
	for i := 0; i < 5; i++ {
		c.Confirm()
		require.Equal(t, StepKeyEntry, c.Step())
	}

	c.SetCredential("\t" + testKey + "  ")
	require.ErrorIs(t, c.Snapshot().Err, ErrInvalidCredential, "editing alone keeps the error")
	c.Confirm()
	require.Equal(t, StepSubmitted, c.Step())
	require.NoError(t, c.Snapshot().Err)
}

func TestCredentialErrorClearedByNavigation(t *testing.T) {
	t.Parallel()
	c, _, _ := newTestController(t)
	driveTo(t, c, StepKeyEntry)
	c.SetCredential("wrong")
	c.Confirm()
	require.Error(t, c.Snapshot().Err)
	c.Back()
	require.Equal(t, StepAuthChoice, c.Step())
	require.NoError(t, c.Snapshot().Err)
}

func TestPlanPairInvariant(t *testing.T) {
	t.Parallel()
	cat := testCatalog()
	rng := rand.New(rand.NewSource(7))
	c, mc, _ := newTestController(t)

	amounts := []string{"", "bogus"}
	for _, p := range cat.Plans {
		amounts = append(amounts, p.Amount)
	}
	ops := []func(){
		func() { c.Confirm() },
		func() { c.Back() },
		func() { c.SelectNetwork(cat.Networks[rng.Intn(len(cat.Networks))].ID) },
		func() { c.SelectPlan(amounts[rng.Intn(len(amounts))]) },
		func() { c.SetAddress("addr-0123456789") },
		func() { c.SetCredential(testKey) },
		func() { c.ChooseAuthPath(AuthPath(rng.Intn(3))) },
		func() { c.SelectPaymentMethod(cat.PaymentMethods[rng.Intn(len(cat.PaymentMethods))].Name) },
		func() { runCmd(t, c, c.CopyAddress()) },
		func() { c.Reset() },
		func() { mc.advance(t, c, time.Second) },
	}
	for i := 0; i < 5000; i++ {
		ops[rng.Intn(len(ops))]()
		d := c.Snapshot().Draft
		if d.Amount == "" && d.Fee == "" {
			continue
		}
		require.True(t, cat.HasPair(d.Amount, d.Fee), "off-catalog pair (%q, %q)", d.Amount, d.Fee)
	}
}

func TestSelectPlanOverwritesBothFields(t *testing.T) {
	t.Parallel()
	c, _, _ := newTestController(t)
	driveTo(t, c, StepDetails)
	c.SelectPlan("3k")
	c.SelectPlan("100k")
	d := c.Snapshot().Draft
	require.Equal(t, "100k", d.Amount)
	require.Equal(t, "210", d.Fee)

	c.SelectPlan("unknown")
	d = c.Snapshot().Draft
	require.Equal(t, "100k", d.Amount)
	require.Equal(t, "210", d.Fee)
}

func TestIntentsOutsideTheirStepAreNoOps(t *testing.T) {
	t.Parallel()
	c, _, _ := newTestController(t)
	c.SelectNetwork("trc20")
	c.SelectPlan("3k")
	c.SetAddress("0123456789")
	c.SetCredential(testKey)
	c.ChooseAuthPath(AuthKey)
	c.SelectPaymentMethod("BTC")
	require.Nil(t, c.CopyAddress())
	c.Reset()
	s := c.Snapshot()
	require.Equal(t, StepWelcome, s.Step)
	require.True(t, s.Draft.IsEmpty())
	require.Nil(t, s.SelectedPayment)
}

func TestCountdown(t *testing.T) {
	t.Parallel()
	c, mc, _ := newTestController(t)
	driveTo(t, c, StepFeePayment)

	s := c.Snapshot()
	require.Equal(t, 300, s.SecondsRemaining)
	require.True(t, s.CountdownActive)

	mc.advance(t, c, time.Second)
	require.Equal(t, 299, c.Snapshot().SecondsRemaining)

	mc.advance(t, c, 299*time.Second)
	s = c.Snapshot()
	require.Equal(t, 0, s.SecondsRemaining)
	require.False(t, s.CountdownActive)
	require.Equal(t, StepFeePayment, s.Step, "timeout forces no transition")
	require.Empty(t, mc.pending)

	mc.advance(t, c, time.Minute)
	require.Equal(t, 0, c.Snapshot().SecondsRemaining)
}

func TestCountdownCancelledOnLeaveAndRestartedOnReentry(t *testing.T) {
	t.Parallel()
	c, mc, _ := newTestController(t)
	driveTo(t, c, StepFeePayment)

	mc.advance(t, c, 10*time.Second)
	require.Equal(t, 290, c.Snapshot().SecondsRemaining)

	c.Back()
	require.Equal(t, StepAuthChoice, c.Step())
	require.False(t, c.Snapshot().CountdownActive)

	frozen := c.Snapshot().SecondsRemaining
	mc.advance(t, c, 30*time.Second)
	require.Equal(t, frozen, c.Snapshot().SecondsRemaining, "no tick may leak out of FEE_PAYMENT")

	c.ChooseAuthPath(AuthPay)
	require.Equal(t, 300, c.Snapshot().SecondsRemaining)
	mc.advance(t, c, 3*time.Second)
	require.Equal(t, 297, c.Snapshot().SecondsRemaining, "only the new run ticks")
}

func TestCountdownStopsOnSubmit(t *testing.T) {
	t.Parallel()
	c, mc, _ := newTestController(t)
	driveTo(t, c, StepFeePayment)
	mc.advance(t, c, 5*time.Second)
	c.Confirm()
	require.Equal(t, StepSubmitted, c.Step())
	require.False(t, c.Snapshot().CountdownActive)
	before := c.Snapshot().SecondsRemaining
	mc.advance(t, c, 5*time.Second)
	require.Equal(t, before, c.Snapshot().SecondsRemaining)
}

func TestClipboardFlash(t *testing.T) {
	t.Parallel()
	c, mc, cb := newTestController(t)
	driveTo(t, c, StepFeePayment)

	require.Nil(t, c.CopyAddress(), "nothing selected")

	c.SelectPaymentMethod("BTC")
	require.Equal(t, StepFeePayment, c.Step())
	runCmd(t, c, c.CopyAddress())
	require.True(t, c.Snapshot().ClipboardFlash)
	btc, _ := testCatalog().PaymentMethodByName("BTC")
	require.Equal(t, []string{btc.Address}, cb.writes)

	mc.advance(t, c, 2*time.Second)
	require.False(t, c.Snapshot().ClipboardFlash)
}

func TestClipboardFlashRestartsWindow(t *testing.T) {
	t.Parallel()
	c, mc, _ := newTestController(t)
	driveTo(t, c, StepFeePayment)
	c.SelectPaymentMethod("SOL")

	runCmd(t, c, c.CopyAddress())
	mc.advance(t, c, time.Second)
	runCmd(t, c, c.CopyAddress())

	mc.advance(t, c, time.Second)
	require.True(t, c.Snapshot().ClipboardFlash, "first expiry is superseded")

	mc.advance(t, c, time.Second)
	require.False(t, c.Snapshot().ClipboardFlash)
}

func TestClipboardFailureStillFlashes(t *testing.T) {
	t.Parallel()
	c, _, cb := newTestController(t)
	cb.err = errors.New("no clipboard")
	driveTo(t, c, StepFeePayment)
	c.SelectPaymentMethod("BTC")
	runCmd(t, c, c.CopyAddress())
	require.True(t, c.Snapshot().ClipboardFlash)
	require.Len(t, cb.writes, 1)
}

func TestFlashCancelledOnLeave(t *testing.T) {
	t.Parallel()
	c, mc, _ := newTestController(t)
	driveTo(t, c, StepFeePayment)
	c.SelectPaymentMethod("BTC")
	runCmd(t, c, c.CopyAddress())
	c.Back()
	require.False(t, c.Snapshot().ClipboardFlash)
	mc.advance(t, c, 5*time.Second)
	require.False(t, c.Snapshot().ClipboardFlash)
}

func TestReset(t *testing.T) {
	t.Parallel()
	c, mc, _ := newTestController(t)
	driveTo(t, c, StepFeePayment)
	c.SelectPaymentMethod("BTC")
	runCmd(t, c, c.CopyAddress())
	c.Confirm()
	require.Equal(t, StepSubmitted, c.Step())
	oldSession := c.SessionID()

	c.Reset()
	s := c.Snapshot()
	require.Equal(t, StepWelcome, s.Step)
	require.True(t, s.Draft.IsEmpty())
	require.Nil(t, s.SelectedPayment)
	require.Nil(t, s.Receipt)
	require.NoError(t, s.Err)
	require.False(t, s.CountdownActive)
	require.False(t, s.ClipboardFlash)
	require.Equal(t, AuthNone, s.AuthPath)
	require.Equal(t, 300, s.SecondsRemaining)
	require.NotEqual(t, oldSession, c.SessionID())

	mc.advance(t, c, 10*time.Second)
	require.Equal(t, 300, c.Snapshot().SecondsRemaining)
}

func TestSnapshotIsACopy(t *testing.T) {
	t.Parallel()
	c, _, _ := newTestController(t)
	driveTo(t, c, StepDetails)
	s := c.Snapshot()
	s.Draft.Network.ID = "mutated"
	require.Equal(t, "trc20", c.Snapshot().Draft.Network.ID)
}

func TestStepStrings(t *testing.T) {
	t.Parallel()
	names := []string{"WELCOME", "NETWORK", "DETAILS", "AUTH_CHOICE", "KEY_ENTRY", "FEE_PAYMENT", "SUBMITTED"}
	require.Len(t, Steps, len(names))
	for i, s := range Steps {
		require.Equal(t, names[i], s.String())
		require.NotEqual(t, "Unknown", s.Title())
	}
	require.Equal(t, "UNKNOWN", Step(99).String())
}
