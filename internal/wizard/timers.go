package wizard

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Scheduler delivers msg back into the update loop after d.
type Scheduler func(d time.Duration, msg tea.Msg) tea.Cmd

// TeaScheduler schedules with tea.Tick.
func TeaScheduler(d time.Duration, msg tea.Msg) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return msg })
}

type countdownTickMsg struct{ gen int }

type flashExpiredMsg struct{ gen int }

// countdown is the FEE_PAYMENT clock. A tick carrying an old generation
// belongs to a cancelled run and is ignored.
type countdown struct {
	gen       int
	active    bool
	remaining int
}

func (c *countdown) start(seconds int) countdownTickMsg {
	c.gen++
	c.active = seconds > 0
	c.remaining = seconds
	return countdownTickMsg{gen: c.gen}
}

func (c *countdown) cancel() {
	c.gen++
	c.active = false
}

// tick applies msg and reports whether another tick should be scheduled.
func (c *countdown) tick(msg countdownTickMsg) (again bool) {
	if !c.active || msg.gen != c.gen {
		return false
	}
	if c.remaining > 0 {
		c.remaining--
	}
	if c.remaining == 0 {
		c.active = false
		return false
	}
	return true
}

// flash is the short "copied" indicator. Each trigger supersedes the last.
type flash struct {
	gen    int
	active bool
}

func (f *flash) trigger() flashExpiredMsg {
	f.gen++
	f.active = true
	return flashExpiredMsg{gen: f.gen}
}

func (f *flash) cancel() {
	f.gen++
	f.active = false
}

func (f *flash) expire(msg flashExpiredMsg) {
	if msg.gen == f.gen {
		f.active = false
	}
}
