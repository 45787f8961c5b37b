package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/txwizard/internal/catalog"
	"github.com/jask/txwizard/internal/wizard"
)

func (a *App) View() string {
	if a.quitting {
		return ""
	}
	snap := a.ctrl.Snapshot()
	width := max(1, a.width)

	var body string
	switch snap.Step {
	case wizard.StepWelcome:
		body = a.viewWelcome()
	case wizard.StepNetwork:
		body = a.viewNetwork(snap)
	case wizard.StepDetails:
		body = a.viewDetails(snap)
	case wizard.StepAuthChoice:
		body = a.viewAuthChoice(snap)
	case wizard.StepKeyEntry:
		body = a.viewKeyEntry()
	case wizard.StepFeePayment:
		body = a.viewFeePayment(snap, width)
	case wizard.StepSubmitted:
		body = a.viewSubmitted(snap)
	}
	if snap.Err != nil {
		body += "\n\n" + errorStyle.Render("✗ "+snap.Err.Error())
	}

	header := renderHeader(snap.Step, width)
	panel := panelStyle.Width(min(width-2, 72)).Render(body)
	footer := a.renderFooter(snap.Step, width)

	gap := a.height - lipgloss.Height(header) - lipgloss.Height(panel) - lipgloss.Height(footer)
	out := header + "\n" + panel
	if gap > 0 {
		out += strings.Repeat("\n", gap)
	}
	out += "\n" + footer
	return clipHeight(out, max(1, a.height))
}

func renderHeader(step wizard.Step, width int) string {
	dots := make([]string, 0, len(wizard.Steps))
	for _, s := range wizard.Steps {
		switch {
		case s < step:
			dots = append(dots, dotDone)
		case s == step:
			dots = append(dots, dotCurrent)
		default:
			dots = append(dots, dotTodo)
		}
	}
	left := badgeStyle.Render("txwizard") + " " + titleStyle.Render(step.Title())
	right := strings.Join(dots, " ")
	pad := width - ansi.StringWidth(left) - ansi.StringWidth(right)
	if pad < 1 {
		return trimToWidth(left, width)
	}
	return left + strings.Repeat(" ", pad) + right
}

func (a *App) viewWelcome() string {
	cat := a.ctrl.Catalog()
	lines := []string{
		headingStyle.Render("Transfer request"),
		"",
		"This wizard collects a network, an amount and a destination",
		"address, then asks for an access key or a processing fee",
		"before the request is submitted.",
		"",
		mutedStyle.Render(fmt.Sprintf("%d networks · %d plans available", len(cat.Networks), len(cat.Plans))),
	}
	if cat.SupportURL != "" {
		lines = append(lines, mutedStyle.Render("Support: ")+linkStyle.Render(cat.SupportURL))
	}
	return strings.Join(lines, "\n")
}

func (a *App) viewNetwork(snap wizard.Snapshot) string {
	lines := []string{headingStyle.Render("Choose a network"), ""}
	for _, n := range a.ctrl.Catalog().Networks {
		selected := snap.Draft.Network != nil && snap.Draft.Network.ID == n.ID
		lines = append(lines, listRow(selected, fmt.Sprintf("%-28s %s", n.Name, mutedStyle.Render(n.Short))))
	}
	if snap.Draft.Network == nil {
		lines = append(lines, "", mutedStyle.Render("Use ↑/↓ to pick a network."))
	}
	return strings.Join(lines, "\n")
}

func (a *App) viewDetails(snap wizard.Snapshot) string {
	lines := []string{headingStyle.Render("Amount and destination"), ""}
	if n := snap.Draft.Network; n != nil {
		lines = append(lines, mutedStyle.Render("Network: ")+valueStyle.Render(n.Name), "")
	}
	lines = append(lines, renderPlans(a.ctrl.Catalog().Plans, snap.Draft.Amount))
	if snap.Draft.Fee != "" {
		lines = append(lines, mutedStyle.Render("Processing fee: ")+valueStyle.Render("$"+snap.Draft.Fee))
	}
	lines = append(lines, "", mutedStyle.Render("Destination address"), a.address.View())
	return strings.Join(lines, "\n")
}

func renderPlans(plans []catalog.Plan, selected string) string {
	chips := make([]string, 0, len(plans))
	for _, p := range plans {
		chips = append(chips, chipStyle(p.Amount == selected).Render(p.Amount))
	}
	var rows []string
	for i := 0; i < len(chips); i += 3 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, chips[i:min(i+3, len(chips))]...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (a *App) viewAuthChoice(snap wizard.Snapshot) string {
	labels := map[wizard.AuthPath]string{
		wizard.AuthKey: "I have an access key",
		wizard.AuthPay: fmt.Sprintf("Pay the processing fee ($%s)", snap.Draft.Fee),
	}
	lines := []string{headingStyle.Render("How do you want to continue?"), ""}
	for i, p := range a.authOptions() {
		lines = append(lines, listRow(i == a.authCursor, labels[p]))
	}
	return strings.Join(lines, "\n")
}

func (a *App) viewKeyEntry() string {
	lines := []string{
		headingStyle.Render("Access key"),
		"",
		a.key.View(),
	}
	if url := a.ctrl.Catalog().SupportURL; url != "" {
		lines = append(lines, "", mutedStyle.Render("Need a key? ")+linkStyle.Render(url))
	}
	return strings.Join(lines, "\n")
}

func (a *App) viewFeePayment(snap wizard.Snapshot, width int) string {
	total := max(1, a.ctrl.CountdownTotal())
	clock := clockStyle.Render(formatClock(snap.SecondsRemaining))
	if !snap.CountdownActive {
		clock = warningStyle.Render("window elapsed")
	}

	lines := []string{
		headingStyle.Render("Processing fee"),
		"",
		clock + "  " + a.bar.ViewAs(float64(snap.SecondsRemaining)/float64(total)),
		"",
		mutedStyle.Render("Amount: ") + valueStyle.Render(snap.Draft.Amount) +
			mutedStyle.Render("   Fee: ") + valueStyle.Render("$"+snap.Draft.Fee),
		"",
		mutedStyle.Render("Pay with"),
	}
	for _, m := range a.ctrl.Catalog().PaymentMethods {
		selected := snap.SelectedPayment != nil && snap.SelectedPayment.Name == m.Name
		lines = append(lines, listRow(selected, fmt.Sprintf("%-16s %s", m.Name, mutedStyle.Render(m.Network))))
	}

	lines = append(lines, "")
	if m := snap.SelectedPayment; m != nil {
		addrWidth := max(8, min(width, 72)-8)
		lines = append(lines,
			mutedStyle.Render("Deposit address"),
			valueStyle.Render(ansi.Truncate(m.Address, addrWidth, "…")),
		)
		if snap.ClipboardFlash {
			lines = append(lines, successStyle.Render("Copied ✓"))
		} else {
			lines = append(lines, mutedStyle.Render("press c to copy"))
		}
	} else {
		lines = append(lines, mutedStyle.Render("Select a payment method to see its deposit address."))
	}
	return strings.Join(lines, "\n")
}

func (a *App) viewSubmitted(snap wizard.Snapshot) string {
	lines := []string{successStyle.Render("Request submitted"), ""}
	if r := snap.Receipt; r != nil {
		lines = append(lines,
			mutedStyle.Render("Reference: ")+valueStyle.Render(r.Reference),
			mutedStyle.Render("Network:   ")+valueStyle.Render(r.Network.Name),
			mutedStyle.Render("Amount:    ")+valueStyle.Render(r.Amount),
			mutedStyle.Render("Address:   ")+valueStyle.Render(ansi.Truncate(r.Address, 48, "…")),
			mutedStyle.Render("Via:       ")+valueStyle.Render(pathLabel(r.Path)),
			mutedStyle.Render("At:        ")+valueStyle.Render(r.SubmittedAt.Format("2006-01-02 15:04:05")),
		)
	}
	return strings.Join(lines, "\n")
}

func pathLabel(p wizard.AuthPath) string {
	switch p {
	case wizard.AuthKey:
		return "access key"
	case wizard.AuthPay:
		return "processing fee"
	}
	return "-"
}

func listRow(selected bool, label string) string {
	if selected {
		return selectedStyle.Render("▶ ") + selectedStyle.Render(label)
	}
	return "  " + label
}

// formatClock renders whole seconds as m:ss.
func formatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

func (a *App) renderFooter(step wizard.Step, width int) string {
	bg := colorMantle
	ks := keyStyle.Background(bg)
	ds := descStyle.Background(bg)
	space := lipgloss.NewStyle().Background(bg).Render(" ")
	sep := lipgloss.NewStyle().Background(bg).Render("  ")

	bindings := a.keys.BindingsForScope(step.String())
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		if len(b.Keys) == 0 {
			continue
		}
		kb := key.NewBinding(key.WithKeys(b.Keys...), key.WithHelp(b.Keys[0], b.Description))
		h := kb.Help()
		parts = append(parts, ks.Render(h.Key)+space+ds.Render(h.Desc))
	}
	line := strings.Join(parts, sep)
	if line == "" {
		line = ds.Render("No shortcuts")
	}
	return renderBar(footerStyle, width, line)
}

func renderBar(style lipgloss.Style, width int, text string) string {
	line := strings.ReplaceAll(text, "\n", " ")
	line = ansi.Truncate(line, width, "")
	if w := ansi.StringWidth(line); w < width {
		line += strings.Repeat(" ", width-w)
	}
	return style.Width(width).MaxWidth(width).Render(line)
}

func clipHeight(s string, height int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}

func trimToWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, "")
}
