// Package irq defines the interrupt lines a 6502-family CPU polls between
// instructions. A line is owned by the CPU and asserted by whatever
// collaborator drives it (APU frame counter, mapper, test harness) so that
// the CPU and its interrupt sources aren't coupled to each other directly.
package irq

// A Line is a single interrupt source's assertion state.
//
// IRQ is level-triggered on real hardware: it stays asserted until the
// source clears it, and is ignored entirely while the I flag is set. NMI is
// edge-triggered: the CPU latches it the instant it's serviced and clears
// it itself, so callers of Assert don't need to call Clear for NMI.
type Line struct {
	raised bool
}

// Assert raises the line.
func (l *Line) Assert() {
	l.raised = true
}

// Clear lowers the line.
func (l *Line) Clear() {
	l.raised = false
}

// Raised reports whether the line is currently held high.
func (l *Line) Raised() bool {
	return l.raised
}
