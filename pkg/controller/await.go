package controller

import tea "github.com/charmbracelet/bubbletea/v2"

// Await runs cmd on the calling goroutine and applies its results, and those
// of every follow-up command, before returning. It serves callers without a
// Bubble Tea program, such as the command line. cmd must come from this
// controller.
func (c *Controller) Await(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, sub := range batch {
			c.Await(sub)
		}
		return
	}
	c.Await(c.Update(msg))
}
