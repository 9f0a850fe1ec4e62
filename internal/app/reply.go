package app

import "github.com/bft-labs/sumline/internal/ports"

// reply sends line to c. A failed send is treated as a disconnect: c is
// cleared from the slot if it is still current. Returns false on failure.
func reply(slot ports.ClientSlot, c ports.Client, line string, logger ports.Logger) bool {
	if err := c.Send(line); err != nil {
		cleared := slot.ClearIf(c)
		logger.Warn("send failed, dropping client",
			ports.Uint64("client", c.ID()),
			ports.Bool("cleared", cleared),
			ports.Err(err),
		)
		return false
	}
	return true
}
