package dialog

import "sync"

const (
	YesLabel = "Yes"
	NoLabel  = "No"
)

// Opener shows a confirmation prompt carrying message.
type Opener interface {
	Open(message string) *Confirmation
}

// Confirmation is a yes/no prompt. It resolves exactly once; dismissing it
// without an answer counts as "No".
type Confirmation struct {
	Message string

	once   sync.Once
	result chan bool
}

func NewConfirmation(message string) *Confirmation {
	return &Confirmation{
		Message: message,
		result:  make(chan bool, 1),
	}
}

func (c *Confirmation) Yes() { c.resolve(true) }

func (c *Confirmation) No() { c.resolve(false) }

// Close dismisses the prompt.
func (c *Confirmation) Close() { c.resolve(false) }

func (c *Confirmation) resolve(v bool) {
	c.once.Do(func() {
		c.result <- v
		close(c.result)
	})
}

// AfterClosed delivers the answer once and is then closed.
func (c *Confirmation) AfterClosed() <-chan bool {
	return c.result
}
