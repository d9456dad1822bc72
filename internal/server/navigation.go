package server

import (
	"sync"

	"github.com/nguyentranbao-ct/product-catalog/internal/dialog"
)

// routeNavigator records the last navigation requested by a view. The
// controller turns it into a redirect.
type routeNavigator struct {
	mu     sync.Mutex
	target string
}

func (n *routeNavigator) NavigateByURL(url string) {
	n.mu.Lock()
	n.target = url
	n.mu.Unlock()
}

func (n *routeNavigator) Target() (string, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.target, n.target != ""
}

const (
	answerYes = "yes"
	answerNo  = "no"
)

// formDialogs answers confirmation prompts from a posted form value. Without
// an answer the prompt stays open and is reported by Pending.
type formDialogs struct {
	answer string

	mu      sync.Mutex
	pending *dialog.Confirmation
}

func newFormDialogs(answer string) *formDialogs {
	return &formDialogs{answer: answer}
}

func (d *formDialogs) Open(message string) *dialog.Confirmation {
	c := dialog.NewConfirmation(message)
	switch d.answer {
	case answerYes:
		c.Yes()
	case answerNo:
		c.No()
	default:
		d.mu.Lock()
		d.pending = c
		d.mu.Unlock()
	}
	return c
}

// Pending is the prompt still waiting for an answer, if any.
func (d *formDialogs) Pending() *dialog.Confirmation {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}
