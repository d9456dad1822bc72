package state

// Action is a state transition request handled by the store's reducer.
type Action interface {
	Type() string
}

const TypeUpdateHeaderTitle = "[Header] Update Title"

// UpdateHeaderTitle replaces the page title.
type UpdateHeaderTitle struct {
	Title string
}

func (UpdateHeaderTitle) Type() string { return TypeUpdateHeaderTitle }
