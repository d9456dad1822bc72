package state

// DefaultTitle is the heading shown before any view sets one.
const DefaultTitle = "Products"

type HeaderState struct {
	Title string `json:"title"`
}

func InitialHeaderState() HeaderState {
	return HeaderState{Title: DefaultTitle}
}

func headerReducer(s HeaderState, action Action) HeaderState {
	switch a := action.(type) {
	case UpdateHeaderTitle:
		s.Title = a.Title
	}
	return s
}

// SelectHeaderTitle projects the title out of the header state.
func SelectHeaderTitle(s HeaderState) string {
	return s.Title
}
