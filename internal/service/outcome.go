package service

type ViewState int

const (
	ViewLoading ViewState = iota
	ViewReady
	ViewError
)

func (s ViewState) String() string {
	switch s {
	case ViewLoading:
		return "loading"
	case ViewReady:
		return "ready"
	case ViewError:
		return "error"
	default:
		return "unknown"
	}
}

// Outcome is what every view controller hands to the transport layer. Data
// is still populated on error when a partial view can be shown.
type Outcome[T any] struct {
	State  ViewState
	Data   T
	Err    error
	Notice string
}

func Ready[T any](data T) Outcome[T] {
	return Outcome[T]{State: ViewReady, Data: data}
}

func Failed[T any](data T, err error, notice string) Outcome[T] {
	return Outcome[T]{State: ViewError, Data: data, Err: err, Notice: notice}
}

func (o Outcome[T]) OK() bool {
	return o.State == ViewReady
}
