package procs

// Proc is one step of a state machine. It returns the proc to run next, nil when done.
type Proc[C any] interface {
	Run(ctx C) (Proc[C], error)
}

type Func[C any] func(ctx C) (Proc[C], error)

func (f Func[C]) Run(ctx C) (Proc[C], error) {
	return f(ctx)
}

// Once adapts a function that does not continue.
func Once[C any](fn func(ctx C) error) Proc[C] {
	return Func[C](func(ctx C) (Proc[C], error) {
		return nil, fn(ctx)
	})
}

// Exhaust runs proc until it is done.
func Exhaust[C any](ctx C, proc Proc[C]) error {
	for proc != nil {
		next, err := proc.Run(ctx)
		if err != nil {
			return err
		}
		proc = next
	}
	return nil
}
