package waitk

// FailureHook rewrites the error a Wait returns on timeout, usually to attach diagnostics.
type FailureHook func(err error) error

// Pipe chains hooks left to right; nil hooks are skipped.
func Pipe(hooks ...FailureHook) FailureHook {
	chain := make([]FailureHook, 0, len(hooks))
	for _, h := range hooks {
		if h != nil {
			chain = append(chain, h)
		}
	}
	if len(chain) == 0 {
		return nil
	}
	return func(err error) error {
		for _, h := range chain {
			if next := h(err); next != nil {
				err = next
			}
		}
		return err
	}
}
