package common

// Checker is a chain of check steps; the implementing struct carries the
// state the steps share, see `transaction.Checker`.
type Checker interface {
	GetFuncs() []CheckerFunc
}

type CheckerFunc func(Checker, ...interface{}) error

// CheckerDeferFunc sees the result of each step that ran; index is the
// position of the step in `GetFuncs()`.
type CheckerDeferFunc func(index int, c Checker, err error)

type DefaultChecker struct {
	Funcs []CheckerFunc
}

func NewDefaultChecker(funcs ...CheckerFunc) DefaultChecker {
	return DefaultChecker{Funcs: funcs}
}

func (c *DefaultChecker) GetFuncs() []CheckerFunc {
	return c.Funcs
}

// RunChecker runs the steps in order and stops at the first error.
// deferFunc may be nil.
func RunChecker(checker Checker, deferFunc CheckerDeferFunc, args ...interface{}) (err error) {
	for i, f := range checker.GetFuncs() {
		err = f(checker, args...)
		if deferFunc != nil {
			deferFunc(i, checker, err)
		}
		if err != nil {
			return
		}
	}

	return
}
