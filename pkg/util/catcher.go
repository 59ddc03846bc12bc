package util

import "github.com/pkg/errors"

// TryCatchBlock wraps panicky third party calls with try-catch-finally control flow
type TryCatchBlock struct {
	Try     func()
	Catch   func(error)
	Finally func()
}

func (tcf TryCatchBlock) Do() {
	if tcf.Finally != nil {
		defer tcf.Finally()
	}
	if tcf.Catch != nil {
		defer func() {
			if r := recover(); r != nil {
				err, ok := r.(error)
				if !ok {
					err = errors.Errorf("%v", r)
				}
				tcf.Catch(err)
			}
		}()
	}
	tcf.Try()
}

// CatchErrs runs fn and converts any panic raised below it into a returned error.
// The ble stack panics on some hci faults, so every call into it goes through here.
func CatchErrs(fn func() error) error {
	var err error
	TryCatchBlock{
		Try:   func() { err = fn() },
		Catch: func(e error) { err = errors.Wrap(e, "recovered panic: ") },
	}.Do()
	return err
}
