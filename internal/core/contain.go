package core

import "fmt"

// unitFunc derives one question from one row or block.
// skip reports a blank unit that yields nothing and warns about nothing.
type unitFunc func() (q ParsedQuestion, skip bool, err error)

// runUnit executes fn and converts a panic into an error, so one bad
// row or block can never abort the whole import.
func runUnit(fn unitFunc) (q ParsedQuestion, skip bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			q, skip = ParsedQuestion{}, false
			err = fmt.Errorf("%v", r)
		}
	}()
	q, skip, err = fn()
	if err == nil && !skip {
		err = q.Validate()
	}
	return q, skip, err
}

// collect runs one unit and records its outcome: a question, nothing,
// or a warning naming the unit.
func (r *ImportResult) collect(unit string, pos int, fn unitFunc) {
	q, skip, err := runUnit(fn)
	switch {
	case err != nil:
		r.Warnings = append(r.Warnings, (&UnitError{Unit: unit, Position: pos, Err: err}).Error())
	case skip:
	default:
		r.Questions = append(r.Questions, q)
	}
}

// finish sets Success and, when nothing was parsed, records empty as the
// fatal error. Warnings gathered so far are kept.
func (r *ImportResult) finish(empty error) ImportResult {
	r.Success = len(r.Questions) > 0
	if !r.Success {
		r.Errors = append(r.Errors, capitalize(empty.Error()))
	}
	return *r
}
