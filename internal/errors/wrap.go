package errors

import "fmt"

// Wrap prefixes err with msg and keeps it matchable with errors.Is.
// A nil err stays nil, so the call can sit directly in a return:
//
//	return errors.Wrap(fsops.Remove(pdb), "delete symbol file")
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf is Wrap with a formatted prefix, usually naming the path involved:
//
//	return errors.Wrapf(errors.ErrSourceMissing, "move %s", src)
func Wrapf(err error, format string, args ...any) error {
	return Wrap(err, fmt.Sprintf(format, args...))
}
