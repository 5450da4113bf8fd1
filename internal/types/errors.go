package types

import "fmt"

// InvalidParameterError reports a generator input that is out of range.
type InvalidParameterError struct {
	Param  string
	Value  any
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s=%v: %s", e.Param, e.Value, e.Reason)
}

// MissingAssetError reports an external source image that could not be found.
type MissingAssetError struct {
	Channel Channel
	Path    string
	Err     error
}

func (e *MissingAssetError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("missing source for %s (%s): %v", e.Channel, e.Path, e.Err)
	}
	return fmt.Sprintf("missing source for %s (%s)", e.Channel, e.Path)
}

func (e *MissingAssetError) Unwrap() error { return e.Err }

// EncodingError reports a failure to encode or persist one output map.
type EncodingError struct {
	Stem string
	Err  error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("failed to encode %s: %v", e.Stem, e.Err)
}

func (e *EncodingError) Unwrap() error { return e.Err }

// Invalid is a shorthand for constructing an *InvalidParameterError.
func Invalid(param string, value any, reason string) error {
	return &InvalidParameterError{Param: param, Value: value, Reason: reason}
}
