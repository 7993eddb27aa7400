package docModel

import "fmt"

// ConversionError means the upload could not be turned into an image the
// model can look at (empty PDF, broken rasterizer). Fatal for the request.
type ConversionError struct {
	Reason string
	Err    error
}

func (e *ConversionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("conversion failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("conversion failed: %s", e.Reason)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

// ModelCallError means a vision call itself failed (network, auth, rate
// limit). Fatal for the request; never downgraded to an unknown label.
type ModelCallError struct {
	Stage string //classify or extract
	Err   error
}

func (e *ModelCallError) Error() string {
	return fmt.Sprintf("vision %s call failed: %v", e.Stage, e.Err)
}

func (e *ModelCallError) Unwrap() error {
	return e.Err
}
