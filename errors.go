package main

import "fmt"

// Raw input fields named by InvalidInputError.
const (
	FieldAssetName = "assetName"
	FieldAmount    = "amount"
	FieldPrice     = "price"

	fieldName = "name" // portfolio name
)

// InvalidInputError rejects a proposed holding. Nothing is created or
// mutated when it is returned; callers re-prompt for Field.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	if e.Reason == "" {
		return "invalid " + e.Field
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func invalidInput(field, reason string) *InvalidInputError {
	return &InvalidInputError{Field: field, Reason: reason}
}
