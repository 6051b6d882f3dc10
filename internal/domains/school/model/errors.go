package model

import "fmt"

// SchoolError is the base error for the school domain.
type SchoolError struct {
	Code    string // stable identifier, e.g. "SCHOOL_NOT_FOUND"
	Message string // human-readable message
	Err     error  // underlying error, optional
}

func (e *SchoolError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *SchoolError) Unwrap() error {
	return e.Err
}

var ErrSchoolNotFound = &SchoolError{
	Code:    "SCHOOL_NOT_FOUND",
	Message: "School not found",
}

var ErrInvalidSchoolID = &SchoolError{
	Code:    "INVALID_SCHOOL_ID",
	Message: "Invalid school id",
}
