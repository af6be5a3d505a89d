package database

import "fmt"

// NotFoundError means the database file itself is missing; the caller should
// tell the operator to initialize one rather than silently creating it.
type NotFoundError struct {
	Path string
}

func (notFoundError *NotFoundError) Error() string {
	return fmt.Sprintf("database file not found: %s", notFoundError.Path)
}

type RecordNotFoundError struct {
	ID   string
	Path string
}

func (notFoundError *RecordNotFoundError) Error() string {
	return fmt.Sprintf("no record %q in %s", notFoundError.ID, notFoundError.Path)
}

type DuplicateRecordError struct {
	ID   string
	Path string
}

func (duplicateError *DuplicateRecordError) Error() string {
	return fmt.Sprintf("record %q already exists in %s", duplicateError.ID, duplicateError.Path)
}
