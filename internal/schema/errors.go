package schema

import (
	"fmt"
	"strings"
)

// StructuralError reports a database whose header is neither the legacy nor
// the current layout. There is no safe partial interpretation, so the caller
// must abort and leave the file untouched.
type StructuralError struct {
	Header []string
}

func (structuralError *StructuralError) Error() string {
	return fmt.Sprintf("unrecognized database structure, header: %s", strings.Join(structuralError.Header, ","))
}
