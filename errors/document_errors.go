// errors/document_errors.go

package errors

import "errors"

var (
	ErrDocumentNotFound             = errors.New("document not found")
	ErrInvalidDocumentData          = errors.New("invalid document data")
	ErrClassificationAboveClearance = errors.New("classification exceeds creator clearance")
	ErrNotOwnerOrAdmin              = errors.New("only owners or admins can delegate access")
	ErrAccessDenied                 = errors.New("access denied")
)
