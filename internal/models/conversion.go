// Package models defines the request-scoped value types shared across the
// ingestion pipeline and the conversion dispatchers.
package models

// FilePart is one accepted file from a multipart body. Data holds the
// complete byte sequence in arrival order.
type FilePart struct {
	Filename  string
	Extension string
	Data      []byte
}

// ConversionRequest is the validated result of parsing one upload request.
// It is only constructed once every required part was present and every
// retained file stayed within the operation's byte ceiling.
type ConversionRequest struct {
	Operation string
	Files     []FilePart
	Fields    map[string]string
}

// File returns the first retained file. The single-file operations only
// ever retain one.
func (r *ConversionRequest) File() *FilePart {
	if len(r.Files) == 0 {
		return nil
	}
	return &r.Files[0]
}

// ConversionResult is the outbound payload of a successful conversion.
type ConversionResult struct {
	Data        []byte
	ContentType string
	Filename    string
}
