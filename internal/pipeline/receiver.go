// Package pipeline implements the streaming ingestion path shared by every
// conversion endpoint: incremental multipart parsing, extension
// allow-listing, per-file byte ceilings, and post-parse magic-number
// validation. One Operation descriptor parameterizes the pipeline per
// endpoint instead of duplicating the handler logic four times.
package pipeline

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"slices"
	"strings"

	"github.com/fileforge/backend/internal/models"
	"github.com/fileforge/backend/internal/sniff"
)

// maxFieldBytes bounds scalar form fields; anything larger is not a format
// name or page number.
const maxFieldBytes = 64 << 10

// Operation describes one endpoint's ingestion rules.
type Operation struct {
	Name           string
	FileField      string
	AllowedInputs  []string
	MaxFileBytes   int64
	MinFiles       int
	MaxFiles       int
	RequiredFields []string
}

// AllowsInput reports whether ext is in the operation's input allow-list.
// The empty extension (dotless or absent filename) is never allowed.
func (op Operation) AllowsInput(ext string) bool {
	if ext == "" {
		return false
	}
	return slices.Contains(op.AllowedInputs, strings.ToLower(ext))
}

// Extension returns the lowercased text after the last dot of name, or ""
// when name has no dot.
func Extension(name string) string {
	idx := strings.LastIndex(name, ".")
	if idx < 0 {
		return ""
	}
	return strings.ToLower(name[idx+1:])
}

// Receive consumes a multipart body part by part and produces either a
// complete ConversionRequest or exactly one *Reject. It never buffers more
// than MaxFileBytes per retained file: unsupported parts are drained without
// buffering and an oversized part aborts the request mid-stream.
func Receive(mr *multipart.Reader, op Operation) (*models.ConversionRequest, error) {
	req := &models.ConversionRequest{
		Operation: op.Name,
		Fields:    make(map[string]string),
	}
	sawFile := false
	rejectedExt := ""

	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &Reject{Kind: KindMalformed, Message: "malformed multipart body"}
		}

		if part.FormName() == op.FileField {
			sawFile = true
			file, rej := receiveFile(part, op)
			part.Close()
			if rej != nil {
				return nil, rej
			}
			if file == nil {
				// Drained: unsupported extension or file count exceeded.
				rejectedExt = Extension(part.FileName())
				continue
			}
			if len(req.Files) >= op.MaxFiles {
				continue
			}
			req.Files = append(req.Files, *file)
			continue
		}

		val, err := io.ReadAll(io.LimitReader(part, maxFieldBytes))
		part.Close()
		if err != nil {
			return nil, &Reject{Kind: KindMalformed, Message: "malformed multipart body"}
		}
		req.Fields[part.FormName()] = string(val)
	}

	if rej := finalize(req, op, sawFile, rejectedExt); rej != nil {
		return nil, rej
	}
	return req, nil
}

// receiveFile buffers one file part up to the byte ceiling. It returns
// (nil, nil) when the part was drained rather than retained.
func receiveFile(part *multipart.Part, op Operation) (*models.FilePart, *Reject) {
	name := part.FileName()
	ext := Extension(name)

	if !op.AllowsInput(ext) {
		// Drain so stream consumption stays balanced, but keep nothing.
		if _, err := io.Copy(io.Discard, part); err != nil {
			return nil, &Reject{Kind: KindMalformed, Message: "malformed multipart body"}
		}
		return nil, nil
	}

	var buf bytes.Buffer
	n, err := io.Copy(&buf, io.LimitReader(part, op.MaxFileBytes+1))
	if err != nil {
		return nil, &Reject{Kind: KindMalformed, Message: "malformed multipart body"}
	}
	if n > op.MaxFileBytes {
		// Abort the whole request; do not wait for the rest of the body.
		return nil, &Reject{
			Kind:    KindOversized,
			Message: fmt.Sprintf("file too large (max %dMB)", op.MaxFileBytes>>20),
		}
	}

	return &models.FilePart{Filename: name, Extension: ext, Data: buf.Bytes()}, nil
}

// finalize applies the end-of-stream checks: presence of required parts and
// fields, file count bounds, and content sniffing for every retained file
// whose claimed extension has a defined signature.
func finalize(req *models.ConversionRequest, op Operation, sawFile bool, rejectedExt string) *Reject {
	for _, field := range op.RequiredFields {
		if _, ok := req.Fields[field]; !ok {
			return &Reject{Kind: KindMissing, Message: fmt.Sprintf("missing %s field", field)}
		}
	}

	if len(req.Files) < op.MinFiles {
		switch {
		case op.MinFiles > 1:
			return &Reject{
				Kind:    KindInsufficient,
				Message: fmt.Sprintf("at least %d %s files required", op.MinFiles, strings.Join(op.AllowedInputs, "/")),
			}
		case !sawFile:
			return &Reject{Kind: KindMissing, Message: "missing file"}
		default:
			msg := "unsupported input file type"
			if rejectedExt != "" {
				msg = fmt.Sprintf("unsupported input file type: %s", rejectedExt)
			}
			return &Reject{Kind: KindUnsupported, Message: msg}
		}
	}

	for i := range req.Files {
		f := &req.Files[i]
		if sniff.Known(f.Extension) && !sniff.Valid(f.Extension, f.Data) {
			return &Reject{
				Kind:    KindMismatch,
				Message: "file content does not match its extension (magic number validation failed)",
			}
		}
	}

	return nil
}
