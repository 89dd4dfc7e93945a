// Package scratch manages the temporary input/output file pair used when a
// conversion shells out to an external process. Paths are unique per request
// so concurrent conversions can share one scratch directory, and cleanup
// tolerates files the process never produced.
package scratch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Pair is one request's scratch input path plus the output directory the
// external converter writes into. The derived output path is the input's
// basename with a .pdf extension, which is the contract LibreOffice honors
// for --outdir conversions.
type Pair struct {
	Input  string
	OutDir string
}

// NewPair reserves a unique input path for a file with the given extension
// inside dir. The directory must already exist; nothing is written yet.
func NewPair(dir, ext string) *Pair {
	name := "input_" + uuid.New().String()
	if ext != "" {
		name += "." + strings.ToLower(ext)
	}
	return &Pair{
		Input:  filepath.Join(dir, name),
		OutDir: dir,
	}
}

// WriteInput writes the upload bytes to the input path.
func (p *Pair) WriteInput(data []byte) error {
	if err := os.WriteFile(p.Input, data, 0o600); err != nil {
		return fmt.Errorf("writing scratch input: %w", err)
	}
	return nil
}

// OutputPath returns where the converter is expected to place its result:
// the input basename, extension swapped for .pdf, inside OutDir.
func (p *Pair) OutputPath() string {
	base := filepath.Base(p.Input)
	if ext := filepath.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	return filepath.Join(p.OutDir, base+".pdf")
}

// Cleanup removes both scratch paths. Already-removed files are not an
// error; any other removal failure is reported so the caller can log it,
// never escalated into the client response.
func (p *Pair) Cleanup() error {
	var firstErr error
	for _, path := range []string{p.Input, p.OutputPath()} {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}
