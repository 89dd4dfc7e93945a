package convert

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/fileforge/backend/internal/scratch"
)

// OfficeConverter renders office documents to PDF by shelling out to a
// headless LibreOffice process. The binary path comes from configuration;
// there is no baked-in install location.
type OfficeConverter struct {
	Binary     string
	ScratchDir string
	Timeout    time.Duration

	// Logf receives cleanup failures; they are logged, never returned.
	Logf func(format string, args ...interface{})
}

// Convert writes the upload to a scratch input path, runs the external
// converter, and reads back the produced PDF. Both scratch paths are removed
// on every exit path, including spawn failures and absent output.
func (oc *OfficeConverter) Convert(ctx context.Context, data []byte, ext string) ([]byte, error) {
	pair := scratch.NewPair(oc.ScratchDir, ext)
	defer func() {
		if err := pair.Cleanup(); err != nil && oc.Logf != nil {
			oc.Logf("scratch cleanup failed: %v", err)
		}
	}()

	if err := pair.WriteInput(data); err != nil {
		return nil, err
	}

	if oc.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, oc.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, oc.Binary,
		"--headless",
		"--convert-to", "pdf",
		pair.Input,
		"--outdir", pair.OutDir,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("converter process failed: %w, stderr: %s", err, stderr.String())
	}

	pdf, err := os.ReadFile(pair.OutputPath())
	if err != nil {
		return nil, fmt.Errorf("converter produced no output: %w", err)
	}
	if len(pdf) == 0 {
		return nil, fmt.Errorf("converter produced empty output")
	}
	return pdf, nil
}
