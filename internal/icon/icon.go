// Package icon validates binary resource files by magic signature before the
// native toolchain gets a chance to choke on them.
package icon

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
)

// ICOSignature is the leading byte sequence of a multi-resolution Windows
// icon container.
var ICOSignature = []byte{0x00, 0x00, 0x01, 0x00}

// PNGSignature is the most common wrong format found under an .ico
// extension: a PNG re-encoded and saved with the icon's name.
var PNGSignature = []byte{0x89, 0x50, 0x4E, 0x47}

// Report is the outcome of a single signature check.
type Report struct {
	Path     string
	Observed []byte
	Expected []byte
	OK       bool
}

// ValidationError reports a signature mismatch with both sides formatted
// for display.
type ValidationError struct {
	Report Report
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s has signature [%s], expected [%s]",
		e.Report.Path, FormatSignature(e.Report.Observed), FormatSignature(e.Report.Expected))
}

// FormatSignature renders a byte signature as uppercase hex pairs,
// e.g. "00 00 01 00".
func FormatSignature(sig []byte) string {
	parts := make([]string, len(sig))
	for i, b := range sig {
		parts[i] = fmt.Sprintf("%02X", b)
	}
	return strings.Join(parts, " ")
}

// Validate reads the first len(want) bytes of the file at path and compares
// them against the expected signature. The report always carries the
// observed bytes, pass or fail. A mismatch is reported in Report.OK, not as
// an error; errors are reserved for unreadable or missing files.
func Validate(path string, want []byte) (Report, error) {
	report := Report{Path: path, Expected: want}

	f, err := os.Open(path)
	if err != nil {
		return report, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	observed := make([]byte, len(want))
	if _, err := io.ReadFull(f, observed); err != nil {
		return report, fmt.Errorf("failed to read signature from %s: %w", path, err)
	}

	report.Observed = observed
	report.OK = bytes.Equal(observed, want)
	return report, nil
}

// Check runs Validate and converts a mismatch into a *ValidationError.
func Check(path string, want []byte) error {
	report, err := Validate(path, want)
	if err != nil {
		return err
	}
	if !report.OK {
		return &ValidationError{Report: report}
	}
	return nil
}
