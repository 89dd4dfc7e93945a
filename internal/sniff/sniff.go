// Package sniff validates uploaded bytes against the binary signature
// expected for a claimed file extension. It is the content check that runs
// after a multipart body has been fully received and before any conversion
// library or external process touches the file.
package sniff

import (
	"bytes"
	"strings"
)

// signature is an exact byte pattern required at a fixed offset.
type signature struct {
	offset  int
	pattern []byte
}

var (
	jpegSignatures = []signature{{0, []byte{0xFF, 0xD8, 0xFF}}}
	zipSignatures  = []signature{{0, []byte{0x50, 0x4B, 0x03, 0x04}}}
)

// signatures maps a lowercase extension to the set of accepted signatures.
// A file matches when any one signature matches. The ZIP local-file header
// shared by the OOXML and OpenDocument formats cannot tell a docx from an
// odt (or from an unrelated zip); that ambiguity is inherent to the format.
var signatures = map[string][]signature{
	"png":  {{0, []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}}},
	"jpg":  jpegSignatures,
	"jpeg": jpegSignatures,
	"gif": {
		{0, []byte("GIF87a")},
		{0, []byte("GIF89a")},
	},
	"webp": {{8, []byte("WEBP")}},
	"bmp":  {{0, []byte{0x42, 0x4D}}},
	"tiff": {
		{0, []byte{0x49, 0x49, 0x2A, 0x00}},
		{0, []byte{0x4D, 0x4D, 0x00, 0x2A}},
	},
	"pdf":  {{0, []byte("%PDF-")}},
	"docx": zipSignatures,
	"xlsx": zipSignatures,
	"pptx": zipSignatures,
	"odt":  zipSignatures,
	"ods":  zipSignatures,
	"odp":  zipSignatures,
	"doc":  {{0, []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}}},
}

// Known reports whether a signature is defined for ext. Extensions without
// one (txt, rtf, the legacy xls/ppt binaries) cannot be content-checked and
// must not be auto-rejected by Valid's unknown-extension rule.
func Known(ext string) bool {
	_, ok := signatures[strings.ToLower(ext)]
	return ok
}

// Valid reports whether data carries the signature expected for the claimed
// extension. Unknown extensions and buffers shorter than the signature are
// always invalid.
func Valid(ext string, data []byte) bool {
	sigs, ok := signatures[strings.ToLower(ext)]
	if !ok {
		return false
	}
	for _, s := range sigs {
		end := s.offset + len(s.pattern)
		if len(data) < end {
			continue
		}
		if bytes.Equal(data[s.offset:end], s.pattern) {
			return true
		}
	}
	return false
}
