package convert

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// ErrInvalidPage marks a page number outside 1..pageCount. It is a user
// error, not a conversion failure.
var ErrInvalidPage = errors.New("invalid page number")

// PageCount returns the number of pages in an in-memory PDF.
func PageCount(data []byte) (int, error) {
	n, err := api.PageCount(bytes.NewReader(data), nil)
	if err != nil {
		return 0, fmt.Errorf("reading pdf: %w", err)
	}
	return n, nil
}

// ExtractPage copies the 1-based page out of the source PDF into a new
// single-page document. The returned count is the source's total page count,
// available to the caller even when page is out of range.
func ExtractPage(data []byte, page int) ([]byte, int, error) {
	total, err := PageCount(data)
	if err != nil {
		return nil, 0, err
	}
	if page < 1 || page > total {
		return nil, total, fmt.Errorf("%w: %d (pdf has %d page(s))", ErrInvalidPage, page, total)
	}

	var buf bytes.Buffer
	if err := api.Trim(bytes.NewReader(data), &buf, []string{strconv.Itoa(page)}, nil); err != nil {
		return nil, total, fmt.Errorf("extracting page %d: %w", page, err)
	}
	return buf.Bytes(), total, nil
}

// Merge appends all pages of each source PDF, in upload order, into one
// document. The output page count is the exact sum of the inputs'.
func Merge(inputs [][]byte) ([]byte, error) {
	if len(inputs) < 2 {
		return nil, errors.New("merge requires at least two documents")
	}

	readers := make([]io.ReadSeeker, len(inputs))
	for i, in := range inputs {
		readers[i] = bytes.NewReader(in)
	}

	var buf bytes.Buffer
	if err := api.MergeRaw(readers, &buf, false, nil); err != nil {
		return nil, fmt.Errorf("merging pdfs: %w", err)
	}
	return buf.Bytes(), nil
}
