package convert

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/jung-kurt/gofpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makePDF builds a real n-page document in memory.
func makePDF(t *testing.T, pages int) []byte {
	t.Helper()
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	for i := 1; i <= pages; i++ {
		pdf.AddPage()
		pdf.Cell(40, 10, fmt.Sprintf("page %d", i))
	}
	var buf bytes.Buffer
	require.NoError(t, pdf.Output(&buf))
	return buf.Bytes()
}

func TestPageCount(t *testing.T) {
	n, err := PageCount(makePDF(t, 3))
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestPageCount_Garbage(t *testing.T) {
	_, err := PageCount([]byte("not a pdf at all"))
	assert.Error(t, err)
}

func TestExtractPage(t *testing.T) {
	src := makePDF(t, 3)

	out, total, err := ExtractPage(src, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, total)

	n, err := PageCount(out)
	require.NoError(t, err)
	assert.Equal(t, 1, n, "extraction yields a single-page document")
}

func TestExtractPage_OutOfRange(t *testing.T) {
	src := makePDF(t, 3)

	for _, page := range []int{0, 4, -1} {
		_, total, err := ExtractPage(src, page)
		assert.True(t, errors.Is(err, ErrInvalidPage), "page %d should be rejected as invalid", page)
		assert.Equal(t, 3, total)
	}
}

func TestMerge_PageCountIsSumOfInputs(t *testing.T) {
	out, err := Merge([][]byte{makePDF(t, 2), makePDF(t, 3)})
	require.NoError(t, err)

	n, err := PageCount(out)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}

func TestMerge_RequiresTwoDocuments(t *testing.T) {
	_, err := Merge([][]byte{makePDF(t, 1)})
	assert.Error(t, err)

	_, err = Merge(nil)
	assert.Error(t, err)
}

func TestMerge_CorruptInputFails(t *testing.T) {
	_, err := Merge([][]byte{makePDF(t, 1), []byte("garbage")})
	assert.Error(t, err)
}
