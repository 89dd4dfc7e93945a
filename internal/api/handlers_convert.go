// handlers_convert.go - Conversion operation handlers
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fileforge/backend/internal/config"
	"github.com/fileforge/backend/internal/convert"
	"github.com/fileforge/backend/internal/models"
	"github.com/fileforge/backend/internal/pipeline"
	"github.com/fileforge/backend/internal/ratelimit"
)

// Input allow-lists per operation. The image output set lives in the
// convert package; inputs and outputs are deliberately independent lists
// (jpg uploads convert out as jpeg only, for example).
var (
	imageInputs  = []string{"png", "jpg", "jpeg", "webp", "gif", "tiff", "bmp"}
	officeInputs = []string{"doc", "docx", "xls", "xlsx", "ppt", "pptx", "odt", "ods", "odp", "rtf", "txt"}
	pdfInputs    = []string{"pdf"}
)

// ConvertHandlerImpl implements the ConvertHandler interface
type ConvertHandlerImpl struct {
	limiter *ratelimit.Limiter
	office  *convert.OfficeConverter

	imageOp  pipeline.Operation
	officeOp pipeline.Operation
	splitOp  pipeline.Operation
	mergeOp  pipeline.Operation
}

// NewConvertHandler creates a new conversion handler instance
func NewConvertHandler(cfg *config.Config, limiter *ratelimit.Limiter, office *convert.OfficeConverter) ConvertHandler {
	return &ConvertHandlerImpl{
		limiter: limiter,
		office:  office,
		imageOp: pipeline.Operation{
			Name:           "image",
			FileField:      "file",
			AllowedInputs:  imageInputs,
			MaxFileBytes:   cfg.Limits.SingleFileMaxBytes,
			MinFiles:       1,
			MaxFiles:       1,
			RequiredFields: []string{"format"},
		},
		officeOp: pipeline.Operation{
			Name:          "office",
			FileField:     "file",
			AllowedInputs: officeInputs,
			MaxFileBytes:  cfg.Limits.SingleFileMaxBytes,
			MinFiles:      1,
			MaxFiles:      1,
		},
		splitOp: pipeline.Operation{
			Name:           "split",
			FileField:      "file",
			AllowedInputs:  pdfInputs,
			MaxFileBytes:   cfg.Limits.MultiFileMaxBytes,
			MinFiles:       1,
			MaxFiles:       1,
			RequiredFields: []string{"page"},
		},
		mergeOp: pipeline.Operation{
			Name:          "merge",
			FileField:     "file",
			AllowedInputs: pdfInputs,
			MaxFileBytes:  cfg.Limits.MultiFileMaxBytes,
			MinFiles:      2,
			MaxFiles:      cfg.Limits.MaxMergeFiles,
		},
	}
}

// HandleConvertImage transcodes one raster image into the requested format.
func (h *ConvertHandlerImpl) HandleConvertImage(c echo.Context) error {
	if err := h.admit(c); err != nil {
		return err
	}

	req, err := h.receive(c, h.imageOp)
	if err != nil {
		return err
	}

	format := strings.ToLower(strings.TrimSpace(req.Fields["format"]))
	if !convert.SupportedOutput(format) {
		return NewUnsupportedFormatError(fmt.Sprintf("unsupported output format: %s", format))
	}

	done := convert.TrackActive()
	defer done()

	out, err := convert.Image(req.File().Data, format)
	if err != nil {
		c.Logger().Errorf("image conversion failed: %v", err)
		return NewConversionFailedError("conversion failed")
	}

	return sendAttachment(c, &models.ConversionResult{
		Data:        out,
		ContentType: "image/" + format,
		Filename:    convert.BaseName(req.File().Filename, "converted") + "." + format,
	})
}

// HandleConvertPDF renders one office document to PDF via the external
// converter process.
func (h *ConvertHandlerImpl) HandleConvertPDF(c echo.Context) error {
	if err := h.admit(c); err != nil {
		return err
	}

	req, err := h.receive(c, h.officeOp)
	if err != nil {
		return err
	}

	done := convert.TrackActive()
	defer done()

	// A started conversion runs to completion even if the client hangs
	// up, so the subprocess is not tied to the request context.
	file := req.File()
	out, err := h.office.Convert(context.Background(), file.Data, file.Extension)
	if err != nil {
		c.Logger().Errorf("pdf conversion failed: %v", err)
		return NewConversionFailedError("pdf conversion failed")
	}

	return sendAttachment(c, &models.ConversionResult{
		Data:        out,
		ContentType: "application/pdf",
		Filename:    convert.BaseName(file.Filename, "converted") + ".pdf",
	})
}

// HandleSplitPDF extracts a single 1-based page into a new document.
func (h *ConvertHandlerImpl) HandleSplitPDF(c echo.Context) error {
	if err := h.admit(c); err != nil {
		return err
	}

	req, err := h.receive(c, h.splitOp)
	if err != nil {
		return err
	}

	page, convErr := strconv.Atoi(strings.TrimSpace(req.Fields["page"]))
	if convErr != nil {
		return NewInvalidPageError(fmt.Sprintf("invalid page number: %s", req.Fields["page"]))
	}

	done := convert.TrackActive()
	defer done()

	out, total, err := convert.ExtractPage(req.File().Data, page)
	if err != nil {
		if errors.Is(err, convert.ErrInvalidPage) {
			return NewInvalidPageError(fmt.Sprintf("invalid page number: %d. pdf has %d page(s)", page, total))
		}
		c.Logger().Errorf("pdf split failed: %v", err)
		return NewConversionFailedError("pdf split failed")
	}

	// The browser may upload a sanitized blob name; originalName restores
	// the user-facing one for the download.
	nameSource := req.File().Filename
	if v := strings.TrimSpace(req.Fields["originalName"]); v != "" {
		nameSource = v
	}
	return sendAttachment(c, &models.ConversionResult{
		Data:        out,
		ContentType: "application/pdf",
		Filename:    fmt.Sprintf("%s_page%d.pdf", convert.BaseName(nameSource, "extracted"), page),
	})
}

// HandleMergePDF appends the pages of every uploaded document, in upload
// order, into one PDF.
func (h *ConvertHandlerImpl) HandleMergePDF(c echo.Context) error {
	if err := h.admit(c); err != nil {
		return err
	}

	req, err := h.receive(c, h.mergeOp)
	if err != nil {
		return err
	}

	done := convert.TrackActive()
	defer done()

	inputs := make([][]byte, len(req.Files))
	for i, f := range req.Files {
		inputs[i] = f.Data
	}

	out, err := convert.Merge(inputs)
	if err != nil {
		c.Logger().Errorf("pdf merge failed: %v", err)
		return NewConversionFailedError("pdf merge failed")
	}

	return sendAttachment(c, &models.ConversionResult{
		Data:        out,
		ContentType: "application/pdf",
		Filename:    "merged.pdf",
	})
}

// admit applies the per-client sliding-window limit before any body bytes
// are parsed.
func (h *ConvertHandlerImpl) admit(c echo.Context) error {
	if !h.limiter.Admit(c.RealIP(), time.Now()) {
		return NewRateLimitedError()
	}
	return nil
}

// receive runs the streaming ingestion pipeline for one operation.
func (h *ConvertHandlerImpl) receive(c echo.Context, op pipeline.Operation) (*models.ConversionRequest, error) {
	mr, err := c.Request().MultipartReader()
	if err != nil {
		return nil, NewMissingInputError("missing multipart request body")
	}

	req, err := pipeline.Receive(mr, op)
	if err != nil {
		var rej *pipeline.Reject
		if errors.As(err, &rej) {
			return nil, fromReject(rej)
		}
		return nil, NewBadRequestError("malformed request")
	}
	return req, nil
}

// sendAttachment streams the conversion result with its download filename.
func sendAttachment(c echo.Context, res *models.ConversionResult) error {
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", res.Filename))
	return c.Blob(http.StatusOK, res.ContentType, res.Data)
}
