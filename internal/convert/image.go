package convert

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	// Importing a codec registers its decoder; webp ships decode-only and
	// is needed for input sniffing even though nativewebp handles encoding.
	_ "golang.org/x/image/webp"
)

// encoders maps an output format name to its codec. This is the output
// allow-list: a format converts out only if it has an entry here. The input
// allow-list lives on the image operation descriptor and is independent of
// this set.
var encoders = map[string]func(w io.Writer, m image.Image) error{
	"png": png.Encode,
	"jpeg": func(w io.Writer, m image.Image) error {
		return jpeg.Encode(w, m, nil)
	},
	"gif": func(w io.Writer, m image.Image) error {
		return gif.Encode(w, m, nil)
	},
	"webp": func(w io.Writer, m image.Image) error {
		return nativewebp.Encode(w, m, nil)
	},
	"tiff": func(w io.Writer, m image.Image) error {
		return tiff.Encode(w, m, nil)
	},
	"bmp": bmp.Encode,
}

// SupportedOutput reports whether format is a valid image conversion target.
func SupportedOutput(format string) bool {
	_, ok := encoders[format]
	return ok
}

// Image transcodes the uploaded image into the target format. Codec errors
// come back wrapped so the handler can log them and answer with a generic
// conversion failure.
func Image(data []byte, format string) ([]byte, error) {
	encode, ok := encoders[format]
	if !ok {
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}

	m, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	var buf bytes.Buffer
	if err := encode(&buf, m); err != nil {
		return nil, fmt.Errorf("encoding %s: %w", format, err)
	}
	return buf.Bytes(), nil
}
