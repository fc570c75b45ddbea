// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package preview

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
)

// ImageFormat selects the encoding of served images.
type ImageFormat int

const (
	PNG ImageFormat = iota
	JPEG

	// DefaultFormat is the format used when not set explicitly in options or
	// as a URL parameter.
	DefaultFormat = PNG
)

func (f ImageFormat) String() string {
	switch f {
	case PNG:
		return "PNG"
	case JPEG:
		return "JPEG"
	default:
		return fmt.Sprint(int(f))
	}
}

func (f ImageFormat) mimeType() string {
	switch f {
	case PNG:
		return "image/png"
	case JPEG:
		return "image/jpeg"
	}
	return "application/octet-stream"
}

// ImageFormatFromString returns the ImageFormat for a "format" URL
// parameter.
func ImageFormatFromString(value string) (ImageFormat, error) {
	switch value {
	case "png":
		return PNG, nil
	case "jpg", "jpeg":
		return JPEG, nil
	}
	return DefaultFormat, fmt.Errorf("unrecognized image format %q", value)
}

// Segments have hard edges, keep JPEG artifacts low.
var jpegOptions = jpeg.Options{Quality: 90}

// The images are small and mostly flat, speed matters more than size.
var pngEncoder = png.Encoder{CompressionLevel: png.BestSpeed}

func encode(img image.Image, f ImageFormat) ([]byte, error) {
	var buf bytes.Buffer
	switch f {
	case PNG:
		if err := pngEncoder.Encode(&buf, img); err != nil {
			return nil, err
		}
	case JPEG:
		if err := jpeg.Encode(&buf, img, &jpegOptions); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unhandled image format %s", f)
	}
	return buf.Bytes(), nil
}
