// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package extract

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	"image/jpeg"
	"image/png"

	xdraw "golang.org/x/image/draw"
)

const (
	// maxImageWidth bounds normalized image width; vision models gain
	// nothing from larger inputs.
	maxImageWidth = 1600

	// jpegQuality is the re-encode quality for images lifted out of PDFs.
	jpegQuality = 85
)

// ScaleToMaxWidth downscales an image so its width does not exceed maxWidth,
// preserving aspect ratio. Images already narrow enough pass through.
func ScaleToMaxWidth(src image.Image, maxWidth int) image.Image {
	bounds := src.Bounds()
	if bounds.Dx() <= maxWidth {
		return src
	}

	height := bounds.Dy() * maxWidth / bounds.Dx()
	if height < 1 {
		height = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, height))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)
	return dst
}

// Grayscale converts an image to 8-bit grayscale.
func Grayscale(src image.Image) *image.Gray {
	bounds := src.Bounds()
	dst := image.NewGray(bounds)
	xdraw.Draw(dst, bounds, src, bounds.Min, xdraw.Src)
	return dst
}

// Sharpen applies a mild 3x3 sharpening kernel (center 32, neighbors -2,
// divided by 16) to a grayscale image. Border samples clamp to the edge.
func Sharpen(src *image.Gray) *image.Gray {
	bounds := src.Bounds()
	dst := image.NewGray(bounds)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			sum := 0
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					sx := clamp(x+dx, bounds.Min.X, bounds.Max.X-1)
					sy := clamp(y+dy, bounds.Min.Y, bounds.Max.Y-1)
					weight := -2
					if dx == 0 && dy == 0 {
						weight = 32
					}
					sum += weight * int(src.GrayAt(sx, sy).Y)
				}
			}
			dst.SetGray(x, y, color.Gray{Y: uint8(clamp(sum/16, 0, 255))})
		}
	}
	return dst
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// NormalizePNG prepares a standalone image for analysis: grayscale,
// downscaled to the width bound, sharpened, re-encoded as PNG.
func NormalizePNG(data []byte) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotAnImage, err)
	}

	out := Sharpen(Grayscale(ScaleToMaxWidth(src, maxImageWidth)))

	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// CompressJPEG prepares an image lifted from a document: downscaled to the
// width bound and re-encoded as JPEG. Color is kept; embedded diagrams often
// rely on it.
func CompressJPEG(data []byte) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotAnImage, err)
	}

	out := ScaleToMaxWidth(src, maxImageWidth)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, out, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}
