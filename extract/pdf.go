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
	"io"
	"strings"

	pdflib "github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/poiesic/arbor/core"
)

const (
	// minEmbeddedImageBytes filters out icons, bullets, and decorative
	// fragments that carry no study content.
	minEmbeddedImageBytes = 20 << 10

	// maxEmbeddedImages caps how many images one document may contribute.
	maxEmbeddedImages = 10
)

// pdfText extracts the plain text of a PDF, pages separated by form feeds.
// Pages that fail to render are skipped.
func pdfText(data []byte) (string, error) {
	reader, err := pdflib.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	var buf strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if buf.Len() > 0 {
			buf.WriteString("\f")
		}
		buf.WriteString(text)
	}
	return buf.String(), nil
}

// pdfEmbeddedImages lifts image streams out of a PDF: at least
// minEmbeddedImageBytes each, deduplicated by content hash, at most
// maxEmbeddedImages per document.
func pdfEmbeddedImages(data []byte) ([][]byte, error) {
	conf := model.NewDefaultConfiguration()
	pdfCtx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), conf)
	if err != nil {
		return nil, fmt.Errorf("read pdf: %w", err)
	}

	seen := make(map[core.ID]struct{})
	var images [][]byte

	for pageNr := 1; pageNr <= pdfCtx.PageCount && len(images) < maxEmbeddedImages; pageNr++ {
		pageImages, err := pdfcpu.ExtractPageImages(pdfCtx, pageNr, false)
		if err != nil {
			continue
		}
		for _, img := range pageImages {
			raw, err := io.ReadAll(img)
			if err != nil || len(raw) < minEmbeddedImageBytes {
				continue
			}
			id := core.IDFromContent(raw)
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			images = append(images, raw)
			if len(images) >= maxEmbeddedImages {
				break
			}
		}
	}

	return images, nil
}
