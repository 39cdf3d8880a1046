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


package pipeline

import (
	"time"

	"github.com/poiesic/arbor/core"
)

// accumulator collects branch results for one run. Only the coordinator's
// merge loop touches it; no locking needed.
type accumulator struct {
	document *core.ExtractionResult
	image    *core.ExtractionResult
	audio    *core.ExtractionResult

	wantDocument bool
	wantImage    bool
	wantAudio    bool

	inFlight int

	// seenURLs filters image re-admission: a URL handed to the image branch
	// once in this run is never handed to it again.
	seenURLs map[string]struct{}

	// urlSet backs the URL set union across image merges.
	urlSet map[string]struct{}
}

func newAccumulator(req *core.ParseRequest) *accumulator {
	return &accumulator{
		wantDocument: len(req.Documents) > 0,
		wantImage:    len(req.Images) > 0,
		wantAudio:    len(req.Audio) > 0,
		seenURLs:     make(map[string]struct{}),
		urlSet:       make(map[string]struct{}),
	}
}

// merge folds one branch result in. Image results merge additively: URL set
// union, finding concatenation. Other modalities report exactly once.
func (a *accumulator) merge(result *core.ExtractionResult) {
	switch result.Modality {
	case core.ModalityDocument:
		a.document = result

	case core.ModalityAudio:
		a.audio = result

	case core.ModalityImage:
		if a.image == nil {
			a.image = &core.ExtractionResult{Modality: core.ModalityImage}
		}
		a.image.Findings = append(a.image.Findings, result.Findings...)
		for _, url := range result.URLs {
			if _, dup := a.urlSet[url]; dup {
				continue
			}
			a.urlSet[url] = struct{}{}
			a.seenURLs[url] = struct{}{}
			a.image.URLs = append(a.image.URLs, url)
		}
	}
}

// unseen returns the subset of urls this run has not processed and marks
// them as claimed, so a racing second admission cannot claim them again.
func (a *accumulator) unseen(urls []string) []string {
	var fresh []string
	for _, url := range urls {
		if _, dup := a.seenURLs[url]; dup {
			continue
		}
		a.seenURLs[url] = struct{}{}
		fresh = append(fresh, url)
	}
	return fresh
}

// satisfied is the fan-in predicate: every admitted modality has reported
// and nothing is in flight. Pure over accumulator state; safe to evaluate
// any number of times.
func (a *accumulator) satisfied() bool {
	if a.inFlight > 0 {
		return false
	}
	if a.wantDocument && a.document == nil {
		return false
	}
	if a.wantImage && a.image == nil {
		return false
	}
	if a.wantAudio && a.audio == nil {
		return false
	}
	return true
}

// consolidate produces the immutable record of this run.
func (a *accumulator) consolidate(req *core.ParseRequest) *core.ConsolidatedContent {
	return &core.ConsolidatedContent{
		Document:     toModalityContent(a.document),
		Image:        toModalityContent(a.image),
		Audio:        toModalityContent(a.audio),
		SourceAssets: req.Assets(),
		CreatedAt:    time.Now().UTC(),
	}
}

func toModalityContent(result *core.ExtractionResult) core.ModalityContent {
	if result == nil {
		return core.ModalityContent{}
	}
	content := core.ModalityContent{URLs: result.URLs}
	for _, f := range result.Findings {
		if f.Err != "" {
			content.Errors = append(content.Errors, f.Asset+": "+f.Err)
			continue
		}
		if f.Text != "" {
			content.Findings = append(content.Findings, f.Text)
		}
	}
	return content
}
