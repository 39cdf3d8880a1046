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


package forest

import (
	"strings"

	"github.com/poiesic/arbor/ai"
	"github.com/poiesic/arbor/core"
)

// Repair normalizes a proposed tree sketch into a structurally valid tree.
// Levels reported by the model are discarded and rewritten top-down: the
// root is level 0 and every child is its parent's level plus one. Children
// that would reach maxLevels are truncated. Pure; the sketch is not
// modified.
func Repair(sketch ai.TreeSketch, maxLevels int) core.Tree {
	if maxLevels < 1 {
		maxLevels = core.MaxLevels
	}

	rootConcept := strings.TrimSpace(sketch.RootConcept)
	if rootConcept == "" && sketch.Root != nil {
		rootConcept = strings.TrimSpace(sketch.Root.Concept)
	}
	if rootConcept == "" {
		rootConcept = "Untitled"
	}

	root := repairNode(sketch.Root, rootConcept, 0, maxLevels)
	return core.Tree{RootConcept: rootConcept, Root: root}
}

// repairNode rebuilds one subtree at the given level. A nil sketch node
// becomes a bare node carrying the fallback concept.
func repairNode(node *ai.SketchNode, fallbackConcept string, level, maxLevels int) *core.ConceptNode {
	out := &core.ConceptNode{Concept: fallbackConcept, Level: level}
	if node == nil {
		return out
	}

	if concept := strings.TrimSpace(node.Concept); concept != "" {
		out.Concept = concept
	}

	// Children at maxLevels would break the depth bound; drop them.
	if level+1 >= maxLevels {
		return out
	}

	for _, child := range node.Children {
		if child == nil {
			continue
		}
		out.Children = append(out.Children, repairNode(child, "Untitled", level+1, maxLevels))
	}
	return out
}
