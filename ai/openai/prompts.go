package openai

import (
	"fmt"
	"strings"
)

const chunkPromptTemplate = `You are a precise study-material parser. Given a text chunk from a document,
extract structured study information and return it as JSON.

Output ONLY valid JSON with exactly these keys:
  "summary" (string), "topics" (array of strings), "key_points" (array of strings).
Do not include any preamble, markdown fences, or text outside the object.

Chunk:
%s`

const imagePromptTemplate = `You analyze images for learning. Given the image access URLs below, extract
study cues: visible text, diagrams, labeled structures, and the concepts they
illustrate. Answer as plain prose, one paragraph per image.

Image URLs: %s`

const audioPromptTemplate = `You are an academic note taker. Given the audio access URLs below, produce a
transcript outline with key takeaways and any action items, as plain text
bullets.

Audio URLs: %s`

const treePromptTemplate = `You are an expert educator creating hierarchical knowledge trees from learning
materials. Given the parsed content below, return a JSON array of trees.

Rules:
- CONSOLIDATE into ONE tree unless the core concepts are fundamentally
  different domains (e.g. completely unrelated topics like medicine vs
  mathematics). Prefer a single unified tree.
- At most %d trees and at most %d levels. Levels are 0-based.
- Use the MINIMUM depth that adds real educational value; do not force extra
  levels just because the maximum allows them. Shallow trees are preferred.
- Levels must be sequential: a child's level is exactly its parent's level
  plus one. Do not skip levels.
- Keep concept names concise (roughly 10-30 characters).
- Include a "children" array in every node, even when empty.

Each tree has this shape:
  {"root_concept": "Main topic", "tree": {"concept": "Main topic", "level": 0, "children": []}}

Return ONLY the JSON array, no markdown, no additional text.

Parsed content:
%s`

const questionPromptTemplate = `You are an expert educator creating one multiple choice question for assessment.

Concept: %s
Level: %d
Context:
%s

Existing questions (yours MUST NOT duplicate or rephrase any of these):
%s

Rules:
- Use ONLY the context above; never outside knowledge. Every option and the
  explanation must be grounded in the context.
- Provide exactly 4 options labeled A, B, C, D with exactly one correct.
- Distractors must be plausible but clearly wrong given the context.
- Keep the question short and insightful, appropriate for level %d.

Return ONLY valid JSON in this exact shape:
  {"question": "...?", "options": {"A": "...", "B": "...", "C": "...", "D": "..."}, "correct_answer": "A", "explanation": "..."}

If the context does not contain enough information for a valid question about
the concept, return:
  {"question": null, "options": {}, "correct_answer": "", "explanation": "Insufficient information in context to generate question"}`

func chunkPrompt(chunk string) string {
	return fmt.Sprintf(chunkPromptTemplate, chunk)
}

func imagePrompt(urls []string) string {
	return fmt.Sprintf(imagePromptTemplate, strings.Join(urls, ", "))
}

func audioPrompt(urls []string) string {
	return fmt.Sprintf(audioPromptTemplate, strings.Join(urls, ", "))
}

func treePrompt(corpus string, maxTrees, maxLevels int) string {
	return fmt.Sprintf(treePromptTemplate, maxTrees, maxLevels, corpus)
}

func questionPrompt(concept, corpus string, level int, priorPrompts []string) string {
	prior := "None"
	if len(priorPrompts) > 0 {
		var sb strings.Builder
		for _, p := range priorPrompts {
			sb.WriteString("- ")
			sb.WriteString(p)
			sb.WriteByte('\n')
		}
		prior = strings.TrimRight(sb.String(), "\n")
	}
	return fmt.Sprintf(questionPromptTemplate, concept, level, corpus, prior, level)
}
