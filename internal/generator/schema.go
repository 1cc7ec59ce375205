package generator

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Response payloads are validated against explicit schemas before decoding
// instead of trusting the backend's dynamic shape.

const syllabusSchema = `{
	"type": "object",
	"required": ["subject", "difficulty", "topics"],
	"properties": {
		"subject": {"type": "string"},
		"difficulty": {"type": "string"},
		"topics": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["id", "title", "description", "week"],
				"properties": {
					"id": {"type": "string"},
					"title": {"type": "string"},
					"description": {"type": "string"},
					"week": {"type": "integer"}
				}
			}
		},
		"sources": {
			"type": "array",
			"items": {
				"type": "object",
				"properties": {
					"university": {"type": "string"},
					"url": {"type": "string"},
					"title": {"type": "string"}
				}
			}
		}
	}
}`

const materialsSchema = `{
	"type": "object",
	"required": ["lectureNote", "educationalCase", "kazus", "questions", "tests"],
	"properties": {
		"lectureNote": {"type": "string"},
		"educationalCase": {"type": "string"},
		"kazus": {"type": "string"},
		"questions": {
			"type": "array",
			"items": {"type": "string"}
		},
		"tests": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["question", "options", "correctAnswer"],
				"properties": {
					"question": {"type": "string"},
					"options": {"type": "array", "items": {"type": "string"}},
					"correctAnswer": {"type": "string"}
				}
			}
		}
	}
}`

// validatePayload checks payload against schema and returns a descriptive
// error when the shape does not match.
func validatePayload(schema, payload string) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schema),
		gojsonschema.NewStringLoader(payload),
	)
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if !result.Valid() {
		var msgs []string
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("schema violation: %s", strings.Join(msgs, "; "))
	}
	return nil
}

// stripFences removes a surrounding markdown code fence, which models
// sometimes wrap JSON output in despite the requested MIME type.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
