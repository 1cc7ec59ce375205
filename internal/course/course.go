// Package course defines the domain model for generated syllabi and
// per-topic lesson materials.
package course

import (
	"fmt"
	"strings"
)

// Difficulty is the target difficulty level of a syllabus.
type Difficulty string

const (
	Beginner     Difficulty = "beginner"
	Intermediate Difficulty = "intermediate"
	Advanced     Difficulty = "advanced"
)

// ParseDifficulty converts a string to a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	switch Difficulty(strings.ToLower(s)) {
	case Beginner:
		return Beginner, nil
	case Intermediate:
		return Intermediate, nil
	case Advanced:
		return Advanced, nil
	}
	return "", fmt.Errorf("unknown difficulty: %q", s)
}

func (d Difficulty) String() string {
	return string(d)
}

// Topic is one week's entry within a syllabus.
//
// Week is the 1-based position assigned at generation time. It is a label,
// not an index: drag-reordering the topic sequence does not renumber it.
type Topic struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Week        int    `json:"week"`
}

// Source is a cited reference syllabus from a university.
type Source struct {
	University string `json:"university"`
	URL        string `json:"url"`
	Title      string `json:"title"`
}

// Syllabus is a generated multi-week course outline. It is created atomically
// by one generation call; only the topic ordering is mutable afterwards.
type Syllabus struct {
	Subject    string     `json:"subject"`
	Difficulty Difficulty `json:"difficulty"`
	Topics     []Topic    `json:"topics"`
	Sources    []Source   `json:"sources"`
}

// TopicByID returns the topic with the given id.
func (s *Syllabus) TopicByID(id string) (Topic, bool) {
	for _, t := range s.Topics {
		if t.ID == id {
			return t, true
		}
	}
	return Topic{}, false
}

// MoveTopic moves the topic at index from to index to, shifting the topics
// in between. Week numbers are left untouched.
func (s *Syllabus) MoveTopic(from, to int) error {
	n := len(s.Topics)
	if from < 0 || from >= n || to < 0 || to >= n {
		return fmt.Errorf("move topic: index out of range (from=%d, to=%d, len=%d)", from, to, n)
	}
	if from == to {
		return nil
	}
	t := s.Topics[from]
	s.Topics = append(s.Topics[:from], s.Topics[from+1:]...)
	s.Topics = append(s.Topics[:to], append([]Topic{t}, s.Topics[to:]...)...)
	return nil
}

// FilterTopics returns the topics whose title or description contains query,
// case-insensitively. An empty query returns all topics.
func (s *Syllabus) FilterTopics(query string) []Topic {
	if query == "" {
		return s.Topics
	}
	q := strings.ToLower(query)
	var out []Topic
	for _, t := range s.Topics {
		if strings.Contains(strings.ToLower(t.Title), q) ||
			strings.Contains(strings.ToLower(t.Description), q) {
			out = append(out, t)
		}
	}
	return out
}

// TestItem is a single multiple-choice question.
type TestItem struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
}

// GeneratedContent is the per-topic lesson material bundle. The minimum
// sizes requested from the backend (3000-word lecture, 20 questions,
// 30 tests) are advisory; whatever the backend returns is kept as-is.
type GeneratedContent struct {
	LectureNote     string     `json:"lectureNote"`
	EducationalCase string     `json:"educationalCase"`
	Kazus           string     `json:"kazus"`
	Questions       []string   `json:"questions"`
	Tests           []TestItem `json:"tests"`
}
