package export

import (
	"fmt"
	"strings"

	"github.com/ustoz-pro/ustoz/internal/course"
	"github.com/ustoz-pro/ustoz/internal/i18n"
)

// Document builders: each returns the title plus ordered sections for one of
// the export targets. The PDF and DOCX variants of the same artifact use
// deliberately different layouts, matching the product's document designs.

// SyllabusPDFDocument lays out a syllabus for the paginated renderer.
func SyllabusPDFDocument(s *course.Syllabus, cat *i18n.Catalog, lang i18n.Language) (string, []Section) {
	appName := cat.T(lang, "appName")
	diffLabel := cat.T(lang, "difficulty."+s.Difficulty.String())

	topics := make([]string, 0, len(s.Topics))
	for _, t := range s.Topics {
		topics = append(topics, fmt.Sprintf("Week %d: %s\n%s", t.Week, t.Title, t.Description))
	}
	refs := make([]string, 0, len(s.Sources))
	for _, src := range s.Sources {
		refs = append(refs, fmt.Sprintf("%s: %s", src.University, src.Title))
	}

	title := s.Subject + "_Syllabus"
	return title, []Section{
		NewSection(appName,
			"Subject: "+s.Subject,
			"Difficulty: "+diffLabel,
			fmt.Sprintf("Topics: %d", len(s.Topics))),
		{Heading: "Curriculum", Body: topics},
		{Heading: "References", Body: refs},
	}
}

// SyllabusDOCXDocument lays out a syllabus for the structured renderer.
func SyllabusDOCXDocument(s *course.Syllabus, cat *i18n.Catalog, lang i18n.Language) (string, []Section) {
	diffLabel := cat.T(lang, "difficulty."+s.Difficulty.String())

	schedule := make([]string, 0, len(s.Topics))
	for _, t := range s.Topics {
		schedule = append(schedule, fmt.Sprintf("Week %d: %s - %s", t.Week, t.Title, t.Description))
	}
	sources := make([]string, 0, len(s.Sources))
	for _, src := range s.Sources {
		sources = append(sources, fmt.Sprintf("%s: %s (%s)", src.University, src.Title, src.URL))
	}

	title := s.Subject + " Syllabus"
	return title, []Section{
		NewSection("Overview",
			"Subject: "+s.Subject,
			"Level: "+diffLabel,
			fmt.Sprintf("Weeks: %d", len(s.Topics))),
		{Heading: "Weekly Schedule", Body: schedule},
		{Heading: "Sources", Body: sources},
	}
}

// MaterialsPDFDocument lays out lesson materials for the paginated renderer.
func MaterialsPDFDocument(topicTitle string, c *course.GeneratedContent) (string, []Section) {
	tests := make([]string, 0, len(c.Tests))
	for _, t := range c.Tests {
		tests = append(tests, fmt.Sprintf("%s\nCorrect: %s", t.Question, t.CorrectAnswer))
	}

	title := topicTitle + " Materials"
	return title, []Section{
		NewSection("Lecture", c.LectureNote),
		NewSection("Case Study", c.EducationalCase),
		{Heading: "Questions", Body: c.Questions},
		{Heading: "Tests", Body: tests},
	}
}

// MaterialsDOCXDocument lays out lesson materials for the structured
// renderer with localized section headings.
func MaterialsDOCXDocument(topicTitle string, c *course.GeneratedContent, cat *i18n.Catalog, lang i18n.Language) (string, []Section) {
	tests := make([]string, 0, len(c.Tests))
	for _, t := range c.Tests {
		tests = append(tests, fmt.Sprintf("%s\nOptions: %s\nAnswer: %s",
			t.Question, strings.Join(t.Options, ", "), t.CorrectAnswer))
	}

	title := topicTitle + " Lesson Materials"
	return title, []Section{
		NewSection(cat.T(lang, "heading.lectureNote"), c.LectureNote),
		NewSection(cat.T(lang, "heading.eduCase"), c.EducationalCase),
		NewSection(cat.T(lang, "heading.kazus"), c.Kazus),
		{Heading: cat.T(lang, "heading.questions"), Body: c.Questions},
		{Heading: cat.T(lang, "heading.tests"), Body: tests},
	}
}
