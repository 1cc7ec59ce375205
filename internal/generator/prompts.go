package generator

import (
	"fmt"

	"github.com/ustoz-pro/ustoz/internal/course"
	"github.com/ustoz-pro/ustoz/internal/i18n"
)

// difficultyDescription returns the per-language prose used in prompts to
// pin the target difficulty.
func (s *Service) difficultyDescription(d course.Difficulty, lang i18n.Language) string {
	return s.catalog.T(lang, "difficultyDesc."+d.String())
}

func (s *Service) syllabusPrompt(req SyllabusRequest) string {
	return fmt.Sprintf(`Top universities (like MIT, Harvard, Stanford, Oxford) are known for their high-quality syllabuses.
Create a detailed educational syllabus for the subject: %q.
Target Difficulty Level: %s.
The syllabus must contain exactly %d topics/weeks.

For each topic, provide:
1. A clear Title.
2. A short description of what is covered, tailored to the %s level.

CRITICAL: Use the googleSearch tool to find real-world syllabuses from top universities and reference them.
Provide the source links as 'groundingMetadata'.

The final output should be strictly JSON format matching this structure:
{
  "subject": %q,
  "difficulty": %q,
  "topics": [
    { "id": "1", "title": "Topic 1", "description": "...", "week": 1 },
    ...
  ],
  "sources": [
    { "university": "MIT", "url": "...", "title": "Syllabus Name" }
  ]
}
Output language: %s.`,
		req.Subject,
		s.difficultyDescription(req.Difficulty, req.Language),
		req.TopicCount,
		req.Difficulty,
		req.Subject,
		req.Difficulty,
		req.Language.Name(),
	)
}

func (s *Service) materialsPrompt(req MaterialsRequest) string {
	return fmt.Sprintf(`Subject: %s
Topic: %s
Target Difficulty Level: %s

Task: Prepare high-quality academic and professional educational materials for this topic in %s.
The complexity must strictly match the %s level.

REQUIREMENTS:

1. LECTURE_NOTE:
   - At least 3000 words.
   - Logical flow, historical context, interesting facts, theoretical and practical foundations.
   - Use Markdown and LaTeX for formulas.

2. EDUCATIONAL_CASE:
   - Problem statement, scope, consequences if not solved, step-by-step solution.

3. KAZUS:
   - Detailed situational problem.

4. QUESTIONS:
   - At least 20 questions for comprehension.

5. TESTS:
   - At least 30 multiple-choice questions (A, B, C, D) with the correct answer.

Return ONLY this JSON format:
{
  "lectureNote": "Detailed markdown lecture text...",
  "educationalCase": "Detailed case text...",
  "kazus": "Detailed kazus text...",
  "questions": ["1...", "2...", ...],
  "tests": [
    { "question": "...", "options": ["A...", "B...", "C...", "D..."], "correctAnswer": "A" },
    ...
  ]
}`,
		req.Subject,
		req.TopicTitle,
		s.difficultyDescription(req.Difficulty, req.Language),
		req.Language.Name(),
		req.Difficulty,
	)
}
