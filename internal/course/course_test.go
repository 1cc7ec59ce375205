package course

import (
	"testing"
)

func sampleSyllabus() *Syllabus {
	return &Syllabus{
		Subject:    "Artificial Intelligence",
		Difficulty: Intermediate,
		Topics: []Topic{
			{ID: "1", Title: "Search", Description: "Uninformed and informed search", Week: 1},
			{ID: "2", Title: "Logic", Description: "Propositional and first-order logic", Week: 2},
			{ID: "3", Title: "Learning", Description: "Supervised learning basics", Week: 3},
		},
	}
}

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		in      string
		want    Difficulty
		wantErr bool
	}{
		{"beginner", Beginner, false},
		{"Intermediate", Intermediate, false},
		{"ADVANCED", Advanced, false},
		{"expert", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseDifficulty(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDifficulty(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDifficulty(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMoveTopic(t *testing.T) {
	s := sampleSyllabus()
	if err := s.MoveTopic(0, 2); err != nil {
		t.Fatalf("MoveTopic() error = %v", err)
	}

	gotOrder := []string{s.Topics[0].ID, s.Topics[1].ID, s.Topics[2].ID}
	wantOrder := []string{"2", "3", "1"}
	for i := range wantOrder {
		if gotOrder[i] != wantOrder[i] {
			t.Fatalf("topic order = %v, want %v", gotOrder, wantOrder)
		}
	}

	// Week numbers are generation-time labels and must survive reorder.
	if s.Topics[2].Week != 1 {
		t.Errorf("moved topic week = %d, want 1", s.Topics[2].Week)
	}
}

func TestMoveTopic_OutOfRange(t *testing.T) {
	s := sampleSyllabus()
	if err := s.MoveTopic(0, 3); err == nil {
		t.Error("MoveTopic(0, 3) expected error")
	}
	if err := s.MoveTopic(-1, 0); err == nil {
		t.Error("MoveTopic(-1, 0) expected error")
	}
}

func TestMoveTopic_SamePosition(t *testing.T) {
	s := sampleSyllabus()
	if err := s.MoveTopic(1, 1); err != nil {
		t.Fatalf("MoveTopic() error = %v", err)
	}
	if s.Topics[1].ID != "2" {
		t.Errorf("topic order changed on no-op move")
	}
}

func TestFilterTopics(t *testing.T) {
	s := sampleSyllabus()

	got := s.FilterTopics("logic")
	if len(got) != 1 || got[0].ID != "2" {
		t.Errorf("FilterTopics(%q) = %v, want topic 2", "logic", got)
	}

	// Description text matches too.
	got = s.FilterTopics("SUPERVISED")
	if len(got) != 1 || got[0].ID != "3" {
		t.Errorf("FilterTopics(%q) = %v, want topic 3", "SUPERVISED", got)
	}

	if got := s.FilterTopics(""); len(got) != 3 {
		t.Errorf("empty query returned %d topics, want 3", len(got))
	}

	if got := s.FilterTopics("quantum"); len(got) != 0 {
		t.Errorf("no-match query returned %d topics, want 0", len(got))
	}
}

func TestTopicByID(t *testing.T) {
	s := sampleSyllabus()
	topic, ok := s.TopicByID("2")
	if !ok || topic.Title != "Logic" {
		t.Errorf("TopicByID(2) = %+v, %v", topic, ok)
	}
	if _, ok := s.TopicByID("99"); ok {
		t.Error("TopicByID(99) found a topic, want none")
	}
}
