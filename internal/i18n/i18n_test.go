package i18n

import "testing"

func TestLoad(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	for _, lang := range []Language{Uzbek, English, Russian} {
		if got := c.T(lang, "appName"); got != "Ustoz Pro" {
			t.Errorf("T(%s, appName) = %q", lang, got)
		}
	}
}

func TestT_Fallback(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatal(err)
	}

	// Missing keys fall through to the key itself.
	if got := c.T(English, "no.such.key"); got != "no.such.key" {
		t.Errorf("missing key = %q, want key echo", got)
	}
	// Unknown languages resolve through the Uzbek table.
	if got := c.T(Language("de"), "appName"); got != "Ustoz Pro" {
		t.Errorf("unknown language = %q, want uz fallback", got)
	}
}

func TestTf(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	got := c.Tf(English, "confirm.pdf", "Artificial Intelligence")
	want := "Confirm PDF download for Artificial Intelligence?"
	if got != want {
		t.Errorf("Tf() = %q, want %q", got, want)
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		in   string
		want Language
	}{
		{"uz", Uzbek},
		{"en", English},
		{"en-US", English},
		{"ru", Russian},
		{"ru-RU,ru;q=0.9,en;q=0.8", Russian},
		{"", Uzbek},
		{"de", Uzbek},
		{"xx-klingon", Uzbek},
	}
	for _, tt := range tests {
		if got := Match(tt.in); got != tt.want {
			t.Errorf("Match(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestName(t *testing.T) {
	if Uzbek.Name() != "Uzbek" || English.Name() != "English" || Russian.Name() != "Russian" {
		t.Error("language names wrong")
	}
}
