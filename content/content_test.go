package content

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	c := Default()
	if err := c.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if len(c.Photos) != 4 {
		t.Errorf("len(Photos) = %d, want 4", len(c.Photos))
	}
	if !strings.HasPrefix(c.Letter, "亲爱的爸爸") {
		t.Errorf("letter starts with %q", c.Letter[:min(len(c.Letter), 12)])
	}
	if got := c.TitleLines(); len(got) != 2 {
		t.Errorf("TitleLines() = %q, want 2 lines", got)
	}
	if c.LetterRunes() >= len(c.Letter) {
		t.Error("LetterRunes should count runes, not bytes, for the Chinese letter")
	}
}

func TestDefaultReturnsIndependentCopies(t *testing.T) {
	a := Default()
	a.Photos[0].Caption = "changed"
	if Default().Photos[0].Caption == "changed" {
		t.Error("Default() shares state between calls")
	}
}

func TestParseOverridesDefaults(t *testing.T) {
	data := []byte(`
letter: "Dear Dad"
photos:
  - image: pics/one.png
    caption: One
music: tunes/song.mp3
`)
	c, err := Parse(data, "/cards/dad")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if c.Letter != "Dear Dad" {
		t.Errorf("Letter = %q", c.Letter)
	}
	if len(c.Photos) != 1 {
		t.Fatalf("len(Photos) = %d, want 1 (list replaced, not merged)", len(c.Photos))
	}
	if want := filepath.Join("/cards/dad", "pics/one.png"); c.Photos[0].Image != want {
		t.Errorf("Image = %q, want %q", c.Photos[0].Image, want)
	}
	if want := filepath.Join("/cards/dad", "tunes/song.mp3"); c.Music != want {
		t.Errorf("Music = %q, want %q", c.Music, want)
	}
	if c.Blessing.Heading == "" {
		t.Error("unspecified sections should keep their defaults")
	}
}

func TestParseExpandsEnv(t *testing.T) {
	t.Setenv("CARD_SIGNATURE", "Sam")
	c, err := Parse([]byte(`letter: "Love, ${CARD_SIGNATURE}"`), "")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if c.Letter != "Love, Sam" {
		t.Errorf("Letter = %q, want %q", c.Letter, "Love, Sam")
	}
}

func TestParseKeepsAbsoluteAndRemoteRefs(t *testing.T) {
	c, err := Parse([]byte(`
photos:
  - image: /abs/a.png
    caption: A
  - image: https://example.com/b.png
    caption: B
`), "/base")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if c.Photos[0].Image != "/abs/a.png" || c.Photos[1].Image != "https://example.com/b.png" {
		t.Errorf("refs rewritten: %+v", c.Photos)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr error
	}{
		{"empty letter", `letter: "   "`, ErrEmptyLetter},
		{"no photos", `photos: []`, ErrNoPhotos},
		{"missing caption", "photos:\n  - image: a.png\n", nil},
		{"missing heading", "blessing:\n  heading: \"\"\n", nil},
		{"missing label", "labels:\n  restart: \"\"\n", nil},
		{"unsupported photo scheme", "photos:\n  - image: ftp://example.com/a.png\n    caption: dad\n", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml), "")
			if err == nil {
				t.Fatal("expected validation error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadRecordsSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "card.yaml")
	if err := os.WriteFile(path, []byte("hint: open me\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if c.Source != path {
		t.Errorf("Source = %q, want %q", c.Source, path)
	}
	if c.Hint != "open me" {
		t.Errorf("Hint = %q", c.Hint)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load() error = %v, want ErrNotExist", err)
	}
}
