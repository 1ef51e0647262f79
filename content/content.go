// Package content holds the card script: the texts, photos and music of one card.
//
// A built-in script is embedded; a YAML file can replace any part of it. Relative
// image and music paths in a file are resolved against the file's directory.
package content

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultScript []byte

// Sentinel errors
var (
	ErrNoPhotos    = errors.New("content has no photos")
	ErrEmptyLetter = errors.New("content letter is empty")
	ErrPhotoScheme = errors.New("photo image must be a file path or an http(s) URL")
)

// Content is the fixed script of one card session
type Content struct {
	Title    string   `yaml:"title"`
	Hint     string   `yaml:"hint"`
	Greeting Greeting `yaml:"greeting"`
	Letter   string   `yaml:"letter"`
	Memories string   `yaml:"memories_title"`
	Photos   []Photo  `yaml:"photos"`
	Blessing Blessing `yaml:"blessing"`
	Labels   Labels   `yaml:"labels"`
	Music    string   `yaml:"music"`

	// Source is the file the content was loaded from, empty for the built-in script
	Source string `yaml:"-"`
}

// Greeting is the opening card text
type Greeting struct {
	Lead     string `yaml:"lead"`
	Emphasis string `yaml:"emphasis"`
	Footer   string `yaml:"footer"`
}

// Photo is one carousel entry
type Photo struct {
	Image   string `yaml:"image"`
	Caption string `yaml:"caption"`
}

// Blessing is the final view text
type Blessing struct {
	Heading string   `yaml:"heading"`
	Lines   []string `yaml:"lines"`
}

// Labels are the captions of the interactive controls
type Labels struct {
	Continue string `yaml:"continue"`
	Memories string `yaml:"memories"`
	Bless    string `yaml:"bless"`
	Restart  string `yaml:"restart"`
}

// Default returns a fresh copy of the built-in script
func Default() *Content {
	c := &Content{}
	if err := yaml.Unmarshal(defaultScript, c); err != nil {
		panic(fmt.Sprintf("embedded content script is invalid: %v", err))
	}
	return c
}

// Load reads a script file over the built-in defaults
// Environment variables in the file are expanded before parsing
func Load(path string) (*Content, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read content file %s: %w", path, err)
	}
	c, err := Parse(data, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("content file %s: %w", path, err)
	}
	c.Source = path
	return c, nil
}

// Parse decodes a script over the built-in defaults and validates it
// Relative media paths are resolved against baseDir when it is not empty
func Parse(data []byte, baseDir string) (*Content, error) {
	c := Default()
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), c); err != nil {
		return nil, fmt.Errorf("failed to parse content: %w", err)
	}
	if baseDir != "" {
		c.resolve(baseDir)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// resolve anchors relative media references at dir
func (c *Content) resolve(dir string) {
	for i := range c.Photos {
		c.Photos[i].Image = anchor(dir, c.Photos[i].Image)
	}
	c.Music = anchor(dir, c.Music)
}

func anchor(dir, ref string) string {
	if ref == "" || filepath.IsAbs(ref) || strings.Contains(ref, "://") {
		return ref
	}
	return filepath.Join(dir, ref)
}

// Validate checks the script is complete enough to play
func (c *Content) Validate() error {
	if strings.TrimSpace(c.Letter) == "" {
		return ErrEmptyLetter
	}
	if len(c.Photos) == 0 {
		return ErrNoPhotos
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Title, validation.Required),
		validation.Field(&c.Photos, validation.Each(validation.By(validPhoto))),
		validation.Field(&c.Blessing),
		validation.Field(&c.Labels),
	); err != nil {
		return fmt.Errorf("invalid content: %w", err)
	}
	return nil
}

func validPhoto(value any) error {
	p, ok := value.(Photo)
	if !ok {
		return errors.New("not a photo")
	}
	return validation.ValidateStruct(&p,
		validation.Field(&p.Image, validation.By(photoRef)),
		validation.Field(&p.Caption, validation.Required),
	)
}

func photoRef(value any) error {
	ref, _ := value.(string)
	if strings.Contains(ref, "://") && !IsRemote(ref) {
		return ErrPhotoScheme
	}
	return nil
}

// Validate checks the blessing has a heading
func (b Blessing) Validate() error {
	return validation.ValidateStruct(&b,
		validation.Field(&b.Heading, validation.Required),
	)
}

// Validate checks every control has a caption
func (l Labels) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Continue, validation.Required),
		validation.Field(&l.Memories, validation.Required),
		validation.Field(&l.Bless, validation.Required),
		validation.Field(&l.Restart, validation.Required),
	)
}

// TitleLines splits the gift box label into its lines
func (c *Content) TitleLines() []string {
	return strings.Split(c.Title, "\n")
}

// LetterRunes returns the letter length in runes
func (c *Content) LetterRunes() int {
	return len([]rune(c.Letter))
}
