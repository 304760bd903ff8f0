package content

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// PathFile is the on-disk layout of one guided path: its category, the path
// itself and one lesson per day.
type PathFile struct {
	Category CategoryDef `json:"category" yaml:"category"`
	Path     PathDef     `json:"path" yaml:"path"`
	Days     []DayDef    `json:"days" yaml:"days"`
}

type CategoryDef struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
	Order int    `json:"order,omitempty" yaml:"order,omitempty"`
}

type PathDef struct {
	ID        string `json:"id" yaml:"id"`
	Title     string `json:"title" yaml:"title"`
	Summary   string `json:"summary,omitempty" yaml:"summary,omitempty"`
	Order     int    `json:"order,omitempty" yaml:"order,omitempty"`
	TotalDays int    `json:"total_days,omitempty" yaml:"total_days,omitempty"`
}

type DayDef struct {
	Day    int       `json:"day" yaml:"day"`
	Title  string    `json:"title" yaml:"title"`
	Lesson LessonDef `json:"lesson" yaml:"lesson"`
}

type LessonDef struct {
	ID         string      `json:"id" yaml:"id"`
	Title      string      `json:"title,omitempty" yaml:"title,omitempty"`
	Intro      ScreenDef   `json:"intro" yaml:"intro"`
	Screens    []ScreenDef `json:"screens" yaml:"screens"`
	StoryIntro *ScreenDef  `json:"story_intro,omitempty" yaml:"story_intro,omitempty"`
	Reflection *ScreenDef  `json:"reflection,omitempty" yaml:"reflection,omitempty"`
	Final      ScreenDef   `json:"final" yaml:"final"`
}

type ScreenDef struct {
	ID        string            `json:"id" yaml:"id"`
	Kind      string            `json:"kind" yaml:"kind"`
	Title     string            `json:"title,omitempty" yaml:"title,omitempty"`
	Body      string            `json:"body,omitempty" yaml:"body,omitempty"`
	Button    string            `json:"button,omitempty" yaml:"button,omitempty"`
	BranchKey string            `json:"branch_key,omitempty" yaml:"branch_key,omitempty"`
	Options   []OptionDef       `json:"options,omitempty" yaml:"options,omitempty"`
	Branches  map[string]string `json:"branches,omitempty" yaml:"branches,omitempty"`
	Pairs     []PairDef         `json:"pairs,omitempty" yaml:"pairs,omitempty"`
	Prompt    string            `json:"prompt,omitempty" yaml:"prompt,omitempty"`
	Link      *LinkDef          `json:"link,omitempty" yaml:"link,omitempty"`
}

type OptionDef struct {
	ID   string `json:"id" yaml:"id"`
	Text string `json:"text" yaml:"text"`
}

type PairDef struct {
	Left  string `json:"left" yaml:"left"`
	Right string `json:"right" yaml:"right"`
}

type LinkDef struct {
	Label string `json:"label" yaml:"label"`
	URL   string `json:"url" yaml:"url"`
}

// IsContentFile reports whether name has an extension Parse understands.
func IsContentFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml", ".json":
		return true
	}
	return false
}

// Parse decodes a path file. The format follows the file extension and
// unknown fields are rejected in both formats.
func Parse(name string, data []byte) (*PathFile, error) {
	var pf PathFile
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&pf); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", name, err)
		}
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&pf); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", name, err)
		}
	default:
		return nil, fmt.Errorf("parsing %s: unsupported extension", name)
	}
	return &pf, nil
}
