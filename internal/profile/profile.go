// Package profile holds the resume content rendered by the site and the
// prompt templates built from it.
package profile

import (
	"bytes"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type Profile struct {
	Name           string       `json:"name" yaml:"name" validate:"required"`
	Title          string       `json:"title" yaml:"title"`
	LinkedIn       string       `json:"linkedin,omitempty" yaml:"linkedin" validate:"omitempty,url"`
	GitHub         string       `json:"github,omitempty" yaml:"github" validate:"omitempty,url"`
	Email          string       `json:"email,omitempty" yaml:"email" validate:"omitempty,email"`
	ResumeURL      string       `json:"resumeUrl,omitempty" yaml:"resume_url"`
	PhotoURL       string       `json:"-" yaml:"photo_url"`
	Summary        string       `json:"summary" yaml:"summary" validate:"required"`
	Skills         []SkillGroup `json:"skills" yaml:"skills" validate:"dive"`
	Projects       []Project    `json:"projects" yaml:"projects" validate:"dive"`
	Experience     []Job        `json:"experience" yaml:"experience" validate:"dive"`
	Education      Education    `json:"education" yaml:"education"`
	Certifications []string     `json:"certifications" yaml:"certifications"`
}

// SkillGroup keeps categories in display order.
type SkillGroup struct {
	Category string   `json:"category" yaml:"category" validate:"required"`
	Skills   []string `json:"skills" yaml:"skills"`
}

type Project struct {
	Title       string   `json:"title" yaml:"title" validate:"required"`
	Description string   `json:"description" yaml:"description"`
	Tags        []string `json:"tags" yaml:"tags"`
	ImageURL    string   `json:"-" yaml:"image_url"`
	SourceCode  string   `json:"sourceCode,omitempty" yaml:"source_code" validate:"omitempty,url"`
}

type Job struct {
	Role        string `json:"role" yaml:"role" validate:"required"`
	Company     string `json:"company" yaml:"company"`
	Date        string `json:"date" yaml:"date"`
	Description string `json:"description" yaml:"description"`
}

type Education struct {
	Degree      string `json:"degree" yaml:"degree"`
	Institution string `json:"institution" yaml:"institution"`
	CGPA        string `json:"cgpa,omitempty" yaml:"cgpa"`
	Year        string `json:"year" yaml:"year"`
}

var validate = validator.New()

// Validate checks required fields and link formats.
func (p Profile) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("invalid profile: %w", err)
	}
	return nil
}

// Load reads a YAML profile from path. An empty path returns Default().
func Load(path string) (Profile, error) {
	if path == "" {
		return Default(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("read profile %s: %w", path, err)
	}
	return Parse(raw)
}

// Parse decodes a YAML profile, rejecting unknown fields.
func Parse(raw []byte) (Profile, error) {
	var p Profile
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		return Profile{}, fmt.Errorf("decode profile: %w", err)
	}
	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}
