package profile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	p := Default()
	require.NoError(t, p.Validate())
	assert.NotEmpty(t, p.Skills)
	assert.Equal(t, "Programming Languages", p.Skills[0].Category, "skill order is preserved")
}

func TestDefault_LinksNoLocalAssets(t *testing.T) {
	p := Default()

	assert.Empty(t, p.PhotoURL)
	assert.Empty(t, p.ResumeURL)
	for _, proj := range p.Projects {
		assert.Empty(t, proj.ImageURL, proj.Title)
	}
}

func TestLoad_EmptyPathUsesDefault(t *testing.T) {
	p, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().Name, p.Name)
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: Ada Example
title: Backend Engineer
github: https://github.com/ada
summary: Builds reliable services.
skills:
  - category: Languages
    skills: [Go, SQL]
projects:
  - title: Queue
    tags: [go]
experience:
  - role: Engineer
    company: Example Co
education:
  degree: BSc
  year: "2020"
certifications:
  - CKA
`), 0o600))

	p, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "Ada Example", p.Name)
	assert.Equal(t, []string{"Go", "SQL"}, p.Skills[0].Skills)
	assert.Equal(t, "Queue", p.Projects[0].Title)
	assert.Equal(t, "2020", p.Education.Year)
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"missing name", "summary: s\n"},
		{"missing summary", "name: n\n"},
		{"bad url", "name: n\nsummary: s\ngithub: not a url\n"},
		{"unknown field", "name: n\nsummary: s\nphone: 123\n"},
		{"project without title", "name: n\nsummary: s\nprojects:\n  - description: d\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestSummaryPrompt(t *testing.T) {
	p := Default()
	prompt, err := p.SummaryPrompt("ignored")

	require.NoError(t, err)
	assert.Contains(t, prompt, "professional career coach")
	assert.Contains(t, prompt, p.Summary)
	assert.NotContains(t, prompt, "ignored")
}

func TestMatchPrompt(t *testing.T) {
	p := Default()
	prompt, err := p.MatchPrompt("Looking for a Spring Boot developer")

	require.NoError(t, err)
	assert.Contains(t, prompt, "expert AI recruiting assistant")
	assert.Contains(t, prompt, `"name": "Kishore M M"`)
	assert.Contains(t, prompt, "Looking for a Spring Boot developer")
	assert.Contains(t, prompt, "Top Reasons for a Strong Match")
}

func TestMatchPrompt_EmptyDescriptionPassesThrough(t *testing.T) {
	prompt, err := Default().MatchPrompt("")
	require.NoError(t, err)
	assert.Contains(t, prompt, "Job Description:\n---\n\n")
}
