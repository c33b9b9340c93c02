package profile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"text/template"
)

var summaryTemplate = template.Must(template.New("summary").Parse(`You are a professional career coach. Rewrite the following professional summary in two different styles:
1. A more conversational and engaging paragraph.
2. A list of 3-4 key strengths as bullet points.

Original Summary:
---
{{.Summary}}

Format your response using Markdown for headers and bullet points.`))

var matchTemplate = template.Must(template.New("match").Parse(`You are an expert AI recruiting assistant. Your task is to analyze the following candidate profile against the provided job description. Highlight the top 3-5 reasons why the candidate is a strong match for the role. Focus on aligning the candidate's skills, projects, and experience with the job requirements. Be specific and use evidence from the candidate's profile.

Candidate Profile:
---
{{.Profile}}

Job Description:
---
{{.JobDescription}}

Present your analysis as a concise, professional summary using Markdown for formatting. Start with a heading like 'Top Reasons for a Strong Match'.`))

// SummaryPrompt asks for a rewrite of the profile summary. The input is
// ignored; the button that triggers it carries no text.
func (p Profile) SummaryPrompt(string) (string, error) {
	return render(summaryTemplate, struct{ Summary string }{p.Summary})
}

// MatchPrompt compares the profile, as indented JSON, with a job
// description. An empty description is passed through.
func (p Profile) MatchPrompt(jobDescription string) (string, error) {
	raw, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode profile: %w", err)
	}
	return render(matchTemplate, struct {
		Profile        string
		JobDescription string
	}{string(raw), jobDescription})
}

func render(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute %s prompt: %w", t.Name(), err)
	}
	return buf.String(), nil
}
