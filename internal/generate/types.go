package generate

// Request is the generateContent request body.
type Request struct {
	Contents []Content `json:"contents"`
}

// Response is the subset of the generateContent response envelope the
// portfolio reads.
type Response struct {
	Candidates []Candidate `json:"candidates"`
}

// Candidate is one generated completion.
type Candidate struct {
	Content *Content `json:"content,omitempty"`
}

// Content is a single conversation turn.
type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

// Part holds text. Text is a pointer so a part without a text field can be
// told apart from an empty completion.
type Part struct {
	Text *string `json:"text,omitempty"`
}

// NewRequest wraps prompt as a single user turn.
func NewRequest(prompt string) Request {
	return Request{
		Contents: []Content{
			{Role: "user", Parts: []Part{{Text: &prompt}}},
		},
	}
}

// Text extracts candidates[0].content.parts[0].text.
func (r *Response) Text() (string, bool) {
	if r == nil || len(r.Candidates) == 0 {
		return "", false
	}
	content := r.Candidates[0].Content
	if content == nil || len(content.Parts) == 0 || content.Parts[0].Text == nil {
		return "", false
	}
	return *content.Parts[0].Text, true
}
