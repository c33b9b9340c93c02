package main

// Notice shown instead of a result when AI features are turned off.
const (
	DisabledTitle   = "Feature Not Available"
	DisabledMessage = "AI features are disabled in this public demo to prevent misuse. The code for these features is included in the project."

	// NoticeDismissSeconds is how long the disabled notice stays open.
	NoticeDismissSeconds = 6
)

// aiAction holds the fixed texts of one AI feature. Failure is the only
// message a visitor ever sees for an error, including rate limiting.
type aiAction struct {
	Name    string
	Title   string
	Loading string
	Failure string
}

var (
	SummaryAction = aiAction{
		Name:    "summary",
		Title:   "AI-Powered Summary",
		Loading: "Generating new perspectives...",
		Failure: "Sorry, I couldn't generate a summary at this time. Please try again later.",
	}
	MatchAction = aiAction{
		Name:    "match",
		Title:   "Analyzing Your Fit",
		Loading: "Comparing your profile with the job description...",
		Failure: "Sorry, I couldn't perform the analysis at this time. Please try again later.",
	}
)

var aiActions = []aiAction{SummaryAction, MatchAction}

func findAction(name string) (aiAction, bool) {
	for _, a := range aiActions {
		if a.Name == name {
			return a, true
		}
	}
	return aiAction{}, false
}
