package coaching

import "github.com/jonathan/pitch-coach/internal/types"

// Tip thresholds
const (
	tipFillerRatio       = 0.05
	minStrongWordsTip    = 3
	tipWeakRatio         = 0.03
	minSentences         = 3
	maxAvgSentenceLength = 25
	tipSubScore          = 70
)

// EncouragementTip is the single tip emitted when no rule triggers
const EncouragementTip = "Great pitch! Keep practicing to stay sharp, and try a harder objection next."

// objectionTips maps an objection title to one tailored tip
var objectionTips = map[string]string{
	"HIPAA Compliance":             "Mention the signed BAA, encryption in transit and at rest, and audit logging in one sentence.",
	"Patient Privacy Consent":      "Explain the consent workflow: patients are informed and recording only starts when the provider chooses.",
	"EHR Templates Exist":          "Contrast templates (clicking boxes) with capturing the actual conversation, then show it fills the same EHR fields.",
	"Dental Terminology Accuracy":  "Cite the dental-specific vocabulary and CDT code suggestions, and offer a side-by-side trial on their own notes.",
	"AI Error Liability":           "Stress that the dentist reviews and signs every note; the AI drafts, the provider decides.",
	"Always Listening Concern":     "Be explicit: it only records when the provider taps start, and shows a visible indicator while active.",
	"Dragon/Dictation Alternative": "Position it as ambient note-taking: no dictation commands, it structures the note from the natural conversation.",
	"Internet Dependency":          "Describe offline capture with automatic sync once the connection returns.",
	"Staff Adoption Complexity":    "Quantify onboarding: one button, a 15-minute walkthrough, and live support for the first week.",
	"Company Longevity Risk":       "Address data portability: full export in standard formats at any time, plus escrow terms.",
	"Too Expensive":                "Reframe cost as time: hours saved per provider per week multiplied by their hourly value.",
	"Staff Training Time":          "Give a concrete timeline, such as productive on day one and fully comfortable within a week.",
	"Data Security General":        "Acknowledge their past cloud issues, then list concrete safeguards like encryption, SOC 2 and access controls.",
	"Current System Works":         "Agree it works, then show the hidden cost: after-hours charting time the current system still requires.",
	"ROI Unclear":                  "Lead with numbers: minutes saved per patient, patients per day, and the resulting monthly value.",
	"Too Busy Now":                 "Lower the commitment: a two-week pilot that saves time during their busiest season.",
}

// ObjectionTip returns the tailored tip for a title, if any
func ObjectionTip(title string) (string, bool) {
	tip, ok := objectionTips[title]
	return tip, ok
}

// GenerateTips returns improvement tips in rule-declaration order. When no rule
// triggers it returns exactly one encouragement tip.
func GenerateTips(in Input) []string {
	tips := make([]string, 0)
	a := in.Analysis

	switch a.Pacing {
	case types.PacingSlow:
		tips = append(tips, "Speak a little faster: aim for 120-150 words per minute to sound confident.")
	case types.PacingFast:
		tips = append(tips, "Slow down: pausing between key points helps the dentist absorb each benefit.")
	}

	if in.fillerRatio() > tipFillerRatio {
		tips = append(tips, "Cut filler words. Replace them with a brief pause to sound more authoritative.")
	}

	if a.StrongWords < minStrongWordsTip {
		tips = append(tips, "Use more outcome words such as save, reduce, improve, secure and proven.")
	}

	if in.weakRatio() > tipWeakRatio {
		tips = append(tips, "Drop hedges like maybe, probably and might. State benefits as facts.")
	}

	if a.Sentences < minSentences {
		tips = append(tips, "Structure the answer in at least three sentences: acknowledge, answer, then ask for the next step.")
	}

	if a.AvgSentenceLength > maxAvgSentenceLength {
		tips = append(tips, "Break up long sentences; keep each one under about 20 words.")
	}

	if in.Score.Clarity < tipSubScore {
		tips = append(tips, "Make the benefit explicit: say exactly what the practice gains, in numbers if possible.")
	}

	if in.Score.Confidence < tipSubScore {
		tips = append(tips, "Project confidence with steady pacing and decisive language.")
	}

	if tip, ok := ObjectionTip(in.ObjectionTitle); ok {
		tips = append(tips, tip)
	}

	if len(tips) == 0 {
		tips = append(tips, EncouragementTip)
	}
	return tips
}
