package objections

import "github.com/jonathan/pitch-coach/internal/types"

// builtins is the static dentist objection set, ids 1-16
var builtins = []types.Objection{
	{
		ID:            1,
		Title:         "HIPAA Compliance",
		ObjectionText: "How do I know this is HIPAA-compliant?",
		Difficulty:    types.DifficultyHard,
		FollowUps: []string{
			"Will you sign a Business Associate Agreement with my practice?",
			"Where exactly is the patient data stored, and who can access it?",
		},
	},
	{
		ID:            2,
		Title:         "Patient Privacy Consent",
		ObjectionText: "Are you recording my patient without them knowing?",
		Difficulty:    types.DifficultyHard,
		FollowUps: []string{
			"What do I say to a patient who refuses to be recorded?",
		},
	},
	{
		ID:            3,
		Title:         "EHR Templates Exist",
		ObjectionText: "My EHR already has templates — why do I need this?",
		Difficulty:    types.DifficultyMedium,
		FollowUps: []string{
			"Does it integrate with my EHR, or am I copying and pasting?",
			"How long does it take to get a finished note?",
		},
	},
	{
		ID:            4,
		Title:         "Dental Terminology Accuracy",
		ObjectionText: "How accurate is this with dental terminology and CDT codes?",
		Difficulty:    types.DifficultyMedium,
		FollowUps: []string{
			"What happens when it mishears a tooth number?",
		},
	},
	{
		ID:            5,
		Title:         "AI Error Liability",
		ObjectionText: "What happens if the AI gets something wrong?",
		Difficulty:    types.DifficultyHard,
		FollowUps: []string{
			"If an audit finds a wrong note, who is liable?",
			"Can I see what the AI changed before I sign?",
			"How often does it make mistakes today?",
		},
	},
	{
		ID:            6,
		Title:         "Always Listening Concern",
		ObjectionText: "Is this listening or recording all the time?",
		Difficulty:    types.DifficultyEasy,
	},
	{
		ID:            7,
		Title:         "Dragon/Dictation Alternative",
		ObjectionText: "How is this different from Dragon or built-in dictation?",
		Difficulty:    types.DifficultyMedium,
		FollowUps: []string{
			"I already paid for Dragon. Why would I pay twice?",
		},
	},
	{
		ID:            8,
		Title:         "Internet Dependency",
		ObjectionText: "What happens if my internet goes down?",
		Difficulty:    types.DifficultyMedium,
	},
	{
		ID:            9,
		Title:         "Staff Adoption Complexity",
		ObjectionText: "My staff won't use this — how complicated is it?",
		Difficulty:    types.DifficultyEasy,
		FollowUps: []string{
			"Who do they call when something breaks?",
		},
	},
	{
		ID:            10,
		Title:         "Company Longevity Risk",
		ObjectionText: "You're a small company — what happens to my data if you disappear?",
		Difficulty:    types.DifficultyHard,
		FollowUps: []string{
			"Can I export every note in a format my EHR can read?",
			"Who are your investors and how long is your runway?",
		},
	},
	{
		ID:            11,
		Title:         "Too Expensive",
		ObjectionText: "This sounds expensive. We already have our current documentation system and switching costs money.",
		Difficulty:    types.DifficultyEasy,
		FollowUps: []string{
			"What does it cost per provider per month?",
			"Is there a contract, or can I cancel any time?",
		},
	},
	{
		ID:            12,
		Title:         "Staff Training Time",
		ObjectionText: "My staff is already overwhelmed. How long will it take them to learn this new system?",
		Difficulty:    types.DifficultyMedium,
		FollowUps: []string{
			"Do you provide the training or do I?",
		},
	},
	{
		ID:            13,
		Title:         "Data Security General",
		ObjectionText: "How do I know my patient data will be secure? We've had issues with cloud systems before.",
		Difficulty:    types.DifficultyHard,
		FollowUps: []string{
			"Have you ever had a breach?",
			"Do you have a SOC 2 report I can see?",
		},
	},
	{
		ID:            14,
		Title:         "Current System Works",
		ObjectionText: "Our current system works fine. Why should I change something that isn't broken?",
		Difficulty:    types.DifficultyEasy,
	},
	{
		ID:            15,
		Title:         "ROI Unclear",
		ObjectionText: "What's the actual return on investment? I need numbers, not promises.",
		Difficulty:    types.DifficultyHard,
		FollowUps: []string{
			"How did you calculate those time savings?",
			"Can you show me a practice my size that got those results?",
			"How long until it pays for itself?",
		},
	},
	{
		ID:            16,
		Title:         "Too Busy Now",
		ObjectionText: "I don't have time to implement a new system right now. Maybe in 6 months.",
		Difficulty:    types.DifficultyMedium,
		FollowUps: []string{
			"What would the first week actually look like for us?",
		},
	},
}

// Builtins returns a copy of the built-in objections
func Builtins() []types.Objection {
	out := make([]types.Objection, len(builtins))
	for i, o := range builtins {
		o.FollowUps = append([]string(nil), o.FollowUps...)
		out[i] = o
	}
	return out
}
