// Package bpreminder classifies blood pressure readings and turns a reading
// into a calendar of follow-up check reminders.
package bpreminder

// Category is a clinical blood pressure classification
type Category string

const (
	Normal             Category = "normal"
	Elevated           Category = "elevated"
	Stage1             Category = "stage_1"
	Stage2             Category = "stage_2"
	HypertensiveCrisis Category = "hypertensive_crisis"
)

// Info is the display text attached to a category
type Info struct {
	Description string `json:"description"`
	Advice      string `json:"advice"`
}

var categoryInfo = map[Category]Info{
	Normal: {
		Description: "Normal Blood Pressure",
		Advice:      "Keep up the good work! Continue healthy lifestyle habits.",
	},
	Elevated: {
		Description: "Elevated Blood Pressure",
		Advice:      "Focus on lifestyle changes: diet, exercise, and stress management.",
	},
	Stage1: {
		Description: "Hypertension Stage 1",
		Advice:      "Consider lifestyle changes and consult your doctor about treatment options.",
	},
	Stage2: {
		Description: "Hypertension Stage 2",
		Advice:      "Important to monitor closely. Consult your doctor about medication and lifestyle changes.",
	},
	HypertensiveCrisis: {
		Description: "Hypertensive Crisis",
		Advice:      "SEEK IMMEDIATE MEDICAL ATTENTION. This requires urgent care.",
	},
}

// Categories lists every category from least to most severe
var Categories = []Category{Normal, Elevated, Stage1, Stage2, HypertensiveCrisis}

// Classify maps a reading onto a category. Rules are evaluated in order and the
// first match wins, so overlapping boundaries resolve toward the more severe class.
// Physiological plausibility is the caller's concern.
func Classify(systolic, diastolic int) Category {
	switch {
	case systolic >= 180 || diastolic >= 120:
		return HypertensiveCrisis
	case systolic >= 140 || diastolic >= 90:
		return Stage2
	case systolic >= 130 || diastolic >= 80:
		return Stage1
	case systolic >= 120 && diastolic < 80:
		return Elevated
	default:
		return Normal
	}
}

// Info returns the description and advice for the category
func (c Category) Info() Info {
	if info, ok := categoryInfo[c]; ok {
		return info
	}
	return Info{Description: "Unknown"}
}

// Urgent reports whether the category requires immediate care instead of a schedule
func (c Category) Urgent() bool {
	return c == HypertensiveCrisis
}

func (c Category) String() string {
	return string(c)
}
