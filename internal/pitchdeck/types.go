package pitchdeck

// SlideType labels a slide with its role in the deck.
type SlideType string

const (
	SlideTitle         SlideType = "Title"
	SlideProblem       SlideType = "Problem"
	SlideSolution      SlideType = "Solution"
	SlideMarket        SlideType = "Market"
	SlideProduct       SlideType = "Product"
	SlideBusinessModel SlideType = "Business Model"
	SlideTraction      SlideType = "Traction"
	SlideCompetition   SlideType = "Competition"
	SlideTeam          SlideType = "Team"
	SlideFinancials    SlideType = "Financials"
	SlideAsk           SlideType = "Ask"
	SlideRoadmap       SlideType = "Roadmap"
	SlideContact       SlideType = "Contact"
	SlideUnknown       SlideType = "Unknown"
)

// StandardSlides is the full checklist a complete deck covers.
var StandardSlides = []SlideType{
	SlideTitle,
	SlideProblem,
	SlideSolution,
	SlideMarket,
	SlideProduct,
	SlideBusinessModel,
	SlideTraction,
	SlideCompetition,
	SlideTeam,
	SlideFinancials,
	SlideAsk,
	SlideRoadmap,
	SlideContact,
}

// EssentialSlides drive the completeness score. Title and Contact are
// nice to have; these six are not.
var EssentialSlides = []SlideType{
	SlideProblem,
	SlideSolution,
	SlideMarket,
	SlideBusinessModel,
	SlideTraction,
	SlideTeam,
}

// optionalSlides never appear in the missing-slide list.
var optionalSlides = map[SlideType]bool{
	SlideTitle:   true,
	SlideContact: true,
}

// Slide is one classified segment of the deck.
type Slide struct {
	Index   int       `json:"slide_number"`
	Type    SlideType `json:"type"`
	Summary string    `json:"summary"`
}

// Analysis is the full deck assessment.
type Analysis struct {
	TotalSlides   int         `json:"total_slides"`
	Slides        []Slide     `json:"slides"`
	MissingSlides []SlideType `json:"missing_slides"`
	Completeness  float64     `json:"completeness_score"`
	Method        string      `json:"analysis_method"`
}
