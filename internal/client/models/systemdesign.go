package models

type SystemDesignResource struct {
	ID            string   `json:"_id" yaml:"id"`
	Title         string   `json:"title" yaml:"title"`
	URL           string   `json:"url" yaml:"url"`
	Description   string   `json:"description" yaml:"description"`
	Source        string   `json:"source" yaml:"source"`
	Type          string   `json:"type" yaml:"type"`
	Category      string   `json:"category" yaml:"category"`
	Difficulty    string   `json:"difficulty" yaml:"difficulty"`
	Score         float64  `json:"score" yaml:"score"`
	Reasoning     string   `json:"reasoning" yaml:"reasoning"`
	Topics        []string `json:"topics" yaml:"topics"`
	KeyLearnings  []string `json:"keyLearnings,omitempty" yaml:"keyLearnings,omitempty"`
	EstimatedTime int      `json:"estimatedTime,omitempty" yaml:"estimatedTime,omitempty"`
	HasVisuals    bool     `json:"hasVisuals" yaml:"hasVisuals"`
	Rank          int      `json:"rank,omitempty" yaml:"rank,omitempty"`
}

type SystemDesignResources struct {
	Resources []SystemDesignResource `json:"resources" yaml:"resources"`
	Count     int                    `json:"count,omitempty" yaml:"count,omitempty"`
}

// SystemDesignStats is passed through as the server sends it; its shape
// is not fixed by the API.
type SystemDesignStats map[string]any

type SystemDesignUpdateResult struct {
	Message string `json:"message" yaml:"message"`
	Total   int    `json:"total" yaml:"total"`
}

// Category and difficulty filters offered by the resource browser. "all"
// means no filter.
var (
	SystemDesignCategories   = []string{"all", "Fundamentals", "Intermediate", "Advanced", "Case Studies", "Interview Problems"}
	SystemDesignDifficulties = []string{"all", "Beginner", "Intermediate", "Advanced"}
)
