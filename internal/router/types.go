package router

// Route is one specialist a family can dispatch to.
type Route struct {
	Name        string
	Description string
}

// Family is the set of routes the router chooses between for one agent family.
// Fallback defaults to the first route.
type Family struct {
	Name     string
	Routes   []Route
	Fallback string
}

// Decision is the structured response of the classification agent.
type Decision struct {
	Route      string `json:"route"`
	Confidence int    `json:"confidence"` // 0-100
	Reasoning  string `json:"reasoning"`
}
