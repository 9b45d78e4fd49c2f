package pipeline

import "multi-agent-chat/internal/router"

// DefaultFamilies returns the agent families served by the chat endpoint.
func DefaultFamilies() []Family {
	return []Family{
		{
			Name: FamilyMarket,
			Routes: []Route{
				{
					Name:            RouteMarketData,
					Description:     "questions about prices, quotes, indicators or market news answered in text",
					SystemPrompt:    PromptMarketData,
					WithTimeContext: true,
				},
				{
					Name:            RouteVisualization,
					Description:     "requests for a chart, plot, graph or table of market data",
					SystemPrompt:    PromptMarketVisualization,
					Visualize:       true,
					WithTimeContext: true,
				},
			},
		},
		{
			Name: FamilyPricing,
			Routes: []Route{
				{Name: RoutePricing, SystemPrompt: PromptPricing, Visualize: true},
			},
		},
		{
			Name: FamilyNews,
			Routes: []Route{
				{Name: RouteNews, SystemPrompt: PromptNews, WithTimeContext: true},
			},
		},
		{
			Name: FamilyDesign,
			Routes: []Route{
				{Name: RouteDesign, SystemPrompt: PromptDesign, Visualize: true},
			},
		},
	}
}

// RouterFamilies returns the classified families in the router's terms.
func RouterFamilies(families []Family) []router.Family {
	out := make([]router.Family, 0, len(families))
	for _, f := range families {
		if !f.Classified() {
			continue
		}
		routes := make([]router.Route, 0, len(f.Routes))
		for _, r := range f.Routes {
			routes = append(routes, router.Route{Name: r.Name, Description: r.Description})
		}
		out = append(out, router.Family{Name: f.Name, Routes: routes})
	}
	return out
}
