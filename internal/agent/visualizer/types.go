package visualizer

import "encoding/json"

type output struct {
	Kind        Kind             `json:"kind"`
	Description string           `json:"description"`
	Rows        []map[string]any `json:"rows"`
	PlotData    json.RawMessage  `json:"plot_data"`
	Artifact    string           `json:"artifact"`
}
