package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"multi-agent-chat/pkg/stream"
)

// renderer prints stream events to a terminal.
type renderer struct {
	w io.Writer
	// midLine is true while chunk text has no trailing newline yet.
	midLine bool
}

func newRenderer(w io.Writer) *renderer {
	return &renderer{w: w}
}

func (r *renderer) OnStatus(e stream.Status) {
	r.breakLine()
	fmt.Fprintf(r.w, "» %s\n", e.Message)
}

func (r *renderer) OnChunk(e stream.Chunk) {
	fmt.Fprint(r.w, e.Value)
	r.midLine = !strings.HasSuffix(e.Value, "\n")
}

func (r *renderer) OnTable(e stream.Table) {
	r.breakLine()
	fmt.Fprintf(r.w, "\n[table] %s\n", e.Value)
	if len(e.TableData) == 0 {
		return
	}

	columns := tableColumns(e.TableData)
	tw := tabwriter.NewWriter(r.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(columns, "\t"))
	for _, row := range e.TableData {
		cells := make([]string, len(columns))
		for i, col := range columns {
			if v, ok := row[col]; ok {
				cells[i] = fmt.Sprint(v)
			}
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	_ = tw.Flush()
}

func (r *renderer) OnChart(e stream.Chart) {
	r.breakLine()
	kind := "chart"
	if e.Interactive {
		kind = "interactive chart"
	}
	fmt.Fprintf(r.w, "\n[%s] %s\n", kind, e.Value)

	switch {
	case e.Artifact != "":
		fmt.Fprintf(r.w, "  artifact: %d bytes\n", len(e.Artifact))
	case e.PlotData != nil:
		raw, _ := json.Marshal(e.PlotData)
		fmt.Fprintf(r.w, "  plot data: %d bytes\n", len(raw))
	}
}

func (r *renderer) breakLine() {
	if r.midLine {
		fmt.Fprintln(r.w)
		r.midLine = false
	}
}

// tableColumns returns the union of row keys, sorted.
func tableColumns(rows []map[string]any) []string {
	seen := make(map[string]struct{})
	for _, row := range rows {
		for k := range row {
			seen[k] = struct{}{}
		}
	}
	columns := make([]string, 0, len(seen))
	for k := range seen {
		columns = append(columns, k)
	}
	sort.Strings(columns)
	return columns
}
