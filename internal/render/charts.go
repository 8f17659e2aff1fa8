// internal/render/charts.go
package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/xeipuuv/gojsonschema"
)

// chartSpecSchema is the contract a chart spec must satisfy before any
// rendering branch runs. Specs come straight from the CSV backend's
// chart_data field and are untrusted.
const chartSpecSchema = `{
	"type": "object",
	"required": ["type", "data"],
	"properties": {
		"type":  {"type": "string"},
		"title": {"type": "string"},
		"x":     {"type": "string"},
		"y":     {"type": "string"},
		"data":  {"type": "array", "items": {"type": "object"}}
	}
}`

var chartSchema = gojsonschema.NewStringLoader(chartSpecSchema)

const barWidth = 30

var (
	chartTitleStyle = lipgloss.NewStyle().Bold(true)
	barStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("36"))
	skipStyle       = lipgloss.NewStyle().Faint(true)
)

// RenderChart dispatches one chart spec to the rendering branch matching its
// type string. Unknown types and specs that fail schema validation are
// skipped with a note, never an error: a bad chart must not sink the rest
// of the reply.
func RenderChart(spec map[string]interface{}) string {
	result, err := gojsonschema.Validate(chartSchema, gojsonschema.NewGoLoader(spec))
	if err != nil || !result.Valid() {
		return skipStyle.Render("(skipped malformed chart)")
	}

	chartType, _ := spec["type"].(string)
	title, _ := spec["title"].(string)
	data := toRecords(spec["data"])

	var body string
	switch chartType {
	case "bar":
		body = renderBars(data, spec)
	case "line":
		body = renderSparkline(data, spec)
	case "pie":
		body = renderPie(data)
	case "hist":
		body = renderHistogram(data)
	default:
		return skipStyle.Render(fmt.Sprintf("(skipped unsupported chart type %q)", chartType))
	}

	if body == "" {
		return skipStyle.Render("(skipped empty chart)")
	}

	if title != "" {
		return chartTitleStyle.Render(title) + "\n" + body
	}
	return body
}

func toRecords(raw interface{}) []map[string]interface{} {
	items, ok := raw.([]interface{})
	if !ok {
		return nil
	}

	records := make([]map[string]interface{}, 0, len(items))
	for _, item := range items {
		if rec, ok := item.(map[string]interface{}); ok {
			records = append(records, rec)
		}
	}
	return records
}

// labelValue pulls the category label and numeric value out of one record,
// honoring the spec's x/y column names with name/value fallbacks.
func labelValue(rec map[string]interface{}, spec map[string]interface{}) (string, float64, bool) {
	xKey, _ := spec["x"].(string)
	yKey, _ := spec["y"].(string)

	label := stringField(rec, xKey, "name", "label")
	value, ok := numberField(rec, yKey, "value")
	return label, value, ok
}

func stringField(rec map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if key == "" {
			continue
		}
		if v, ok := rec[key]; ok {
			return fmt.Sprintf("%v", v)
		}
	}
	return ""
}

func numberField(rec map[string]interface{}, keys ...string) (float64, bool) {
	for _, key := range keys {
		if key == "" {
			continue
		}
		if v, ok := rec[key].(float64); ok {
			return v, true
		}
	}
	return 0, false
}

func renderBars(data []map[string]interface{}, spec map[string]interface{}) string {
	var rows []string
	var max float64
	type entry struct {
		label string
		value float64
	}
	var entries []entry

	for _, rec := range data {
		label, value, ok := labelValue(rec, spec)
		if !ok {
			continue
		}
		entries = append(entries, entry{label, value})
		if value > max {
			max = value
		}
	}
	if max <= 0 {
		return ""
	}

	for _, e := range entries {
		// Negative values collapse to an empty bar; the number still shows.
		width := int(e.value / max * barWidth)
		switch {
		case width < 0:
			width = 0
		case width < 1 && e.value > 0:
			width = 1
		}
		rows = append(rows, fmt.Sprintf("%-16s %s %g",
			truncate(e.label, 16), barStyle.Render(strings.Repeat("█", width)), e.value))
	}
	return strings.Join(rows, "\n")
}

var sparkLevels = []rune("▁▂▃▄▅▆▇█")

func renderSparkline(data []map[string]interface{}, spec map[string]interface{}) string {
	var values []float64
	var max float64
	for _, rec := range data {
		_, value, ok := labelValue(rec, spec)
		if !ok {
			continue
		}
		values = append(values, value)
		if value > max {
			max = value
		}
	}
	if max <= 0 || len(values) == 0 {
		return ""
	}

	var sb strings.Builder
	for _, v := range values {
		idx := int(v / max * float64(len(sparkLevels)-1))
		if idx < 0 {
			idx = 0
		}
		sb.WriteRune(sparkLevels[idx])
	}
	return barStyle.Render(sb.String()) + fmt.Sprintf("  (%d points, max %g)", len(values), max)
}

func renderPie(data []map[string]interface{}) string {
	type slice struct {
		name  string
		value float64
	}
	var slices []slice
	var total float64

	for _, rec := range data {
		name := stringField(rec, "name", "label")
		value, ok := numberField(rec, "value")
		if !ok {
			continue
		}
		slices = append(slices, slice{name, value})
		total += value
	}
	if total <= 0 {
		return ""
	}

	sort.Slice(slices, func(i, j int) bool { return slices[i].value > slices[j].value })

	var rows []string
	for _, s := range slices {
		share := s.value / total * 100
		blocks := int(share/100*barWidth) + 1
		if blocks < 0 {
			blocks = 0
		}
		rows = append(rows, fmt.Sprintf("%-16s %5.1f%%  %s",
			truncate(s.name, 16), share, barStyle.Render(strings.Repeat("▪", blocks))))
	}
	return strings.Join(rows, "\n")
}

const histogramBuckets = 8

func renderHistogram(data []map[string]interface{}) string {
	var values []float64
	for _, rec := range data {
		if v, ok := numberField(rec, "value"); ok {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return ""
	}

	min, max := values[0], values[0]
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if min == max {
		return fmt.Sprintf("%d values, all %g", len(values), min)
	}

	counts := make([]int, histogramBuckets)
	width := (max - min) / histogramBuckets
	for _, v := range values {
		idx := int((v - min) / width)
		if idx >= histogramBuckets {
			idx = histogramBuckets - 1
		}
		counts[idx]++
	}

	maxCount := 0
	for _, c := range counts {
		if c > maxCount {
			maxCount = c
		}
	}

	var rows []string
	for i, c := range counts {
		lo := min + float64(i)*width
		rows = append(rows, fmt.Sprintf("%10.4g %s %d",
			lo, barStyle.Render(strings.Repeat("█", c*barWidth/maxCount)), c))
	}
	return strings.Join(rows, "\n")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
