// internal/render/render_test.go
package render

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderChart_BarBranch(t *testing.T) {
	out := RenderChart(map[string]interface{}{
		"type":  "bar",
		"title": "Revenue by region",
		"x":     "region",
		"y":     "revenue",
		"data": []interface{}{
			map[string]interface{}{"region": "north", "revenue": 100.0},
			map[string]interface{}{"region": "south", "revenue": 50.0},
		},
	})

	assert.Contains(t, out, "Revenue by region")
	assert.Contains(t, out, "north")
	assert.Contains(t, out, "south")
	assert.Contains(t, out, "█")
}

func TestRenderChart_PieBranch(t *testing.T) {
	out := RenderChart(map[string]interface{}{
		"type": "pie",
		"data": []interface{}{
			map[string]interface{}{"name": "alpha", "value": 75.0},
			map[string]interface{}{"name": "beta", "value": 25.0},
		},
	})

	assert.Contains(t, out, "alpha")
	assert.Contains(t, out, "75.0%")
	assert.Contains(t, out, "25.0%")
}

func TestRenderChart_LineBranch(t *testing.T) {
	out := RenderChart(map[string]interface{}{
		"type": "line",
		"y":    "sales",
		"data": []interface{}{
			map[string]interface{}{"sales": 1.0},
			map[string]interface{}{"sales": 5.0},
			map[string]interface{}{"sales": 10.0},
		},
	})

	assert.Contains(t, out, "3 points")
}

func TestRenderChart_HistBranch(t *testing.T) {
	out := RenderChart(map[string]interface{}{
		"type": "hist",
		"data": []interface{}{
			map[string]interface{}{"value": 1.0},
			map[string]interface{}{"value": 2.0},
			map[string]interface{}{"value": 9.0},
		},
	})

	assert.NotContains(t, out, "skipped")
	assert.Contains(t, out, "1")
}

func TestRenderChart_NegativeValues(t *testing.T) {
	// Backends report negatives (refunds, anomalous rows); those rows must
	// still render instead of sinking the whole reply.
	out := RenderChart(map[string]interface{}{
		"type": "bar",
		"x":    "region",
		"y":    "profit",
		"data": []interface{}{
			map[string]interface{}{"region": "north", "profit": 40.0},
			map[string]interface{}{"region": "south", "profit": -40.0},
		},
	})
	assert.Contains(t, out, "south")
	assert.Contains(t, out, "-40")

	out = RenderChart(map[string]interface{}{
		"type": "line",
		"y":    "delta",
		"data": []interface{}{
			map[string]interface{}{"delta": -4.0},
			map[string]interface{}{"delta": 4.0},
		},
	})
	assert.Contains(t, out, "2 points")

	out = RenderChart(map[string]interface{}{
		"type": "pie",
		"data": []interface{}{
			map[string]interface{}{"name": "sales", "value": 100.0},
			map[string]interface{}{"name": "refunds", "value": -40.0},
		},
	})
	assert.Contains(t, out, "refunds")

	out = RenderChart(map[string]interface{}{
		"type": "hist",
		"data": []interface{}{
			map[string]interface{}{"value": -9.0},
			map[string]interface{}{"value": 2.0},
			map[string]interface{}{"value": 9.0},
		},
	})
	assert.NotContains(t, out, "skipped")
}

func TestRenderChart_UnknownTypeSkipped(t *testing.T) {
	out := RenderChart(map[string]interface{}{
		"type": "scatter3d",
		"data": []interface{}{},
	})

	assert.Contains(t, out, "skipped")
	assert.Contains(t, out, "scatter3d")
}

func TestRenderChart_SchemaRejectionIsNonFatal(t *testing.T) {
	// Missing the required data field.
	out := RenderChart(map[string]interface{}{"type": "bar"})
	assert.Contains(t, out, "skipped")

	// Wrong type for data.
	out = RenderChart(map[string]interface{}{"type": "bar", "data": "nope"})
	assert.Contains(t, out, "skipped")
}

func TestResearchCard(t *testing.T) {
	out := Research(map[string]interface{}{
		"analysis": map[string]interface{}{
			"viability_score":    7.5,
			"recommended_action": "Proceed with caution",
			"competitors":        []interface{}{"MedPlus", "Apollo"},
		},
		"recommendations": []interface{}{"Pick a high-footfall area"},
	})

	assert.Contains(t, out, "7.5")
	assert.Contains(t, out, "Proceed with caution")
	assert.Contains(t, out, "MedPlus")
	assert.Contains(t, out, "Pick a high-footfall area")
}

func TestResearchCard_EmptyPayload(t *testing.T) {
	out := Research(map[string]interface{}{})
	assert.Contains(t, out, "no displayable fields")
}

func TestOpportunitiesCard(t *testing.T) {
	out := Opportunities(map[string]interface{}{
		"city": "Mumbai",
		"opportunities": []interface{}{
			map[string]interface{}{"business_type": "cloud kitchen", "growth": "high"},
			map[string]interface{}{"business_type": "gym"},
		},
	})

	assert.Contains(t, out, "Mumbai")
	assert.Contains(t, out, "cloud kitchen")
	assert.Contains(t, out, "1.")
	assert.Contains(t, out, "2.")
}

func TestCSVAnalysisCard(t *testing.T) {
	out := CSVAnalysis(map[string]interface{}{
		"insights":  []interface{}{"Revenue doubled in Q2"},
		"anomalies": []interface{}{"Negative quantity in row 14"},
		"chart_data": []interface{}{
			map[string]interface{}{
				"type": "bar",
				"x":    "month",
				"y":    "total",
				"data": []interface{}{
					map[string]interface{}{"month": "Jan", "total": 10.0},
				},
			},
		},
	})

	assert.Contains(t, out, "Revenue doubled in Q2")
	assert.Contains(t, out, "Negative quantity in row 14")
	assert.Contains(t, out, "Jan")
}

func TestCSVAnswerCard(t *testing.T) {
	out := CSVAnswer(map[string]interface{}{
		"parsed": map[string]interface{}{
			"answer":   "Total revenue is 300.",
			"followUp": []interface{}{"Break it down by month?"},
		},
	})

	assert.Contains(t, out, "Total revenue is 300.")
	assert.Contains(t, out, "Break it down by month?")
}

func TestHealthLine(t *testing.T) {
	assert.Contains(t, Health("research", nil), "healthy")
	assert.Contains(t, Health("csv", errors.New("connection refused")), "connection refused")
}
