// internal/render/cards.go

// Package render formats backend payloads as terminal cards. The gateway
// hands payloads over verbatim; this layer owns the job of picking out the
// optionally-present named fields and displaying them. Anything it does not
// recognize is simply not shown, never an error.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)

	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	labelStyle   = lipgloss.NewStyle().Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("160")).Bold(true)
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("35"))
	bulletPrefix = "• "
)

// Card wraps body text in the standard bordered card with a header line.
func Card(title, body string) string {
	content := headerStyle.Render(title)
	if body != "" {
		content += "\n" + body
	}
	return cardStyle.Render(content)
}

// Error renders a failed turn. The message is the user-facing text carried
// by the gateway error; the user retries or rephrases, nothing else.
func Error(message string) string {
	return cardStyle.Render(errorStyle.Render("Something went wrong") + "\n" + message)
}

// Research renders a comprehensive-research payload as cards.
func Research(payload map[string]interface{}) string {
	var cards []string

	if analysis, ok := payload["analysis"].(map[string]interface{}); ok {
		cards = append(cards, analysisCard(analysis))
	}

	if prose := stringOf(payload, "llm_analysis", "analysis_text", "summary"); prose != "" {
		cards = append(cards, Card("Analysis", prose))
	}

	if recs, ok := payload["recommendations"].([]interface{}); ok && len(recs) > 0 {
		cards = append(cards, Card("Recommendations", bulletList(recs)))
	}

	if len(cards) == 0 {
		return Card("Research", "The backend returned no displayable fields.")
	}
	return strings.Join(cards, "\n")
}

func analysisCard(analysis map[string]interface{}) string {
	var lines []string

	if score, ok := analysis["viability_score"].(float64); ok {
		lines = append(lines, fmt.Sprintf("%s %.1f / 10", labelStyle.Render("Viability score:"), score))
	}
	if action := stringOf(analysis, "recommended_action"); action != "" {
		lines = append(lines, labelStyle.Render("Recommended action: ")+action)
	}
	if interest := stringOf(analysis, "trend_interest", "consumer_demand"); interest != "" {
		lines = append(lines, labelStyle.Render("Demand: ")+interest)
	}
	if competitors, ok := analysis["competitors"].([]interface{}); ok && len(competitors) > 0 {
		lines = append(lines, labelStyle.Render("Competitors:"), bulletList(competitors))
	}
	if gaps, ok := analysis["market_gaps"].([]interface{}); ok && len(gaps) > 0 {
		lines = append(lines, labelStyle.Render("Market gaps:"), bulletList(gaps))
	}

	return Card("Market Analysis", strings.Join(lines, "\n"))
}

// Opportunities renders a city-opportunities payload.
func Opportunities(payload map[string]interface{}) string {
	city := stringOf(payload, "city")

	opps, _ := payload["opportunities"].([]interface{})
	if len(opps) == 0 {
		return Card("City Opportunities", "No opportunities returned for "+city+".")
	}

	var lines []string
	for i, raw := range opps {
		opp, ok := raw.(map[string]interface{})
		if !ok {
			lines = append(lines, fmt.Sprintf("%d. %v", i+1, raw))
			continue
		}
		name := stringOf(opp, "business_type", "category", "name")
		line := fmt.Sprintf("%d. %s", i+1, labelStyle.Render(name))
		if growth := stringOf(opp, "growth", "growth_rate"); growth != "" {
			line += "  growth " + growth
		}
		if inv := stringOf(opp, "investment", "avg_investment"); inv != "" {
			line += "  investment " + inv
		}
		lines = append(lines, line)
	}

	title := "City Opportunities"
	if city != "" {
		title += " — " + city
	}
	return Card(title, strings.Join(lines, "\n"))
}

// CSVAnalysis renders the upload response: insights, anomalies,
// recommendations, and every chart the dispatcher accepts.
func CSVAnalysis(payload map[string]interface{}) string {
	var cards []string

	if insights, ok := payload["insights"].([]interface{}); ok && len(insights) > 0 {
		cards = append(cards, Card("Insights", bulletList(insights)))
	}
	if anomalies, ok := payload["anomalies"].([]interface{}); ok && len(anomalies) > 0 {
		cards = append(cards, Card("Anomalies", bulletList(anomalies)))
	}
	if recs, ok := payload["recommendations"].([]interface{}); ok && len(recs) > 0 {
		cards = append(cards, Card("Recommendations", bulletList(recs)))
	}

	for _, spec := range toRecords(payload["chart_data"]) {
		cards = append(cards, cardStyle.Render(RenderChart(spec)))
	}

	if len(cards) == 0 {
		return Card("CSV Analysis", "The backend returned no displayable fields.")
	}
	return strings.Join(cards, "\n")
}

// CSVAnswer renders a follow-up chat response. The answer text lives under
// parsed.answer; followUp suggestions are listed after it.
func CSVAnswer(payload map[string]interface{}) string {
	parsed, _ := payload["parsed"].(map[string]interface{})
	if parsed == nil {
		parsed = payload
	}

	answer := stringOf(parsed, "answer")
	if answer == "" {
		return Card("Answer", "The backend returned no answer text.")
	}

	body := Prose(answer)
	if followUps, ok := parsed["followUp"].([]interface{}); ok && len(followUps) > 0 {
		body += "\n" + labelStyle.Render("You could ask:") + "\n" + bulletList(followUps)
	}
	return Card("Answer", body)
}

// Health renders the two liveness probe outcomes.
func Health(backend string, err error) string {
	if err != nil {
		return fmt.Sprintf("%s %s", errorStyle.Render("✗"), backend+": "+err.Error())
	}
	return fmt.Sprintf("%s %s", okStyle.Render("✓"), backend+": healthy")
}

// Prose renders free text, through glamour when it looks like markdown.
func Prose(text string) string {
	if looksLikeMarkdown(text) {
		if out, err := glamour.Render(text, "auto"); err == nil {
			return strings.TrimRight(out, "\n")
		}
	}
	return text
}

func looksLikeMarkdown(text string) bool {
	return strings.Contains(text, "# ") ||
		strings.Contains(text, "**") ||
		strings.Contains(text, "\n- ") ||
		strings.Contains(text, "\n* ")
}

func bulletList(items []interface{}) string {
	var lines []string
	for _, item := range items {
		lines = append(lines, bulletPrefix+fmt.Sprintf("%v", item))
	}
	return strings.Join(lines, "\n")
}

// stringOf returns the first non-empty string field among keys.
func stringOf(m map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if s, ok := m[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}
