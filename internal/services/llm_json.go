package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"alfredoptarigan/hirehub/internal/logger"
	"alfredoptarigan/hirehub/internal/models"
)

// decodeLLMJSON unmarshals a model answer that may be wrapped in markdown.
func decodeLLMJSON(response string, target interface{}) error {
	jsonStr := extractJSON(response)

	if err := json.Unmarshal([]byte(jsonStr), target); err != nil {
		return fmt.Errorf("failed to unmarshal JSON: %w (response: %s)", err, logger.TruncateForLog(response, 300))
	}

	return nil
}

// extractJSON tries to extract JSON from text that might contain markdown or other formatting
func extractJSON(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	startObj := strings.Index(text, "{")
	startArr := strings.Index(text, "[")
	endObj := strings.LastIndex(text, "}")
	endArr := strings.LastIndex(text, "]")

	// An array wins only when it opens before the first object.
	if startArr != -1 && endArr > startArr && (startObj == -1 || startArr < startObj) {
		return text[startArr : endArr+1]
	}
	if startObj != -1 && endObj > startObj {
		return text[startObj : endObj+1]
	}

	return strings.TrimSpace(text)
}

// parseInsights reads gaps, strengths and recommendations field by field so
// that one malformed field does not discard the rest. Gaps may come back as
// objects or as bare strings.
func parseInsights(response string) (models.Insights, error) {
	raw := extractJSON(response)
	if !gjson.Valid(raw) {
		return models.Insights{}, fmt.Errorf("insights response is not valid JSON: %s", logger.TruncateForLog(response, 200))
	}

	var out models.Insights
	gjson.Get(raw, "gaps").ForEach(func(_, v gjson.Result) bool {
		var gap models.Gap
		if v.IsObject() {
			gap = models.Gap{
				Gap:      strings.TrimSpace(v.Get("gap").String()),
				Priority: strings.ToLower(strings.TrimSpace(v.Get("priority").String())),
				Impact:   strings.TrimSpace(v.Get("impact").String()),
			}
		} else {
			gap = models.Gap{Gap: strings.TrimSpace(v.String()), Priority: "medium"}
		}
		if gap.Gap != "" {
			out.Gaps = append(out.Gaps, gap)
		}
		return true
	})
	out.Strengths = stringList(gjson.Get(raw, "strengths"))
	out.Recommendations = stringList(gjson.Get(raw, "recommendations"))

	return out.Normalize(), nil
}

// parseQuestions accepts a bare array or an object with a "questions" key,
// which is what JSON-object response modes produce.
func parseQuestions(response string) ([]models.Question, error) {
	raw := extractJSON(response)
	if !gjson.Valid(raw) {
		return nil, fmt.Errorf("questions response is not valid JSON: %s", logger.TruncateForLog(response, 200))
	}

	list := gjson.Parse(raw)
	if !list.IsArray() {
		list = list.Get("questions")
	}
	if !list.IsArray() {
		return nil, fmt.Errorf("questions response has no question list: %s", logger.TruncateForLog(response, 200))
	}

	out := []models.Question{}
	list.ForEach(func(_, v gjson.Result) bool {
		var q models.Question
		if v.IsObject() {
			if err := json.Unmarshal([]byte(v.Raw), &q); err != nil {
				return true
			}
		} else {
			q.Question = v.String()
		}
		q.Question = strings.TrimSpace(q.Question)
		if q.Question != "" {
			out = append(out, q)
		}
		return true
	})
	return out, nil
}

func stringList(r gjson.Result) []string {
	var out []string
	r.ForEach(func(_, v gjson.Result) bool {
		if s := strings.TrimSpace(v.String()); s != "" {
			out = append(out, s)
		}
		return true
	})
	return out
}
