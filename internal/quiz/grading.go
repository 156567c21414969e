package quiz

import (
	"math"
	"strconv"
	"strings"
)

// GradeResponses auto-scores a full response set against a quiz. Unknown
// question types and malformed responses score zero rather than erroring:
// a student's submit must always land.
func GradeResponses(questions []Question, responses map[string]any) float64 {
	score := 0.0
	for _, q := range questions {
		resp, ok := responses[q.ID]
		if !ok {
			continue
		}
		score += gradeOne(q, resp)
	}
	return score
}

func gradeOne(q Question, response any) float64 {
	switch q.Type {
	case "mcq_single", "true_false":
		resp, ok := response.(string)
		if !ok {
			return 0
		}
		for _, k := range q.AnswerKey {
			if resp == k {
				return q.Points
			}
		}
		return 0

	case "mcq_multi":
		resp, ok := toStringSet(response)
		if !ok || len(q.AnswerKey) == 0 {
			return 0
		}
		correct := map[string]bool{}
		for _, k := range q.AnswerKey {
			correct[k] = true
		}
		hits := 0
		for r := range resp {
			if !correct[r] {
				return 0 // wrong pick forfeits partial credit
			}
			hits++
		}
		return q.Points * float64(hits) / float64(len(correct))

	case "numeric":
		return gradeNumeric(q, response)

	default:
		return 0
	}
}

// gradeNumeric accepts exact string match or tolerance via AnswerKey:
//
//	AnswerKey: ["3.14", "tol=0.01"]     // absolute tolerance
//	AnswerKey: ["100", "reltol=0.05"]   // 5% relative tolerance
func gradeNumeric(q Question, response any) float64 {
	str, ok := response.(string)
	if !ok || len(q.AnswerKey) == 0 {
		return 0
	}
	target := q.AnswerKey[0]
	if str == target {
		return q.Points
	}

	rv, rOK := parseFloatLoose(str)
	tv, tOK := parseFloatLoose(target)
	if !rOK || !tOK {
		return 0
	}

	absTol, relTol := parseTolerances(q.AnswerKey[1:])
	diff := math.Abs(rv - tv)
	if absTol >= 0 && diff <= absTol {
		return q.Points
	}
	if relTol >= 0 && diff <= relTol*math.Abs(tv) {
		return q.Points
	}
	return 0
}

func toStringSet(response any) (map[string]bool, bool) {
	out := map[string]bool{}
	switch v := response.(type) {
	case []string:
		for _, s := range v {
			out[s] = true
		}
	case []any:
		for _, e := range v {
			s, ok := e.(string)
			if !ok {
				return nil, false
			}
			out[s] = true
		}
	default:
		return nil, false
	}
	return out, true
}

func parseFloatLoose(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v, true
	}
	if sp := strings.Fields(s); len(sp) > 0 {
		if v, err := strconv.ParseFloat(sp[0], 64); err == nil {
			return v, true
		}
	}
	return 0, false
}

func parseTolerances(keys []string) (absTol float64, relTol float64) {
	absTol, relTol = -1, -1
	for _, k := range keys {
		k = strings.TrimSpace(strings.ToLower(k))
		if strings.HasPrefix(k, "tol=") {
			if v, err := strconv.ParseFloat(strings.TrimPrefix(k, "tol="), 64); err == nil {
				absTol = v
			}
		}
		if strings.HasPrefix(k, "reltol=") {
			if v, err := strconv.ParseFloat(strings.TrimPrefix(k, "reltol="), 64); err == nil {
				relTol = v
			}
		}
	}
	return
}
