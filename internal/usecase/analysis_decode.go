package usecase

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"medicue/internal/domain/model"
)

// AIの出力が期待したJSONにならなかった
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return "parse analysis: " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

type rawAnalysis struct {
	PossibleConditions []rawCondition `json:"possible_conditions"`
	Recommendations    *string        `json:"recommendations"`
	IsEmergency        *flexBool      `json:"is_emergency"`
}

type rawCondition struct {
	Name       string     `json:"name"`
	Confidence flexString `json:"confidence"`
}

// true / "true" のどちらでも受ける
type flexBool bool

func (b *flexBool) UnmarshalJSON(data []byte) error {
	var v bool
	if err := json.Unmarshal(data, &v); err == nil {
		*b = flexBool(v)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("is_emergency must be bool: %s", string(data))
	}
	parsed, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("is_emergency must be bool: %q", s)
	}
	*b = flexBool(parsed)
	return nil
}

// "85%" / 85 のどちらでも受ける
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexString(s)
		return nil
	}

	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("confidence must be string or number: %s", string(data))
	}
	*f = flexString(strconv.FormatFloat(n, 'f', -1, 64))
	return nil
}

// ```json ... ``` の囲いを外してパースする
func DecodeAnalysis(text string) (model.AnalysisResult, error) {
	cleaned := stripCodeFence(text)
	if cleaned == "" {
		return model.AnalysisResult{}, &ParseError{Raw: text, Err: errors.New("empty response")}
	}

	var raw rawAnalysis
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		return model.AnalysisResult{}, &ParseError{Raw: text, Err: err}
	}

	if raw.Recommendations == nil {
		return model.AnalysisResult{}, &ParseError{Raw: text, Err: errors.New("missing recommendations")}
	}
	if raw.IsEmergency == nil {
		return model.AnalysisResult{}, &ParseError{Raw: text, Err: errors.New("missing is_emergency")}
	}

	conditions := make([]model.PossibleCondition, 0, len(raw.PossibleConditions))
	for i, c := range raw.PossibleConditions {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return model.AnalysisResult{}, &ParseError{Raw: text, Err: fmt.Errorf("possible_conditions[%d] has no name", i)}
		}
		conditions = append(conditions, model.PossibleCondition{
			Name:       name,
			Confidence: strings.TrimSpace(string(c.Confidence)),
		})
	}

	return model.AnalysisResult{
		PossibleConditions: conditions,
		Recommendations:    *raw.Recommendations,
		IsEmergency:        bool(*raw.IsEmergency),
	}, nil
}

func stripCodeFence(text string) string {
	s := strings.TrimSpace(text)
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}
