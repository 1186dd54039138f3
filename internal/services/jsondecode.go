package services

import (
	"errors"
	"strings"

	"github.com/tidwall/gjson"
)

const parseFailureMessage = "failed to parse AI response into structured data"

// ExtractJSON strips Markdown fences and slices from the first '{' to the last '}'.
// Without such a pair the whole cleaned string is returned. Unrelated braces echoed by
// the model can make the slice wrong.
func ExtractJSON(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	text = strings.TrimSpace(text)

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start != -1 && end > start {
		return text[start : end+1]
	}

	return text
}

// DecodeJSON runs ExtractJSON and parses the result. Only a JSON object is accepted;
// bare scalars and arrays are parse failures.
func DecodeJSON(text string) (gjson.Result, error) {
	cleaned := ExtractJSON(text)
	if cleaned == "" || !gjson.Valid(cleaned) {
		return gjson.Result{}, &ParseError{
			Message: parseFailureMessage,
			Cause:   errors.New("response is not valid JSON"),
		}
	}

	doc := gjson.Parse(cleaned)
	if !doc.IsObject() {
		return gjson.Result{}, &ParseError{
			Message: parseFailureMessage,
			Cause:   errors.New("response is not a JSON object"),
		}
	}

	return doc, nil
}

func jsonString(r gjson.Result) string {
	switch r.Type {
	case gjson.String:
		return strings.TrimSpace(r.Str)
	case gjson.Number, gjson.True, gjson.False:
		return r.String()
	default:
		return ""
	}
}

// jsonStrings coerces a value into a string list. Non-arrays become an empty list
// and blank entries are dropped, so model output never carries blank skills.
func jsonStrings(r gjson.Result) []string {
	out := []string{}
	if !r.IsArray() {
		return out
	}
	for _, item := range r.Array() {
		if s := jsonString(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func jsonObjects(r gjson.Result) []gjson.Result {
	var out []gjson.Result
	if !r.IsArray() {
		return out
	}
	for _, item := range r.Array() {
		if item.IsObject() {
			out = append(out, item)
		}
	}
	return out
}
