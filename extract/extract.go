// Package extract isolates structured payloads from free-form completion
// text. Generated responses often wrap their JSON or diagram output in a
// fenced code block, sometimes tagged with a language, sometimes not, and
// sometimes return the payload bare.
package extract

import (
	"encoding/json"
	"regexp"
	"strings"
)

// anyFence matches the first fenced block regardless of tag. An optional
// language identifier on the opening line is stripped from the capture.
var anyFence = regexp.MustCompile("(?s)```(?:[a-zA-Z0-9_-]*\r?\n)?(.*?)```")

// Block returns the best candidate payload inside text. Strategies are
// tried in order, first match wins: a fence tagged with lang, any fence,
// then the whole text verbatim. The result is always non-empty for
// non-empty input.
func Block(text, lang string) string {
	tagged := regexp.MustCompile("(?s)```" + regexp.QuoteMeta(lang) + `\s*(.*?)` + "```")
	if m := tagged.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}

	if m := anyFence.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}

	return strings.TrimSpace(text)
}

// DecodeError reports a candidate payload that is not well-formed JSON.
// Orchestrators recover from it locally by committing a defaulted record;
// it is never shown raw to the user.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return "payload is not well-formed JSON: " + e.Err.Error()
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Decode extracts the most likely JSON payload from text and unmarshals it
// into a loosely-typed value for schema defaulting.
func Decode(text string) (any, error) {
	candidate := Block(text, "json")

	var value any
	if err := json.Unmarshal([]byte(candidate), &value); err != nil {
		return nil, &DecodeError{Err: err}
	}

	return value, nil
}
