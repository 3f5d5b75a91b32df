package ai

import (
	"bytes"
	"strings"

	"github.com/tidwall/gjson"
)

// textPaths are tried in order on every object the parser looks at.
var textPaths = []string{
	"generated_text",
	"translation_text",
	"summary_text",
	"text",
	"answer",
	"output",
	"content",
	"choices.0.message.content",
	"choices.0.text",
}

type shapeParser func(gjson.Result) (string, bool)

// ExtractText returns the first non-empty text payload of a provider body. Known shapes are tried
// in a fixed order: array of objects (or strings), single object, bare JSON string. A body that is
// not JSON at all is plain text.
func ExtractText(body []byte) (string, bool) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return "", false
	}
	if !gjson.ValidBytes(trimmed) {
		return string(trimmed), true
	}

	res := gjson.ParseBytes(trimmed)
	for _, parse := range []shapeParser{fromArray, fromObject, fromString} {
		if s, ok := parse(res); ok {
			return s, true
		}
	}
	return "", false
}

func fromArray(res gjson.Result) (string, bool) {
	if !res.IsArray() {
		return "", false
	}
	var out string
	var found bool
	res.ForEach(func(_, item gjson.Result) bool {
		switch {
		case item.IsArray():
			out, found = fromArray(item)
		case item.IsObject():
			out, found = fromObject(item)
		default:
			out, found = fromString(item)
		}
		return !found
	})
	return out, found
}

func fromObject(res gjson.Result) (string, bool) {
	if !res.IsObject() {
		return "", false
	}
	for _, p := range textPaths {
		v := res.Get(p)
		if v.Type == gjson.String && strings.TrimSpace(v.String()) != "" {
			return v.String(), true
		}
	}
	return "", false
}

func fromString(res gjson.Result) (string, bool) {
	if res.Type != gjson.String || strings.TrimSpace(res.String()) == "" {
		return "", false
	}
	return res.String(), true
}
