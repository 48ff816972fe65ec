// Package i18n provides the static translation dictionaries shared by the
// HTTP layer and the server-rendered email bodies. Lookups are flat dotted
// key paths into one of two embedded JSON dictionaries; unknown keys fall
// back to the key itself so a missing translation never breaks rendering.
package i18n

import (
	"embed"
	"encoding/json"
	"strings"

	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// Supported language tags. LangZH is the product default.
const (
	LangZH = "zh-CN"
	LangEN = "en-US"
)

var (
	dictionaries = map[string]map[string]any{
		LangEN: mustLoad("locales/en-US.json"),
		LangZH: mustLoad("locales/zh-CN.json"),
	}

	// matcher resolves arbitrary Accept-Language input to a supported tag.
	// Order matters: the first entry is the fallback.
	matcher = language.NewMatcher([]language.Tag{
		language.MustParse(LangZH),
		language.MustParse(LangEN),
	})
)

func mustLoad(name string) map[string]any {
	raw, err := localeFS.ReadFile(name)
	if err != nil {
		panic(err)
	}
	var dict map[string]any
	if err := json.Unmarshal(raw, &dict); err != nil {
		panic(err)
	}
	return dict
}

// TranslateFunc looks up a dotted key path, returning the key itself when the
// path does not resolve to a string.
type TranslateFunc func(key string) string

// T returns a translation function bound to lang. Unknown languages fall back
// to the Chinese dictionary, mirroring the product default.
func T(lang string) TranslateFunc {
	dict, ok := dictionaries[lang]
	if !ok {
		dict = dictionaries[LangZH]
	}
	return func(key string) string {
		var cur any = dict
		for _, part := range strings.Split(key, ".") {
			m, ok := cur.(map[string]any)
			if !ok {
				return key
			}
			cur = m[part]
			if cur == nil {
				return key
			}
		}
		if s, ok := cur.(string); ok {
			return s
		}
		return key
	}
}

// Supported reports whether lang is one of the shipped dictionaries.
func Supported(lang string) bool {
	_, ok := dictionaries[lang]
	return ok
}

// Resolve picks the best supported language for a request. An explicit query
// value wins when it names a shipped dictionary; otherwise the Accept-Language
// header is matched, and the product default is the final fallback.
func Resolve(queryLang, acceptLanguage string) string {
	if Supported(queryLang) {
		return queryLang
	}
	if acceptLanguage != "" {
		if tags, _, err := language.ParseAcceptLanguage(acceptLanguage); err == nil && len(tags) > 0 {
			_, idx, conf := matcher.Match(tags...)
			if conf > language.No {
				if idx == 1 {
					return LangEN
				}
				return LangZH
			}
		}
	}
	return LangZH
}
