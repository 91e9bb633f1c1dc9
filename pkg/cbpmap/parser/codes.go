package parser

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Code layout: CBP.NZL.<body>.Q
const (
	CodePrefix  = "CBP.NZL."
	CodeSuffix  = ".Q"
	UnknownBody = "UNKNOWN.SERIES"

	maxCodeParts    = 6
	maxWordsPerPart = 3
	maxCodeWords    = 8
	minWordLen      = 3
)

var (
	codeStripRe = regexp.MustCompile(`[^A-Za-z0-9_\s;]`)
	spaceRe     = regexp.MustCompile(`\s+`)
)

// BaseCode derives the code for a description without checking uniqueness.
func BaseCode(description string) string {
	clean := codeStripRe.ReplaceAllString(description, "")
	clean = spaceRe.ReplaceAllString(clean, " ")

	var parts []string
	for _, p := range strings.Split(clean, PartSeparator) {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) > maxCodeParts {
		parts = parts[:maxCodeParts]
	}

	var words []string
	for _, p := range parts {
		n := 0
		for _, w := range strings.Fields(p) {
			if utf8.RuneCountInString(w) < minWordLen {
				continue
			}
			words = append(words, strings.ToUpper(w))
			if n++; n == maxWordsPerPart {
				break
			}
		}
	}
	if len(words) > maxCodeWords {
		words = words[:maxCodeWords]
	}

	body := UnknownBody
	if len(words) > 0 {
		body = strings.Join(words, ".")
	}
	return CodePrefix + body + CodeSuffix
}

// Mnemonic returns the code without its frequency suffix.
func Mnemonic(code string) string {
	return strings.TrimSuffix(code, CodeSuffix)
}

// CodeRegistry tracks the codes issued during one run.
// It is not safe for concurrent use.
type CodeRegistry struct {
	issued map[string]struct{}
	order  []string
}

// NewCodeRegistry returns an empty registry.
func NewCodeRegistry() *CodeRegistry {
	return &CodeRegistry{issued: make(map[string]struct{})}
}

// Has reports whether code was already issued.
func (r *CodeRegistry) Has(code string) bool {
	_, ok := r.issued[code]
	return ok
}

// Issue derives a code for description, appending .1, .2, ... before the
// suffix until it is unused, and registers it.
func (r *CodeRegistry) Issue(description string) string {
	base := BaseCode(description)
	code := base
	stem := Mnemonic(base)
	for n := 1; r.Has(code); n++ {
		code = stem + "." + strconv.Itoa(n) + CodeSuffix
	}
	r.issued[code] = struct{}{}
	r.order = append(r.order, code)
	return code
}

// Codes returns the issued codes in issue order.
func (r *CodeRegistry) Codes() []string {
	return append([]string(nil), r.order...)
}

// Len returns the number of issued codes.
func (r *CodeRegistry) Len() int {
	return len(r.order)
}
