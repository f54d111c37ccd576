// SPDX-License-Identifier: MPL-2.0

package naming

import (
	"strings"
	"unicode"
)

// Word is a unit produced by Split. SpaceBefore records that the word was
// separated from the previous one by whitespace in the source text.
type Word struct {
	Text        string
	SpaceBefore bool
}

type runeClass int

const (
	classSeparator runeClass = iota
	classLower
	classUpper
	classDigit
)

func classify(r rune) runeClass {
	switch {
	case unicode.IsUpper(r):
		return classUpper
	case unicode.IsLetter(r):
		return classLower
	case unicode.IsDigit(r):
		return classDigit
	default:
		return classSeparator
	}
}

// Split breaks s into words. Boundaries are a lower-to-upper transition,
// any letter/digit transition, and runs of whitespace or punctuation (which
// are dropped). Consecutive upper-case letters stay in one word, so
// "HTTPServer" is a single word.
func Split(s string) []Word {
	var (
		words      []Word
		current    strings.Builder
		prev       = classSeparator
		spaceAhead bool
	)

	flush := func() {
		if current.Len() == 0 {
			return
		}
		words = append(words, Word{Text: current.String(), SpaceBefore: spaceAhead && len(words) > 0})
		current.Reset()
		spaceAhead = false
	}

	for _, r := range s {
		class := classify(r)
		if class == classSeparator {
			flush()
			if unicode.IsSpace(r) {
				spaceAhead = true
			}
			prev = classSeparator
			continue
		}
		if isBoundary(prev, class) {
			flush()
		}
		current.WriteRune(r)
		prev = class
	}
	flush()

	return words
}

func isBoundary(prev, next runeClass) bool {
	switch {
	case prev == classSeparator:
		return false
	case prev == classLower && next == classUpper:
		return true
	case prev == classDigit && next != classDigit:
		return true
	case prev != classDigit && next == classDigit:
		return true
	default:
		return false
	}
}

// Texts returns the text of each word.
func Texts(words []Word) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = w.Text
	}
	return out
}
