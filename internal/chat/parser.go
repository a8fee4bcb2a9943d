// Package chat parses free-form activity messages into structured
// actions and renders coaching replies. Parsing is keyword and pattern
// driven; there is no model behind it.
package chat

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/dayimpact/ecocoach/internal/factors"
)

// ParsedAction is one activity extracted from a message. Confidence is
// heuristic: 0.8 when an explicit quantity was found near the keyword,
// 0.6 when the amount fell back to the default of 1.
type ParsedAction struct {
	Category     factors.Category `json:"category"`
	Item         string           `json:"item"`
	Amount       float64          `json:"amount"`
	Confidence   float64          `json:"confidence"`
	OriginalText string           `json:"original_text"`
}

const (
	// contextWindow is how many characters around a keyword are scanned
	// for a quantity. Offsets are rune-based so Korean text measures the
	// same as ASCII.
	contextWindow = 20

	defaultAmount = 1.0

	confidenceExplicitAmount = 0.8
	confidenceDefaultAmount  = 0.6
)

// numberPatterns are tried in order; unit-qualified quantities beat a
// bare number anywhere in the window.
var numberPatterns = []*regexp.Regexp{ //nolint:gochecknoglobals // Compiled once
	regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:km|킬로|킬로미터)`),
	regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:번|개|잔|벌|켤레|인분)`),
	regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:kWh|킬로와트)`),
	regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:시간|분)`),
	regexp.MustCompile(`(\d+(?:\.\d+)?)`),
}

type keywordMatch struct {
	pos     int // rune offset in the lowercased message
	mapping keywordMapping
}

// ParseMessage extracts structured actions from a free-form message.
//
// Keyword matching is case-insensitive. Matches are ordered by position
// in the message, duplicates of the same item keep only the earliest
// match, and each surviving match looks for a quantity within
// contextWindow runes on either side of the keyword. Messages with no
// recognizable keyword yield an empty slice.
func ParseMessage(message string) []ParsedAction {
	lower := strings.ToLower(message)
	messageRunes := []rune(message)

	var found []keywordMatch
	for _, m := range keywordTable {
		pos := runeIndex(lower, m.keyword)
		if pos < 0 {
			continue
		}
		found = append(found, keywordMatch{pos: pos, mapping: m})
	}

	// Stable sort keeps table order for keywords at the same offset.
	sort.SliceStable(found, func(i, j int) bool {
		return found[i].pos < found[j].pos
	})

	seen := make(map[string]struct{}, len(found))
	actions := make([]ParsedAction, 0, len(found))
	for _, match := range found {
		if _, dup := seen[match.mapping.item]; dup {
			continue
		}
		seen[match.mapping.item] = struct{}{}

		keywordLen := len([]rune(match.mapping.keyword))
		start := match.pos - contextWindow
		if start < 0 {
			start = 0
		}
		end := match.pos + keywordLen + contextWindow
		if end > len(messageRunes) {
			end = len(messageRunes)
		}
		context := string(messageRunes[start:end])

		amount, matched := extractNumber(context)
		confidence := confidenceDefaultAmount
		if matched {
			confidence = confidenceExplicitAmount
		}

		actions = append(actions, ParsedAction{
			Category:     match.mapping.category,
			Item:         match.mapping.item,
			Amount:       amount,
			Confidence:   confidence,
			OriginalText: message,
		})
	}

	return actions
}

// extractNumber returns the first quantity found in text and whether a
// pattern matched at all. Without a match the amount defaults to 1.
func extractNumber(text string) (float64, bool) {
	for _, pattern := range numberPatterns {
		groups := pattern.FindStringSubmatch(text)
		if groups == nil {
			continue
		}
		v, err := strconv.ParseFloat(groups[1], 64)
		if err != nil {
			continue
		}
		return v, true
	}
	return defaultAmount, false
}

// runeIndex returns the rune offset of substr in s, or -1.
func runeIndex(s, substr string) int {
	byteIdx := strings.Index(s, substr)
	if byteIdx < 0 {
		return -1
	}
	return len([]rune(s[:byteIdx]))
}
