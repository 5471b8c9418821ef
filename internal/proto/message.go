// Package proto classifies raw control tokens from the host into typed
// messages. Classification is total: unknown tokens are data, not errors.
package proto

import (
	"github.com/agnivade/levenshtein"
)

// Kind identifies a control message.
type Kind int

const (
	KindInfo Kind = iota
	KindHeartbeat
	KindShow
	KindClose
	KindKill
)

func (k Kind) String() string {
	switch k {
	case KindHeartbeat:
		return "heartbeat"
	case KindShow:
		return "show"
	case KindClose:
		return "close"
	case KindKill:
		return "kill"
	default:
		return "info"
	}
}

// Message is a classified control message. Text carries the raw token for
// KindInfo and is empty otherwise.
type Message struct {
	Kind Kind
	Text string
}

// keywords holds the reserved vocabulary; everything else is diagnostic text.
var keywords = map[string]Kind{
	"heartbeat": KindHeartbeat,
	"show":      KindShow,
	"close":     KindClose,
	"kill":      KindKill,
}

// Classify maps a raw token to a Message. It never fails.
func Classify(token string) Message {
	if k, ok := keywords[token]; ok {
		return Message{Kind: k}
	}
	return Message{Kind: KindInfo, Text: token}
}

// Suggest returns the reserved keyword nearest to token, or "" when no
// keyword is within edit distance 2. Used to enrich diagnostics for tokens
// that look like typos of the control vocabulary.
func Suggest(token string) string {
	best := ""
	bestDist := 3
	for kw := range keywords {
		if d := levenshtein.ComputeDistance(token, kw); d < bestDist {
			best = kw
			bestDist = d
		}
	}
	return best
}
