package gait

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Token positions in a recording filename. The pattern is
// {datetime}_{user}-{assistant}-{location}-{posture}-[{reasons}]-{order}.csv.
const (
	MinNameTokens = 11
	UserToken     = 5
	PostureToken  = 6
)

// RecordingName is a decoded recording filename.
type RecordingName struct {
	Stem   string
	Tokens []string
}

// ParseRecordingName splits the stem on '_' into two parts and each part on
// '-', keeping the tokens in order.
func ParseRecordingName(filename string) (RecordingName, error) {
	base := filepath.Base(filename)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	parts := strings.Split(stem, "_")
	if len(parts) != 2 {
		return RecordingName{}, fmt.Errorf("%w: %q: want one '_' separator, got %d parts", ErrBadFilename, base, len(parts))
	}
	var tokens []string
	for _, part := range parts {
		tokens = append(tokens, strings.Split(part, "-")...)
	}
	if len(tokens) < MinNameTokens {
		return RecordingName{}, fmt.Errorf("%w: %q: %d tokens, need %d", ErrBadFilename, base, len(tokens), MinNameTokens)
	}
	return RecordingName{Stem: stem, Tokens: tokens}, nil
}

func (n RecordingName) User() string         { return n.Tokens[UserToken] }
func (n RecordingName) PostureToken() string { return n.Tokens[PostureToken] }

func (n RecordingName) Posture() (Posture, error) {
	return ParsePosture(n.PostureToken())
}

// GroupKey identifies the user/posture bucket used when counting recordings.
func (n RecordingName) GroupKey() string {
	return n.User() + "-" + n.PostureToken()
}
