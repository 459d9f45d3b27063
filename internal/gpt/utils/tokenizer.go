package utils

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
	"github.com/rs/zerolog/log"
)

var (
	tokenizer *tiktoken.Tiktoken
	initOnce  sync.Once
	initErr   error
)

func initTokenizer() error {
	initOnce.Do(func() {
		tkm, err := tiktoken.GetEncoding("cl100k_base")
		if err != nil {
			log.Error().Err(err).Msg("failed to init tokenizer")
			initErr = err
			return
		}
		tokenizer = tkm
	})
	return initErr
}

type Tokenizer struct {
	tokenizer *tiktoken.Tiktoken
}

func NewTokenzier() (Tokenizer, error) {
	if err := initTokenizer(); err != nil {
		return Tokenizer{}, err
	}

	return Tokenizer{tokenizer: tokenizer}, nil
}

func (t Tokenizer) CountTokens(s string) int {
	token := t.tokenizer.Encode(s, nil, nil)
	return len(token)
}

// Truncate cuts s down to at most maxTokens tokens.
func (t Tokenizer) Truncate(s string, maxTokens int) string {
	tokens := t.tokenizer.Encode(s, nil, nil)
	if len(tokens) <= maxTokens {
		return s
	}
	if maxTokens <= 0 {
		return ""
	}
	return t.tokenizer.Decode(tokens[:maxTokens])
}
