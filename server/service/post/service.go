// Package post provides the post-text services backing the API: memoized
// tokenization, sentence listing, and English lemma keys for lookups.
package post

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"

	lru "github.com/hashicorp/golang-lru/v2"
	snowballeng "github.com/kljensen/snowball/english"
	"github.com/pkg/errors"
	"golang.org/x/sync/semaphore"

	"github.com/kumotan/kumotan/plugin/segmenter"
)

// Service wraps the tokenizer with an LRU memoization cache and a bound on
// concurrent morphological work. Tokenization is pure, so memoization is a
// performance optimization only; a cache miss and a cache hit return the
// same token sequence.
type Service struct {
	tokenizer      *segmenter.Tokenizer
	splitSentences segmenter.SentenceSplitFunc
	cache          *lru.Cache[string, []segmenter.Token]
	sem            *semaphore.Weighted
	logger         *slog.Logger
}

// NewService creates a post service.
func NewService(tokenizer *segmenter.Tokenizer, cacheSize int, maxConcurrent int64, logger *slog.Logger) (*Service, error) {
	if cacheSize <= 0 {
		cacheSize = 1024
	}
	if maxConcurrent <= 0 {
		maxConcurrent = 8
	}
	cache, err := lru.New[string, []segmenter.Token](cacheSize)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create token cache")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		tokenizer:      tokenizer,
		splitSentences: segmenter.SplitSentences,
		cache:          cache,
		sem:            semaphore.NewWeighted(maxConcurrent),
		logger:         logger,
	}, nil
}

// Tokenize returns the ordered token sequence for one post body, memoized
// per (text, facets) pair.
func (s *Service) Tokenize(ctx context.Context, text string, facets []segmenter.Facet) ([]segmenter.Token, error) {
	key := cacheKey(text, facets)
	if tokens, ok := s.cache.Get(key); ok {
		return tokens, nil
	}

	if err := s.sem.Acquire(ctx, 1); err != nil {
		return nil, errors.Wrap(err, "tokenize canceled")
	}
	defer s.sem.Release(1)

	tokens := s.tokenizer.Tokenize(text, facets)
	s.cache.Add(key, tokens)
	s.logger.Debug("tokenized post",
		slog.Int("text_len", len(text)),
		slog.Int("facets", len(facets)),
		slog.Int("tokens", len(tokens)))
	return tokens, nil
}

// Sentences returns the post's ordered sentence list, used by the selection
// machine to resolve double-tap sentence lookups.
func (s *Service) Sentences(text string) []string {
	return s.splitSentences(text)
}

// Lemma returns the dictionary lookup key for an English word: folded,
// lower-cased, and stemmed.
func (s *Service) Lemma(word string) string {
	folded := Fold(word)
	if folded == "" {
		return ""
	}
	return snowballeng.Stem(folded, false)
}

// cacheKey fingerprints a (text, facets) pair.
func cacheKey(text string, facets []segmenter.Facet) string {
	h := sha256.New()
	h.Write([]byte(text))
	for _, f := range facets {
		fmt.Fprintf(h, "|%d:%d:%s:%s", f.ByteStart, f.ByteEnd, f.Kind, f.Value)
	}
	return hex.EncodeToString(h.Sum(nil))
}
