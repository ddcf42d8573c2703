// Package morph provides the dictionary-backed Japanese morphological
// splitter. It wraps the kagome tokenizer so the rest of the codebase never
// depends on it directly.
package morph

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Policy decides which morphological units count as content words eligible
// for dictionary lookup. Particles, auxiliaries and symbols are noise for a
// vocabulary learner; nouns, verbs, adjectives and adverbs are not. The
// exact lists are a tuning detail, so they are loadable from a YAML file.
type Policy struct {
	// ContentPOS lists part-of-speech categories (kagome feature[0]) whose
	// units are meaningful.
	ContentPOS []string `yaml:"content_pos"`
	// ExcludedSubPOS lists sub-categories (kagome feature[1]) that are never
	// meaningful even under a content POS, e.g. 非自立 (dependent nouns).
	ExcludedSubPOS []string `yaml:"excluded_sub_pos"`
}

// DefaultPolicy returns the shipped policy: independent nouns, verbs,
// adjectives, adverbs and interjections are meaningful.
func DefaultPolicy() *Policy {
	return &Policy{
		ContentPOS:     []string{"名詞", "動詞", "形容詞", "副詞", "連体詞", "感動詞"},
		ExcludedSubPOS: []string{"非自立", "接尾", "空白"},
	}
}

// LoadPolicy reads a policy from a YAML file.
func LoadPolicy(path string) (*Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read morph policy %s", path)
	}
	policy := &Policy{}
	if err := yaml.Unmarshal(data, policy); err != nil {
		return nil, errors.Wrapf(err, "invalid morph policy %s", path)
	}
	if len(policy.ContentPOS) == 0 {
		return nil, errors.Errorf("morph policy %s lists no content POS", path)
	}
	return policy, nil
}

// Meaningful reports whether a unit with the given part-of-speech features
// is a content word.
func (p *Policy) Meaningful(features []string) bool {
	if len(features) == 0 {
		return false
	}
	content := false
	for _, pos := range p.ContentPOS {
		if strings.HasPrefix(features[0], pos) {
			content = true
			break
		}
	}
	if !content {
		return false
	}
	if len(features) > 1 {
		for _, sub := range p.ExcludedSubPOS {
			if features[1] == sub {
				return false
			}
		}
	}
	return true
}
