package category

import "strings"

// Classifier blends the brand, history, keyword and semantic matchers into a
// single suggestion. It holds only read-only tables and is safe for
// concurrent use.
type Classifier struct {
	brands   *BrandMatcher
	keywords *KeywordMatcher
	history  *HistoryMatcher
	semantic *SemanticMatcher
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithSemanticMatcher enables the semantic fallback. A nil matcher leaves it
// disabled.
func WithSemanticMatcher(m *SemanticMatcher) Option {
	return func(c *Classifier) {
		c.semantic = m
	}
}

// NewClassifier returns a Classifier over the built-in tables.
func NewClassifier(opts ...Option) *Classifier {
	c := &Classifier{
		brands:   NewBrandMatcher(),
		keywords: NewKeywordMatcher(),
		history:  NewHistoryMatcher(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Classify picks a category for text using, in priority order: a brand hit,
// the user's history, then the better of keyword and semantic (keyword wins
// ties). It always returns a standard category.
//
// The returned confidence is the highest confidence among all evaluated
// signals that agree with the chosen category.
func (c *Classifier) Classify(text string, samples []TrainingSample) Result {
	folded := Fold(text)
	keyword := c.keywords.Match(folded)
	history, historyOK := c.history.Match(folded, samples)

	if brand, ok := c.brands.Match(folded); ok {
		return c.corroborate(brand, folded, historyResult(history, historyOK))
	}

	if historyOK {
		return c.corroborate(history, folded)
	}

	if c.semantic != nil && strings.TrimSpace(text) != "" {
		if semantic, ok := c.semantic.Match(text); ok {
			if semantic.Confidence > keyword.Confidence {
				return c.corroborate(semantic, folded)
			}
			return c.corroborate(keyword, folded, semantic)
		}
	}

	return c.corroborate(keyword, folded)
}

func historyResult(r Result, ok bool) Result {
	if !ok {
		return Result{}
	}
	return r
}

// corroborate raises winner's confidence to the strongest agreeing signal.
// The keyword table is always consulted for the winning category; others are
// passed in when they were evaluated.
func (c *Classifier) corroborate(winner Result, folded string, others ...Result) Result {
	if winner.Source == SourceDefault {
		return winner
	}
	if kc := c.keywords.Confidence(folded, winner.Category); kc > winner.Confidence {
		winner.Confidence = kc
	}
	for _, o := range others {
		if o.Category == winner.Category && o.Confidence > winner.Confidence {
			winner.Confidence = o.Confidence
		}
	}
	return winner
}
