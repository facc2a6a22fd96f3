// Package popularity estimates how widely known a phrase is. Estimates feed
// the cultural scorer's popularity banding. Implementations are deterministic
// for a given backing dataset so repeated scoring runs agree exactly.
package popularity

import (
	"context"
)

// Origin values reported on estimates.
const (
	OriginSitelinks = "sitelinks"
	OriginWikimedia = "wikimedia"
	OriginFallback  = "hash_fallback"
)

// Estimate is a popularity measurement for one phrase.
type Estimate struct {
	Engagement int64  `json:"engagement"`
	Languages  int    `json:"languages"`
	Origin     string `json:"origin"`
}

// Source produces popularity estimates. Estimate must be safe for
// concurrent use.
type Source interface {
	Estimate(ctx context.Context, phrase string) (Estimate, error)
	Name() string
}
