// Package recommend turns assessment answers into ranked habit suggestions.
package recommend

import (
	"slices"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/models"
)

// Recommend evaluates every rule against a and returns the matches sorted by
// descending priority, truncated to limit (the default when limit <= 0). The
// result depends only on a, so equal assessments give equal lists.
func Recommend(a models.Assessment, limit int) []models.Recommendation {
	return Evaluate(Rules, a, limit)
}

// Evaluate is Recommend over an arbitrary rule table.
func Evaluate(rules []Rule, a models.Assessment, limit int) []models.Recommendation {
	if limit <= 0 {
		limit = constants.DefaultMaxRecommendations
	}

	recs := make([]models.Recommendation, 0, len(rules))
	for _, r := range rules {
		reason, ok := r.Match(a)
		if !ok {
			continue
		}
		rec := r.Recommendation
		rec.Reason = reason
		rec.Benefits = slices.Clone(rec.Benefits)
		rec.Tips = slices.Clone(rec.Tips)
		recs = append(recs, rec)
	}

	slices.SortStableFunc(recs, func(x, y models.Recommendation) int {
		return y.Priority - x.Priority
	})
	if len(recs) > limit {
		recs = recs[:limit]
	}
	return recs
}

// Find returns the recommendation with id from recs.
func Find(recs []models.Recommendation, id string) (models.Recommendation, bool) {
	i := slices.IndexFunc(recs, func(r models.Recommendation) bool { return r.ID == id })
	if i < 0 {
		return models.Recommendation{}, false
	}
	return recs[i], true
}
