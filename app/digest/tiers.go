package digest

import "dailydigest/app/scoring"

// SelectCandidates splits descending-sorted scored articles into the two
// digest tiers, applying the per-tier caps. Both caps truncate an already
// sorted list, keeping the highest scores.
func SelectCandidates(scored []scoring.ScoredArticle) (top, also []scoring.ScoredArticle) {
	for _, article := range scored {
		switch {
		case article.Score >= TopStoryThreshold:
			if len(top) < MaxTopStories {
				top = append(top, article)
			}
		case article.Score >= Threshold:
			if len(also) < MaxAlsoInteresting {
				also = append(also, article)
			}
		}
	}
	return top, also
}

// Partition re-splits summarized articles into the two tiers by the same
// score boundaries. Summarization does not change scores, so this is a
// stable re-split of SelectCandidates' output.
func Partition(summarized []SummarizedArticle) (top, also []SummarizedArticle) {
	for _, article := range summarized {
		switch {
		case article.Score >= TopStoryThreshold:
			top = append(top, article)
		case article.Score >= Threshold:
			also = append(also, article)
		}
	}
	return top, also
}
