package domain

import (
	"math"
	"sort"
	"strings"
)

const (
	// Scoring weights
	ScoreExactMatch     = 100.0
	ScorePrefixMatch    = 75.0
	ScoreSubstringMatch = 50.0
	ScoreFuzzyMatch     = 25.0

	// Position bonus (earlier is better)
	ScorePositionBonus = 10.0

	// Keyword (SHORTCUTURL) hit, beats any title match
	ScoreShortcutMatch = 300.0

	// Query found in a tag or an enclosing folder name
	ScoreContextBonus = 5.0

	// Usage weight (usage counter contributes to final score)
	ScoreUsageWeight = 0.1
)

// BookmarkCandidate represents a bookmark candidate with its match score
type BookmarkCandidate struct {
	Bookmark     *Bookmark
	LexicalScore float64 // Score from fuzzy matching
	UsageScore   float64 // Score from usage learning
	Score        float64 // Combined score
}

// ScoreBookmark calculates the match score for a bookmark against a query string
func ScoreBookmark(queryStr string, bookmark *Bookmark) float64 {
	if bookmark == nil {
		return 0.0
	}

	queryStr = Normalize(queryStr)
	if queryStr == "" {
		return 0.0
	}

	if bookmark.Shortcut != "" && queryStr == Normalize(bookmark.Shortcut) {
		return ScoreShortcutMatch
	}

	score := scoreTitle(queryStr, Normalize(bookmark.Title))
	if score == 0.0 {
		return 0.0
	}

	if contextMatches(queryStr, bookmark) {
		score += ScoreContextBonus
	}
	return score
}

func scoreTitle(queryStr, title string) float64 {
	if title == "" {
		return 0.0
	}

	// Exact match (highest score)
	if queryStr == title {
		return ScoreExactMatch
	}

	// Prefix match
	if strings.HasPrefix(title, queryStr) {
		return ScorePrefixMatch
	}

	// Substring match
	if index := strings.Index(title, queryStr); index >= 0 {
		// Earlier substring matches get higher score
		substringBonus := ScorePositionBonus * (1.0 - float64(index)/float64(len(title)))
		return ScoreSubstringMatch + substringBonus
	}

	// Fuzzy match (word-based)
	// Check if all query words appear in the title
	queryWords := strings.Fields(queryStr)
	if len(queryWords) > 1 {
		allMatch := true
		for _, word := range queryWords {
			if !strings.Contains(title, word) {
				allMatch = false
				break
			}
		}
		if allMatch {
			return ScoreFuzzyMatch
		}
	}

	// Character similarity
	similarity := calculateSimilarity(queryStr, title)
	if similarity > 0.5 {
		return ScoreFuzzyMatch * similarity
	}

	return 0.0
}

// contextMatches reports whether the query names one of the bookmark's tags
// or enclosing folders.
func contextMatches(queryStr string, bookmark *Bookmark) bool {
	for _, tag := range bookmark.Tags {
		if strings.Contains(Normalize(tag), queryStr) {
			return true
		}
	}
	for _, folder := range bookmark.Folder {
		if strings.Contains(Normalize(folder), queryStr) {
			return true
		}
	}
	return false
}

// calculateSimilarity is the ratio of query runes found in the target.
func calculateSimilarity(s1, s2 string) float64 {
	if s1 == "" || s2 == "" {
		return 0.0
	}

	matches, total := 0, 0
	for _, c := range s1 {
		total++
		if strings.ContainsRune(s2, c) {
			matches++
		}
	}

	return float64(matches) / float64(total)
}

// RankBookmarkCandidates ranks bookmark candidates by combining lexical and
// usage scores. A "folder/text" query only ranks bookmarks under a matching
// folder; when that finds nothing the whole input is matched as a title.
func RankBookmarkCandidates(queryStr string, bookmarks []*Bookmark) []*BookmarkCandidate {
	q := ParseQuery(queryStr)
	if !q.Scoped() {
		return rankBookmarks(q.Text, nil, bookmarks)
	}

	candidates := rankBookmarks(q.Text, q, bookmarks)
	if len(candidates) == 0 {
		candidates = rankBookmarks(q.Raw, nil, bookmarks)
	}
	return candidates
}

func rankBookmarks(text string, scope *Query, bookmarks []*Bookmark) []*BookmarkCandidate {
	candidates := make([]*BookmarkCandidate, 0, len(bookmarks))

	for _, bookmark := range bookmarks {
		// Skip disabled bookmarks
		if bookmark.Disabled {
			continue
		}
		if scope != nil && !scope.InScope(bookmark) {
			continue
		}

		lexicalScore := ScoreBookmark(text, bookmark)

		// Skip bookmarks with zero score (no match)
		if lexicalScore == 0.0 {
			continue
		}

		// Calculate usage score (logarithmic to prevent dominance)
		usageScore := 0.0
		if bookmark.Counter > 0 {
			usageScore = math.Log10(float64(bookmark.Counter)+1) * ScoreUsageWeight * 100
		}

		candidates = append(candidates, &BookmarkCandidate{
			Bookmark:     bookmark,
			LexicalScore: lexicalScore,
			UsageScore:   usageScore,
			Score:        lexicalScore + usageScore,
		})
	}

	sortBookmarkCandidates(candidates)

	return candidates
}

// sortBookmarkCandidates sorts candidates by score (descending), then by
// title and ID so equal scores rank the same way on every call.
func sortBookmarkCandidates(candidates []*BookmarkCandidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Bookmark.Title != b.Bookmark.Title {
			return a.Bookmark.Title < b.Bookmark.Title
		}
		return a.Bookmark.ID < b.Bookmark.ID
	})
}

// FindBestBookmark finds the best matching bookmark for a query
func FindBestBookmark(queryStr string, bookmarks []*Bookmark) *Bookmark {
	candidates := RankBookmarkCandidates(queryStr, bookmarks)
	if len(candidates) == 0 {
		return nil
	}
	return candidates[0].Bookmark
}
