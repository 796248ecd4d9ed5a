package listdomain

import (
	"cmp"
	"slices"
)

// ScoreEntry is one scored contribution to a player's total.
type ScoreEntry struct {
	Rank    int     `json:"rank"`
	Level   string  `json:"level"`
	Percent *int    `json:"percent,omitempty"` // set only for partial progress
	Score   float64 `json:"score"`
	Link    string  `json:"link"`
}

// PlayerStanding is a player's aggregated position on the leaderboard.
type PlayerStanding struct {
	User       string       `json:"user"`
	Total      float64      `json:"total"`
	Verified   []ScoreEntry `json:"verified"`
	Completed  []ScoreEntry `json:"completed"`
	Progressed []ScoreEntry `json:"progressed"`
}

// Entries returns the number of scored contributions across all categories.
func (p PlayerStanding) Entries() int {
	return len(p.Verified) + len(p.Completed) + len(p.Progressed)
}

// standingAccumulator collects one player's entries while the leaderboard is built.
type standingAccumulator struct {
	standing PlayerStanding
	sum      float64
}

func (a *standingAccumulator) add(bucket *[]ScoreEntry, entry ScoreEntry) {
	*bucket = append(*bucket, entry)
	a.sum += entry.Score
}

// BuildLeaderboard scores every verification and record of the ordered level
// list and returns one standing per player sorted by descending total.
//
// Rank is the level's 1-based position in levels. Records below the
// qualifying percent are scored like any other partial record. Players with
// equal totals keep the order in which they were first seen.
func BuildLeaderboard(levels []Level, policy ScorePolicy) []PlayerStanding {
	buckets := make(map[string]*standingAccumulator)
	var order []*standingAccumulator

	bucketFor := func(user string) *standingAccumulator {
		if acc, ok := buckets[user]; ok {
			return acc
		}
		acc := &standingAccumulator{
			standing: PlayerStanding{
				User:       user,
				Verified:   []ScoreEntry{},
				Completed:  []ScoreEntry{},
				Progressed: []ScoreEntry{},
			},
		}
		buckets[user] = acc
		order = append(order, acc)
		return acc
	}

	for i, level := range levels {
		rank := i + 1
		fullScore := policy.Score(rank, 100, level.PercentToQualify)

		if level.Verifier != "" {
			acc := bucketFor(level.Verifier)
			acc.add(&acc.standing.Verified, ScoreEntry{
				Rank:  rank,
				Level: level.Name,
				Score: fullScore,
				Link:  level.Verification,
			})
		}

		for _, record := range level.Records {
			acc := bucketFor(record.User)
			if record.IsCompletion() {
				acc.add(&acc.standing.Completed, ScoreEntry{
					Rank:  rank,
					Level: level.Name,
					Score: fullScore,
					Link:  record.Link,
				})
				continue
			}

			percent := record.Percent
			acc.add(&acc.standing.Progressed, ScoreEntry{
				Rank:    rank,
				Level:   level.Name,
				Percent: &percent,
				Score:   policy.Score(rank, record.Percent, level.PercentToQualify),
				Link:    record.Link,
			})
		}
	}

	standings := make([]PlayerStanding, 0, len(order))
	for _, acc := range order {
		acc.standing.Total = Round(acc.sum)
		standings = append(standings, acc.standing)
	}

	slices.SortStableFunc(standings, func(a, b PlayerStanding) int {
		return cmp.Compare(b.Total, a.Total)
	})
	return standings
}

// Position returns the 1-based leaderboard position of user, or 0 when the
// user has no standing.
func Position(standings []PlayerStanding, user string) int {
	for i := range standings {
		if standings[i].User == user {
			return i + 1
		}
	}
	return 0
}

// Clone returns a copy of p that shares no slices with it.
func (p PlayerStanding) Clone() PlayerStanding {
	p.Verified = cloneEntries(p.Verified)
	p.Completed = cloneEntries(p.Completed)
	p.Progressed = cloneEntries(p.Progressed)
	return p
}

func cloneEntries(entries []ScoreEntry) []ScoreEntry {
	if entries == nil {
		return nil
	}
	out := make([]ScoreEntry, len(entries))
	for i, e := range entries {
		if e.Percent != nil {
			percent := *e.Percent
			e.Percent = &percent
		}
		out[i] = e
	}
	return out
}
