package listdomain

import (
	"math"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
)

func intPtr(v int) *int { return &v }

func TestBuildLeaderboardScenario(t *testing.T) {
	policy := DefaultScorePolicy()
	levels := []Level{
		{
			Path:             "level-x",
			Name:             "Level X",
			Verifier:         "Alice",
			Verification:     "https://video/alice",
			PercentToQualify: 60,
			Records: []Record{
				{User: "Bob", Percent: 100, Link: "https://video/bob"},
				{User: "Carol", Percent: 70, Link: "https://video/carol"},
			},
		},
	}

	full := policy.Score(1, 100, 60)
	partial := policy.Score(1, 70, 60)

	got := BuildLeaderboard(levels, policy)
	want := []PlayerStanding{
		{
			User:       "Alice",
			Total:      Round(full),
			Verified:   []ScoreEntry{{Rank: 1, Level: "Level X", Score: full, Link: "https://video/alice"}},
			Completed:  []ScoreEntry{},
			Progressed: []ScoreEntry{},
		},
		{
			User:       "Bob",
			Total:      Round(full),
			Verified:   []ScoreEntry{},
			Completed:  []ScoreEntry{{Rank: 1, Level: "Level X", Score: full, Link: "https://video/bob"}},
			Progressed: []ScoreEntry{},
		},
		{
			User:       "Carol",
			Total:      Round(partial),
			Verified:   []ScoreEntry{},
			Completed:  []ScoreEntry{},
			Progressed: []ScoreEntry{{Rank: 1, Level: "Level X", Percent: intPtr(70), Score: partial, Link: "https://video/carol"}},
		},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected leaderboard (-want +got):\n%s", diff)
	}
	if !(partial > 0 && partial < full) {
		t.Fatalf("expected 0 < carol %v < bob %v", partial, full)
	}
}

func TestBuildLeaderboardMergesVerifierAndRecordHolder(t *testing.T) {
	policy := DefaultScorePolicy()
	levels := []Level{
		{Name: "A", Verifier: "dana", PercentToQualify: 50},
		{Name: "B", Verifier: "erin", PercentToQualify: 40, Records: []Record{{User: "dana", Percent: 100}}},
	}

	got := BuildLeaderboard(levels, policy)

	var dana []PlayerStanding
	for _, s := range got {
		if s.User == "dana" {
			dana = append(dana, s)
		}
	}
	if len(dana) != 1 {
		t.Fatalf("expected dana exactly once, got %d", len(dana))
	}

	want := Round(policy.Score(1, 100, 50) + policy.Score(2, 100, 40))
	if dana[0].Total != want {
		t.Fatalf("expected merged total %v, got %v", want, dana[0].Total)
	}
	if len(dana[0].Verified) != 1 || len(dana[0].Completed) != 1 {
		t.Fatalf("expected one verified and one completed entry, got %+v", dana[0])
	}
}

func TestBuildLeaderboardRoundsOnlyTheTotal(t *testing.T) {
	policy := DefaultScorePolicy()
	var levels []Level
	for i := 0; i < 40; i++ {
		levels = append(levels, Level{
			Name:             "lvl",
			Verifier:         "v",
			PercentToQualify: 37,
			Records:          []Record{{User: "grinder", Percent: 41 + i%50}},
		})
	}

	got := BuildLeaderboard(levels, policy)

	var sum float64
	for i, level := range levels {
		sum += policy.Score(i+1, level.Records[0].Percent, level.PercentToQualify)
	}

	for _, s := range got {
		if s.User != "grinder" {
			continue
		}
		if s.Total != Round(sum) {
			t.Fatalf("expected total %v, got %v", Round(sum), s.Total)
		}
		for i, e := range s.Progressed {
			if e.Score != policy.Score(i+1, levels[i].Records[0].Percent, 37) {
				t.Fatalf("entry %d was rounded: %v", i, e.Score)
			}
		}
		return
	}
	t.Fatal("grinder missing from leaderboard")
}

func TestBuildLeaderboardEmptyRecords(t *testing.T) {
	got := BuildLeaderboard([]Level{{Name: "Lonely", Verifier: "solo", PercentToQualify: 50}}, DefaultScorePolicy())
	if len(got) != 1 {
		t.Fatalf("expected a single standing, got %d", len(got))
	}
	if len(got[0].Verified) != 1 || len(got[0].Completed) != 0 || len(got[0].Progressed) != 0 {
		t.Fatalf("expected only a verified entry, got %+v", got[0])
	}
}

// Sub-threshold records are kept and scored. This mirrors the behavior of the
// published list and is documented rather than assumed correct.
func TestBuildLeaderboardKeepsSubThresholdRecords(t *testing.T) {
	policy := DefaultScorePolicy()
	got := BuildLeaderboard([]Level{{
		Name:             "Gate",
		Verifier:         "v",
		PercentToQualify: 60,
		Records:          []Record{{User: "early", Percent: 30}},
	}}, policy)

	var early *PlayerStanding
	for i := range got {
		if got[i].User == "early" {
			early = &got[i]
		}
	}
	if early == nil {
		t.Fatal("expected sub-threshold record holder in leaderboard")
	}
	if len(early.Progressed) != 1 {
		t.Fatalf("expected one progressed entry, got %d", len(early.Progressed))
	}
	score := early.Progressed[0].Score
	if score < 0 || score > policy.Score(1, 60, 60) {
		t.Fatalf("expected 0 <= %v <= threshold score", score)
	}
}

func TestBuildLeaderboardSkipsEmptyVerifier(t *testing.T) {
	got := BuildLeaderboard([]Level{{Name: "Unverified", Records: []Record{{User: "x", Percent: 100}}}}, DefaultScorePolicy())
	if len(got) != 1 || got[0].User != "x" {
		t.Fatalf("expected only the record holder, got %+v", got)
	}
}

func TestBuildLeaderboardStableTies(t *testing.T) {
	levels := []Level{
		{Name: "A", Verifier: "first", PercentToQualify: 50, Records: []Record{{User: "second", Percent: 100}, {User: "third", Percent: 100}}},
	}
	got := BuildLeaderboard(levels, DefaultScorePolicy())
	users := []string{got[0].User, got[1].User, got[2].User}
	if diff := cmp.Diff([]string{"first", "second", "third"}, users); diff != "" {
		t.Fatalf("expected first-seen order for ties (-want +got):\n%s", diff)
	}
}

func TestBuildLeaderboardGeneratedLists(t *testing.T) {
	faker := gofakeit.New(42)
	policy := DefaultScorePolicy()

	for round := 0; round < 25; round++ {
		levels := generateLevels(faker, faker.Number(1, 60))

		first := BuildLeaderboard(levels, policy)
		second := BuildLeaderboard(levels, policy)
		if diff := cmp.Diff(first, second); diff != "" {
			t.Fatalf("round %d: leaderboard not deterministic (-first +second):\n%s", round, diff)
		}

		seen := make(map[string]bool)
		var entries int
		for i, s := range first {
			if seen[s.User] {
				t.Fatalf("round %d: player %q appears twice", round, s.User)
			}
			seen[s.User] = true
			entries += s.Entries()

			if i > 0 && s.Total > first[i-1].Total {
				t.Fatalf("round %d: position %d total %v above previous %v", round, i+1, s.Total, first[i-1].Total)
			}

			var sum float64
			for _, bucket := range [][]ScoreEntry{s.Verified, s.Completed, s.Progressed} {
				for _, e := range bucket {
					if e.Score < 0 || math.IsNaN(e.Score) {
						t.Fatalf("round %d: invalid score %v", round, e.Score)
					}
					sum += e.Score
				}
			}
			if math.Abs(s.Total-sum) > 0.0005+1e-9 {
				t.Fatalf("round %d: total %v is not the rounded sum %v", round, s.Total, sum)
			}
		}

		var want int
		for _, l := range levels {
			want += 1 + len(l.Records)
		}
		if entries != want {
			t.Fatalf("round %d: expected %d entries, got %d", round, want, entries)
		}
	}
}

func generateLevels(faker *gofakeit.Faker, count int) []Level {
	players := make([]string, faker.Number(3, 15))
	for i := range players {
		players[i] = faker.Username()
	}

	levels := make([]Level, count)
	for i := range levels {
		records := make([]Record, faker.Number(0, 8))
		for j := range records {
			records[j] = Record{
				User:    players[faker.Number(0, len(players)-1)],
				Percent: faker.Number(0, 100),
				Link:    faker.URL(),
			}
		}
		levels[i] = Level{
			Path:             faker.Noun(),
			Name:             faker.Noun(),
			Verifier:         players[faker.Number(0, len(players)-1)],
			Verification:     faker.URL(),
			PercentToQualify: faker.Number(0, 100),
			Records:          records,
		}
		levels[i].SortRecords()
	}
	return levels
}

func TestSortRecords(t *testing.T) {
	level := Level{Records: []Record{
		{User: "a", Percent: 50},
		{User: "b", Percent: 100},
		{User: "c", Percent: 50},
		{User: "d", Percent: 75},
	}}
	level.SortRecords()

	got := make([]string, len(level.Records))
	for i, r := range level.Records {
		got[i] = r.User
	}
	if diff := cmp.Diff([]string{"b", "d", "a", "c"}, got); diff != "" {
		t.Fatalf("unexpected record order (-want +got):\n%s", diff)
	}
}

func TestPosition(t *testing.T) {
	standings := []PlayerStanding{{User: "a"}, {User: "b"}}
	if Position(standings, "b") != 2 {
		t.Fatalf("expected b at position 2")
	}
	if Position(standings, "zed") != 0 {
		t.Fatalf("expected unknown player at position 0")
	}
}

func TestPlayerStandingClone(t *testing.T) {
	orig := BuildLeaderboard([]Level{{
		Name:             "A",
		Verifier:         "v",
		PercentToQualify: 50,
		Records:          []Record{{User: "p", Percent: 80}},
	}}, DefaultScorePolicy())

	var holder PlayerStanding
	for _, s := range orig {
		if s.User == "p" {
			holder = s
		}
	}
	clone := holder.Clone()
	if diff := cmp.Diff(holder, clone); diff != "" {
		t.Fatalf("clone differs (-orig +clone):\n%s", diff)
	}

	*clone.Progressed[0].Percent = 1
	clone.Progressed[0].Level = "changed"
	if *holder.Progressed[0].Percent != 80 || holder.Progressed[0].Level != "A" {
		t.Fatalf("clone shares state with its source: %+v", holder.Progressed[0])
	}
}
