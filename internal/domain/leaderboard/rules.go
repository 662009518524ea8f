package leaderboard

import (
	"sort"
	"strconv"
)

// PointsTable scores a roster result: placement points by rank plus points per kill.
type PointsTable struct {
	Placement     map[int]int
	PointsPerKill int
}

// DefaultPointsTable is the PUBG esports scoring table.
func DefaultPointsTable() PointsTable {
	return PointsTable{
		Placement: map[int]int{
			1: 10,
			2: 6,
			3: 5,
			4: 4,
			5: 3,
			6: 2,
			7: 1,
			8: 1,
		},
		PointsPerKill: 1,
	}
}

func (p PointsTable) PlacementPoints(rank *int) int {
	if rank == nil {
		return 0
	}
	return p.Placement[*rank]
}

// Build folds roster results into standings. Rosters without a team id are keyed by roster id.
// Standings are ordered by total points, then wins, then kills, then team id.
func Build(results []RosterResult, table PointsTable) []Standing {
	byTeam := make(map[string]*Standing)
	matchesByTeam := make(map[string]map[string]struct{})
	for _, r := range results {
		key := r.TeamID
		if key == "" {
			key = r.RosterID
		}

		s, ok := byTeam[key]
		if !ok {
			name := r.TeamName
			if name == "" {
				name = "Team " + key
			}
			s = &Standing{TeamID: key, TeamName: name}
			byTeam[key] = s
			matchesByTeam[key] = make(map[string]struct{})
		}

		if _, seen := matchesByTeam[key][r.MatchID]; !seen {
			matchesByTeam[key][r.MatchID] = struct{}{}
			s.Matches++
		}
		if r.Won != nil && *r.Won {
			s.Wins++
		} else if r.Won == nil && r.Rank != nil && *r.Rank == 1 {
			s.Wins++
		}
		s.Kills += r.Kills
		s.PlacementPoints += table.PlacementPoints(r.Rank)
		s.KillPoints += r.Kills * table.PointsPerKill
	}

	out := make([]Standing, 0, len(byTeam))
	for _, s := range byTeam {
		s.TotalPoints = s.PlacementPoints + s.KillPoints
		out = append(out, *s)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].TotalPoints != out[j].TotalPoints {
			return out[i].TotalPoints > out[j].TotalPoints
		}
		if out[i].Wins != out[j].Wins {
			return out[i].Wins > out[j].Wins
		}
		if out[i].Kills != out[j].Kills {
			return out[i].Kills > out[j].Kills
		}
		return lessTeamID(out[i].TeamID, out[j].TeamID)
	})
	for i := range out {
		out[i].Position = i + 1
	}
	return out
}

// numeric team ids ("2" < "10") sort as numbers
func lessTeamID(a, b string) bool {
	na, errA := strconv.Atoi(a)
	nb, errB := strconv.Atoi(b)
	if errA == nil && errB == nil {
		return na < nb
	}
	return a < b
}
