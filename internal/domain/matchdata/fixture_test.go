package matchdata

import (
	"fmt"
	"testing"

	"github.com/bytedance/sonic"
)

// buildPayload renders a match document with the given number of rosters and
// participants per roster. Participant ids are "p-<roster>-<n>".
func buildPayload(t *testing.T, matchID string, rosters, perRoster int) []byte {
	t.Helper()

	included := make([]map[string]any, 0, rosters*(perRoster+1)+1)
	for r := 1; r <= rosters; r++ {
		refs := make([]map[string]any, 0, perRoster)
		for n := 1; n <= perRoster; n++ {
			pid := fmt.Sprintf("p-%d-%d", r, n)
			refs = append(refs, map[string]any{"type": "participant", "id": pid})
			included = append(included, map[string]any{
				"type": "participant",
				"id":   pid,
				"attributes": map[string]any{
					"stats": map[string]any{
						"playerId":    "account." + pid,
						"name":        "player-" + pid,
						"kills":       n,
						"damageDealt": 101.5,
						"winPlace":    r,
					},
				},
			})
		}
		included = append(included, map[string]any{
			"type": "roster",
			"id":   fmt.Sprintf("r-%d", r),
			"attributes": map[string]any{
				"won":   map[bool]string{true: "true", false: "false"}[r == 1],
				"stats": map[string]any{"rank": r, "teamId": r},
			},
			"relationships": map[string]any{
				"participants": map[string]any{"data": refs},
			},
		})
	}
	included = append(included, map[string]any{
		"type": "asset",
		"id":   "asset-1",
		"attributes": map[string]any{
			"URL":         "https://telemetry-cdn.pubg.com/" + matchID + ".json",
			"name":        "telemetry",
			"description": "",
			"createdAt":   "2026-01-02T10:00:00Z",
		},
	})

	doc := map[string]any{
		"data": map[string]any{
			"type": "match",
			"id":   matchID,
			"attributes": map[string]any{
				"createdAt":     "2026-01-02T09:30:00Z",
				"duration":      1834,
				"gameMode":      "squad-fpp",
				"mapName":       "Baltic_Main",
				"matchType":     "custom",
				"shardId":       "steam",
				"titleId":       "bluehole-pubg",
				"isCustomMatch": false,
				"stats":         nil,
				"tags":          map[string]any{"region": "sea"},
			},
		},
		"included": included,
	}

	raw, err := sonic.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}
	return raw
}

func mustParse(t *testing.T, raw []byte) Document {
	t.Helper()
	doc, err := Parse(raw)
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return doc
}
