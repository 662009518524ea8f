package matchdata

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
)

// Resource types found in a match document's included list.
const (
	TypeRoster      = "roster"
	TypeParticipant = "participant"
	TypeAsset       = "asset"
)

// Document is a JSON:API match document as served by the stats API.
type Document struct {
	Data     Resource   `json:"data"`
	Included []Resource `json:"included"`
}

type Resource struct {
	Type          string                  `json:"type"`
	ID            string                  `json:"id"`
	Attributes    json.RawMessage         `json:"attributes"`
	Relationships map[string]Relationship `json:"relationships"`
}

type Relationship struct {
	Data json.RawMessage `json:"data"`
}

type resourceIdentifier struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// IDs returns the related ids whether data holds an array, a single object or null.
func (r Relationship) IDs() []string {
	raw := bytes.TrimSpace(r.Data)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}

	if raw[0] == '{' {
		var one resourceIdentifier
		if err := sonic.Unmarshal(raw, &one); err != nil || one.ID == "" {
			return nil
		}
		return []string{one.ID}
	}

	var many []resourceIdentifier
	if err := sonic.Unmarshal(raw, &many); err != nil {
		return nil
	}
	out := make([]string, 0, len(many))
	for _, item := range many {
		if item.ID != "" {
			out = append(out, item.ID)
		}
	}
	return out
}

type MatchAttributes struct {
	CreatedAt     *string         `json:"createdAt"`
	Duration      *float64        `json:"duration"`
	GameMode      *string         `json:"gameMode"`
	MapName       *string         `json:"mapName"`
	MatchType     *string         `json:"matchType"`
	ShardID       *string         `json:"shardId"`
	TitleID       *string         `json:"titleId"`
	SeasonState   *string         `json:"seasonState"`
	IsCustomMatch *bool           `json:"isCustomMatch"`
	Tags          json.RawMessage `json:"tags"`
	Stats         json.RawMessage `json:"stats"`
}

type RosterAttributes struct {
	Stats RosterStats     `json:"stats"`
	Won   json.RawMessage `json:"won"`
}

type RosterStats struct {
	Rank   *float64   `json:"rank"`
	TeamID FlexString `json:"teamId"`
}

// ParticipantStats mirrors the stats object of a participant. Every field is a pointer
// so absent values stay distinguishable from zero.
type ParticipantStats struct {
	DBNOs           *float64 `json:"DBNOs"`
	Assists         *float64 `json:"assists"`
	Boosts          *float64 `json:"boosts"`
	DamageDealt     *float64 `json:"damageDealt"`
	DeathType       *string  `json:"deathType"`
	HeadshotKills   *float64 `json:"headshotKills"`
	Heals           *float64 `json:"heals"`
	KillPlace       *float64 `json:"killPlace"`
	KillStreaks     *float64 `json:"killStreaks"`
	Kills           *float64 `json:"kills"`
	LongestKill     *float64 `json:"longestKill"`
	Name            *string  `json:"name"`
	PlayerID        *string  `json:"playerId"`
	Revives         *float64 `json:"revives"`
	RideDistance    *float64 `json:"rideDistance"`
	RoadKills       *float64 `json:"roadKills"`
	SwimDistance    *float64 `json:"swimDistance"`
	TeamKills       *float64 `json:"teamKills"`
	TimeSurvived    *float64 `json:"timeSurvived"`
	VehicleDestroys *float64 `json:"vehicleDestroys"`
	WalkDistance    *float64 `json:"walkDistance"`
	WeaponsAcquired *float64 `json:"weaponsAcquired"`
	WinPlace        *float64 `json:"winPlace"`
}

type AssetAttributes struct {
	URL         *string `json:"URL"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
	CreatedAt   *string `json:"createdAt"`
}

// FlexString accepts a JSON string or number; team ids arrive as either.
type FlexString struct {
	Value string
	Valid bool
}

func (f *FlexString) UnmarshalJSON(b []byte) error {
	raw := bytes.TrimSpace(b)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		*f = FlexString{}
		return nil
	}
	if raw[0] == '"' {
		var s string
		if err := sonic.Unmarshal(raw, &s); err != nil {
			return err
		}
		*f = FlexString{Value: s, Valid: true}
		return nil
	}

	n, err := strconv.ParseFloat(string(raw), 64)
	if err != nil {
		return crerr.Wrapf(err, "flex string: unsupported value %s", raw)
	}
	*f = FlexString{Value: strconv.FormatFloat(n, 'f', -1, 64), Valid: true}
	return nil
}

// Parse decodes one match document.
func Parse(raw []byte) (Document, error) {
	var doc Document
	if err := sonic.Unmarshal(raw, &doc); err != nil {
		return Document{}, crerr.Mark(crerr.Wrap(err, "decode match document"), ErrMalformedPayload)
	}
	return doc, nil
}

// MatchID returns the trimmed data.id of a raw payload without a full decode of included.
func MatchID(raw []byte) (string, error) {
	var head struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := sonic.Unmarshal(raw, &head); err != nil {
		return "", crerr.Mark(crerr.Wrap(err, "decode match id"), ErrMalformedPayload)
	}
	id := strings.TrimSpace(head.Data.ID)
	if id == "" {
		return "", crerr.Wrap(ErrMalformedPayload, "match id is missing")
	}
	return id, nil
}

// SplitPayloads accepts a single document or a JSON array of documents.
func SplitPayloads(raw []byte) ([][]byte, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, crerr.Wrap(ErrMalformedPayload, "empty payload")
	}
	if trimmed[0] != '[' {
		return [][]byte{trimmed}, nil
	}

	var items []json.RawMessage
	if err := sonic.Unmarshal(trimmed, &items); err != nil {
		return nil, crerr.Mark(crerr.Wrap(err, "decode payload array"), ErrMalformedPayload)
	}
	out := make([][]byte, 0, len(items))
	for _, item := range items {
		out = append(out, []byte(item))
	}
	return out, nil
}

func decodeAttributes(raw json.RawMessage, dst any) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	return sonic.Unmarshal(raw, dst)
}
