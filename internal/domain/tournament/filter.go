package tournament

import (
	"fmt"
	"strings"
)

type SortField string

const (
	SortStartDate SortField = "start_date"
	SortPrizePool SortField = "prize_pool"
	SortName      SortField = "name"
	SortCreatedAt SortField = "created_at"
)

const DefaultSort = "-start_date"

type ListFilter struct {
	EventType    EventType
	Status       Status
	Registration RegistrationStatus
	Mode         Mode
	Search       string
	Featured     *bool
	Sort         Sort
	Limit        int
	Offset       int
}

type Sort struct {
	Field SortField
	Desc  bool
}

// ParseSort reads "field" (ascending) or "-field" (descending).
func ParseSort(raw string) (Sort, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		raw = DefaultSort
	}
	desc := strings.HasPrefix(raw, "-")
	field := SortField(strings.TrimPrefix(raw, "-"))
	switch field {
	case SortStartDate, SortPrizePool, SortName, SortCreatedAt:
		return Sort{Field: field, Desc: desc}, nil
	default:
		return Sort{}, fmt.Errorf("unsupported sort field %q", field)
	}
}

func (s Sort) OrderBy() string {
	field := s.Field
	if field == "" {
		field = SortStartDate
		s.Desc = true
	}
	if s.Desc {
		return string(field) + " DESC NULLS LAST"
	}
	return string(field) + " ASC NULLS LAST"
}

// Matches applies the filter in memory; used by the in-memory repository.
func (f ListFilter) Matches(t Tournament) bool {
	if f.EventType != "" && t.EventType != f.EventType {
		return false
	}
	if f.Status != "" && t.Status != f.Status {
		return false
	}
	if f.Registration != "" && t.RegistrationStatus != f.Registration {
		return false
	}
	if f.Mode != "" && t.Mode != f.Mode {
		return false
	}
	if f.Featured != nil && t.Featured != *f.Featured {
		return false
	}
	if term := strings.ToLower(strings.TrimSpace(f.Search)); term != "" {
		hay := strings.ToLower(t.Name + "\n" + t.Description + "\n" + t.Region)
		if !strings.Contains(hay, term) {
			return false
		}
	}
	return true
}
