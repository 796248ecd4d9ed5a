package listdomain

import (
	"bytes"
	"cmp"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
)

// Record is a player's documented attempt on a level.
type Record struct {
	User    string `json:"user"`
	Percent int    `json:"percent"`
	Link    string `json:"link"`
	Hz      int    `json:"hz,omitempty"`
}

// IsCompletion reports whether the record is a full 100% completion.
func (r Record) IsCompletion() bool {
	return r.Percent == 100
}

// Level is a ranked challenge as read from its JSON document.
// Rank is never stored here; it is the 1-based position in the ordered list.
type Level struct {
	Path             string   `json:"path"`
	ID               int      `json:"id"`
	Name             string   `json:"name"`
	Author           string   `json:"author"`
	Creators         []string `json:"creators"`
	Verifier         string   `json:"verifier"`
	Verification     string   `json:"verification"`
	PercentToQualify int      `json:"percentToQualify"`
	Password         Password `json:"password"`
	Records          []Record `json:"records"`
}

// SortRecords orders records by descending percent. Equal percents keep document order.
func (l *Level) SortRecords() {
	slices.SortStableFunc(l.Records, func(a, b Record) int {
		return cmp.Compare(b.Percent, a.Percent)
	})
}

// Password is a pass-through level password. Level documents carry it as a
// string or a bare number.
type Password string

func (p *Password) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*p = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = Password(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("password must be a string or number: %w", err)
	}
	if _, err := strconv.ParseFloat(n.String(), 64); err != nil {
		return fmt.Errorf("password must be a string or number: %w", err)
	}
	*p = Password(n.String())
	return nil
}

// Clone returns a copy of l that shares no slices with it.
func (l Level) Clone() Level {
	l.Creators = slices.Clone(l.Creators)
	l.Records = slices.Clone(l.Records)
	return l
}
