package record

import (
	"sort"
	"strings"
	"time"

	"github.com/safesistemas/cejoana/pkg/search"
)

// Sort orders records in place by key. Absent values sort last regardless of
// direction; ties keep their relative order and then fall back to the id.
func Sort(s *Schema, records []Record) {
	if s == nil || s.Sort.Field == "" || len(records) < 2 {
		return
	}
	f, ok := s.Field(s.Sort.Field)
	if !ok {
		return
	}
	desc := s.Sort.Descending
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i].Get(f.Name), records[j].Get(f.Name)
		an, bn := IsEmpty(a), IsEmpty(b)
		switch {
		case an && bn:
			return records[i].ID < records[j].ID
		case an:
			return false
		case bn:
			return true
		}
		c := Compare(a, b)
		if c == 0 {
			return records[i].ID < records[j].ID
		}
		if desc {
			return c > 0
		}
		return c < 0
	})
}

// Compare orders two canonical values of the same kind.
func Compare(a, b any) int {
	switch x := a.(type) {
	case string:
		y, _ := b.(string)
		if c := strings.Compare(search.Normalize(x), search.Normalize(y)); c != 0 {
			return c
		}
		return strings.Compare(x, y)
	case float64:
		y, _ := b.(float64)
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
		return 0
	case bool:
		y, _ := b.(bool)
		switch {
		case x == y:
			return 0
		case !x:
			return -1
		}
		return 1
	case time.Time:
		y, _ := b.(time.Time)
		return x.Compare(y)
	case ID:
		y, _ := b.(ID)
		xn, xerr := x.Int64()
		yn, yerr := y.Int64()
		if xerr == nil && yerr == nil {
			switch {
			case xn < yn:
				return -1
			case xn > yn:
				return 1
			}
			return 0
		}
		return strings.Compare(string(x), string(y))
	}
	return 0
}
