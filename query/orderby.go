package query

import (
	"strings"
)

// OrderBy is one parsed ordering key.
type OrderBy struct {
	Key       string
	Ascending bool
}

// ParseOrderBy parses a list of `"<attribute> [ASC|DESC]"` clauses.
// Ordering keys come from the fixed attribute set only; tag references are
// not orderable.
func ParseOrderBy(clauses []string) ([]OrderBy, error) {
	if len(clauses) == 0 {
		return nil, nil
	}

	out := make([]OrderBy, 0, len(clauses))
	for _, raw := range clauses {
		fields := strings.Fields(raw)
		if len(fields) == 0 || len(fields) > 2 {
			return nil, parseErrorf("Invalid order by clause '%s'", raw)
		}

		key := fields[0]
		if _, ok := AttributeKind(key); !ok {
			return nil, parseErrorf("Invalid order by key '%s' specified. Valid keys are %s",
				key, validAttributeList())
		}

		ob := OrderBy{Key: key, Ascending: true}
		if len(fields) == 2 {
			switch strings.ToUpper(fields[1]) {
			case "ASC":
			case "DESC":
				ob.Ascending = false
			default:
				return nil, parseErrorf("Invalid ordering key in order by clause '%s'", raw)
			}
		}
		out = append(out, ob)
	}
	return out, nil
}
