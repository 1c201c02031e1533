package query

import (
	"sort"
	"strings"
)

// AttrKind is the declared kind of a searchable attribute.
type AttrKind uint8

const (
	// AttrStringKind marks attributes compared as strings.
	AttrStringKind AttrKind = iota
	// AttrNumericKind marks attributes compared as int64 numbers.
	AttrNumericKind
)

// Searchable attribute names.
const (
	AttrModelID              = "model_id"
	AttrName                 = "name"
	AttrModelType            = "model_type"
	AttrStatus               = "status"
	AttrSourceRunID          = "source_run_id"
	AttrCreationTimestamp    = "creation_timestamp"
	AttrLastUpdatedTimestamp = "last_updated_timestamp"
)

// attributes is the fixed set of searchable attributes and their kinds.
// status and model_type compare as strings even though status is drawn
// from an enumerated set.
var attributes = map[string]AttrKind{
	AttrModelID:              AttrStringKind,
	AttrName:                 AttrStringKind,
	AttrModelType:            AttrStringKind,
	AttrStatus:               AttrStringKind,
	AttrSourceRunID:          AttrStringKind,
	AttrCreationTimestamp:    AttrNumericKind,
	AttrLastUpdatedTimestamp: AttrNumericKind,
}

// AttributeKind resolves name against the fixed attribute set.
func AttributeKind(name string) (AttrKind, bool) {
	kind, ok := attributes[name]
	return kind, ok
}

func validAttributeList() string {
	names := make([]string, 0, len(attributes))
	for name := range attributes {
		names = append(names, name)
	}
	sort.Strings(names)
	return "'" + strings.Join(names, "', '") + "'"
}
