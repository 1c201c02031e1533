package query

import (
	"cmp"
	"slices"
	"strings"

	"github.com/tarek7669/mlflow/entities"
)

// Sort orders models in place by the given keys. After all explicit keys,
// creation_timestamp DESC and then model_id ASC are applied as tie-breaks,
// so the full ordering is total and pagination stays deterministic across
// repeated calls. With no keys this yields the default ordering
// (creation_timestamp DESC, model_id ASC).
func Sort(models []*entities.LoggedModel, keys []OrderBy) {
	slices.SortStableFunc(models, func(a, b *entities.LoggedModel) int {
		for _, k := range keys {
			c := compareAttr(a, b, k.Key)
			if c == 0 {
				continue
			}
			if !k.Ascending {
				return -c
			}
			return c
		}
		if c := cmp.Compare(b.CreationTimestamp, a.CreationTimestamp); c != 0 {
			return c
		}
		return strings.Compare(a.ModelID, b.ModelID)
	})
}

func compareAttr(a, b *entities.LoggedModel, key string) int {
	if kind, _ := AttributeKind(key); kind == AttrNumericKind {
		return cmp.Compare(numericAttr(a, key), numericAttr(b, key))
	}
	return strings.Compare(stringAttr(a, key), stringAttr(b, key))
}
