package query

import (
	"github.com/tarek7669/mlflow/entities"
)

// Matches reports whether the model satisfies every clause. An empty
// clause list matches everything.
func Matches(m *entities.LoggedModel, clauses []Clause) bool {
	for i := range clauses {
		if !clauses[i].Matches(m) {
			return false
		}
	}
	return true
}

// Matches evaluates a single clause against one model.
func (c *Clause) Matches(m *entities.LoggedModel) bool {
	if c.IsTag {
		v, ok := m.Tags[c.Key]
		if !ok {
			// A missing tag satisfies != only.
			return c.Op == OpNe
		}
		return c.matchString(v)
	}

	if kind, _ := AttributeKind(c.Key); kind == AttrNumericKind {
		return c.matchNumeric(numericAttr(m, c.Key))
	}
	return c.matchString(stringAttr(m, c.Key))
}

func (c *Clause) matchString(v string) bool {
	switch c.Op {
	case OpEq:
		return v == c.Value.Str
	case OpNe:
		return v != c.Value.Str
	case OpLike, OpILike:
		return c.re.MatchString(v)
	default:
		return false
	}
}

func (c *Clause) matchNumeric(v int64) bool {
	if c.Value.Kind == KindFloat {
		return compareFloat(float64(v), c.Value.F64, c.Op)
	}
	return compareInt(v, c.Value.I64, c.Op)
}

func compareInt(a, b int64, op Op) bool {
	switch op {
	case OpEq:
		return a == b
	case OpNe:
		return a != b
	case OpLt:
		return a < b
	case OpLe:
		return a <= b
	case OpGt:
		return a > b
	case OpGe:
		return a >= b
	default:
		return false
	}
}

func compareFloat(a, b float64, op Op) bool {
	switch op {
	case OpEq:
		return a == b
	case OpNe:
		return a != b
	case OpLt:
		return a < b
	case OpLe:
		return a <= b
	case OpGt:
		return a > b
	case OpGe:
		return a >= b
	default:
		return false
	}
}

func stringAttr(m *entities.LoggedModel, name string) string {
	switch name {
	case AttrModelID:
		return m.ModelID
	case AttrName:
		return m.Name
	case AttrModelType:
		return m.ModelType
	case AttrStatus:
		return string(m.Status)
	case AttrSourceRunID:
		return m.SourceRunID
	default:
		return ""
	}
}

func numericAttr(m *entities.LoggedModel, name string) int64 {
	switch name {
	case AttrCreationTimestamp:
		return m.CreationTimestamp
	case AttrLastUpdatedTimestamp:
		return m.LastUpdatedTimestamp
	default:
		return 0
	}
}
