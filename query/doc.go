// Package query implements the restricted search grammar of the tracking
// store: a conjunction of comparison clauses over a fixed attribute set and
// tag references, plus order-by parsing and multi-key sorting.
//
// The grammar is deliberately small. A filter string is zero or more
// clauses joined by AND; each clause is `<identifier> <comparator>
// <literal>`:
//
//	name = 'my-model' AND tags.`release stage` ILIKE 'prod%' AND creation_timestamp > 1700000000000
//
// There is no OR, no parentheses, and no nesting. Literals resolve to a
// Kind-tagged [Value] once at parse time, based on the identifier's
// declared kind; evaluation never re-infers types. LIKE and ILIKE
// patterns compile to anchored regular expressions at parse time.
package query
