package query

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tarek7669/mlflow/entities"
)

func testModel() *entities.LoggedModel {
	return &entities.LoggedModel{
		ModelID:              "m-0123abcd",
		ExperimentID:         "1",
		Name:                 "clumsy-wren-123",
		SourceRunID:          "run-1",
		ModelType:            "test",
		Status:               entities.StatusReady,
		CreationTimestamp:    1000,
		LastUpdatedTimestamp: 2000,
		Tags:                 map[string]string{"stage": "prod", "owner": "alice"},
	}
}

func mustParse(t *testing.T, filter string) []Clause {
	t.Helper()
	clauses, err := ParseFilter(filter)
	require.NoError(t, err)
	return clauses
}

func TestMatches(t *testing.T) {
	m := testModel()
	tests := []struct {
		filter string
		want   bool
	}{
		{"", true},
		{"model_id = 'm-0123abcd'", true},
		{"model_id != 'm-0123abcd'", false},
		{"name = 'clumsy-wren-123'", true},
		{"model_type = 'test'", true},
		{"model_type != 'test'", false},
		{"model_type LIKE 'te%'", true},
		{"model_type LIKE 'TE%'", false},
		{"model_type ILIKE 'TE%'", true},
		{"model_type LIKE 't_st'", true},
		{"model_type LIKE 't_t'", false},
		{"status = 'READY'", true},
		{"status ILIKE 'ready'", true},
		{"status LIKE 'ready'", false},
		{"source_run_id = 'run-1'", true},
		{"creation_timestamp = 1000", true},
		{"creation_timestamp != 1000", false},
		{"creation_timestamp < 1001", true},
		{"creation_timestamp <= 1000", true},
		{"creation_timestamp > 1000", false},
		{"creation_timestamp >= 1000", true},
		{"last_updated_timestamp > 1999.5", true},
		{"tags.stage = 'prod'", true},
		{"tags.`stage` = 'prod'", true},
		{"tags.stage != 'prod'", false},
		{"tags.stage LIKE 'pro%'", true},
		{"tags.stage ILIKE 'PROD'", true},
		// Missing tag keys satisfy != only.
		{"tags.missing = 'x'", false},
		{"tags.missing != 'x'", true},
		{"tags.missing LIKE '%'", false},
		{"tags.missing ILIKE '%'", false},
		// Conjunction.
		{"model_type = 'test' AND status = 'READY'", true},
		{"model_type = 'test' AND status = 'PENDING'", false},
	}
	for _, tt := range tests {
		t.Run(tt.filter, func(t *testing.T) {
			require.Equal(t, tt.want, Matches(m, mustParse(t, tt.filter)))
		})
	}
}

func TestMatches_LikeSpecialCharacters(t *testing.T) {
	m := testModel()
	m.Name = "a.b+c"

	// Regexp metacharacters in patterns are literal.
	require.True(t, Matches(m, mustParse(t, "name LIKE 'a.b+c'")))
	require.False(t, Matches(m, mustParse(t, "name LIKE 'aXb+c'")))
	require.True(t, Matches(m, mustParse(t, "name LIKE 'a.b%'")))
	require.True(t, Matches(m, mustParse(t, "name LIKE 'a_b+c'")))
}

func TestMatches_ReferenceFilter(t *testing.T) {
	// Property check against an in-memory reference: status='READY'
	// returns exactly the READY subset.
	models := []*entities.LoggedModel{
		{ModelID: "m-1", Status: entities.StatusReady},
		{ModelID: "m-2", Status: entities.StatusPending},
		{ModelID: "m-3", Status: entities.StatusReady},
		{ModelID: "m-4", Status: entities.StatusFailed},
	}
	clauses := mustParse(t, "status = 'READY'")

	var got []string
	for _, m := range models {
		if Matches(m, clauses) {
			got = append(got, m.ModelID)
		}
	}
	require.Equal(t, []string{"m-1", "m-3"}, got)
}
