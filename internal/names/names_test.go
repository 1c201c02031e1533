package names

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRandom(t *testing.T) {
	pattern := regexp.MustCompile(`^[a-z]+-[a-z]+-\d{1,3}$`)
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		name := Random()
		require.Regexp(t, pattern, name)
		seen[name] = true
	}
	// 100 draws from a space this large should not all collide.
	require.Greater(t, len(seen), 1)
}
