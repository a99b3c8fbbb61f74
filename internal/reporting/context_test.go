package reporting_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/upliftapp/gymstatus/internal/reporting"
)

func TestMetaFromContextDoesNotLeakMutations(t *testing.T) {
	t.Parallel()

	parent := reporting.AddTagsToContext(t.Context(), map[string]string{"port": "gyms"})
	child := reporting.AddTagsToContext(parent, map[string]string{"port": "status"})
	child = reporting.AddExtrasToContext(child, map[string]string{"gymID": "teagle"})

	// The parent context is unaffected by additions to the child
	require.NotEqual(t, reporting.MetaFromContext(parent), reporting.MetaFromContext(child))
	require.Equal(t, reporting.MetaFromContext(reporting.AddTagsToContext(t.Context(), map[string]string{"port": "gyms"})), reporting.MetaFromContext(parent))
}
