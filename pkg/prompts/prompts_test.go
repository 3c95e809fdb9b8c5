package prompts_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cdanielsoh/Image-feature-extraction-workshop/pkg/attributes"
	"github.com/cdanielsoh/Image-feature-extraction-workshop/pkg/prompts"
)

func TestConstrainedListsVocabularies(t *testing.T) {
	p := prompts.Constrained()
	for _, v := range attributes.Categories {
		require.Contains(t, p, v)
	}
	for _, v := range attributes.Patterns {
		require.Contains(t, p, v)
	}
	for _, v := range attributes.SleeveLengths {
		require.Contains(t, p, v)
	}
	for _, v := range attributes.Fits {
		require.Contains(t, p, v)
	}
}

func TestStrictJSONNamesEveryField(t *testing.T) {
	p := prompts.StrictJSON()
	for _, field := range []string{"category", "color", "pattern", "sleeve_length", "fit", "material"} {
		require.Contains(t, p, `"`+field+`"`)
	}
	require.Contains(t, p, "JSON")
	require.Contains(t, p, "nothing else")
}

func TestLadderGetsMoreConstrained(t *testing.T) {
	// Each rung should add instruction text, not remove it.
	require.Less(t, len(prompts.Describe()), len(prompts.AttributeQuestions()))
	require.Less(t, len(prompts.AttributeQuestions()), len(prompts.Constrained()))
	require.Less(t, len(prompts.Constrained()), len(prompts.StrictJSON()))
}

func TestDescribeIsUnconstrained(t *testing.T) {
	p := prompts.Describe()
	require.False(t, strings.Contains(p, "JSON"))
	for _, v := range attributes.Categories {
		if v == "other" {
			continue
		}
		require.NotContains(t, p, v)
	}
}
