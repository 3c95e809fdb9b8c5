package attributes_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cdanielsoh/Image-feature-extraction-workshop/pkg/attributes"
)

func TestParsePlainJSON(t *testing.T) {
	reply := `{"category":"tshirt","color":"white","pattern":"solid","sleeve_length":"short","fit":"regular","material":"cotton"}`

	g, warnings, err := attributes.Parse(reply)
	require.NoError(t, err)
	require.Empty(t, warnings)
	require.Equal(t, "tshirt", g.Category)
	require.Equal(t, "white", g.Color)
	require.Equal(t, "solid", g.Pattern)
	require.Equal(t, "short", g.SleeveLength)
	require.Equal(t, "regular", g.Fit)
	require.Equal(t, "cotton", g.Material)
}

func TestParseStripsCodeFences(t *testing.T) {
	reply := "```json\n{\"category\":\"hoodie\",\"color\":\"gray\",\"pattern\":\"solid\",\"sleeve_length\":\"long\",\"fit\":\"oversized\"}\n```"

	g, warnings, err := attributes.Parse(reply)
	require.NoError(t, err)
	require.Empty(t, warnings)
	require.Equal(t, "hoodie", g.Category)
}

func TestParseBareFence(t *testing.T) {
	reply := "```\n{\"category\":\"sweater\",\"color\":\"burgundy\",\"pattern\":\"solid\",\"sleeve_length\":\"long\",\"fit\":\"slim\"}\n```"

	g, _, err := attributes.Parse(reply)
	require.NoError(t, err)
	require.Equal(t, "sweater", g.Category)
}

func TestParseWarnsOnUnknownValues(t *testing.T) {
	reply := `{"category":"poncho","color":"teal","pattern":"paisley","sleeve_length":"short","fit":"regular"}`

	_, warnings, err := attributes.Parse(reply)
	require.NoError(t, err)
	require.Len(t, warnings, 2)
	require.Contains(t, warnings[0], "category")
	require.Contains(t, warnings[1], "pattern")
}

func TestParseWarnsOnMissingFields(t *testing.T) {
	reply := `{"category":"tshirt","color":"white"}`

	_, warnings, err := attributes.Parse(reply)
	require.NoError(t, err)
	require.NotEmpty(t, warnings)
}

func TestParseMalformedJSON(t *testing.T) {
	_, _, err := attributes.Parse("The shirt appears to be a white cotton t-shirt.")
	require.Error(t, err)
}

func TestParseEmptyReply(t *testing.T) {
	_, _, err := attributes.Parse("  \n ")
	require.Error(t, err)
}

func TestTrimFences(t *testing.T) {
	require.Equal(t, `{"a":1}`, attributes.TrimFences("```json\n{\"a\":1}\n```"))
	require.Equal(t, `{"a":1}`, attributes.TrimFences("```\n{\"a\":1}\n```"))
	require.Equal(t, `{"a":1}`, attributes.TrimFences(`{"a":1}`))
}
