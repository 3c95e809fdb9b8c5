package attributes

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Garment is the attribute set the final exercises ask the model to fill.
// Fields mirror the JSON contract given in the strict prompt; the model's
// answer is decoded as-is, values outside the vocabularies are reported as
// feedback rather than rejected.
type Garment struct {
	Category     string `json:"category"`
	Color        string `json:"color"`
	Pattern      string `json:"pattern"`
	SleeveLength string `json:"sleeve_length"`
	Fit          string `json:"fit"`
	Material     string `json:"material,omitempty"`
}

// Closed vocabularies used by the constrained prompts. Anything outside
// these lists is flagged to the learner when parsing the reply.
var (
	Categories = []string{
		"tshirt",   // short-sleeve t-shirt
		"shirt",    // button-up or dress shirt
		"blouse",   // blouse
		"hoodie",   // hooded sweatshirt
		"sweater",  // sweater, incl. turtleneck
		"top",      // crop top or tank top
		"other",
	}

	Patterns = []string{
		"solid",
		"striped",
		"checkered",
		"floral",
		"graphic",
		"tie_dye",
		"other",
	}

	SleeveLengths = []string{
		"sleeveless",
		"short",
		"long",
		"three_quarter",
		"unknown",
	}

	Fits = []string{
		"slim",
		"regular",
		"oversized",
		"loose",
	}
)

// TrimFences strips a markdown code fence around a model reply so the
// payload can be decoded. Models often wrap JSON in ```json ... ``` even
// when told not to.
func TrimFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// Parse decodes a model reply into a Garment. The returned warnings list
// names every field whose value is not in its vocabulary; warnings never
// fail the parse.
func Parse(reply string) (Garment, []string, error) {
	var g Garment
	payload := TrimFences(reply)
	if payload == "" {
		return g, nil, fmt.Errorf("empty reply")
	}
	if err := json.Unmarshal([]byte(payload), &g); err != nil {
		return g, nil, fmt.Errorf("decode attributes: %w", err)
	}

	var warnings []string
	check := func(field, value string, vocab []string) {
		if value == "" {
			warnings = append(warnings, fmt.Sprintf("%s is missing", field))
			return
		}
		if !contains(vocab, value) {
			warnings = append(warnings, fmt.Sprintf("%s=%q is not in the allowed list", field, value))
		}
	}
	check("category", g.Category, Categories)
	check("pattern", g.Pattern, Patterns)
	check("sleeve_length", g.SleeveLength, SleeveLengths)
	check("fit", g.Fit, Fits)
	// color and material are free text in every exercise

	return g, warnings, nil
}

func contains(list []string, v string) bool {
	for i := range list {
		if list[i] == v {
			return true
		}
	}
	return false
}
