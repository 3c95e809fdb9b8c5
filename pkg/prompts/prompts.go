package prompts

import (
	"strings"

	"github.com/cdanielsoh/Image-feature-extraction-workshop/pkg/attributes"
)

// The exercise ladder: each builder returns the text sent alongside the
// image, one step more constrained than the previous.

// Describe is the first exercise: no guidance at all, so learners see how
// unconstrained model output drifts in length and focus.
func Describe() string {
	return "Describe the clothing item in this image."
}

// AttributeQuestions narrows the request to the attributes the workshop
// cares about, but still allows free-form phrasing.
func AttributeQuestions() string {
	return `Look at the clothing item in this image and answer the following:
1. What type of garment is it?
2. What is its main color?
3. What pattern does it have, if any?
4. What is the sleeve length?
5. How would you describe the fit?`
}

// Constrained restricts the answers to closed vocabularies. The answer is
// still prose, which is exactly the problem the final exercise fixes.
func Constrained() string {
	var b strings.Builder
	b.WriteString("Identify the attributes of the clothing item in this image.\n")
	b.WriteString("For each attribute, pick a value ONLY from its allowed list:\n\n")
	b.WriteString("- garment type: " + strings.Join(attributes.Categories, ", ") + "\n")
	b.WriteString("- pattern: " + strings.Join(attributes.Patterns, ", ") + "\n")
	b.WriteString("- sleeve length: " + strings.Join(attributes.SleeveLengths, ", ") + "\n")
	b.WriteString("- fit: " + strings.Join(attributes.Fits, ", ") + "\n\n")
	b.WriteString("Also name the main color. If an attribute cannot be determined, say so.")
	return b.String()
}

// StrictJSON is the final exercise: the model must return only a JSON
// object with the exact field set, values taken from the vocabularies.
// The reply of this exercise is parsed programmatically.
func StrictJSON() string {
	var b strings.Builder
	b.WriteString(`You are an assistant that extracts clothing attributes from product photos.
Respond with exactly one JSON object and nothing else. No prose, no
markdown, no code fences, no explanations.

Required format:
{
  "category": string,      // strictly one of: `)
	b.WriteString(strings.Join(attributes.Categories, " | "))
	b.WriteString(`
  "color": string,         // main color, lowercase english word
  "pattern": string,       // strictly one of: `)
	b.WriteString(strings.Join(attributes.Patterns, " | "))
	b.WriteString(`
  "sleeve_length": string, // strictly one of: `)
	b.WriteString(strings.Join(attributes.SleeveLengths, " | "))
	b.WriteString(`
  "fit": string,           // strictly one of: `)
	b.WriteString(strings.Join(attributes.Fits, " | "))
	b.WriteString(`
  "material": string       // best guess, e.g. cotton, wool, polyester
}

Rules:
1. The reply must start with '{' and end with '}'.
2. Every field above is required except material.
3. Do not use values outside the allowed lists.
4. Do not add fields that are not listed.
5. Do not include any text outside the JSON, not even a newline before it.`)
	return b.String()
}
