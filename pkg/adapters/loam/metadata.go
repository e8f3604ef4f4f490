package loam

// EntryMetadata is the frontmatter of a Markdown machine document.
// It uses "mapstructure" tags to match standard Frontmatter/YAML keys.
//
//	---
//	name: swap
//	title: Swap "test" and "nice"
//	machine: |
//	  t e s n i
//	  _
//	  0
//	  1
//	  1 t 2 n R
//	---
//	Prose describing the machine.
type EntryMetadata struct {
	Name  string `json:"name" mapstructure:"name"`
	Title string `json:"title" mapstructure:"title"`

	// Machine holds the description in the five-section text format.
	Machine string `json:"machine" mapstructure:"machine"`
}
