package dto

// Definition is the structured form of a machine description (YAML documents,
// Markdown frontmatter, API payloads). It uses "mapstructure" tags so that generic
// maps produced by any YAML decoder can be mapped onto it.
type Definition struct {
	Name        string `json:"name" yaml:"name,omitempty" mapstructure:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`

	Alphabet  []string `json:"alphabet" yaml:"alphabet,flow" mapstructure:"alphabet"`
	Blank     string   `json:"blank" yaml:"blank" mapstructure:"blank"`
	Accepting []uint   `json:"accepting" yaml:"accepting,flow" mapstructure:"accepting"`
	Initial   *uint    `json:"initial" yaml:"initial" mapstructure:"initial"`

	// Transitions use the text rule syntax: "state symbol state symbol direction".
	Transitions []string `json:"transitions" yaml:"transitions" mapstructure:"transitions"`
}
