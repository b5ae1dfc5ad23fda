package ports

// NumberParser parses and validates the values of one dimension.
type NumberParser interface {
	// Name identifies the parser (e.g. "int[0,100]").
	Name() string

	// Parse converts text into a value accepted by the parser.
	Parse(text string) (float64, error)

	// Check validates an already numeric value.
	Check(value float64) error
}
