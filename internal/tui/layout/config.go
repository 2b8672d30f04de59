package layout

// LayoutConfig holds all layout-related configuration values.
type LayoutConfig struct {
	List  ListConfig
	Input InputConfig
	Text  TextConfig
}

// ListConfig holds list viewport configuration.
type ListConfig struct {
	// HeightReduction is subtracted from terminal height for list content.
	// Accounts for: app padding (1) + status line (1) + help bar (2) = 4
	HeightReduction int

	// MinHeight is the minimum list height.
	MinHeight int

	// ContentPadding is subtracted from terminal width for line rendering.
	ContentPadding int
}

// InputConfig holds text input configuration.
type InputConfig struct {
	FilterCharLimit int
	FilterWidth     int
}

// TextConfig holds text truncation configuration.
type TextConfig struct {
	// Ellipsis is the string used to indicate truncation.
	Ellipsis string
}

// DefaultConfig returns the default layout configuration.
func DefaultConfig() LayoutConfig {
	return LayoutConfig{
		List: ListConfig{
			HeightReduction: 4,
			MinHeight:       3,
			ContentPadding:  4,
		},
		Input: InputConfig{
			FilterCharLimit: 50,
			FilterWidth:     30,
		},
		Text: TextConfig{
			Ellipsis: "...",
		},
	}
}
