package models

// Settings represents the application configuration
type Settings struct {
	Preview PreviewSettings `yaml:"preview" toml:"preview"`
	Search  SearchSettings  `yaml:"search" toml:"search"`
	Output  OutputSettings  `yaml:"output" toml:"output"`
	UI      UISettings      `yaml:"ui" toml:"ui"`
	Log     LogSettings     `yaml:"log" toml:"log"`
}

// PreviewSettings controls the live preview
type PreviewSettings struct {
	File          string `yaml:"file" toml:"file"`                       // also mirror the preview to this .html file
	RemoveOnClose bool   `yaml:"remove_on_close" toml:"remove_on_close"` // delete File when the session ends
	MaxBytes      int    `yaml:"max_bytes" toml:"max_bytes"`             // 0 disables the limit
}

// SearchSettings controls in-buffer search
type SearchSettings struct {
	ContextLines   int  `yaml:"context_lines" toml:"context_lines"`
	RecomputeStale bool `yaml:"recompute_stale" toml:"recompute_stale"`
}

// OutputSettings controls where committed fragments go
type OutputSettings struct {
	File      string `yaml:"file" toml:"file"`
	Clipboard bool   `yaml:"clipboard" toml:"clipboard"`
	Stdout    bool   `yaml:"stdout" toml:"stdout"`
}

// UISettings controls UI preferences
type UISettings struct {
	ShowLineNumbers bool `yaml:"show_line_numbers" toml:"show_line_numbers"`
	ConfirmCancel   bool `yaml:"confirm_cancel" toml:"confirm_cancel"`
}

// LogSettings controls the debug log
type LogSettings struct {
	File string `yaml:"file" toml:"file"`
}

// DefaultSettings returns the default configuration
func DefaultSettings() *Settings {
	return &Settings{
		Preview: PreviewSettings{
			File:          "",
			RemoveOnClose: false,
			MaxBytes:      1 << 20,
		},
		Search: SearchSettings{
			ContextLines:   3,
			RecomputeStale: true,
		},
		Output: OutputSettings{
			File:      "",
			Clipboard: false,
			Stdout:    true,
		},
		UI: UISettings{
			ShowLineNumbers: true,
			ConfirmCancel:   true,
		},
		Log: LogSettings{
			File: "htmlpane.log",
		},
	}
}
