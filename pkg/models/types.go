package models

// MatchInfo describes one search hit for CLI output
type MatchInfo struct {
	Start   int    `json:"start" yaml:"start"`
	End     int    `json:"end" yaml:"end"`
	Line    int    `json:"line" yaml:"line"`
	Column  int    `json:"column" yaml:"column"`
	Context string `json:"context" yaml:"context"`
}

// SearchReport is the result of a non-interactive search
type SearchReport struct {
	Term    string      `json:"term" yaml:"term"`
	Counter string      `json:"counter" yaml:"counter"`
	Matches []MatchInfo `json:"matches" yaml:"matches"`
}

// FragmentInfo is what unwrap reports about an embedded fragment
type FragmentInfo struct {
	ID      string `json:"id" yaml:"id"`
	Content string `json:"content" yaml:"content"`
}
