package model

// Selection describes which mutant a raw configuration value activated.
type Selection struct {
	Raw        int64 // value as read from configuration
	Configured bool  // a raw value was supplied
	ID         MutantID
	Family     Family
	Offset     int  // variant offset within Family
	Enabled    bool // an id other than None is active
}
