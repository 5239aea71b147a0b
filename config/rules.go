package config

// Ruleset holds the in-room toggles the simulation reads. The toggle UI that
// edits them lives outside this module.
type Ruleset struct {
	LoopingLevel     bool `yaml:"loopingLevel" json:"loopingLevel"`
	MegaBreaksTiles  bool `yaml:"megaBreaksTiles" json:"megaBreaksTiles"`
	FriendlyBumps    bool `yaml:"friendlyBumps" json:"friendlyBumps"`
	StarsOnKnockback bool `yaml:"starsOnKnockback" json:"starsOnKnockback"`
}

// DefaultRules returns the standard match rules.
func DefaultRules() Ruleset {
	return Ruleset{
		LoopingLevel:     true,
		MegaBreaksTiles:  true,
		FriendlyBumps:    true,
		StarsOnKnockback: true,
	}
}
