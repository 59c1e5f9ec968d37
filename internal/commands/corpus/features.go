package corpuscmd

// FeatureGates exposes runtime feature toggles consulted by corpus command
// handlers. Callers supply closures that read from corpus.Config.Features so
// handlers stay decoupled from configuration while honouring flags.
type FeatureGates struct {
	ImportEnabled func() bool
	LintEnabled   func() bool
}

func (g FeatureGates) importEnabled() bool {
	if g.ImportEnabled == nil {
		return true
	}
	return g.ImportEnabled()
}

func (g FeatureGates) lintEnabled() bool {
	if g.LintEnabled == nil {
		return true
	}
	return g.LintEnabled()
}
