package polaris

// Phase identifies one leg of the particle field's morph cycle.
type Phase uint8

const (
	PhaseApproachRing      Phase = iota // far origin ring collapses into the disc
	PhaseRingToOrganic                  // disc loosens into the organic cluster
	PhaseOrganicToApproach              // cluster flies back out to the origin ring
	phaseCount
)

// Next returns the phase that follows p. The cycle wraps after
// PhaseOrganicToApproach.
func (p Phase) Next() Phase {
	return p.Advance(1)
}

// Advance returns the phase n steps after p.
func (p Phase) Advance(n int) Phase {
	k := (int(p) + n) % int(phaseCount)
	if k < 0 {
		k += int(phaseCount)
	}
	return Phase(k)
}

func (p Phase) String() string {
	switch p {
	case PhaseApproachRing:
		return "approach-ring"
	case PhaseRingToOrganic:
		return "ring-to-organic"
	case PhaseOrganicToApproach:
		return "organic-to-approach"
	default:
		return "unknown"
	}
}
