// Package research defines the market research profile that anchors the
// creative stages. The research stage runs first; every creative stage
// receives the resulting profile verbatim.
package research

import (
	"encoding/json"
	"fmt"

	"github.com/adforgehq/adgen/internal/artifact"
)

// Angle is one ranked marketing angle. Models sometimes emit angles as bare
// strings instead of objects, so UnmarshalJSON accepts both shapes.
type Angle struct {
	Rank          int      `json:"rank,omitempty"`
	Name          string   `json:"name"`
	Persona       string   `json:"persona,omitempty"`
	Justification string   `json:"justification,omitempty"`
	Hooks         []string `json:"hooks,omitempty"`
}

// UnmarshalJSON accepts either an angle object or a plain string naming the
// angle.
func (a *Angle) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*a = Angle{Name: name}
		return nil
	}

	type angleObject Angle
	var obj angleObject
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("unmarshal angle: %w", err)
	}
	*a = Angle(obj)
	return nil
}

// Profile is the minimal market research artifact.
type Profile struct {
	Product      string            `json:"product"`
	Summary      string            `json:"summary,omitempty"`
	Pains        []string          `json:"pains"`
	Desires      []string          `json:"desires"`
	Demographics map[string]string `json:"demographics,omitempty"`
	Angles       []Angle           `json:"angles"`
}

// Validate rejects profiles missing the fields the creative stages depend on.
func (p *Profile) Validate() error {
	if len(p.Pains) == 0 {
		return fmt.Errorf("research profile has no pains")
	}
	if len(p.Angles) == 0 {
		return fmt.Errorf("research profile has no angles")
	}
	return nil
}

// TopAngles returns the first n angles, honoring rank order when the model
// provided ranks.
func (p *Profile) TopAngles(n int) []Angle {
	ranked := make([]Angle, len(p.Angles))
	copy(ranked, p.Angles)
	for i := 1; i < len(ranked); i++ {
		for j := i; j > 0 && less(ranked[j], ranked[j-1]); j-- {
			ranked[j], ranked[j-1] = ranked[j-1], ranked[j]
		}
	}
	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n]
}

// less orders ranked angles before unranked ones; unranked keep input order.
func less(a, b Angle) bool {
	if a.Rank == 0 || b.Rank == 0 {
		return false
	}
	return a.Rank < b.Rank
}

// Save writes the profile to its artifact path in the layout.
func Save(layout artifact.Layout, p *Profile) error {
	return artifact.SaveJSON(layout.ArtifactPath(artifact.StageResearch), p)
}

// Load reads a previously saved profile.
func Load(layout artifact.Layout) (*Profile, error) {
	var p Profile
	if err := artifact.LoadJSON(layout.ArtifactPath(artifact.StageResearch), &p); err != nil {
		return nil, err
	}
	return &p, nil
}
