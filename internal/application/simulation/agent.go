package simulation

// Role classifies a settler's job for behavior weighting.
type Role string

const (
	RoleTrader     Role = "TRADER"
	RoleEngineer   Role = "ENGINEER"
	RoleAreologist Role = "AREOLOGIST"
	RolePilot      Role = "PILOT"
	RoleGeneralist Role = "GENERALIST"
)

// Settler is one simulated colonist. It satisfies the scheduler's agent
// port: behaviors weight themselves by the settler's role.
type Settler struct {
	name         string
	role         Role
	jobModifiers map[string]float64
}

// NewSettler creates a settler with a role and optional per-behavior job
// modifiers keyed by behavior name. Behaviors without an entry get 1.
func NewSettler(name string, role Role, jobModifiers map[string]float64) *Settler {
	if jobModifiers == nil {
		jobModifiers = map[string]float64{}
	}
	return &Settler{name: name, role: role, jobModifiers: jobModifiers}
}

func (s *Settler) Name() string { return s.name }
func (s *Settler) Role() Role   { return s.role }

// JobModifier returns the settler's weighting for a behavior. 1 is neutral.
func (s *Settler) JobModifier(behavior string) float64 {
	if m, ok := s.jobModifiers[behavior]; ok {
		return m
	}
	return 1.0
}
