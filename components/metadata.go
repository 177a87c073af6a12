package components

// FieldDescriptor describes a component field for UI display.
type FieldDescriptor struct {
	ID     string // Unique identifier
	Label  string // Display name
	Format string // Printf format (e.g., "%d")
	Group  string // Logical grouping
}

// AgentFieldDescriptors returns metadata for the fields shown in the best-agent panel.
func AgentFieldDescriptors() []FieldDescriptor {
	return []FieldDescriptor{
		{ID: "fitness", Label: "Checkpoint", Format: "%d", Group: "progress"},
		{ID: "generation", Label: "Born", Format: "gen %d", Group: "lineage"},
		{ID: "slot", Label: "Slot", Format: "#%d", Group: "lineage"},
		{ID: "parent_fitness", Label: "Parent", Format: "%d", Group: "lineage"},
	}
}

// Values returns the display values for AgentFieldDescriptors in order.
func (l Lineage) Values(f Fitness) []int {
	return []int{f.Checkpoint, l.Generation, l.Slot, l.ParentFitness}
}
