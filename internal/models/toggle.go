package models

// ToggleState is the result of flipping an (actor, target) pair.
type ToggleState string

const (
	// ToggleAbsent means no record exists for the pair after the toggle.
	ToggleAbsent ToggleState = "absent"
	// TogglePresent means exactly one record exists for the pair after the toggle.
	TogglePresent ToggleState = "present"
)
