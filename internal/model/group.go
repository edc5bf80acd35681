package model

// GeneralGroupID is the id of the group every installation starts with
const GeneralGroupID = "general"

// Group is a named container partitioning tasks
type Group struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// DefaultGroup returns the pre-existing General group
func DefaultGroup() Group {
	return Group{ID: GeneralGroupID, Name: "General"}
}

// FindGroup returns the group with the given id, falling back to the General group
func FindGroup(groups []Group, id string) Group {
	for _, g := range groups {
		if g.ID == id {
			return g
		}
	}
	return DefaultGroup()
}
