package types

// ID type aliases give the integers flowing through the board a domain meaning.

// ProjectID identifies a unique project on the board
type ProjectID int

// ResponsibleID identifies a person who can be assigned to projects
type ResponsibleID int

// RequestToken tags a single in-flight status change. Tokens are issued in
// strictly increasing order by the coordinator and are never reused.
type RequestToken uint64

// ToInt converts type alias back to int for compatibility with database code
func (id ProjectID) ToInt() int {
	return int(id)
}

func (id ResponsibleID) ToInt() int {
	return int(id)
}

// ProjectIDFromInt creates a ProjectID from an int value
func ProjectIDFromInt(i int) ProjectID {
	return ProjectID(i)
}

func ResponsibleIDFromInt(i int) ResponsibleID {
	return ResponsibleID(i)
}
