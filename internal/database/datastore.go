package database

// DataStore defines the unified interface for all data operations.
// It is composed of the smaller domain interfaces so consumers can depend
// on only what they use.
type DataStore interface {
	ProjectRepository
	ResponsibleRepository
}

var _ DataStore = (*Repository)(nil)
