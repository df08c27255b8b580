package models

// Status is a task lifecycle label from the admin-managed catalog.
// Names are globally unique.
type Status struct {
	Audit

	Name string
}
