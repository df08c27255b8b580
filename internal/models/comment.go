package models

type Comment struct {
	Audit

	Text     string
	TaskID   int64
	AuthorID int64
}
