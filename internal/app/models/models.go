package models

// Semester identifies a semester within an academic year
type Semester string

const (
	SemesterOne Semester = "1"
	SemesterTwo Semester = "2"
)

// OverrideSource identifies which tier a resolved course list came from
type OverrideSource string

const (
	SourceUser    OverrideSource = "user"
	SourceGlobal  OverrideSource = "global"
	SourceDefault OverrideSource = "default"
)
