package models

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strconv"
	"time"
)

// OverrideCourse is a single entry in an override payload. It carries the
// course identifier plus denormalized display fields so the saved list can be
// returned verbatim without touching the catalog.
type OverrideCourse struct {
	ID          int64   `json:"id"`
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	CreditHours float64 `json:"credit_hours"`
	Optional    bool    `json:"optional,omitempty"`
}

// OverridePayload is an ordered course list saved by a user
type OverridePayload []OverrideCourse

// Signature returns a stable fingerprint of the payload used to count
// equivalent submissions. Equivalence is the set of course IDs: two payloads
// that list the same courses in a different order share a signature.
func (p OverridePayload) Signature() string {
	ids := make([]int64, 0, len(p))
	for _, c := range p {
		ids = append(ids, c.ID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	h := sha256.New()
	var prev int64 = -1
	for _, id := range ids {
		if id == prev {
			continue // duplicate entries do not change the course set
		}
		prev = id
		h.Write([]byte(strconv.FormatInt(id, 10)))
		h.Write([]byte{','})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// CourseOverride is one user's saved course selection for a specific
// (program, academic year) pair. At most one exists per (user, program, year).
type CourseOverride struct {
	ID           int64           `json:"id" db:"id"`
	UserID       int64           `json:"userId" db:"user_id"`
	ProgramID    int64           `json:"programId" db:"program_id"`
	AcademicYear int             `json:"academicYear" db:"academic_year"`
	Payload      OverridePayload `json:"payload" db:"payload"`
	Signature    string          `json:"-" db:"signature"`
	CreatedAt    time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time       `json:"updatedAt" db:"updated_at"`
}

// GlobalCourseOverride is the crowd-approved course list for a
// (program, academic year) pair, visible to all authenticated users.
type GlobalCourseOverride struct {
	ID           int64           `json:"id" db:"id"`
	ProgramID    int64           `json:"programId" db:"program_id"`
	AcademicYear int             `json:"academicYear" db:"academic_year"`
	Payload      OverridePayload `json:"payload" db:"payload"`
	Signature    string          `json:"-" db:"signature"`
	CreatedAt    time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time       `json:"updatedAt" db:"updated_at"`
}
