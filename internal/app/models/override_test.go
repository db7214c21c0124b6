package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignatureIgnoresOrder(t *testing.T) {
	a := OverridePayload{
		{ID: 1, Code: "CS101", Name: "Intro to Programming"},
		{ID: 2, Code: "CS102", Name: "Data Structures"},
	}
	b := OverridePayload{
		{ID: 2, Code: "CS102", Name: "Data Structures"},
		{ID: 1, Code: "CS101", Name: "Intro to Programming"},
	}

	assert.Equal(t, a.Signature(), b.Signature())
}

func TestSignatureIgnoresDisplayFields(t *testing.T) {
	a := OverridePayload{{ID: 1, Code: "CS101", Name: "Intro", CreditHours: 3}}
	b := OverridePayload{{ID: 1, Code: "CS-101", Name: "Introduction", CreditHours: 4}}

	assert.Equal(t, a.Signature(), b.Signature())
}

func TestSignatureIgnoresDuplicates(t *testing.T) {
	a := OverridePayload{{ID: 1}, {ID: 2}, {ID: 2}}
	b := OverridePayload{{ID: 1}, {ID: 2}}

	assert.Equal(t, a.Signature(), b.Signature())
}

func TestSignatureDiffersForDifferentSets(t *testing.T) {
	a := OverridePayload{{ID: 1}, {ID: 2}}
	b := OverridePayload{{ID: 1}, {ID: 3}}

	assert.NotEqual(t, a.Signature(), b.Signature())
}

func TestSignatureNotAmbiguousAcrossIDBoundaries(t *testing.T) {
	// {1, 23} and {12, 3} must not collide.
	a := OverridePayload{{ID: 1}, {ID: 23}}
	b := OverridePayload{{ID: 12}, {ID: 3}}

	assert.NotEqual(t, a.Signature(), b.Signature())
}
