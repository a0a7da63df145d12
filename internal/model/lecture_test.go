package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyDerivedFields(t *testing.T) {
	tests := []struct {
		name        string
		basePrice   int
		maxPrice    int
		location    string
		wantFree    bool
		wantOffline bool
	}{
		{"both prices zero and no location", 0, 0, "", true, false},
		{"base price set", 100, 0, "", false, false},
		{"max price set", 0, 100, "", false, false},
		{"location set", 0, 0, "Seoul", true, true},
		{"blank location is online", 0, 0, "   ", true, false},
		{"paid offline", 100, 200, "Busan", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := &Lecture{BasePrice: tt.basePrice, MaxPrice: tt.maxPrice, Location: tt.location}
			l.ApplyDerivedFields()
			assert.Equal(t, tt.wantFree, l.Free)
			assert.Equal(t, tt.wantOffline, l.Offline)
		})
	}
}

func TestApplyDerivedFieldsIdempotent(t *testing.T) {
	l := &Lecture{BasePrice: 100, MaxPrice: 200, Location: "Seoul"}
	l.ApplyDerivedFields()
	free, offline := l.Free, l.Offline
	l.ApplyDerivedFields()
	assert.Equal(t, free, l.Free)
	assert.Equal(t, offline, l.Offline)
}

func TestApplyOverwritesMappedFieldsOnly(t *testing.T) {
	owner := &UserInfo{ID: 1, Email: "owner@example.com"}
	l := &Lecture{ID: 7, LectureStatus: StatusPublished, Owner: owner, Free: true}

	req := &LectureRequest{Name: "Go Workshop", BasePrice: 100, MaxPrice: 200}
	req.Apply(l)

	assert.Equal(t, int64(7), l.ID)
	assert.Equal(t, StatusPublished, l.LectureStatus)
	assert.Same(t, owner, l.Owner)
	assert.Equal(t, "Go Workshop", l.Name)
	assert.Equal(t, 100, l.BasePrice)
}

func TestHasRole(t *testing.T) {
	u := &UserInfo{Roles: "ROLE_USER,ROLE_ADMIN"}
	assert.True(t, u.HasRole(RoleUser))
	assert.True(t, u.HasRole(RoleAdmin))
	assert.False(t, u.HasRole("ROLE_OTHER"))

	u = &UserInfo{Roles: "ROLE_USER"}
	assert.False(t, u.HasRole(RoleAdmin))
}

func TestErrorsOrdering(t *testing.T) {
	errs := NewErrors("lectureRequest")
	errs.Reject("wrongPrices", "global first in, still last out")
	errs.RejectValue("basePrice", "wrongPrice", "BasePrice is wrong", 100)

	entries := errs.Entries()
	assert.Len(t, entries, 2)
	assert.Equal(t, "basePrice", entries[0].Field)
	assert.Equal(t, "100", entries[0].RejectedValue)
	assert.Empty(t, entries[1].Field)
	assert.Equal(t, "wrongPrices", entries[1].Code)
}
