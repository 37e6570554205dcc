package db

import (
	"errors"
	"testing"
)

func TestIsUniqueViolation(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		constraint string
		want       bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "postgres", err: errors.New(`ERROR: duplicate key value violates unique constraint "favorite_slots_pkey"`), want: true},
		{name: "sqlite", err: errors.New("UNIQUE constraint failed: favorite_slots.name"), want: true},
		{name: "named match", err: errors.New(`violates "favorite_slots_pkey"`), constraint: "favorite_slots_pkey", want: true},
		{name: "named miss", err: errors.New("duplicate key value"), constraint: "other_key", want: false},
		{name: "unrelated", err: errors.New("connection refused"), want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsUniqueViolation(tc.err, tc.constraint); got != tc.want {
				t.Fatalf("IsUniqueViolation() = %v, want %v", got, tc.want)
			}
		})
	}
}
