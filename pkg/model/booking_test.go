package model

import (
	"testing"
	"time"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from string
		to   string
		want bool
	}{
		{"pending to confirmed", StatusPending, StatusConfirmed, true},
		{"confirmed to checked-in", StatusConfirmed, StatusCheckedIn, true},
		{"checked-in to checked-out", StatusCheckedIn, StatusCheckedOut, true},
		{"pending to cancelled", StatusPending, StatusCancelled, true},
		{"confirmed to cancelled", StatusConfirmed, StatusCancelled, true},
		{"checked-in to cancelled", StatusCheckedIn, StatusCancelled, true},
		{"same status is idempotent", StatusConfirmed, StatusConfirmed, true},
		{"cancelled same status", StatusCancelled, StatusCancelled, true},
		{"pending cannot skip to checked-in", StatusPending, StatusCheckedIn, false},
		{"pending cannot skip to checked-out", StatusPending, StatusCheckedOut, false},
		{"confirmed cannot go back to pending", StatusConfirmed, StatusPending, false},
		{"checked-out cannot be cancelled", StatusCheckedOut, StatusCancelled, false},
		{"cancelled cannot be revived", StatusCancelled, StatusConfirmed, false},
		{"checked-out cannot move forward", StatusCheckedOut, StatusCheckedIn, false},
		{"unknown from", "unknown", StatusConfirmed, false},
		{"unknown to", StatusPending, "unknown", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanTransition(tt.from, tt.to); got != tt.want {
				t.Errorf("CanTransition(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestTerminalStatus(t *testing.T) {
	tests := []struct {
		status string
		want   bool
	}{
		{StatusPending, false},
		{StatusConfirmed, false},
		{StatusCheckedIn, false},
		{StatusCheckedOut, true},
		{StatusCancelled, true},
	}

	for _, tt := range tests {
		if got := TerminalStatus(tt.status); got != tt.want {
			t.Errorf("TerminalStatus(%q) = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestValidStatus(t *testing.T) {
	for _, status := range []string{StatusPending, StatusConfirmed, StatusCheckedIn, StatusCheckedOut, StatusCancelled} {
		if !ValidStatus(status) {
			t.Errorf("ValidStatus(%q) = false, want true", status)
		}
	}
	for _, status := range []string{"", "Pending", "done", "checkedin"} {
		if ValidStatus(status) {
			t.Errorf("ValidStatus(%q) = true, want false", status)
		}
	}
}

func TestValidRoomType(t *testing.T) {
	for _, roomType := range []string{RoomStandard, RoomDeluxe, RoomSuite, RoomPresidential} {
		if !ValidRoomType(roomType) {
			t.Errorf("ValidRoomType(%q) = false, want true", roomType)
		}
	}
	for _, roomType := range []string{"", "Standard", "penthouse"} {
		if ValidRoomType(roomType) {
			t.Errorf("ValidRoomType(%q) = true, want false", roomType)
		}
	}
}

func TestOverlaps(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2024, 6, d, 0, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		name                         string
		in1, out1, in2, out2         int
		want                         bool
	}{
		{"interleaved ranges", 1, 5, 3, 7, true},
		{"contained range", 1, 10, 3, 5, true},
		{"identical ranges", 1, 5, 1, 5, true},
		{"shared boundary day counts as overlap", 1, 5, 5, 9, true},
		{"shared boundary reversed", 5, 9, 1, 5, true},
		{"disjoint before", 1, 3, 4, 7, false},
		{"disjoint after", 8, 10, 4, 7, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Overlaps(day(tt.in1), day(tt.out1), day(tt.in2), day(tt.out2))
			if got != tt.want {
				t.Errorf("Overlaps(%d-%d, %d-%d) = %v, want %v", tt.in1, tt.out1, tt.in2, tt.out2, got, tt.want)
			}
		})
	}
}
