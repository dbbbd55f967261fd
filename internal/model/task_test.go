package model

import "testing"

func TestParseTaskStatus(t *testing.T) {
	for _, valid := range []string{"PENDING", "IN_PROGRESS", "COMPLETED"} {
		status, err := ParseTaskStatus(valid)
		if err != nil {
			t.Errorf("ParseTaskStatus(%q) returned error: %v", valid, err)
		}
		if string(status) != valid {
			t.Errorf("ParseTaskStatus(%q) = %q", valid, status)
		}
	}

	for _, invalid := range []string{"", "pending", "DONE", "Pending"} {
		if _, err := ParseTaskStatus(invalid); err != ErrInvalidStatus {
			t.Errorf("ParseTaskStatus(%q) expected ErrInvalidStatus, got %v", invalid, err)
		}
	}
}

func TestParseTaskPriority(t *testing.T) {
	for _, valid := range []string{"LOW", "MEDIUM", "HIGH"} {
		priority, err := ParseTaskPriority(valid)
		if err != nil {
			t.Errorf("ParseTaskPriority(%q) returned error: %v", valid, err)
		}
		if string(priority) != valid {
			t.Errorf("ParseTaskPriority(%q) = %q", valid, priority)
		}
	}

	for _, invalid := range []string{"", "low", "URGENT"} {
		if _, err := ParseTaskPriority(invalid); err != ErrInvalidPriority {
			t.Errorf("ParseTaskPriority(%q) expected ErrInvalidPriority, got %v", invalid, err)
		}
	}
}
