package domain_test

import (
	"testing"

	"github.com/aeronica/complaint-portal/internal/domain"
)

func TestParseComplaintStatus(t *testing.T) {
	for _, valid := range []string{"pending", "in-progress", "completed"} {
		st, ok := domain.ParseComplaintStatus(valid)
		if !ok {
			t.Errorf("ParseComplaintStatus(%q) rejected a valid status", valid)
		}
		if string(st) != valid {
			t.Errorf("ParseComplaintStatus(%q) = %q", valid, st)
		}
	}

	for _, invalid := range []string{"", "done", "PENDING", "in progress", "resolved"} {
		if _, ok := domain.ParseComplaintStatus(invalid); ok {
			t.Errorf("ParseComplaintStatus(%q) accepted an invalid status", invalid)
		}
	}
}

func TestToPublicRedactsPhone(t *testing.T) {
	phone := "123"
	desc := "loud"
	c := domain.Complaint{
		ID:          1,
		Phone:       &phone,
		Description: &desc,
		Status:      domain.ComplaintPending,
	}

	p := c.ToPublic()
	if p.ID != c.ID {
		t.Errorf("public id = %d, want %d", p.ID, c.ID)
	}
	if p.Status != c.Status {
		t.Errorf("public status = %q, want %q", p.Status, c.Status)
	}
	if p.Description == nil || *p.Description != desc {
		t.Errorf("public description = %v, want %q", p.Description, desc)
	}
}
