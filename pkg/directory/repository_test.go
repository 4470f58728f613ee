package directory

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRepository(t *testing.T) {
	source := NewMemorySource()
	repository := NewRepository(source, 100*time.Millisecond)
	ctx := context.Background()

	testRecord := &StaffRecord{
		Email:    "jdoe@brightlineschools.org",
		JobTitle: "Teacher",
		Location: "Langston Hughes Academy",
		Status:   StatusActive,
	}
	source.AddStaff(testRecord)

	t.Run("get existing record", func(t *testing.T) {
		record, err := repository.GetStaff(ctx, "jdoe@brightlineschools.org")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if record.JobTitle != testRecord.JobTitle {
			t.Errorf("expected job title %q, got %q", testRecord.JobTitle, record.JobTitle)
		}
	})

	t.Run("lookup is case-insensitive", func(t *testing.T) {
		record, err := repository.GetStaff(ctx, "JDoe@BrightlineSchools.org")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if record.Email != testRecord.Email {
			t.Errorf("expected %q, got %q", testRecord.Email, record.Email)
		}
	})

	t.Run("missing record", func(t *testing.T) {
		_, err := repository.GetStaff(ctx, "nobody@brightlineschools.org")
		if !errors.Is(err, ErrStaffNotFound) {
			t.Errorf("expected ErrStaffNotFound, got %v", err)
		}
	})

	t.Run("caching behavior", func(t *testing.T) {
		if _, err := repository.GetStaff(ctx, "jdoe@brightlineschools.org"); err != nil {
			t.Fatalf("first access failed: %v", err)
		}

		// Modify source directly
		source.AddStaff(&StaffRecord{
			Email:    "jdoe@brightlineschools.org",
			JobTitle: "Principal",
			Status:   StatusActive,
		})

		// Should still get old data from cache
		record, err := repository.GetStaff(ctx, "jdoe@brightlineschools.org")
		if err != nil {
			t.Fatalf("cached access failed: %v", err)
		}
		if record.JobTitle != "Teacher" {
			t.Error("cache returned updated data instead of cached data")
		}

		// After expiry the new record is visible
		time.Sleep(110 * time.Millisecond)
		record, err = repository.GetStaff(ctx, "jdoe@brightlineschools.org")
		if err != nil {
			t.Fatalf("post-expiry access failed: %v", err)
		}
		if record.JobTitle != "Principal" {
			t.Error("expected refreshed record after cache expiry")
		}
	})

	t.Run("forced refresh", func(t *testing.T) {
		source.AddStaff(&StaffRecord{
			Email:    "jdoe@brightlineschools.org",
			JobTitle: "Dean",
			Status:   StatusActive,
		})
		if err := repository.RefreshStaff(ctx, "jdoe@brightlineschools.org"); err != nil {
			t.Fatalf("refresh failed: %v", err)
		}
		record, err := repository.GetStaff(ctx, "jdoe@brightlineschools.org")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if record.JobTitle != "Dean" {
			t.Error("refresh did not replace cached record")
		}
	})

	t.Run("staff exists", func(t *testing.T) {
		exists, err := repository.StaffExists(ctx, "jdoe@brightlineschools.org")
		if err != nil || !exists {
			t.Errorf("StaffExists = %v, %v", exists, err)
		}
		exists, err = repository.StaffExists(ctx, "nobody@brightlineschools.org")
		if err != nil || exists {
			t.Errorf("StaffExists for missing = %v, %v", exists, err)
		}
	})
}

func TestEmploymentStatusWorking(t *testing.T) {
	cases := []struct {
		status EmploymentStatus
		want   bool
	}{
		{StatusActive, true},
		{StatusLeaveOfAbsence, true},
		{StatusTerminated, false},
		{EmploymentStatus("Resigned"), false},
		{EmploymentStatus(""), false},
	}
	for _, tc := range cases {
		if got := tc.status.Working(); got != tc.want {
			t.Errorf("Working(%q) = %v, want %v", tc.status, got, tc.want)
		}
	}
}
