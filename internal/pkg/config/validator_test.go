package config

import (
	"testing"
	"time"
)

func TestValidateCronSchedule(t *testing.T) {
	tests := []struct {
		name     string
		schedule string
		wantErr  bool
	}{
		{"daily at 5:30", "30 5 * * *", false},
		{"mondays at 8", "0 8 * * 1", false},
		{"fridays at noon", "0 12 * * 5", false},
		{"every 15 minutes", "*/15 * * * *", false},
		{"empty", "", true},
		{"garbage", "not a cron", true},
		{"too many fields", "0 0 0 0 0 0 0", true},
		{"out of range minute", "99 * * * *", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCronSchedule(tt.schedule)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCronSchedule(%q) error = %v, wantErr %v", tt.schedule, err, tt.wantErr)
			}
		})
	}
}

func TestValidateTimezone(t *testing.T) {
	if err := ValidateTimezone("UTC"); err != nil {
		t.Errorf("ValidateTimezone(UTC) error = %v", err)
	}
	if err := ValidateTimezone("America/New_York"); err != nil {
		t.Errorf("ValidateTimezone(America/New_York) error = %v", err)
	}
	if err := ValidateTimezone(""); err == nil {
		t.Error("ValidateTimezone(\"\") expected error")
	}
	if err := ValidateTimezone("Mars/Olympus_Mons"); err == nil {
		t.Error("ValidateTimezone(invalid) expected error")
	}
}

func TestValidateIntRange(t *testing.T) {
	if err := ValidateIntRange(5, 1, 10); err != nil {
		t.Errorf("ValidateIntRange(5, 1, 10) error = %v", err)
	}
	if err := ValidateIntRange(0, 1, 10); err == nil {
		t.Error("ValidateIntRange(0, 1, 10) expected error")
	}
	if err := ValidateIntRange(11, 1, 10); err == nil {
		t.Error("ValidateIntRange(11, 1, 10) expected error")
	}
}

func TestValidateDurations(t *testing.T) {
	if err := ValidatePositiveDuration(time.Second); err != nil {
		t.Errorf("ValidatePositiveDuration(1s) error = %v", err)
	}
	if err := ValidatePositiveDuration(0); err == nil {
		t.Error("ValidatePositiveDuration(0) expected error")
	}
	if err := ValidateDuration(time.Minute, time.Second, time.Hour); err != nil {
		t.Errorf("ValidateDuration(in range) error = %v", err)
	}
	if err := ValidateDuration(2*time.Hour, time.Second, time.Hour); err == nil {
		t.Error("ValidateDuration(out of range) expected error")
	}
}
