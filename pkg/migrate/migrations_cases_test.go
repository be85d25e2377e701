package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCasesMigrationContainsConstraints(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_reports_and_cases.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no cases migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE IF NOT EXISTS cases",
		"FOREIGN KEY (engineer_id) REFERENCES engineers(id) ON DELETE CASCADE",
		"FOREIGN KEY (report_id) REFERENCES reports(id) ON DELETE SET NULL",
		"CHECK (ces_rating BETWEEN 1 AND 5)",
		"DROP TABLE IF EXISTS cases",
	}
	for _, check := range checks {
		if !strings.Contains(content, check) {
			t.Fatalf("cases migration missing %q", check)
		}
	}
}

func TestRolesMigrationSeedsFlatRoleSet(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_users_and_roles.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no users/roles migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	for _, role := range []string{"'USER'", "'MODERATOR'", "'ADMIN'"} {
		if !strings.Contains(content, role) {
			t.Fatalf("roles migration missing seed %s", role)
		}
	}
}
