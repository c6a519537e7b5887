package main

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

const migrationsTableDDL = `CREATE TABLE schema_migrations (
  name STRING(255) NOT NULL,
  applied_at TIMESTAMP NOT NULL OPTIONS (allow_commit_timestamp = true),
) PRIMARY KEY (name)`

type databasePath struct {
	ProjectID  string
	InstanceID string
	DatabaseID string
}

func parseDatabasePath(raw string) (databasePath, error) {
	parts := strings.Split(strings.Trim(raw, "/"), "/")
	if len(parts) != 6 || parts[0] != "projects" || parts[2] != "instances" || parts[4] != "databases" {
		return databasePath{}, fmt.Errorf("expected projects/P/instances/I/databases/D, got %q", raw)
	}
	for _, p := range []string{parts[1], parts[3], parts[5]} {
		if p == "" {
			return databasePath{}, fmt.Errorf("empty segment in %q", raw)
		}
	}
	return databasePath{ProjectID: parts[1], InstanceID: parts[3], DatabaseID: parts[5]}, nil
}

func (d databasePath) Project() string  { return "projects/" + d.ProjectID }
func (d databasePath) Instance() string { return d.Project() + "/instances/" + d.InstanceID }
func (d databasePath) String() string   { return d.Instance() + "/databases/" + d.DatabaseID }

// pendingMigrations returns the base names not yet applied, in lexical order.
func pendingMigrations(files []string, applied map[string]bool) []string {
	var pending []string
	for _, f := range files {
		name := filepath.Base(f)
		if !applied[name] {
			pending = append(pending, name)
		}
	}
	sort.Strings(pending)
	return pending
}

func splitDDLStatements(content string) []string {
	// Remove comments and empty lines
	lines := strings.Split(content, "\n")
	var cleaned []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}
		cleaned = append(cleaned, line)
	}

	var result []string
	for _, stmt := range strings.Split(strings.Join(cleaned, "\n"), ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt != "" {
			result = append(result, stmt)
		}
	}
	return result
}
