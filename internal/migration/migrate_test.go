package migration

import (
	"io/fs"
	"regexp"
	"sort"
	"testing"
)

var versionPattern = regexp.MustCompile(`^\d{4}_[a-z0-9_]+\.up\.sql$`)

func TestEmbeddedMigrationsAreWellFormed(t *testing.T) {
	files, err := fs.Glob(embeddedMigrations, migrationsDir+"/*.up.sql")
	if err != nil {
		t.Fatalf("glob embedded migrations: %v", err)
	}
	if len(files) == 0 {
		t.Fatal("expected at least one embedded migration")
	}

	if !sort.StringsAreSorted(files) {
		t.Fatal("expected glob results to be lexically sorted")
	}

	seen := make(map[string]bool)
	for _, file := range files {
		version := file[len(migrationsDir)+1:]
		if !versionPattern.MatchString(version) {
			t.Fatalf("migration %q does not match NNNN_name.up.sql", version)
		}
		prefix := version[:4]
		if seen[prefix] {
			t.Fatalf("duplicate migration number %s", prefix)
		}
		seen[prefix] = true

		contents, err := fs.ReadFile(embeddedMigrations, file)
		if err != nil {
			t.Fatalf("read %s: %v", version, err)
		}
		if len(contents) == 0 {
			t.Fatalf("migration %s is empty", version)
		}
	}
}
