package migrate

import (
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"
)

// Validate checks the embedded migration files without touching a database:
// filenames must follow NNNNN_name.sql with unique, ascending versions.
func Validate() error {
	entries, err := fs.ReadDir(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("reading embedded migrations: %w", err)
	}
	if len(entries) == 0 {
		return fmt.Errorf("no embedded migrations found")
	}

	seen := map[int64]string{}
	versions := make([]int64, 0, len(entries))

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasSuffix(name, ".sql") {
			return fmt.Errorf("unexpected file %q in migrations", name)
		}

		idx := strings.Index(name, "_")
		if idx <= 0 {
			return fmt.Errorf("migration %q missing version prefix", name)
		}
		version, err := strconv.ParseInt(name[:idx], 10, 64)
		if err != nil {
			return fmt.Errorf("migration %q has non-numeric version: %w", name, err)
		}
		if prev, dup := seen[version]; dup {
			return fmt.Errorf("duplicate migration version %d (%q and %q)", version, prev, name)
		}
		seen[version] = name
		versions = append(versions, version)
	}

	sort.Slice(versions, func(i, j int) bool { return versions[i] < versions[j] })
	for i := 1; i < len(versions); i++ {
		if versions[i] == versions[i-1] {
			return fmt.Errorf("duplicate migration version %d", versions[i])
		}
	}
	return nil
}
