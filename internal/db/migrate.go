package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Every statement is idempotent so the
// full list is replayed on each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateLegacyType(db); err != nil {
		return fmt.Errorf("migrating legacy course type: %w", err)
	}
	return nil
}

// migrateLegacyType copies the module code stored in the legacy TYPE column
// into module for rows that predate the module column.
func migrateLegacyType(db *sql.DB) error {
	var hasType int
	err := db.QueryRow(`SELECT COUNT(*) FROM pragma_table_info('courses') WHERE LOWER(name) = 'type'`).Scan(&hasType)
	if err != nil {
		return fmt.Errorf("inspecting courses columns: %w", err)
	}
	if hasType == 0 {
		return nil
	}
	if _, err := db.Exec(`UPDATE courses SET module = UPPER(TRIM(type))
		WHERE module IS NULL AND type IS NOT NULL AND TRIM(type) <> ''`); err != nil {
		return fmt.Errorf("copying type into module: %w", err)
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS courses (
		id               INTEGER PRIMARY KEY AUTOINCREMENT,
		uuid             TEXT,
		semester         INTEGER NOT NULL CHECK(semester BETWEEN 1 AND 6),
		code             TEXT NOT NULL CHECK(TRIM(code) <> ''),
		title            TEXT NOT NULL DEFAULT '',
		credits          REAL NOT NULL DEFAULT 0,
		is_autumn_course INTEGER NOT NULL DEFAULT 0,
		is_spring_course INTEGER NOT NULL DEFAULT 0,
		curriculum       TEXT NOT NULL DEFAULT '',
		module           TEXT,
		comment          TEXT NOT NULL DEFAULT '',
		grade            TEXT NOT NULL DEFAULT '',
		created_at       TEXT NOT NULL DEFAULT '',
		updated_at       TEXT NOT NULL DEFAULT ''
	)`,

	// Columns missing from databases created before catalog enrichment.
	`ALTER TABLE courses ADD COLUMN uuid TEXT`,
	`ALTER TABLE courses ADD COLUMN curriculum TEXT NOT NULL DEFAULT ''`,
	`ALTER TABLE courses ADD COLUMN module TEXT`,
	`ALTER TABLE courses ADD COLUMN created_at TEXT NOT NULL DEFAULT ''`,
	`ALTER TABLE courses ADD COLUMN updated_at TEXT NOT NULL DEFAULT ''`,

	`CREATE INDEX IF NOT EXISTS idx_courses_code ON courses(code)`,
	`CREATE INDEX IF NOT EXISTS idx_courses_uuid ON courses(uuid)`,
	`CREATE INDEX IF NOT EXISTS idx_courses_semester ON courses(semester)`,
}
