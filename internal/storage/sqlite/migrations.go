package sqlite

import "database/sql"

// migrations contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist.
// IMPORTANT: users must be created BEFORE reports due to the foreign key.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    email TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS reports (
    id TEXT PRIMARY KEY,
    owner_id TEXT NOT NULL,
    store_number TEXT NOT NULL DEFAULT '',
    time_period TEXT NOT NULL DEFAULT '',
    total_tippable_hours REAL,
    confidence REAL,
    total_pool REAL NOT NULL DEFAULT 0,
    rounding_mode TEXT NOT NULL DEFAULT 'none',
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL,
    FOREIGN KEY (owner_id) REFERENCES users(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS report_partners (
    report_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    partner_number TEXT NOT NULL,
    name TEXT NOT NULL,
    partner_global_id TEXT NOT NULL DEFAULT '',
    hours REAL NOT NULL,
    PRIMARY KEY (report_id, position),
    FOREIGN KEY (report_id) REFERENCES reports(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS report_warnings (
    report_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    message TEXT NOT NULL,
    PRIMARY KEY (report_id, position),
    FOREIGN KEY (report_id) REFERENCES reports(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_reports_owner_id ON reports(owner_id);
CREATE INDEX IF NOT EXISTS idx_report_partners_report_id ON report_partners(report_id);
CREATE INDEX IF NOT EXISTS idx_report_warnings_report_id ON report_warnings(report_id);
`

// runMigrations applies the schema to the database.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
