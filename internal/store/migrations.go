package store

// migrations are applied in order; each bumps schema_version as its last
// statement.
var migrations = []struct {
	version int
	sql     string
}{
	{
		version: 1,
		sql: `
			CREATE TABLE IF NOT EXISTS schema_version (
				version INTEGER NOT NULL
			);

			CREATE TABLE applications (
				id            TEXT PRIMARY KEY,
				app_key       TEXT NOT NULL UNIQUE,
				company       TEXT NOT NULL,
				job_title     TEXT NOT NULL DEFAULT '',
				date_applied  TIMESTAMP NOT NULL,
				status        TEXT NOT NULL,
				last_update   TIMESTAMP NOT NULL,
				email_subject TEXT NOT NULL DEFAULT ''
			);

			CREATE INDEX idx_applications_last_update
				ON applications (last_update DESC);

			INSERT INTO schema_version (version) VALUES (1);
		`,
	},
}
