package store

import (
	"database/sql"
	"fmt"
)

// migrate creates the schema. All statements are idempotent so Open can run
// them on every start.
func migrate(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS routes (
			id         TEXT PRIMARY KEY,
			name       TEXT NOT NULL,
			created_at INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS content_nodes (
			id             TEXT PRIMARY KEY,
			route_id       TEXT NOT NULL REFERENCES routes(id),
			parent_id      TEXT NOT NULL DEFAULT '',
			kind           TEXT NOT NULL,
			display_name   TEXT NOT NULL,
			order_index    INTEGER NOT NULL DEFAULT 0,
			estimated_time INTEGER NOT NULL DEFAULT 0,
			difficulty     TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_content_nodes_route ON content_nodes(route_id)`,
		`CREATE TABLE IF NOT EXISTS questions (
			id            TEXT PRIMARY KEY,
			prompt_text   TEXT NOT NULL,
			options_json  TEXT NOT NULL,
			correct_key   TEXT NOT NULL,
			topic_name    TEXT NOT NULL,
			subtopic_name TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_questions_leaf ON questions(topic_name, subtopic_name)`,
		`CREATE TABLE IF NOT EXISTS attempts (
			id              TEXT PRIMARY KEY,
			session_id      TEXT NOT NULL,
			user_id         TEXT NOT NULL,
			question_id     TEXT NOT NULL REFERENCES questions(id),
			user_answer     TEXT NOT NULL,
			is_correct      INTEGER NOT NULL,
			time_spent_secs INTEGER NOT NULL,
			created_at      INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_attempts_user ON attempts(user_id, is_correct)`,
		`CREATE TABLE IF NOT EXISTS reasonings (
			id                  TEXT PRIMARY KEY,
			attempt_id          TEXT NOT NULL UNIQUE REFERENCES attempts(id),
			reasoning_text      TEXT NOT NULL,
			technique1_feedback TEXT,
			technique2_feedback TEXT,
			overall_feedback    TEXT,
			created_at          INTEGER NOT NULL
		)`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("schema: %w", err)
		}
	}
	return nil
}
