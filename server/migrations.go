package server

import (
	"github.com/jmoiron/sqlx"
)

// migrate creates the schema. Every statement is idempotent so it runs on
// each start; the statements are valid for both sqlite and postgres.
func migrate(db *sqlx.DB) error {
	migrations := []string{
		migrationGroups,
		migrationGeneralGroup,
		migrationCategories,
		migrationTasks,
		migrationTasksGroupIndex,
		migrationTasksCategoryIndex,
	}

	for _, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return err
		}
	}

	return nil
}

const migrationGroups = `
CREATE TABLE IF NOT EXISTS task_groups (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    created_at BIGINT NOT NULL DEFAULT 0
)`

const migrationGeneralGroup = `
INSERT INTO task_groups (id, name, created_at) VALUES ('general', 'General', 0)
ON CONFLICT (id) DO NOTHING`

const migrationCategories = `
CREATE TABLE IF NOT EXISTS categories (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    color TEXT NOT NULL,
    created_at BIGINT NOT NULL
)`

const migrationTasks = `
CREATE TABLE IF NOT EXISTS tasks (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    status TEXT NOT NULL,
    priority TEXT NOT NULL,
    category_id TEXT NOT NULL DEFAULT '',
    due_date TEXT NOT NULL DEFAULT '',
    group_id TEXT NOT NULL REFERENCES task_groups(id),
    created_at BIGINT NOT NULL
)`

const migrationTasksGroupIndex = `CREATE INDEX IF NOT EXISTS idx_tasks_group ON tasks(group_id)`

const migrationTasksCategoryIndex = `CREATE INDEX IF NOT EXISTS idx_tasks_category ON tasks(category_id)`
