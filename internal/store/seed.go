package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// SeedFile is the JSON layout accepted by the seed command: routes with
// their content nodes, plus a flat question bank addressed by topic and
// subtopic display names.
type SeedFile struct {
	Routes    []SeedRoute    `json:"routes"`
	Questions []SeedQuestion `json:"questions"`
}

type SeedRoute struct {
	ID    string     `json:"id"`
	Name  string     `json:"name"`
	Nodes []SeedNode `json:"nodes"`
}

type SeedNode struct {
	ID            string `json:"id"`
	ParentID      string `json:"parent_id"`
	Kind          string `json:"kind"`
	DisplayName   string `json:"display_name"`
	OrderIndex    int    `json:"order_index"`
	EstimatedTime int    `json:"estimated_time"`
	Difficulty    string `json:"difficulty"`
}

type SeedQuestion struct {
	ID           string   `json:"id"`
	PromptText   string   `json:"prompt_text"`
	Options      []string `json:"options"`
	CorrectKey   string   `json:"correct_key"`
	TopicName    string   `json:"topic_name"`
	SubtopicName string   `json:"subtopic_name"`
}

// SeedStats reports what an import wrote.
type SeedStats struct {
	Routes    int
	Nodes     int
	Questions int
}

// LoadSeedFile reads and parses a seed JSON file.
func LoadSeedFile(path string) (SeedFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return SeedFile{}, fmt.Errorf("read seed file: %w", err)
	}
	var f SeedFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return SeedFile{}, fmt.Errorf("parse seed file: %w", err)
	}
	return f, nil
}

// ImportSeed upserts the seed content in one transaction. Re-importing the
// same file is safe; rows are replaced by id.
func (s *Store) ImportSeed(ctx context.Context, f SeedFile) (SeedStats, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SeedStats{}, fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback()

	var stats SeedStats
	now := time.Now().Unix()

	for _, r := range f.Routes {
		if r.ID == "" || r.Name == "" {
			return SeedStats{}, fmt.Errorf("route needs id and name")
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO routes (id, name, created_at) VALUES (?, ?, ?)
			 ON CONFLICT (id) DO UPDATE SET name = excluded.name`,
			r.ID, r.Name, now); err != nil {
			return SeedStats{}, fmt.Errorf("import route %s: %w", r.ID, err)
		}
		stats.Routes++

		for _, n := range r.Nodes {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO content_nodes (id, route_id, parent_id, kind, display_name, order_index, estimated_time, difficulty)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
				 ON CONFLICT (id) DO UPDATE SET
					parent_id = excluded.parent_id,
					kind = excluded.kind,
					display_name = excluded.display_name,
					order_index = excluded.order_index,
					estimated_time = excluded.estimated_time,
					difficulty = excluded.difficulty`,
				n.ID, r.ID, n.ParentID, n.Kind, n.DisplayName, n.OrderIndex, n.EstimatedTime, n.Difficulty); err != nil {
				return SeedStats{}, fmt.Errorf("import node %s: %w", n.ID, err)
			}
			stats.Nodes++
		}
	}

	for _, q := range f.Questions {
		if len(q.Options) < 2 {
			return SeedStats{}, fmt.Errorf("question %s needs at least two options", q.ID)
		}
		optionsJSON, err := json.Marshal(q.Options)
		if err != nil {
			return SeedStats{}, fmt.Errorf("encode options for %s: %w", q.ID, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO questions (id, prompt_text, options_json, correct_key, topic_name, subtopic_name)
			 VALUES (?, ?, ?, ?, ?, ?)
			 ON CONFLICT (id) DO UPDATE SET
				prompt_text = excluded.prompt_text,
				options_json = excluded.options_json,
				correct_key = excluded.correct_key,
				topic_name = excluded.topic_name,
				subtopic_name = excluded.subtopic_name`,
			q.ID, q.PromptText, string(optionsJSON), q.CorrectKey, q.TopicName, q.SubtopicName); err != nil {
			return SeedStats{}, fmt.Errorf("import question %s: %w", q.ID, err)
		}
		stats.Questions++
	}

	if err := tx.Commit(); err != nil {
		return SeedStats{}, fmt.Errorf("commit import: %w", err)
	}
	return stats, nil
}
