package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sebastianahumada1/studyapp/internal/content"
)

// Route is a named study route owning a content tree.
type Route struct {
	ID   string
	Name string
}

// ErrRouteNotFound is returned when a route id does not exist.
var ErrRouteNotFound = errors.New("route not found")

// ListRoutes returns all routes ordered by name.
func (s *Store) ListRoutes(ctx context.Context) ([]Route, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM routes ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list routes: %w", err)
	}
	defer rows.Close()

	var out []Route
	for rows.Next() {
		var r Route
		if err := rows.Scan(&r.ID, &r.Name); err != nil {
			return nil, fmt.Errorf("scan route: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// GetRoute returns a single route by id.
func (s *Store) GetRoute(ctx context.Context, routeID string) (Route, error) {
	var r Route
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name FROM routes WHERE id = ?`, routeID,
	).Scan(&r.ID, &r.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return Route{}, ErrRouteNotFound
	}
	if err != nil {
		return Route{}, fmt.Errorf("get route: %w", err)
	}
	return r, nil
}

// FetchContentNodes returns the flat node rows of a route. Resolution into a
// tree happens in the content package; row order is irrelevant here.
func (s *Store) FetchContentNodes(ctx context.Context, routeID string) ([]content.Node, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, parent_id, kind, display_name, order_index, estimated_time, difficulty
		 FROM content_nodes WHERE route_id = ?`, routeID)
	if err != nil {
		return nil, fmt.Errorf("fetch content nodes: %w", err)
	}
	defer rows.Close()

	var out []content.Node
	for rows.Next() {
		var n content.Node
		var kind string
		if err := rows.Scan(&n.ID, &n.ParentID, &kind, &n.DisplayName, &n.OrderIndex, &n.EstimatedTime, &n.Difficulty); err != nil {
			return nil, fmt.Errorf("scan content node: %w", err)
		}
		n.Kind = content.NodeKind(kind)
		out = append(out, n)
	}
	return out, rows.Err()
}
