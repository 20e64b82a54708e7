package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"dockhand/internal/dto"
)

// CreateNode inserts a new node record.
func (s *Store) CreateNode(ctx context.Context, n *dto.Node) error {
	n.LastSeen = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO nodes (id, name, type, address, status, last_seen)
		VALUES (?, ?, ?, ?, ?, ?)`,
		n.ID, n.Name, n.Type, n.Address, n.Status, n.LastSeen,
	)
	if err != nil {
		return fmt.Errorf("insert node %s: %w", n.Name, err)
	}
	return nil
}

// GetNode fetches a node by id.
func (s *Store) GetNode(ctx context.Context, id string) (*dto.Node, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, type, address, status, last_seen FROM nodes WHERE id = ?`, id)

	var n dto.Node
	err := row.Scan(&n.ID, &n.Name, &n.Type, &n.Address, &n.Status, &n.LastSeen)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan node: %w", err)
	}
	return &n, nil
}

// ListNodes returns all registered nodes ordered by name.
func (s *Store) ListNodes(ctx context.Context) ([]dto.Node, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, type, address, status, last_seen FROM nodes ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list nodes: %w", err)
	}
	defer rows.Close()

	var out []dto.Node
	for rows.Next() {
		var n dto.Node
		if err := rows.Scan(&n.ID, &n.Name, &n.Type, &n.Address, &n.Status, &n.LastSeen); err != nil {
			return nil, fmt.Errorf("scan node: %w", err)
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// UpdateNodeStatus records the latest observed status of a node.
func (s *Store) UpdateNodeStatus(ctx context.Context, id, status string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE nodes SET status = ?, last_seen = ? WHERE id = ?`,
		status, time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("update node status %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteNode removes a node record.
func (s *Store) DeleteNode(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM nodes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete node %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
