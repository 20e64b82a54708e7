package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"dockhand/internal/dto"
)

// joinPorts flattens port specs for the TEXT column; splitPorts restores them.
func joinPorts(ports []string) string {
	return strings.Join(ports, ",")
}

func splitPorts(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

// CreateDeployment inserts a new deployment record.
func (s *Store) CreateDeployment(ctx context.Context, d *dto.Deployment) error {
	now := time.Now().UTC()
	d.CreatedAt = now
	d.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO deployments (id, name, image, tag, node_id, replicas, container_id, state, ports, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		d.ID, d.Name, d.Image, d.Tag, d.NodeID, d.Replicas, d.ContainerID, d.State, joinPorts(d.Ports), d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert deployment %s: %w", d.Name, err)
	}
	return nil
}

// GetDeployment fetches a deployment by id.
func (s *Store) GetDeployment(ctx context.Context, id string) (*dto.Deployment, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, image, tag, node_id, replicas, container_id, state, ports, created_at, updated_at
		FROM deployments WHERE id = ?`, id)
	return scanDeployment(row)
}

// GetDeploymentByName fetches a deployment by its unique name.
func (s *Store) GetDeploymentByName(ctx context.Context, name string) (*dto.Deployment, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, image, tag, node_id, replicas, container_id, state, ports, created_at, updated_at
		FROM deployments WHERE name = ?`, name)
	return scanDeployment(row)
}

func scanDeployment(row *sql.Row) (*dto.Deployment, error) {
	var d dto.Deployment
	var ports string
	err := row.Scan(&d.ID, &d.Name, &d.Image, &d.Tag, &d.NodeID, &d.Replicas, &d.ContainerID, &d.State, &ports, &d.CreatedAt, &d.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan deployment: %w", err)
	}
	d.Ports = splitPorts(ports)
	return &d, nil
}

// ListDeployments returns all deployments ordered by creation time.
func (s *Store) ListDeployments(ctx context.Context) ([]dto.Deployment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, image, tag, node_id, replicas, container_id, state, ports, created_at, updated_at
		FROM deployments ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list deployments: %w", err)
	}
	defer rows.Close()

	var out []dto.Deployment
	for rows.Next() {
		var d dto.Deployment
		var ports string
		if err := rows.Scan(&d.ID, &d.Name, &d.Image, &d.Tag, &d.NodeID, &d.Replicas, &d.ContainerID, &d.State, &ports, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan deployment: %w", err)
		}
		d.Ports = splitPorts(ports)
		out = append(out, d)
	}
	return out, rows.Err()
}

// UpdateDeployment persists mutable fields of a deployment.
func (s *Store) UpdateDeployment(ctx context.Context, d *dto.Deployment) error {
	d.UpdatedAt = time.Now().UTC()

	res, err := s.db.ExecContext(ctx, `
		UPDATE deployments
		SET image = ?, tag = ?, replicas = ?, container_id = ?, state = ?, ports = ?, updated_at = ?
		WHERE id = ?`,
		d.Image, d.Tag, d.Replicas, d.ContainerID, d.State, joinPorts(d.Ports), d.UpdatedAt, d.ID,
	)
	if err != nil {
		return fmt.Errorf("update deployment %s: %w", d.ID, err)
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

// DeleteDeployment removes a deployment record.
func (s *Store) DeleteDeployment(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM deployments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete deployment %s: %w", id, err)
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
