// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package layout

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/mosaic/internal/platform/database/schema"
	"github.com/taibuivan/mosaic/internal/platform/dberr"
)

// # PostgreSQL Repository

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed composition store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// # Regions

var regionColumns = fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s",
	schema.CompositionRegion.ID, schema.CompositionRegion.Name, schema.CompositionRegion.Slug,
	schema.CompositionRegion.ExtendRule, schema.CompositionRegion.Position,
	schema.CompositionRegion.AvailableComponentTypes,
	schema.CompositionRegion.CreatedAt, schema.CompositionRegion.UpdatedAt,
)

func scanRegion(row pgx.Row) (*Region, error) {
	region := &Region{}
	err := row.Scan(
		&region.ID, &region.Name, &region.Slug, &region.ExtendRule, &region.Position,
		&region.AvailableComponentTypes, &region.CreatedAt, &region.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if region.AvailableComponentTypes == nil {
		region.AvailableComponentTypes = []string{}
	}
	return region, nil
}

// ListRegions returns every region ordered by position.
func (repository *PostgresRepository) ListRegions(context context.Context) ([]*Region, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s ASC, %s ASC`,
		regionColumns, schema.CompositionRegion.Table,
		schema.CompositionRegion.Position, schema.CompositionRegion.Slug)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_regions")
	}
	defer rows.Close()

	regions := make([]*Region, 0)
	for rows.Next() {
		region, err := scanRegion(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_region")
		}
		regions = append(regions, region)
	}

	return regions, dberr.Wrap(rows.Err(), "list_regions")
}

// GetRegionBySlug loads one region.
func (repository *PostgresRepository) GetRegionBySlug(context context.Context, slug string) (*Region, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		regionColumns, schema.CompositionRegion.Table, schema.CompositionRegion.Slug)

	region, err := scanRegion(repository.db.QueryRow(context, query, slug))
	if err != nil {
		return nil, dberr.Wrap(err, "get_region_by_slug")
	}
	return region, nil
}

// CreateRegion inserts region and fills in its timestamps.
func (repository *PostgresRepository) CreateRegion(context context.Context, region *Region) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING %s, %s
	`,
		schema.CompositionRegion.Table,
		schema.CompositionRegion.ID, schema.CompositionRegion.Name, schema.CompositionRegion.Slug,
		schema.CompositionRegion.ExtendRule, schema.CompositionRegion.Position,
		schema.CompositionRegion.AvailableComponentTypes,
		schema.CompositionRegion.CreatedAt, schema.CompositionRegion.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		region.ID, region.Name, region.Slug, region.ExtendRule, region.Position, region.AvailableComponentTypes,
	).Scan(&region.CreatedAt, &region.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_region")
	}
	return nil
}

// UpdateRegion overwrites every editable column of the region identified by region.ID.
func (repository *PostgresRepository) UpdateRegion(context context.Context, region *Region) error {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = NOW()
		WHERE %s = $1
		RETURNING %s
	`,
		schema.CompositionRegion.Table,
		schema.CompositionRegion.Name, schema.CompositionRegion.Slug, schema.CompositionRegion.ExtendRule,
		schema.CompositionRegion.Position, schema.CompositionRegion.AvailableComponentTypes,
		schema.CompositionRegion.UpdatedAt,
		schema.CompositionRegion.ID,
		schema.CompositionRegion.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		region.ID, region.Name, region.Slug, region.ExtendRule, region.Position, region.AvailableComponentTypes,
	).Scan(&region.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "update_region")
	}
	return nil
}

// DeleteRegion removes the region and, through the foreign key, its placements.
func (repository *PostgresRepository) DeleteRegion(context context.Context, slug string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.CompositionRegion.Table, schema.CompositionRegion.Slug)

	tag, err := repository.db.Exec(context, query, slug)
	if err != nil {
		return dberr.Wrap(err, "delete_region")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// # Layouts

/*
loadLayoutChain loads a layout and all its ancestors in one recursive query.

Description: The recursion tracks visited ids so a corrupt parent chain
terminates. Rows come back child first and are linked through Parent.

Parameters:
  - context: context.Context
  - column: string (the column matched against value)
  - value: string

Returns:
  - *Layout: The layout with its Parent chain populated
  - error: dberr.ErrNotFound or execution errors
*/
func (repository *PostgresRepository) loadLayoutChain(context context.Context, column, value string) (*Layout, error) {
	table := schema.CompositionLayout
	columns := fmt.Sprintf("%s, %s, %s, %s, %s, %s",
		table.ID, table.Name, table.Slug, table.ParentID, table.CreatedAt, table.UpdatedAt)

	query := fmt.Sprintf(`
		WITH RECURSIVE chain AS (
			SELECT %[1]s, 0 AS depth, ARRAY[%[3]s] AS path
			FROM %[2]s
			WHERE %[4]s = $1
			UNION ALL
			SELECT l.%[3]s, l.%[5]s, l.%[6]s, l.%[7]s, l.%[8]s, l.%[9]s, c.depth + 1, c.path || l.%[3]s
			FROM %[2]s l
			JOIN chain c ON l.%[3]s = c.%[7]s
			WHERE NOT l.%[3]s = ANY(c.path)
		)
		SELECT %[1]s FROM chain ORDER BY depth ASC
	`,
		columns, table.Table, table.ID, column,
		table.Name, table.Slug, table.ParentID, table.CreatedAt, table.UpdatedAt,
	)

	rows, err := repository.db.Query(context, query, value)
	if err != nil {
		return nil, dberr.Wrap(err, "get_layout_chain")
	}
	defer rows.Close()

	var head, tail *Layout
	for rows.Next() {
		node := &Layout{}
		if err := rows.Scan(&node.ID, &node.Name, &node.Slug, &node.ParentID, &node.CreatedAt, &node.UpdatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_layout")
		}
		if head == nil {
			head = node
		} else {
			tail.Parent = node
		}
		tail = node
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "get_layout_chain")
	}

	if head == nil {
		return nil, dberr.ErrNotFound
	}
	return head, nil
}

// GetLayoutBySlug loads a layout with its ancestors.
func (repository *PostgresRepository) GetLayoutBySlug(context context.Context, slug string) (*Layout, error) {
	return repository.loadLayoutChain(context, schema.CompositionLayout.Slug, slug)
}

// GetLayoutByID loads a layout with its ancestors.
func (repository *PostgresRepository) GetLayoutByID(context context.Context, id string) (*Layout, error) {
	return repository.loadLayoutChain(context, schema.CompositionLayout.ID, id)
}

// CreateLayout inserts layout and fills in its timestamps.
func (repository *PostgresRepository) CreateLayout(context context.Context, layout *Layout) error {
	table := schema.CompositionLayout
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s) VALUES ($1, $2, $3, $4)
		RETURNING %s, %s
	`, table.Table, table.ID, table.Name, table.Slug, table.ParentID, table.CreatedAt, table.UpdatedAt)

	err := repository.db.QueryRow(context, query, layout.ID, layout.Name, layout.Slug, layout.ParentID).
		Scan(&layout.CreatedAt, &layout.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_layout")
	}
	return nil
}

/*
UpdateLayout overwrites name, slug and parent of the layout identified by layout.ID.

Description: Layout writes are serialized with a table lock, and the new
parent's ancestor chain is re-checked inside the same transaction, so two
concurrent parent changes cannot together store a cycle.

Parameters:
  - context: context.Context
  - layout: *Layout

Returns:
  - error: ErrLayoutCycle, dberr.ErrNotFound or execution errors
*/
func (repository *PostgresRepository) UpdateLayout(context context.Context, layout *Layout) error {
	table := schema.CompositionLayout

	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_update_layout_tx")
	}
	defer transaction.Rollback(context)

	// ── 1. Serialize Layout Writers ──────────────────────────────────────
	lockQuery := fmt.Sprintf(`LOCK TABLE %s IN SHARE ROW EXCLUSIVE MODE`, table.Table)
	if _, err := transaction.Exec(context, lockQuery); err != nil {
		return dberr.Wrap(err, "lock_layouts")
	}

	// ── 2. Cycle Check ───────────────────────────────────────────────────
	if layout.ParentID != nil {
		cycleQuery := fmt.Sprintf(`
			WITH RECURSIVE ancestors AS (
				SELECT %[2]s, %[3]s, ARRAY[%[2]s] AS path
				FROM %[1]s
				WHERE %[2]s = $1
				UNION ALL
				SELECT l.%[2]s, l.%[3]s, a.path || l.%[2]s
				FROM %[1]s l
				JOIN ancestors a ON l.%[2]s = a.%[3]s
				WHERE NOT l.%[2]s = ANY(a.path)
			)
			SELECT EXISTS (SELECT 1 FROM ancestors WHERE %[2]s = $2)
		`, table.Table, table.ID, table.ParentID)

		var cyclic bool
		if err := transaction.QueryRow(context, cycleQuery, *layout.ParentID, layout.ID).Scan(&cyclic); err != nil {
			return dberr.Wrap(err, "check_layout_cycle")
		}
		if cyclic {
			return ErrLayoutCycle
		}
	}

	// ── 3. Write ─────────────────────────────────────────────────────────
	updateQuery := fmt.Sprintf(`
		UPDATE %s SET %s = $2, %s = $3, %s = $4, %s = NOW()
		WHERE %s = $1
		RETURNING %s
	`, table.Table, table.Name, table.Slug, table.ParentID, table.UpdatedAt, table.ID, table.UpdatedAt)

	err = transaction.QueryRow(context, updateQuery, layout.ID, layout.Name, layout.Slug, layout.ParentID).
		Scan(&layout.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "update_layout")
	}

	if err := transaction.Commit(context); err != nil {
		return dberr.Wrap(err, "commit_update_layout")
	}
	return nil
}

// # Placements

// ListPlacements returns the placements of one provider.
func (repository *PostgresRepository) ListPlacements(context context.Context, kind ProviderKind, providerID string, filter PlacementFilter) ([]*Placement, error) {
	table := schema.CompositionPlacement
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s = $2
	`,
		table.ID, table.ProviderKind, table.ProviderID, table.RegionID, table.ComponentKind,
		table.ComponentID, table.Position, table.IsVisible, table.CreatedAt,
		table.Table, table.ProviderKind, table.ProviderID,
	)
	if filter.VisibleOnly {
		query += fmt.Sprintf(" AND %s = TRUE", table.IsVisible)
	}
	query += fmt.Sprintf(" ORDER BY %s ASC, %s ASC", table.Position, table.CreatedAt)

	rows, err := repository.db.Query(context, query, kind, providerID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_placements")
	}
	defer rows.Close()

	placements := make([]*Placement, 0)
	for rows.Next() {
		placement := &Placement{}
		err := rows.Scan(
			&placement.ID, &placement.ProviderKind, &placement.ProviderID, &placement.RegionID,
			&placement.ComponentKind, &placement.ComponentID, &placement.Position,
			&placement.Visible, &placement.CreatedAt,
		)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_placement")
		}
		placements = append(placements, placement)
	}

	return placements, dberr.Wrap(rows.Err(), "list_placements")
}

// CreatePlacement inserts placement.
func (repository *PostgresRepository) CreatePlacement(context context.Context, placement *Placement) error {
	table := schema.CompositionPlacement
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING %s
	`,
		table.Table,
		table.ID, table.ProviderKind, table.ProviderID, table.RegionID,
		table.ComponentKind, table.ComponentID, table.Position, table.IsVisible,
		table.CreatedAt,
	)

	err := repository.db.QueryRow(context, query,
		placement.ID, placement.ProviderKind, placement.ProviderID, placement.RegionID,
		placement.ComponentKind, placement.ComponentID, placement.Position, placement.Visible,
	).Scan(&placement.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_placement")
	}
	return nil
}

// DeletePlacement removes one placement.
func (repository *PostgresRepository) DeletePlacement(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.CompositionPlacement.Table, schema.CompositionPlacement.ID)

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_placement")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
