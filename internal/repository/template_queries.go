package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/orhanozan33/menuslide-sub001/internal/model"
)

// ListRotations returns the screen's active template rotation ordered by
// display order, joined with the template name and block count the client
// shows while cycling. An empty slice means the screen has no rotation and
// renders its static template instead.
func (r *DisplayStore) ListRotations(ctx context.Context, screenID uint64) ([]model.TemplateRotation, error) {
	const q = `SELECT str.template_id, str.display_duration, str.display_order,
                      t.display_name, t.block_count
               FROM screen_template_rotations str
               INNER JOIN templates t ON t.id = str.template_id
               WHERE str.screen_id = ? AND str.is_active = 1
               ORDER BY str.display_order ASC`
	rows, err := r.db.QueryContext(ctx, q, screenID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.TemplateRotation
	for rows.Next() {
		var rot model.TemplateRotation
		if err := rows.Scan(&rot.TemplateID, &rot.DisplayDuration, &rot.DisplayOrder, &rot.TemplateName, &rot.BlockCount); err != nil {
			return nil, err
		}
		out = append(out, rot)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// TemplateWithBlocks loads a template and its blocks ordered by block index.
// Missing templates surface as ErrTemplateNotFound: the id always comes from
// another store row, so a miss means inconsistent data, not a stale link.
func (r *DisplayStore) TemplateWithBlocks(ctx context.Context, templateID uint64) (*model.Template, error) {
	const qTpl = `SELECT id, display_name, block_count FROM templates WHERE id = ?`
	var t model.Template
	err := r.db.QueryRowContext(ctx, qTpl, templateID).Scan(&t.ID, &t.DisplayName, &t.BlockCount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}

	const qBlocks = `SELECT id, block_index, position_x, position_y, width, height
                     FROM template_blocks
                     WHERE template_id = ?
                     ORDER BY block_index ASC`
	rows, err := r.db.QueryContext(ctx, qBlocks, templateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var b model.TemplateBlock
		if err := rows.Scan(&b.ID, &b.BlockIndex, &b.PositionX, &b.PositionY, &b.Width, &b.Height); err != nil {
			return nil, err
		}
		t.Blocks = append(t.Blocks, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &t, nil
}

// ListScreenBlocks returns the screen's active blocks with geometry resolved
// at query time: a per-screen override wins, a NULL override inherits the
// template block's value, field by field. Ordering is z-index first so
// overlapping blocks stack deterministically, then template block index.
func (r *DisplayStore) ListScreenBlocks(ctx context.Context, screenID uint64) ([]model.ScreenBlock, error) {
	const q = `SELECT sb.id, sb.template_block_id, tb.block_index,
                      COALESCE(sb.position_x, tb.position_x),
                      COALESCE(sb.position_y, tb.position_y),
                      COALESCE(sb.width, tb.width),
                      COALESCE(sb.height, tb.height),
                      COALESCE(sb.z_index, 0),
                      COALESCE(sb.animation_type, 'fade'),
                      COALESCE(sb.animation_duration, 500),
                      COALESCE(sb.animation_delay, 0)
               FROM screen_blocks sb
               INNER JOIN template_blocks tb ON tb.id = sb.template_block_id
               WHERE sb.screen_id = ? AND sb.is_active = 1
               ORDER BY COALESCE(sb.z_index, 0) ASC, tb.block_index ASC`
	rows, err := r.db.QueryContext(ctx, q, screenID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.ScreenBlock
	for rows.Next() {
		var b model.ScreenBlock
		if err := rows.Scan(
			&b.ID, &b.TemplateBlockID, &b.BlockIndex,
			&b.PositionX, &b.PositionY, &b.Width, &b.Height,
			&b.ZIndex, &b.AnimationType, &b.AnimationDuration, &b.AnimationDelay,
		); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
