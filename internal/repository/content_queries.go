package repository

import (
	"context"

	"github.com/orhanozan33/menuslide-sub001/internal/model"
)

// contentColumns is the shared field list of the two content tables minus the
// owning block column, which differs between them.
const contentColumns = `content_type, image_url, icon_name, title, description, price,
           campaign_text, background_color, background_image_url, text_color,
           text_position_x, text_position_y, text_size, font_weight,
           menu_item_id, menu_id, display_order`

// ListScreenBlockContents returns the active per-screen content rows of the
// given screen blocks, ordered by display order then creation time.
func (r *DisplayStore) ListScreenBlockContents(ctx context.Context, blockIDs []uint64) ([]model.BlockContent, error) {
	if len(blockIDs) == 0 {
		return nil, nil
	}
	in, args := placeholders(blockIDs)
	q := `SELECT id, screen_block_id, ` + contentColumns + `
          FROM screen_block_contents
          WHERE screen_block_id IN (` + in + `) AND is_active = 1
          ORDER BY display_order ASC, created_at ASC`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.BlockContent
	for rows.Next() {
		var c model.BlockContent
		if err := rows.Scan(
			&c.ID, &c.ScreenBlockID, &c.ContentType, &c.ImageURL, &c.IconName,
			&c.Title, &c.Description, &c.Price, &c.CampaignText, &c.BackgroundColor,
			&c.BackgroundImageURL, &c.TextColor, &c.TextPositionX, &c.TextPositionY,
			&c.TextSize, &c.FontWeight, &c.MenuItemID, &c.MenuID, &c.DisplayOrder,
		); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListTemplateBlockContents returns the active template-authored content rows
// of the given template blocks, same ordering as the screen-level query. The
// assembler maps these onto screen blocks when a block has no per-screen rows
// and uses them directly in rotation mode.
func (r *DisplayStore) ListTemplateBlockContents(ctx context.Context, templateBlockIDs []uint64) ([]model.BlockContent, error) {
	if len(templateBlockIDs) == 0 {
		return nil, nil
	}
	in, args := placeholders(templateBlockIDs)
	q := `SELECT id, template_block_id, ` + contentColumns + `
          FROM template_block_contents
          WHERE template_block_id IN (` + in + `) AND is_active = 1
          ORDER BY display_order ASC, created_at ASC`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.BlockContent
	for rows.Next() {
		var c model.BlockContent
		if err := rows.Scan(
			&c.ID, &c.TemplateBlockID, &c.ContentType, &c.ImageURL, &c.IconName,
			&c.Title, &c.Description, &c.Price, &c.CampaignText, &c.BackgroundColor,
			&c.BackgroundImageURL, &c.TextColor, &c.TextPositionX, &c.TextPositionY,
			&c.TextSize, &c.FontWeight, &c.MenuItemID, &c.MenuID, &c.DisplayOrder,
		); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
