package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/orhanozan33/menuslide-sub001/internal/model"
)

// itemColumns selects menu item fields with the translation for the bound
// language coalesced over the base values. Both name and description fall
// back per field; an item translated only partially shows the translated
// name with the base description.
const itemColumns = `mi.id, mi.menu_id,
           COALESCE(mit.name, mi.name),
           COALESCE(mit.description, mi.description),
           mi.price, mi.image_url, mi.display_order`

const itemJoin = `FROM menu_items mi
           LEFT JOIN menu_item_translations mit
             ON mit.menu_item_id = mi.id AND mit.language_code = ?`

// ActiveMenuID evaluates the screen's menu schedule as of now. The time and
// day-of-week logic lives entirely in the active_menu_for_screen stored
// function; this layer treats it as opaque. The second return value is false
// when no schedule currently selects a menu.
func (r *DisplayStore) ActiveMenuID(ctx context.Context, screenID uint64) (uint64, bool, error) {
	const q = `SELECT active_menu_for_screen(?)`
	var id sql.NullInt64
	if err := r.db.QueryRowContext(ctx, q, screenID).Scan(&id); err != nil {
		return 0, false, err
	}
	if !id.Valid {
		return 0, false, nil
	}
	return uint64(id.Int64), true, nil
}

// FallbackMenuID returns the screen's first assigned menu by display order,
// used when no schedule is currently active. False when the screen has no
// menu assignments at all.
func (r *DisplayStore) FallbackMenuID(ctx context.Context, screenID uint64) (uint64, bool, error) {
	const q = `SELECT menu_id FROM screen_menu
               WHERE screen_id = ?
               ORDER BY display_order ASC
               LIMIT 1`
	var id uint64
	err := r.db.QueryRowContext(ctx, q, screenID).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return id, true, nil
}

// MenuWithItems loads a menu with its active items ordered by display order,
// names and descriptions translated for lang where translations exist.
// Returns nil (not an error) when the menu is missing or inactive: a screen
// can reference a menu an admin deactivated moments ago and must still render.
func (r *DisplayStore) MenuWithItems(ctx context.Context, menuID uint64, lang string) (*model.Menu, error) {
	const qMenu = `SELECT id, name, description, COALESCE(slide_duration, 5)
                   FROM menus WHERE id = ? AND is_active = 1`
	var m model.Menu
	err := r.db.QueryRowContext(ctx, qMenu, menuID).Scan(&m.ID, &m.Name, &m.Description, &m.SlideDuration)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	q := `SELECT ` + itemColumns + ` ` + itemJoin + `
          WHERE mi.menu_id = ? AND mi.is_active = 1
          ORDER BY mi.display_order ASC`
	rows, err := r.db.QueryContext(ctx, q, lang, menuID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var it model.MenuItem
		if err := rows.Scan(&it.ID, &it.MenuID, &it.Name, &it.Description, &it.Price, &it.ImageURL, &it.DisplayOrder); err != nil {
			return nil, err
		}
		m.Items = append(m.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &m, nil
}

// ListMenuSchedules returns the screen's active schedule rows. They are not
// evaluated here; they ride along in the payload so the client can pre-plan
// menu switches between polls.
func (r *DisplayStore) ListMenuSchedules(ctx context.Context, screenID uint64) ([]model.MenuSchedule, error) {
	const q = `SELECT menu_id, start_time, end_time, day_of_week
               FROM menu_schedules
               WHERE screen_id = ? AND is_active = 1`
	rows, err := r.db.QueryContext(ctx, q, screenID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.MenuSchedule
	for rows.Next() {
		var s model.MenuSchedule
		if err := rows.Scan(&s.MenuID, &s.StartTime, &s.EndTime, &s.DayOfWeek); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ItemsByID bulk-loads active menu items by id with translations for lang.
// Used only by the batch loader; one call covers every single_product row in
// a payload regardless of how many blocks reference items.
func (r *DisplayStore) ItemsByID(ctx context.Context, itemIDs []uint64, lang string) ([]model.MenuItem, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}
	in, args := placeholders(itemIDs)
	q := `SELECT ` + itemColumns + ` ` + itemJoin + `
          WHERE mi.id IN (` + in + `) AND mi.is_active = 1`
	return r.queryItems(ctx, q, append([]interface{}{lang}, args...))
}

// ItemsByMenu bulk-loads the active items of the given menus, ordered by menu
// then display order so the batch loader can redistribute them per menu.
func (r *DisplayStore) ItemsByMenu(ctx context.Context, menuIDs []uint64, lang string) ([]model.MenuItem, error) {
	if len(menuIDs) == 0 {
		return nil, nil
	}
	in, args := placeholders(menuIDs)
	q := `SELECT ` + itemColumns + ` ` + itemJoin + `
          WHERE mi.menu_id IN (` + in + `) AND mi.is_active = 1
          ORDER BY mi.menu_id, mi.display_order ASC`
	return r.queryItems(ctx, q, append([]interface{}{lang}, args...))
}

func (r *DisplayStore) queryItems(ctx context.Context, q string, args []interface{}) ([]model.MenuItem, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []model.MenuItem
	for rows.Next() {
		var it model.MenuItem
		if err := rows.Scan(&it.ID, &it.MenuID, &it.Name, &it.Description, &it.Price, &it.ImageURL, &it.DisplayOrder); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// MenuIDByBusinessAndName finds an active menu of a business by exact name.
// The batch loader uses it once per payload as the deterministic fallback for
// product_list rows that carry no menu reference. False when no menu matches.
func (r *DisplayStore) MenuIDByBusinessAndName(ctx context.Context, businessID uint64, name string) (uint64, bool, error) {
	const q = `SELECT id FROM menus
               WHERE business_id = ? AND name = ? AND is_active = 1
               LIMIT 1`
	var id uint64
	err := r.db.QueryRowContext(ctx, q, businessID, name).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return id, true, nil
}
