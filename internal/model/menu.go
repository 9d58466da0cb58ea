package model

import "database/sql"

// Menu is a catalog of items shown on a screen.  Items are ordered by their
// display order and already carry the translation for the effective language
// (the repository coalesces translated name/description over the base value).
type Menu struct {
	ID            uint64         // menus.id
	Name          string         // menus.name
	Description   sql.NullString // menus.description
	SlideDuration int            // menus.slide_duration, 5 when unset
	Items         []MenuItem
}

// MenuItem is one catalog entry.  Name and Description are the values for
// the requested language when a translation exists, else the base values.
type MenuItem struct {
	ID           uint64         // menu_items.id
	MenuID       uint64         // menu_items.menu_id
	Name         string         // translated or base name
	Description  sql.NullString // translated or base description
	Price        sql.NullFloat64
	ImageURL     sql.NullString
	DisplayOrder int
}

// MenuSchedule is an assignment window of a menu to a screen.  Evaluation of
// the schedule happens inside the store; these rows ride along in the payload
// so a client can pre-plan menu switches without polling faster.
type MenuSchedule struct {
	MenuID    uint64         // menu_schedules.menu_id
	StartTime string         // menu_schedules.start_time ("HH:MM:SS")
	EndTime   string         // menu_schedules.end_time
	DayOfWeek sql.NullInt32  // menu_schedules.day_of_week, NULL = every day
}
