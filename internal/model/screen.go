package model

import "database/sql"

// Screen represents a physical display registered by a business.  A screen
// is addressed by one of two public identifiers: the slug (preferred) or the
// legacy token kept for devices provisioned before slugs existed.  Visual
// fields are nullable in the database; the assembler substitutes defaults so
// the payload never carries nulls.
//
// Screens are created and edited by the admin CRUD surface and deactivated
// when the owning subscription lapses.  This subsystem only ever reads them.
type Screen struct {
	ID                 uint64         // screens.id
	BusinessID         uint64         // screens.business_id
	BusinessName       sql.NullString // businesses.name (joined)
	Name               string         // screens.name
	Location           sql.NullString // screens.location
	AnimationType      sql.NullString // screens.animation_type
	AnimationDuration  sql.NullInt32  // screens.animation_duration (ms)
	LanguageCode       sql.NullString // screens.language_code
	FontFamily         sql.NullString // screens.font_family
	PrimaryColor       sql.NullString // screens.primary_color
	BackgroundStyle    sql.NullString // screens.background_style
	BackgroundColor    sql.NullString // screens.background_color
	BackgroundImageURL sql.NullString // screens.background_image_url
	LogoURL            sql.NullString // screens.logo_url
	TemplateID         sql.NullInt64  // screens.template_id (static template)
	FrameType          sql.NullString // screens.frame_type
	TickerText         sql.NullString // screens.ticker_text
	TickerStyle        sql.NullString // screens.ticker_style
}
