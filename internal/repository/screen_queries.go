package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/orhanozan33/menuslide-sub001/internal/model"
)

// screenColumns lists the screen fields needed to render a display payload,
// joined with the owning business name. Kept as a fragment so the slug and
// token lookups stay identical apart from the WHERE column.
const screenColumns = `s.id, s.business_id, b.name, s.name, s.location, s.animation_type,
           s.animation_duration, s.language_code, s.font_family, s.primary_color,
           s.background_style, s.background_color, s.background_image_url, s.logo_url,
           s.template_id, s.frame_type, s.ticker_text, s.ticker_style`

// ResolveScreen looks up an active screen of an active business by its public
// identifier. The slug is tried first; the legacy token only resolves when no
// screen carries the identifier as a slug, so the slug always wins when both
// could match. Returns ErrScreenNotFound when neither column matches.
func (r *DisplayStore) ResolveScreen(ctx context.Context, identifier string) (*model.Screen, error) {
	s, err := r.screenBy(ctx, "s.public_slug", identifier)
	if errors.Is(err, ErrScreenNotFound) {
		s, err = r.screenBy(ctx, "s.public_token", identifier)
	}
	return s, err
}

// screenBy runs the screen lookup against a single identifier column.
func (r *DisplayStore) screenBy(ctx context.Context, column, identifier string) (*model.Screen, error) {
	q := `SELECT ` + screenColumns + `
          FROM screens s
          INNER JOIN businesses b ON b.id = s.business_id AND b.is_active = 1
          WHERE ` + column + ` = ? AND s.is_active = 1`
	var s model.Screen
	err := r.db.QueryRowContext(ctx, q, identifier).Scan(
		&s.ID, &s.BusinessID, &s.BusinessName, &s.Name, &s.Location, &s.AnimationType,
		&s.AnimationDuration, &s.LanguageCode, &s.FontFamily, &s.PrimaryColor,
		&s.BackgroundStyle, &s.BackgroundColor, &s.BackgroundImageURL, &s.LogoURL,
		&s.TemplateID, &s.FrameType, &s.TickerText, &s.TickerStyle,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrScreenNotFound
		}
		return nil, err
	}
	return &s, nil
}

// ScreenIDByPublicID resolves only the screen id for a public identifier.
// The heartbeat path calls this on every beat, so it avoids dragging the
// full screen row through the pool. Same slug-over-token precedence as
// ResolveScreen.
func (r *DisplayStore) ScreenIDByPublicID(ctx context.Context, identifier string) (uint64, error) {
	const q = `SELECT s.id
               FROM screens s
               INNER JOIN businesses b ON b.id = s.business_id AND b.is_active = 1
               WHERE s.public_slug = ? AND s.is_active = 1`
	var id uint64
	err := r.db.QueryRowContext(ctx, q, identifier).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		const qTok = `SELECT s.id
                      FROM screens s
                      INNER JOIN businesses b ON b.id = s.business_id AND b.is_active = 1
                      WHERE s.public_token = ? AND s.is_active = 1`
		err = r.db.QueryRowContext(ctx, qTok, identifier).Scan(&id)
	}
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrScreenNotFound
		}
		return 0, err
	}
	return id, nil
}

// ResolveStreamTarget maps a broadcast code (the short code a TV app asks the
// user to type) to the screen's public identifier. The slug is preferred;
// the legacy token is used for screens that never got one. Screens without
// either identifier cannot be displayed and report ErrScreenNotFound.
func (r *DisplayStore) ResolveStreamTarget(ctx context.Context, code string) (string, error) {
	const q = `SELECT s.public_slug, s.public_token
               FROM screens s
               INNER JOIN businesses b ON b.id = s.business_id AND b.is_active = 1
               WHERE s.broadcast_code = ? AND s.is_active = 1`
	var slug, token sql.NullString
	err := r.db.QueryRowContext(ctx, q, code).Scan(&slug, &token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrScreenNotFound
		}
		return "", err
	}
	if slug.Valid && slug.String != "" {
		return slug.String, nil
	}
	if token.Valid && token.String != "" {
		return token.String, nil
	}
	return "", ErrScreenNotFound
}

// DefaultLanguageCode returns the store's default active language code, or
// "" when none is configured. The assembler applies its own hard fallback.
func (r *DisplayStore) DefaultLanguageCode(ctx context.Context) (string, error) {
	const q = `SELECT code FROM languages WHERE is_default = 1 AND is_active = 1 LIMIT 1`
	var code string
	err := r.db.QueryRowContext(ctx, q).Scan(&code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", err
	}
	return code, nil
}
