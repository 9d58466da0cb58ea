// Package display assembles the renderable payload an unattended screen polls
// for. The view structs here are the wire shape: sanitized, with every visual
// field defaulted so the client never branches on null.
package display

import (
	"database/sql"

	"github.com/orhanozan33/menuslide-sub001/internal/model"
)

// Defaults substituted for unset visual fields.
const (
	defaultLanguage      = "en"
	defaultAnimationType = "fade"
	defaultAnimationMs   = 500
	defaultFontFamily    = "system-ui"
	defaultPrimaryColor  = "#fbbf24"
	defaultBgStyle       = "gradient"
	defaultBgColor       = "#0f172a"
	defaultFrameType     = "none"
	defaultTickerStyle   = "default"
)

// Payload is one immutable display response for a (screen, rotation index)
// pair. A not-found screen is a success-level payload with NotFound set and
// empty collections, never an error: stale links are steady state.
type Payload struct {
	Screen            *ScreenView    `json:"screen"`
	NotFound          bool           `json:"not_found,omitempty"`
	Menus             []MenuView     `json:"menus"`
	Schedules         []ScheduleView `json:"schedules"`
	Template          *TemplateView  `json:"template"`
	ScreenBlocks      []BlockView    `json:"screen_blocks"`
	BlockContents     []ContentView  `json:"block_contents"`
	TemplateRotations []RotationView `json:"template_rotations,omitempty"`
}

// ScreenView is the sanitized screen descriptor. TemplateID is the template
// actually being rendered, which under rotation differs from the screen's
// static assignment.
type ScreenView struct {
	ID                 uint64 `json:"id"`
	Name               string `json:"name"`
	Location           string `json:"location,omitempty"`
	AnimationType      string `json:"animation_type"`
	AnimationDuration  int    `json:"animation_duration"`
	LanguageCode       string `json:"language_code"`
	FontFamily         string `json:"font_family"`
	PrimaryColor       string `json:"primary_color"`
	BackgroundStyle    string `json:"background_style"`
	BackgroundColor    string `json:"background_color"`
	BackgroundImageURL string `json:"background_image_url,omitempty"`
	LogoURL            string `json:"logo_url,omitempty"`
	TemplateID         uint64 `json:"template_id,omitempty"`
	BusinessName       string `json:"business_name,omitempty"`
	FrameType          string `json:"frame_type"`
	TickerText         string `json:"ticker_text"`
	TickerStyle        string `json:"ticker_style"`
}

// MenuView is a menu with its items for the effective language.
type MenuView struct {
	ID            uint64         `json:"id"`
	Name          string         `json:"name"`
	Description   string         `json:"description,omitempty"`
	SlideDuration int            `json:"slide_duration"`
	Items         []MenuItemView `json:"items"`
}

// MenuItemView is one catalog entry, translation already applied.
type MenuItemView struct {
	ID           uint64  `json:"id"`
	MenuID       uint64  `json:"menu_id"`
	Name         string  `json:"name"`
	Description  string  `json:"description,omitempty"`
	Price        float64 `json:"price,omitempty"`
	ImageURL     string  `json:"image_url,omitempty"`
	DisplayOrder int     `json:"display_order"`
}

// ScheduleView is an opaque schedule row; the client only uses it to know
// when the active menu will change between polls.
type ScheduleView struct {
	MenuID    uint64 `json:"menu_id"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	DayOfWeek *int   `json:"day_of_week"`
}

// TemplateView is the layout descriptor with its blocks.
type TemplateView struct {
	ID          uint64              `json:"id"`
	DisplayName string              `json:"display_name"`
	BlockCount  int                 `json:"block_count"`
	Blocks      []TemplateBlockView `json:"blocks"`
}

// TemplateBlockView is a template block's geometry.
type TemplateBlockView struct {
	ID         uint64  `json:"id"`
	BlockIndex int     `json:"block_index"`
	PositionX  float64 `json:"position_x"`
	PositionY  float64 `json:"position_y"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
}

// BlockView is a renderable block. In static mode it is a screen block with
// resolved geometry; in rotation mode it is synthesized from the template
// block (ID doubles as the template block id) with default animation.
type BlockView struct {
	ID                uint64  `json:"id"`
	TemplateBlockID   uint64  `json:"template_block_id"`
	BlockIndex        int     `json:"block_index"`
	PositionX         float64 `json:"position_x"`
	PositionY         float64 `json:"position_y"`
	Width             float64 `json:"width"`
	Height            float64 `json:"height"`
	ZIndex            int     `json:"z_index"`
	AnimationType     string  `json:"animation_type"`
	AnimationDuration int     `json:"animation_duration"`
	AnimationDelay    int     `json:"animation_delay"`
}

// ContentView is one content row of a block. ScreenBlockID always points at
// the BlockView the row belongs to, also for template-level rows mapped in by
// the fallback. MenuItem/MenuItems are attached by the batch loader.
type ContentView struct {
	ID                 uint64         `json:"id"`
	ScreenBlockID      uint64         `json:"screen_block_id"`
	ContentType        string         `json:"content_type"`
	ImageURL           string         `json:"image_url,omitempty"`
	IconName           string         `json:"icon_name,omitempty"`
	Title              string         `json:"title,omitempty"`
	Description        string         `json:"description,omitempty"`
	Price              float64        `json:"price,omitempty"`
	CampaignText       string         `json:"campaign_text,omitempty"`
	BackgroundColor    string         `json:"background_color,omitempty"`
	BackgroundImageURL string         `json:"background_image_url,omitempty"`
	TextColor          string         `json:"text_color,omitempty"`
	TextPositionX      *float64       `json:"text_position_x,omitempty"`
	TextPositionY      *float64       `json:"text_position_y,omitempty"`
	TextSize           *int           `json:"text_size,omitempty"`
	FontWeight         string         `json:"font_weight,omitempty"`
	MenuItemID         uint64         `json:"menu_item_id,omitempty"`
	MenuID             uint64         `json:"menu_id,omitempty"`
	DisplayOrder       int            `json:"display_order"`
	MenuItem           *MenuItemView  `json:"menu_item,omitempty"`
	MenuItems          []MenuItemView `json:"menu_items,omitempty"`
}

// RotationView is one entry of the rotation list returned to the client so it
// can self-advance without server-side state.
type RotationView struct {
	TemplateID      uint64 `json:"template_id"`
	DisplayDuration int    `json:"display_duration"`
	DisplayOrder    int    `json:"display_order"`
	TemplateName    string `json:"template_name"`
	BlockCount      int    `json:"block_count"`
}

// NotFoundPayload is the sentinel returned for identifiers that resolve to no
// active screen.
func NotFoundPayload() *Payload {
	return &Payload{
		NotFound:      true,
		Menus:         []MenuView{},
		Schedules:     []ScheduleView{},
		ScreenBlocks:  []BlockView{},
		BlockContents: []ContentView{},
	}
}

func nullStr(v sql.NullString, def string) string {
	if v.Valid && v.String != "" {
		return v.String
	}
	return def
}

func optStr(v sql.NullString) string {
	if v.Valid {
		return v.String
	}
	return ""
}

func screenView(s *model.Screen, lang string, currentTemplateID uint64) *ScreenView {
	animMs := defaultAnimationMs
	if s.AnimationDuration.Valid && s.AnimationDuration.Int32 > 0 {
		animMs = int(s.AnimationDuration.Int32)
	}
	return &ScreenView{
		ID:                 s.ID,
		Name:               s.Name,
		Location:           optStr(s.Location),
		AnimationType:      nullStr(s.AnimationType, defaultAnimationType),
		AnimationDuration:  animMs,
		LanguageCode:       lang,
		FontFamily:         nullStr(s.FontFamily, defaultFontFamily),
		PrimaryColor:       nullStr(s.PrimaryColor, defaultPrimaryColor),
		BackgroundStyle:    nullStr(s.BackgroundStyle, defaultBgStyle),
		BackgroundColor:    nullStr(s.BackgroundColor, defaultBgColor),
		BackgroundImageURL: optStr(s.BackgroundImageURL),
		LogoURL:            optStr(s.LogoURL),
		TemplateID:         currentTemplateID,
		BusinessName:       optStr(s.BusinessName),
		FrameType:          nullStr(s.FrameType, defaultFrameType),
		TickerText:         optStr(s.TickerText),
		TickerStyle:        nullStr(s.TickerStyle, defaultTickerStyle),
	}
}

func menuView(m *model.Menu) MenuView {
	v := MenuView{
		ID:            m.ID,
		Name:          m.Name,
		Description:   optStr(m.Description),
		SlideDuration: m.SlideDuration,
		Items:         make([]MenuItemView, 0, len(m.Items)),
	}
	for _, it := range m.Items {
		v.Items = append(v.Items, itemView(it))
	}
	return v
}

func itemView(it model.MenuItem) MenuItemView {
	v := MenuItemView{
		ID:           it.ID,
		MenuID:       it.MenuID,
		Name:         it.Name,
		Description:  optStr(it.Description),
		ImageURL:     optStr(it.ImageURL),
		DisplayOrder: it.DisplayOrder,
	}
	if it.Price.Valid {
		v.Price = it.Price.Float64
	}
	return v
}

func scheduleViews(rows []model.MenuSchedule) []ScheduleView {
	out := make([]ScheduleView, 0, len(rows))
	for _, r := range rows {
		v := ScheduleView{MenuID: r.MenuID, StartTime: r.StartTime, EndTime: r.EndTime}
		if r.DayOfWeek.Valid {
			d := int(r.DayOfWeek.Int32)
			v.DayOfWeek = &d
		}
		out = append(out, v)
	}
	return out
}

func templateView(t *model.Template) *TemplateView {
	v := &TemplateView{
		ID:          t.ID,
		DisplayName: t.DisplayName,
		BlockCount:  t.BlockCount,
		Blocks:      make([]TemplateBlockView, 0, len(t.Blocks)),
	}
	for _, b := range t.Blocks {
		v.Blocks = append(v.Blocks, TemplateBlockView{
			ID: b.ID, BlockIndex: b.BlockIndex,
			PositionX: b.PositionX, PositionY: b.PositionY,
			Width: b.Width, Height: b.Height,
		})
	}
	return v
}

func rotationViews(rows []model.TemplateRotation) []RotationView {
	out := make([]RotationView, 0, len(rows))
	for _, r := range rows {
		out = append(out, RotationView{
			TemplateID:      r.TemplateID,
			DisplayDuration: r.DisplayDuration,
			DisplayOrder:    r.DisplayOrder,
			TemplateName:    r.TemplateName,
			BlockCount:      r.BlockCount,
		})
	}
	return out
}

func blockViewFromScreenBlock(b model.ScreenBlock) BlockView {
	return BlockView{
		ID:                b.ID,
		TemplateBlockID:   b.TemplateBlockID,
		BlockIndex:        b.BlockIndex,
		PositionX:         b.PositionX,
		PositionY:         b.PositionY,
		Width:             b.Width,
		Height:            b.Height,
		ZIndex:            b.ZIndex,
		AnimationType:     b.AnimationType,
		AnimationDuration: b.AnimationDuration,
		AnimationDelay:    b.AnimationDelay,
	}
}

// blockViewFromTemplateBlock synthesizes a renderable block straight from the
// template, for rotation mode. The template block id doubles as the block id
// so content rows can point at it.
func blockViewFromTemplateBlock(b model.TemplateBlock) BlockView {
	return BlockView{
		ID:                b.ID,
		TemplateBlockID:   b.ID,
		BlockIndex:        b.BlockIndex,
		PositionX:         b.PositionX,
		PositionY:         b.PositionY,
		Width:             b.Width,
		Height:            b.Height,
		ZIndex:            0,
		AnimationType:     defaultAnimationType,
		AnimationDuration: defaultAnimationMs,
		AnimationDelay:    0,
	}
}

// contentView converts a content row, binding it to the given block view id.
func contentView(c model.BlockContent, screenBlockID uint64) ContentView {
	v := ContentView{
		ID:                 c.ID,
		ScreenBlockID:      screenBlockID,
		ContentType:        c.ContentType,
		ImageURL:           optStr(c.ImageURL),
		IconName:           optStr(c.IconName),
		Title:              optStr(c.Title),
		Description:        optStr(c.Description),
		CampaignText:       optStr(c.CampaignText),
		BackgroundColor:    optStr(c.BackgroundColor),
		BackgroundImageURL: optStr(c.BackgroundImageURL),
		TextColor:          optStr(c.TextColor),
		FontWeight:         optStr(c.FontWeight),
		DisplayOrder:       c.DisplayOrder,
	}
	if c.Price.Valid {
		v.Price = c.Price.Float64
	}
	if c.TextPositionX.Valid {
		x := c.TextPositionX.Float64
		v.TextPositionX = &x
	}
	if c.TextPositionY.Valid {
		y := c.TextPositionY.Float64
		v.TextPositionY = &y
	}
	if c.TextSize.Valid {
		n := int(c.TextSize.Int32)
		v.TextSize = &n
	}
	if c.MenuItemID.Valid {
		v.MenuItemID = uint64(c.MenuItemID.Int64)
	}
	if c.MenuID.Valid {
		v.MenuID = uint64(c.MenuID.Int64)
	}
	return v
}
