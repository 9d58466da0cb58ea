package display

import (
	"context"
	"errors"

	"github.com/orhanozan33/menuslide-sub001/internal/model"
	"github.com/orhanozan33/menuslide-sub001/internal/repository"
)

// Assembler builds one display payload per (screen, rotation index) request.
// It performs no retries and never returns a partial payload: any store
// failure aborts the whole assembly. Steps are strictly sequential because
// each depends on the previous result; only the batch loader at the end fans
// out per content type.
type Assembler struct {
	store Store
}

// NewAssembler constructs an Assembler over the given store gateway.
func NewAssembler(store Store) *Assembler {
	return &Assembler{store: store}
}

// Build resolves identifier and assembles the payload for rotationIndex.
// An unresolvable identifier yields the sentinel not-found payload with a nil
// error. Any rotation index outside the rotation list, including negatives,
// clamps to 0.
func (a *Assembler) Build(ctx context.Context, identifier string, rotationIndex int) (*Payload, error) {
	screen, err := a.store.ResolveScreen(ctx, identifier)
	if errors.Is(err, repository.ErrScreenNotFound) {
		return NotFoundPayload(), nil
	}
	if err != nil {
		return nil, err
	}

	lang, err := a.effectiveLanguage(ctx, screen)
	if err != nil {
		return nil, err
	}

	// Active menu: schedule first, then first assigned menu, else none. The
	// layout still renders without a menu, so "no menu" is not an error.
	menuID, haveMenu, err := a.store.ActiveMenuID(ctx, screen.ID)
	if err != nil {
		return nil, err
	}
	if !haveMenu {
		menuID, haveMenu, err = a.store.FallbackMenuID(ctx, screen.ID)
		if err != nil {
			return nil, err
		}
	}

	menus := []MenuView{}
	if haveMenu {
		m, err := a.store.MenuWithItems(ctx, menuID, lang)
		if err != nil {
			return nil, err
		}
		if m != nil {
			menus = append(menus, menuView(m))
		}
	}

	schedules, err := a.store.ListMenuSchedules(ctx, screen.ID)
	if err != nil {
		return nil, err
	}

	rotations, err := a.store.ListRotations(ctx, screen.ID)
	if err != nil {
		return nil, err
	}

	p := &Payload{
		Menus:         menus,
		Schedules:     scheduleViews(schedules),
		ScreenBlocks:  []BlockView{},
		BlockContents: []ContentView{},
	}

	var currentTemplateID uint64
	if screen.TemplateID.Valid {
		currentTemplateID = uint64(screen.TemplateID.Int64)
	}

	switch {
	case len(rotations) > 0:
		// Rotation overrides the static template unconditionally.
		idx := rotationIndex
		if idx < 0 || idx >= len(rotations) {
			idx = 0
		}
		currentTemplateID = rotations[idx].TemplateID
		if err := a.assembleFromTemplate(ctx, p, currentTemplateID); err != nil {
			return nil, err
		}
		p.TemplateRotations = rotationViews(rotations)
	case screen.TemplateID.Valid:
		if err := a.assembleFromScreen(ctx, p, screen, currentTemplateID); err != nil {
			return nil, err
		}
	}

	if len(p.BlockContents) > 0 {
		if err := a.loadContentBatch(ctx, p.BlockContents, lang, menuID, haveMenu, screen.BusinessID, p.Template); err != nil {
			return nil, err
		}
	}

	p.Screen = screenView(screen, lang, currentTemplateID)
	return p, nil
}

// effectiveLanguage picks the screen's configured language, then the store
// default, then the hard fallback.
func (a *Assembler) effectiveLanguage(ctx context.Context, screen *model.Screen) (string, error) {
	if screen.LanguageCode.Valid && screen.LanguageCode.String != "" {
		return screen.LanguageCode.String, nil
	}
	code, err := a.store.DefaultLanguageCode(ctx)
	if err != nil {
		return "", err
	}
	if code == "" {
		code = defaultLanguage
	}
	return code, nil
}

// assembleFromTemplate fills blocks and contents straight from the template,
// bypassing per-screen state entirely. Rotation mode is template-authoritative
// so that switching the index never reads or writes screen blocks.
func (a *Assembler) assembleFromTemplate(ctx context.Context, p *Payload, templateID uint64) error {
	tpl, err := a.store.TemplateWithBlocks(ctx, templateID)
	if err != nil {
		return err
	}
	p.Template = templateView(tpl)

	blockIDs := make([]uint64, 0, len(tpl.Blocks))
	for _, b := range tpl.Blocks {
		p.ScreenBlocks = append(p.ScreenBlocks, blockViewFromTemplateBlock(b))
		blockIDs = append(blockIDs, b.ID)
	}
	if len(blockIDs) == 0 {
		return nil
	}

	contents, err := a.store.ListTemplateBlockContents(ctx, blockIDs)
	if err != nil {
		return err
	}
	for _, c := range contents {
		// The template block id is the block view id in rotation mode.
		p.BlockContents = append(p.BlockContents, contentView(c, c.TemplateBlockID))
	}
	return nil
}

// assembleFromScreen fills blocks from the screen's materialized blocks and
// contents from screen-level rows, falling back to the block's template rows
// only for blocks that have no screen-level rows at all. The fallback is
// per block and wholesale: a block either shows its screen rows or its
// template rows, never a mix.
func (a *Assembler) assembleFromScreen(ctx context.Context, p *Payload, screen *model.Screen, templateID uint64) error {
	tpl, err := a.store.TemplateWithBlocks(ctx, templateID)
	if err != nil {
		return err
	}
	p.Template = templateView(tpl)

	blocks, err := a.store.ListScreenBlocks(ctx, screen.ID)
	if err != nil {
		return err
	}
	blockIDs := make([]uint64, 0, len(blocks))
	for _, b := range blocks {
		p.ScreenBlocks = append(p.ScreenBlocks, blockViewFromScreenBlock(b))
		blockIDs = append(blockIDs, b.ID)
	}
	if len(blockIDs) == 0 {
		return nil
	}

	screenContents, err := a.store.ListScreenBlockContents(ctx, blockIDs)
	if err != nil {
		return err
	}
	byBlock := make(map[uint64][]model.BlockContent, len(blocks))
	for _, c := range screenContents {
		byBlock[c.ScreenBlockID] = append(byBlock[c.ScreenBlockID], c)
	}

	// Blocks with zero screen-level rows fall back to their template rows.
	fallbackTemplateBlockIDs := make([]uint64, 0)
	screenBlockByTemplateBlock := make(map[uint64]uint64, len(blocks))
	for _, b := range blocks {
		screenBlockByTemplateBlock[b.TemplateBlockID] = b.ID
		if len(byBlock[b.ID]) == 0 {
			fallbackTemplateBlockIDs = append(fallbackTemplateBlockIDs, b.TemplateBlockID)
		}
	}
	var templateByBlock map[uint64][]model.BlockContent
	if len(fallbackTemplateBlockIDs) > 0 {
		templateContents, err := a.store.ListTemplateBlockContents(ctx, fallbackTemplateBlockIDs)
		if err != nil {
			return err
		}
		templateByBlock = make(map[uint64][]model.BlockContent)
		for _, c := range templateContents {
			templateByBlock[c.TemplateBlockID] = append(templateByBlock[c.TemplateBlockID], c)
		}
	}

	// Emit rows grouped per block in block order; within a block the store
	// already ordered rows by display order.
	for _, b := range blocks {
		if rows := byBlock[b.ID]; len(rows) > 0 {
			for _, c := range rows {
				p.BlockContents = append(p.BlockContents, contentView(c, b.ID))
			}
			continue
		}
		for _, c := range templateByBlock[b.TemplateBlockID] {
			p.BlockContents = append(p.BlockContents, contentView(c, b.ID))
		}
	}
	return nil
}
