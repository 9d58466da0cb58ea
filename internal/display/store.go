package display

import (
	"context"

	"github.com/orhanozan33/menuslide-sub001/internal/model"
)

// Store is the read contract the display subsystem has against the relational
// store. repository.DisplayStore is the one concrete implementation; tests
// substitute a fake. Every method is fallible and failures are never masked:
// the assembler aborts the whole payload rather than render with holes.
type Store interface {
	// ResolveScreen resolves a public identifier (slug first, then legacy
	// token) to an active screen of an active business.
	ResolveScreen(ctx context.Context, identifier string) (*model.Screen, error)
	// ScreenIDByPublicID is the lightweight variant used on every heartbeat.
	ScreenIDByPublicID(ctx context.Context, identifier string) (uint64, error)
	// ResolveStreamTarget maps a broadcast code to the screen's public
	// identifier, slug preferred.
	ResolveStreamTarget(ctx context.Context, code string) (string, error)

	// DefaultLanguageCode returns the store default language, "" when unset.
	DefaultLanguageCode(ctx context.Context) (string, error)

	// ActiveMenuID evaluates the screen's schedule; the evaluation itself is
	// opaque to this subsystem. FallbackMenuID is the first assigned menu by
	// display order. Both report false when nothing applies.
	ActiveMenuID(ctx context.Context, screenID uint64) (uint64, bool, error)
	FallbackMenuID(ctx context.Context, screenID uint64) (uint64, bool, error)
	// MenuWithItems returns nil (no error) for a missing or inactive menu.
	MenuWithItems(ctx context.Context, menuID uint64, lang string) (*model.Menu, error)
	ListMenuSchedules(ctx context.Context, screenID uint64) ([]model.MenuSchedule, error)

	ListRotations(ctx context.Context, screenID uint64) ([]model.TemplateRotation, error)
	TemplateWithBlocks(ctx context.Context, templateID uint64) (*model.Template, error)
	ListScreenBlocks(ctx context.Context, screenID uint64) ([]model.ScreenBlock, error)
	ListScreenBlockContents(ctx context.Context, blockIDs []uint64) ([]model.BlockContent, error)
	ListTemplateBlockContents(ctx context.Context, templateBlockIDs []uint64) ([]model.BlockContent, error)

	// Bulk reads used only by the batch loader.
	ItemsByID(ctx context.Context, itemIDs []uint64, lang string) ([]model.MenuItem, error)
	ItemsByMenu(ctx context.Context, menuIDs []uint64, lang string) ([]model.MenuItem, error)
	MenuIDByBusinessAndName(ctx context.Context, businessID uint64, name string) (uint64, bool, error)
}
