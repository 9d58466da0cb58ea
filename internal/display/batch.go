package display

import (
	"context"

	"github.com/orhanozan33/menuslide-sub001/internal/model"
)

// fallbackMenuSuffix names the convention menu the batch loader looks up for
// product_list rows that reference no menu at all: a menu of the owning
// business named after the template.
const fallbackMenuSuffix = " Menu"

// loadContentBatch attaches referenced catalog data to the content views.
// Store round-trips stay O(1) per content type regardless of row count:
//
//   - single_product rows: one bulk read over the union of item ids.
//   - product_list rows: one bulk read over the union of resolved menu ids,
//     where each row resolves explicit menu id -> active menu -> (template
//     present) a lookup by the template's display name, computed at most once
//     for the whole batch.
func (a *Assembler) loadContentBatch(ctx context.Context, contents []ContentView, lang string, activeMenuID uint64, haveActiveMenu bool, businessID uint64, template *TemplateView) error {
	if err := a.attachSingleProducts(ctx, contents, lang); err != nil {
		return err
	}
	return a.attachProductLists(ctx, contents, lang, activeMenuID, haveActiveMenu, businessID, template)
}

func (a *Assembler) attachSingleProducts(ctx context.Context, contents []ContentView, lang string) error {
	idSet := make(map[uint64]struct{})
	for i := range contents {
		if contents[i].ContentType == model.ContentTypeSingleProduct && contents[i].MenuItemID != 0 {
			idSet[contents[i].MenuItemID] = struct{}{}
		}
	}
	if len(idSet) == 0 {
		return nil
	}
	ids := make([]uint64, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}
	items, err := a.store.ItemsByID(ctx, ids, lang)
	if err != nil {
		return err
	}
	byID := make(map[uint64]MenuItemView, len(items))
	for _, it := range items {
		byID[it.ID] = itemView(it)
	}
	for i := range contents {
		if contents[i].ContentType != model.ContentTypeSingleProduct || contents[i].MenuItemID == 0 {
			continue
		}
		if it, ok := byID[contents[i].MenuItemID]; ok {
			v := it
			contents[i].MenuItem = &v
		}
	}
	return nil
}

func (a *Assembler) attachProductLists(ctx context.Context, contents []ContentView, lang string, activeMenuID uint64, haveActiveMenu bool, businessID uint64, template *TemplateView) error {
	hasLists := false
	for i := range contents {
		if contents[i].ContentType == model.ContentTypeProductList {
			hasLists = true
			break
		}
	}
	if !hasLists {
		return nil
	}

	// Memoized template-name fallback, resolved at most once per batch.
	fallbackFetched := false
	var fallbackID uint64
	var fallbackOK bool
	resolveFallback := func() (uint64, bool, error) {
		if fallbackFetched {
			return fallbackID, fallbackOK, nil
		}
		fallbackFetched = true
		if template == nil || businessID == 0 {
			return 0, false, nil
		}
		id, ok, err := a.store.MenuIDByBusinessAndName(ctx, businessID, template.DisplayName+fallbackMenuSuffix)
		if err != nil {
			return 0, false, err
		}
		fallbackID, fallbackOK = id, ok
		return id, ok, nil
	}

	resolveMenuID := func(c *ContentView) (uint64, bool, error) {
		if c.MenuID != 0 {
			return c.MenuID, true, nil
		}
		if haveActiveMenu {
			return activeMenuID, true, nil
		}
		return resolveFallback()
	}

	menuIDSet := make(map[uint64]struct{})
	for i := range contents {
		if contents[i].ContentType != model.ContentTypeProductList {
			continue
		}
		id, ok, err := resolveMenuID(&contents[i])
		if err != nil {
			return err
		}
		if ok {
			menuIDSet[id] = struct{}{}
		}
	}

	byMenu := make(map[uint64][]MenuItemView)
	if len(menuIDSet) > 0 {
		menuIDs := make([]uint64, 0, len(menuIDSet))
		for id := range menuIDSet {
			menuIDs = append(menuIDs, id)
		}
		items, err := a.store.ItemsByMenu(ctx, menuIDs, lang)
		if err != nil {
			return err
		}
		for _, it := range items {
			byMenu[it.MenuID] = append(byMenu[it.MenuID], itemView(it))
		}
	}

	for i := range contents {
		if contents[i].ContentType != model.ContentTypeProductList {
			continue
		}
		id, ok, err := resolveMenuID(&contents[i])
		if err != nil {
			return err
		}
		if !ok {
			contents[i].MenuItems = []MenuItemView{}
			continue
		}
		items := byMenu[id]
		if items == nil {
			items = []MenuItemView{}
		}
		contents[i].MenuItems = items
	}
	return nil
}
