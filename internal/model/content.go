package model

import "database/sql"

// Content type tags for block content rows.  A row is one visual element
// inside a block; the type decides which optional fields are meaningful and
// whether the batch loader has to attach catalog data.
const (
	ContentTypeProductList   = "product_list"
	ContentTypeSingleProduct = "single_product"
	ContentTypeImage         = "image"
	ContentTypeIcon          = "icon"
	ContentTypeText          = "text"
	ContentTypePrice         = "price"
	ContentTypeCampaignBadge = "campaign_badge"
	ContentTypeVideo         = "video"
)

// BlockContent is one content row of a block.  Rows exist at two levels:
// screen_block_contents (per-screen edits) and template_block_contents
// (authored on the template).  Both share this shape; ScreenBlockID is zero
// for template-level rows until the assembler maps them onto a screen block.
type BlockContent struct {
	ID                 uint64          // primary key of the content row
	ScreenBlockID      uint64          // owning screen block (0 for template rows)
	TemplateBlockID    uint64          // owning template block
	ContentType        string          // one of the ContentType* tags
	ImageURL           sql.NullString
	IconName           sql.NullString
	Title              sql.NullString
	Description        sql.NullString
	Price              sql.NullFloat64
	CampaignText       sql.NullString
	BackgroundColor    sql.NullString
	BackgroundImageURL sql.NullString
	TextColor          sql.NullString
	TextPositionX      sql.NullFloat64
	TextPositionY      sql.NullFloat64
	TextSize           sql.NullInt32
	FontWeight         sql.NullString
	MenuItemID         sql.NullInt64 // referenced item for single_product rows
	MenuID             sql.NullInt64 // explicit menu for product_list rows
	DisplayOrder       int
}
