package model

// ScreenBlock is the per-screen materialization of a TemplateBlock.  The
// repository resolves geometry at query time: a screen-level override wins,
// a NULL override inherits the template value.  Animation fields always
// carry their defaults after the query (fade, 500ms, no delay).
type ScreenBlock struct {
	ID                uint64  // screen_blocks.id
	TemplateBlockID   uint64  // screen_blocks.template_block_id
	BlockIndex        int     // template_blocks.block_index (joined)
	PositionX         float64 // resolved position
	PositionY         float64
	Width             float64 // resolved size
	Height            float64
	ZIndex            int     // screen_blocks.z_index, 0 when unset
	AnimationType     string  // screen_blocks.animation_type, "fade" when unset
	AnimationDuration int     // screen_blocks.animation_duration, 500 when unset
	AnimationDelay    int     // screen_blocks.animation_delay, 0 when unset
}
