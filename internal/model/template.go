package model

// Template is a reusable layout composed of positioned blocks.  Blocks are
// always returned ordered by their block index.
type Template struct {
	ID          uint64          // templates.id
	DisplayName string          // templates.display_name
	BlockCount  int             // templates.block_count
	Blocks      []TemplateBlock // template_blocks rows, ordered by block_index
}

// TemplateBlock is one rectangular region of a template.  Positions and
// sizes are percentages of the screen area.
type TemplateBlock struct {
	ID         uint64  // template_blocks.id
	BlockIndex int     // template_blocks.block_index
	PositionX  float64 // template_blocks.position_x
	PositionY  float64 // template_blocks.position_y
	Width      float64 // template_blocks.width
	Height     float64 // template_blocks.height
}

// TemplateRotation is one entry of a screen's timed template cycle.  When a
// screen has rotations, the cycle overrides the screen's static template and
// the client advances through it on its own using DisplayDuration.
type TemplateRotation struct {
	TemplateID      uint64 // screen_template_rotations.template_id
	DisplayDuration int    // screen_template_rotations.display_duration (seconds)
	DisplayOrder    int    // screen_template_rotations.display_order
	TemplateName    string // templates.display_name (joined)
	BlockCount      int    // templates.block_count (joined)
}
