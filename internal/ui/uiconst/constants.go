package uiconst

// Table column widths
const (
	ColWidthMin      = 8  // Narrowest auto-sized column
	ColWidthID       = 10 // Short record ids
	ColWidthAvatar   = 6  // Initials chip
	ColWidthName     = 22 // Name columns
	ColWidthEmail    = 28 // Email columns
	ColWidthPhone    = 16 // Phone numbers
	ColWidthCompany  = 18 // Company / category
	ColWidthRole     = 10 // Role column
	ColWidthStatus   = 18 // Status badges ("Anonymous Guest" plus mark)
	ColWidthCount    = 10 // Attendees, capacities
	ColWidthAmount   = 12 // Money amounts
	ColWidthDate     = 12 // Dates (2006-01-02)
	ColWidthSlots    = 24 // Delivery time slots
	ColWidthPrices   = 40 // Price summaries
	ColWidthCategory = 10 // Search result category
)

// Table height constants
const (
	TableHeightOffset  = 6  // Subtracted from terminal height: m.height - TableHeightOffset
	TableHeightDefault = 20 // Default height for static tables (render helpers)
)
