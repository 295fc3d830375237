package models

// CategoryMiscellaneous is the terminal catch-all bucket. It has no keywords
// and receives every description no other rule matches.
const CategoryMiscellaneous = "miscellaneous"

// Required input columns.
const (
	ColumnDate        = "date"
	ColumnAmount      = "amount"
	ColumnDescription = "description"
)

// RequiredColumns lists the input columns every expense file must carry.
var RequiredColumns = []string{ColumnDate, ColumnAmount, ColumnDescription}

// File permissions
const (
	PermissionFile      = 0644
	PermissionDirectory = 0750
)
