package selection

// Option is a single selectable entry in a derived option list.
type Option struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// Affiliations is the standard identity vocabulary at position 1 of a symbol
// code. It is fixed and independent of the symbology catalog.
var Affiliations = []Option{
	{Key: "P", Label: "Pending"},
	{Key: "U", Label: "Unknown"},
	{Key: "A", Label: "Assumed Friend"},
	{Key: "F", Label: "Friend"},
	{Key: "N", Label: "Neutral"},
	{Key: "S", Label: "Suspect"},
	{Key: "H", Label: "Hostile"},
	{Key: "G", Label: "Exercise Pending"},
	{Key: "W", Label: "Exercise Unknown"},
	{Key: "M", Label: "Exercise Assumed Friend"},
	{Key: "D", Label: "Exercise Friend"},
	{Key: "L", Label: "Exercise Neutral"},
	{Key: "J", Label: "Joker"},
	{Key: "K", Label: "Faker"},
}

// Statuses is the operational status vocabulary at position 3 of a symbol
// code. Fixed and independent of the catalog.
var Statuses = []Option{
	{Key: "A", Label: "Anticipated/Planned"},
	{Key: "P", Label: "Present"},
	{Key: "C", Label: "Present/Fully Capable"},
	{Key: "D", Label: "Present/Damaged"},
	{Key: "X", Label: "Present/Destroyed"},
	{Key: "F", Label: "Present/Full To Capacity"},
}

// syntheticModifiers1 lists modifier-1 entries appended to a dimension's
// option list even though they do not appear in the catalog data, keyed by
// dimension name. Future special cases are added here, not as branches.
var syntheticModifiers1 = map[string][]Option{
	"Ground Equipment": {
		{Key: "M", Label: "Mobility"},
		{Key: "N", Label: "Towed Array"},
	},
}

// modifier2Overrides replaces the dimension-derived modifier-2 option list
// wholesale when the matching modifier-1 key is selected.
var modifier2Overrides = map[string][]Option{
	"M": {
		{Key: "O", Label: "Wheeled (Limited Cross Country)"},
		{Key: "P", Label: "Wheeled (Cross Country)"},
		{Key: "Q", Label: "Tracked"},
		{Key: "R", Label: "Wheeled and Tracked Combination"},
		{Key: "S", Label: "Towed"},
		{Key: "T", Label: "Rail"},
		{Key: "U", Label: "Over Snow"},
		{Key: "V", Label: "Sled"},
		{Key: "W", Label: "Pack Animals"},
		{Key: "X", Label: "Barge"},
		{Key: "Y", Label: "Amphibious"},
	},
	"N": {
		{Key: "S", Label: "Towed Array (Short)"},
		{Key: "L", Label: "Towed Array (Long)"},
	},
}

func lookupOption(opts []Option, key string) (Option, bool) {
	for _, o := range opts {
		if o.Key == key {
			return o, true
		}
	}
	return Option{}, false
}
