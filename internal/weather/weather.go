// Package weather maps reported conditions to the weather categories
// the dashboard knows how to draw.
package weather

// Type is a weather category.
type Type int

const (
	Undefined Type = iota
	Unknown
	Sunny
	PartlyCloudy
	PartlyCloudyNight
	Cloudy
	Rainy
	RainySnowy
	Snowy
	Foggy
	ClearNight
	Exceptional
	Stormy
)

// DayTime qualifies conditions that look different by day and by night.
type DayTime int

const (
	Day DayTime = iota
	Night
	Dawn
	Dusk
	UnknownTime
	AnyTime
)

// DayTimeFromBool converts the legacy daytime flag.
func DayTimeFromBool(daytime bool) DayTime {
	if daytime {
		return Day
	}
	return Night
}

type entry struct {
	kind      Type
	icon      string
	condition string
	time      DayTime
	overlay   string
}

var table = []entry{
	{Undefined, "weather/undefined", "undefined", AnyTime, ""},
	{Unknown, "weather/unknown", "unknown", AnyTime, ""},
	{Sunny, "weather/sunny", "sunny", AnyTime, ""},
	{PartlyCloudy, "weather/partlycloudy", "partlycloudy", Day, ""},
	{PartlyCloudyNight, "weather/partlycloudy-night", "partlycloudy", Night, ""},
	{Cloudy, "weather/cloudy", "cloudy", AnyTime, ""},
	{Rainy, "weather/rainy", "rainy", AnyTime, ""},
	{RainySnowy, "weather/snowy-rainy", "snowy-rainy", AnyTime, ""},
	{Snowy, "weather/snowy", "snowy", AnyTime, ""},
	{Foggy, "weather/fog", "fog", AnyTime, ""},
	{ClearNight, "weather/clear-night", "clear-night", AnyTime, ""},
	{Exceptional, "weather/exceptional", "exceptional", AnyTime, ""},
	{Stormy, "weather/rainy", "lightning-rainy", AnyTime, "weather/lightning-bolt"},
}

// aliases folds condition strings that share a category.
var aliases = map[string]string{
	"rainy-snowy": "snowy-rainy",
	"pouring":     "rainy",
	"lightning":   "lightning-rainy",
	"hail":        "snowy-rainy",
	"clear":       "sunny",
}

func normalize(condition string) string {
	if alias, ok := aliases[condition]; ok {
		return alias
	}
	return condition
}

// Lookup returns the first category matching condition.
func Lookup(condition string) Type {
	condition = normalize(condition)
	for _, e := range table {
		if e.condition == condition {
			return e.kind
		}
	}
	return Undefined
}

// LookupAt returns the category matching condition at the given time of
// day. Entries that apply at any time always match.
func LookupAt(condition string, t DayTime) Type {
	condition = normalize(condition)
	if condition == "sunny" && t == Night {
		return ClearNight
	}
	for _, e := range table {
		if e.condition == condition && (e.time == t || e.time == AnyTime) {
			return e.kind
		}
	}
	return Undefined
}

func (t Type) find() entry {
	for _, e := range table {
		if e.kind == t {
			return e
		}
	}
	return table[0]
}

// Icon returns the icon key for t.
func (t Type) Icon() string { return t.find().icon }

// Overlay returns the key of an icon flashed over t, or "".
func (t Type) Overlay() string { return t.find().overlay }

// String returns the condition name of t.
func (t Type) String() string {
	e := t.find()
	if e.kind == PartlyCloudyNight {
		return "partlycloudy-night"
	}
	return e.condition
}
