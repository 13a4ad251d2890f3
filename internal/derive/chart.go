package derive

// weaknessChart is a simplified type chart: for each attacking-side
// weakness of a type, listed in display order. Read only.
var weaknessChart = map[string][]string{
	"grass":    {"fire", "ice", "poison", "flying", "bug"},
	"poison":   {"ground", "psychic"},
	"fire":     {"water", "ground", "rock"},
	"water":    {"electric", "grass"},
	"electric": {"ground"},
	"psychic":  {"bug", "ghost", "dark"},
	"ice":      {"fire", "fighting", "rock", "steel"},
	"dragon":   {"ice", "dragon", "fairy"},
	"dark":     {"fighting", "bug", "fairy"},
	"fairy":    {"poison", "steel"},
	"normal":   {"fighting"},
	"fighting": {"flying", "psychic", "fairy"},
	"flying":   {"electric", "ice", "rock"},
	"ground":   {"water", "grass", "ice"},
	"rock":     {"water", "grass", "fighting", "ground", "steel"},
	"bug":      {"fire", "flying", "rock"},
	"ghost":    {"ghost", "dark"},
	"steel":    {"fire", "fighting", "ground"},
}
