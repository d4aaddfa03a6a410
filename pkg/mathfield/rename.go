package mathfield

// renameTable maps prop names that collide with Go-side or JSX-era spellings
// to their DOM attribute names.
var renameTable = map[string]string{
	"className": "class",
	"htmlFor":   "for",
}

// Normalize returns the DOM spelling of a prop name.
func Normalize(name string) string {
	if to, ok := renameTable[name]; ok {
		return to
	}
	return name
}
