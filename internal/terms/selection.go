package terms

// SelectionKind says which representation a stored category selection uses.
type SelectionKind int

const (
	// Unset means no selection was stored; callers fall back to defaults.
	Unset SelectionKind = iota
	// ByName is the current at-rest form: human-readable category names.
	ByName
	// ByID is the accepted legacy form: remote numeric IDs.
	ByID
)

// Selection is a tagged view of a metadata category array. Exactly one of
// Names or IDs is populated, matching Kind.
type Selection struct {
	Kind  SelectionKind
	Names []string
	IDs   []int
}

// ParseSelection classifies a raw category array pulled from metadata.
// The first element's type decides the mode for the whole array: a string
// first element means name-mode (numeric parsing is never attempted on
// it), a numeric one means ID-mode. Elements that do not fit the detected
// mode are skipped. An empty or nil array is Unset.
func ParseSelection(raw []any) Selection {
	if len(raw) == 0 {
		return Selection{Kind: Unset}
	}

	if _, ok := raw[0].(string); ok {
		names := make([]string, 0, len(raw))
		for _, v := range raw {
			if s, ok := v.(string); ok && s != "" {
				names = append(names, s)
			}
		}
		if len(names) == 0 {
			return Selection{Kind: Unset}
		}
		return Selection{Kind: ByName, Names: names}
	}

	ids := make([]int, 0, len(raw))
	for _, v := range raw {
		if id, ok := asInt(v); ok {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return Selection{Kind: Unset}
	}
	return Selection{Kind: ByID, IDs: ids}
}

// asInt accepts the numeric shapes YAML and JSON decoders produce.
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}
