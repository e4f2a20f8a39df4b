package models

// Scope selects the kinds an operation covers.
type Scope struct {
	Pages    bool
	KB       bool
	Services bool
	Products bool
	Settings bool
}

// FullScope covers every kind.
func FullScope() Scope {
	return Scope{Pages: true, KB: true, Services: true, Products: true, Settings: true}
}

// ScopeFromFlags builds a scope from the --pages-only, --kb-only and
// --settings-only flags. No flag set means every kind.
func ScopeFromFlags(pagesOnly bool, kbOnly bool, settingsOnly bool) Scope {
	if !pagesOnly && !kbOnly && !settingsOnly {
		return FullScope()
	}
	return Scope{Pages: pagesOnly, KB: kbOnly, Settings: settingsOnly}
}

// IsFull reports whether the scope covers every kind.
func (s Scope) IsFull() bool {
	return s == FullScope()
}

// Includes reports whether kind is covered.
func (s Scope) Includes(kind Kind) bool {
	switch kind {
	case KindPages:
		return s.Pages
	case KindKB:
		return s.KB
	case KindServices:
		return s.Services
	case KindProducts:
		return s.Products
	case KindSettings:
		return s.Settings
	}
	return false
}
