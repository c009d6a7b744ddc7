package language

// Direction is the text direction of a language.
type Direction string

const (
	DirectionLTR Direction = "ltr"
	DirectionRTL Direction = "rtl"
)

// Language describes one language of a localization project. It is immutable
// once resolved for a pass.
type Language struct {
	ID        int64
	Locale    string
	Name      string
	Direction Direction
	IsDefault bool
	IsBestFit bool
}

// IndexEntry pairs a language with its retrieval metadata. The content URL is
// consumed by the resolver only; it is never embedded in generated code.
type IndexEntry struct {
	Language
	ContentURL string
}

// List is the ordered language index of a project, as returned by the
// resolver. Order is preserved into the emitted registry.
type List []IndexEntry

// Default returns the entry flagged as the project's default language.
func (l List) Default() (IndexEntry, bool) {
	for _, entry := range l {
		if entry.IsDefault {
			return entry, true
		}
	}
	return IndexEntry{}, false
}

// BundledTranslation is the verbatim payload retrieved for one locale.
type BundledTranslation struct {
	Locale  string
	Payload string
}

// BundledSet maps locales to their raw payloads, in language-list order.
type BundledSet []BundledTranslation
