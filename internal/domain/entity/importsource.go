package entity

// ImportSource identifies which adapter produced an article. It is distinct
// from Source, which carries the outlet name as reported by the provider.
type ImportSource string

// The closed set of import sources. Records created outside the ingestion
// pipeline (e.g. by an administrative API) carry ImportSourceDefault.
const (
	ImportSourceNewsAPI  ImportSource = "NewsAPI"
	ImportSourceGuardian ImportSource = "TheGuardian"
	ImportSourceNYTimes  ImportSource = "NYTimes"
	ImportSourceDefault  ImportSource = "Default"
)

const importSourceList = "NewsAPI, TheGuardian, NYTimes, Default"

// Valid reports whether s is one of the enumerated import sources.
func (s ImportSource) Valid() bool {
	switch s {
	case ImportSourceNewsAPI, ImportSourceGuardian, ImportSourceNYTimes, ImportSourceDefault:
		return true
	}
	return false
}

func (s ImportSource) String() string {
	return string(s)
}
