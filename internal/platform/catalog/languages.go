package catalog

import (
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Profile languages.
const (
	Finnish = "FINNISH"
	English = "ENGLISH"
	Swedish = "SWEDISH"
)

var languageTags = []struct {
	value string
	tag   language.Tag
}{
	{Finnish, language.Finnish},
	{English, language.English},
	{Swedish, language.Swedish},
}

// Languages returns the profile language catalog labelled in locale.
func Languages(locale language.Tag) (*Set, error) {
	namer := display.Languages(locale)
	entries := make([]Entry, 0, len(languageTags))
	for _, l := range languageTags {
		label := l.value
		if namer != nil {
			if name := namer.Name(l.tag); name != "" {
				label = name
			}
		}
		entries = append(entries, Entry{Value: l.value, Label: label})
	}
	return New(entries)
}
