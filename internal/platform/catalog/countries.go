package catalog

import (
	"bufio"
	_ "embed"
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

//go:embed countries.txt
var countryCodes string

// Countries returns the ISO 3166-1 alpha-2 country catalog labelled in locale.
// Labels fall back to English, then to the code itself, when locale has no name data.
func Countries(locale language.Tag) (*Set, error) {
	namer := display.Regions(locale)
	if namer == nil {
		namer = display.Regions(language.English)
	}

	var entries []Entry
	sc := bufio.NewScanner(strings.NewReader(countryCodes))
	for sc.Scan() {
		code := strings.TrimSpace(sc.Text())
		if code == "" || strings.HasPrefix(code, "#") {
			continue
		}
		region, err := language.ParseRegion(code)
		if err != nil {
			return nil, fmt.Errorf("country %q: %w", code, err)
		}
		label := code
		if namer != nil {
			if name := namer.Name(region); name != "" {
				label = name
			}
		}
		entries = append(entries, Entry{Value: code, Label: label})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return New(entries)
}
