// Package plan expands the declarative configuration into ordered query
// units, grouped by the engine that will execute them. Planning is a pure
// function of the configuration: no randomization, no network calls.
package plan

import (
	"fmt"

	"golang.org/x/text/unicode/norm"

	"github.com/sells-group/leadsearch-cli/internal/config"
)

// Unit is one discrete request descriptor targeted at a specific engine.
// Units are immutable and consumed exactly once.
type Unit struct {
	Segment string
	Label   string
	Query   string
}

// SearchUnits expands segments into web-search query units. Hebrew titles
// are inherently local and emitted verbatim; English titles get the
// configured country appended as a filter token.
func SearchUnits(cfg *config.Config) []Unit {
	var units []Unit

	for _, seg := range cfg.Segments {
		for _, title := range seg.PersonaTitles.Hebrew {
			units = append(units, Unit{
				Segment: seg.Name,
				Label:   fmt.Sprintf("%s-he", seg.Name),
				Query:   fmt.Sprintf(`site:linkedin.com/in "%s"`, nfc(title)),
			})
		}
		for _, title := range seg.PersonaTitles.English {
			query := fmt.Sprintf(`site:linkedin.com/in "%s"`, title)
			if cfg.Country != "" {
				query += " " + cfg.Country
			}
			units = append(units, Unit{
				Segment: seg.Name,
				Label:   fmt.Sprintf("%s-en", seg.Name),
				Query:   query,
			})
		}
	}

	return units
}

// NetworkUnits expands segment keywords into LinkedIn search units. The
// per-session result cap is enforced by the engine, not here: the cap is
// measured in accepted results, not units.
func NetworkUnits(cfg *config.Config) []Unit {
	var units []Unit

	for _, seg := range cfg.Segments {
		for _, kw := range seg.Keywords {
			units = append(units, Unit{
				Segment: seg.Name,
				Label:   fmt.Sprintf("%s-li", seg.Name),
				Query:   nfc(kw),
			})
		}
	}

	return units
}

// RegistryUnits expands org keywords into registry search units, Hebrew
// list first, order preserved.
func RegistryUnits(cfg *config.Config) []Unit {
	var units []Unit

	add := func(keywords []string, suffix string) {
		for _, kw := range keywords {
			units = append(units, Unit{
				Segment: "Organization",
				Label:   fmt.Sprintf("Organization-%s", suffix),
				Query:   nfc(kw),
			})
		}
	}
	add(cfg.OrgKeywords.Hebrew, "he")
	add(cfg.OrgKeywords.English, "en")

	return units
}

// nfc canonicalizes configured text so Hebrew keywords typed with combining
// marks match the provider's indexed form.
func nfc(s string) string { return norm.NFC.String(s) }
