package config

// geoURNs maps recognized country names to LinkedIn geo URNs. Built once,
// read-only after init.
var geoURNs = map[string]string{
	"Israel":         "urn:li:geo:101620260",
	"United States":  "urn:li:geo:103644278",
	"United Kingdom": "urn:li:geo:101165590",
}

// GeoURN returns the LinkedIn geo URN for the configured country, or ""
// when the country is unknown.
func (c *Config) GeoURN() string {
	return geoURNs[c.Country]
}
