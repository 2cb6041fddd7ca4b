package geo

import (
	"fmt"
	"net"

	"github.com/oschwald/maxminddb-golang"
)

type (
	// MaxMind resolves countries from a GeoLite2 or GeoIP2 Country database
	MaxMind struct {
		reader   *maxminddb.Reader
		language string
	}

	countryNames struct {
		ISOCode string            `maxminddb:"iso_code"`
		Names   map[string]string `maxminddb:"names"`
	}

	countryRecord struct {
		Country           countryNames `maxminddb:"country"`
		RegisteredCountry countryNames `maxminddb:"registered_country"`
	}
)

// OpenMaxMind opens the database at path. Country names are reported in
// language, falling back to English.
func OpenMaxMind(path string, language string) (*MaxMind, error) {
	reader, err := maxminddb.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open country database %s: %w", path, err)
	}
	if language == "" {
		language = "en"
	}
	return &MaxMind{reader: reader, language: language}, nil
}

// Country returns the country name for ip
func (m *MaxMind) Country(ip string) (string, error) {
	addr := net.ParseIP(ip)
	if addr == nil {
		return "", fmt.Errorf("invalid IP address %q", ip)
	}

	var record countryRecord
	_, found, err := m.reader.LookupNetwork(addr, &record)
	if err != nil {
		return "", err
	}
	if !found {
		return "", ErrNotFound
	}

	if name := record.Country.name(m.language); name != "" {
		return name, nil
	}
	// anycast and satellite ranges only carry the registering country
	if name := record.RegisteredCountry.name(m.language); name != "" {
		return name, nil
	}
	return "", ErrNotFound
}

// Close releases the database
func (m *MaxMind) Close() error {
	return m.reader.Close()
}

func (c countryNames) name(language string) string {
	if name, ok := c.Names[language]; ok && name != "" {
		return name
	}
	return c.Names["en"]
}
