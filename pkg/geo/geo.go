// Package geo attributes source addresses to countries
package geo

import (
	"errors"
	"fmt"

	"github.com/activecm/cowrie-analyzer/pkg/counter"
)

// ErrNotFound is returned when an address has no country
var ErrNotFound = errors.New("address not found in country database")

type (
	// Resolver maps an IP address to a country name
	Resolver interface {
		Country(ip string) (string, error)
	}

	// Report holds the per country tallies of an attribution pass
	Report struct {
		// UniqueIPs is the number of distinct source addresses attributed
		UniqueIPs int
		// ByIP counts each source address once
		ByIP *counter.Counter[string]
		// ByVolume counts every login attempt of each source address
		ByVolume *counter.Counter[string]
	}
)

// Attribute resolves every address in ips, walking them by descending
// attempt count. The first resolver error aborts the pass.
func Attribute(resolver Resolver, ips *counter.Counter[string]) (*Report, error) {
	report := &Report{
		ByIP:     counter.New[string](),
		ByVolume: counter.New[string](),
	}

	for _, entry := range ips.Sorted() {
		country, err := resolver.Country(entry.Key)
		if err != nil {
			return nil, fmt.Errorf("could not attribute %s: %w", entry.Key, err)
		}
		report.UniqueIPs++
		report.ByIP.Increment(country)
		report.ByVolume.Add(country, entry.Count)
	}

	return report, nil
}
