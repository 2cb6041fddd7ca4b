// Package credential tallies Cowrie login attempts by source address,
// username, password, credential pair and time.
package credential

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/activecm/cowrie-analyzer/parser/parsetypes"
	"github.com/activecm/cowrie-analyzer/pkg/bucket"
	"github.com/activecm/cowrie-analyzer/pkg/counter"
	"github.com/activecm/cowrie-analyzer/util"
)

// ErrMissingField is returned for a login event which lacks a field the
// statistics depend on
var ErrMissingField = errors.New("login event is missing a required field")

// PairSeparator joins a username and password into a single pair key
const PairSeparator = ":"

type (
	// Aggregator holds every frequency counter for a single run. It is not
	// safe for concurrent use.
	Aggregator struct {
		whitelist []*net.IPNet
		hourWidth int

		// SSHAttempts counts every login event which was not whitelisted.
		// Cowrie records do not distinguish SSH from Telnet in the fields we
		// read, so all attempts are treated as SSH.
		SSHAttempts int64
		// TelnetAttempts is reported next to SSHAttempts and stays zero
		// until the protocol is read from the records.
		TelnetAttempts int64

		SSHTimes  *counter.Counter[time.Time]
		SourceIPs *counter.Counter[string]
		Usernames *counter.Counter[string]
		Passwords *counter.Counter[string]
		Pairs     *counter.Counter[string]

		skipped int64
		ignored int64
	}
)

// NewAggregator creates an Aggregator which drops events from the
// whitelisted networks and buckets login times hourWidth hours wide
func NewAggregator(whitelist []*net.IPNet, hourWidth int) *Aggregator {
	return &Aggregator{
		whitelist: whitelist,
		hourWidth: hourWidth,
		SSHTimes:  counter.New[time.Time](),
		SourceIPs: counter.New[string](),
		Usernames: counter.New[string](),
		Passwords: counter.New[string](),
		Pairs:     counter.New[string](),
	}
}

// AddAll feeds every event to Add, stopping at the first error
func (a *Aggregator) AddAll(events []parsetypes.Event) error {
	for i := range events {
		if err := a.Add(&events[i]); err != nil {
			return err
		}
	}
	return nil
}

// Add updates the counters with a single event. A record without an eventid
// is an error. Events which are not login attempts and events from
// whitelisted addresses leave every counter untouched. A login event which is missing a field or carries an
// unparsable timestamp is an error, and no counter is updated for it.
func (a *Aggregator) Add(ev *parsetypes.Event) error {
	// every cowrie record names its event, a record without one is corrupt
	if !ev.Has(parsetypes.FieldEventID) {
		return fmt.Errorf("%w: %s (session %q)", ErrMissingField, parsetypes.FieldEventID, ev.Session)
	}

	if !ev.IsLogin() {
		a.ignored++
		return nil
	}

	if !ev.Has(parsetypes.FieldSrcIP) {
		return fmt.Errorf("%w: %s (session %q)", ErrMissingField, parsetypes.FieldSrcIP, ev.Session)
	}

	if a.IsWhitelisted(ev.SrcIP) {
		a.skipped++
		return nil
	}

	missing := ev.Missing(parsetypes.FieldTimestamp, parsetypes.FieldUsername, parsetypes.FieldPassword)
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s (session %q)", ErrMissingField, strings.Join(missing, ", "), ev.Session)
	}

	ts, err := util.ParseTimestamp(ev.Timestamp)
	if err != nil {
		return fmt.Errorf("login event from %s: %w", ev.SrcIP, err)
	}

	a.SSHAttempts++
	a.SSHTimes.Increment(bucket.ByHour(ts, a.hourWidth))

	a.SourceIPs.Increment(ev.SrcIP)
	a.Usernames.Increment(ev.Username)
	a.Passwords.Increment(ev.Password)
	a.Pairs.Increment(ev.Username + PairSeparator + ev.Password)
	return nil
}

// IsWhitelisted returns true if the address falls inside the whitelist
func (a *Aggregator) IsWhitelisted(srcIP string) bool {
	return util.ContainsIP(a.whitelist, net.ParseIP(srcIP))
}

// Skipped returns the number of login events dropped by the whitelist
func (a *Aggregator) Skipped() int64 {
	return a.skipped
}

// Ignored returns the number of events which were not login attempts
func (a *Aggregator) Ignored() int64 {
	return a.ignored
}
