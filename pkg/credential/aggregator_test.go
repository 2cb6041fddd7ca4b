package credential

import (
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/activecm/cowrie-analyzer/parser/files"
	"github.com/activecm/cowrie-analyzer/parser/parsetypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testWhitelist() []*net.IPNet {
	var nets []*net.IPNet
	for _, cidr := range []string{"127.0.0.1/32", "192.168.16.50/32", "192.168.16.51/32", "192.168.100.100/32"} {
		_, block, _ := net.ParseCIDR(cidr)
		nets = append(nets, block)
	}
	return nets
}

func login(ts, ip, user, pass string) parsetypes.Event {
	return parsetypes.NewLoginEvent(parsetypes.LoginFailed, ts, ip, user, pass)
}

func TestSingleLogin(t *testing.T) {
	agg := NewAggregator(testWhitelist(), 24)
	ev := parsetypes.NewLoginEvent(parsetypes.LoginSuccess, "2023-03-24T10:15:00", "1.2.3.4", "root", "123456")

	require.NoError(t, agg.Add(&ev))

	assert.Equal(t, int64(1), agg.SSHAttempts)
	assert.Equal(t, map[string]int64{"1.2.3.4": 1}, agg.SourceIPs.ToMap())
	assert.Equal(t, map[string]int64{"root": 1}, agg.Usernames.ToMap())
	assert.Equal(t, map[string]int64{"123456": 1}, agg.Passwords.ToMap())
	assert.Equal(t, map[string]int64{"root:123456": 1}, agg.Pairs.ToMap())
	assert.Equal(t, map[time.Time]int64{time.Date(2023, 3, 24, 0, 0, 0, 0, time.UTC): 1}, agg.SSHTimes.ToMap())
}

func TestWhitelistedLoginsCountNothing(t *testing.T) {
	agg := NewAggregator(testWhitelist(), 24)
	events := []parsetypes.Event{
		login("2023-03-24T10:15:00", "127.0.0.1", "root", "root"),
		login("2023-03-24T10:16:00", "127.0.0.1", "admin", "admin"),
	}

	require.NoError(t, agg.AddAll(events))

	assert.Equal(t, int64(0), agg.SSHAttempts)
	assert.Equal(t, 0, agg.SourceIPs.Len())
	assert.Equal(t, 0, agg.Usernames.Len())
	assert.Equal(t, 0, agg.Passwords.Len())
	assert.Equal(t, 0, agg.Pairs.Len())
	assert.Equal(t, 0, agg.SSHTimes.Len())
	assert.Equal(t, int64(2), agg.Skipped())
}

func TestWhitelistMatchesAddresses(t *testing.T) {
	agg := NewAggregator(testWhitelist(), 24)

	// address equality, not string equality
	assert.True(t, agg.IsWhitelisted("127.0.0.1"))
	assert.True(t, agg.IsWhitelisted("::ffff:127.0.0.1"))
	assert.True(t, agg.IsWhitelisted("::ffff:192.168.16.50"))
	assert.False(t, agg.IsWhitelisted("127.0.0.2"))
	assert.False(t, agg.IsWhitelisted("::1"))
	assert.False(t, agg.IsWhitelisted("not-an-ip"))

	mapped := login("2023-03-24T10:15:00", "::ffff:127.0.0.1", "root", "x")
	require.NoError(t, agg.Add(&mapped))
	assert.Equal(t, int64(1), agg.Skipped())
	assert.Equal(t, int64(0), agg.SSHAttempts)
}

func TestPairs(t *testing.T) {
	agg := NewAggregator(nil, 24)
	events := []parsetypes.Event{
		login("2023-03-24T10:15:00", "1.2.3.4", "admin", "admin"),
		login("2023-03-24T11:15:00", "5.6.7.8", "admin", "admin"),
	}

	require.NoError(t, agg.AddAll(events))
	assert.Equal(t, map[string]int64{"admin:admin": 2}, agg.Pairs.ToMap())
}

func TestValuesAreVerbatim(t *testing.T) {
	agg := NewAggregator(nil, 24)
	events := []parsetypes.Event{
		login("2023-03-24T10:15:00", "1.2.3.4", "Admin", ""),
		login("2023-03-24T10:15:00", "1.2.3.4", "admin", " "),
	}

	require.NoError(t, agg.AddAll(events))
	assert.Equal(t, map[string]int64{"Admin": 1, "admin": 1}, agg.Usernames.ToMap())
	assert.Equal(t, map[string]int64{"": 1, " ": 1}, agg.Passwords.ToMap())
	assert.Equal(t, map[string]int64{"Admin:": 1, "admin: ": 1}, agg.Pairs.ToMap())
}

func TestNonLoginEventsIgnored(t *testing.T) {
	agg := NewAggregator(nil, 24)
	events := []parsetypes.Event{
		parsetypes.NewEvent(parsetypes.SessionConnect),
		parsetypes.NewEvent("cowrie.command.input"),
		parsetypes.NewEvent(parsetypes.SessionClosed),
	}

	require.NoError(t, agg.AddAll(events))
	assert.Equal(t, int64(0), agg.SSHAttempts)
	assert.Equal(t, int64(3), agg.Ignored())
}

func TestMissingFields(t *testing.T) {
	agg := NewAggregator(testWhitelist(), 24)

	noIP := parsetypes.NewEvent(parsetypes.LoginFailed)
	assert.ErrorIs(t, agg.Add(&noIP), ErrMissingField)

	var noUser parsetypes.Event
	require.NoError(t, noUser.UnmarshalJSON([]byte(`{"eventid":"cowrie.login.failed","timestamp":"2023-03-24T10:15:00","src_ip":"1.2.3.4","password":"x"}`)))
	err := agg.Add(&noUser)
	assert.ErrorIs(t, err, ErrMissingField)
	assert.Contains(t, err.Error(), parsetypes.FieldUsername)

	// the whitelist is checked before the remaining fields
	var whitelisted parsetypes.Event
	require.NoError(t, whitelisted.UnmarshalJSON([]byte(`{"eventid":"cowrie.login.failed","src_ip":"127.0.0.1"}`)))
	assert.NoError(t, agg.Add(&whitelisted))

	assert.Equal(t, int64(0), agg.SSHAttempts)
	assert.Equal(t, 0, agg.SourceIPs.Len())
}

func TestTelnetLoginsCountAsSSH(t *testing.T) {
	agg := NewAggregator(nil, 24)
	ev, err := files.ParseJSONLine([]byte(`{"eventid":"cowrie.login.failed","timestamp":"2023-03-24T10:15:00Z","src_ip":"1.2.3.4","username":"root","password":"x","protocol":"telnet"}`))
	require.NoError(t, err)

	require.NoError(t, agg.Add(&ev))
	assert.Equal(t, int64(1), agg.SSHAttempts)
	assert.Equal(t, int64(0), agg.TelnetAttempts)
}

func TestMissingEventID(t *testing.T) {
	testCases := []struct {
		msg  string
		line string
	}{
		{"record without eventid", `{"timestamp":"2023-03-24T10:15:00","src_ip":"1.2.3.4","username":"root","password":"x"}`},
		{"null record", `null`},
		{"empty object", `{}`},
	}

	for _, testCase := range testCases {
		agg := NewAggregator(nil, 24)
		ev, err := files.ParseJSONLine([]byte(testCase.line))
		require.NoError(t, err, testCase.msg)

		err = agg.Add(&ev)
		assert.ErrorIs(t, err, ErrMissingField, testCase.msg)
		assert.Contains(t, err.Error(), parsetypes.FieldEventID, testCase.msg)
		assert.Equal(t, int64(0), agg.Ignored(), testCase.msg)
		assert.Equal(t, int64(0), agg.SSHAttempts, testCase.msg)
	}

	// AddAll stops at the corrupt record
	agg := NewAggregator(nil, 24)
	events := []parsetypes.Event{
		login("2023-03-24T10:15:00", "1.2.3.4", "root", "x"),
		{SrcIP: "1.2.3.4"},
		login("2023-03-24T10:16:00", "1.2.3.4", "root", "y"),
	}
	assert.ErrorIs(t, agg.AddAll(events), ErrMissingField)
	assert.Equal(t, int64(1), agg.SSHAttempts)
}

func TestBadTimestamp(t *testing.T) {
	agg := NewAggregator(nil, 24)
	ev := login("last tuesday", "1.2.3.4", "root", "root")
	assert.Error(t, agg.Add(&ev))
	assert.Equal(t, int64(0), agg.SSHAttempts)
	assert.Equal(t, 0, agg.Usernames.Len())
}

func TestHourWidth(t *testing.T) {
	agg := NewAggregator(nil, 6)
	events := []parsetypes.Event{
		login("2023-03-24T01:00:00", "1.2.3.4", "a", "b"),
		login("2023-03-24T05:59:59", "1.2.3.4", "a", "b"),
		login("2023-03-24T06:00:00", "1.2.3.4", "a", "b"),
	}
	require.NoError(t, agg.AddAll(events))

	assert.Equal(t, map[time.Time]int64{
		time.Date(2023, 3, 24, 0, 0, 0, 0, time.UTC): 2,
		time.Date(2023, 3, 24, 6, 0, 0, 0, time.UTC): 1,
	}, agg.SSHTimes.ToMap())
}

func generateEvents() []parsetypes.Event {
	ips := []string{"1.2.3.4", "127.0.0.1", "5.6.7.8", "192.168.16.50", "9.9.9.9", "45.1.2.3"}
	users := []string{"root", "admin", "ubuntu", "pi"}
	passwords := []string{"123456", "admin", "raspberry", "", "password"}

	var events []parsetypes.Event
	start := time.Date(2023, 3, 20, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 300; i++ {
		ts := start.Add(time.Duration(i*47) * time.Minute).Format(time.RFC3339)
		if i%7 == 0 {
			connect := parsetypes.NewEvent(parsetypes.SessionConnect)
			connect.SrcIP = ips[i%len(ips)]
			events = append(events, connect)
			continue
		}
		events = append(events, login(ts, ips[i%len(ips)], users[i%len(users)], passwords[i%len(passwords)]))
	}
	return events
}

// every counter sums to the number of counted login attempts
func TestCounterTotalsMatchAttempts(t *testing.T) {
	agg := NewAggregator(testWhitelist(), 24)
	require.NoError(t, agg.AddAll(generateEvents()))

	require.True(t, agg.SSHAttempts > 0)
	assert.Equal(t, agg.SSHAttempts, agg.SourceIPs.Total())
	assert.Equal(t, agg.SSHAttempts, agg.Usernames.Total())
	assert.Equal(t, agg.SSHAttempts, agg.Passwords.Total())
	assert.Equal(t, agg.SSHAttempts, agg.Pairs.Total())
	assert.Equal(t, agg.SSHAttempts, agg.SSHTimes.Total())
}

// dropping whitelisted events up front produces the same counters
func TestWhitelistEquivalence(t *testing.T) {
	events := generateEvents()

	full := NewAggregator(testWhitelist(), 24)
	require.NoError(t, full.AddAll(events))

	var filtered []parsetypes.Event
	for _, ev := range events {
		if ev.IsLogin() && full.IsWhitelisted(ev.SrcIP) {
			continue
		}
		filtered = append(filtered, ev)
	}
	require.Less(t, len(filtered), len(events))

	pre := NewAggregator(testWhitelist(), 24)
	require.NoError(t, pre.AddAll(filtered))

	assert.Equal(t, full.SSHAttempts, pre.SSHAttempts)
	assert.Equal(t, full.SourceIPs.Entries(), pre.SourceIPs.Entries())
	assert.Equal(t, full.Usernames.Entries(), pre.Usernames.Entries())
	assert.Equal(t, full.Passwords.Entries(), pre.Passwords.Entries())
	assert.Equal(t, full.Pairs.Entries(), pre.Pairs.Entries())
	assert.Equal(t, full.SSHTimes.Entries(), pre.SSHTimes.Entries())
	assert.Equal(t, int64(0), pre.Skipped())
}

func ExampleAggregator_Add() {
	agg := NewAggregator(nil, 24)
	ev := parsetypes.NewLoginEvent(parsetypes.LoginFailed, "2023-03-24T10:15:00Z", "203.0.113.9", "root", "toor")
	if err := agg.Add(&ev); err != nil {
		panic(err)
	}
	fmt.Println(agg.SSHAttempts, agg.Pairs.Count("root:toor"))
	// Output: 1 1
}
