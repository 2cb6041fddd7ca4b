package util

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSubnets(t *testing.T) {
	testCases := []struct {
		msg     string
		entries []string
		out     []string
		wantErr bool
	}{
		{
			msg:     "cidr blocks",
			entries: []string{"192.168.16.0/24", "2001:db8::/32"},
			out:     []string{"192.168.16.0/24", "2001:db8::/32"},
		},
		{
			msg:     "bare addresses become host networks",
			entries: []string{"192.168.100.100", "2001:db8::1"},
			out:     []string{"192.168.100.100/32", "2001:db8::1/128"},
		},
		{
			msg:     "host bits are masked off",
			entries: []string{"10.1.2.3/8"},
			out:     []string{"10.0.0.0/8"},
		},
		{
			msg:     "empty whitelist",
			entries: nil,
			out:     nil,
		},
		{
			msg:     "garbage",
			entries: []string{"192.168.16.50", "invalidIP"},
			wantErr: true,
		},
		{
			msg:     "bad prefix",
			entries: []string{"300.0.0.0/24"},
			wantErr: true,
		},
	}

	for _, testCase := range testCases {
		subnets, err := ParseSubnets(testCase.entries)
		if testCase.wantErr {
			assert.Error(t, err, testCase.msg)
			assert.Nil(t, subnets, testCase.msg)
			continue
		}
		require.NoError(t, err, testCase.msg)

		var got []string
		for _, subnet := range subnets {
			got = append(got, subnet.String())
		}
		assert.Equal(t, testCase.out, got, testCase.msg)
	}
}

func TestContainsIP(t *testing.T) {
	subnets, err := ParseSubnets([]string{"127.0.0.1", "192.168.16.0/24", "2001:db8::1"})
	require.NoError(t, err)

	assert.True(t, ContainsIP(subnets, net.ParseIP("127.0.0.1")))
	assert.True(t, ContainsIP(subnets, net.ParseIP("192.168.16.51")))
	assert.True(t, ContainsIP(subnets, net.ParseIP("2001:db8::1")))
	assert.True(t, ContainsIP(subnets, net.ParseIP("::ffff:127.0.0.1")), "v4-mapped addresses match v4 entries")
	assert.False(t, ContainsIP(subnets, net.ParseIP("127.0.0.2")))
	assert.False(t, ContainsIP(subnets, net.ParseIP("2001:db8::2")))
	assert.False(t, ContainsIP(subnets, net.ParseIP("not-an-ip")))
	assert.False(t, ContainsIP(nil, net.ParseIP("127.0.0.1")))
}
