package parsetypes

// Cowrie event identifiers. Every login attempt is logged as either a
// success or a failure; both share the LoginPrefix.
const (
	// LoginPrefix is the common prefix of the login event identifiers
	LoginPrefix = "cowrie.login"

	// LoginSuccess is logged when the honeypot accepts the credentials
	LoginSuccess = "cowrie.login.success"

	// LoginFailed is logged when the honeypot rejects the credentials
	LoginFailed = "cowrie.login.failed"

	// SessionConnect is logged when a new connection is accepted
	SessionConnect = "cowrie.session.connect"

	// SessionClosed is logged when a connection is torn down
	SessionClosed = "cowrie.session.closed"
)

// Field names of a Cowrie JSON record which the analysis depends on
const (
	FieldEventID   = "eventid"
	FieldTimestamp = "timestamp"
	FieldSrcIP     = "src_ip"
	FieldUsername  = "username"
	FieldPassword  = "password"
)
