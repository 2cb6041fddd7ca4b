package parsetypes

import (
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type (
	// Event holds a single line of a Cowrie JSON log
	Event struct {
		EventID   string
		Timestamp string
		SrcIP     string
		Username  string
		Password  string
		Session   string
		Sensor    string
		Protocol  string
		Message   string

		// present records which of the login fields appeared in the record
		present fieldSet
	}

	fieldSet uint8

	// cowrieRecord mirrors the on-disk layout. Pointers distinguish a field
	// which is absent from one which is present but empty; Cowrie logs
	// empty passwords as "".
	cowrieRecord struct {
		EventID   *string `json:"eventid"`
		Timestamp *string `json:"timestamp"`
		SrcIP     *string `json:"src_ip"`
		Username  *string `json:"username"`
		Password  *string `json:"password"`
		Session   string  `json:"session"`
		Sensor    string  `json:"sensor"`
		Protocol  string  `json:"protocol"`
		Message   string  `json:"message"`
	}
)

const (
	hasEventID fieldSet = 1 << iota
	hasTimestamp
	hasSrcIP
	hasUsername
	hasPassword
)

var fieldNames = []struct {
	flag fieldSet
	name string
}{
	{hasEventID, FieldEventID},
	{hasTimestamp, FieldTimestamp},
	{hasSrcIP, FieldSrcIP},
	{hasUsername, FieldUsername},
	{hasPassword, FieldPassword},
}

// UnmarshalJSON decodes a Cowrie record and remembers which login fields
// were present
func (e *Event) UnmarshalJSON(data []byte) error {
	var rec cowrieRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}

	*e = Event{
		Session:  rec.Session,
		Sensor:   rec.Sensor,
		Protocol: rec.Protocol,
		Message:  rec.Message,
	}
	e.EventID = e.take(rec.EventID, hasEventID)
	e.Timestamp = e.take(rec.Timestamp, hasTimestamp)
	e.SrcIP = e.take(rec.SrcIP, hasSrcIP)
	e.Username = e.take(rec.Username, hasUsername)
	e.Password = e.take(rec.Password, hasPassword)
	return nil
}

func (e *Event) take(value *string, flag fieldSet) string {
	if value == nil {
		return ""
	}
	e.present |= flag
	return *value
}

// IsLogin returns true if the event records a login attempt
func (e *Event) IsLogin() bool {
	return strings.Contains(e.EventID, LoginPrefix)
}

// Has returns true if the named field appeared in the record
func (e *Event) Has(field string) bool {
	for _, f := range fieldNames {
		if f.name == field {
			return e.present&f.flag != 0
		}
	}
	return false
}

// Missing returns the names of the given fields which did not appear in the record
func (e *Event) Missing(fields ...string) []string {
	var missing []string
	for _, field := range fields {
		if !e.Has(field) {
			missing = append(missing, field)
		}
	}
	return missing
}

// NewEvent builds a record carrying only an eventid, such as a session
// connect
func NewEvent(eventID string) Event {
	return Event{EventID: eventID, present: hasEventID}
}

// NewLoginEvent builds a login event with every login field present. It is
// mostly useful for building fixtures.
func NewLoginEvent(eventID, timestamp, srcIP, username, password string) Event {
	return Event{
		EventID:   eventID,
		Timestamp: timestamp,
		SrcIP:     srcIP,
		Username:  username,
		Password:  password,
		present:   hasEventID | hasTimestamp | hasSrcIP | hasUsername | hasPassword,
	}
}
