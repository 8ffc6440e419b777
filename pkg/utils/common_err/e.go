package common_err

const (
	SUCCESS       = 200
	SERVICE_ERROR = 500
	CLIENT_ERROR  = 400

	INVALID_PARAMS       = 10001
	UNAUTHORIZED         = 10002
	PAYLOAD_TOO_LARGE    = 10003
	MALFORMED_DOCUMENT   = 10010
	INVALID_EVENT        = 10011
	VOCABULARY_REJECTED  = 10012
	EVENT_NOT_EXIST      = 10020
	VOCABULARY_NOT_EXIST = 10021
	PERSIST_ERROR        = 10030
)

var MsgFlags = map[int]string{
	SUCCESS:       "ok",
	SERVICE_ERROR: "Fail",
	CLIENT_ERROR:  "Fail",

	INVALID_PARAMS:       "invalid params",
	UNAUTHORIZED:         "unauthorized",
	PAYLOAD_TOO_LARGE:    "payload too large",
	MALFORMED_DOCUMENT:   "malformed EPCIS document",
	INVALID_EVENT:        "invalid event",
	VOCABULARY_REJECTED:  "unknown vocabulary",
	EVENT_NOT_EXIST:      "event does not exist",
	VOCABULARY_NOT_EXIST: "vocabulary does not exist",
	PERSIST_ERROR:        "failed to store events",
}

// GetMsg get error information based on Code
func GetMsg(code int) string {
	msg, ok := MsgFlags[code]
	if ok {
		return msg
	}
	return MsgFlags[SERVICE_ERROR]
}
