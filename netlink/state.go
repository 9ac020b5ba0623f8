package netlink

// state tracks where an enumeration stands. Done is the only successful
// terminal state.
type state int

const (
	stateInit state = iota
	stateRequestSent
	stateReceiving
	stateDone
	stateError
	stateTransportFailure
	stateNameResolutionFailure
)

var stateName = map[state]string{
	stateInit:                  "INIT",
	stateRequestSent:           "REQUEST_SENT",
	stateReceiving:             "RECEIVING",
	stateDone:                  "DONE",
	stateError:                 "ERROR",
	stateTransportFailure:      "TRANSPORT_FAILURE",
	stateNameResolutionFailure: "NAME_RESOLUTION_FAILURE",
}

func (s state) String() string {
	return stateName[s]
}

func (s state) terminal() bool {
	return s >= stateDone
}
