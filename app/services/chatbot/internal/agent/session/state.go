package session

type State string

const (
	StateStart       State = "START"
	StateQualify     State = "QUALIFY"
	StateHumanDetail State = "HUMAN_DETAIL"
	StatePetDetail   State = "PET_DETAIL"
	StateCollectData State = "COLLECT_DATA"
	StateClose       State = "CLOSE"
	StateDone        State = "DONE"
)

// States lists every state in lifecycle order.
var States = []State{
	StateStart, StateQualify, StateHumanDetail, StatePetDetail, StateCollectData, StateClose, StateDone,
}

// ParseState maps a stored value back to a State; anything unknown restarts
// the conversation.
func ParseState(s string) State {
	st := State(s)
	switch st {
	case StateStart, StateQualify, StateHumanDetail, StatePetDetail, StateCollectData, StateClose, StateDone:
		return st
	default:
		return StateStart
	}
}

func (s State) String() string {
	return string(s)
}
