package player

type Position string

const (
	PositionQuarterback  Position = "QB"
	PositionRunningBack  Position = "RB"
	PositionWideReceiver Position = "WR"
	PositionTightEnd     Position = "TE"
	PositionKicker       Position = "K"
	PositionDefense      Position = "DEF"
)

var AllPositions = map[Position]struct{}{
	PositionQuarterback:  {},
	PositionRunningBack:  {},
	PositionWideReceiver: {},
	PositionTightEnd:     {},
	PositionKicker:       {},
	PositionDefense:      {},
}

// Player is the real-world athlete a card represents.
type Player struct {
	ID          string
	Name        string
	Position    Position
	ExternalRef string
}
