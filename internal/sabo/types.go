package sabo

// TournamentStatus defines the lifecycle state of a tournament.
type TournamentStatus string

const (
	TournamentDraft      TournamentStatus = "draft"
	TournamentInProgress TournamentStatus = "in_progress"
	TournamentCompleted  TournamentStatus = "completed"
)

// GroupStatus defines the lifecycle state of one 16-player group bracket.
type GroupStatus string

const (
	GroupPending    GroupStatus = "pending"
	GroupInProgress GroupStatus = "in_progress"
	GroupCompleted  GroupStatus = "completed"
)

// MatchStatus defines the state machine of a single match.
// pending -> ready -> in_progress (optional, UI only) -> completed (terminal).
type MatchStatus string

const (
	MatchPending    MatchStatus = "pending"
	MatchReady      MatchStatus = "ready"
	MatchInProgress MatchStatus = "in_progress"
	MatchCompleted  MatchStatus = "completed"
)

// BracketSide disambiguates rounds that share a round number across brackets.
type BracketSide string

const (
	SideWinners BracketSide = "winners"
	SideLosers  BracketSide = "losers"
	SideFinal   BracketSide = "final"
)

// GroupID identifies one of the two qualifying groups, or the sentinel
// cross-bracket final stage.
type GroupID string

const (
	GroupA     GroupID = "A"
	GroupB     GroupID = "B"
	GroupFinal GroupID = "FINAL"
)

// GroupSize is the fixed number of participants per qualifying group.
const GroupSize = 16

// FinalStageSize is the number of qualifiers entering the cross-bracket stage.
const FinalStageSize = 4

// Destination identifies the downstream match slot a winner or loser feeds.
// The group is implied: advancement never crosses group boundaries, the
// cross-bracket coordinator moves qualifiers between groups instead.
type Destination struct {
	Side        BracketSide `json:"side"`
	Round       int         `json:"round"`
	MatchNumber int         `json:"match_number"`
	Slot        int         `json:"slot"` // 1 or 2
}

// Match is the central entity of the bracket engine. Player refs are opaque
// participant identifiers supplied by the identity collaborator; they stay
// empty until populated by seeding or advancement.
type Match struct {
	ID           string       `json:"id"`
	TournamentID string       `json:"tournament_id"`
	GroupID      GroupID      `json:"group_id"`
	Side         BracketSide  `json:"side"`
	Round        int          `json:"round"`
	MatchNumber  int          `json:"match_number"` // 1-based slot index within the round
	Player1      string       `json:"player1"`
	Player2      string       `json:"player2"`
	Score1       *int         `json:"score1"`
	Score2       *int         `json:"score2"`
	RaceTo       int          `json:"race_to"`
	Status       MatchStatus  `json:"status"`
	WinnerID     string       `json:"winner_id"`
	WinnerTo     *Destination `json:"winner_to"`
	LoserTo      *Destination `json:"loser_to"`
}

// Winner returns the winning participant ref, or "" if the match is not
// completed yet.
func (m *Match) Winner() string {
	return m.WinnerID
}

// Loser returns the losing participant ref, or "" if the match is not
// completed yet.
func (m *Match) Loser() string {
	if m.WinnerID == "" {
		return ""
	}
	if m.WinnerID == m.Player1 {
		return m.Player2
	}
	return m.Player1
}

// Clone returns a deep copy so registry snapshots never alias live state.
func (m *Match) Clone() *Match {
	c := *m
	if m.Score1 != nil {
		s1 := *m.Score1
		c.Score1 = &s1
	}
	if m.Score2 != nil {
		s2 := *m.Score2
		c.Score2 = &s2
	}
	if m.WinnerTo != nil {
		d := *m.WinnerTo
		c.WinnerTo = &d
	}
	if m.LoserTo != nil {
		d := *m.LoserTo
		c.LoserTo = &d
	}
	return &c
}

// Group is one of the two independent 16-player double-elimination brackets.
// Membership is immutable once seeded.
type Group struct {
	TournamentID string      `json:"tournament_id"`
	ID           GroupID     `json:"id"`
	Status       GroupStatus `json:"status"`
	Participants []string    `json:"participants"`
}

// Tournament is a single SABO-32 event owned by a club.
type Tournament struct {
	ID                string           `json:"id"`
	ClubID            string           `json:"club_id"`
	Status            TournamentStatus `json:"status"`
	RaceTo            int              `json:"race_to"`
	FinalStageCreated bool             `json:"final_stage_created"`
	CreatedAt         int64            `json:"created_at"` // Unix timestamp
}

// FinalQualifiers carries the four participants entering the cross-bracket
// stage: each group's grand-final winner and runner-up.
type FinalQualifiers struct {
	WinnerA   string
	RunnerUpA string
	WinnerB   string
	RunnerUpB string
}
