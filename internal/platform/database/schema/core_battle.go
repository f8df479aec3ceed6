package schema

// CoreBattleTable represents the 'core.battle' table, the append-only log of
// pairwise comparisons.
type CoreBattleTable struct {
	Table     string
	ID        string
	WinnerID  string
	LoserID   string
	VoterID   string
	CreatedAt string
}

// CoreBattle is the schema definition for core.battle
var CoreBattle = CoreBattleTable{
	Table:     "core.battle",
	ID:        "id",
	WinnerID:  "winnerid",
	LoserID:   "loserid",
	VoterID:   "voterid",
	CreatedAt: "createdat",
}
