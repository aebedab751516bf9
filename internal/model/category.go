package model

// Category is a ledger category such as MATCH_FEE or REFEREE.
type Category struct {
	Name        string
	Type        TxType
	Description string
}
