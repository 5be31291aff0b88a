// Package dtc implements the Data Tracker Chain: an append-only,
// proof-of-work-protected sequence of provenance records that travels with a
// piece of data and lets any recipient verify its processing history without
// a central authority.
package dtc

// GenesisPreviousHash is the previous_hash value carried by the first link
// of every chain.
const GenesisPreviousHash = "0"

// Identifier is the payload of one provenance step. Its JSON field names are
// the wire form embedded in transport tokens.
type Identifier struct {
	// DataID is the stable identifier of the tracked data item,
	// e.g. "order~clothing~iStore~15150".
	DataID string `json:"data_id"`
	// Index is the 0-based position of the link in the chain.
	Index uint64 `json:"index"`
	// Timestamp is the Unix time the actor took possession of the data.
	// 0 is reserved for the genesis link.
	Timestamp uint64 `json:"timestamp"`
	// ActorID identifies the system or process that produced this step,
	// e.g. "notifier~billing~receipt~email". Empty is reserved for genesis.
	ActorID string `json:"actor_id"`
	// PreviousHash is the hash of the preceding link, or "0" for genesis.
	PreviousHash string `json:"previous_hash"`
}

// Link is one immutable, self-certifying provenance record. Hash is the
// proof-of-work digest over the identifier and nonce, encoded as a decimal
// string so it compares exactly across platforms.
type Link struct {
	Identifier Identifier `json:"identifier"`
	Hash       string     `json:"hash"`
	Nonce      uint64     `json:"nonce"`
}

// genesisIdentifier returns the fixed-shape identifier of a chain's first
// link. The zero timestamp keeps genesis links for the same data item
// bit-identical no matter when they are minted.
func genesisIdentifier(dataID string) Identifier {
	return Identifier{
		DataID:       dataID,
		Index:        0,
		Timestamp:    0,
		ActorID:      "",
		PreviousHash: GenesisPreviousHash,
	}
}

// isGenesisShape reports whether the identifier has the exact shape required
// of link 0.
func isGenesisShape(id Identifier) bool {
	return id.Index == 0 &&
		id.Timestamp == 0 &&
		id.ActorID == "" &&
		id.PreviousHash == GenesisPreviousHash
}
