package attestation

// Attestation is a credential record returned by the EAS index. It is
// read-only to this service; issuance and revocation happen on-chain.
type Attestation struct {
	ID             string    `json:"id"`
	Attester       string    `json:"attester"`
	Recipient      string    `json:"recipient"`
	RefUID         string    `json:"refUID"`
	Revocable      bool      `json:"revocable"`
	RevocationTime int64     `json:"revocationTime"`
	Revoked        bool      `json:"revoked"`
	ExpirationTime int64     `json:"expirationTime"`
	Data           string    `json:"data"`
	Schema         SchemaRef `json:"schema"`
}

// SchemaRef identifies the schema an attestation was issued under.
type SchemaRef struct {
	ID string `json:"id"`
}

// Valid reports whether the attestation counts as proof for this system:
// permanent, non-expiring, and not revoked. Anything else is excluded before
// it reaches policy logic.
func (a Attestation) Valid() bool {
	return a.RevocationTime == 0 && a.ExpirationTime == 0 && !a.Revoked
}

// queryEnvelope is the JSON envelope the index wraps results in. A missing
// data field is a malformed response.
type queryEnvelope struct {
	Data *struct {
		Attestations []Attestation `json:"attestations"`
	} `json:"data"`
}
