// Package farcaster holds the frame interaction payload types, the signature
// validation client, and the frame HTML renderer.
package farcaster

// FrameRequest is the signed interaction payload a Farcaster client posts to
// a frame's action URL. The payload is opaque to this service beyond handing
// it to the signature-verification collaborator; only the verified Message
// coming back is trusted.
type FrameRequest struct {
	UntrustedData UntrustedData `json:"untrustedData"`
	TrustedData   TrustedData   `json:"trustedData"`
}

// UntrustedData is the client-asserted interaction context. Never trusted for
// address resolution.
type UntrustedData struct {
	FID         int64  `json:"fid"`
	URL         string `json:"url"`
	MessageHash string `json:"messageHash"`
	Timestamp   int64  `json:"timestamp"`
	Network     int    `json:"network"`
	ButtonIndex int    `json:"buttonIndex"`
	InputText   string `json:"inputText"`
	State       string `json:"state"`
}

// TrustedData carries the signed message bytes.
type TrustedData struct {
	MessageBytes string `json:"messageBytes"`
}

// Message is the verified view of an interaction returned by the
// signature-verification collaborator.
type Message struct {
	Input      string     `json:"input"`
	Interactor Interactor `json:"interactor"`
}

// Interactor describes the verified viewer.
type Interactor struct {
	FID              int64    `json:"fid"`
	VerifiedAccounts []string `json:"verified_accounts"`
}

// Address resolves the viewer's wallet address: an explicit test-mode input
// wins over the verified wallet; absent both, the address is empty (and
// verification will simply find no attestations).
func (m *Message) Address() string {
	if m == nil {
		return ""
	}
	if m.Input != "" {
		return m.Input
	}
	if len(m.Interactor.VerifiedAccounts) > 0 {
		return m.Interactor.VerifiedAccounts[0]
	}
	return ""
}

// Dev reports whether the interaction carried an explicit input, which marks
// test/dev mode: the response then includes the Explain button and the
// explanation state.
func (m *Message) Dev() bool {
	return m != nil && m.Input != ""
}
