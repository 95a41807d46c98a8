package request

// ClaimRequest is the request body for claiming an unregistered identity
type ClaimRequest struct {
	Address string `json:"address"`
}

// RegisterRequest is the request body for registering an identity
type RegisterRequest struct {
	Address    string `json:"address"`
	Passphrase string `json:"passphrase"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Address    string `json:"address"`
	Passphrase string `json:"passphrase"`
}

// StartMatchRequest is the request body for starting a match.
// The caller's session identity is the host.
type StartMatchRequest struct {
	Opponent  string `json:"opponent"`
	FirstMove string `json:"first_move"`
}

// RespondRequest is the request body for responding to a match.
// The caller's session identity is the opponent.
type RespondRequest struct {
	SecondMove string `json:"second_move"`
}

// TransferAdminRequest is the request body for transferring adminship
type TransferAdminRequest struct {
	AdminAddress string `json:"admin_address"`
}

// BlacklistRequest is the request body for adding a blacklist entry
type BlacklistRequest struct {
	Address string `json:"address"`
}
