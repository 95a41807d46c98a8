package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Identity:
		o.printIdentity(v)
	case AuthResult:
		o.printAuthResult(v)
	case Match:
		o.printMatch(v)
	case MatchList:
		o.printMatchList(v)
	case RespondResult:
		o.printRespondResult(v)
	case OwnerResult:
		fmt.Printf("Owner: %s\n", v.Owner)
	case AdminResult:
		o.printAdminResult(v)
	case BlacklistResult:
		o.printBlacklistResult(v)
	case HealthResult:
		fmt.Printf("Status: %s\n", v.Status)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Identity response type (matches API)
type Identity struct {
	Address string `json:"address"`
}

// AuthResult combines address and session token
type AuthResult struct {
	Address      string    `json:"address"`
	SessionToken string    `json:"session_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// Match response type
type Match struct {
	Host      string    `json:"host"`
	Opponent  string    `json:"opponent"`
	HostMove  string    `json:"host_move"`
	OppMove   *string   `json:"opp_move,omitempty"`
	Result    *string   `json:"result,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// MatchList response type
type MatchList struct {
	Matches []Match `json:"matches"`
}

// RespondResult carries the resolved outcome
type RespondResult struct {
	Result string `json:"result"`
}

// OwnerResult response type
type OwnerResult struct {
	Owner string `json:"owner"`
}

// AdminResult response type; Admin is null while no admin is set
type AdminResult struct {
	Admin *string `json:"admin"`
}

// BlacklistResult response type
type BlacklistResult struct {
	Addresses []string `json:"addresses"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printIdentity(i Identity) {
	fmt.Printf("Address: %s\n", i.Address)
}

func (o *Output) printAuthResult(a AuthResult) {
	fmt.Printf("Address: %s\n", a.Address)
	fmt.Printf("Token: %s\n", a.SessionToken)
	fmt.Printf("Expires: %s\n", a.ExpiresAt.Format(time.RFC3339))
}

func (o *Output) printMatch(m Match) {
	fmt.Printf("Match: %s vs %s\n", m.Host, m.Opponent)
	fmt.Printf("Host Move: %s\n", m.HostMove)
	if m.OppMove != nil {
		fmt.Printf("Opponent Move: %s\n", *m.OppMove)
	} else {
		fmt.Println("Opponent Move: (awaiting response)")
	}
	if m.Result != nil {
		fmt.Printf("Result: %s\n", *m.Result)
	}
	fmt.Printf("Created: %s\n", m.CreatedAt.Format(time.RFC3339))
}

func (o *Output) printMatchList(l MatchList) {
	if len(l.Matches) == 0 {
		fmt.Println("No open matches")
		return
	}
	fmt.Printf("Matches (%d):\n", len(l.Matches))
	for _, m := range l.Matches {
		fmt.Printf("  - %s vs %s (host played %s)\n", m.Host, m.Opponent, m.HostMove)
	}
}

func (o *Output) printRespondResult(r RespondResult) {
	fmt.Printf("Result: %s\n", r.Result)
}

func (o *Output) printAdminResult(a AdminResult) {
	if a.Admin == nil {
		fmt.Println("Admin: (not set)")
		return
	}
	fmt.Printf("Admin: %s\n", *a.Admin)
}

func (o *Output) printBlacklistResult(b BlacklistResult) {
	if len(b.Addresses) == 0 {
		fmt.Println("Blacklist is empty")
		return
	}
	fmt.Printf("Blacklisted (%d):\n", len(b.Addresses))
	for _, addr := range b.Addresses {
		fmt.Printf("  - %s\n", addr)
	}
}
