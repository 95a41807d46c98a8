package redis

import (
	"fmt"
	"strings"

	"github.com/mcoot/rpsduel-go/internal/model"
)

// Key prefix for all contract data
const keyPrefix = "rpsduel"

// matchKey returns the Redis key for a Match.
// Identity validation excludes colons, so the (host, opponent) pair
// composes unambiguously.
func matchKey(host, opponent model.Identity) string {
	return fmt.Sprintf("%s:match:%s", keyPrefix, matchMember(host, opponent))
}

// matchIndexKey returns the Redis key for the sorted-set index over all
// match keys. Members are "<host>:<opponent>" with a constant score.
// Lex ranges select by host prefix; readers re-sort fetched records by
// (host, opponent) since ':' does not sort below identity characters.
func matchIndexKey() string {
	return fmt.Sprintf("%s:idx:matches", keyPrefix)
}

// matchMember returns the index member for a (host, opponent) pair
func matchMember(host, opponent model.Identity) string {
	return fmt.Sprintf("%s:%s", host, opponent)
}

// splitMatchMember splits an index member back into its key pair
func splitMatchMember(member string) (model.Identity, model.Identity, bool) {
	host, opponent, ok := strings.Cut(member, ":")
	return model.Identity(host), model.Identity(opponent), ok
}

// ownerKey returns the Redis key for the contract owner
func ownerKey() string {
	return fmt.Sprintf("%s:owner", keyPrefix)
}

// adminKey returns the Redis key for the current admin
func adminKey() string {
	return fmt.Sprintf("%s:admin", keyPrefix)
}

// blacklistKey returns the Redis key for the blacklist set
func blacklistKey() string {
	return fmt.Sprintf("%s:blacklist", keyPrefix)
}

// registeredIdentityKey returns the Redis key for a RegisteredIdentity
func registeredIdentityKey(addr model.Identity) string {
	return fmt.Sprintf("%s:registered_identity:%s", keyPrefix, addr)
}
