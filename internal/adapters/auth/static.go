// Package auth provides the development-grade identity resolver.
// Real deployments plug in their own domain.IdentityResolver; the
// core never inspects credentials itself.
package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/ncolombo/taskpilot/internal/domain"
)

var ErrUnknownCredential = errors.New("unknown credential")

// StaticResolver maps opaque bearer tokens to owner ids.
type StaticResolver struct {
	tokens map[string]domain.OwnerID
}

func NewStaticResolver(tokens map[string]domain.OwnerID) *StaticResolver {
	if tokens == nil {
		tokens = map[string]domain.OwnerID{}
	}
	return &StaticResolver{tokens: tokens}
}

func (r *StaticResolver) ResolveIdentity(ctx context.Context, credential string) (domain.OwnerID, error) {
	owner, ok := r.tokens[credential]
	if !ok {
		return "", ErrUnknownCredential
	}
	return owner, nil
}

// ParseTokenList parses "token:owner-uuid" pairs separated by commas,
// the TASKPILOT_DEV_TOKENS format.
func ParseTokenList(s string) map[string]domain.OwnerID {
	out := map[string]domain.OwnerID{}
	for _, pair := range strings.Split(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		token, ownerRaw, ok := strings.Cut(pair, ":")
		if !ok {
			continue
		}
		owner, err := domain.ParseOwnerID(strings.TrimSpace(ownerRaw))
		if err != nil {
			continue
		}
		out[strings.TrimSpace(token)] = owner
	}
	return out
}
