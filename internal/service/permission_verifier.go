package service

import (
	"context"

	"github.com/postloom/publisher-api/internal/graph"
)

// FacebookPublishPermissions is the fixed capability set a page token
// must carry before any Facebook-family publish is attempted. Instagram
// inherits the binding's Facebook grants; the provider exposes no
// separate introspection surface for the Instagram capability.
var FacebookPublishPermissions = []string{"read_engagement", "manage_posts"}

// PermissionVerifier checks which of the required capabilities the
// token is missing. An empty slice means the gate is open.
type PermissionVerifier interface {
	Verify(ctx context.Context, accessToken string, required []string) ([]string, error)
}

type permissionVerifier struct {
	g *graph.Client
}

func NewPermissionVerifier(g *graph.Client) PermissionVerifier {
	return &permissionVerifier{g: g}
}

func (v *permissionVerifier) Verify(ctx context.Context, accessToken string, required []string) ([]string, error) {
	granted, err := v.g.GrantedPermissions(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	grantedSet := make(map[string]struct{}, len(granted))
	for _, name := range granted {
		grantedSet[name] = struct{}{}
	}

	var missing []string
	for _, name := range required {
		if _, ok := grantedSet[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing, nil
}
