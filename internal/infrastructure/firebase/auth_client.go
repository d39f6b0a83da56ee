package firebase

import (
	"context"

	"firebase.google.com/go/v4/auth"
)

// FirebaseAuthClient mints custom tokens that let signed-in clients open
// their own listeners on the store.
type FirebaseAuthClient struct {
	client *auth.Client
}

func NewFirebaseAuthClient(client *auth.Client) *FirebaseAuthClient {
	return &FirebaseAuthClient{
		client: client,
	}
}

func (f *FirebaseAuthClient) CustomToken(ctx context.Context, uid string, claims map[string]interface{}) (string, error) {
	if len(claims) == 0 {
		return f.client.CustomToken(ctx, uid)
	}
	return f.client.CustomTokenWithClaims(ctx, uid, claims)
}
