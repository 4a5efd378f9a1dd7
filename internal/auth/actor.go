package auth

import "context"

// Actor is the identity behind a request. A nil *Actor is an anonymous caller.
type Actor struct {
	ID       string
	Username string
	Email    string
	// Token is the key the actor authenticated with.
	Token string
}

// Authenticated reports whether a is a resolved identity.
func (a *Actor) Authenticated() bool {
	return a != nil && a.ID != ""
}

type actorContextKey struct{}

// WithActor stores the resolved actor on the context.
func WithActor(ctx context.Context, actor *Actor) context.Context {
	return context.WithValue(ctx, actorContextKey{}, actor)
}

// ActorFromContext returns the actor stored by the middleware, or nil for anonymous requests.
func ActorFromContext(ctx context.Context) *Actor {
	actor, _ := ctx.Value(actorContextKey{}).(*Actor)
	return actor
}
