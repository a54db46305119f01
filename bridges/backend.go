package bridges

import "context"

// Backend runs hint source against the proxies in env and returns the variables it left behind.
type Backend interface {
	Run(ctx context.Context, source string, env Env) (map[string]any, error)
}

type BackendFunc func(ctx context.Context, source string, env Env) (map[string]any, error)

var _ Backend = BackendFunc(nil)

func (b BackendFunc) Run(ctx context.Context, source string, env Env) (map[string]any, error) {
	return b(ctx, source, env)
}
