package gengo

import "context"

// Async runs op on its own goroutine and hands its single outcome to done.
// Nothing is retried and done is called exactly once.
//
//	gengo.Async(ctx, c.Balance, func(a gengo.Account, err error) { ... })
func Async[T any](ctx context.Context, op func(context.Context) (T, error), done func(T, error)) {
	go func() {
		v, err := op(ctx)
		done(v, err)
	}()
}
