// Package async runs a function on its own goroutine and hands back a Future
// for its result.
//
// Async never blocks the caller. The returned Future can be awaited
// (Await), awaited with a deadline (AwaitWithTimeout, AwaitContext), polled
// (IsComplete) or selected on (Done).
//
//	future := async.Async(ctx, cfg, connect)
//	// ... keep starting the process ...
//	client, err := future.Await()
//
// If the context is already cancelled when Async is called, the function is
// skipped and the Future resolves with the context error. Otherwise the
// function itself is responsible for observing cancellation.
package async
