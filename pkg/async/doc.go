// Package async runs a function in the background and hands back a typed
// Future for its result.
//
//	f := async.Async(ctx, uri, renderer.Render)
//	artifact, err := f.AwaitContext(ctx)
//
// Panics in the function are recovered and surface as ErrPanic so a single
// misbehaving call cannot take down the process.
package async
