// Package sumline provides an embeddable digit-sum pipeline.
//
// A Pipeline reads digit strings from a console and from a single TCP
// client. Valid console input is transformed (digits sorted descending,
// even digits replaced by the marker "KV") and handed to a worker through
// a one-slot handoff; the worker computes the digit sum of the transformed
// string, echoes it to the console and replies "SUM:<n>" to the currently
// connected client. Invalid input is rejected with a fixed error message.
//
// # Basic Usage
//
//	p, err := sumline.New(sumline.DefaultConfig(),
//	    sumline.WithConsole(os.Stdin, os.Stdout),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := p.Start(context.Background()); err != nil {
//	    log.Fatal(err)
//	}
//
//	// returns once "exit" is typed or the console reaches end of input
//	if err := p.Wait(); err != nil {
//	    log.Printf("shutdown error: %v", err)
//	}
//
// # Client Handling
//
// At most one client is served at a time. A newly accepted connection
// replaces and closes the previous one. In [ClientModeDirect] client input
// is answered inline by the client reader; in [ClientModeHandoff] it goes
// through the handoff and the worker like console input does.
//
// # Handoff
//
// The handoff holds at most one pending item. Putting a new item while one
// is pending overwrites it; the overwrite is logged and counted.
//
// # Lifecycle States
//
// A Pipeline moves through [StateStopped], [StateStarting],
// [StateListening], [StateRunning], [StateShuttingDown] and back to
// [StateStopped], or to [StateCrashed] when the listener cannot be bound or
// shutdown times out. Use [Pipeline.Status] to query the current state and
// [WithEventHandler] to observe transitions.
package sumline
