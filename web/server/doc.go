// Package server runs the fake todo API over HTTP until its context ends,
// then drains in-flight requests.
//
//	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
//	defer stop()
//
//	srv := server.New(api, server.WithHost(":3000"))
//	if err := srv.Run(ctx); err != nil {
//		return err
//	}
package server
