// Package client is the HTTP transport used by the todo API client. It
// builds JSON requests, fires them through a configurable [net/http] stack
// and hands back the raw status code, headers and body.
//
// # Building a Client
//
// Use [Build] to create a [Client] with functional options:
//
//	c, err := client.Build(
//		client.WithTimeout(10 * time.Second),
//		client.WithUserAgent("todo/1.0"),
//		client.WithThrottle(10, 5),
//	)
//
// # Exchanging
//
// [Client.Exchange] performs one request and returns an [Outcome] no matter
// which status code the server answered with:
//
//	out, err := c.Exchange(ctx, client.Call{
//		Method: http.MethodPost,
//		URL:    client.URL("https", "jsonplaceholder.typicode.com", "/todos"),
//		Body:   payload,
//	})
//
// An error is only returned when no complete response could be obtained, in
// which case it is a *[TransportError]. Interpreting the status is left to
// the caller.
//
// Lower-level helpers [URL] and [Request] remain available for callers that
// want to drive [Client.Do] themselves.
package client
