/*
Package resilience provides a circuit breaker for outbound calls.

The contact relay is the only remote dependency of the server; the breaker
keeps a dead relay from holding every submission for the full retry budget.

	Closed --[ReadyToTrip]--> Open --[Timeout]--> Half-Open --[MaxRequests ok]--> Closed
	                                                  |
	                                              [failure]
	                                                  v
	                                                 Open

Usage:

	b := resilience.New("relay", resilience.Settings{Timeout: 30 * time.Second})
	resp, err := resilience.Do(b, func() (*resty.Response, error) {
		return req.Post(url)
	})
*/
package resilience
