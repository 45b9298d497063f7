/*
Package contact forwards contact form submissions to a mail relay.

Submissions are validated, stripped of markup and POSTed as JSON. The HTTP
client is resty over a retryablehttp transport, and every send runs
through a circuit breaker. Callers only ever see one of two status lines;
the relay's own errors are logged, never echoed to the visitor.
*/
package contact
