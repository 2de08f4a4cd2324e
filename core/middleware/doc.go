// Package middleware groups the Fiber middleware used by the serve command.
//
// # Subpackages
//
//   - rayid: tags each request with an X-Ray-ID, reusing one sent by the client,
//     so log lines of a consolidation triggered over HTTP can be correlated.
//   - auth: rejects requests without the configured API key. Paths listed as
//     public (the health check) and servers without a key are let through.
//
// rayid is registered first, then request logging, then auth.
package middleware
