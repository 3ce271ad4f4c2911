package metrics

// InitializeHTTP pre-populates the request counter and duration
// histogram for the routes the exporter serves, so the series exist
// from the first scrape instead of appearing after the first hit.
// Call it once at startup, after New.
func (s *Set) InitializeHTTP(method string, paths ...string) {
	for _, path := range paths {
		s.HTTPRequestsTotal.WithLabelValues(method, path, "200")
		s.HTTPRequestDuration.WithLabelValues(method, path)
	}
}
