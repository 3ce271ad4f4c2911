// Package memory configures the Go runtime memory limit from
// container metadata.
//
// Kubernetes exposes the pod memory limit through the Downward API.
// Deriving GOMEMLIMIT from it keeps the garbage collector inside the
// cgroup bound, so a large scrape does not get the exporter OOM
// killed. A slice of the limit stays reserved for transient scrape
// buffers: decoding the scene list from Stash briefly holds both the
// raw JSON and the decoded structs.
//
// Environment variables:
//   - GOMEMLIMIT: standard Go variable, takes precedence when set
//   - MEMORY_LIMIT: container memory limit in bytes
//   - MEMORY_RATIO: fraction of the limit given to the Go heap
package memory
