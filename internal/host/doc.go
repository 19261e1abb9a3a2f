// Package host probes the build host for environment-derived state.
//
// Configuration validation needs to know which locales and timezones the
// host supports. The [Environment] interface abstracts those queries so
// validation can run against a fake in tests; [System] is the real
// implementation, backed by the glibc locale database and timedatectl.
package host
